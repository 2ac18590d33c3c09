package utils

import (
	"testing"
	"time"

	"movienight/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := CreateToken(7, "host")
	if err != nil {
		t.Fatalf("CreateToken: %v", err)
	}

	claims, err := ValidateJWT(token)
	if err != nil {
		t.Fatalf("ValidateJWT: %v", err)
	}
	if claims.HostID != 7 || claims.Role != "host" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestValidateJWT_Rejects(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	if _, err := ValidateJWT(""); err == nil {
		t.Error("empty token accepted")
	}
	if _, err := ValidateJWT("not.a.token"); err == nil {
		t.Error("garbage token accepted")
	}

	token, err := CreateToken(7, "host")
	if err != nil {
		t.Fatalf("CreateToken: %v", err)
	}
	t.Setenv("JWT_SECRET", "different-secret")
	if _, err := ValidateJWT(token); err == nil {
		t.Error("token signed with another secret accepted")
	}
}

func TestRefreshTokenLifecycle(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.RefreshToken{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	raw, hashed, err := GenerateRefreshToken()
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}
	if raw == hashed {
		t.Error("raw token and stored hash must differ")
	}

	if err := SaveRefreshToken(db, 1, hashed, time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("SaveRefreshToken: %v", err)
	}

	rt, err := ValidateRefreshToken(db, raw)
	if err != nil {
		t.Fatalf("ValidateRefreshToken: %v", err)
	}
	if rt.HostID != 1 {
		t.Errorf("host id = %d, want 1", rt.HostID)
	}

	// Saving again for the same host replaces, not duplicates.
	raw2, hashed2, _ := GenerateRefreshToken()
	if err := SaveRefreshToken(db, 1, hashed2, time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("second SaveRefreshToken: %v", err)
	}
	var count int64
	db.Model(&models.RefreshToken{}).Where("host_id = ?", 1).Count(&count)
	if count != 1 {
		t.Errorf("refresh tokens for host = %d, want 1", count)
	}
	if _, err := ValidateRefreshToken(db, raw); err == nil {
		t.Error("replaced token still validates")
	}
	if _, err := ValidateRefreshToken(db, raw2); err != nil {
		t.Errorf("new token rejected: %v", err)
	}

	if err := DeleteRefreshToken(db, raw2); err != nil {
		t.Fatalf("DeleteRefreshToken: %v", err)
	}
	if _, err := ValidateRefreshToken(db, raw2); err == nil {
		t.Error("deleted token still validates")
	}
}

func TestExpiredRefreshTokenRejected(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.RefreshToken{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	raw, hashed, _ := GenerateRefreshToken()
	if err := SaveRefreshToken(db, 2, hashed, time.Now().Add(-time.Minute)); err != nil {
		t.Fatalf("SaveRefreshToken: %v", err)
	}
	if _, err := ValidateRefreshToken(db, raw); err == nil {
		t.Error("expired token accepted")
	}
}
