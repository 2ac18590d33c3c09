package controllers

import (
	"log/slog"
	"net/http"
	"time"

	"movienight/mailer"
	"movienight/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Host: invite guests to an event. Accepts a batch; each invitation gets an
// opaque access token. Emails go out best effort when a mailer is configured.
func CreateInvitations(db *gorm.DB, mail *mailer.Mailer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Invitations []struct {
				Email string `json:"email" binding:"required,email"`
				Name  string `json:"name"`
			} `json:"invitations" binding:"required,min=1,dive"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var event models.Event
		if err := db.Where("slug = ?", c.Param("slug")).First(&event).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
			return
		}

		invitations := make([]models.Invitation, 0, len(input.Invitations))
		for _, in := range input.Invitations {
			invitations = append(invitations, models.Invitation{
				EventID: event.ID,
				Email:   in.Email,
				Name:    in.Name,
				Status:  models.RSVPPending,
				Token:   uuid.NewString(),
			})
		}

		if err := db.Create(&invitations).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to save"})
			return
		}

		if mail != nil {
			for _, inv := range invitations {
				if err := mail.SendInvitation(inv, event); err != nil {
					slog.Warn("invitation email not sent", "invitation_id", inv.ID, "error", err)
				}
			}
		}

		c.JSON(http.StatusCreated, gin.H{"invitations": invitations})
	}
}

// Host: list an event's invitations.
func ListInvitations(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var event models.Event
		if err := db.Where("slug = ?", c.Param("slug")).First(&event).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
			return
		}

		var invitations []models.Invitation
		if err := db.Where("event_id = ?", event.ID).Order("created_at ASC").Find(&invitations).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to save"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"invitations": invitations})
	}
}

// Host: remove an invitation.
func DeleteInvitation(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var invitation models.Invitation
		if err := db.First(&invitation, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Invitation not found"})
			return
		}
		if err := db.Delete(&invitation).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to save"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Invitation deleted"})
	}
}

// Public: fetch an invitation by its access token, with the event and its
// line-up for the RSVP page.
func GetInvitation(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var invitation models.Invitation
		if err := db.Where("token = ?", c.Param("token")).First(&invitation).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Invitation not found"})
			return
		}

		var event models.Event
		if err := db.
			Preload("Lineup", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
			Preload("Lineup.Film").
			First(&event, invitation.EventID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to save"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"invitation": invitation, "event": event})
	}
}

var validRSVPStatuses = map[string]bool{
	models.RSVPAccepted: true,
	models.RSVPDeclined: true,
	models.RSVPMaybe:    true,
}

// Public: record an RSVP. RespondedAt is set on the first status change and
// never moves afterwards.
func SubmitRSVP(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Status   string `json:"status" binding:"required"`
			PlusOnes *int   `json:"plus_ones"`
			Note     string `json:"note"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if !validRSVPStatuses[input.Status] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "status must be ACCEPTED, DECLINED or MAYBE"})
			return
		}
		if input.PlusOnes != nil && (*input.PlusOnes < 0 || *input.PlusOnes > 5) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "plus_ones must be between 0 and 5"})
			return
		}

		var invitation models.Invitation
		if err := db.Where("token = ?", c.Param("token")).First(&invitation).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Invitation not found"})
			return
		}

		if invitation.RespondedAt == nil {
			now := time.Now()
			invitation.RespondedAt = &now
		}
		invitation.Status = input.Status
		if input.PlusOnes != nil {
			invitation.PlusOnes = *input.PlusOnes
		}
		if input.Note != "" {
			invitation.Note = input.Note
		}

		if err := db.Save(&invitation).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to save"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"invitation": invitation})
	}
}
