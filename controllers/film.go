package controllers

import (
	"net/http"

	"movienight/models"
	"movienight/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Host: the film library built up by past line-ups.
func ListFilms(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var films []models.Film
		if err := db.Order("title ASC").Find(&films).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to save"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"films": films})
	}
}

// Host: run the metadata fetcher for a Letterboxd URL so the UI can autofill
// the film form. No metadata is not an error, just an empty answer.
func PreviewFilmMetadata(fetcher services.MetadataFetcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			LetterboxdURL string `json:"letterboxd_url" binding:"required,url"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		meta := fetcher.FetchMetadata(c.Request.Context(), input.LetterboxdURL)
		if meta == nil {
			c.Status(http.StatusNoContent)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"title":       meta.Title,
			"synopsis":    meta.Synopsis,
			"poster_url":  meta.PosterURL,
			"runtime_min": meta.RuntimeMin,
			"director":    meta.Director,
		})
	}
}
