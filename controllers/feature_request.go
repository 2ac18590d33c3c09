package controllers

import (
	"net/http"

	"movienight/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Public: any visitor can ask for a film to be shown.
func SubmitFeatureRequest(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Email         string `json:"email" binding:"required,email"`
			Name          string `json:"name"`
			Title         string `json:"title" binding:"required"`
			LetterboxdURL string `json:"letterboxd_url"`
			Notes         string `json:"notes"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		request := models.FeatureRequest{
			Email:         input.Email,
			Name:          input.Name,
			Title:         input.Title,
			LetterboxdURL: input.LetterboxdURL,
			Notes:         input.Notes,
			Status:        models.FeatureRequestPending,
		}
		if err := db.Create(&request).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to save"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"feature_request": request})
	}
}

// Host: list feature requests, optionally filtered by status.
func ListFeatureRequests(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Preload("Film").Order("created_at DESC")
		if status := c.Query("status"); status != "" {
			query = query.Where("status = ?", status)
		}

		var requests []models.FeatureRequest
		if err := query.Find(&requests).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to save"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"feature_requests": requests})
	}
}

var validFeatureRequestStatuses = map[string]bool{
	models.FeatureRequestPending:  true,
	models.FeatureRequestApproved: true,
	models.FeatureRequestRejected: true,
	models.FeatureRequestArchived: true,
}

// Host: change status or link a feature request to a film/event.
func UpdateFeatureRequest(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Status  *string `json:"status"`
			FilmID  *uint   `json:"film_id"`
			EventID *uint   `json:"event_id"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var request models.FeatureRequest
		if err := db.First(&request, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Feature request not found"})
			return
		}

		if input.Status != nil {
			if !validFeatureRequestStatuses[*input.Status] {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
				return
			}
			request.Status = *input.Status
		}
		if input.FilmID != nil {
			if *input.FilmID == 0 {
				request.FilmID = nil
			} else {
				var film models.Film
				if err := db.First(&film, *input.FilmID).Error; err != nil {
					c.JSON(http.StatusBadRequest, gin.H{"error": "invalid film id"})
					return
				}
				request.FilmID = input.FilmID
			}
		}
		if input.EventID != nil {
			if *input.EventID == 0 {
				request.EventID = nil
			} else {
				var event models.Event
				if err := db.First(&event, *input.EventID).Error; err != nil {
					c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
					return
				}
				request.EventID = input.EventID
			}
		}

		if err := db.Save(&request).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to save"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"feature_request": request})
	}
}
