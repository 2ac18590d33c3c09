package controllers

import (
	"errors"
	"net/http"

	"movienight/middlewares"
	"movienight/services"

	"github.com/gin-gonic/gin"
)

// respondServiceError maps the service error taxonomy onto HTTP statuses.
// Storage failures stay opaque; validation and not-found carry detail.
func respondServiceError(c *gin.Context, err error) {
	var ve *services.ValidationError
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "fields": ve.Fields})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to save"})
	}
}

// Public: list published events.
func ListEvents(svc *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		events, err := svc.List(true)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"events": events})
	}
}

// Public: fetch one published event by slug, line-up in slot order.
func GetEvent(svc *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		event, err := svc.GetBySlug(c.Param("slug"), true)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"event": event})
	}
}

// Host: list all events including drafts and archived ones.
func HostListEvents(svc *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		events, err := svc.List(false)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"events": events})
	}
}

// Host: fetch any event by slug.
func HostGetEvent(svc *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		event, err := svc.GetBySlug(c.Param("slug"), false)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"event": event})
	}
}

// Host: create an event with optional line-up and feature-request links.
func CreateEvent(svc *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input services.EventInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		hostIDRaw, exists := c.Get(middlewares.ContextHostID)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		event, err := svc.Create(c.Request.Context(), hostIDRaw.(uint), input)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"event": event})
	}
}

// Host: partial update by slug. Renaming the event recomputes the slug, so
// its public address changes.
func UpdateEvent(svc *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input services.EventInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		event, err := svc.Update(c.Request.Context(), c.Param("slug"), input)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"event": event})
	}
}

// Host: archive (soft-delete). Invitations and line-up survive.
func ArchiveEvent(svc *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Archive(c.Param("slug")); err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Event archived"})
	}
}
