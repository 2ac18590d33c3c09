package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"movienight/letterboxd"
	"movienight/models"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MetadataFetcher backfills film attributes from an external catalog page.
// A nil result means "no metadata available" and is never an error.
type MetadataFetcher interface {
	FetchMetadata(ctx context.Context, referenceURL string) *letterboxd.Metadata
}

// LineupEntryInput is one submitted line-up slot: either an existing film id,
// or attributes for a film identified by its Letterboxd URL.
type LineupEntryInput struct {
	FilmID        uint   `json:"film_id"`
	Title         string `json:"title"`
	LetterboxdURL string `json:"letterboxd_url"`
	RuntimeMin    int    `json:"runtime_min"`
	PosterURL     string `json:"poster_url"`
	Director      string `json:"director"`
	Synopsis      string `json:"synopsis"`
	Note          string `json:"note"`
	Position      *int   `json:"position"`
}

// EventInput covers create and update. On update only non-nil fields are
// applied; a nil Lineup leaves the existing line-up untouched.
type EventInput struct {
	Title             *string             `json:"title"`
	StartsAt          *time.Time          `json:"starts_at"`
	DoorsAt           *time.Time          `json:"doors_at"`
	Location          *string             `json:"location"`
	HeroImageURL      *string             `json:"hero_image_url"`
	Published         *bool               `json:"published"`
	FeatureRequestIDs *[]uint             `json:"feature_request_ids"`
	Lineup            *[]LineupEntryInput `json:"lineup"`
}

// EventService coordinates validation, slug derivation, metadata enrichment
// and line-up reconciliation inside one transaction per mutation.
type EventService struct {
	db      *gorm.DB
	fetcher MetadataFetcher
}

func NewEventService(db *gorm.DB, fetcher MetadataFetcher) *EventService {
	return &EventService{db: db, fetcher: fetcher}
}

// Create validates the input, derives a unique slug and persists the event,
// its feature-request links and its line-up atomically.
func (s *EventService) Create(ctx context.Context, hostID uint, in EventInput) (*models.Event, error) {
	if in.Title == nil || strings.TrimSpace(*in.Title) == "" {
		return nil, newValidationError("title", "title is required")
	}
	if in.StartsAt == nil || in.StartsAt.IsZero() {
		return nil, newValidationError("starts_at", "starts_at is required")
	}

	var entries []LineupEntryInput
	if in.Lineup != nil {
		entries = s.enrichEntries(ctx, *in.Lineup)
		if err := validateEntries(entries); err != nil {
			return nil, err
		}
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	eventSlug, err := uniqueSlug(tx, *in.Title, 0)
	if err != nil {
		tx.Rollback()
		return nil, saveFailed("derive slug", err)
	}

	event := models.Event{
		Title:    strings.TrimSpace(*in.Title),
		Slug:     eventSlug,
		StartsAt: *in.StartsAt,
		DoorsAt:  in.DoorsAt,
		HostID:   hostID,
	}
	if in.Location != nil {
		event.Location = *in.Location
	}
	if in.HeroImageURL != nil {
		event.HeroImageURL = *in.HeroImageURL
	}
	if in.Published != nil {
		event.Published = *in.Published
	}

	if err := tx.Create(&event).Error; err != nil {
		tx.Rollback()
		return nil, saveFailed("create event", err)
	}

	if in.FeatureRequestIDs != nil {
		if err := s.relinkFeatureRequests(tx, event.ID, *in.FeatureRequestIDs); err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if in.Lineup != nil && len(entries) > 0 {
		if err := s.checkFilmIDs(tx, entries); err != nil {
			tx.Rollback()
			return nil, err
		}
		if err := s.reconcileLineup(tx, event.ID, entries); err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, saveFailed("commit", err)
	}

	return s.getByID(event.ID)
}

// Update applies the fields present in the input to the event with the given
// slug. A title change recomputes the slug, which changes the event's public
// address. A supplied line-up fully replaces the old one; a supplied
// feature-request id set fully replaces the old links.
func (s *EventService) Update(ctx context.Context, currentSlug string, in EventInput) (*models.Event, error) {
	var event models.Event
	if err := s.db.Where("slug = ?", currentSlug).First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, saveFailed("load event", err)
	}

	if in.Title != nil && strings.TrimSpace(*in.Title) == "" {
		return nil, newValidationError("title", "title must not be blank")
	}

	var entries []LineupEntryInput
	if in.Lineup != nil {
		entries = s.enrichEntries(ctx, *in.Lineup)
		if err := validateEntries(entries); err != nil {
			return nil, err
		}
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if in.Title != nil && strings.TrimSpace(*in.Title) != event.Title {
		event.Title = strings.TrimSpace(*in.Title)
		newSlug, err := uniqueSlug(tx, event.Title, event.ID)
		if err != nil {
			tx.Rollback()
			return nil, saveFailed("derive slug", err)
		}
		event.Slug = newSlug
	}
	if in.StartsAt != nil {
		event.StartsAt = *in.StartsAt
	}
	if in.DoorsAt != nil {
		event.DoorsAt = in.DoorsAt
	}
	if in.Location != nil {
		event.Location = *in.Location
	}
	if in.HeroImageURL != nil {
		event.HeroImageURL = *in.HeroImageURL
	}
	if in.Published != nil {
		event.Published = *in.Published
	}

	if err := tx.Save(&event).Error; err != nil {
		tx.Rollback()
		return nil, saveFailed("update event", err)
	}

	if in.FeatureRequestIDs != nil {
		if err := s.relinkFeatureRequests(tx, event.ID, *in.FeatureRequestIDs); err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if in.Lineup != nil {
		if err := s.checkFilmIDs(tx, entries); err != nil {
			tx.Rollback()
			return nil, err
		}
		if err := s.reconcileLineup(tx, event.ID, entries); err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, saveFailed("commit", err)
	}

	return s.getByID(event.ID)
}

// Archive soft-deletes: the event keeps its line-up, invitations and
// feature-request links but is unpublished and hidden from listings.
func (s *EventService) Archive(slug string) error {
	var event models.Event
	if err := s.db.Where("slug = ?", slug).First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return saveFailed("load event", err)
	}

	event.Archived = true
	event.Published = false
	if err := s.db.Save(&event).Error; err != nil {
		return saveFailed("archive event", err)
	}
	return nil
}

// GetBySlug returns the hydrated event. With publicOnly set, drafts and
// archived events read as not found.
func (s *EventService) GetBySlug(slug string, publicOnly bool) (*models.Event, error) {
	query := s.hydrated().Where("slug = ?", slug)
	if publicOnly {
		query = query.Where("published = ? AND archived = ?", true, false)
	}

	var event models.Event
	if err := query.First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, saveFailed("load event", err)
	}
	return &event, nil
}

// List returns events in start order. With publicOnly set, only published,
// non-archived events are included.
func (s *EventService) List(publicOnly bool) ([]models.Event, error) {
	query := s.hydrated().Order("starts_at ASC")
	if publicOnly {
		query = query.Where("published = ? AND archived = ?", true, false)
	}

	var events []models.Event
	if err := query.Find(&events).Error; err != nil {
		return nil, saveFailed("list events", err)
	}
	return events, nil
}

func (s *EventService) getByID(id uint) (*models.Event, error) {
	var event models.Event
	if err := s.hydrated().First(&event, id).Error; err != nil {
		return nil, saveFailed("load event", err)
	}
	return &event, nil
}

func (s *EventService) hydrated() *gorm.DB {
	return s.db.
		Preload("Lineup", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Lineup.Film").
		Preload("FeatureRequests")
}

// enrichEntries runs the metadata fetcher over entries that reference a film
// by URL, filling only the fields the caller left blank. Fetch failures leave
// the entry as submitted.
func (s *EventService) enrichEntries(ctx context.Context, entries []LineupEntryInput) []LineupEntryInput {
	if s.fetcher == nil {
		return entries
	}
	out := make([]LineupEntryInput, len(entries))
	copy(out, entries)
	for i := range out {
		e := &out[i]
		if e.FilmID != 0 || e.LetterboxdURL == "" {
			continue
		}
		meta := s.fetcher.FetchMetadata(ctx, e.LetterboxdURL)
		if meta == nil {
			continue
		}
		if e.Title == "" {
			e.Title = meta.Title
		}
		if e.Synopsis == "" {
			e.Synopsis = meta.Synopsis
		}
		if e.PosterURL == "" {
			e.PosterURL = meta.PosterURL
		}
		if e.RuntimeMin == 0 {
			e.RuntimeMin = meta.RuntimeMin
		}
		if e.Director == "" {
			e.Director = meta.Director
		}
	}
	return out
}

func validateEntries(entries []LineupEntryInput) error {
	for i, e := range entries {
		if e.FilmID != 0 {
			continue
		}
		if strings.TrimSpace(e.Title) == "" {
			return newValidationError(fmt.Sprintf("lineup[%d].title", i), "title is required for a new film")
		}
		if strings.TrimSpace(e.LetterboxdURL) == "" {
			return newValidationError(fmt.Sprintf("lineup[%d].letterboxd_url", i), "letterboxd_url is required for a new film")
		}
	}
	return nil
}

// checkFilmIDs verifies every explicitly referenced film id exists before any
// line-up row is touched.
func (s *EventService) checkFilmIDs(tx *gorm.DB, entries []LineupEntryInput) error {
	ids := make([]uint, 0, len(entries))
	seen := make(map[uint]bool)
	for _, e := range entries {
		if e.FilmID != 0 && !seen[e.FilmID] {
			seen[e.FilmID] = true
			ids = append(ids, e.FilmID)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	var count int64
	if err := tx.Model(&models.Film{}).Where("id IN ?", ids).Count(&count).Error; err != nil {
		return saveFailed("check film ids", err)
	}
	if count != int64(len(ids)) {
		return newValidationError("lineup", "one or more referenced films do not exist")
	}
	return nil
}

// reconcileLineup replaces the event's line-up wholesale: delete everything,
// recreate in order. Explicit positions win over input order as a sort key,
// then positions are renumbered 0..n-1 so they stay dense.
func (s *EventService) reconcileLineup(tx *gorm.DB, eventID uint, entries []LineupEntryInput) error {
	if err := tx.Where("event_id = ?", eventID).Delete(&models.LineupEntry{}).Error; err != nil {
		return saveFailed("clear lineup", err)
	}

	type slot struct {
		entry LineupEntryInput
		key   int
	}
	slots := make([]slot, len(entries))
	for i, e := range entries {
		key := i
		if e.Position != nil {
			key = *e.Position
		}
		slots[i] = slot{entry: e, key: key}
	}
	sort.SliceStable(slots, func(a, b int) bool { return slots[a].key < slots[b].key })

	for pos, sl := range slots {
		filmID, err := s.resolveFilm(tx, sl.entry)
		if err != nil {
			return err
		}
		row := models.LineupEntry{
			EventID:  eventID,
			Position: pos,
			FilmID:   filmID,
			Note:     sl.entry.Note,
		}
		if err := tx.Create(&row).Error; err != nil {
			return saveFailed("create lineup entry", err)
		}
	}
	return nil
}

// resolveFilm turns one entry into a film id, upserting by Letterboxd URL.
// Blank incoming attributes never overwrite stored values.
func (s *EventService) resolveFilm(tx *gorm.DB, e LineupEntryInput) (uint, error) {
	if e.FilmID != 0 {
		return e.FilmID, nil
	}

	assign := map[string]interface{}{"title": strings.TrimSpace(e.Title)}
	if e.RuntimeMin > 0 {
		assign["runtime_min"] = e.RuntimeMin
	}
	if e.PosterURL != "" {
		assign["poster_url"] = e.PosterURL
	}
	if e.Director != "" {
		assign["director"] = e.Director
	}
	if e.Synopsis != "" {
		assign["synopsis"] = e.Synopsis
	}

	film := models.Film{
		Title:         strings.TrimSpace(e.Title),
		LetterboxdURL: e.LetterboxdURL,
		RuntimeMin:    e.RuntimeMin,
		PosterURL:     e.PosterURL,
		Director:      e.Director,
		Synopsis:      e.Synopsis,
	}
	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "letterboxd_url"}},
		DoUpdates: clause.Assignments(assign),
	}).Create(&film).Error
	if err != nil {
		return 0, saveFailed("upsert film", err)
	}

	// On conflict the insert id is not reliable; read the row back.
	var resolved models.Film
	if err := tx.Where("letterboxd_url = ?", e.LetterboxdURL).First(&resolved).Error; err != nil {
		return 0, saveFailed("resolve film", err)
	}
	return resolved.ID, nil
}

// relinkFeatureRequests replaces the event's linked feature-request set. An
// empty id list clears all links.
func (s *EventService) relinkFeatureRequests(tx *gorm.DB, eventID uint, ids []uint) error {
	if len(ids) > 0 {
		var count int64
		if err := tx.Model(&models.FeatureRequest{}).Where("id IN ?", ids).Count(&count).Error; err != nil {
			return saveFailed("check feature requests", err)
		}
		if count != int64(len(ids)) {
			return newValidationError("feature_request_ids", "one or more feature requests do not exist")
		}
	}

	if err := tx.Model(&models.FeatureRequest{}).
		Where("event_id = ?", eventID).
		Update("event_id", nil).Error; err != nil {
		return saveFailed("unlink feature requests", err)
	}
	if len(ids) == 0 {
		return nil
	}
	if err := tx.Model(&models.FeatureRequest{}).
		Where("id IN ?", ids).
		Update("event_id", eventID).Error; err != nil {
		return saveFailed("link feature requests", err)
	}
	return nil
}

// uniqueSlug derives a URL-safe slug from the title, suffixing a counter until
// it is unique among events other than excludeID.
func uniqueSlug(tx *gorm.DB, title string, excludeID uint) (string, error) {
	base := slug.Make(title)
	if base == "" {
		base = "event"
	}
	candidate := base
	for i := 2; ; i++ {
		query := tx.Model(&models.Event{}).Where("slug = ?", candidate)
		if excludeID != 0 {
			query = query.Where("id <> ?", excludeID)
		}
		var count int64
		if err := query.Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}

// saveFailed logs the root cause for operators and returns the opaque failure
// clients see.
func saveFailed(op string, err error) error {
	slog.Error("persistence failure", "op", op, "error", err)
	return ErrSaveFailed
}
