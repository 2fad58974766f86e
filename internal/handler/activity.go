package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/trip-planner/internal/logger"
	"github.com/iliyamo/trip-planner/internal/model"
	"github.com/iliyamo/trip-planner/internal/queue"
	"github.com/iliyamo/trip-planner/internal/repository"
)

// ActivityStore is the persistence surface the activity endpoints need.
type ActivityStore interface {
	List(ctx context.Context) ([]model.ActivitySummary, error)
	GetByID(ctx context.Context, id uint64) (*model.Activity, error)
	Create(ctx context.Context, in repository.ActivityInput, createdBy string) (*model.Activity, error)
	Update(ctx context.Context, id uint64, in repository.ActivityInput) (*model.Activity, error)
	ToggleComplete(ctx context.Context, id uint64, nickname string) (*model.Activity, error)
	Delete(ctx context.Context, id uint64) error
}

// EventPublisher emits completion events for external listeners. Optional;
// a nil publisher means no events.
type EventPublisher interface {
	ActivityCompleted(ctx context.Context, event queue.ActivityCompletedEvent) error
}

// ActivityHandler bundles the stores behind the /activities endpoints.
// The detail view composes three queries, mirroring the three tables.
type ActivityHandler struct {
	Activities ActivityStore
	Photos     PhotoStore
	Comments   CommentStore
	Events     EventPublisher
}

func NewActivityHandler(a ActivityStore, p PhotoStore, c CommentStore) *ActivityHandler {
	return &ActivityHandler{Activities: a, Photos: p, Comments: c}
}

type activityReq struct {
	Title        string `json:"title"`
	Location     string `json:"location"`
	ActivityDate string `json:"activity_date"`
	ActivityTime string `json:"activity_time"`
}

func (r activityReq) input() repository.ActivityInput {
	in := repository.ActivityInput{
		Title:        strings.TrimSpace(r.Title),
		ActivityDate: strings.TrimSpace(r.ActivityDate),
		ActivityTime: model.NormalizeTime(strings.TrimSpace(r.ActivityTime)),
	}
	if loc := strings.TrimSpace(r.Location); loc != "" {
		in.Location = &loc
	}
	return in
}

// List returns every activity with photo/comment counts, ordered by date
// then time of day.
func (h *ActivityHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	items, err := h.Activities.List(ctx)
	if err != nil {
		lg := logger.Get()
		lg.Error().Err(err).Msg("list activities failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to list activities"})
	}
	return c.JSON(http.StatusOK, items)
}

// Get returns one activity with its full photo feed (newest first) and
// comment transcript (oldest first).
func (h *ActivityHandler) Get(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	act, err := h.Activities.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "activity not found"})
		}
		lg := logger.Get()
		lg.Error().Err(err).Uint64("id", id).Msg("get activity failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load activity"})
	}
	photos, err := h.Photos.ListByActivity(ctx, id)
	if err != nil {
		lg := logger.Get()
		lg.Error().Err(err).Uint64("id", id).Msg("load photos failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load activity"})
	}
	comments, err := h.Comments.ListByActivity(ctx, id)
	if err != nil {
		lg := logger.Get()
		lg.Error().Err(err).Uint64("id", id).Msg("load comments failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load activity"})
	}
	return c.JSON(http.StatusOK, model.ActivityDetail{Activity: *act, Photos: photos, Comments: comments})
}

// Create adds an activity attributed to the caller's nickname.
func (h *ActivityHandler) Create(c echo.Context) error {
	var req activityReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	in := req.input()
	if in.Title == "" || in.ActivityDate == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title and activity_date are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	act, err := h.Activities.Create(ctx, in, nickname(c))
	if err != nil {
		lg := logger.Get()
		lg.Error().Err(err).Msg("create activity failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create activity"})
	}
	return c.JSON(http.StatusCreated, act)
}

// Update replaces an activity's editable fields. No ownership restriction:
// any authenticated caller may edit any activity.
func (h *ActivityHandler) Update(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req activityReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	in := req.input()
	if in.Title == "" || in.ActivityDate == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title and activity_date are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	act, err := h.Activities.Update(ctx, id, in)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "activity not found"})
		}
		lg := logger.Get()
		lg.Error().Err(err).Uint64("id", id).Msg("update activity failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update activity"})
	}
	return c.JSON(http.StatusOK, act)
}

// ToggleComplete flips completion. The store does the flip atomically;
// completed_by becomes the current caller when completing, null when
// un-completing.
func (h *ActivityHandler) ToggleComplete(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	act, err := h.Activities.ToggleComplete(ctx, id, nickname(c))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "activity not found"})
		}
		lg := logger.Get()
		lg.Error().Err(err).Uint64("id", id).Msg("toggle activity failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to toggle activity"})
	}

	if act.Completed && h.Events != nil {
		h.publishCompleted(*act)
	}
	return c.JSON(http.StatusOK, act)
}

// publishCompleted emits the completion event without holding up the
// response; the broker being down must never fail a toggle.
func (h *ActivityHandler) publishCompleted(act model.Activity) {
	ev := queue.ActivityCompletedEvent{
		ActivityID:   act.ID,
		Title:        act.Title,
		ActivityDate: act.ActivityDate.Format("2006-01-02"),
	}
	if act.CompletedBy != nil {
		ev.CompletedBy = *act.CompletedBy
	}
	if act.CompletedAt != nil {
		ev.CompletedAt = act.CompletedAt.UTC().Format(time.RFC3339)
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = h.Events.ActivityCompleted(ctx, ev)
	}()
}

// Delete removes an activity together with its photos and comments.
func (h *ActivityHandler) Delete(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Activities.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "activity not found"})
		}
		lg := logger.Get()
		lg.Error().Err(err).Uint64("id", id).Msg("delete activity failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete activity"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "activity deleted"})
}
