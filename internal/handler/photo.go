package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/trip-planner/internal/logger"
	"github.com/iliyamo/trip-planner/internal/model"
	"github.com/iliyamo/trip-planner/internal/repository"
)

// PhotoStore is the persistence surface the photo endpoints need.
type PhotoStore interface {
	Create(ctx context.Context, activityID uint64, photoData string, caption *string, uploadedBy string) (*model.Photo, error)
	ListByActivity(ctx context.Context, activityID uint64) ([]model.Photo, error)
	Gallery(ctx context.Context) ([]model.GalleryPhoto, error)
	Delete(ctx context.Context, id uint64) error
}

// PhotoHandler implements /photos. Images arrive and leave as base64 text.
type PhotoHandler struct {
	Photos PhotoStore
}

func NewPhotoHandler(p PhotoStore) *PhotoHandler { return &PhotoHandler{Photos: p} }

type createPhotoReq struct {
	ActivityID uint64 `json:"activity_id"`
	PhotoData  string `json:"photo_data"`
	Caption    string `json:"caption"`
}

// Create attaches a photo to an activity, attributed to the caller's
// nickname. The activity must exist.
func (h *PhotoHandler) Create(c echo.Context) error {
	var req createPhotoReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.ActivityID == 0 || req.PhotoData == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "activity_id and photo_data are required"})
	}
	var caption *string
	if v := strings.TrimSpace(req.Caption); v != "" {
		caption = &v
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	photo, err := h.Photos.Create(ctx, req.ActivityID, req.PhotoData, caption, nickname(c))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "activity not found"})
		}
		lg := logger.Get()
		lg.Error().Err(err).Uint64("activity_id", req.ActivityID).Msg("create photo failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to add photo"})
	}
	return c.JSON(http.StatusCreated, photo)
}

// Gallery lists every photo across activities, newest first, with the
// owning activity's title and date.
func (h *PhotoHandler) Gallery(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	photos, err := h.Photos.Gallery(ctx)
	if err != nil {
		lg := logger.Get()
		lg.Error().Err(err).Msg("gallery failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load gallery"})
	}
	return c.JSON(http.StatusOK, photos)
}

// Delete removes a photo.
func (h *PhotoHandler) Delete(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Photos.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "photo not found"})
		}
		lg := logger.Get()
		lg.Error().Err(err).Uint64("id", id).Msg("delete photo failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete photo"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "photo deleted"})
}
