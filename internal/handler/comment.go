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

// CommentStore is the persistence surface the comment endpoints need.
type CommentStore interface {
	Create(ctx context.Context, activityID uint64, text, author string) (*model.Comment, error)
	ListByActivity(ctx context.Context, activityID uint64) ([]model.Comment, error)
	Delete(ctx context.Context, id uint64) error
}

// CommentHandler implements /comments.
type CommentHandler struct {
	Comments CommentStore
}

func NewCommentHandler(c CommentStore) *CommentHandler { return &CommentHandler{Comments: c} }

type createCommentReq struct {
	ActivityID  uint64 `json:"activity_id"`
	CommentText string `json:"comment_text"`
}

// Create appends a comment to an activity's transcript, attributed to the
// caller's nickname.
func (h *CommentHandler) Create(c echo.Context) error {
	var req createCommentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	text := strings.TrimSpace(req.CommentText)
	if req.ActivityID == 0 || text == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "activity_id and comment_text are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	comment, err := h.Comments.Create(ctx, req.ActivityID, text, nickname(c))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "activity not found"})
		}
		lg := logger.Get()
		lg.Error().Err(err).Uint64("activity_id", req.ActivityID).Msg("create comment failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to add comment"})
	}
	return c.JSON(http.StatusCreated, comment)
}

// Delete removes a comment.
func (h *CommentHandler) Delete(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Comments.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "comment not found"})
		}
		lg := logger.Get()
		lg.Error().Err(err).Uint64("id", id).Msg("delete comment failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete comment"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "comment deleted"})
}
