package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/iliyamo/trip-planner/internal/model"
	"github.com/iliyamo/trip-planner/internal/repository"
)

type recordingComments struct {
	author    string
	createErr error
	deleteErr error
}

func (s *recordingComments) Create(ctx context.Context, activityID uint64, text, author string) (*model.Comment, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	s.author = author
	return &model.Comment{ID: 1, ActivityID: activityID, CommentText: text, Author: author}, nil
}
func (s *recordingComments) ListByActivity(ctx context.Context, activityID uint64) ([]model.Comment, error) {
	return nil, nil
}
func (s *recordingComments) Delete(ctx context.Context, id uint64) error { return s.deleteErr }

func TestCommentCreate_MissingFields(t *testing.T) {
	store := &recordingComments{}
	h := NewCommentHandler(store)

	for _, body := range []string{
		`{"comment_text":"hi"}`,
		`{"activity_id":3}`,
		`{"activity_id":3,"comment_text":"   "}`,
	} {
		c, rec := photoCtx(t, http.MethodPost, "/comments", body, "ana")
		if err := h.Create(c); err != nil {
			t.Fatalf("create: %v", err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %d", body, rec.Code)
		}
	}
}

func TestCommentCreate_AttributesAuthor(t *testing.T) {
	store := &recordingComments{}
	h := NewCommentHandler(store)

	c, rec := photoCtx(t, http.MethodPost, "/comments",
		`{"activity_id":3,"comment_text":"see you there"}`, "bea")
	if err := h.Create(c); err != nil {
		t.Fatalf("create: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if store.author != "bea" {
		t.Fatalf("author = %q, want the caller's nickname", store.author)
	}
}

func TestCommentCreate_ActivityGone(t *testing.T) {
	h := NewCommentHandler(&recordingComments{createErr: repository.ErrNotFound})
	c, rec := photoCtx(t, http.MethodPost, "/comments",
		`{"activity_id":99,"comment_text":"hi"}`, "ana")
	if err := h.Create(c); err != nil {
		t.Fatalf("create: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestCommentDelete_NotFound(t *testing.T) {
	h := NewCommentHandler(&recordingComments{deleteErr: repository.ErrNotFound})
	c, rec := photoCtx(t, http.MethodDelete, "/comments/5", "", "ana")
	c.SetParamNames("id")
	c.SetParamValues("5")
	if err := h.Delete(c); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
