package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/trip-planner/internal/auth"
	"github.com/iliyamo/trip-planner/internal/logger"
	"github.com/iliyamo/trip-planner/internal/model"
	"github.com/iliyamo/trip-planner/internal/repository"
	"github.com/iliyamo/trip-planner/internal/token"
)

// CredentialStore looks up the shared login credential.
type CredentialStore interface {
	GetByUsername(ctx context.Context, username string) (model.Credential, error)
}

// SessionLog records successful logins. Append-only.
type SessionLog interface {
	Append(ctx context.Context, nickname string) error
}

// AuthHandler implements the login endpoint. The group shares one
// credential; each person picks a nickname at login and that nickname is
// what every attribution in the system is based on.
type AuthHandler struct {
	Secret      string
	Credentials CredentialStore
	Sessions    SessionLog
}

func NewAuthHandler(secret string, c CredentialStore, s SessionLog) *AuthHandler {
	return &AuthHandler{Secret: secret, Credentials: c, Sessions: s}
}

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Nickname string `json:"nickname"`
}

// Login verifies the shared credential, logs the session and issues a
// 7-day token carrying the chosen nickname. Unknown username and wrong
// password answer identically so the response does not reveal which
// usernames exist. Nothing is written on failure.
func (h *AuthHandler) Login(c echo.Context) error {
	log := logger.Get()

	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Nickname = strings.TrimSpace(req.Nickname)
	if req.Username == "" || req.Password == "" || req.Nickname == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username, password and nickname are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cred, err := h.Credentials.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		log.Error().Err(err).Msg("login: credential lookup failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "login failed"})
	}
	if !auth.VerifyPassword(cred.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	if err := h.Sessions.Append(ctx, req.Nickname); err != nil {
		log.Error().Err(err).Msg("login: session log failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "login failed"})
	}

	signed, _, err := token.Issue(h.Secret, cred.Username, req.Nickname)
	if err != nil {
		log.Error().Err(err).Msg("login: token issue failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "login failed"})
	}

	log.Info().Str("nickname", req.Nickname).Msg("login ok")
	return c.JSON(http.StatusOK, echo.Map{
		"token":    signed,
		"nickname": req.Nickname,
		"message":  "login successful",
	})
}
