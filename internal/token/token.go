// Package token issues and verifies the signed session tokens that prove a
// successful login. A token binds the shared account username to the
// display nickname the caller chose at login time; there is no refresh
// mechanism, re-login is the only path after expiry.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TTL is the fixed token lifetime. Collaborators share one credential and
// are assumed non-adversarial; a week keeps re-logins rare on a trip.
const TTL = 7 * 24 * time.Hour

var (
	// ErrExpired means the signature checked out but the token is past
	// its expiry.
	ErrExpired = errors.New("token expired")
	// ErrInvalid covers everything else: bad signature, wrong algorithm,
	// malformed or incomplete payload.
	ErrInvalid = errors.New("token invalid")
)

// Claims is the verified identity carried by a session token.
type Claims struct {
	Username string // shared account identity
	Nickname string // display identity chosen at this login
}

// Issue builds and signs an HS256 session token for a login. It is called
// only after credential verification succeeds.
func Issue(secret, username, nickname string) (string, time.Time, error) {
	now := time.Now().UTC()
	exp := now.Add(TTL)
	claims := jwt.MapClaims{
		"username": username,
		"nickname": nickname,
		"iat":      now.Unix(),
		"exp":      exp.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// Verify checks signature and expiry and returns the identity claims.
// It fails with ErrExpired on a stale token and ErrInvalid on anything
// tampered, malformed or signed with another key or algorithm.
func Verify(secret, raw string) (Claims, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrExpired
		}
		return Claims{}, ErrInvalid
	}
	if !tok.Valid {
		return Claims{}, ErrInvalid
	}
	mc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalid
	}
	username, _ := mc["username"].(string)
	nickname, _ := mc["nickname"].(string)
	if username == "" || nickname == "" {
		return Claims{}, ErrInvalid
	}
	return Claims{Username: username, Nickname: nickname}, nil
}
