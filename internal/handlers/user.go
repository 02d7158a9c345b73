package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/arijit-sen/ludo/internal/auth"
	"github.com/arijit-sen/ludo/internal/database"
	"github.com/arijit-sen/ludo/internal/models"
)

// UserCreateHandler registers a permanent account and logs it in.
func UserCreateHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" || req.Password == "" {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	user := &models.User{Username: req.Username, Password: req.Password}
	if err := database.CreateUser(r.Context(), user); err != nil {
		http.Error(w, "failed to create user", http.StatusInternalServerError)
		return
	}

	token, err := auth.CreateToken(user.ID.String())
	if err != nil {
		http.Error(w, "failed to create session", http.StatusInternalServerError)
		return
	}
	setAuthCookie(w, token)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"id":       user.ID.String(),
		"username": user.Username,
	})
}

// UserLoginHandler checks credentials and sets the session cookie.
func UserLoginHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	token, err := database.AuthenticateUser(r.Context(), req.Username, req.Password)
	if err != nil {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}
	setAuthCookie(w, token)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"token": token})
}

// EnsureEphemeralUser resolves the caller from the auth_token cookie. When
// the cookie is missing or stale it mints a guest account so anyone can
// play without registering.
func EnsureEphemeralUser(w http.ResponseWriter, r *http.Request) (*models.User, error) {
	if token := extractAuthToken(r); token != "" {
		if idStr, err := auth.AuthenticateToken(token); err == nil {
			if id, err := uuid.Parse(idStr); err == nil {
				if user, err := database.GetUserByID(r.Context(), id); err == nil {
					return user, nil
				}
			}
		}
	}
	return createEphemeralUser(w, r.Context())
}

func createEphemeralUser(w http.ResponseWriter, ctx context.Context) (*models.User, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return nil, err
	}
	user := &models.User{
		ID:          id,
		Username:    "Guest_" + id.String()[:8],
		Password:    uuid.NewString(),
		IsEphemeral: true,
	}
	if err := database.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	token, err := auth.CreateToken(user.ID.String())
	if err != nil {
		return nil, err
	}
	setAuthCookie(w, token)
	return user, nil
}

func setAuthCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "auth_token",
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(24 * time.Hour),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
