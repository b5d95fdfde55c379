package http

import (
	"net/http"
	"time"

	"github.com/karthikeyanvk18/Clerro/internal/core"
	"github.com/karthikeyanvk18/Clerro/internal/services"
)

func (s *Server) tokenExpiresAt() string {
	return time.Now().UTC().Add(s.tokens.Expiry()).Format(time.RFC3339)
}

func (s *Server) handleSignUp(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, token, err := s.users.SignUp(r.Context(), services.SignUpInput{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Phone:    req.Phone,
		Currency: req.Currency,
	})
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, authResponse{
		Token:     token,
		ExpiresAt: s.tokenExpiresAt(),
		User:      toUserResponse(user),
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, token, err := s.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, authResponse{
		Token:     token,
		ExpiresAt: s.tokenExpiresAt(),
		User:      toUserResponse(user),
	})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	user, err := s.users.Get(r.Context(), UserID(r.Context()))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toUserResponse(user))
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := s.users.UpdateProfile(r.Context(), UserID(r.Context()), req.FullName, req.Phone, req.Currency)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toUserResponse(user))
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	userID := UserID(r.Context())
	settings, err := s.users.GetSettings(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	user, err := s.users.Get(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, settingsPayload{
		EmailNotifications: settings.EmailNotifications,
		PushNotifications:  settings.PushNotifications,
		ReminderDays:       settings.ReminderDays,
		Currency:           user.Currency,
	})
}

func (s *Server) handleSaveSettings(w http.ResponseWriter, r *http.Request) {
	var req settingsPayload
	if !decodeJSON(w, r, &req) {
		return
	}
	userID := UserID(r.Context())

	saved, err := s.users.SaveSettings(r.Context(), core.Settings{
		UserID:             userID,
		EmailNotifications: req.EmailNotifications,
		PushNotifications:  req.PushNotifications,
		ReminderDays:       req.ReminderDays,
	})
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := s.users.Get(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	// Preferred currency rides along with the notification settings.
	if req.Currency != "" && req.Currency != user.Currency {
		user, err = s.users.UpdateProfile(r.Context(), userID, user.FullName, user.Phone, req.Currency)
		if err != nil {
			respondServiceError(w, r, err)
			return
		}
	}

	respondJSON(w, http.StatusOK, settingsPayload{
		EmailNotifications: saved.EmailNotifications,
		PushNotifications:  saved.PushNotifications,
		ReminderDays:       saved.ReminderDays,
		Currency:           user.Currency,
	})
}
