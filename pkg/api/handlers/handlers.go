package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/cbodonnell/seafarer/pkg/api/middleware"
	authhandlers "github.com/cbodonnell/seafarer/pkg/auth/handlers"
	"github.com/cbodonnell/seafarer/pkg/log"
	"github.com/cbodonnell/seafarer/pkg/messages"
	"github.com/cbodonnell/seafarer/pkg/repositories"
	"github.com/gorilla/mux"
)

// maxRequestBytes bounds request bodies, including save payloads.
const maxRequestBytes = 1 << 20

type exchangeFunc func(ctx context.Context, email string, password string) (string, error)

func HandleLogin(authHandler authhandlers.AuthHandler) http.HandlerFunc {
	return handleCredentials("login", authHandler.Login)
}

func HandleRegister(authHandler authhandlers.AuthHandler) http.HandlerFunc {
	return handleCredentials("register", authHandler.Register)
}

func handleCredentials(action string, exchange exchangeFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := &messages.LoginRequest{}
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(req); err != nil {
			log.Debug("failed to decode %s request: %v", action, err)
			middleware.WriteFailure(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		token, err := exchange(r.Context(), req.Email, req.Password)
		if err != nil {
			if authhandlers.IsCredentialsError(err) {
				middleware.WriteFailure(w, http.StatusUnauthorized, err.Error())
				return
			}
			log.Error("failed to %s: %v", action, err)
			middleware.WriteFailure(w, http.StatusInternalServerError, "Failed to "+action)
			return
		}

		middleware.WriteSuccess(w, http.StatusOK, &messages.LoginPayload{Token: token})
	}
}

func HandleMe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := middleware.UserFromContext(r.Context())
		if !ok {
			log.Error("failed to get user from context")
			middleware.WriteFailure(w, http.StatusInternalServerError, "Failed to get user from context")
			return
		}
		middleware.WriteSuccess(w, http.StatusOK, user.Profile())
	}
}

func HandleListSaves(repository repositories.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := middleware.UserFromContext(r.Context())
		if !ok {
			log.Error("failed to get user from context")
			middleware.WriteFailure(w, http.StatusInternalServerError, "Failed to get user from context")
			return
		}

		saves, err := repository.ListSaves(r.Context(), user.ID)
		if err != nil {
			log.Error("failed to list saves: %v", err)
			middleware.WriteFailure(w, http.StatusInternalServerError, "Failed to list saves")
			return
		}
		for _, save := range saves {
			save.UserID = ""
		}

		middleware.WriteSuccess(w, http.StatusOK, saves)
	}
}

func HandleCreateSave(repository repositories.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := middleware.UserFromContext(r.Context())
		if !ok {
			log.Error("failed to get user from context")
			middleware.WriteFailure(w, http.StatusInternalServerError, "Failed to get user from context")
			return
		}

		req := &messages.CreateSaveRequest{}
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(req); err != nil {
			log.Debug("failed to decode save request: %v", err)
			middleware.WriteFailure(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if len(req.Payload) == 0 {
			middleware.WriteFailure(w, http.StatusBadRequest, "Missing payload")
			return
		}

		save, err := repository.CreateSave(r.Context(), user.ID, req.Payload)
		if err != nil {
			log.Error("failed to create save: %v", err)
			middleware.WriteFailure(w, http.StatusInternalServerError, "Failed to create save")
			return
		}

		middleware.WriteSuccess(w, http.StatusCreated, &messages.CreateSavePayload{ID: save.ID})
	}
}

func HandleDeleteSave(repository repositories.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := middleware.UserFromContext(r.Context())
		if !ok {
			log.Error("failed to get user from context")
			middleware.WriteFailure(w, http.StatusInternalServerError, "Failed to get user from context")
			return
		}

		saveID := mux.Vars(r)["saveID"]
		if err := repository.DeleteSave(r.Context(), user.ID, saveID); err != nil {
			if repositories.IsNotFound(err) {
				middleware.WriteFailure(w, http.StatusNotFound, "Save not found")
				return
			}
			log.Error("failed to delete save: %v", err)
			middleware.WriteFailure(w, http.StatusInternalServerError, "Failed to delete save")
			return
		}

		middleware.WriteSuccess(w, http.StatusOK, nil)
	}
}
