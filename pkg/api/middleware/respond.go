package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/cbodonnell/seafarer/pkg/log"
	"github.com/cbodonnell/seafarer/pkg/messages"
)

// WriteSuccess writes a successful envelope around payload.
func WriteSuccess(w http.ResponseWriter, status int, payload interface{}) {
	env, err := messages.Success(payload)
	if err != nil {
		log.Error("failed to build response: %v", err)
		WriteFailure(w, http.StatusInternalServerError, "Failed to encode response")
		return
	}
	writeEnvelope(w, status, env)
}

// WriteFailure writes a failed envelope. message is shown to users as is.
func WriteFailure(w http.ResponseWriter, status int, message string) {
	writeEnvelope(w, status, messages.Failure(message))
}

func writeEnvelope(w http.ResponseWriter, status int, env *messages.Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		log.Error("failed to encode response: %v", err)
	}
}
