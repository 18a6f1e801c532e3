package procedure

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/debemdeboas/oremos-juntos/internal/config"
)

const maxBodyBytes = 4 << 20

// Writer is the unrestricted content write. It is not subject to the direct
// write policy.
type Writer interface {
	Upsert(ctx context.Context, content []byte) error
}

type Handler struct {
	secret Secret
	store  Writer
}

func NewHandler(secret Secret, store Writer) *Handler {
	return &Handler{secret: secret, store: store}
}

func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "authorization, x-client-info, apikey, content-type")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
}

func writeJSON(w http.ResponseWriter, status int, body Response) {
	w.Header().Set(config.HCType, config.CTypeJSON)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		procLogger.Error().Err(err).Msg("Error writing response")
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)

	if r.Method == http.MethodOptions {
		w.Write([]byte("ok"))
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, config.HTTPErrMethodNotAllowed, http.StatusMethodNotAllowed)
		return
	}

	if !h.secret.Configured() {
		procLogger.Error().Msg("Save procedure called without a configured password")
		writeJSON(w, http.StatusBadRequest, Response{Error: MsgMisconfiguration})
		return
	}

	var req Request
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, Response{Error: "invalid request body: " + err.Error()})
		return
	}

	if !h.secret.Verify(req.Password) {
		procLogger.Warn().Str("remote", r.RemoteAddr).Msg("Save procedure rejected a wrong password")
		writeJSON(w, http.StatusUnauthorized, Response{Error: MsgWrongPassword})
		return
	}

	body := bytes.TrimSpace(req.Content)
	if len(body) == 0 || body[0] != '{' {
		writeJSON(w, http.StatusBadRequest, Response{Error: "content must be a JSON object"})
		return
	}

	if err := h.store.Upsert(r.Context(), body); err != nil {
		procLogger.Error().Err(err).Msg("Error saving content")
		writeJSON(w, http.StatusBadRequest, Response{Error: err.Error()})
		return
	}

	procLogger.Info().Int("bytes", len(body)).Msg("Content saved")
	writeJSON(w, http.StatusOK, Response{Success: true})
}
