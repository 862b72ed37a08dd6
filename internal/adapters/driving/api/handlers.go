package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/custodia-labs/resumechat/internal/core/domain"
	"github.com/custodia-labs/resumechat/internal/logger"
)

// Error messages returned to clients.
const (
	msgInvalidBody   = "invalid request body"
	msgQueryRequired = "query is required"
	msgTooLarge      = "request body too large"
	msgInternal      = "internal error"
)

// ChatRequest is the POST /chat body.
type ChatRequest struct {
	Query string `json:"query"`
}

// ChatResponse is the POST /chat success body.
type ChatResponse struct {
	Response string `json:"response"`
	Prompt   string `json:"prompt"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	rw := &statusWriter{ResponseWriter: w}
	defer func() {
		if p := recover(); p != nil {
			s.metrics.ChatRequest(http.StatusInternalServerError, time.Since(start))
			panic(p)
		}
		s.metrics.ChatRequest(rw.status(), time.Since(start))
	}()

	req, status, msg := decodeChatRequest(rw, r)
	if status != 0 {
		writeError(rw, status, msg)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.RequestTimeout)
	defer cancel()

	answer, err := s.chat.Ask(ctx, req.Query)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(rw, http.StatusBadRequest, msgQueryRequired)
			return
		}
		logger.Error("chat request %s failed: %v", requestID(r.Context()), err)
		writeError(rw, http.StatusInternalServerError, msgInternal)
		return
	}

	writeJSON(rw, http.StatusOK, ChatResponse{Response: answer.Response, Prompt: answer.Prompt})
}

// decodeChatRequest returns a non-zero status and message when the body is unusable.
func decodeChatRequest(w http.ResponseWriter, r *http.Request) (ChatRequest, int, string) {
	var req ChatRequest

	body := http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return req, http.StatusBadRequest, msgTooLarge
		}
		return req, http.StatusBadRequest, msgInvalidBody
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return req, http.StatusBadRequest, msgInvalidBody
	}
	if strings.TrimSpace(req.Query) == "" {
		return req, http.StatusBadRequest, msgQueryRequired
	}
	return req, 0, ""
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Debug("write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}
