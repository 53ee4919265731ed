package httpapi

import (
	"errors"
	"net/http"

	"github.com/custodia-labs/sitegen/internal/core/domain"
	"github.com/custodia-labs/sitegen/internal/logger"
)

// GET /api/health
func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "ok",
		Timestamp: timestamp(s.now()),
		Message:   HealthMessage,
	})
}

// POST /api/chat
func (s *Server) createChat(w http.ResponseWriter, r *http.Request) {
	var req createChatRequest
	decodeBody(http.MaxBytesReader(w, r.Body, maxBodyBytes), &req)

	chat, err := s.relay.CreateChat(r.Context(), req.Message)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Message is required"})
			return
		}
		logger.Error("create chat failed: %v trace=%s", err, TraceIDFromContext(r.Context()))
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error:   "Failed to create chat",
			Details: err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{Success: true, Data: chat, Timestamp: timestamp(s.now())})
}

// POST /api/chat/send
func (s *Server) sendMessage(w http.ResponseWriter, r *http.Request) {
	var req sendMessageRequest
	decodeBody(http.MaxBytesReader(w, r.Body, maxBodyBytes), &req)

	chat, err := s.relay.SendMessage(r.Context(), req.ChatID, req.Message)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Chat ID and message are required"})
			return
		}
		logger.Error("send message failed: %v trace=%s", err, TraceIDFromContext(r.Context()))
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error:   "Failed to send message",
			Details: err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{Success: true, Data: chat, Timestamp: timestamp(s.now())})
}

func (s *Server) notFound(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusNotFound, notFoundResponse{
		Error:              "Not Found",
		AvailableEndpoints: AvailableEndpoints,
	})
}
