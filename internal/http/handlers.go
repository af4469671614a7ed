package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"gastobot/internal/log"
)

// messageRequest is one inbound chat update. UpdateID is the messaging
// platform's retry-stable identifier; duplicates are acknowledged without
// reprocessing.
type messageRequest struct {
	UpdateID int64  `json:"update_id"`
	ChatID   string `json:"chat_id"`
	Text     string `json:"text"`
}

const maxMessageBytes = 64 << 10

// handleHealth performs basic liveness check.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(s.startedAt).String(),
	})
}

// handleMessage runs one chat message through the assistant.
func (s *Server) handleMessage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req messageRequest
	dec := json.NewDecoder(io.LimitReader(r.Body, maxMessageBytes))
	if err := dec.Decode(&req); err != nil {
		s.logger.WarnContext(r.Context(), "Malformed message request", log.FieldError, err)
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	if req.UpdateID != 0 {
		key := fmt.Sprintf("update:%d", req.UpdateID)
		if !s.seenUpdates.Add(key, struct{}{}) {
			s.logger.InfoContext(r.Context(), "Duplicate update dropped",
				log.FieldChatID, req.ChatID, "update_id", req.UpdateID)
			writeJSON(w, http.StatusOK, replyResponse{Kind: "duplicate"})
			return
		}
	}

	reply, err := s.assistant.HandleMessage(r.Context(), req.ChatID, req.Text)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Message handling failed",
			log.FieldError, err, log.FieldChatID, req.ChatID)
		writeError(w, http.StatusInternalServerError, "could not process message")
		return
	}

	s.logger.InfoContext(r.Context(), "Message handled",
		log.FieldChatID, req.ChatID,
		log.FieldIntent, string(reply.Intent),
		"kind", string(reply.Kind))
	writeJSON(w, http.StatusOK, toReplyResponse(reply))
}

// handleReceipt accepts a multipart receipt image, transcribes it and records
// the resulting transaction.
func (s *Server) handleReceipt(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "image too large")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid multipart body")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "image file is required")
		return
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "could not read image")
		return
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = http.DetectContentType(image)
	}
	chatID := r.FormValue("chat_id")

	reply, err := s.assistant.HandleReceipt(r.Context(), chatID, image, mimeType)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Receipt handling failed",
			log.FieldError, err, log.FieldChatID, chatID)
		writeError(w, http.StatusInternalServerError, "could not process receipt")
		return
	}

	s.logger.InfoContext(r.Context(), "Receipt handled",
		log.FieldChatID, chatID, "kind", string(reply.Kind))
	writeJSON(w, http.StatusOK, toReplyResponse(reply))
}

// handleListTransactions returns every recorded transaction.
func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	doc, err := s.store.Load(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Load document failed",
			log.FieldError, err, log.FieldOperation, log.OpList)
		writeError(w, http.StatusInternalServerError, "could not load transactions")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"transactions": doc.Transactions,
		"count":        len(doc.Transactions),
	})
}
