package server

import (
	goerrors "errors"
	"fmt"
	"log/slog"
	"net/http"

	"support-chat/domain"
	"support-chat/errors"

	"github.com/gorilla/mux"
)

type handlers struct {
	deps    Dependencies
	options Options
	log     *slog.Logger
}

func (h *handlers) sendMessage(w http.ResponseWriter, r *http.Request) {
	var cmd domain.SendMessageCommand
	if err := decodeJSON(r, &cmd); err != nil {
		h.writeDecodeError(w, err)
		return
	}

	stored, err := h.deps.Chat.SendMessage(r.Context(), cmd)
	if err != nil {
		writeError(w, h.log, err, "Failed to send message")
		return
	}
	h.log.Info("Message sent", "user_key", stored.UserKey, "message_id", stored.ID, "sender", stored.Sender)
	writeJSON(w, http.StatusOK, sendResponse{
		Success:   true,
		Message:   "Message sent successfully!",
		MessageID: stored.ID,
	})
}

func (h *handlers) getAllMessages(w http.ResponseWriter, r *http.Request) {
	messages, err := h.deps.Messages.GetAllMessages(r.Context())
	if err != nil {
		writeError(w, h.log, err, "Failed to load messages")
		return
	}
	writeJSON(w, http.StatusOK, messages)
}

func (h *handlers) getMessages(w http.ResponseWriter, r *http.Request) {
	messages, err := h.deps.Messages.GetMessages(r.Context(), mux.Vars(r)["userKey"])
	if err != nil {
		writeError(w, h.log, err, "Failed to load messages")
		return
	}
	writeJSON(w, http.StatusOK, messages)
}

func (h *handlers) getConversationSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.deps.Messages.GetConversationSummary(r.Context(), mux.Vars(r)["userKey"])
	if err != nil {
		writeError(w, h.log, err, "Failed to get conversation summary")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *handlers) deleteMessage(w http.ResponseWriter, r *http.Request) {
	err := h.deps.Messages.DeleteMessage(r.Context(), mux.Vars(r)["messageId"])
	if err != nil {
		writeError(w, h.log, err, "Failed to delete message")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// writeDecodeError answers 413 for oversized bodies and 400 for everything else.
func (h *handlers) writeDecodeError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if goerrors.As(err, &tooLarge) {
		writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{
			Success: false,
			Error:   fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit),
		})
		return
	}
	writeError(w, h.log, fmt.Errorf("%w: malformed JSON body", errors.ErrInvalidInput), "")
}
