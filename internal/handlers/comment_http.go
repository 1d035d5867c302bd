package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/ritanks-GrowthHacker/SA-Ticketing-sub001/internal/comments"
	"github.com/ritanks-GrowthHacker/SA-Ticketing-sub001/internal/middleware"
	"github.com/ritanks-GrowthHacker/SA-Ticketing-sub001/internal/models"
	"github.com/ritanks-GrowthHacker/SA-Ticketing-sub001/internal/notify"
	"github.com/ritanks-GrowthHacker/SA-Ticketing-sub001/internal/utils"
)

// CommentHTTP wires the comment endpoints to the store and the notification
// dispatcher.
type CommentHTTP struct {
	store    *comments.Store
	notifier notify.Notifier
	log      zerolog.Logger
}

func NewCommentHTTP(store *comments.Store, notifier notify.Notifier, log zerolog.Logger) *CommentHTTP {
	return &CommentHTTP{store: store, notifier: notifier, log: log}
}

// writeErr maps store errors onto the response envelope. Access denials and
// unknown ids both come out as 404 so tenant boundaries leak nothing; only
// ownership failures admit the resource exists.
func (h *CommentHTTP) writeErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, comments.ErrAccessDenied), errors.Is(err, comments.ErrNotFound):
		utils.Error(w, http.StatusNotFound, "not found")
	case errors.Is(err, comments.ErrValidation):
		utils.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, comments.ErrEditDeleted):
		utils.Error(w, http.StatusBadRequest, "comment is deleted")
	case errors.Is(err, comments.ErrOwnership):
		utils.Error(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, comments.ErrEditConflict):
		utils.Error(w, http.StatusConflict, "comment was modified, reload and retry")
	default:
		h.log.Error().Err(err).Msg("comment operation failed")
		utils.Error(w, http.StatusInternalServerError, "internal error")
	}
}

// dispatch hands mention alerts to the notifier without blocking or failing
// the request. The request context is gone by the time this runs, so it gets
// its own deadline.
func (h *CommentHTTP) dispatch(c *models.Comment, mentioned []string) {
	if len(mentioned) == 0 {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := h.notifier.MentionAlert(ctx, c.TicketID, c.ID, mentioned, c.Content); err != nil {
			h.log.Warn().Err(err).Str("commentId", c.ID).Msg("mention alert failed")
		}
	}()
}

// GET /api/comments?ticket_id=ID
func (h *CommentHTTP) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ticketID := strings.TrimSpace(r.URL.Query().Get("ticket_id"))
		if ticketID == "" {
			utils.Error(w, http.StatusBadRequest, "ticket_id is required")
			return
		}
		p, _ := middleware.PrincipalFrom(r.Context())

		flat, err := h.store.List(r.Context(), p, ticketID)
		if err != nil {
			h.writeErr(w, err)
			return
		}
		tree := comments.BuildTree(flat)
		utils.JSON(w, http.StatusOK, map[string]any{
			"comments": tree,
			"total":    len(flat),
		})
	}
}

// POST /api/comments
func (h *CommentHTTP) Create() http.HandlerFunc {
	type inDTO struct {
		TicketID string `json:"ticket_id"`
		ParentID string `json:"parent_comment_id"`
		Content  string `json:"content"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var in inDTO
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		if strings.TrimSpace(in.TicketID) == "" {
			utils.Error(w, http.StatusBadRequest, "ticket_id is required")
			return
		}
		p, _ := middleware.PrincipalFrom(r.Context())

		c, mentioned, err := h.store.Create(r.Context(), p, in.TicketID, in.ParentID, in.Content)
		if err != nil {
			h.writeErr(w, err)
			return
		}
		h.dispatch(c, mentioned)
		utils.JSON(w, http.StatusCreated, map[string]any{"comment": c})
	}
}

// GET /api/comments/{id}
func (h *CommentHTTP) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, _ := middleware.PrincipalFrom(r.Context())
		c, err := h.store.Get(r.Context(), p, chi.URLParam(r, "id"))
		if err != nil {
			h.writeErr(w, err)
			return
		}
		utils.JSON(w, http.StatusOK, map[string]any{"comment": c})
	}
}

// PUT /api/comments/{id}
func (h *CommentHTTP) Update() http.HandlerFunc {
	type inDTO struct {
		Content           string     `json:"content"`
		EditReason        string     `json:"edit_reason"`
		ExpectedUpdatedAt *time.Time `json:"expected_updated_at"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var in inDTO
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		p, _ := middleware.PrincipalFrom(r.Context())

		c, mentioned, err := h.store.Edit(r.Context(), p, chi.URLParam(r, "id"), in.Content, in.EditReason, in.ExpectedUpdatedAt)
		if err != nil {
			h.writeErr(w, err)
			return
		}
		h.dispatch(c, mentioned)
		utils.JSON(w, http.StatusOK, map[string]any{"comment": c})
	}
}

// DELETE /api/comments/{id}
func (h *CommentHTTP) Delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, _ := middleware.PrincipalFrom(r.Context())
		if err := h.store.SoftDelete(r.Context(), p, chi.URLParam(r, "id")); err != nil {
			h.writeErr(w, err)
			return
		}
		utils.JSON(w, http.StatusOK, map[string]any{})
	}
}

// GET /api/comments/{id}/history
func (h *CommentHTTP) History() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, _ := middleware.PrincipalFrom(r.Context())
		entries, err := h.store.History(r.Context(), p, chi.URLParam(r, "id"))
		if err != nil {
			h.writeErr(w, err)
			return
		}
		utils.JSON(w, http.StatusOK, map[string]any{"history": entries})
	}
}
