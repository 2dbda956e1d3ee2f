package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/let-userName-Brian/language-learner-sub000/internal/items"
)

type ItemsHandler struct {
	store *items.Store
}

func NewItemsHandler(store *items.Store) *ItemsHandler {
	return &ItemsHandler{store: store}
}

// Media returns the denormalized audio references on a lesson item.
func (h *ItemsHandler) Media(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid item id"})
		return
	}

	rec, err := h.store.GetMedia(r.Context(), id)
	if err != nil {
		if errors.Is(err, items.ErrItemNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "item not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, rec)
}
