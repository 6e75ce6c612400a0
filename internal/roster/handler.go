// internal/roster/handler.go
package roster

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Handler serves the roster endpoints consumed by the website and the bot.
type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

// HandleRoot reports that the API is up.
func (h *Handler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	json.NewEncoder(w).Encode(map[string]string{"message": "Bot API is running"})
}

// HandleLeaderboard returns the top members ordered by XP.
func (h *Handler) HandleLeaderboard(w http.ResponseWriter, r *http.Request) {
	results, err := h.store.Leaderboard(r.Context())
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "query_error", err.Error())
		return
	}
	json.NewEncoder(w).Encode(results)
}

func (h *Handler) HandleListHR(w http.ResponseWriter, r *http.Request) { h.list(w, r, HRRecords) }
func (h *Handler) HandleListLR(w http.ResponseWriter, r *http.Request) { h.list(w, r, LRRecords) }

func (h *Handler) HandleCreateHR(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, HRRecords)
}

func (h *Handler) HandleCreateLR(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, LRRecords)
}

func (h *Handler) HandleCreateUser(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, Members)
}

func (h *Handler) HandleUpdateHR(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, HRRecords)
}

func (h *Handler) HandleUpdateLR(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, LRRecords)
}

func (h *Handler) HandleUpdateUser(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, Members)
}

func (h *Handler) HandleDeleteHR(w http.ResponseWriter, r *http.Request) {
	h.delete(w, r, HRRecords)
}

func (h *Handler) HandleDeleteLR(w http.ResponseWriter, r *http.Request) {
	h.delete(w, r, LRRecords)
}

func (h *Handler) HandleDeleteUser(w http.ResponseWriter, r *http.Request) {
	h.delete(w, r, Members)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request, table Table) {
	results, err := h.store.List(r.Context(), table)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "query_error", err.Error())
		return
	}
	json.NewEncoder(w).Encode(results)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request, table Table) {
	var data map[string]any
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid_json", "Invalid JSON body")
		return
	}

	// username is the one field every record must start with; user_id and
	// the stat columns can be filled in later.
	if _, ok := data["username"]; !ok {
		h.writeError(w, http.StatusBadRequest, "missing_field", "Missing required field: username")
		return
	}

	row, err := h.store.Create(r.Context(), table, table.FilterPayload(data))
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "insert_error", err.Error())
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(row)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request, table Table) {
	id := chi.URLParam(r, "id")

	var data map[string]any
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid_json", "Invalid JSON body")
		return
	}

	payload := table.FilterPayload(data)
	if len(payload) == 0 {
		h.writeError(w, http.StatusBadRequest, "no_valid_fields", "No valid fields to update")
		return
	}

	row, err := h.store.Update(r.Context(), table, id, payload)
	if errors.Is(err, ErrNotFound) {
		h.writeError(w, http.StatusNotFound, "not_found", "Record not found")
		return
	}
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "update_error", err.Error())
		return
	}

	json.NewEncoder(w).Encode(row)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request, table Table) {
	id := chi.URLParam(r, "id")

	if err := h.store.Delete(r.Context(), table, id); err != nil {
		h.writeError(w, http.StatusInternalServerError, "delete_error", err.Error())
		return
	}
	json.NewEncoder(w).Encode(map[string]any{"success": true})
}

func (h *Handler) writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{
		"error":   code,
		"message": message,
	})
}
