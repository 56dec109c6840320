package handlers

import (
	"fmt"
	"net/http"

	"github.com/mesh-intelligence/shelf/pkg/types"
)

type bookRequest struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	ISBN   string `json:"isbn"`
	Genre  string `json:"genre"`
}

func (h *Handler) HandleListBooks(w http.ResponseWriter, r *http.Request) {
	books, err := h.lib.Catalog.Search(r.URL.Query().Get("q"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, books)
}

func (h *Handler) HandleAddBook(w http.ResponseWriter, r *http.Request) {
	var req bookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, fmt.Errorf("%w: invalid JSON: %v", types.ErrValidation, err))
		return
	}
	in := types.BookInput{Title: req.Title, Author: req.Author, ISBN: req.ISBN, Genre: req.Genre}
	if err := h.lib.Catalog.Add(in); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, in.Book(true))
}

// HandleDeleteAll requires ?confirm=yes since the operation is irreversible.
func (h *Handler) HandleDeleteAll(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("confirm") != "yes" {
		h.writeError(w, fmt.Errorf("%w: confirm=yes is required", types.ErrValidation))
		return
	}
	if err := h.lib.Catalog.DeleteAll(); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleBorrow(w http.ResponseWriter, r *http.Request) {
	isbn := r.PathValue("isbn")
	if err := h.lib.Borrow(isbn); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeBook(w, isbn)
}

func (h *Handler) HandleReturn(w http.ResponseWriter, r *http.Request) {
	isbn := r.PathValue("isbn")
	if err := h.lib.Return(isbn); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeBook(w, isbn)
}

func (h *Handler) HandleLoans(w http.ResponseWriter, r *http.Request) {
	loans, err := h.lib.Ledger.ListActive()
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, loans)
}

func (h *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.lib.Stats()
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) writeBook(w http.ResponseWriter, isbn string) {
	book, err := h.lib.Catalog.Find(isbn)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, book)
}
