package handlers

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"github.com/mesh-intelligence/shelf/internal/pdf"
	"github.com/mesh-intelligence/shelf/pkg/types"
)

// maxImportBytes caps the CSV body accepted by HandleImport.
const maxImportBytes = 10 << 20

type importResponse struct {
	Imported int `json:"imported"`
}

// HandleImport reads a CSV document from the request body.
func (h *Handler) HandleImport(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxImportBytes))
	if err != nil {
		h.writeError(w, fmt.Errorf("%w: reading body: %v", types.ErrValidation, err))
		return
	}
	n, err := h.lib.ImportText(string(body))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, importResponse{Imported: n})
}

func (h *Handler) HandleExportCSV(w http.ResponseWriter, r *http.Request) {
	text, err := h.lib.ExportText()
	if err != nil {
		h.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="library_books.csv"`)
	if _, err := io.WriteString(w, text); err != nil {
		h.logger.Error("Unable to write CSV export", "err", err)
	}
}

func (h *Handler) HandleExportPDF(w http.ResponseWriter, r *http.Request) {
	lines, err := h.lib.ExportPrintable()
	if err != nil {
		h.writeError(w, err)
		return
	}
	// Render fully before writing so a failure can still produce an error
	// status.
	var buf bytes.Buffer
	if err := pdf.Render(&buf, lines); err != nil {
		h.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="library_books.pdf"`)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Error("Unable to write PDF export", "err", err)
	}
}
