package export

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/pedidos/internal/export"
	"github.com/MrJamesThe3rd/pedidos/internal/http/render"
	"github.com/MrJamesThe3rd/pedidos/internal/importer"
	"github.com/MrJamesThe3rd/pedidos/internal/order"
)

type Handler struct {
	svc    *export.Service
	ledger *order.Service
}

func NewHandler(svc *export.Service, ledger *order.Service) *Handler {
	return &Handler{svc: svc, ledger: ledger}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.download)
}

// download sends the whole ledger as pedidos.xlsx (default) or pedidos.csv.
func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	format := importer.FormatXLSX

	if f := r.URL.Query().Get("format"); f != "" {
		parsed, err := importer.ParseFormat(f)
		if err != nil {
			render.Error(w, http.StatusBadRequest, err.Error())
			return
		}

		format = parsed
	}

	// Buffered so a failed write can still become a JSON error.
	var buf bytes.Buffer
	if err := h.svc.Write(&buf, format, h.ledger.List(order.Filter{})); err != nil {
		slog.Error("failed to export ledger", "error", err)
		render.Error(w, http.StatusInternalServerError, "internal error")

		return
	}

	w.Header().Set("Content-Type", export.ContentType(format))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(format)))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("failed to send export", "error", err)
	}
}
