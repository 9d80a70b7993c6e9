package importsheet

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/pedidos/internal/http/render"
	"github.com/MrJamesThe3rd/pedidos/internal/importer"
	"github.com/MrJamesThe3rd/pedidos/internal/order"
)

type Handler struct {
	importSvc *importer.Service
	ledger    *order.Service
	maxBytes  int64
}

func NewHandler(importSvc *importer.Service, ledger *order.Service, maxBytes int64) *Handler {
	if maxBytes <= 0 {
		maxBytes = 10 << 20
	}

	return &Handler{
		importSvc: importSvc,
		ledger:    ledger,
		maxBytes:  maxBytes,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importSheet)
}

type importedOrder struct {
	ID           uuid.UUID `json:"id"`
	CustomerName string    `json:"customer_name"`
	Items        int       `json:"items"`
	Total        string    `json:"total"`
}

type importResponse struct {
	Imported int             `json:"imported"`
	Rows     int             `json:"rows"`
	Orders   []importedOrder `json:"orders"`
}

func (h *Handler) importSheet(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)

	if err := r.ParseMultipartForm(h.maxBytes); err != nil {
		render.Error(w, http.StatusBadRequest, "failed to parse form: "+err.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		render.Error(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	var format importer.Format
	if f := r.FormValue("format"); f != "" {
		format, err = importer.ParseFormat(f)
	} else {
		format, err = importer.FormatFromFilename(header.Filename)
	}

	if err != nil {
		render.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	rows, err := h.importSvc.Import(format, file)
	if err != nil {
		render.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	orders, err := h.ledger.Import(r.Context(), rows)
	if err != nil {
		if errors.Is(err, order.ErrInvalidNumber) {
			render.Error(w, http.StatusUnprocessableEntity, err.Error())
			return
		}

		render.LedgerError(w, err)

		return
	}

	resp := importResponse{
		Imported: len(orders),
		Rows:     len(rows),
		Orders:   make([]importedOrder, 0, len(orders)),
	}

	for _, o := range orders {
		resp.Orders = append(resp.Orders, importedOrder{
			ID:           o.ID,
			CustomerName: o.CustomerName,
			Items:        len(o.LineItems),
			Total:        o.Total.StringFixed(2),
		})
	}

	render.JSON(w, http.StatusCreated, resp)
}
