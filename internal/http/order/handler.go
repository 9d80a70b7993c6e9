package order

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/pedidos/internal/http/bind"
	"github.com/MrJamesThe3rd/pedidos/internal/http/render"
	"github.com/MrJamesThe3rd/pedidos/internal/order"
)

type Handler struct {
	svc *order.Service
}

func NewHandler(svc *order.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Post("/quote", h.quote)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.Post("/{id}/payments", h.pay)
}

type draftItemRequest struct {
	Name          string    `json:"name" validate:"max=200"`
	Price         bind.Text `json:"price" validate:"max=32"`
	Brand         string    `json:"brand" validate:"max=32"`
	PaymentMethod string    `json:"payment_method,omitempty" validate:"max=32"`
}

type draftRequest struct {
	CustomerName  string             `json:"customer_name" validate:"max=200"`
	PaymentMethod string             `json:"payment_method" validate:"max=32"`
	Items         []draftItemRequest `json:"items" validate:"max=500,dive"`
}

func (req draftRequest) toDraft() order.Draft {
	d := order.Draft{
		CustomerName:  req.CustomerName,
		PaymentMethod: req.PaymentMethod,
		Items:         make([]order.DraftItem, 0, len(req.Items)),
	}

	for _, item := range req.Items {
		d.Items = append(d.Items, order.DraftItem{
			Name:          item.Name,
			Price:         string(item.Price),
			Brand:         item.Brand,
			PaymentMethod: item.PaymentMethod,
		})
	}

	return d
}

type paymentRequest struct {
	Amount bind.Text `json:"amount" validate:"required,max=32"`
}

type quoteResponse struct {
	Total string `json:"total"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := order.NewFilter(q.Get("payment"), q.Get("brand"))

	render.JSON(w, http.StatusOK, toResponseList(h.svc.List(filter)))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	o, err := h.svc.Get(id)
	if err != nil {
		render.LedgerError(w, err)
		return
	}

	render.JSON(w, http.StatusOK, toResponse(o))
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeDraft(w, r)
	if !ok {
		return
	}

	o, err := h.svc.Submit(r.Context(), req.toDraft())
	if err != nil {
		render.LedgerError(w, err)
		return
	}

	render.JSON(w, http.StatusCreated, toResponse(o))
}

// update re-submits a full draft for an existing order. The amount already paid is kept.
func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	req, ok := decodeDraft(w, r)
	if !ok {
		return
	}

	d := req.toDraft()
	d.EditingID = id

	o, err := h.svc.Submit(r.Context(), d)
	if err != nil {
		render.LedgerError(w, err)
		return
	}

	render.JSON(w, http.StatusOK, toResponse(o))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.svc.Remove(r.Context(), id); err != nil {
		render.LedgerError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) pay(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req paymentRequest
	if !decode(w, r, &req) {
		return
	}

	amount, err := h.svc.Policy().Numbers.Parse(string(req.Amount))
	if err != nil {
		render.LedgerError(w, err)
		return
	}

	o, err := h.svc.ApplyPayment(r.Context(), id, amount)
	if err != nil {
		render.LedgerError(w, err)
		return
	}

	render.JSON(w, http.StatusOK, toResponse(o))
}

func (h *Handler) quote(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeDraft(w, r)
	if !ok {
		return
	}

	total := h.svc.Quote(req.toDraft())

	render.JSON(w, http.StatusOK, quoteResponse{Total: total.StringFixed(2)})
}

func parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		render.Error(w, http.StatusBadRequest, "invalid id")
		return uuid.Nil, false
	}

	return id, true
}

func decodeDraft(w http.ResponseWriter, r *http.Request) (draftRequest, bool) {
	var req draftRequest
	if !decode(w, r, &req) {
		return draftRequest{}, false
	}

	return req, true
}

func decode(w http.ResponseWriter, r *http.Request, dest any) bool {
	err := bind.JSON(r, dest)
	if err == nil {
		return true
	}

	var fErr *bind.FieldError
	if errors.As(err, &fErr) {
		render.JSON(w, http.StatusUnprocessableEntity, render.ErrorResponse{Error: fErr.Error(), Field: fErr.Field})
		return false
	}

	render.Error(w, http.StatusBadRequest, err.Error())

	return false
}
