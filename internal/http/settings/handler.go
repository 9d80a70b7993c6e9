package settings

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/pedidos/internal/http/render"
	"github.com/MrJamesThe3rd/pedidos/internal/order"
)

type Handler struct {
	ledger *order.Service
}

func NewHandler(ledger *order.Service) *Handler {
	return &Handler{ledger: ledger}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.get)
}

type option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type settingsResponse struct {
	PaymentScope      order.PaymentScope      `json:"payment_scope"`
	ImportGrouping    order.Grouping          `json:"import_grouping"`
	NumberPolicy      order.NumberPolicy      `json:"number_policy"`
	OverpaymentPolicy order.OverpaymentPolicy `json:"overpayment_policy"`
	SurchargeRates    map[order.Brand]string  `json:"surcharge_rates"`
	Brands            []option                `json:"brands"`
	PaymentMethods    []option                `json:"payment_methods"`
}

func (h *Handler) get(w http.ResponseWriter, _ *http.Request) {
	p := h.ledger.Policy()

	resp := settingsResponse{
		PaymentScope:      p.Scope,
		ImportGrouping:    p.Grouping,
		NumberPolicy:      p.Numbers,
		OverpaymentPolicy: p.Overpayment,
		SurchargeRates:    make(map[order.Brand]string),
	}

	for brand, rate := range h.ledger.Calculator().Rates() {
		resp.SurchargeRates[brand] = rate.String()
	}

	for _, b := range order.Brands {
		resp.Brands = append(resp.Brands, option{Value: string(b), Label: b.Label()})
	}

	for _, m := range order.PaymentMethods {
		resp.PaymentMethods = append(resp.PaymentMethods, option{Value: string(m), Label: m.Label()})
	}

	render.JSON(w, http.StatusOK, resp)
}
