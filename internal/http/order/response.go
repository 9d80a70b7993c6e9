package order

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/pedidos/internal/order"
)

type lineItemResponse struct {
	Name          string              `json:"name"`
	Price         string              `json:"price"`
	Brand         order.Brand         `json:"brand"`
	PaymentMethod order.PaymentMethod `json:"payment_method,omitempty"`
}

type orderResponse struct {
	ID            uuid.UUID           `json:"id"`
	CustomerName  string              `json:"customer_name"`
	PaymentMethod order.PaymentMethod `json:"payment_method"`
	LineItems     []lineItemResponse  `json:"line_items"`
	Total         string              `json:"total"`
	AmountPaid    string              `json:"amount_paid"`
	Balance       string              `json:"balance"`
	Settled       bool                `json:"settled"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     *time.Time          `json:"updated_at,omitempty"`
}

func toResponse(o *order.Order) orderResponse {
	resp := orderResponse{
		ID:            o.ID,
		CustomerName:  o.CustomerName,
		PaymentMethod: o.PaymentMethod,
		LineItems:     make([]lineItemResponse, 0, len(o.LineItems)),
		Total:         o.Total.StringFixed(2),
		AmountPaid:    o.AmountPaid.StringFixed(2),
		Balance:       o.Balance().StringFixed(2),
		Settled:       o.Settled,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}

	for _, item := range o.LineItems {
		resp.LineItems = append(resp.LineItems, lineItemResponse{
			Name:          item.Name,
			Price:         item.Price.StringFixed(2),
			Brand:         item.Brand,
			PaymentMethod: item.PaymentMethod,
		})
	}

	return resp
}

func toResponseList(orders []*order.Order) []orderResponse {
	resp := make([]orderResponse, len(orders))
	for i, o := range orders {
		resp[i] = toResponse(o)
	}

	return resp
}
