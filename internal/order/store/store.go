package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MrJamesThe3rd/pedidos/internal/order"
)

// SlotKey is the key the ledger lives under in every backend.
const SlotKey = "pedidos"

// KV is a single-key persistent slot. Get reports found=false when the key was never written.
type KV interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte) error
}

// Store keeps the whole ledger as one JSON array in a KV slot.
type Store struct {
	kv  KV
	key string
}

func New(kv KV) *Store {
	return &Store{kv: kv, key: SlotKey}
}

func (s *Store) Load(ctx context.Context) ([]*order.Order, error) {
	raw, found, err := s.kv.Get(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("reading slot %q: %w", s.key, err)
	}

	if !found || len(raw) == 0 {
		return []*order.Order{}, nil
	}

	var orders []*order.Order
	if err := json.Unmarshal(raw, &orders); err != nil {
		return nil, fmt.Errorf("decoding slot %q: %w", s.key, err)
	}

	if orders == nil {
		orders = []*order.Order{}
	}

	return orders, nil
}

func (s *Store) Save(ctx context.Context, orders []*order.Order) error {
	if orders == nil {
		orders = []*order.Order{}
	}

	raw, err := json.Marshal(orders)
	if err != nil {
		return fmt.Errorf("encoding ledger: %w", err)
	}

	if err := s.kv.Set(ctx, s.key, raw); err != nil {
		return fmt.Errorf("writing slot %q: %w", s.key, err)
	}

	return nil
}
