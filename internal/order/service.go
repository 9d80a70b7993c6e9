package order

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=order
type Repository interface {
	// Load returns the stored ledger, or an empty one when nothing was saved yet.
	Load(ctx context.Context) ([]*Order, error)
	// Save replaces the stored ledger with orders.
	Save(ctx context.Context, orders []*Order) error
}

// Service owns the ledger: an ordered list of orders, newest first, mirrored to a Repository.
type Service struct {
	repo   Repository
	calc   *Calculator
	policy Policy
	now    func() time.Time

	mu     sync.RWMutex
	orders []*Order
}

func NewService(repo Repository, calc *Calculator, policy Policy) *Service {
	return &Service{
		repo:   repo,
		calc:   calc,
		policy: policy,
		now:    time.Now,
	}
}

func (s *Service) Policy() Policy {
	return s.policy
}

func (s *Service) Calculator() *Calculator {
	return s.calc
}

// Load hydrates the ledger from the repository, replacing anything in memory.
func (s *Service) Load(ctx context.Context) error {
	orders, err := s.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading ledger: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.orders = orders

	return nil
}

// List returns copies of the orders matching filter, newest first.
func (s *Service) List(filter Filter) []*Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return cloneAll(filter.Apply(s.orders))
}

func (s *Service) Get(id uuid.UUID) (*Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, ErrNotFound
	}

	return s.orders[idx].clone(), nil
}

// Quote returns the running total of a draft without validating it.
func (s *Service) Quote(d Draft) decimal.Decimal {
	return d.quote(s.calc, s.policy.Scope)
}

// Submit validates the draft and stores it: a new order at the head of the ledger,
// or, when the draft is editing, a replacement that keeps the amount already paid.
func (s *Service) Submit(ctx context.Context, d Draft) (*Order, error) {
	if err := Validate(d, s.policy.Scope); err != nil {
		return nil, err
	}

	items, err := d.lineItems(s.policy.Scope, s.policy.Numbers)
	if err != nil {
		return nil, err
	}

	o := &Order{
		CustomerName:  strings.TrimSpace(d.CustomerName),
		PaymentMethod: orderMethod(s.policy.Scope, NormalizePayment(d.PaymentMethod), items),
		LineItems:     items,
	}

	if !d.Editing() {
		if err := s.Append(ctx, o); err != nil {
			return nil, err
		}

		return o.clone(), nil
	}

	return s.Replace(ctx, d.EditingID, o)
}

// Append inserts o at the head of the ledger, assigning an id when it has none.
func (s *Service) Append(ctx context.Context, o *Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.prepare(o); err != nil {
		return err
	}

	next := make([]*Order, 0, len(s.orders)+1)
	next = append(next, o.clone())
	next = append(next, s.orders...)

	return s.commit(ctx, next)
}

// Replace substitutes the order with the given id in place, keeping its id, creation time
// and amount paid. It returns the stored order.
func (s *Service) Replace(ctx context.Context, id uuid.UUID, o *Order) (*Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, ErrNotFound
	}

	prev := s.orders[idx]
	now := s.now()

	o.ID = prev.ID
	o.CreatedAt = prev.CreatedAt
	o.AmountPaid = prev.AmountPaid
	o.UpdatedAt = &now
	o.Total = s.calc.Total(o.LineItems, o.PaymentMethod)
	o.refreshSettled()

	stored := o.clone()

	next := slices.Clone(s.orders)
	next[idx] = stored

	if err := s.commit(ctx, next); err != nil {
		return nil, err
	}

	return stored.clone(), nil
}

// Remove deletes the order with the given id. Unknown ids leave the ledger untouched.
func (s *Service) Remove(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return ErrNotFound
	}

	next := slices.Delete(slices.Clone(s.orders), idx, idx+1)

	return s.commit(ctx, next)
}

// ApplyPayment adds amount to what the customer already paid on the order.
// Non-positive amounts are ignored under NumberZero and rejected under NumberReject.
func (s *Service) ApplyPayment(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (*Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, ErrNotFound
	}

	current := s.orders[idx]

	if !amount.IsPositive() {
		if s.policy.Numbers == NumberReject {
			return nil, ErrInvalidAmount
		}

		return current.clone(), nil
	}

	balance := current.Balance()
	if amount.GreaterThan(balance) {
		switch s.policy.Overpayment {
		case OverpaymentReject:
			return nil, fmt.Errorf("%w: balance is %s", ErrOverpayment, balance.StringFixed(2))
		case OverpaymentClamp:
			amount = decimal.Max(balance, decimal.Zero)
		}
	}

	if amount.IsZero() {
		return current.clone(), nil
	}

	now := s.now()
	o := current.clone()
	o.AmountPaid = o.AmountPaid.Add(amount)
	o.UpdatedAt = &now
	o.refreshSettled()

	next := slices.Clone(s.orders)
	next[idx] = o

	if err := s.commit(ctx, next); err != nil {
		return nil, err
	}

	return o.clone(), nil
}

// Import converts rows into orders and puts them ahead of the existing ones in one write.
func (s *Service) Import(ctx context.Context, rows []Row) ([]*Order, error) {
	imported, err := OrdersFromRows(rows, s.calc, s.policy)
	if err != nil {
		return nil, err
	}

	if len(imported) == 0 {
		return nil, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for _, o := range imported {
		if err := s.stamp(o, now); err != nil {
			return nil, err
		}
	}

	next := make([]*Order, 0, len(imported)+len(s.orders))
	next = append(next, imported...)
	next = append(next, s.orders...)

	if err := s.commit(ctx, next); err != nil {
		return nil, err
	}

	return cloneAll(imported), nil
}

// Export returns every order as spreadsheet rows, in ledger order.
func (s *Service) Export() []Row {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return ToRows(s.orders)
}

// prepare fills in id, timestamps and the computed fields of a new order.
func (s *Service) prepare(o *Order) error {
	if err := s.stamp(o, s.now()); err != nil {
		return err
	}

	o.Total = s.calc.Total(o.LineItems, o.PaymentMethod)
	o.refreshSettled()

	return nil
}

func (s *Service) stamp(o *Order, now time.Time) error {
	if o.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("generating order id: %w", err)
		}

		o.ID = id
	}

	if o.CreatedAt.IsZero() {
		o.CreatedAt = now
	}

	return nil
}

// commit persists next and only then makes it the current ledger.
func (s *Service) commit(ctx context.Context, next []*Order) error {
	if err := s.repo.Save(ctx, next); err != nil {
		return fmt.Errorf("saving ledger: %w", err)
	}

	s.orders = next

	return nil
}

func (s *Service) indexOf(id uuid.UUID) int {
	return slices.IndexFunc(s.orders, func(o *Order) bool { return o.ID == id })
}
