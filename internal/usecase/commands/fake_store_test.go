//go:build unit

package commands_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"marketplace-catalog/internal/domain/order"
	"marketplace-catalog/internal/domain/product"
	"marketplace-catalog/internal/domain/reservation"
	"marketplace-catalog/internal/infra"
	sqlc "marketplace-catalog/internal/infra/sqlc/generated"
	"marketplace-catalog/internal/usecase/shared"

	"github.com/google/uuid"
)

// memStore is an in-memory stand-in for Postgres. Every statement commits as it runs, like
// a READ COMMITTED session, and a failed unit of work is undone from a per-transaction log.
type memStore struct {
	mu           sync.Mutex
	products     map[uuid.UUID]*memProduct
	reservations map[uuid.UUID]*reservation.StockReservation
	movements    []shared.StockMovement
	processed    map[string]bool

	// afterFind runs outside the lock once a product has been read.
	afterFind func()
	// afterLatest runs once, outside the lock, after the next latest-reservation read.
	afterLatest func()
	// applyErr makes every ApplyVariantDelta fail as the database would.
	applyErr error
}

type memProduct struct {
	name       string
	quantities []int
	options    []product.Options
	prices     []product.Money
	soldCount  int
	version    int64
}

func newMemStore() *memStore {
	return &memStore{
		products:     map[uuid.UUID]*memProduct{},
		reservations: map[uuid.UUID]*reservation.StockReservation{},
		processed:    map[string]bool{},
	}
}

func (s *memStore) addProduct(name string, variants ...product.Variant) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.New()
	p := &memProduct{name: name}
	for _, v := range variants {
		p.quantities = append(p.quantities, v.Quantity())
		p.options = append(p.options, v.Options())
		p.prices = append(p.prices, v.Price())
	}
	s.products[id] = p
	return id
}

func (s *memStore) deleteProduct(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.products, id)
}

func (s *memStore) isProcessed(orderID, eventType string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.processed[orderID+"/"+eventType]
}

func (s *memStore) quantity(id uuid.UUID, position int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.products[id].quantities[position]
}

func (s *memStore) version(id uuid.UUID) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.products[id].version
}

func (s *memStore) soldCount(id uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.products[id].soldCount
}

func (s *memStore) status(id uuid.UUID) reservation.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reservations[id].Status()
}

// forceStatus moves a reservation the way a concurrent writer would.
func (s *memStore) forceStatus(id uuid.UUID, status reservation.Status, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reservations[id] = copyReservation(s.reservations[id], status, at)
}

func (s *memStore) movementsFor(ref string) []shared.StockMovement {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []shared.StockMovement
	for _, m := range s.movements {
		if m.ReferenceID == ref {
			out = append(out, m)
		}
	}
	return out
}

func (s *memStore) snapshot(id uuid.UUID) *product.Product {
	p := s.products[id]
	variants := make(product.Variants, 0, len(p.quantities))
	for i := range p.quantities {
		v, err := product.NewVariant(p.options[i], p.quantities[i], p.prices[i], nil)
		if err != nil {
			panic(err)
		}
		variants = append(variants, v)
	}
	return product.ReconstructProduct(id, p.name, variants, p.soldCount, p.version, time.Time{}, time.Time{})
}

// memUoW implements shared.UnitOfWork on top of memStore.
type memUoW struct {
	store *memStore
}

func (u *memUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	tx := &memTx{store: u.store}
	if err := fn(ctx, tx); err != nil {
		tx.rollback()
		return err
	}
	tx.commit()
	return nil
}

type memTx struct {
	store   *memStore
	undo    []func()
	pending []shared.StockMovement
}

func (t *memTx) Products() shared.ProductRepository { return memProducts{t} }
func (t *memTx) Reservations() shared.ReservationRepository { return memReservations{t} }
func (t *memTx) Movements() shared.StockMovementRepository { return memMovements{t} }
func (t *memTx) OrderEvents() shared.OrderEventRepository { return memOrderEvents{t} }
func (t *memTx) DB() sqlc.DBTX { return nil }

func (t *memTx) rollback() {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	for i := len(t.undo) - 1; i >= 0; i-- {
		t.undo[i]()
	}
}

func (t *memTx) commit() {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	t.store.movements = append(t.store.movements, t.pending...)
}

type memProducts struct{ tx *memTx }

func (r memProducts) FindByID(_ context.Context, _ sqlc.DBTX, id uuid.UUID) (*product.Product, error) {
	s := r.tx.store
	s.mu.Lock()
	if _, ok := s.products[id]; !ok {
		s.mu.Unlock()
		return nil, infra.WrapRepoErr("product not found", nil, infra.KindNotFound)
	}
	p := s.snapshot(id)
	hook := s.afterFind
	s.mu.Unlock()

	if hook != nil {
		hook()
	}
	return p, nil
}

func (r memProducts) Create(_ context.Context, _ sqlc.DBTX, _ *product.Product) error {
	return nil
}

func (r memProducts) ApplyVariantDelta(_ context.Context, _ sqlc.DBTX, d shared.VariantDelta) (shared.VariantDeltaResult, error) {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.applyErr != nil {
		return shared.VariantDeltaResult{}, s.applyErr
	}
	p, ok := s.products[d.ProductID]
	if !ok || p.version != d.ExpectedVersion {
		return shared.VariantDeltaResult{Applied: false}, nil
	}
	prev := p.version
	p.quantities[d.Position] += d.QuantityDelta
	p.soldCount += d.SoldDelta
	p.version++
	written := p.version

	// Postgres would hold the row lock until rollback, so the prior version comes back. Writes
	// here are visible immediately; if another tx already built on top, keep the version moving.
	r.tx.undo = append(r.tx.undo, func() {
		p.quantities[d.Position] -= d.QuantityDelta
		p.soldCount -= d.SoldDelta
		if p.version == written {
			p.version = prev
		} else {
			p.version++
		}
	})
	return shared.VariantDeltaResult{Applied: true, Quantity: p.quantities[d.Position], Version: p.version}, nil
}

type memReservations struct{ tx *memTx }

func (r memReservations) Create(_ context.Context, _ sqlc.DBTX, res *reservation.StockReservation) error {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reservations[res.ID()] = copyReservation(res, res.Status(), res.UpdatedAt())
	r.tx.undo = append(r.tx.undo, func() { delete(s.reservations, res.ID()) })
	return nil
}

func (r memReservations) FindLatestByUser(_ context.Context, _ sqlc.DBTX, userID string) (*reservation.StockReservation, error) {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()

	var latest *reservation.StockReservation
	for _, res := range s.reservations {
		if res.UserID() != userID {
			continue
		}
		if latest == nil || res.CreatedAt().After(latest.CreatedAt()) {
			latest = res
		}
	}
	if latest == nil {
		return nil, infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	out := copyReservation(latest, latest.Status(), latest.UpdatedAt())
	hook := s.afterLatest
	s.afterLatest = nil

	if hook != nil {
		s.mu.Unlock()
		hook()
		s.mu.Lock()
	}
	return out, nil
}

func (r memReservations) FindByID(_ context.Context, _ sqlc.DBTX, id uuid.UUID) (*reservation.StockReservation, error) {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()
	res, ok := s.reservations[id]
	if !ok {
		return nil, infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return copyReservation(res, res.Status(), res.UpdatedAt()), nil
}

func (r memReservations) FindExpiredPending(_ context.Context, _ sqlc.DBTX, now time.Time, limit int32) ([]*reservation.StockReservation, error) {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*reservation.StockReservation
	for _, res := range s.reservations {
		if res.Status() == reservation.StatusPending && !res.ExpiresAt().After(now) {
			out = append(out, copyReservation(res, res.Status(), res.UpdatedAt()))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ExpiresAt().Before(out[j].ExpiresAt()) })
	if len(out) > int(limit) {
		out = out[:limit]
	}
	return out, nil
}

func (r memReservations) Transition(_ context.Context, _ sqlc.DBTX, t reservation.Transition) (bool, error) {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.reservations[t.ReservationID]
	if !ok || cur.Status() != t.From {
		return false, nil
	}
	s.reservations[t.ReservationID] = copyReservation(cur, t.To, t.At)
	r.tx.undo = append(r.tx.undo, func() { s.reservations[t.ReservationID] = cur })
	return true, nil
}

func copyReservation(r *reservation.StockReservation, status reservation.Status, updatedAt time.Time) *reservation.StockReservation {
	return reservation.ReconstructStockReservation(r.ID(), r.UserID(), r.Items(), status, r.ExpiresAt(), r.CreatedAt(), updatedAt)
}

type memMovements struct{ tx *memTx }

func (r memMovements) Record(_ context.Context, _ sqlc.DBTX, m shared.StockMovement) error {
	r.tx.pending = append(r.tx.pending, m)
	return nil
}

type memOrderEvents struct{ tx *memTx }

func (r memOrderEvents) MarkProcessed(_ context.Context, _ sqlc.DBTX, orderID string, eventType order.EventType) (bool, error) {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()

	key := orderID + "/" + string(eventType)
	if s.processed[key] {
		return false, nil
	}
	s.processed[key] = true
	r.tx.undo = append(r.tx.undo, func() { delete(s.processed, key) })
	return true, nil
}
