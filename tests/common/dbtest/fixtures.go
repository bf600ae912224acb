//go:build unit || e2e

package dbtest

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// DBLike is satisfied by *pgxpool.Pool and pgx.Tx.
type DBLike interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type VariantFixture struct {
	Options    map[string]string `json:"options"`
	Quantity   int               `json:"quantity"`
	Available  bool              `json:"available"`
	PriceCents int64             `json:"priceCents"`
}

func Variant(options map[string]string, quantity int) VariantFixture {
	return VariantFixture{Options: options, Quantity: quantity, Available: quantity > 0, PriceCents: 1999}
}

func CreateTestProduct(t *testing.T, db DBLike, name string, variants ...VariantFixture) uuid.UUID {
	t.Helper()

	raw, err := json.Marshal(variants)
	require.NoError(t, err)

	id := uuid.New()
	_, err = db.Exec(context.Background(),
		"INSERT INTO products (id, name, variants) VALUES ($1, $2, $3)", id, name, raw)
	require.NoError(t, err)

	return id
}

type ProductState struct {
	Quantities []int
	SoldCount  int
	Version    int64
}

func LoadProductState(t *testing.T, db DBLike, id uuid.UUID) ProductState {
	t.Helper()

	var (
		raw   []byte
		state ProductState
	)
	err := db.QueryRow(context.Background(),
		"SELECT variants, sold_count, version FROM products WHERE id = $1", id).
		Scan(&raw, &state.SoldCount, &state.Version)
	require.NoError(t, err)

	var docs []VariantFixture
	require.NoError(t, json.Unmarshal(raw, &docs))
	for _, d := range docs {
		state.Quantities = append(state.Quantities, d.Quantity)
	}
	return state
}

// backdates a reservation so the next sweep sees it as expired
func ExpireReservation(t *testing.T, db DBLike, id uuid.UUID) {
	t.Helper()

	tag, err := db.Exec(context.Background(),
		"UPDATE stock_reservations SET expires_at = now() - interval '1 minute' WHERE id = $1", id)
	require.NoError(t, err)
	require.Equal(t, int64(1), tag.RowsAffected())
}

func ReservationStatus(t *testing.T, db DBLike, id uuid.UUID) string {
	t.Helper()

	var status string
	err := db.QueryRow(context.Background(),
		"SELECT status FROM stock_reservations WHERE id = $1", id).Scan(&status)
	require.NoError(t, err)
	return status
}

func CountMovements(t *testing.T, db DBLike, referenceID, outcome string) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(),
		"SELECT count(*) FROM stock_movements WHERE reference_id = $1 AND outcome = $2", referenceID, outcome).Scan(&n)
	require.NoError(t, err)
	return n
}

// stockTables lists every table the schema creates, children first.
var stockTables = []string{"stock_movements", "processed_order_events", "stock_reservations", "products"}

// ResetDB empties the catalog schema between subtests.
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := pool.Exec(ctx, "TRUNCATE "+strings.Join(stockTables, ", ")+" RESTART IDENTITY CASCADE"); err != nil {
		return fmt.Errorf("reset test db: %w", err)
	}
	return nil
}
