package db

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// FillRow is one settled (order, price, quantity, payout) record.
type FillRow struct {
	ID       uuid.UUID
	OrderID  uuid.UUID
	Price    decimal.Decimal
	Quantity decimal.Decimal
	Payout   decimal.Decimal
	FilledAt time.Time
}

type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

const insertFillSQL = `
INSERT INTO fills (id, order_id, price, quantity, payout, filled_at)
VALUES ($1, $2, $3, $4, $5, $6)`

// RecordFills writes all rows in one transaction.
func (s *Store) RecordFills(ctx context.Context, rows []FillRow) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, row := range rows {
		_, err = tx.Exec(ctx, insertFillSQL,
			pgUUID(row.ID),
			pgUUID(row.OrderID),
			pgNumeric(row.Price),
			pgNumeric(row.Quantity),
			pgNumeric(row.Payout),
			row.FilledAt,
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

const listFillsSQL = `
SELECT id, order_id, price, quantity, payout, filled_at
FROM fills
WHERE order_id = $1
ORDER BY filled_at`

func (s *Store) ListFillsByOrder(ctx context.Context, orderID uuid.UUID) ([]FillRow, error) {
	rows, err := s.pool.Query(ctx, listFillsSQL, pgUUID(orderID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []FillRow
	for rows.Next() {
		var (
			id, oid            pgtype.UUID
			price, qty, payout pgtype.Numeric
			filledAt           pgtype.Timestamptz
		)
		if err := rows.Scan(&id, &oid, &price, &qty, &payout, &filledAt); err != nil {
			return nil, err
		}
		out = append(out, FillRow{
			ID:       uuid.UUID(id.Bytes),
			OrderID:  uuid.UUID(oid.Bytes),
			Price:    decimalFromNumeric(price),
			Quantity: decimalFromNumeric(qty),
			Payout:   decimalFromNumeric(payout),
			FilledAt: filledAt.Time,
		})
	}
	return out, rows.Err()
}

func pgUUID(id uuid.UUID) pgtype.UUID {
	return pgtype.UUID{Bytes: id, Valid: true}
}

func pgNumeric(d decimal.Decimal) pgtype.Numeric {
	return pgtype.Numeric{Int: d.Coefficient(), Exp: d.Exponent(), Valid: true}
}

func decimalFromNumeric(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid || n.Int == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(n.Int, n.Exp)
}
