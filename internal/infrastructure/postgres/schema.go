package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema del ledger: stock_entries es append-only con seq (BIGSERIAL) como orden
// de inserción; shipments/shipment_lines son el lado consumido del colaborador de
// compras. Cualquier medio que preserve orden de append y visibilidad de lote
// completo serviría igual; los repositorios no asumen nada más.
const schema = `
CREATE TABLE IF NOT EXISTS stock_entries (
	seq         BIGSERIAL PRIMARY KEY,
	id          TEXT NOT NULL UNIQUE,
	date        DATE NOT NULL,
	item_code   TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL,
	quantity    NUMERIC NOT NULL,
	unit        TEXT NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_stock_entries_key ON stock_entries (description, unit);

CREATE TABLE IF NOT EXISTS shipments (
	id          TEXT PRIMARY KEY,
	date        DATE NOT NULL,
	status      TEXT NOT NULL DEFAULT 'pending',
	received_at TIMESTAMPTZ,
	created_at  TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS shipment_lines (
	shipment_id TEXT NOT NULL REFERENCES shipments(id),
	position    INT NOT NULL,
	item_code   TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL,
	quantity    NUMERIC NOT NULL,
	unit        TEXT NOT NULL,
	PRIMARY KEY (shipment_id, position)
);
`

// EnsureSchema crea las tablas si no existen (arranque idempotente).
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
