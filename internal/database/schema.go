package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema is the full DDL for the storefront database. Order items,
// addresses, cart data, product images and sizes keep their document
// shape as JSONB snapshots.
const Schema = `
CREATE TABLE IF NOT EXISTS users (
	id            UUID PRIMARY KEY,
	name          TEXT NOT NULL,
	email         TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	cart_data     JSONB NOT NULL DEFAULT '{}',
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS products (
	id           UUID PRIMARY KEY,
	name         TEXT NOT NULL,
	description  TEXT NOT NULL DEFAULT '',
	price        BIGINT NOT NULL,
	images       JSONB NOT NULL DEFAULT '[]',
	category     TEXT NOT NULL DEFAULT '',
	sub_category TEXT NOT NULL DEFAULT '',
	sizes        JSONB NOT NULL DEFAULT '[]',
	bestseller   BOOLEAN NOT NULL DEFAULT FALSE,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS orders (
	id                 UUID PRIMARY KEY,
	user_id            UUID NOT NULL REFERENCES users(id),
	items              JSONB NOT NULL DEFAULT '[]',
	amount             BIGINT NOT NULL,
	address            JSONB NOT NULL DEFAULT '{}',
	status             TEXT NOT NULL DEFAULT 'Order Placed',
	payment_method     TEXT NOT NULL DEFAULT 'COD',
	payment_status     TEXT NOT NULL DEFAULT '',
	gateway_order_id   TEXT,
	snap_token         TEXT,
	transaction_status TEXT,
	fraud_status       TEXT,
	payment_type       TEXT,
	paid_at            TIMESTAMPTZ,
	expired_at         TIMESTAMPTZ,
	placed_at          TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE UNIQUE INDEX IF NOT EXISTS orders_gateway_order_id_idx
	ON orders (gateway_order_id) WHERE gateway_order_id IS NOT NULL;
CREATE INDEX IF NOT EXISTS orders_user_id_idx ON orders (user_id);
CREATE INDEX IF NOT EXISTS orders_placed_at_idx ON orders (placed_at DESC);

CREATE TABLE IF NOT EXISTS reviews (
	id         UUID PRIMARY KEY,
	user_id    UUID NOT NULL REFERENCES users(id),
	product_id UUID NOT NULL,
	order_id   UUID NOT NULL,
	rating     INT NOT NULL CHECK (rating BETWEEN 1 AND 5),
	comment    TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (user_id, product_id, order_id)
);

CREATE INDEX IF NOT EXISTS reviews_product_id_idx ON reviews (product_id);
`

// Migrate applies the schema. All statements are idempotent.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
