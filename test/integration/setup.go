package integration

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/joyva20/ecommerce-api/internal/database"
	"github.com/joyva20/ecommerce-api/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container, connects a pool and
// applies the schema.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		t.Fatalf("failed to parse connection string: %v", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	if err := database.Migrate(ctx, pool); err != nil {
		t.Fatalf("failed to apply schema: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// CleanupDB clears all data between test cases.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()
	for _, table := range []string{"reviews", "orders", "products", "users"} {
		if _, err := pool.Exec(ctx, "DELETE FROM "+table); err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}

// SeedUser inserts a bare user row and returns its id.
func SeedUser(t *testing.T, pool *pgxpool.Pool, email string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := pool.Exec(context.Background(),
		`INSERT INTO users (id, name, email, password_hash, cart_data, created_at)
		 VALUES ($1, $2, $3, $4, '{}', now())`,
		id, "Test User", email, "x")
	if err != nil {
		t.Fatalf("failed to seed user %s: %v", email, err)
	}
	return id
}

// SeedProduct inserts a product row and returns its id.
func SeedProduct(t *testing.T, pool *pgxpool.Pool, name string, price int64, category string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := pool.Exec(context.Background(),
		`INSERT INTO products (id, name, description, price, images, category, sub_category, sizes, bestseller)
		 VALUES ($1, $2, '', $3, '["img.png"]', $4, 'Topwear', '["S","M","L"]', false)`,
		id, name, price, category)
	if err != nil {
		t.Fatalf("failed to seed product %s: %v", name, err)
	}
	return id
}

// SeedOrder inserts an order for the given user and returns it.
func SeedOrder(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID, amount int64, status model.Status) *model.Order {
	t.Helper()

	order := &model.Order{
		ID:            uuid.New(),
		UserID:        userID,
		Items:         []model.OrderItem{{ProductID: "p1", Name: "Shirt", Price: amount, Quantity: 1, Size: "M"}},
		Amount:        amount,
		Address:       model.Address{FirstName: "Test", Street: "Jl. Sudirman 1", City: "Jakarta", Zipcode: "12190"},
		Status:        status,
		PaymentMethod: "COD",
		PlacedAt:      time.Now().UTC(),
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO orders (id, user_id, items, amount, address, status, payment_method, payment_status, placed_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, '', $8)`,
		order.ID, order.UserID,
		`[{"productId":"p1","name":"Shirt","price":`+strconv.FormatInt(amount, 10)+`,"quantity":1,"size":"M"}]`,
		order.Amount,
		`{"firstName":"Test","street":"Jl. Sudirman 1","city":"Jakarta","zipcode":"12190"}`,
		order.Status, order.PaymentMethod, order.PlacedAt)
	if err != nil {
		t.Fatalf("failed to seed order: %v", err)
	}
	return order
}
