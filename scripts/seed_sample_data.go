package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joyva20/ecommerce-api/internal/config"
	"github.com/joyva20/ecommerce-api/internal/database"
	"github.com/joyva20/ecommerce-api/internal/model"
	"github.com/joyva20/ecommerce-api/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// Seeds a local database with a demo catalogue, a customer and a few
// orders in assorted payment states. Run with:
//
//	go run ./scripts/seed_sample_data.go
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	ctx := context.Background()

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		return err
	}

	users := repository.NewUserRepository(pool, logger)
	orders := repository.NewOrderRepository(pool, logger)

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	buyer := &model.User{
		ID:           uuid.New(),
		Name:         "Demo Buyer",
		Email:        fmt.Sprintf("buyer-%d@example.com", time.Now().Unix()),
		PasswordHash: string(hash),
		CartData:     model.CartData{},
		CreatedAt:    time.Now(),
	}
	if err := users.Create(ctx, buyer); err != nil {
		return fmt.Errorf("failed to seed user: %w", err)
	}

	products := []struct {
		name     string
		price    int64
		category string
		sub      string
	}{
		{"Classic Tee", 120, "Men", "Topwear"},
		{"Summer Dress", 250, "Women", "Topwear"},
		{"Slim Jeans", 320, "Men", "Bottomwear"},
		{"Kids Hoodie", 180, "Kids", "Winterwear"},
	}

	productIDs := make([]uuid.UUID, 0, len(products))
	for _, p := range products {
		id := uuid.New()
		_, err := pool.Exec(ctx,
			`INSERT INTO products (id, name, description, price, images, category, sub_category, sizes, bestseller)
			 VALUES ($1, $2, '', $3, '[]', $4, $5, '["S","M","L","XL"]', false)`,
			id, p.name, p.price, p.category, p.sub)
		if err != nil {
			return fmt.Errorf("failed to seed product %s: %w", p.name, err)
		}
		productIDs = append(productIDs, id)
	}

	now := time.Now()
	seedOrders := []*model.Order{
		{
			ID:     uuid.New(),
			UserID: buyer.ID,
			Items: []model.OrderItem{
				{ProductID: productIDs[0].String(), Name: "Classic Tee", Price: 120, Quantity: 2, Size: "M"},
			},
			Amount:        240,
			Status:        model.StatusPaid,
			PaymentMethod: "QRIS",
			PaymentStatus: model.PaymentPaid,
			PlacedAt:      now.Add(-48 * time.Hour),
		},
		{
			ID:     uuid.New(),
			UserID: buyer.ID,
			Items: []model.OrderItem{
				{ProductID: productIDs[1].String(), Name: "Summer Dress", Price: 250, Quantity: 1, Size: "S"},
			},
			Amount:        250,
			Status:        model.StatusAwaitingPayment,
			PaymentMethod: "GOPAY",
			PaymentStatus: model.PaymentPending,
			PlacedAt:      now.Add(-24 * time.Hour),
		},
		{
			ID:     uuid.New(),
			UserID: buyer.ID,
			Items: []model.OrderItem{
				{ProductID: productIDs[2].String(), Name: "Slim Jeans", Price: 320, Quantity: 1, Size: "L"},
			},
			Amount:        320,
			Status:        model.StatusOrderPlaced,
			PaymentMethod: "COD",
			PlacedAt:      now.Add(-2 * time.Hour),
		},
	}

	for _, order := range seedOrders {
		address := model.Address{
			FirstName: "Demo",
			LastName:  "Buyer",
			Street:    "Jl. Sudirman 1",
			City:      "Jakarta",
			Zipcode:   "12190",
			Country:   "Indonesia",
		}
		order.Address = address
		if err := orders.Create(ctx, order); err != nil {
			return fmt.Errorf("failed to seed order: %w", err)
		}
		if order.Paid() {
			paidAt := order.PlacedAt.Add(10 * time.Minute)
			upd := repository.PaymentUpdate{PaidAt: &paidAt}
			if err := orders.UpdatePayment(ctx, order.ID, upd); err != nil {
				return fmt.Errorf("failed to seed payment state: %w", err)
			}
		}
	}

	logger.Info().
		Str("buyer_email", buyer.Email).
		Int("products", len(productIDs)).
		Int("orders", len(seedOrders)).
		Msg("sample data seeded")

	return nil
}
