package integration

import (
	"context"
	"testing"
	"time"

	"github.com/joyva20/ecommerce-api/internal/model"
	"github.com/joyva20/ecommerce-api/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderRepositoryIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := SetupTestDB(t)
	ctx := context.Background()
	orders := repository.NewOrderRepository(db.Pool, zerolog.Nop())

	t.Run("create and get by id", func(t *testing.T) {
		defer CleanupDB(t, db.Pool)
		userID := SeedUser(t, db.Pool, "buyer1@example.com")

		order := &model.Order{
			ID:     uuid.New(),
			UserID: userID,
			Items: []model.OrderItem{
				{ProductID: "p1", Name: "Shirt", Price: 100, Quantity: 2, Size: "M"},
			},
			Amount:        200,
			Address:       model.Address{FirstName: "Joy", Street: "Jl. Sudirman 1", City: "Jakarta", Zipcode: "12190"},
			Status:        model.StatusOrderPlaced,
			PaymentMethod: "COD",
			PlacedAt:      time.Now().UTC().Truncate(time.Millisecond),
		}
		require.NoError(t, orders.Create(ctx, order))

		got, err := orders.GetByID(ctx, order.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, order.ID, got.ID)
		assert.Equal(t, order.UserID, got.UserID)
		assert.Equal(t, model.StatusOrderPlaced, got.Status)
		require.Len(t, got.Items, 1)
		assert.Equal(t, 2, got.Items[0].Quantity)
		assert.Equal(t, "Jakarta", got.Address.City)
		assert.Empty(t, got.GatewayOrderID)
	})

	t.Run("get by id not found returns nil", func(t *testing.T) {
		got, err := orders.GetByID(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("legacy item documents are normalized on read", func(t *testing.T) {
		defer CleanupDB(t, db.Pool)
		userID := SeedUser(t, db.Pool, "buyer2@example.com")

		orderID := uuid.New()
		_, err := db.Pool.Exec(ctx,
			`INSERT INTO orders (id, user_id, items, amount, address, status, payment_method, payment_status, placed_at)
			 VALUES ($1, $2, $3, 100, '{}', 'Order Placed', 'COD', '', now())`,
			orderID, userID,
			`[{"_id":"legacy-1","name":"Old Shirt","price":100,"quanitity":3}]`)
		require.NoError(t, err)

		got, err := orders.GetByID(ctx, orderID)
		require.NoError(t, err)
		require.NotNil(t, got)
		require.Len(t, got.Items, 1)
		assert.Equal(t, "legacy-1", got.Items[0].ProductID)
		assert.Equal(t, 3, got.Items[0].Quantity)
	})

	t.Run("update payment merges partial fields", func(t *testing.T) {
		defer CleanupDB(t, db.Pool)
		userID := SeedUser(t, db.Pool, "buyer3@example.com")
		order := SeedOrder(t, db.Pool, userID, 350, model.StatusOrderPlaced)

		pending := model.PaymentPending
		gatewayID := "ORDER-" + order.ID.String() + "-1"
		token := "snap-token"
		require.NoError(t, orders.UpdatePayment(ctx, order.ID, repository.PaymentUpdate{
			PaymentStatus:  &pending,
			GatewayOrderID: &gatewayID,
			SnapToken:      &token,
		}))

		paid := model.PaymentPaid
		status := model.StatusPaid
		paidAt := time.Now().UTC().Truncate(time.Millisecond)
		trx := "settlement"
		require.NoError(t, orders.UpdatePayment(ctx, order.ID, repository.PaymentUpdate{
			PaymentStatus:     &paid,
			Status:            &status,
			TransactionStatus: &trx,
			PaidAt:            &paidAt,
		}))

		got, err := orders.GetByGatewayOrderID(ctx, gatewayID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, model.PaymentPaid, got.PaymentStatus)
		assert.Equal(t, model.StatusPaid, got.Status)
		assert.True(t, got.Paid())
		// Fields absent from the second merge survive the first write.
		assert.Equal(t, "snap-token", got.SnapToken)
		assert.Equal(t, "settlement", got.TransactionStatus)
		require.NotNil(t, got.PaidAt)
	})

	t.Run("update status and delete", func(t *testing.T) {
		defer CleanupDB(t, db.Pool)
		userID := SeedUser(t, db.Pool, "buyer4@example.com")
		order := SeedOrder(t, db.Pool, userID, 100, model.StatusOrderPlaced)

		updated, err := orders.UpdateStatus(ctx, order.ID, model.StatusShipped)
		require.NoError(t, err)
		assert.True(t, updated)

		updated, err = orders.UpdateStatus(ctx, uuid.New(), model.StatusShipped)
		require.NoError(t, err)
		assert.False(t, updated)

		deleted, err := orders.DeleteByID(ctx, order.ID)
		require.NoError(t, err)
		assert.True(t, deleted)

		got, err := orders.GetByID(ctx, order.ID)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("get by user newest first", func(t *testing.T) {
		defer CleanupDB(t, db.Pool)
		userID := SeedUser(t, db.Pool, "buyer5@example.com")
		otherID := SeedUser(t, db.Pool, "buyer6@example.com")

		first := SeedOrder(t, db.Pool, userID, 100, model.StatusOrderPlaced)
		time.Sleep(10 * time.Millisecond)
		second := SeedOrder(t, db.Pool, userID, 200, model.StatusOrderPlaced)
		SeedOrder(t, db.Pool, otherID, 999, model.StatusOrderPlaced)

		got, err := orders.GetByUser(ctx, userID)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, second.ID, got[0].ID)
		assert.Equal(t, first.ID, got[1].ID)
	})
}

func TestUserRepositoryIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := SetupTestDB(t)
	ctx := context.Background()
	users := repository.NewUserRepository(db.Pool, zerolog.Nop())

	t.Run("create, fetch and update cart", func(t *testing.T) {
		defer CleanupDB(t, db.Pool)

		user := &model.User{
			ID:           uuid.New(),
			Name:         "Joy",
			Email:        "joy@example.com",
			PasswordHash: "hash",
			CartData:     model.CartData{},
			CreatedAt:    time.Now().UTC(),
		}
		require.NoError(t, users.Create(ctx, user))

		byEmail, err := users.GetByEmail(ctx, "joy@example.com")
		require.NoError(t, err)
		require.NotNil(t, byEmail)
		assert.Equal(t, user.ID, byEmail.ID)

		cart := model.CartData{"item1": {"M": 2}}
		require.NoError(t, users.UpdateCart(ctx, user.ID, cart))

		byID, err := users.GetByID(ctx, user.ID)
		require.NoError(t, err)
		require.NotNil(t, byID)
		assert.Equal(t, 2, byID.CartData["item1"]["M"])
	})

	t.Run("unknown email returns nil", func(t *testing.T) {
		got, err := users.GetByEmail(ctx, "ghost@example.com")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("list omits password hashes", func(t *testing.T) {
		defer CleanupDB(t, db.Pool)
		SeedUser(t, db.Pool, "a@example.com")
		SeedUser(t, db.Pool, "b@example.com")

		all, err := users.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
		for _, u := range all {
			assert.Empty(t, u.PasswordHash)
		}
	})
}

func TestReviewRepositoryIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := SetupTestDB(t)
	ctx := context.Background()
	reviews := repository.NewReviewRepository(db.Pool, zerolog.Nop())

	t.Run("create and find", func(t *testing.T) {
		defer CleanupDB(t, db.Pool)
		userID := SeedUser(t, db.Pool, "reviewer@example.com")
		productID := uuid.New()
		orderID := uuid.New()

		review := &model.Review{
			ID:        uuid.New(),
			UserID:    userID,
			ProductID: productID,
			OrderID:   orderID,
			Rating:    4,
			Comment:   "Fits well",
			CreatedAt: time.Now().UTC(),
		}
		require.NoError(t, reviews.Create(ctx, review))

		scoped, err := reviews.Find(ctx, userID, productID, orderID)
		require.NoError(t, err)
		require.NotNil(t, scoped)
		assert.Equal(t, 4, scoped.Rating)

		// Zero order id matches the review regardless of order.
		unscoped, err := reviews.Find(ctx, userID, productID, uuid.Nil)
		require.NoError(t, err)
		require.NotNil(t, unscoped)

		other, err := reviews.Find(ctx, userID, productID, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, other)
	})

	t.Run("product reviews join the reviewer name", func(t *testing.T) {
		defer CleanupDB(t, db.Pool)
		userID := SeedUser(t, db.Pool, "reviewer2@example.com")
		productID := uuid.New()

		require.NoError(t, reviews.Create(ctx, &model.Review{
			ID:        uuid.New(),
			UserID:    userID,
			ProductID: productID,
			OrderID:   uuid.New(),
			Rating:    5,
			CreatedAt: time.Now().UTC(),
		}))

		got, err := reviews.GetByProduct(ctx, productID)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Test User", got[0].UserName)
	})
}
