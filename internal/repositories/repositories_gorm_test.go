package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"zoru/internal/models"
)

// setupTestDB opens a per-test in-memory SQLite database with the full
// schema migrated.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Product{},
		&models.User{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.PasswordResetToken{},
		&models.RaffleEntry{},
		&models.DropSignup{},
		&models.WishlistItem{},
	))
	return db
}

func TestGORMProductRepository(t *testing.T) {
	repo := NewGORMProductRepository(setupTestDB(t))

	product := &models.Product{
		Title: "ZORU Noise Tee", Slug: "zoru-noise-tee", Price: 89.90,
		Sizes: []string{"S", "M", "L"}, Category: "tees",
	}
	require.NoError(t, repo.Create(product))
	require.NotEmpty(t, product.ID)

	bySlug, err := repo.GetBySlug("zoru-noise-tee")
	require.NoError(t, err)
	assert.Equal(t, product.ID, bySlug.ID)
	assert.Equal(t, []string{"S", "M", "L"}, bySlug.Sizes)

	byID, err := repo.GetByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, "ZORU Noise Tee", byID.Title)

	n, err := repo.Count()
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	_, err = repo.GetBySlug("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGORMCartRepositoryMergeKey(t *testing.T) {
	repo := NewGORMCartRepository(setupTestDB(t))

	require.NoError(t, repo.Create(&models.CartItem{
		UserID: "user-1", ProductID: "prod-1", Size: "M",
		Title: "ZORU Noise Tee", UnitPrice: 89.90, Quantity: 1,
	}))
	require.NoError(t, repo.Create(&models.CartItem{
		UserID: "user-1", ProductID: "prod-1", Size: "L",
		Title: "ZORU Noise Tee", UnitPrice: 89.90, Quantity: 2,
	}))

	// Same product, different size resolves to a different line.
	m, err := repo.GetLine("user-1", "prod-1", "M")
	require.NoError(t, err)
	assert.Equal(t, 1, m.Quantity)

	l, err := repo.GetLine("user-1", "prod-1", "L")
	require.NoError(t, err)
	assert.Equal(t, 2, l.Quantity)

	m.Quantity = 4
	require.NoError(t, repo.Update(m))
	updated, err := repo.GetLine("user-1", "prod-1", "M")
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Quantity)

	require.NoError(t, repo.Delete("user-1", "prod-1", "M"))
	_, err = repo.GetLine("user-1", "prod-1", "M")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Delete("user-1", "prod-1", "M"), ErrNotFound)

	require.NoError(t, repo.Clear("user-1"))
	items, err := repo.GetByUser("user-1")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestGORMOrderRepository(t *testing.T) {
	repo := NewGORMOrderRepository(setupTestDB(t))

	order := &models.Order{
		UserID:        "user-1",
		CustomerName:  "Lucía Torres",
		PaymentMethod: models.PaymentMethodGateway,
		Status:        models.OrderStatusPendingPayment,
		Total:         379.70,
		PreferenceID:  "pref-123",
		Items: []models.OrderItem{
			{ProductID: "prod-1", Title: "ZORU Noise Tee", Size: "M", UnitPrice: 89.90, Quantity: 2},
			{ProductID: "prod-2", Title: "Static Hoodie", Size: "L", UnitPrice: 199.90, Quantity: 1},
		},
	}
	require.NoError(t, repo.Create(order))
	require.NotEmpty(t, order.ID)

	stored, err := repo.GetByID(order.ID)
	require.NoError(t, err)
	require.Len(t, stored.Items, 2)
	assert.Equal(t, order.ID, stored.Items[0].OrderID)

	byPref, err := repo.GetByPreferenceID("pref-123")
	require.NoError(t, err)
	assert.Equal(t, order.ID, byPref.ID)

	require.NoError(t, repo.UpdateStatus(order.ID, models.OrderStatusPaid))
	paid, err := repo.GetByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPaid, paid.Status)

	orders, err := repo.GetByUser("user-1")
	require.NoError(t, err)
	assert.Len(t, orders, 1)

	assert.ErrorIs(t, repo.UpdateStatus("missing", models.OrderStatusPaid), ErrNotFound)
}

func TestGORMResetTokenRepository(t *testing.T) {
	repo := NewGORMResetTokenRepository(setupTestDB(t))

	token := &models.PasswordResetToken{
		Token:     "abc123",
		Email:     "lucia@example.com",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, repo.Create(token))

	row, err := repo.GetByToken("abc123")
	require.NoError(t, err)
	assert.Equal(t, "lucia@example.com", row.Email)

	// Deleting by email with no rows is fine; it runs before every insert.
	require.NoError(t, repo.DeleteByEmail("nobody@example.com"))

	require.NoError(t, repo.DeleteByEmail("lucia@example.com"))
	_, err = repo.GetByToken("abc123")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, repo.Create(token))
	require.NoError(t, repo.Delete("abc123"))
	_, err = repo.GetByToken("abc123")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGORMRaffleRepository(t *testing.T) {
	repo := NewGORMRaffleRepository(setupTestDB(t))

	require.NoError(t, repo.CreateEntry(&models.RaffleEntry{
		Name: "Lucía Torres", Email: "lucia@example.com", DropSlug: "zoru-999-varsity",
	}))

	has, err := repo.HasEntry("lucia@example.com", "zoru-999-varsity")
	require.NoError(t, err)
	assert.True(t, has)

	has, err = repo.HasEntry("lucia@example.com", "another-drop")
	require.NoError(t, err)
	assert.False(t, has)

	require.NoError(t, repo.CreateSignup(&models.DropSignup{
		Email: "lucia@example.com", ProductID: "prod-1",
	}))
	has, err = repo.HasSignup("lucia@example.com", "prod-1")
	require.NoError(t, err)
	assert.True(t, has)
}

func TestGORMWishlistRepository(t *testing.T) {
	repo := NewGORMWishlistRepository(setupTestDB(t))

	require.NoError(t, repo.Add(&models.WishlistItem{UserID: "user-1", ProductID: "prod-1"}))

	has, err := repo.Has("user-1", "prod-1")
	require.NoError(t, err)
	assert.True(t, has)

	items, err := repo.GetByUser("user-1")
	require.NoError(t, err)
	assert.Len(t, items, 1)

	require.NoError(t, repo.Remove("user-1", "prod-1"))
	assert.ErrorIs(t, repo.Remove("user-1", "prod-1"), ErrNotFound)
}

func TestGORMUserRepository(t *testing.T) {
	repo := NewGORMUserRepository(setupTestDB(t))

	user := &models.User{Name: "Lucía Torres", Email: "lucia@example.com", Password: "hash"}
	require.NoError(t, repo.Create(user))

	byEmail, err := repo.GetByEmail("lucia@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	require.NoError(t, repo.UpdatePassword("lucia@example.com", "new-hash"))
	updated, err := repo.GetByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "new-hash", updated.Password)

	require.NoError(t, repo.AddPoints(user.ID, 90))
	require.NoError(t, repo.AddPoints(user.ID, 10))
	withPoints, err := repo.GetByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, withPoints.Points)

	assert.ErrorIs(t, repo.AddPoints("missing", 5), ErrNotFound)
	assert.ErrorIs(t, repo.UpdatePassword("nobody@example.com", "x"), ErrNotFound)
}
