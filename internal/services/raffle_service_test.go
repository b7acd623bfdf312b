package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zoru/internal/models"
	"zoru/internal/repositories"
)

func newRaffleFixture(t *testing.T) (*RaffleService, *models.Product) {
	t.Helper()

	productRepo := repositories.NewMockProductRepository()
	drop := &models.Product{
		Title: "ZORU 999 Varsity Jacket", Slug: "zoru-999-varsity",
		Price: 349.90, Stock: models.DropUnits, IsDrop: true,
	}
	regular := &models.Product{
		Title: "ZORU Noise Tee", Slug: "zoru-noise-tee", Price: 89.90,
	}
	require.NoError(t, productRepo.Create(drop))
	require.NoError(t, productRepo.Create(regular))

	return NewRaffleService(repositories.NewMockRaffleRepository(), productRepo), drop
}

func TestEnterRaffle(t *testing.T) {
	service, drop := newRaffleFixture(t)

	err := service.EnterRaffle(&models.RaffleEntry{
		Name: "Lucía Torres", Email: "lucia@example.com", DropSlug: drop.Slug,
	})
	assert.NoError(t, err)
}

func TestEnterRaffleOncePerEmailAndDrop(t *testing.T) {
	service, drop := newRaffleFixture(t)

	entry := models.RaffleEntry{
		Name: "Lucía Torres", Email: "lucia@example.com", DropSlug: drop.Slug,
	}
	require.NoError(t, service.EnterRaffle(&entry))

	again := models.RaffleEntry{
		Name: "Lucía T.", Email: "lucia@example.com", DropSlug: drop.Slug,
	}
	assert.ErrorIs(t, service.EnterRaffle(&again), ErrAlreadyEntered)
}

func TestEnterRaffleRejectsNonDrops(t *testing.T) {
	service, _ := newRaffleFixture(t)

	err := service.EnterRaffle(&models.RaffleEntry{
		Name: "Lucía Torres", Email: "lucia@example.com", DropSlug: "zoru-noise-tee",
	})
	assert.ErrorIs(t, err, ErrDropNotFound)

	err = service.EnterRaffle(&models.RaffleEntry{
		Name: "Lucía Torres", Email: "lucia@example.com", DropSlug: "no-such-drop",
	})
	assert.ErrorIs(t, err, ErrDropNotFound)
}

func TestSubscribeDropIsIdempotent(t *testing.T) {
	service, drop := newRaffleFixture(t)

	require.NoError(t, service.SubscribeDrop("lucia@example.com", drop.Slug))
	assert.NoError(t, service.SubscribeDrop("lucia@example.com", drop.Slug))
}

func TestSubscribeDropRejectsNonDrops(t *testing.T) {
	service, _ := newRaffleFixture(t)

	err := service.SubscribeDrop("lucia@example.com", "zoru-noise-tee")
	assert.ErrorIs(t, err, ErrDropNotFound)
}
