package services

import (
	"errors"

	"zoru/internal/models"
	"zoru/internal/repositories"
)

// RaffleService handles sweepstakes entries and drop-notification
// signups.
type RaffleService struct {
	raffleRepo  repositories.RaffleRepository
	productRepo repositories.ProductRepository
}

// NewRaffleService creates a new RaffleService.
func NewRaffleService(raffleRepo repositories.RaffleRepository, productRepo repositories.ProductRepository) *RaffleService {
	return &RaffleService{
		raffleRepo:  raffleRepo,
		productRepo: productRepo,
	}
}

// EnterRaffle records a sweepstakes entry for a drop. An email can
// enter each drop once.
func (s *RaffleService) EnterRaffle(entry *models.RaffleEntry) error {
	product, err := s.productRepo.GetBySlug(entry.DropSlug)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrDropNotFound
		}
		return err
	}
	if !product.IsDrop {
		return ErrDropNotFound
	}

	entered, err := s.raffleRepo.HasEntry(entry.Email, entry.DropSlug)
	if err != nil {
		return err
	}
	if entered {
		return ErrAlreadyEntered
	}

	return s.raffleRepo.CreateEntry(entry)
}

// SubscribeDrop records a drop-notification signup. Duplicate signups
// are treated as a no-op.
func (s *RaffleService) SubscribeDrop(emailAddr, dropSlug string) error {
	product, err := s.productRepo.GetBySlug(dropSlug)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrDropNotFound
		}
		return err
	}
	if !product.IsDrop {
		return ErrDropNotFound
	}

	exists, err := s.raffleRepo.HasSignup(emailAddr, product.ID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	return s.raffleRepo.CreateSignup(&models.DropSignup{
		Email:     emailAddr,
		ProductID: product.ID,
	})
}
