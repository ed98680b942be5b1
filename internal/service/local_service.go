package service

import (
	"fmt"
	"strings"

	"github.com/stocknest/internal/models"
	"github.com/stocknest/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// LocalService retail location operations
type LocalService struct {
	locals      repository.LocalRepository
	allocations repository.AllocationRepository
}

// NewLocalService creates the local service
func NewLocalService(locals repository.LocalRepository, allocations repository.AllocationRepository) *LocalService {
	return &LocalService{
		locals:      locals,
		allocations: allocations,
	}
}

// List lists all locals
func (s *LocalService) List() ([]models.Local, error) {
	return s.locals.List()
}

// Get fetches a local
func (s *LocalService) Get(localID uint) (*models.Local, error) {
	local, err := s.locals.GetByID(localID)
	if err != nil {
		return nil, err
	}
	if local == nil {
		return nil, ErrNotFound
	}
	return local, nil
}

// Create creates a local with a globally unique name
func (s *LocalService) Create(name string) (*models.Local, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	count, err := s.locals.CountByName(name)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateName
	}
	local := models.Local{
		Name:       name,
		RetailRate: decimal.Zero,
	}
	if err := s.locals.Create(&local); err != nil {
		return nil, err
	}
	return &local, nil
}

// Rename updates a local name, keeping names unique
func (s *LocalService) Rename(localID uint, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	local, err := s.locals.GetByID(localID)
	if err != nil {
		return err
	}
	if local == nil {
		return ErrNotFound
	}
	if local.Name == name {
		return nil
	}
	count, err := s.locals.CountByName(name)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicateName
	}
	return s.locals.Rename(localID, name)
}

// Delete removes a local together with its allocations. Allocated stock
// returns to the unallocated pool; product totals are unaffected.
func (s *LocalService) Delete(localID uint) error {
	return models.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.allocations.WithTx(tx).DeleteByLocal(localID); err != nil {
			return err
		}
		return s.locals.WithTx(tx).Delete(localID)
	})
}

// CountAllocations counts allocation rows of a local
func (s *LocalService) CountAllocations(localID uint) (int64, error) {
	return s.locals.CountAllocations(localID)
}

// RetailRate reads a local's markup percentage
func (s *LocalService) RetailRate(localID uint) (decimal.Decimal, error) {
	local, err := s.locals.GetByID(localID)
	if err != nil {
		return decimal.Zero, err
	}
	if local == nil {
		return decimal.Zero, ErrNotFound
	}
	return local.RetailRate, nil
}

// SetRetailRate updates a local's markup percentage
func (s *LocalService) SetRetailRate(localID uint, rate decimal.Decimal) error {
	if rate.IsNegative() {
		return fmt.Errorf("%w: retail rate must not be negative", ErrValidation)
	}
	local, err := s.locals.GetByID(localID)
	if err != nil {
		return err
	}
	if local == nil {
		return ErrNotFound
	}
	return s.locals.SetRetailRate(localID, rate)
}
