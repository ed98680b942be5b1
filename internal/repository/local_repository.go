package repository

import (
	"errors"

	"github.com/stocknest/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// LocalRepository retail location data access interface
type LocalRepository interface {
	List() ([]models.Local, error)
	GetByID(localID uint) (*models.Local, error)
	CountByName(name string) (int64, error)
	Create(local *models.Local) error
	Rename(localID uint, name string) error
	Delete(localID uint) error
	CountAllocations(localID uint) (int64, error)
	GetRetailRate(localID uint) (decimal.Decimal, error)
	SetRetailRate(localID uint, rate decimal.Decimal) error
	WithTx(tx *gorm.DB) LocalRepository
}

// GormLocalRepository GORM implementation
type GormLocalRepository struct {
	db *gorm.DB
}

// NewLocalRepository creates the local repository
func NewLocalRepository(db *gorm.DB) *GormLocalRepository {
	return &GormLocalRepository{db: db}
}

// WithTx binds a transaction
func (r *GormLocalRepository) WithTx(tx *gorm.DB) LocalRepository {
	if tx == nil {
		return r
	}
	return &GormLocalRepository{db: tx}
}

// List lists locals ordered by name
func (r *GormLocalRepository) List() ([]models.Local, error) {
	var locals []models.Local
	if err := r.db.Order("name").Find(&locals).Error; err != nil {
		return nil, err
	}
	return locals, nil
}

// GetByID fetches a local
func (r *GormLocalRepository) GetByID(localID uint) (*models.Local, error) {
	var local models.Local
	if err := r.db.First(&local, localID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &local, nil
}

// CountByName counts locals with the given name
func (r *GormLocalRepository) CountByName(name string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Local{}).
		Where("name = ?", name).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Create inserts a local
func (r *GormLocalRepository) Create(local *models.Local) error {
	return r.db.Create(local).Error
}

// Rename updates the local name
func (r *GormLocalRepository) Rename(localID uint, name string) error {
	return r.db.Model(&models.Local{}).
		Where("local_id = ?", localID).
		Update("name", name).Error
}

// Delete removes the local row
func (r *GormLocalRepository) Delete(localID uint) error {
	return r.db.Delete(&models.Local{}, localID).Error
}

// CountAllocations counts allocation rows belonging to a local
func (r *GormLocalRepository) CountAllocations(localID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.LocalProduct{}).
		Where("local_id = ?", localID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// GetRetailRate reads the markup percentage of a local
func (r *GormLocalRepository) GetRetailRate(localID uint) (decimal.Decimal, error) {
	local, err := r.GetByID(localID)
	if err != nil {
		return decimal.Zero, err
	}
	if local == nil {
		return decimal.Zero, nil
	}
	return local.RetailRate, nil
}

// SetRetailRate updates the markup percentage of a local
func (r *GormLocalRepository) SetRetailRate(localID uint, rate decimal.Decimal) error {
	return r.db.Model(&models.Local{}).
		Where("local_id = ?", localID).
		Update("retail_rate", rate).Error
}
