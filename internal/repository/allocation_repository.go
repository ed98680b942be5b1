package repository

import (
	"errors"

	"github.com/stocknest/internal/models"

	"gorm.io/gorm"
)

// AllocationRepository local stock allocation data access interface
type AllocationRepository interface {
	Get(localID uint, prodID string) (*models.LocalProduct, error)
	ListByLocal(localID uint) ([]LocalStock, error)
	SumByProduct(prodID string) (int, error)
	Upsert(localID uint, prodID string, qty int) error
	Decrement(localID uint, prodID string, qty int) (int64, error)
	DeleteZeroRow(localID uint, prodID string) error
	Delete(localID uint, prodID string) error
	DeleteByLocal(localID uint) error
	DeleteByProducts(prodIDs []string) error
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) AllocationRepository
}

// GormAllocationRepository GORM implementation
type GormAllocationRepository struct {
	db *gorm.DB
}

// NewAllocationRepository creates the allocation repository
func NewAllocationRepository(db *gorm.DB) *GormAllocationRepository {
	return &GormAllocationRepository{db: db}
}

// WithTx binds a transaction
func (r *GormAllocationRepository) WithTx(tx *gorm.DB) AllocationRepository {
	if tx == nil {
		return r
	}
	return &GormAllocationRepository{db: tx}
}

// Transaction runs fn inside a transaction
func (r *GormAllocationRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// Get fetches the allocation row for a (local, product) pair
func (r *GormAllocationRepository) Get(localID uint, prodID string) (*models.LocalProduct, error) {
	var allocation models.LocalProduct
	err := r.db.Where("local_id = ? AND prod_id = ?", localID, prodID).
		Take(&allocation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &allocation, nil
}

// ListByLocal lists allocations of a local joined with their products
func (r *GormAllocationRepository) ListByLocal(localID uint) ([]LocalStock, error) {
	var allocations []models.LocalProduct
	if err := r.db.Where("local_id = ?", localID).Find(&allocations).Error; err != nil {
		return nil, err
	}
	stocks := make([]LocalStock, 0, len(allocations))
	for _, allocation := range allocations {
		var product models.Product
		err := r.db.Where("prod_id = ?", allocation.ProdID).Take(&product).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}
		stocks = append(stocks, LocalStock{
			Product:       product,
			LocalQuantity: allocation.Quantity,
		})
	}
	return stocks, nil
}

// SumByProduct sums the allocated quantity for a product across all locals
func (r *GormAllocationRepository) SumByProduct(prodID string) (int, error) {
	var total int64
	err := r.db.Model(&models.LocalProduct{}).
		Where("prod_id = ?", prodID).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return int(total), nil
}

// Upsert increments the existing allocation row or inserts a new one
func (r *GormAllocationRepository) Upsert(localID uint, prodID string, qty int) error {
	if qty <= 0 {
		return errors.New("invalid allocation quantity")
	}
	result := r.db.Model(&models.LocalProduct{}).
		Where("local_id = ? AND prod_id = ?", localID, prodID).
		Update("quantity", gorm.Expr("quantity + ?", qty))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}
	return r.db.Create(&models.LocalProduct{
		LocalID:  localID,
		ProdID:   prodID,
		Quantity: qty,
	}).Error
}

// Decrement draws down an allocation, guarded so it never goes negative
func (r *GormAllocationRepository) Decrement(localID uint, prodID string, qty int) (int64, error) {
	if qty <= 0 {
		return 0, errors.New("invalid allocation decrement params")
	}
	result := r.db.Model(&models.LocalProduct{}).
		Where("local_id = ? AND prod_id = ? AND quantity >= ?", localID, prodID, qty).
		Update("quantity", gorm.Expr("quantity - ?", qty))
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// DeleteZeroRow removes the allocation row once it has reached zero
func (r *GormAllocationRepository) DeleteZeroRow(localID uint, prodID string) error {
	return r.db.Where("local_id = ? AND prod_id = ? AND quantity <= 0", localID, prodID).
		Delete(&models.LocalProduct{}).Error
}

// Delete removes the allocation row regardless of quantity
func (r *GormAllocationRepository) Delete(localID uint, prodID string) error {
	return r.db.Where("local_id = ? AND prod_id = ?", localID, prodID).
		Delete(&models.LocalProduct{}).Error
}

// DeleteByLocal removes all allocations of a local
func (r *GormAllocationRepository) DeleteByLocal(localID uint) error {
	return r.db.Where("local_id = ?", localID).Delete(&models.LocalProduct{}).Error
}

// DeleteByProducts removes all allocations of the given products
func (r *GormAllocationRepository) DeleteByProducts(prodIDs []string) error {
	if len(prodIDs) == 0 {
		return nil
	}
	return r.db.Where("prod_id IN ?", prodIDs).Delete(&models.LocalProduct{}).Error
}
