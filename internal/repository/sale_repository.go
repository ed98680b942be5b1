package repository

import (
	"errors"

	"github.com/stocknest/internal/models"

	"gorm.io/gorm"
)

// SaleRepository sales ledger data access interface.
// The ledger is append-only: there is no update or delete.
type SaleRepository interface {
	Create(sale *models.SoldProduct) error
	ListAll() ([]SaleRecord, error)
	ListByProduct(prodID string) ([]models.SoldProduct, error)
	WithTx(tx *gorm.DB) SaleRepository
}

// GormSaleRepository GORM implementation
type GormSaleRepository struct {
	db *gorm.DB
}

// NewSaleRepository creates the sale repository
func NewSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

// WithTx binds a transaction
func (r *GormSaleRepository) WithTx(tx *gorm.DB) SaleRepository {
	if tx == nil {
		return r
	}
	return &GormSaleRepository{db: tx}
}

// Create appends a ledger entry
func (r *GormSaleRepository) Create(sale *models.SoldProduct) error {
	return r.db.Create(sale).Error
}

// ListAll lists ledger entries newest first, joined with product data where
// the product still exists
func (r *GormSaleRepository) ListAll() ([]SaleRecord, error) {
	var sales []models.SoldProduct
	if err := r.db.Order("sold_at DESC, sale_id").Find(&sales).Error; err != nil {
		return nil, err
	}
	records := make([]SaleRecord, 0, len(sales))
	for _, sale := range sales {
		record := SaleRecord{Sale: sale}
		var product models.Product
		err := r.db.Where("prod_id = ?", sale.ProdID).Take(&product).Error
		if err == nil {
			record.ProductName = product.Name
			record.Description = product.Description
			record.Price = product.Price
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if sale.LocalID != nil {
			var local models.Local
			err := r.db.First(&local, *sale.LocalID).Error
			if err == nil {
				record.LocalName = local.Name
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
		}
		records = append(records, record)
	}
	return records, nil
}

// ListByProduct lists ledger entries of a product newest first
func (r *GormSaleRepository) ListByProduct(prodID string) ([]models.SoldProduct, error) {
	var sales []models.SoldProduct
	if err := r.db.Where("prod_id = ?", prodID).
		Order("sold_at DESC, sale_id").
		Find(&sales).Error; err != nil {
		return nil, err
	}
	return sales, nil
}
