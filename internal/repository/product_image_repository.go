package repository

import (
	"errors"

	"github.com/stocknest/internal/models"

	"gorm.io/gorm"
)

// ProductImageRepository image attachment data access interface
type ProductImageRepository interface {
	ListByProduct(prodID string) ([]models.ProductImage, error)
	GetByID(imageID string) (*models.ProductImage, error)
	Create(image *models.ProductImage) error
	Delete(imageID string) error
	DeleteByProducts(prodIDs []string) error
	WithTx(tx *gorm.DB) ProductImageRepository
}

// GormProductImageRepository GORM implementation
type GormProductImageRepository struct {
	db *gorm.DB
}

// NewProductImageRepository creates the product image repository
func NewProductImageRepository(db *gorm.DB) *GormProductImageRepository {
	return &GormProductImageRepository{db: db}
}

// WithTx binds a transaction
func (r *GormProductImageRepository) WithTx(tx *gorm.DB) ProductImageRepository {
	if tx == nil {
		return r
	}
	return &GormProductImageRepository{db: tx}
}

// ListByProduct lists attachments in display order
func (r *GormProductImageRepository) ListByProduct(prodID string) ([]models.ProductImage, error) {
	var images []models.ProductImage
	if err := r.db.Where("prod_id = ?", prodID).
		Order("COALESCE(sort_order, 999999), created_at").
		Find(&images).Error; err != nil {
		return nil, err
	}
	return images, nil
}

// GetByID fetches an attachment record
func (r *GormProductImageRepository) GetByID(imageID string) (*models.ProductImage, error) {
	var image models.ProductImage
	err := r.db.Where("image_id = ?", imageID).Take(&image).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &image, nil
}

// Create inserts an attachment record
func (r *GormProductImageRepository) Create(image *models.ProductImage) error {
	return r.db.Create(image).Error
}

// Delete removes an attachment record
func (r *GormProductImageRepository) Delete(imageID string) error {
	return r.db.Where("image_id = ?", imageID).Delete(&models.ProductImage{}).Error
}

// DeleteByProducts removes all attachment records of the given products
func (r *GormProductImageRepository) DeleteByProducts(prodIDs []string) error {
	if len(prodIDs) == 0 {
		return nil
	}
	return r.db.Where("prod_id IN ?", prodIDs).Delete(&models.ProductImage{}).Error
}
