package repository

import (
	"errors"
	"strings"

	"github.com/stocknest/internal/models"

	"gorm.io/gorm"
)

// ProductRepository product data access interface
type ProductRepository interface {
	ListBySubDepartment(subID uint) ([]models.Product, error)
	GetByID(prodID string) (*models.Product, error)
	ListIDsBySubDepartment(subID uint) ([]string, error)
	Search(query string) ([]models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(prodID string) error
	DeleteBySubDepartment(subID uint) error
	DeleteByDepartment(deptID uint) error
	DecrementQuantity(prodID string, qty int) (int64, error)
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) ProductRepository
}

// GormProductRepository GORM implementation
type GormProductRepository struct {
	db *gorm.DB
}

// NewProductRepository creates the product repository
func NewProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// WithTx binds a transaction
func (r *GormProductRepository) WithTx(tx *gorm.DB) ProductRepository {
	if tx == nil {
		return r
	}
	return &GormProductRepository{db: tx}
}

// Transaction runs fn inside a transaction
func (r *GormProductRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// ListBySubDepartment lists products of a sub-department ordered by name
func (r *GormProductRepository) ListBySubDepartment(subID uint) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Where("parent_sub_id = ?", subID).Order("name").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// GetByID fetches a product by id, case-insensitively, with parent identity hydrated
func (r *GormProductRepository) GetByID(prodID string) (*models.Product, error) {
	var product models.Product
	err := r.db.Where("UPPER(prod_id) = ?", strings.ToUpper(strings.TrimSpace(prodID))).
		Take(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if err := r.hydrateParents(&product); err != nil {
		return nil, err
	}
	return &product, nil
}

// ListIDsBySubDepartment lists product ids owned by a sub-department
func (r *GormProductRepository) ListIDsBySubDepartment(subID uint) ([]string, error) {
	var ids []string
	if err := r.db.Model(&models.Product{}).
		Where("parent_sub_id = ?", subID).
		Pluck("prod_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// Search matches the id exactly (case-insensitive) or the name as a substring
func (r *GormProductRepository) Search(query string) ([]models.Product, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return []models.Product{}, nil
	}
	like := "%" + strings.ToUpper(trimmed) + "%"
	var products []models.Product
	if err := r.db.
		Where("UPPER(prod_id) = ? OR UPPER(name) LIKE ?", strings.ToUpper(trimmed), like).
		Order("name").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Create inserts a product
func (r *GormProductRepository) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

// Update rewrites name, description, price and quantity
func (r *GormProductRepository) Update(product *models.Product) error {
	return r.db.Model(&models.Product{}).
		Where("prod_id = ?", product.ProdID).
		Updates(map[string]interface{}{
			"name":        product.Name,
			"description": product.Description,
			"price":       product.Price,
			"quantity":    product.Quantity,
		}).Error
}

// Delete removes the product row
func (r *GormProductRepository) Delete(prodID string) error {
	return r.db.Where("prod_id = ?", prodID).Delete(&models.Product{}).Error
}

// DeleteBySubDepartment removes all products of a sub-department
func (r *GormProductRepository) DeleteBySubDepartment(subID uint) error {
	return r.db.Where("parent_sub_id = ?", subID).Delete(&models.Product{}).Error
}

// DeleteByDepartment removes all products transitively owned by a department
func (r *GormProductRepository) DeleteByDepartment(deptID uint) error {
	return r.db.Where(
		"parent_sub_id IN (?)",
		r.db.Model(&models.SubDepartment{}).Select("sub_id").Where("parent_dept_id = ?", deptID),
	).Delete(&models.Product{}).Error
}

// DecrementQuantity decrements total stock, guarded so quantity never goes negative
func (r *GormProductRepository) DecrementQuantity(prodID string, qty int) (int64, error) {
	if prodID == "" || qty <= 0 {
		return 0, errors.New("invalid quantity decrement params")
	}
	result := r.db.Model(&models.Product{}).
		Where("prod_id = ? AND quantity >= ?", prodID, qty).
		Update("quantity", gorm.Expr("quantity - ?", qty))
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *GormProductRepository) hydrateParents(product *models.Product) error {
	var sub models.SubDepartment
	if err := r.db.First(&sub, product.ParentSubID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	product.SubAbbreviation = sub.Abbreviation
	product.SubName = sub.Name
	var dept models.Department
	if err := r.db.First(&dept, sub.ParentDeptID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	product.DeptAbbreviation = dept.Abbreviation
	product.DeptName = dept.Name
	return nil
}
