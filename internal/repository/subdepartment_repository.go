package repository

import (
	"errors"

	"github.com/stocknest/internal/models"

	"gorm.io/gorm"
)

// SubDepartmentRepository sub-department data access interface
type SubDepartmentRepository interface {
	ListByDepartment(deptID uint) ([]models.SubDepartment, error)
	GetByID(subID uint) (*models.SubDepartment, error)
	CountByAbbreviation(deptID uint, abbreviation string) (int64, error)
	Create(sub *models.SubDepartment) error
	Rename(subID uint, name string) error
	Delete(subID uint) error
	DeleteByDepartment(deptID uint) error
	CountProducts(subID uint) (int64, error)
	ListProductIDs(subID uint) ([]string, error)
	ListProductIDsByDepartment(deptID uint) ([]string, error)
	WithTx(tx *gorm.DB) SubDepartmentRepository
}

// GormSubDepartmentRepository GORM implementation
type GormSubDepartmentRepository struct {
	db *gorm.DB
}

// NewSubDepartmentRepository creates the sub-department repository
func NewSubDepartmentRepository(db *gorm.DB) *GormSubDepartmentRepository {
	return &GormSubDepartmentRepository{db: db}
}

// WithTx binds a transaction
func (r *GormSubDepartmentRepository) WithTx(tx *gorm.DB) SubDepartmentRepository {
	if tx == nil {
		return r
	}
	return &GormSubDepartmentRepository{db: tx}
}

// ListByDepartment lists children of a department ordered by name
func (r *GormSubDepartmentRepository) ListByDepartment(deptID uint) ([]models.SubDepartment, error) {
	var subs []models.SubDepartment
	if err := r.db.Where("parent_dept_id = ?", deptID).Order("name").Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

// GetByID fetches a sub-department with its parent identity hydrated
func (r *GormSubDepartmentRepository) GetByID(subID uint) (*models.SubDepartment, error) {
	var sub models.SubDepartment
	if err := r.db.First(&sub, subID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	var dept models.Department
	if err := r.db.First(&dept, sub.ParentDeptID).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	} else {
		sub.DeptAbbreviation = dept.Abbreviation
		sub.DeptName = dept.Name
	}
	return &sub, nil
}

// CountByAbbreviation counts siblings with the given abbreviation under one department
func (r *GormSubDepartmentRepository) CountByAbbreviation(deptID uint, abbreviation string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.SubDepartment{}).
		Where("parent_dept_id = ? AND abbreviation = ?", deptID, abbreviation).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Create inserts a sub-department
func (r *GormSubDepartmentRepository) Create(sub *models.SubDepartment) error {
	return r.db.Create(sub).Error
}

// Rename updates the sub-department name
func (r *GormSubDepartmentRepository) Rename(subID uint, name string) error {
	return r.db.Model(&models.SubDepartment{}).
		Where("sub_id = ?", subID).
		Update("name", name).Error
}

// Delete removes the sub-department row
func (r *GormSubDepartmentRepository) Delete(subID uint) error {
	return r.db.Delete(&models.SubDepartment{}, subID).Error
}

// DeleteByDepartment removes all children of a department
func (r *GormSubDepartmentRepository) DeleteByDepartment(deptID uint) error {
	return r.db.Where("parent_dept_id = ?", deptID).Delete(&models.SubDepartment{}).Error
}

// CountProducts counts products owned by a sub-department
func (r *GormSubDepartmentRepository) CountProducts(subID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Product{}).
		Where("parent_sub_id = ?", subID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ListProductIDs lists ids of products owned by a sub-department
func (r *GormSubDepartmentRepository) ListProductIDs(subID uint) ([]string, error) {
	var ids []string
	if err := r.db.Model(&models.Product{}).
		Where("parent_sub_id = ?", subID).
		Pluck("prod_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// ListProductIDsByDepartment lists ids of products transitively owned by a department
func (r *GormSubDepartmentRepository) ListProductIDsByDepartment(deptID uint) ([]string, error) {
	var ids []string
	if err := r.db.Model(&models.Product{}).
		Joins("JOIN subdepartments ON subdepartments.sub_id = products.parent_sub_id").
		Where("subdepartments.parent_dept_id = ?", deptID).
		Pluck("products.prod_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
