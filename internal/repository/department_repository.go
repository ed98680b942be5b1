package repository

import (
	"errors"

	"github.com/stocknest/internal/models"

	"gorm.io/gorm"
)

// DepartmentRepository department data access interface
type DepartmentRepository interface {
	List() ([]models.Department, error)
	GetByID(deptID uint) (*models.Department, error)
	GetByAbbreviation(abbreviation string) (*models.Department, error)
	CountByAbbreviation(abbreviation string) (int64, error)
	Create(dept *models.Department) error
	Rename(deptID uint, name string) error
	Delete(deptID uint) error
	CountSubDepartments(deptID uint) (int64, error)
	WithTx(tx *gorm.DB) DepartmentRepository
}

// GormDepartmentRepository GORM implementation
type GormDepartmentRepository struct {
	db *gorm.DB
}

// NewDepartmentRepository creates the department repository
func NewDepartmentRepository(db *gorm.DB) *GormDepartmentRepository {
	return &GormDepartmentRepository{db: db}
}

// WithTx binds a transaction
func (r *GormDepartmentRepository) WithTx(tx *gorm.DB) DepartmentRepository {
	if tx == nil {
		return r
	}
	return &GormDepartmentRepository{db: tx}
}

// List lists departments ordered by name
func (r *GormDepartmentRepository) List() ([]models.Department, error) {
	var departments []models.Department
	if err := r.db.Order("name").Find(&departments).Error; err != nil {
		return nil, err
	}
	return departments, nil
}

// GetByID fetches a department
func (r *GormDepartmentRepository) GetByID(deptID uint) (*models.Department, error) {
	var dept models.Department
	if err := r.db.First(&dept, deptID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &dept, nil
}

// GetByAbbreviation fetches a department by its unique abbreviation
func (r *GormDepartmentRepository) GetByAbbreviation(abbreviation string) (*models.Department, error) {
	var dept models.Department
	err := r.db.Where("abbreviation = ?", abbreviation).Take(&dept).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &dept, nil
}

// CountByAbbreviation counts departments with the given abbreviation
func (r *GormDepartmentRepository) CountByAbbreviation(abbreviation string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Department{}).
		Where("abbreviation = ?", abbreviation).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Create inserts a department
func (r *GormDepartmentRepository) Create(dept *models.Department) error {
	return r.db.Create(dept).Error
}

// Rename updates the department name
func (r *GormDepartmentRepository) Rename(deptID uint, name string) error {
	return r.db.Model(&models.Department{}).
		Where("dept_id = ?", deptID).
		Update("name", name).Error
}

// Delete removes the department row
func (r *GormDepartmentRepository) Delete(deptID uint) error {
	return r.db.Delete(&models.Department{}, deptID).Error
}

// CountSubDepartments counts children of a department
func (r *GormDepartmentRepository) CountSubDepartments(deptID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.SubDepartment{}).
		Where("parent_dept_id = ?", deptID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
