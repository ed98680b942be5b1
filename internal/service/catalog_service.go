package service

import (
	"fmt"
	"strings"

	"github.com/stocknest/internal/logger"
	"github.com/stocknest/internal/models"
	"github.com/stocknest/internal/repository"

	"gorm.io/gorm"
)

// MediaPurger removes stored media for products that no longer exist
type MediaPurger interface {
	PurgeProducts(prodIDs []string)
}

// CatalogService department and sub-department hierarchy operations
type CatalogService struct {
	departments    repository.DepartmentRepository
	subDepartments repository.SubDepartmentRepository
	products       repository.ProductRepository
	allocations    repository.AllocationRepository
	images         repository.ProductImageRepository
	media          MediaPurger
}

// NewCatalogService creates the catalog service
func NewCatalogService(
	departments repository.DepartmentRepository,
	subDepartments repository.SubDepartmentRepository,
	products repository.ProductRepository,
	allocations repository.AllocationRepository,
	images repository.ProductImageRepository,
	media MediaPurger,
) *CatalogService {
	return &CatalogService{
		departments:    departments,
		subDepartments: subDepartments,
		products:       products,
		allocations:    allocations,
		images:         images,
		media:          media,
	}
}

// ListDepartments lists all departments
func (s *CatalogService) ListDepartments() ([]models.Department, error) {
	return s.departments.List()
}

// GetDepartmentByAbbreviation fetches a department by abbreviation
func (s *CatalogService) GetDepartmentByAbbreviation(abbreviation string) (*models.Department, error) {
	dept, err := s.departments.GetByAbbreviation(strings.TrimSpace(abbreviation))
	if err != nil {
		return nil, err
	}
	if dept == nil {
		return nil, ErrNotFound
	}
	return dept, nil
}

// ListSubDepartments lists children of a department
func (s *CatalogService) ListSubDepartments(deptID uint) ([]models.SubDepartment, error) {
	return s.subDepartments.ListByDepartment(deptID)
}

// CreateDepartment creates a department with a globally unique abbreviation
func (s *CatalogService) CreateDepartment(abbreviation, name string) (*models.Department, error) {
	abbreviation = strings.TrimSpace(abbreviation)
	name = strings.TrimSpace(name)
	if abbreviation == "" || name == "" {
		return nil, fmt.Errorf("%w: abbreviation and name are required", ErrValidation)
	}
	count, err := s.departments.CountByAbbreviation(abbreviation)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateAbbreviation
	}
	dept := models.Department{
		Abbreviation: abbreviation,
		Name:         name,
	}
	if err := s.departments.Create(&dept); err != nil {
		return nil, err
	}
	return &dept, nil
}

// CreateSubDepartment creates a sub-department; the abbreviation is unique
// only among siblings of the same department
func (s *CatalogService) CreateSubDepartment(deptID uint, abbreviation, name string) (*models.SubDepartment, error) {
	abbreviation = strings.TrimSpace(abbreviation)
	name = strings.TrimSpace(name)
	if abbreviation == "" || name == "" {
		return nil, fmt.Errorf("%w: abbreviation and name are required", ErrValidation)
	}
	dept, err := s.departments.GetByID(deptID)
	if err != nil {
		return nil, err
	}
	if dept == nil {
		return nil, ErrNotFound
	}
	count, err := s.subDepartments.CountByAbbreviation(deptID, abbreviation)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateAbbreviation
	}
	sub := models.SubDepartment{
		ParentDeptID: deptID,
		Abbreviation: abbreviation,
		Name:         name,
	}
	if err := s.subDepartments.Create(&sub); err != nil {
		return nil, err
	}
	sub.DeptAbbreviation = dept.Abbreviation
	sub.DeptName = dept.Name
	return &sub, nil
}

// RenameDepartment updates a department name
func (s *CatalogService) RenameDepartment(deptID uint, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	dept, err := s.departments.GetByID(deptID)
	if err != nil {
		return err
	}
	if dept == nil {
		return ErrNotFound
	}
	return s.departments.Rename(deptID, name)
}

// RenameSubDepartment updates a sub-department name
func (s *CatalogService) RenameSubDepartment(subID uint, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	sub, err := s.subDepartments.GetByID(subID)
	if err != nil {
		return err
	}
	if sub == nil {
		return ErrNotFound
	}
	return s.subDepartments.Rename(subID, name)
}

// DeleteDepartmentIfEmpty deletes a department only when it has no children.
// Returns false, without mutating anything, when children exist.
func (s *CatalogService) DeleteDepartmentIfEmpty(deptID uint) (bool, error) {
	count, err := s.departments.CountSubDepartments(deptID)
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}
	if err := s.departments.Delete(deptID); err != nil {
		return false, err
	}
	return true, nil
}

// DeleteSubDepartmentIfEmpty deletes a sub-department only when it owns no
// products. Returns false, without mutating anything, when products exist.
func (s *CatalogService) DeleteSubDepartmentIfEmpty(subID uint) (bool, error) {
	count, err := s.subDepartments.CountProducts(subID)
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}
	if err := s.subDepartments.Delete(subID); err != nil {
		return false, err
	}
	return true, nil
}

// ForceDeleteDepartment cascades over sub-departments, products, allocations
// and image records, then purges stored media. The sales ledger is untouched.
func (s *CatalogService) ForceDeleteDepartment(deptID uint) error {
	var prodIDs []string
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		prodIDs, err = s.subDepartments.WithTx(tx).ListProductIDsByDepartment(deptID)
		if err != nil {
			return err
		}
		if err := s.allocations.WithTx(tx).DeleteByProducts(prodIDs); err != nil {
			return err
		}
		if err := s.images.WithTx(tx).DeleteByProducts(prodIDs); err != nil {
			return err
		}
		if err := s.products.WithTx(tx).DeleteByDepartment(deptID); err != nil {
			return err
		}
		if err := s.subDepartments.WithTx(tx).DeleteByDepartment(deptID); err != nil {
			return err
		}
		return s.departments.WithTx(tx).Delete(deptID)
	})
	if err != nil {
		return err
	}
	s.purgeMedia(prodIDs)
	return nil
}

// ForceDeleteSubDepartment cascades over products, allocations and image
// records, then purges stored media. The sales ledger is untouched.
func (s *CatalogService) ForceDeleteSubDepartment(subID uint) error {
	var prodIDs []string
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		prodIDs, err = s.subDepartments.WithTx(tx).ListProductIDs(subID)
		if err != nil {
			return err
		}
		if err := s.allocations.WithTx(tx).DeleteByProducts(prodIDs); err != nil {
			return err
		}
		if err := s.images.WithTx(tx).DeleteByProducts(prodIDs); err != nil {
			return err
		}
		if err := s.products.WithTx(tx).DeleteBySubDepartment(subID); err != nil {
			return err
		}
		return s.subDepartments.WithTx(tx).Delete(subID)
	})
	if err != nil {
		return err
	}
	s.purgeMedia(prodIDs)
	return nil
}

func (s *CatalogService) purgeMedia(prodIDs []string) {
	if s.media == nil || len(prodIDs) == 0 {
		return
	}
	s.media.PurgeProducts(prodIDs)
	logger.Debugw("media_purged", "products", len(prodIDs))
}
