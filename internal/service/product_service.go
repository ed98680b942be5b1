package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/stocknest/internal/models"
	"github.com/stocknest/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductService product CRUD, id generation and search
type ProductService struct {
	products       repository.ProductRepository
	subDepartments repository.SubDepartmentRepository
	allocations    repository.AllocationRepository
	images         repository.ProductImageRepository
	media          MediaPurger
}

// NewProductService creates the product service
func NewProductService(
	products repository.ProductRepository,
	subDepartments repository.SubDepartmentRepository,
	allocations repository.AllocationRepository,
	images repository.ProductImageRepository,
	media MediaPurger,
) *ProductService {
	return &ProductService{
		products:       products,
		subDepartments: subDepartments,
		allocations:    allocations,
		images:         images,
		media:          media,
	}
}

// CreateProductInput creation input
type CreateProductInput struct {
	SubID       uint
	Name        string
	Description string
	Price       decimal.Decimal
	Quantity    int
}

// NextProductID derives the next free id for a sub-department.
// The prefix is the department abbreviation followed by the sub-department
// abbreviation; the suffix is one greater than the highest all-digit suffix
// among existing ids with that exact prefix. A plain count would regress
// after deletions and collide.
func (s *ProductService) NextProductID(subID uint) (string, error) {
	sub, err := s.subDepartments.GetByID(subID)
	if err != nil {
		return "", err
	}
	if sub == nil {
		return "", ErrNotFound
	}
	prefix := sub.DeptAbbreviation + sub.Abbreviation
	ids, err := s.products.ListIDsBySubDepartment(subID)
	if err != nil {
		return "", err
	}
	highest := 0
	for _, id := range ids {
		if !strings.HasPrefix(id, prefix) {
			continue
		}
		suffix := id[len(prefix):]
		if !isAllDigits(suffix) {
			// legacy ids with non-numeric remainders are ignored
			continue
		}
		n, err := strconv.Atoi(suffix)
		if err != nil || n <= 0 {
			continue
		}
		if n > highest {
			highest = n
		}
	}
	return fmt.Sprintf("%s%d", prefix, highest+1), nil
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Create generates an id and inserts the product
func (s *ProductService) Create(input CreateProductInput) (*models.Product, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if input.Quantity < 0 {
		return nil, fmt.Errorf("%w: quantity must not be negative", ErrValidation)
	}
	if input.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price must not be negative", ErrValidation)
	}
	prodID, err := s.NextProductID(input.SubID)
	if err != nil {
		return nil, err
	}
	product := models.Product{
		ProdID:      prodID,
		ParentSubID: input.SubID,
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		Price:       models.NewMoneyFromDecimal(input.Price),
		Quantity:    input.Quantity,
	}
	if err := s.products.Create(&product); err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateProductInput in-place edit input
type UpdateProductInput struct {
	ProdID      string
	Name        string
	Description string
	Price       decimal.Decimal
	Quantity    int
}

// Update rewrites name, description, price and quantity
func (s *ProductService) Update(input UpdateProductInput) error {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if input.Quantity < 0 {
		return fmt.Errorf("%w: quantity must not be negative", ErrValidation)
	}
	if input.Price.IsNegative() {
		return fmt.Errorf("%w: price must not be negative", ErrValidation)
	}
	existing, err := s.products.GetByID(input.ProdID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}
	return s.products.Update(&models.Product{
		ProdID:      existing.ProdID,
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		Price:       models.NewMoneyFromDecimal(input.Price),
		Quantity:    input.Quantity,
	})
}

// Get fetches a product by id (case-insensitive)
func (s *ProductService) Get(prodID string) (*models.Product, error) {
	product, err := s.products.GetByID(prodID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}
	return product, nil
}

// List lists products of a sub-department
func (s *ProductService) List(subID uint) ([]models.Product, error) {
	return s.products.ListBySubDepartment(subID)
}

// Search matches product ids exactly (case-insensitive) or names as a
// substring; returns an empty slice when nothing matches
func (s *ProductService) Search(query string) ([]models.Product, error) {
	return s.products.Search(query)
}

// Delete removes a product with its allocations and image records in one
// transaction, then purges stored media. Ledger rows are kept.
func (s *ProductService) Delete(prodID string) error {
	product, err := s.products.GetByID(prodID)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrNotFound
	}
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.allocations.WithTx(tx).DeleteByProducts([]string{product.ProdID}); err != nil {
			return err
		}
		if err := s.images.WithTx(tx).DeleteByProducts([]string{product.ProdID}); err != nil {
			return err
		}
		return s.products.WithTx(tx).Delete(product.ProdID)
	})
	if err != nil {
		return err
	}
	if s.media != nil {
		s.media.PurgeProducts([]string{product.ProdID})
	}
	return nil
}
