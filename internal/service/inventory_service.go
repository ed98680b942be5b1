package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/stocknest/internal/constants"
	"github.com/stocknest/internal/logger"
	"github.com/stocknest/internal/models"
	"github.com/stocknest/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// errInsufficient rolls an inventory transaction back when stock does not
// cover the requested quantity. Mapped to a false result, never surfaced.
var errInsufficient = errors.New("insufficient stock")

// InventoryService stock allocation and the sales ledger
type InventoryService struct {
	products    repository.ProductRepository
	allocations repository.AllocationRepository
	locals      repository.LocalRepository
	sales       repository.SaleRepository
}

// NewInventoryService creates the inventory service
func NewInventoryService(
	products repository.ProductRepository,
	allocations repository.AllocationRepository,
	locals repository.LocalRepository,
	sales repository.SaleRepository,
) *InventoryService {
	return &InventoryService{
		products:    products,
		allocations: allocations,
		locals:      locals,
		sales:       sales,
	}
}

// Available returns the unallocated share of a product's total quantity
func (s *InventoryService) Available(prodID string) (int, error) {
	product, err := s.products.GetByID(prodID)
	if err != nil {
		return 0, err
	}
	if product == nil {
		return 0, ErrNotFound
	}
	allocated, err := s.allocations.SumByProduct(product.ProdID)
	if err != nil {
		return 0, err
	}
	return product.Quantity - allocated, nil
}

// Allocated returns the quantity of a product held at one local
func (s *InventoryService) Allocated(localID uint, prodID string) (int, error) {
	row, err := s.allocations.Get(localID, prodID)
	if err != nil {
		return 0, err
	}
	if row == nil {
		return 0, nil
	}
	return row.Quantity, nil
}

// AllocateChecked moves qty units of unallocated stock to a local. Returns
// false when the unallocated pool cannot cover qty; nothing is written then.
// Allocation never changes the product's total quantity.
func (s *InventoryService) AllocateChecked(localID uint, prodID string, qty int) (bool, error) {
	if qty <= 0 {
		return false, fmt.Errorf("%w: quantity must be positive", ErrValidation)
	}
	local, err := s.locals.GetByID(localID)
	if err != nil {
		return false, err
	}
	if local == nil {
		return false, ErrNotFound
	}
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		product, err := s.products.WithTx(tx).GetByID(prodID)
		if err != nil {
			return err
		}
		if product == nil {
			return ErrNotFound
		}
		allocated, err := s.allocations.WithTx(tx).SumByProduct(product.ProdID)
		if err != nil {
			return err
		}
		if product.Quantity-allocated < qty {
			return errInsufficient
		}
		return s.allocations.WithTx(tx).Upsert(localID, product.ProdID, qty)
	})
	if errors.Is(err, errInsufficient) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Deallocate removes a local's entire allocation row for a product. The
// units return to the unallocated pool. No-op when no row exists.
func (s *InventoryService) Deallocate(localID uint, prodID string) error {
	product, err := s.products.GetByID(prodID)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrNotFound
	}
	return s.allocations.Delete(localID, product.ProdID)
}

// ListLocalStock lists a local's allocations joined with product data
func (s *InventoryService) ListLocalStock(localID uint) ([]repository.LocalStock, error) {
	return s.allocations.ListByLocal(localID)
}

// RegisterSaleInput sale registration input
type RegisterSaleInput struct {
	ProdID       string
	Qty          int
	LocationType string
	LocalID      *uint
	Client       string
	SoldAt       time.Time
}

// RegisterSale records a sale and decrements stock atomically. Online sales
// draw on the product total; local sales additionally draw down that local's
// allocation and drop the row when it reaches zero. Returns false, with no
// rows written, when stock does not cover the quantity.
func (s *InventoryService) RegisterSale(input RegisterSaleInput) (bool, error) {
	if input.Qty <= 0 {
		return false, fmt.Errorf("%w: quantity must be positive", ErrValidation)
	}
	switch input.LocationType {
	case constants.SaleLocationOnline:
		if input.LocalID != nil {
			return false, fmt.Errorf("%w: online sales carry no local", ErrValidation)
		}
	case constants.SaleLocationLocal:
		if input.LocalID == nil {
			return false, fmt.Errorf("%w: local sales require a local", ErrValidation)
		}
	default:
		return false, fmt.Errorf("%w: unknown location type %q", ErrValidation, input.LocationType)
	}

	soldAt := input.SoldAt
	if soldAt.IsZero() {
		soldAt = time.Now()
	}

	var sale models.SoldProduct
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		product, err := s.products.WithTx(tx).GetByID(input.ProdID)
		if err != nil {
			return err
		}
		if product == nil {
			return ErrNotFound
		}
		if input.Qty > product.Quantity {
			return errInsufficient
		}
		if input.LocationType == constants.SaleLocationLocal {
			local, err := s.locals.WithTx(tx).GetByID(*input.LocalID)
			if err != nil {
				return err
			}
			if local == nil {
				return ErrNotFound
			}
			row, err := s.allocations.WithTx(tx).Get(*input.LocalID, product.ProdID)
			if err != nil {
				return err
			}
			if row == nil || row.Quantity < input.Qty {
				return errInsufficient
			}
			affected, err := s.allocations.WithTx(tx).Decrement(*input.LocalID, product.ProdID, input.Qty)
			if err != nil {
				return err
			}
			if affected == 0 {
				return errInsufficient
			}
			if err := s.allocations.WithTx(tx).DeleteZeroRow(*input.LocalID, product.ProdID); err != nil {
				return err
			}
		}
		affected, err := s.products.WithTx(tx).DecrementQuantity(product.ProdID, input.Qty)
		if err != nil {
			return err
		}
		if affected == 0 {
			return errInsufficient
		}
		sale = models.SoldProduct{
			SaleID:       uuid.NewString(),
			ProdID:       product.ProdID,
			Qty:          input.Qty,
			LocationType: input.LocationType,
			LocalID:      input.LocalID,
			Client:       input.Client,
			SoldAt:       soldAt,
		}
		return s.sales.WithTx(tx).Create(&sale)
	})
	if errors.Is(err, errInsufficient) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	logger.Infow("sale_registered",
		"sale_id", sale.SaleID,
		"prod_id", sale.ProdID,
		"qty", sale.Qty,
		"location", sale.LocationType,
	)
	return true, nil
}

// ListSales lists the full ledger, newest first
func (s *InventoryService) ListSales() ([]repository.SaleRecord, error) {
	return s.sales.ListAll()
}

// ListSalesByProduct lists ledger rows of one product, newest first
func (s *InventoryService) ListSalesByProduct(prodID string) ([]models.SoldProduct, error) {
	return s.sales.ListByProduct(prodID)
}
