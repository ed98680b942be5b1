package repository

import "github.com/stocknest/internal/models"

// LocalStock allocation joined with its product for the per-local view
type LocalStock struct {
	Product       models.Product
	LocalQuantity int
}

// SaleRecord ledger entry joined with product data when it still exists
type SaleRecord struct {
	Sale        models.SoldProduct
	ProductName string // empty when the product was deleted after the sale
	Description string
	Price       models.Money
	LocalName   string // resolved local name for local sales
}
