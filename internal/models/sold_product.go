package models

import "time"

// SoldProduct immutable sales ledger entry.
// ProdID carries no foreign key: ledger rows survive product deletion for
// historical reporting.
type SoldProduct struct {
	SaleID       string    `gorm:"primarykey;type:varchar(64)" json:"sale_id"`
	ProdID       string    `gorm:"type:varchar(64);not null;index" json:"prod_id"`
	Qty          int       `gorm:"not null" json:"qty"`
	LocationType string    `gorm:"type:varchar(16);not null" json:"location_type"` // online / local
	LocalID      *uint     `gorm:"index" json:"local_id,omitempty"`                // set iff location_type is local
	Client       string    `gorm:"type:varchar(255)" json:"client,omitempty"`
	SoldAt       time.Time `gorm:"not null;index" json:"sold_at"`
}

// TableName sets the table name
func (SoldProduct) TableName() string {
	return "sold_products"
}
