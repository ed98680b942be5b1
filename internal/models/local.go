package models

import "github.com/shopspring/decimal"

// Local secondary retail location with its own markup
type Local struct {
	LocalID    uint            `gorm:"primarykey" json:"local_id"`
	Name       string          `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	RetailRate decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"retail_rate"` // percentage markup, applied at read time only
}

// TableName sets the table name
func (Local) TableName() string {
	return "locals"
}
