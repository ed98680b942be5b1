package models

// Product sellable item owned by a sub-department
type Product struct {
	ProdID      string `gorm:"primarykey;type:varchar(64)" json:"prod_id"` // derived id, stable for the product's life
	ParentSubID uint   `gorm:"not null;index" json:"parent_sub_id"`
	Name        string `gorm:"type:varchar(255);not null" json:"name"`
	Description string `gorm:"type:text;not null" json:"description"`
	Price       Money  `gorm:"type:decimal(20,2);not null;default:0" json:"price"`
	Quantity    int    `gorm:"not null;default:0" json:"quantity"` // authoritative total stock, not the sum of allocations

	// Parent identity copies hydrated on read, never persisted.
	SubAbbreviation  string `gorm:"-" json:"sub_abbreviation,omitempty"`
	SubName          string `gorm:"-" json:"sub_name,omitempty"`
	DeptAbbreviation string `gorm:"-" json:"dept_abbreviation,omitempty"`
	DeptName         string `gorm:"-" json:"dept_name,omitempty"`
}

// TableName sets the table name
func (Product) TableName() string {
	return "products"
}
