package models

// LocalProduct stock allocation of a product to a local.
// Rows never persist with quantity 0; the row is deleted instead.
type LocalProduct struct {
	LocalID  uint   `gorm:"primarykey;autoIncrement:false" json:"local_id"`
	ProdID   string `gorm:"primarykey;type:varchar(64)" json:"prod_id"`
	Quantity int    `gorm:"not null;default:0" json:"quantity"`
}

// TableName sets the table name
func (LocalProduct) TableName() string {
	return "local_products"
}
