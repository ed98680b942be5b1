package models

import "time"

// ProductImage attachment record pointing into the media store
type ProductImage struct {
	ImageID   string    `gorm:"primarykey;type:varchar(64)" json:"image_id"`
	ProdID    string    `gorm:"type:varchar(64);not null;index" json:"prod_id"`
	RelPath   string    `gorm:"type:varchar(500);not null" json:"rel_path"` // relative to the media root
	MimeType  string    `gorm:"type:varchar(100)" json:"mime_type"`
	IsPrimary bool      `gorm:"not null;default:false" json:"is_primary"`
	SortOrder *int      `json:"sort_order,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName sets the table name
func (ProductImage) TableName() string {
	return "product_images"
}
