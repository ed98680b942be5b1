package models

// Department top-level catalog grouping
type Department struct {
	DeptID       uint   `gorm:"primarykey" json:"dept_id"`
	Abbreviation string `gorm:"type:varchar(16);uniqueIndex;not null" json:"abbreviation"` // unique across departments
	Name         string `gorm:"type:varchar(255);not null" json:"name"`
}

// TableName sets the table name
func (Department) TableName() string {
	return "departments"
}
