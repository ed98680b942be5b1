package models

// SubDepartment second-level catalog grouping owned by a department
type SubDepartment struct {
	SubID        uint   `gorm:"primarykey" json:"sub_id"`
	ParentDeptID uint   `gorm:"not null;index;uniqueIndex:idx_subdepartments_parent_abbrev" json:"parent_dept_id"`
	Abbreviation string `gorm:"type:varchar(16);not null;uniqueIndex:idx_subdepartments_parent_abbrev" json:"abbreviation"` // unique within the parent department
	Name         string `gorm:"type:varchar(255);not null" json:"name"`

	// Parent identity copies hydrated on read, never persisted.
	DeptAbbreviation string `gorm:"-" json:"dept_abbreviation,omitempty"`
	DeptName         string `gorm:"-" json:"dept_name,omitempty"`
}

// TableName sets the table name
func (SubDepartment) TableName() string {
	return "subdepartments"
}
