package models

// Setting key/value configuration row
type Setting struct {
	Key   string `gorm:"primarykey;type:varchar(64)" json:"key"`
	Value string `gorm:"type:varchar(255);not null" json:"value"`
}

// TableName sets the table name
func (Setting) TableName() string {
	return "settings"
}
