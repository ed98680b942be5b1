package repository

import (
	"errors"

	"github.com/stocknest/internal/models"

	"gorm.io/gorm"
)

// SettingRepository key/value settings data access interface
type SettingRepository interface {
	GetByKey(key string) (*models.Setting, error)
	Upsert(key, value string) (*models.Setting, error)
	WithTx(tx *gorm.DB) SettingRepository
}

// GormSettingRepository GORM implementation
type GormSettingRepository struct {
	db *gorm.DB
}

// NewSettingRepository creates the setting repository
func NewSettingRepository(db *gorm.DB) *GormSettingRepository {
	return &GormSettingRepository{db: db}
}

// WithTx binds a transaction
func (r *GormSettingRepository) WithTx(tx *gorm.DB) SettingRepository {
	if tx == nil {
		return r
	}
	return &GormSettingRepository{db: tx}
}

// GetByKey fetches a setting
func (r *GormSettingRepository) GetByKey(key string) (*models.Setting, error) {
	var setting models.Setting
	if err := r.db.Where("key = ?", key).First(&setting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &setting, nil
}

// Upsert updates or creates a setting
func (r *GormSettingRepository) Upsert(key, value string) (*models.Setting, error) {
	setting, err := r.GetByKey(key)
	if err != nil {
		return nil, err
	}
	if setting == nil {
		setting = &models.Setting{
			Key:   key,
			Value: value,
		}
		if err := r.db.Create(setting).Error; err != nil {
			return nil, err
		}
		return setting, nil
	}

	setting.Value = value
	if err := r.db.Save(setting).Error; err != nil {
		return nil, err
	}
	return setting, nil
}
