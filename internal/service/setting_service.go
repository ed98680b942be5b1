package service

import (
	"fmt"

	"github.com/stocknest/internal/constants"
	"github.com/stocknest/internal/logger"
	"github.com/stocknest/internal/repository"

	"github.com/shopspring/decimal"
)

// SettingService typed access to the key/value settings table
type SettingService struct {
	repo        repository.SettingRepository
	defaultRate decimal.Decimal
}

// NewSettingService creates the setting service
func NewSettingService(repo repository.SettingRepository, defaultConversionRate decimal.Decimal) *SettingService {
	return &SettingService{
		repo:        repo,
		defaultRate: defaultConversionRate,
	}
}

// ConversionRate reads the base-to-secondary currency multiplier.
// The configured default is persisted on first read.
func (s *SettingService) ConversionRate() (decimal.Decimal, error) {
	setting, err := s.repo.GetByKey(constants.SettingKeyConversionRate)
	if err != nil {
		return decimal.Zero, err
	}
	if setting == nil {
		if _, err := s.repo.Upsert(constants.SettingKeyConversionRate, s.defaultRate.String()); err != nil {
			return decimal.Zero, err
		}
		return s.defaultRate, nil
	}
	rate, err := decimal.NewFromString(setting.Value)
	if err != nil {
		logger.Warnw("conversion_rate_unparseable",
			"value", setting.Value,
			"fallback", s.defaultRate.String(),
		)
		return s.defaultRate, nil
	}
	return rate, nil
}

// SetConversionRate stores the currency multiplier
func (s *SettingService) SetConversionRate(rate decimal.Decimal) error {
	if rate.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: conversion rate must be positive", ErrValidation)
	}
	_, err := s.repo.Upsert(constants.SettingKeyConversionRate, rate.String())
	return err
}

// GetString reads a raw setting value; empty string when unset
func (s *SettingService) GetString(key string) (string, error) {
	setting, err := s.repo.GetByKey(key)
	if err != nil {
		return "", err
	}
	if setting == nil {
		return "", nil
	}
	return setting.Value, nil
}

// SetString stores a raw setting value
func (s *SettingService) SetString(key, value string) error {
	_, err := s.repo.Upsert(key, value)
	return err
}
