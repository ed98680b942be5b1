package service

import (
	"errors"
	"testing"

	"github.com/stocknest/internal/constants"
	"github.com/stocknest/internal/models"

	"github.com/shopspring/decimal"
)

func TestConversionRatePersistsDefaultOnFirstRead(t *testing.T) {
	env := setupServiceTest(t)

	rate, err := env.setting.ConversionRate()
	if err != nil {
		t.Fatalf("conversion rate failed: %v", err)
	}
	if !rate.Equal(decimal.NewFromFloat(36.62)) {
		t.Fatalf("expected default 36.62, got %s", rate)
	}

	var setting models.Setting
	if err := env.db.Where("key = ?", constants.SettingKeyConversionRate).
		Take(&setting).Error; err != nil {
		t.Fatalf("default was not persisted: %v", err)
	}
	if setting.Value != "36.62" {
		t.Fatalf("expected stored default 36.62, got %q", setting.Value)
	}
}

func TestSetConversionRateRoundTrips(t *testing.T) {
	env := setupServiceTest(t)

	if err := env.setting.SetConversionRate(decimal.NewFromFloat(40.5)); err != nil {
		t.Fatalf("set rate failed: %v", err)
	}
	rate, err := env.setting.ConversionRate()
	if err != nil {
		t.Fatalf("conversion rate failed: %v", err)
	}
	if !rate.Equal(decimal.NewFromFloat(40.5)) {
		t.Fatalf("expected 40.5, got %s", rate)
	}
}

func TestSetConversionRateRejectsNonPositive(t *testing.T) {
	env := setupServiceTest(t)

	if err := env.setting.SetConversionRate(decimal.Zero); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for zero, got %v", err)
	}
	if err := env.setting.SetConversionRate(decimal.NewFromInt(-5)); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for negative, got %v", err)
	}
}

func TestConversionRateFallsBackOnGarbage(t *testing.T) {
	env := setupServiceTest(t)

	if err := env.setting.SetString(constants.SettingKeyConversionRate, "not-a-number"); err != nil {
		t.Fatalf("set string failed: %v", err)
	}
	rate, err := env.setting.ConversionRate()
	if err != nil {
		t.Fatalf("conversion rate failed: %v", err)
	}
	if !rate.Equal(decimal.NewFromFloat(36.62)) {
		t.Fatalf("expected fallback to default, got %s", rate)
	}
}

func TestGetStringUnsetKeyIsEmpty(t *testing.T) {
	env := setupServiceTest(t)

	value, err := env.setting.GetString("nothing_here")
	if err != nil {
		t.Fatalf("get string failed: %v", err)
	}
	if value != "" {
		t.Fatalf("expected empty string, got %q", value)
	}
}
