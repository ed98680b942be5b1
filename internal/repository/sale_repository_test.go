package repository

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stocknest/internal/constants"
	"github.com/stocknest/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupSaleRepositoryTest(t *testing.T) (*GormSaleRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}, &models.Local{}, &models.SoldProduct{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewSaleRepository(db), db
}

func TestListAllNewestFirst(t *testing.T) {
	repo, _ := setupSaleRepositoryTest(t)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i, id := range []string{"s1", "s2", "s3"} {
		err := repo.Create(&models.SoldProduct{
			SaleID:       id,
			ProdID:       "ELECTV1",
			Qty:          1,
			LocationType: constants.SaleLocationOnline,
			SoldAt:       base.Add(time.Duration(i) * time.Hour),
		})
		if err != nil {
			t.Fatalf("create sale failed: %v", err)
		}
	}

	records, err := repo.ListAll()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	if records[0].Sale.SaleID != "s3" || records[2].Sale.SaleID != "s1" {
		t.Fatalf("expected newest first, got %s .. %s", records[0].Sale.SaleID, records[2].Sale.SaleID)
	}
}

func TestListAllSurvivesDeletedProduct(t *testing.T) {
	repo, db := setupSaleRepositoryTest(t)

	err := repo.Create(&models.SoldProduct{
		SaleID:       "s1",
		ProdID:       "ELECTV1",
		Qty:          2,
		LocationType: constants.SaleLocationOnline,
		SoldAt:       time.Now(),
	})
	if err != nil {
		t.Fatalf("create sale failed: %v", err)
	}
	// no product row exists for ELECTV1 at all

	records, err := repo.ListAll()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected ledger row to survive missing product, got %d", len(records))
	}
	if records[0].ProductName != "" {
		t.Fatalf("expected empty product name for deleted product, got %q", records[0].ProductName)
	}

	// joins fill in when the product exists
	err = db.Create(&models.Product{
		ProdID:      "ELECTV1",
		ParentSubID: 1,
		Name:        "42in LED TV",
		Price:       models.NewMoneyFromDecimal(decimal.NewFromInt(330)),
		Quantity:    3,
	}).Error
	if err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	records, err = repo.ListAll()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if records[0].ProductName != "42in LED TV" {
		t.Fatalf("expected joined product name, got %q", records[0].ProductName)
	}
}

func TestListAllJoinsLocalName(t *testing.T) {
	repo, db := setupSaleRepositoryTest(t)

	local := models.Local{Name: "Downtown store", RetailRate: decimal.Zero}
	if err := db.Create(&local).Error; err != nil {
		t.Fatalf("create local failed: %v", err)
	}
	err := repo.Create(&models.SoldProduct{
		SaleID:       "s1",
		ProdID:       "ELECTV1",
		Qty:          1,
		LocationType: constants.SaleLocationLocal,
		LocalID:      &local.LocalID,
		SoldAt:       time.Now(),
	})
	if err != nil {
		t.Fatalf("create sale failed: %v", err)
	}

	records, err := repo.ListAll()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(records) != 1 || records[0].LocalName != "Downtown store" {
		t.Fatalf("expected joined local name, got %+v", records)
	}
}
