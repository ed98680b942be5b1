package repository

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stocknest/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupProductRepositoryTest(t *testing.T) (*GormProductRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Department{}, &models.SubDepartment{}, &models.Product{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewProductRepository(db), db
}

func createTestProduct(t *testing.T, repo *GormProductRepository, prodID, name string, quantity int) {
	t.Helper()
	err := repo.Create(&models.Product{
		ProdID:      prodID,
		ParentSubID: 1,
		Name:        name,
		Price:       models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
		Quantity:    quantity,
	})
	if err != nil {
		t.Fatalf("create product %s failed: %v", prodID, err)
	}
}

func TestGetByIDIsCaseInsensitive(t *testing.T) {
	repo, _ := setupProductRepositoryTest(t)
	createTestProduct(t, repo, "ELECTV1", "42in LED TV", 10)

	product, err := repo.GetByID("electv1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if product == nil || product.ProdID != "ELECTV1" {
		t.Fatalf("expected case-insensitive id match, got %+v", product)
	}
}

func TestGetByIDMissingReturnsNil(t *testing.T) {
	repo, _ := setupProductRepositoryTest(t)

	product, err := repo.GetByID("NOPE1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if product != nil {
		t.Fatalf("expected nil for missing product, got %+v", product)
	}
}

func TestSearchMatchesIDExactAndNameSubstring(t *testing.T) {
	repo, _ := setupProductRepositoryTest(t)
	createTestProduct(t, repo, "ELECTV1", "42in LED TV", 10)
	createTestProduct(t, repo, "ELECTV2", "55in OLED TV", 4)
	createTestProduct(t, repo, "HOMEKIT1", "Blender", 8)

	byID, err := repo.Search("electv1")
	if err != nil {
		t.Fatalf("search by id failed: %v", err)
	}
	if len(byID) != 1 || byID[0].ProdID != "ELECTV1" {
		t.Fatalf("expected exact id match, got %+v", byID)
	}

	byName, err := repo.Search("led")
	if err != nil {
		t.Fatalf("search by name failed: %v", err)
	}
	if len(byName) != 2 {
		t.Fatalf("expected both TVs on substring match, got %+v", byName)
	}

	// a partial id is not an id match and must not leak through
	partial, err := repo.Search("ELECTV")
	if err != nil {
		t.Fatalf("search partial failed: %v", err)
	}
	if len(partial) != 0 {
		t.Fatalf("partial id should match nothing, got %+v", partial)
	}
}

func TestSearchBlankQueryReturnsEmpty(t *testing.T) {
	repo, _ := setupProductRepositoryTest(t)
	createTestProduct(t, repo, "ELECTV1", "42in LED TV", 10)

	results, err := repo.Search("   ")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected empty result for blank query, got %+v", results)
	}
}

func TestDecrementQuantityGuardRejectsOverdraw(t *testing.T) {
	repo, _ := setupProductRepositoryTest(t)
	createTestProduct(t, repo, "ELECTV1", "42in LED TV", 5)

	affected, err := repo.DecrementQuantity("ELECTV1", 6)
	if err != nil {
		t.Fatalf("decrement failed: %v", err)
	}
	if affected != 0 {
		t.Fatalf("expected guard to reject overdraw, affected=%d", affected)
	}

	affected, err = repo.DecrementQuantity("ELECTV1", 5)
	if err != nil {
		t.Fatalf("decrement failed: %v", err)
	}
	if affected != 1 {
		t.Fatalf("expected exact decrement to pass, affected=%d", affected)
	}

	product, err := repo.GetByID("ELECTV1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if product.Quantity != 0 {
		t.Fatalf("expected quantity 0, got %d", product.Quantity)
	}
}

func TestDeleteByDepartmentSpansSubDepartments(t *testing.T) {
	repo, db := setupProductRepositoryTest(t)
	if err := db.Create(&models.Department{DeptID: 1, Abbreviation: "ELEC", Name: "Electronics"}).Error; err != nil {
		t.Fatalf("create department failed: %v", err)
	}
	subs := []models.SubDepartment{
		{SubID: 1, ParentDeptID: 1, Abbreviation: "TV", Name: "Televisions"},
		{SubID: 2, ParentDeptID: 1, Abbreviation: "AUD", Name: "Audio"},
	}
	for i := range subs {
		if err := db.Create(&subs[i]).Error; err != nil {
			t.Fatalf("create sub-department failed: %v", err)
		}
	}
	createTestProduct(t, repo, "ELECTV1", "42in LED TV", 10)
	if err := repo.Create(&models.Product{
		ProdID:      "ELECAUD1",
		ParentSubID: 2,
		Name:        "Bluetooth speaker",
		Price:       models.NewMoneyFromDecimal(decimal.NewFromInt(50)),
		Quantity:    30,
	}); err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	if err := repo.DeleteByDepartment(1); err != nil {
		t.Fatalf("delete by department failed: %v", err)
	}

	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected all products gone, %d remain", count)
	}
}
