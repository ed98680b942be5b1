package service

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stocknest/internal/models"
	"github.com/stocknest/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// testEnv holds the full service graph over one in-memory database
type testEnv struct {
	db        *gorm.DB
	catalog   *CatalogService
	product   *ProductService
	local     *LocalService
	inventory *InventoryService
	setting   *SettingService
}

func setupServiceTest(t *testing.T) *testEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Department{},
		&models.SubDepartment{},
		&models.Product{},
		&models.Local{},
		&models.LocalProduct{},
		&models.SoldProduct{},
		&models.ProductImage{},
		&models.Setting{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	departments := repository.NewDepartmentRepository(db)
	subDepartments := repository.NewSubDepartmentRepository(db)
	products := repository.NewProductRepository(db)
	locals := repository.NewLocalRepository(db)
	allocations := repository.NewAllocationRepository(db)
	sales := repository.NewSaleRepository(db)
	images := repository.NewProductImageRepository(db)
	settings := repository.NewSettingRepository(db)

	return &testEnv{
		db:        db,
		catalog:   NewCatalogService(departments, subDepartments, products, allocations, images, nil),
		product:   NewProductService(products, subDepartments, allocations, images, nil),
		local:     NewLocalService(locals, allocations),
		inventory: NewInventoryService(products, allocations, locals, sales),
		setting:   NewSettingService(settings, decimal.NewFromFloat(36.62)),
	}
}

// createCatalog seeds ELEC/TV and returns the sub-department id
func createCatalog(t *testing.T, env *testEnv) uint {
	t.Helper()
	dept, err := env.catalog.CreateDepartment("ELEC", "Electronics")
	if err != nil {
		t.Fatalf("create department failed: %v", err)
	}
	sub, err := env.catalog.CreateSubDepartment(dept.DeptID, "TV", "Televisions")
	if err != nil {
		t.Fatalf("create sub-department failed: %v", err)
	}
	return sub.SubID
}

// createProduct inserts a product with the given quantity and returns its id
func createProduct(t *testing.T, env *testEnv, subID uint, name string, quantity int) string {
	t.Helper()
	product, err := env.product.Create(CreateProductInput{
		SubID:    subID,
		Name:     name,
		Price:    decimal.NewFromFloat(329.99),
		Quantity: quantity,
	})
	if err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product.ProdID
}

// createLocal inserts a retail location and returns its id
func createLocal(t *testing.T, env *testEnv, name string) uint {
	t.Helper()
	local, err := env.local.Create(name)
	if err != nil {
		t.Fatalf("create local failed: %v", err)
	}
	return local.LocalID
}
