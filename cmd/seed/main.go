package main

import (
	"errors"
	"os"

	"github.com/stocknest/internal/config"
	"github.com/stocknest/internal/logger"
	"github.com/stocknest/internal/models"
	"github.com/stocknest/internal/provider"
	"github.com/stocknest/internal/service"

	"github.com/shopspring/decimal"
)

// Seeds a small sample catalog. Safe to run repeatedly: duplicate
// abbreviations and names are skipped.
func main() {
	cfg := config.Load()
	logger.Init(cfg.App.Mode, cfg.Log.ToLoggerOptions())

	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns: cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns: cfg.Database.Pool.MaxIdleConns,
	}); err != nil {
		logger.Errorw("db_init_failed", "error", err)
		os.Exit(1)
	}
	if err := models.AutoMigrate(); err != nil {
		logger.Errorw("db_migrate_failed", "error", err)
		os.Exit(1)
	}

	c := provider.NewContainer(cfg)

	seedCatalog(c)
	seedLocals(c)

	logger.Infow("seed_done")
}

type seedSub struct {
	abbrev   string
	name     string
	products []seedProduct
}

type seedProduct struct {
	name     string
	price    string
	quantity int
}

func seedCatalog(c *provider.Container) {
	depts := []struct {
		abbrev string
		name   string
		subs   []seedSub
	}{
		{
			abbrev: "ELEC",
			name:   "Electronics",
			subs: []seedSub{
				{abbrev: "TV", name: "Televisions", products: []seedProduct{
					{name: "42in LED TV", price: "329.99", quantity: 12},
					{name: "55in OLED TV", price: "899.00", quantity: 4},
				}},
				{abbrev: "AUD", name: "Audio", products: []seedProduct{
					{name: "Bluetooth speaker", price: "49.90", quantity: 30},
				}},
			},
		},
		{
			abbrev: "HOME",
			name:   "Home & Kitchen",
			subs: []seedSub{
				{abbrev: "KIT", name: "Kitchen", products: []seedProduct{
					{name: "Blender 600W", price: "75.50", quantity: 8},
				}},
			},
		},
	}

	for _, d := range depts {
		dept, err := c.Catalog.CreateDepartment(d.abbrev, d.name)
		if errors.Is(err, service.ErrDuplicateAbbreviation) {
			logger.Infow("seed_department_exists", "abbrev", d.abbrev)
			dept, err = c.Catalog.GetDepartmentByAbbreviation(d.abbrev)
			if err != nil {
				logger.Errorw("seed_department_lookup_failed", "abbrev", d.abbrev, "error", err)
				os.Exit(1)
			}
		} else if err != nil {
			logger.Errorw("seed_department_failed", "abbrev", d.abbrev, "error", err)
			os.Exit(1)
		}
		for _, s := range d.subs {
			sub, err := c.Catalog.CreateSubDepartment(dept.DeptID, s.abbrev, s.name)
			if errors.Is(err, service.ErrDuplicateAbbreviation) {
				logger.Infow("seed_subdepartment_exists", "abbrev", s.abbrev)
				continue
			}
			if err != nil {
				logger.Errorw("seed_subdepartment_failed", "abbrev", s.abbrev, "error", err)
				os.Exit(1)
			}
			for _, p := range s.products {
				price, err := decimal.NewFromString(p.price)
				if err != nil {
					logger.Errorw("seed_price_invalid", "name", p.name, "error", err)
					os.Exit(1)
				}
				if _, err := c.Product.Create(service.CreateProductInput{
					SubID:    sub.SubID,
					Name:     p.name,
					Price:    price,
					Quantity: p.quantity,
				}); err != nil {
					logger.Errorw("seed_product_failed", "name", p.name, "error", err)
					os.Exit(1)
				}
			}
		}
		logger.Infow("seed_department_created", "abbrev", d.abbrev)
	}
}

func seedLocals(c *provider.Container) {
	for _, name := range []string{"Downtown store", "Mall kiosk"} {
		if _, err := c.Local.Create(name); err != nil {
			if errors.Is(err, service.ErrDuplicateName) {
				logger.Infow("seed_local_exists", "name", name)
				continue
			}
			logger.Errorw("seed_local_failed", "name", name, "error", err)
			os.Exit(1)
		}
		logger.Infow("seed_local_created", "name", name)
	}
}
