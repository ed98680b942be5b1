package provider

import (
	"github.com/stocknest/internal/config"
	"github.com/stocknest/internal/logger"
	"github.com/stocknest/internal/models"
	"github.com/stocknest/internal/repository"
	"github.com/stocknest/internal/service"

	"github.com/shopspring/decimal"
)

// Container wires repositories and services over the shared DB handle
type Container struct {
	Departments    repository.DepartmentRepository
	SubDepartments repository.SubDepartmentRepository
	Products       repository.ProductRepository
	Locals         repository.LocalRepository
	Allocations    repository.AllocationRepository
	Sales          repository.SaleRepository
	Images         repository.ProductImageRepository
	Settings       repository.SettingRepository

	Catalog   *service.CatalogService
	Product   *service.ProductService
	Local     *service.LocalService
	Inventory *service.InventoryService
	Setting   *service.SettingService
	Media     *service.MediaService
}

// NewContainer builds the dependency graph. models.InitDB must have run.
func NewContainer(cfg *config.Config) *Container {
	db := models.DB

	departments := repository.NewDepartmentRepository(db)
	subDepartments := repository.NewSubDepartmentRepository(db)
	products := repository.NewProductRepository(db)
	locals := repository.NewLocalRepository(db)
	allocations := repository.NewAllocationRepository(db)
	sales := repository.NewSaleRepository(db)
	images := repository.NewProductImageRepository(db)
	settings := repository.NewSettingRepository(db)

	media := service.NewMediaService(images, cfg.Media.Root, cfg.Media.AllowedExtensions)

	defaultRate, err := decimal.NewFromString(cfg.Inventory.DefaultConversionRate)
	if err != nil {
		logger.Warnw("default_conversion_rate_unparseable",
			"value", cfg.Inventory.DefaultConversionRate,
		)
		defaultRate = decimal.NewFromFloat(36.62)
	}

	return &Container{
		Departments:    departments,
		SubDepartments: subDepartments,
		Products:       products,
		Locals:         locals,
		Allocations:    allocations,
		Sales:          sales,
		Images:         images,
		Settings:       settings,

		Catalog:   service.NewCatalogService(departments, subDepartments, products, allocations, images, media),
		Product:   service.NewProductService(products, subDepartments, allocations, images, media),
		Local:     service.NewLocalService(locals, allocations),
		Inventory: service.NewInventoryService(products, allocations, locals, sales),
		Setting:   service.NewSettingService(settings, defaultRate),
		Media:     media,
	}
}
