package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/Isabellaariza/Nudo-Studio-sub001/internal/domain"
	"github.com/Isabellaariza/Nudo-Studio-sub001/internal/port"
)

// CatalogService manages products, raw materials and bookable
// services. Mutations flush the public cache so the storefront picks
// changes up immediately.
type CatalogService struct {
	products  port.ProductStore
	materials port.MaterialStore
	services  port.ServiceStore
	flush     func()
	logger    *zap.Logger
}

func NewCatalogService(products port.ProductStore, materials port.MaterialStore, services port.ServiceStore, flush func(), logger *zap.Logger) *CatalogService {
	if flush == nil {
		flush = func() {}
	}
	return &CatalogService{
		products:  products,
		materials: materials,
		services:  services,
		flush:     flush,
		logger:    logger,
	}
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.products.List(ctx)
}

func (s *CatalogService) GetProduct(ctx context.Context, id int) (domain.Product, error) {
	return s.products.Get(ctx, id)
}

func (s *CatalogService) CreateProduct(ctx context.Context, p domain.Product) (domain.Product, error) {
	if err := validateProduct(p); err != nil {
		return domain.Product{}, err
	}
	created, err := s.products.Create(ctx, p)
	if err != nil {
		return domain.Product{}, err
	}
	s.flush()
	s.logger.Info("product created", zap.Int("product_id", created.ID))
	return created, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, p domain.Product) (domain.Product, error) {
	if err := validateProduct(p); err != nil {
		return domain.Product{}, err
	}
	updated, err := s.products.Update(ctx, p)
	if err != nil {
		return domain.Product{}, err
	}
	s.flush()
	return updated, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id int) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	s.flush()
	return nil
}

func validateProduct(p domain.Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return &domain.ErrValidation{Field: "name", Message: "required"}
	}
	if p.Price < 0 {
		return &domain.ErrValidation{Field: "price", Message: "must not be negative"}
	}
	if p.Stock < 0 {
		return &domain.ErrValidation{Field: "stock", Message: "must not be negative"}
	}
	return nil
}

func (s *CatalogService) ListMaterials(ctx context.Context) ([]domain.RawMaterial, error) {
	return s.materials.List(ctx)
}

func (s *CatalogService) GetMaterial(ctx context.Context, id int) (domain.RawMaterial, error) {
	return s.materials.Get(ctx, id)
}

func (s *CatalogService) CreateMaterial(ctx context.Context, m domain.RawMaterial) (domain.RawMaterial, error) {
	if err := validateMaterial(m); err != nil {
		return domain.RawMaterial{}, err
	}
	created, err := s.materials.Create(ctx, m)
	if err != nil {
		return domain.RawMaterial{}, err
	}
	if created.LowStock() {
		s.logger.Warn("material created below minimum stock",
			zap.Int("material_id", created.ID),
			zap.Int("stock", created.Stock),
			zap.Int("min_stock", created.MinStock),
		)
	}
	return created, nil
}

func (s *CatalogService) UpdateMaterial(ctx context.Context, m domain.RawMaterial) (domain.RawMaterial, error) {
	if err := validateMaterial(m); err != nil {
		return domain.RawMaterial{}, err
	}
	updated, err := s.materials.Update(ctx, m)
	if err != nil {
		return domain.RawMaterial{}, err
	}
	if updated.LowStock() {
		s.logger.Warn("material at or below minimum stock",
			zap.Int("material_id", updated.ID),
			zap.Int("stock", updated.Stock),
			zap.Int("min_stock", updated.MinStock),
		)
	}
	return updated, nil
}

func (s *CatalogService) DeleteMaterial(ctx context.Context, id int) error {
	return s.materials.Delete(ctx, id)
}

func validateMaterial(m domain.RawMaterial) error {
	if strings.TrimSpace(m.Name) == "" {
		return &domain.ErrValidation{Field: "name", Message: "required"}
	}
	if m.Stock < 0 || m.MinStock < 0 {
		return &domain.ErrValidation{Field: "stock", Message: "must not be negative"}
	}
	return nil
}

func (s *CatalogService) ListServices(ctx context.Context) ([]domain.Service, error) {
	return s.services.List(ctx)
}

func (s *CatalogService) GetService(ctx context.Context, id int) (domain.Service, error) {
	return s.services.Get(ctx, id)
}

func (s *CatalogService) CreateService(ctx context.Context, svc domain.Service) (domain.Service, error) {
	if err := validateService(svc); err != nil {
		return domain.Service{}, err
	}
	return s.services.Create(ctx, svc)
}

func (s *CatalogService) UpdateService(ctx context.Context, svc domain.Service) (domain.Service, error) {
	if err := validateService(svc); err != nil {
		return domain.Service{}, err
	}
	return s.services.Update(ctx, svc)
}

func (s *CatalogService) DeleteService(ctx context.Context, id int) error {
	return s.services.Delete(ctx, id)
}

func validateService(svc domain.Service) error {
	if strings.TrimSpace(svc.Name) == "" {
		return &domain.ErrValidation{Field: "name", Message: "required"}
	}
	if svc.Price < 0 {
		return &domain.ErrValidation{Field: "price", Message: "must not be negative"}
	}
	return nil
}
