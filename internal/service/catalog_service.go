package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"linkpulse-core/internal/model"
	"linkpulse-core/pkg/cache"
	"linkpulse-core/pkg/errno"
)

const catalogCacheTTL = 5 * time.Minute

// CatalogService is the read-only view over the points package catalog.
// Packages change rarely, so lookups go through the cache.
type CatalogService struct {
	db    *gorm.DB
	cache cache.Cache
}

func NewCatalogService(db *gorm.DB, c cache.Cache) *CatalogService {
	return &CatalogService{db: db, cache: c}
}

// GetPackage resolves an active package by id, read-through cached.
func (s *CatalogService) GetPackage(ctx context.Context, id uint64) (*model.Package, error) {
	key := fmt.Sprintf("catalog:pkg:%d", id)

	var pkg model.Package
	if s.cache != nil {
		if err := s.cache.Get(ctx, key, &pkg); err == nil {
			return &pkg, nil
		}
	}

	err := s.db.WithContext(ctx).Where("id = ? AND is_active = ?", id, true).First(&pkg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errno.ErrPackageNotFound
	}
	if err != nil {
		return nil, errno.ErrDatabase.WithMessage(err.Error())
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, key, &pkg, catalogCacheTTL)
	}
	return &pkg, nil
}

// ListPackages returns the active catalog, cheapest first.
func (s *CatalogService) ListPackages(ctx context.Context) ([]model.Package, error) {
	var pkgs []model.Package
	err := s.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("price_usd ASC").
		Find(&pkgs).Error
	if err != nil {
		return nil, errno.ErrDatabase.WithMessage(err.Error())
	}
	return pkgs, nil
}
