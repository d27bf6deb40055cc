package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/Takudzwa22/shopease/internal/cache"
	"github.com/Takudzwa22/shopease/internal/domain"
	"github.com/Takudzwa22/shopease/internal/repository"
	"golang.org/x/sync/singleflight"
)

const defaultCategory = "Uncategorized"

type CatalogService struct {
	repo  repository.ProductRepository
	cache cache.ProductCache
	sfg   singleflight.Group // Prevents cache stampede
}

func NewCatalogService(repo repository.ProductRepository, cache cache.ProductCache) *CatalogService {
	return &CatalogService{
		repo:  repo,
		cache: cache,
	}
}

func (s *CatalogService) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if product.Name == "" || product.Description == "" {
		return nil, fmt.Errorf("%w: name and description are required", ErrValidation)
	}
	if product.Price < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", ErrValidation)
	}
	if product.Stock < 0 {
		return nil, fmt.Errorf("%w: stock must not be negative", ErrValidation)
	}
	if product.Category == "" {
		product.Category = defaultCategory
	}

	if _, err := s.repo.Insert(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *CatalogService) Get(ctx context.Context, id string) (*domain.Product, error) {
	if !repository.IsValidID(id) {
		return nil, repository.ErrInvalidID
	}

	// Use singleflight to prevent multiple concurrent cache misses for same key
	v, err, _ := s.sfg.Do(id, func() (interface{}, error) {
		product, err := s.cache.Get(ctx, id)
		if err == nil {
			return product, nil // product is in cache
		}

		if !errors.Is(err, cache.ErrCacheMiss) {
			log.Printf("cache get error: %v", err) // log cache error but continue
		}

		product, errGet := s.repo.Find(ctx, id)
		if errGet != nil {
			return nil, errGet
		}

		// set cache
		go func() {
			if errSet := s.cache.Set(context.Background(), id, product); errSet != nil {
				log.Printf("cache set error: %v", errSet)
			}
		}()

		return product, nil
	})

	if err != nil {
		return nil, err
	}

	return v.(*domain.Product), nil
}

func (s *CatalogService) List(ctx context.Context) ([]*domain.Product, error) {
	return s.repo.FindAll(ctx)
}

func (s *CatalogService) Update(ctx context.Context, id string, patch domain.ProductPatch) (*domain.Product, error) {
	if !repository.IsValidID(id) {
		return nil, repository.ErrInvalidID
	}
	if patch.Price != nil && *patch.Price < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", ErrValidation)
	}
	if patch.Stock != nil && *patch.Stock < 0 {
		return nil, fmt.Errorf("%w: stock must not be negative", ErrValidation)
	}

	product, err := s.repo.UpdateFields(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	s.invalidateCache(id)
	return product, nil
}

func (s *CatalogService) Delete(ctx context.Context, id string) error {
	if !repository.IsValidID(id) {
		return repository.ErrInvalidID
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateCache(id)
	return nil
}

func (s *CatalogService) invalidateCache(id string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Delete(ctx, id); err != nil {
		log.Printf("cache invalidate error: %v", err)
	}
}
