package service

import (
	"context"

	"github.com/cataloghub/cataloghub/internal/domain/product"
)

type ProductStore interface {
	Create(ctx context.Context, req product.CreateProductRequest) (product.Product, error)
	List(ctx context.Context) ([]product.Product, error)
	GetByID(ctx context.Context, id string) (product.Product, error)
	Update(ctx context.Context, id string, req product.UpdateProductRequest) (product.Product, error)
	Delete(ctx context.Context, id string) error
}

// ProductService is a thin delegation layer over the store. It adds no
// validation of its own; callers do their own existence pre-checks before
// update/delete, matching the original contract.
type ProductService struct {
	store ProductStore
}

func NewProductService(store ProductStore) *ProductService {
	return &ProductService{store: store}
}

func (s *ProductService) CreateProduct(ctx context.Context, req product.CreateProductRequest) (product.Product, error) {
	return s.store.Create(ctx, req)
}

func (s *ProductService) GetAllProducts(ctx context.Context) ([]product.Product, error) {
	return s.store.List(ctx)
}

func (s *ProductService) GetProductByID(ctx context.Context, id string) (product.Product, error) {
	return s.store.GetByID(ctx, id)
}

func (s *ProductService) UpdateProduct(ctx context.Context, id string, req product.UpdateProductRequest) (product.Product, error) {
	return s.store.Update(ctx, id, req)
}

func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}
