package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/cataloghub/cataloghub/internal/config"
	"github.com/cataloghub/cataloghub/internal/domain/product"
	"github.com/gin-gonic/gin"
)

type ProductCatalog interface {
	CreateProduct(ctx context.Context, req product.CreateProductRequest) (product.Product, error)
	GetAllProducts(ctx context.Context) ([]product.Product, error)
	GetProductByID(ctx context.Context, id string) (product.Product, error)
	UpdateProduct(ctx context.Context, id string, req product.UpdateProductRequest) (product.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

type ProductsHandler struct {
	svc ProductCatalog
}

func NewProductsHandler(svc ProductCatalog) *ProductsHandler {
	return &ProductsHandler{svc: svc}
}

func (h *ProductsHandler) ListProducts(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	products, err := h.svc.GetAllProducts(cctx)

	if err != nil {
		RespondInternal(ctx, "Could not list products")
		return
	}

	// the contract is a bare array, not an envelope
	ctx.JSON(http.StatusOK, products)
}

func (h *ProductsHandler) GetProductByID(ctx *gin.Context) {
	id := ctx.Param("id")

	cctx, cancel := config.WithTimeout(2 * time.Second)

	defer cancel()

	p, err := h.svc.GetProductByID(cctx, id)

	if err != nil {
		h.respondLookupError(ctx, id, err)
		return
	}

	ctx.JSON(http.StatusOK, p)
}

func (h *ProductsHandler) CreateProduct(ctx *gin.Context) {
	var req product.CreateProductRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	p, err := h.svc.CreateProduct(cctx, req)

	if err != nil {
		RespondInternal(ctx, "Could not create product")
		return
	}

	ctx.JSON(http.StatusCreated, p)
}

func (h *ProductsHandler) UpdateProduct(ctx *gin.Context) {
	id := ctx.Param("id")

	var req product.UpdateProductRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	// existence pre-check; the service layer does none of its own
	_, err := h.svc.GetProductByID(cctx, id)

	if err != nil {
		h.respondLookupError(ctx, id, err)
		return
	}

	p, err := h.svc.UpdateProduct(cctx, id, req)

	if err != nil {
		h.respondLookupError(ctx, id, err)
		return
	}

	ctx.JSON(http.StatusOK, p)
}

func (h *ProductsHandler) DeleteProduct(ctx *gin.Context) {
	id := ctx.Param("id")

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	_, err := h.svc.GetProductByID(cctx, id)

	if err != nil {
		h.respondLookupError(ctx, id, err)
		return
	}

	err = h.svc.DeleteProduct(cctx, id)

	if err != nil {
		h.respondLookupError(ctx, id, err)
		return
	}

	RespondMessage(ctx, http.StatusOK, "Product deleted successfully")
}

func (h *ProductsHandler) respondLookupError(ctx *gin.Context, id string, err error) {
	switch {
	case errors.Is(err, product.ErrInvalidID):
		RespondBadRequest(ctx, "Invalid product id: "+id)
	case errors.Is(err, product.ErrNotFound):
		RespondNotFound(ctx, "Product not found with id: "+id)
	default:
		RespondInternal(ctx, "Could not fetch product")
	}
}
