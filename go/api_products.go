package shopserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	producthttpmapper "github.com/Apurer/go-gin-shop-server/internal/domains/catalog/adapters/http/mapper"
	catalogports "github.com/Apurer/go-gin-shop-server/internal/domains/catalog/ports"
	apierrors "github.com/Apurer/go-gin-shop-server/internal/shared/errors"
)

// ProductAPI wires HTTP transport with the catalog bounded context service.
type ProductAPI struct {
	service catalogports.Service
}

// NewProductAPI creates a ProductAPI backed by the provided service.
func NewProductAPI(service catalogports.Service) ProductAPI {
	return ProductAPI{service: service}
}

// Post /api/v1/products
// Register a new catalog entry (admin or manager only)
func (api *ProductAPI) CreateProduct(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	var payload producthttpmapper.ProductMutation
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondProblem(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	product, err := api.service.CreateProduct(c.Request.Context(), principal, producthttpmapper.ToInput(payload))
	if err != nil {
		respondProductServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, producthttpmapper.FromProduct(product))
}

// Put /api/v1/products/:productId
// Update a catalog entry (admin or manager only)
func (api *ProductAPI) UpdateProduct(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	productID, ok := parseUUIDParam(c, "productId")
	if !ok {
		return
	}
	var payload producthttpmapper.ProductMutation
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondProblem(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	product, err := api.service.UpdateProduct(c.Request.Context(), principal, productID, producthttpmapper.ToInput(payload))
	if err != nil {
		respondProductServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, producthttpmapper.FromProduct(product))
}

// Get /api/v1/products/:productId
// Load one catalog entry
func (api *ProductAPI) GetProduct(c *gin.Context) {
	productID, ok := parseUUIDParam(c, "productId")
	if !ok {
		return
	}
	product, err := api.service.GetProduct(c.Request.Context(), productID)
	if err != nil {
		respondProductServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, producthttpmapper.FromProduct(product))
}

// Get /api/v1/products
// Browse the catalog
func (api *ProductAPI) ListProducts(c *gin.Context) {
	products, err := api.service.ListProducts(c.Request.Context())
	if err != nil {
		respondProductServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, producthttpmapper.FromProductList(products))
}
