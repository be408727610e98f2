package storeserver

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	cataloghttpmapper "github.com/sportsstore/go-gin-store-server/internal/domains/catalog/adapters/http/mapper"
	catalogdomain "github.com/sportsstore/go-gin-store-server/internal/domains/catalog/domain"
	catalogports "github.com/sportsstore/go-gin-store-server/internal/domains/catalog/ports"
	userports "github.com/sportsstore/go-gin-store-server/internal/domains/users/ports"
)

var errBadCategory = errors.New("category must be a numeric id")

// ProductAPI wires HTTP transport with the catalog bounded context service.
type ProductAPI struct {
	service catalogports.Service
	users   userports.Service
}

// NewProductAPI creates a ProductAPI backed by the provided services.
func NewProductAPI(service catalogports.Service, users userports.Service) ProductAPI {
	return ProductAPI{service: service, users: users}
}

// Get /v1/products
// Lists products, optionally filtered by category, search term, or stock.
func (api *ProductAPI) ListProducts(c *gin.Context) {
	result, err := api.listFiltered(c)
	if err != nil {
		if errors.Is(err, errBadCategory) {
			respondError(c, http.StatusBadRequest, err)
			return
		}
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cataloghttpmapper.FromDomainProductList(result))
}

func (api *ProductAPI) listFiltered(c *gin.Context) ([]*catalogdomain.Product, error) {
	ctx := c.Request.Context()
	if term := strings.TrimSpace(c.Query("search")); term != "" {
		return api.service.SearchProducts(ctx, term)
	}
	if category := strings.TrimSpace(c.Query("category")); category != "" {
		categoryID, err := strconv.ParseInt(category, 10, 64)
		if err != nil {
			return nil, errBadCategory
		}
		return api.service.ListByCategory(ctx, categoryID)
	}
	if c.Query("inStock") == "true" {
		return api.service.ListInStock(ctx)
	}
	return api.service.ListProducts(ctx)
}

// Get /v1/products/:productId
// Find product by ID
func (api *ProductAPI) GetProductById(c *gin.Context) {
	id, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}
	product, err := api.service.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cataloghttpmapper.FromDomainProduct(product))
}

// Get /v1/categories
// Lists product categories
func (api *ProductAPI) ListCategories(c *gin.Context) {
	categories, err := api.service.ListCategories(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cataloghttpmapper.FromDomainCategoryList(categories))
}

// Post /v1/admin/products
// Creates a product (admin only)
func (api *ProductAPI) CreateProduct(c *gin.Context) {
	if _, ok := adminUser(c.Request.Context(), c, api.users); !ok {
		return
	}
	api.saveProduct(c, 0)
}

// Put /v1/admin/products/:productId
// Updates a product (admin only)
func (api *ProductAPI) UpdateProduct(c *gin.Context) {
	if _, ok := adminUser(c.Request.Context(), c, api.users); !ok {
		return
	}
	id, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}
	api.saveProduct(c, id)
}

func (api *ProductAPI) saveProduct(c *gin.Context, id int64) {
	var payload cataloghttpmapper.Product
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	payload.ID = id
	product, err := cataloghttpmapper.ToDomainProduct(payload)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	saved, err := api.service.SaveProduct(c.Request.Context(), product)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cataloghttpmapper.FromDomainProduct(saved))
}

// Delete /v1/admin/products/:productId
// Deletes a product (admin only)
func (api *ProductAPI) DeleteProduct(c *gin.Context) {
	if _, ok := adminUser(c.Request.Context(), c, api.users); !ok {
		return
	}
	id, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}
	if err := api.service.DeleteProduct(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
