package storeserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	carthttpmapper "github.com/sportsstore/go-gin-store-server/internal/domains/cart/adapters/http/mapper"
	cartports "github.com/sportsstore/go-gin-store-server/internal/domains/cart/ports"
	userports "github.com/sportsstore/go-gin-store-server/internal/domains/users/ports"
)

// CartAPI wires HTTP transport with the cart bounded context service. The
// cart owner comes from the request identity headers, so anonymous shoppers
// and logged-in users share the same endpoints.
type CartAPI struct {
	service cartports.Service
	users   userports.Service
}

// NewCartAPI creates a CartAPI backed by the provided services.
func NewCartAPI(service cartports.Service, users userports.Service) CartAPI {
	return CartAPI{service: service, users: users}
}

type addLineRequest struct {
	ProductID int64 `json:"productId" binding:"required"`
	Quantity  int   `json:"quantity" binding:"required"`
}

type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// Get /v1/cart
// Returns the cart priced with current catalog prices.
func (api *CartAPI) GetCart(c *gin.Context) {
	owner, ok := requestIdentity(c.Request.Context(), c, api.users)
	if !ok {
		return
	}
	view, err := api.service.ViewCart(c.Request.Context(), owner)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, carthttpmapper.FromView(view))
}

// Post /v1/cart/items
// Adds a product to the cart, merging quantities into an existing line.
func (api *CartAPI) AddLine(c *gin.Context) {
	owner, ok := requestIdentity(c.Request.Context(), c, api.users)
	if !ok {
		return
	}
	var payload addLineRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	line, err := api.service.AddLine(c.Request.Context(), owner, payload.ProductID, payload.Quantity)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, carthttpmapper.FromDomainLine(line))
}

// Patch /v1/cart/items/:lineId
// Sets a line quantity; zero or less removes the line. Lines of other
// identities respond as not found.
func (api *CartAPI) SetQuantity(c *gin.Context) {
	owner, ok := requestIdentity(c.Request.Context(), c, api.users)
	if !ok {
		return
	}
	lineID, ok := parseIDParam(c, "lineId")
	if !ok {
		return
	}
	var payload setQuantityRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	line, err := api.service.SetQuantity(c.Request.Context(), owner, lineID, payload.Quantity)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if line == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, carthttpmapper.FromDomainLine(line))
}

// Delete /v1/cart/items/:lineId
// Removes one of the caller's lines; removing an absent line succeeds.
func (api *CartAPI) RemoveLine(c *gin.Context) {
	owner, ok := requestIdentity(c.Request.Context(), c, api.users)
	if !ok {
		return
	}
	lineID, ok := parseIDParam(c, "lineId")
	if !ok {
		return
	}
	if err := api.service.RemoveLine(c.Request.Context(), owner, lineID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Delete /v1/cart
// Empties the cart.
func (api *CartAPI) ClearCart(c *gin.Context) {
	owner, ok := requestIdentity(c.Request.Context(), c, api.users)
	if !ok {
		return
	}
	if err := api.service.Clear(c.Request.Context(), owner); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Get /v1/cart/validate
// Reports lines whose quantity exceeds currently available stock.
func (api *CartAPI) ValidateCart(c *gin.Context) {
	owner, ok := requestIdentity(c.Request.Context(), c, api.users)
	if !ok {
		return
	}
	shortages, err := api.service.Validate(c.Request.Context(), owner)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"shortages": carthttpmapper.FromShortageList(shortages)})
}
