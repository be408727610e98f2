package storeserver

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	ordersdomain "github.com/sportsstore/go-gin-store-server/internal/domains/orders/domain"
	ordershttpmapper "github.com/sportsstore/go-gin-store-server/internal/domains/orders/adapters/http/mapper"
	ordersports "github.com/sportsstore/go-gin-store-server/internal/domains/orders/ports"
	userports "github.com/sportsstore/go-gin-store-server/internal/domains/users/ports"
)

// CheckoutAPI wires HTTP transport with the orders bounded context service
// and the durable checkout workflow.
type CheckoutAPI struct {
	service   ordersports.Service
	workflows ordersports.WorkflowOrchestrator
	users     userports.Service
}

// NewCheckoutAPI creates a CheckoutAPI backed by the provided services.
func NewCheckoutAPI(service ordersports.Service, workflows ordersports.WorkflowOrchestrator, users userports.Service) CheckoutAPI {
	return CheckoutAPI{service: service, workflows: workflows, users: users}
}

type checkoutRequest struct {
	Shipping ordershttpmapper.Shipping `json:"shipping" binding:"required"`
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// Post /v1/checkout
// Places an order from the caller's cart.
func (api *CheckoutAPI) Checkout(c *gin.Context) {
	owner, ok := requestIdentity(c.Request.Context(), c, api.users)
	if !ok {
		return
	}
	var payload checkoutRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	input := ordersports.CheckoutInput{
		Customer: owner.Key(),
		Shipping: ordershttpmapper.ToDomainShipping(payload.Shipping),
	}
	order, err := api.placeOrder(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ordershttpmapper.FromDomainOrder(order))
}

func (api *CheckoutAPI) placeOrder(ctx context.Context, input ordersports.CheckoutInput) (*ordersdomain.Order, error) {
	if api.workflows != nil {
		return api.workflows.PlaceOrder(ctx, input)
	}
	return api.service.PlaceOrder(ctx, input)
}

// Get /v1/orders
// Lists the caller's order history.
func (api *CheckoutAPI) ListMyOrders(c *gin.Context) {
	owner, ok := requestIdentity(c.Request.Context(), c, api.users)
	if !ok {
		return
	}
	orders, err := api.service.ListByCustomer(c.Request.Context(), owner.Key())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordershttpmapper.FromDomainOrderList(orders))
}

// Get /v1/orders/:orderId
// Fetches one order; callers only see their own unless they are admins.
func (api *CheckoutAPI) GetOrder(c *gin.Context) {
	owner, ok := requestIdentity(c.Request.Context(), c, api.users)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "orderId")
	if !ok {
		return
	}
	order, err := api.service.GetOrder(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if order.Customer != owner.Key() && !api.callerIsAdmin(c) {
		// Hide the order's existence from other customers.
		respondServiceError(c, ordersports.ErrNotFound)
		return
	}
	c.JSON(http.StatusOK, ordershttpmapper.FromDomainOrder(order))
}

// Get /v1/admin/orders
// Lists all orders, optionally by status (admin only).
func (api *CheckoutAPI) ListAllOrders(c *gin.Context) {
	if _, ok := adminUser(c.Request.Context(), c, api.users); !ok {
		return
	}
	var (
		orders []*ordersdomain.Order
		err    error
	)
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		orders, err = api.service.ListByStatus(c.Request.Context(), ordersdomain.Status(status))
	} else {
		orders, err = api.service.ListOrders(c.Request.Context())
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordershttpmapper.FromDomainOrderList(orders))
}

// Put /v1/admin/orders/:orderId/status
// Moves an order through its lifecycle (admin only).
func (api *CheckoutAPI) UpdateOrderStatus(c *gin.Context) {
	if _, ok := adminUser(c.Request.Context(), c, api.users); !ok {
		return
	}
	id, ok := parseIDParam(c, "orderId")
	if !ok {
		return
	}
	var payload updateStatusRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	order, err := api.service.UpdateStatus(c.Request.Context(), id, ordersdomain.Status(payload.Status))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordershttpmapper.FromDomainOrder(order))
}

func (api *CheckoutAPI) callerIsAdmin(c *gin.Context) bool {
	token := strings.TrimSpace(c.GetHeader(HeaderAuthToken))
	if token == "" || api.users == nil {
		return false
	}
	user, err := api.users.Resolve(c.Request.Context(), token)
	return err == nil && user.Admin
}
