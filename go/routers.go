package storeserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route binds an HTTP method and path pattern to a handler.
type Route struct {
	Name        string
	Method      string
	Pattern     string
	HandlerFunc gin.HandlerFunc
}

// ApiHandleFunctions aggregates the per-context API handlers.
type ApiHandleFunctions struct {
	ProductAPI  ProductAPI
	CartAPI     CartAPI
	CheckoutAPI CheckoutAPI
	UserAPI     UserAPI
}

// NewRouter returns a gin engine with all storefront routes registered.
func NewRouter(handleFunctions ApiHandleFunctions) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handleFunctions)
}

// NewRouterWithGinEngine registers the storefront routes on an existing engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		switch route.Method {
		case http.MethodGet:
			router.GET(route.Pattern, route.HandlerFunc)
		case http.MethodPost:
			router.POST(route.Pattern, route.HandlerFunc)
		case http.MethodPut:
			router.PUT(route.Pattern, route.HandlerFunc)
		case http.MethodPatch:
			router.PATCH(route.Pattern, route.HandlerFunc)
		case http.MethodDelete:
			router.DELETE(route.Pattern, route.HandlerFunc)
		}
	}
	return router
}

// DefaultHandleFunc answers for routes without an implementation.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{"ListProducts", http.MethodGet, "/v1/products", handleFunctions.ProductAPI.ListProducts},
		{"GetProductById", http.MethodGet, "/v1/products/:productId", handleFunctions.ProductAPI.GetProductById},
		{"ListCategories", http.MethodGet, "/v1/categories", handleFunctions.ProductAPI.ListCategories},
		{"CreateProduct", http.MethodPost, "/v1/admin/products", handleFunctions.ProductAPI.CreateProduct},
		{"UpdateProduct", http.MethodPut, "/v1/admin/products/:productId", handleFunctions.ProductAPI.UpdateProduct},
		{"DeleteProduct", http.MethodDelete, "/v1/admin/products/:productId", handleFunctions.ProductAPI.DeleteProduct},

		{"GetCart", http.MethodGet, "/v1/cart", handleFunctions.CartAPI.GetCart},
		{"ClearCart", http.MethodDelete, "/v1/cart", handleFunctions.CartAPI.ClearCart},
		{"AddCartLine", http.MethodPost, "/v1/cart/items", handleFunctions.CartAPI.AddLine},
		{"SetCartLineQuantity", http.MethodPatch, "/v1/cart/items/:lineId", handleFunctions.CartAPI.SetQuantity},
		{"RemoveCartLine", http.MethodDelete, "/v1/cart/items/:lineId", handleFunctions.CartAPI.RemoveLine},
		{"ValidateCart", http.MethodGet, "/v1/cart/validate", handleFunctions.CartAPI.ValidateCart},

		{"Checkout", http.MethodPost, "/v1/checkout", handleFunctions.CheckoutAPI.Checkout},
		{"ListMyOrders", http.MethodGet, "/v1/orders", handleFunctions.CheckoutAPI.ListMyOrders},
		{"GetOrder", http.MethodGet, "/v1/orders/:orderId", handleFunctions.CheckoutAPI.GetOrder},
		{"ListAllOrders", http.MethodGet, "/v1/admin/orders", handleFunctions.CheckoutAPI.ListAllOrders},
		{"UpdateOrderStatus", http.MethodPut, "/v1/admin/orders/:orderId/status", handleFunctions.CheckoutAPI.UpdateOrderStatus},

		{"RegisterUser", http.MethodPost, "/v1/users", handleFunctions.UserAPI.Register},
		{"LoginUser", http.MethodPost, "/v1/users/login", handleFunctions.UserAPI.Login},
		{"LogoutUser", http.MethodPost, "/v1/users/logout", handleFunctions.UserAPI.Logout},
		{"GetUserByName", http.MethodGet, "/v1/users/:username", handleFunctions.UserAPI.GetUserByName},
		{"UpdateUser", http.MethodPut, "/v1/users/:username", handleFunctions.UserAPI.UpdateUser},
		{"DeleteUser", http.MethodDelete, "/v1/users/:username", handleFunctions.UserAPI.DeleteUser},
		{"ListUsers", http.MethodGet, "/v1/admin/users", handleFunctions.UserAPI.ListUsers},
	}
}
