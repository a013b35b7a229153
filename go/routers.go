package shopserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route binds one HTTP method and pattern to a handler.
type Route struct {
	Name        string
	Method      string
	Pattern     string
	HandlerFunc gin.HandlerFunc
}

// ApiHandleFunctions groups the handlers for every bounded context.
type ApiHandleFunctions struct {
	OrderAPI   OrderAPI
	PaymentAPI PaymentAPI
	ProductAPI ProductAPI
}

// NewRouter returns a new router with default middleware.
func NewRouter(handleFunctions ApiHandleFunctions) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handleFunctions)
}

// NewRouterWithGinEngine mounts all API routes on an existing engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	router.Use(identityMiddleware())
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = defaultFunc
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

func defaultFunc(c *gin.Context) {}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{
			"CreateOrder",
			http.MethodPost,
			"/api/v1/orders",
			handleFunctions.OrderAPI.CreateOrder,
		},
		{
			"ListOrders",
			http.MethodGet,
			"/api/v1/orders",
			handleFunctions.OrderAPI.ListOrders,
		},
		{
			"GetOrder",
			http.MethodGet,
			"/api/v1/orders/:orderId",
			handleFunctions.OrderAPI.GetOrder,
		},
		{
			"CancelOrder",
			http.MethodPost,
			"/api/v1/orders/:orderId/cancel",
			handleFunctions.OrderAPI.CancelOrder,
		},
		{
			"CreatePayment",
			http.MethodPost,
			"/api/v1/payments",
			handleFunctions.PaymentAPI.CreatePayment,
		},
		{
			"GetPayment",
			http.MethodGet,
			"/api/v1/payments/:paymentId",
			handleFunctions.PaymentAPI.GetPayment,
		},
		{
			"CreateProduct",
			http.MethodPost,
			"/api/v1/products",
			handleFunctions.ProductAPI.CreateProduct,
		},
		{
			"ListProducts",
			http.MethodGet,
			"/api/v1/products",
			handleFunctions.ProductAPI.ListProducts,
		},
		{
			"GetProduct",
			http.MethodGet,
			"/api/v1/products/:productId",
			handleFunctions.ProductAPI.GetProduct,
		},
		{
			"UpdateProduct",
			http.MethodPut,
			"/api/v1/products/:productId",
			handleFunctions.ProductAPI.UpdateProduct,
		},
	}
}
