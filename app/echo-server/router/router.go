package router

import (
	"shopsight/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupUserRoutes(api *echo.Group, handler *rest.UserHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc, selfOrAdmin echo.MiddlewareFunc) {
	users := api.Group("/users")

	users.GET("/email-verification/:code", handler.VerifyEmail)
	users.POST("/register", handler.Register)
	users.POST("/login", handler.Login)

	users.POST("/logout", handler.Logout, authRequired)
	users.PUT("/:id", handler.UpdateUser, authRequired, selfOrAdmin)
	users.GET("", handler.GetAllUsers, authRequired, adminOnly)
	users.GET("/:id", handler.GetUserByID, authRequired, selfOrAdmin)
	users.DELETE("/:id", handler.DeleteUser, authRequired, adminOnly)
}

func SetupProductRoutes(api *echo.Group, handler *rest.ProductHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	products := api.Group("/products")

	products.GET("", handler.GetAllProducts, authRequired)
	products.GET("/:id", handler.GetProductByID, authRequired)
	products.POST("", handler.CreateProduct, authRequired, adminOnly)
	products.PUT("/:id", handler.UpdateProduct, authRequired, adminOnly)
	products.DELETE("/:id", handler.DeleteProduct, authRequired, adminOnly)
}

func SetupCategoryRoutes(api *echo.Group, handler *rest.CategoryHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	categories := api.Group("/categories")

	categories.GET("", handler.GetAllCategories, authRequired)
	categories.GET("/:id", handler.GetCategoryByID, authRequired)
	categories.POST("", handler.CreateCategory, authRequired, adminOnly)
	categories.PUT("/:id", handler.UpdateCategory, authRequired, adminOnly)
	categories.DELETE("/:id", handler.DeleteCategory, authRequired, adminOnly)
}

func SetOrdersRoutes(api *echo.Group, handler *rest.OrdersHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	orders := api.Group("/orders", authRequired)

	orders.POST("", handler.CreateOrder)
	orders.GET("", handler.GetOrders)
	orders.GET("/:id", handler.GetOrderByID)
	orders.PUT("/:id/status", handler.UpdateOrderStatus, adminOnly)
	orders.DELETE("/:id", handler.DeleteOrder, adminOnly)
}

func SetActivityRoutes(api *echo.Group, handler *rest.ActivityHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	activities := api.Group("/activities", authRequired)

	activities.POST("", handler.Record)
	activities.GET("", handler.List)
	activities.GET("/products/:productId/count", handler.CountByProduct, adminOnly)
	activities.POST("/purge", handler.Purge, adminOnly)
}

func SetRecommendationRoutes(api *echo.Group, handler *rest.RecommendationHandler, authRequired echo.MiddlewareFunc) {
	reco := api.Group("/recommendations", authRequired)

	reco.GET("", handler.Get)
	reco.POST("/generate", handler.Generate)
	reco.GET("/similar/:productId", handler.Similar)
	reco.GET("/popular", handler.Popular)
}

func SetReportRoutes(api *echo.Group, handler *rest.ReportHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	reports := api.Group("/reports", authRequired, adminOnly)

	reports.GET("/sales", handler.Sales)
	reports.GET("/inventory/status", handler.InventoryStatus)
	reports.GET("/inventory/alerts", handler.InventoryAlerts)
}
