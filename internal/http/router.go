// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"campuseats/internal/http/handlers"
	"campuseats/internal/http/middleware"
	"campuseats/internal/infra"
	"campuseats/internal/modules/dasher"
	"campuseats/internal/modules/order"
	"campuseats/internal/modules/payment"
	"campuseats/internal/modules/rating"
	"campuseats/internal/modules/shop"
	"campuseats/internal/modules/wallet"
)

type RouterDeps struct {
	Order    *order.Service
	Payment  *payment.Service
	Rating   *rating.Service
	Wallet   *wallet.Service
	Shop     *shop.Service
	Dasher   *dasher.Service
	Verifier infra.TokenVerifier
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logging(), middleware.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	orderHandler := handlers.NewOrderHandler(deps.Order)
	shopHandler := handlers.NewShopHandler(deps.Shop, deps.Order)
	dasherHandler := handlers.NewDasherHandler(deps.Dasher, deps.Order)
	paymentHandler := handlers.NewPaymentHandler(deps.Payment, deps.Order)
	ratingHandler := handlers.NewRatingHandler(deps.Rating)
	walletHandler := handlers.NewWalletHandler(deps.Wallet)
	adminHandler := handlers.NewAdminHandler(deps.Order, deps.Dasher)

	api := r.Group("/api", middleware.Auth(deps.Verifier))

	api.POST("/orders", orderHandler.Place)
	api.GET("/orders", orderHandler.List)
	api.GET("/orders/:id", orderHandler.Get)
	api.POST("/orders/:id/status", orderHandler.UpdateStatus)
	api.POST("/orders/:id/proof", orderHandler.AttachProof)
	api.POST("/orders/:id/assign", dasherHandler.Assign)
	api.POST("/orders/:id/unassign", dasherHandler.Unassign)
	api.POST("/orders/:id/confirm", paymentHandler.Confirm)
	api.GET("/orders/:id/payment", paymentHandler.GetByOrder)

	api.POST("/shops", shopHandler.Register)
	api.GET("/shops/:id", shopHandler.Get)
	api.POST("/shops/:id/items", shopHandler.AddItem)
	api.GET("/shops/:id/items", shopHandler.ListItems)
	api.GET("/shops/:id/orders", shopHandler.Incoming)
	api.GET("/shops/:id/payments", paymentHandler.ListByShop)

	api.POST("/dashers", dasherHandler.Register)
	api.GET("/dashers/available-orders", dasherHandler.Available)
	api.GET("/dashers/:id", dasherHandler.Get)
	api.GET("/dashers/:id/orders", dasherHandler.Orders)
	api.GET("/dashers/:id/payments", paymentHandler.ListByDasher)
	api.GET("/dashers/:id/ratings", ratingHandler.ListByDasher)
	api.GET("/dashers/:id/rating-average", ratingHandler.Average)

	api.POST("/ratings", ratingHandler.Create)

	api.GET("/wallets/:kind/:id", walletHandler.Balance)
	api.GET("/wallets/:kind/:id/entries", walletHandler.Entries)
	api.POST("/wallets/:kind/:id/cashout", walletHandler.Cashout)

	admin := api.Group("/admin", middleware.RequireRole("admin"))
	admin.GET("/dashers", adminHandler.ListDashers)
	admin.POST("/dashers/:id/status", adminHandler.SetDasherStatus)
	admin.DELETE("/orders/:id", adminHandler.PurgeOrder)
	admin.GET("/orders/ongoing", adminHandler.OngoingOrders)

	return r
}
