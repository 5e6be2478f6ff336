// README: Shop handlers: registration, menu items, and the shop order feed.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"campuseats/internal/modules/order"
	"campuseats/internal/modules/shop"
	"campuseats/internal/types"
)

type ShopHandler struct {
	shops  *shop.Service
	orders *order.Service
}

func NewShopHandler(shops *shop.Service, orders *order.Service) *ShopHandler {
	return &ShopHandler{shops: shops, orders: orders}
}

type registerShopReq struct {
	Name string `json:"name"`
}

func (h *ShopHandler) Register(c *gin.Context) {
	var req registerShopReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	sh, err := h.shops.Register(c.Request.Context(), shop.RegisterCommand{Name: req.Name})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, sh)
}

func (h *ShopHandler) Get(c *gin.Context) {
	sh, err := h.shops.Get(c.Request.Context(), types.ID(c.Param("id")))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, sh)
}

type addItemReq struct {
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"`
	Stock     int    `json:"stock"`
}

func (h *ShopHandler) AddItem(c *gin.Context) {
	var req addItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	it, err := h.shops.AddItem(c.Request.Context(), shop.AddItemCommand{
		ShopID:    types.ID(c.Param("id")),
		Name:      req.Name,
		UnitPrice: req.UnitPrice,
		Stock:     req.Stock,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, it)
}

func (h *ShopHandler) ListItems(c *gin.Context) {
	items, err := h.shops.ListItems(c.Request.Context(), types.ID(c.Param("id")))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"items": items})
}

// Incoming lists orders still waiting for this shop's confirmation.
func (h *ShopHandler) Incoming(c *gin.Context) {
	orders, err := h.orders.ListByStatusPrefix(c.Request.Context(), string(order.StatusWaitingForShop))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	shopID := types.ID(c.Param("id"))
	out := orders[:0]
	for _, o := range orders {
		if o.ShopID == shopID {
			out = append(out, o)
		}
	}
	writeJSON(c, http.StatusOK, gin.H{"orders": viewOrders(out)})
}
