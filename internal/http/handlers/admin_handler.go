// README: Admin handlers: dasher activation, order purge, platform views.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"campuseats/internal/modules/dasher"
	"campuseats/internal/modules/order"
	"campuseats/internal/types"
)

type AdminHandler struct {
	orders  *order.Service
	dashers *dasher.Service
}

func NewAdminHandler(orders *order.Service, dashers *dasher.Service) *AdminHandler {
	return &AdminHandler{orders: orders, dashers: dashers}
}

type dasherStatusReq struct {
	Status string `json:"status"`
}

func (h *AdminHandler) SetDasherStatus(c *gin.Context) {
	var req dasherStatusReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Status == "" {
		writeError(c, http.StatusBadRequest, "missing status")
		return
	}
	err := h.dashers.SetStatus(c.Request.Context(), types.ID(c.Param("id")), dasher.Status(req.Status))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"dasher_id": c.Param("id"), "status": req.Status})
}

func (h *AdminHandler) ListDashers(c *gin.Context) {
	ds, err := h.dashers.List(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"dashers": ds})
}

// PurgeOrder hard-deletes an order and its events.
func (h *AdminHandler) PurgeOrder(c *gin.Context) {
	if err := h.orders.Purge(c.Request.Context(), types.ID(c.Param("id"))); err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"order_id": c.Param("id"), "deleted": true})
}

func (h *AdminHandler) OngoingOrders(c *gin.Context) {
	orders, err := h.orders.ListOngoing(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"orders": viewOrders(orders)})
}
