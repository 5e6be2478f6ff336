// README: Dasher handlers: registration, assignment, and the delivery queue.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"campuseats/internal/http/middleware"
	"campuseats/internal/modules/dasher"
	"campuseats/internal/modules/order"
	"campuseats/internal/types"
)

type DasherHandler struct {
	dashers *dasher.Service
	orders  *order.Service
}

func NewDasherHandler(dashers *dasher.Service, orders *order.Service) *DasherHandler {
	return &DasherHandler{dashers: dashers, orders: orders}
}

type registerDasherReq struct {
	Name string `json:"name"`
}

func (h *DasherHandler) Register(c *gin.Context) {
	var req registerDasherReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	d, err := h.dashers.Register(c.Request.Context(), dasher.RegisterCommand{Name: req.Name})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, d)
}

func (h *DasherHandler) Get(c *gin.Context) {
	d, err := h.dashers.Get(c.Request.Context(), types.ID(c.Param("id")))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, d)
}

// Available lists orders waiting for a dasher, newest first.
func (h *DasherHandler) Available(c *gin.Context) {
	orders, err := h.orders.ListByStatusPrefix(c.Request.Context(), string(order.StatusWaitingForDasher))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"orders": viewOrders(orders)})
}

type assignReq struct {
	DasherID string `json:"dasher_id"`
}

func (h *DasherHandler) Assign(c *gin.Context) {
	var req assignReq
	if err := c.ShouldBindJSON(&req); err != nil || req.DasherID == "" {
		writeError(c, http.StatusBadRequest, "missing dasher_id")
		return
	}
	if middleware.CallerRole(c) != "admin" && middleware.CallerUID(c) != req.DasherID {
		writeError(c, http.StatusForbidden, "cannot assign another dasher")
		return
	}
	d, err := h.dashers.Get(c.Request.Context(), types.ID(req.DasherID))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if d.Status != dasher.StatusActive {
		writeError(c, http.StatusForbidden, "dasher is not active")
		return
	}
	err = h.orders.AssignDasher(c.Request.Context(), order.AssignCommand{
		OrderID:  types.ID(c.Param("id")),
		DasherID: types.ID(req.DasherID),
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	o, err := h.orders.Get(c.Request.Context(), types.ID(c.Param("id")))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, viewOrder(o))
}

// Unassign drops the order's dasher. Only the assigned dasher or an admin may
// clear the assignment.
func (h *DasherHandler) Unassign(c *gin.Context) {
	o, err := h.orders.Get(c.Request.Context(), types.ID(c.Param("id")))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if middleware.CallerRole(c) != "admin" {
		if o.DasherID == nil || string(*o.DasherID) != middleware.CallerUID(c) {
			writeError(c, http.StatusForbidden, "not the assigned dasher")
			return
		}
	}
	err = h.orders.RemoveDasher(c.Request.Context(), order.RemoveDasherCommand{
		OrderID:   o.ID,
		ActorType: middleware.CallerRole(c),
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"order_id": c.Param("id")})
}

func (h *DasherHandler) Orders(c *gin.Context) {
	orders, err := h.orders.ListByDasher(c.Request.Context(), types.ID(c.Param("id")))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"orders": viewOrders(orders)})
}
