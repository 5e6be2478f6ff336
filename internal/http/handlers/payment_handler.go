// README: Payment handlers: delivery confirmation and settlement history.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"campuseats/internal/modules/order"
	"campuseats/internal/modules/payment"
	"campuseats/internal/types"
)

type PaymentHandler struct {
	payments *payment.Service
	orders   *order.Service
}

func NewPaymentHandler(payments *payment.Service, orders *order.Service) *PaymentHandler {
	return &PaymentHandler{payments: payments, orders: orders}
}

// Confirm settles an order from its stored record: the client only names the
// order, all amounts come from what was persisted at placement.
func (h *PaymentHandler) Confirm(c *gin.Context) {
	o, err := h.orders.Get(c.Request.Context(), types.ID(c.Param("id")))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if o.DasherID == nil {
		writeError(c, http.StatusConflict, "order has no dasher")
		return
	}
	err = h.payments.Confirm(c.Request.Context(), payment.ConfirmCommand{
		OrderID:             o.ID,
		DasherID:            *o.DasherID,
		ShopID:              o.ShopID,
		CustomerID:          o.CustomerID,
		PaymentMethod:       o.PaymentMethod,
		DeliveryFee:         o.DeliveryFee,
		TotalPrice:          o.TotalPrice,
		Items:               o.Items,
		PreviousNoShowFee:   o.PreviousNoShowFee,
		PreviousNoShowItems: o.PreviousNoShowItems,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	p, err := h.payments.GetByOrder(c.Request.Context(), o.ID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, p)
}

func (h *PaymentHandler) GetByOrder(c *gin.Context) {
	p, err := h.payments.GetByOrder(c.Request.Context(), types.ID(c.Param("id")))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, p)
}

func (h *PaymentHandler) ListByDasher(c *gin.Context) {
	ps, err := h.payments.ListByDasher(c.Request.Context(), types.ID(c.Param("id")))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"payments": ps})
}

func (h *PaymentHandler) ListByShop(c *gin.Context) {
	ps, err := h.payments.ListByShop(c.Request.Context(), types.ID(c.Param("id")))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"payments": ps})
}
