// README: Order handlers: placement, status updates, queries, proofs.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"campuseats/internal/http/middleware"
	"campuseats/internal/modules/order"
	"campuseats/internal/types"
)

type OrderHandler struct {
	order *order.Service
}

func NewOrderHandler(svc *order.Service) *OrderHandler {
	return &OrderHandler{order: svc}
}

type orderItemReq struct {
	ItemID    string `json:"item_id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int    `json:"quantity"`
}

type placeOrderReq struct {
	CustomerID    string         `json:"customer_id"`
	ShopID        string         `json:"shop_id"`
	Items         []orderItemReq `json:"items"`
	DeliveryFee   int64          `json:"delivery_fee"`
	TotalPrice    int64          `json:"total_price"`
	PaymentMethod string         `json:"payment_method"`
}

type orderView struct {
	ID                  string     `json:"id"`
	CustomerID          string     `json:"customer_id"`
	ShopID              string     `json:"shop_id"`
	DasherID            *string    `json:"dasher_id,omitempty"`
	Status              string     `json:"status"`
	DeliveryFee         int64      `json:"delivery_fee"`
	TotalPrice          int64      `json:"total_price"`
	PaymentMethod       string     `json:"payment_method"`
	PreviousNoShowFee   int64      `json:"previous_no_show_fee"`
	PreviousNoShowItems int64      `json:"previous_no_show_items"`
	CreatedAt           time.Time  `json:"created_at"`
	CompletedAt         *time.Time `json:"completed_at,omitempty"`
}

func viewOrder(o *order.Order) orderView {
	v := orderView{
		ID:                  string(o.ID),
		CustomerID:          string(o.CustomerID),
		ShopID:              string(o.ShopID),
		Status:              string(o.Status),
		DeliveryFee:         o.DeliveryFee,
		TotalPrice:          o.TotalPrice,
		PaymentMethod:       string(o.PaymentMethod),
		PreviousNoShowFee:   o.PreviousNoShowFee,
		PreviousNoShowItems: o.PreviousNoShowItems,
		CreatedAt:           o.CreatedAt,
		CompletedAt:         o.CompletedAt,
	}
	if o.DasherID != nil {
		d := string(*o.DasherID)
		v.DasherID = &d
	}
	return v
}

func viewOrders(orders []*order.Order) []orderView {
	out := make([]orderView, len(orders))
	for i, o := range orders {
		out[i] = viewOrder(o)
	}
	return out
}

func (h *OrderHandler) Place(c *gin.Context) {
	var req placeOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if middleware.CallerRole(c) != "admin" && middleware.CallerUID(c) != req.CustomerID {
		writeError(c, http.StatusForbidden, "cannot place orders for another customer")
		return
	}
	items := make([]order.Item, len(req.Items))
	for i, it := range req.Items {
		items[i] = order.Item{
			ItemID:    types.ID(it.ItemID),
			Name:      it.Name,
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
		}
	}
	o, err := h.order.Place(c.Request.Context(), order.PlaceCommand{
		CustomerID:    types.ID(req.CustomerID),
		ShopID:        types.ID(req.ShopID),
		Items:         items,
		DeliveryFee:   req.DeliveryFee,
		TotalPrice:    req.TotalPrice,
		PaymentMethod: order.PaymentMethod(req.PaymentMethod),
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, viewOrder(o))
}

func (h *OrderHandler) Get(c *gin.Context) {
	o, err := h.order.Get(c.Request.Context(), types.ID(c.Param("id")))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, viewOrder(o))
}

type updateStatusReq struct {
	Status string `json:"status"`
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req updateStatusReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Status == "" {
		writeError(c, http.StatusBadRequest, "missing status")
		return
	}
	actorID := types.ID(middleware.CallerUID(c))
	err := h.order.UpdateStatus(c.Request.Context(), order.UpdateStatusCommand{
		OrderID:   types.ID(c.Param("id")),
		Status:    order.Status(req.Status),
		ActorType: middleware.CallerRole(c),
		ActorID:   &actorID,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	o, err := h.order.Get(c.Request.Context(), types.ID(c.Param("id")))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, viewOrder(o))
}

type proofReq struct {
	DeliveryProofURI string `json:"delivery_proof_uri"`
	NoShowProofURI   string `json:"no_show_proof_uri"`
}

func (h *OrderHandler) AttachProof(c *gin.Context) {
	var req proofReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	err := h.order.AttachProof(c.Request.Context(), order.ProofCommand{
		OrderID:          types.ID(c.Param("id")),
		DeliveryProofURI: req.DeliveryProofURI,
		NoShowProofURI:   req.NoShowProofURI,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"order_id": c.Param("id")})
}

// List serves the query surface: by status prefix, by customer, by dasher, by
// status and customer, ongoing, and past.
func (h *OrderHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	var (
		orders []*order.Order
		err    error
	)
	switch {
	case c.Query("scope") == "ongoing":
		orders, err = h.order.ListOngoing(ctx)
	case c.Query("scope") == "past":
		prefix := c.DefaultQuery("prefix", order.ActivePrefix)
		orders, err = h.order.ListPast(ctx, prefix)
	case c.Query("status") != "" && c.Query("customer_id") != "":
		orders, err = h.order.ListByStatusAndCustomer(ctx, order.Status(c.Query("status")), types.ID(c.Query("customer_id")))
	case c.Query("customer_id") != "":
		orders, err = h.order.ListByCustomer(ctx, types.ID(c.Query("customer_id")))
	case c.Query("dasher_id") != "":
		orders, err = h.order.ListByDasher(ctx, types.ID(c.Query("dasher_id")))
	case c.Query("status_prefix") != "":
		orders, err = h.order.ListByStatusPrefix(ctx, c.Query("status_prefix"))
	default:
		writeError(c, http.StatusBadRequest, "missing query filter")
		return
	}
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"orders": viewOrders(orders)})
}
