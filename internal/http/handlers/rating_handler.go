// README: Rating handlers: post-delivery reviews and dasher averages.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"campuseats/internal/modules/rating"
	"campuseats/internal/types"
)

type RatingHandler struct {
	ratings *rating.Service
}

func NewRatingHandler(svc *rating.Service) *RatingHandler {
	return &RatingHandler{ratings: svc}
}

type createRatingReq struct {
	DasherID string `json:"dasher_id"`
	OrderID  string `json:"order_id"`
	Rate     int    `json:"rate"`
	Comment  string `json:"comment"`
}

func (h *RatingHandler) Create(c *gin.Context) {
	var req createRatingReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	r, err := h.ratings.Create(c.Request.Context(), rating.CreateCommand{
		DasherID: types.ID(req.DasherID),
		OrderID:  types.ID(req.OrderID),
		Rate:     req.Rate,
		Comment:  req.Comment,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, r)
}

func (h *RatingHandler) ListByDasher(c *gin.Context) {
	rs, err := h.ratings.ListByDasher(c.Request.Context(), types.ID(c.Param("id")))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"ratings": rs})
}

func (h *RatingHandler) Average(c *gin.Context) {
	avg, err := h.ratings.AverageForDasher(c.Request.Context(), types.ID(c.Param("id")))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{
		"dasher_id":     c.Param("id"),
		"average":       avg,
		"admin_percent": rating.AdminPercent(avg),
	})
}
