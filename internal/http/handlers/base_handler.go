// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"campuseats/internal/modules/dasher"
	"campuseats/internal/modules/order"
	"campuseats/internal/modules/payment"
	"campuseats/internal/modules/rating"
	"campuseats/internal/modules/shop"
	"campuseats/internal/modules/wallet"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, order.ErrBadRequest), errors.Is(err, shop.ErrBadRequest),
		errors.Is(err, dasher.ErrBadRequest), errors.Is(err, payment.ErrBadRequest),
		errors.Is(err, rating.ErrBadRate), errors.Is(err, wallet.ErrBadAmount):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, order.ErrNotFound), errors.Is(err, shop.ErrNotFound),
		errors.Is(err, dasher.ErrNotFound), errors.Is(err, payment.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, order.ErrPrecondition):
		writeError(c, http.StatusPreconditionFailed, err.Error())
	case errors.Is(err, order.ErrActiveOrder), errors.Is(err, order.ErrDasherBusy),
		errors.Is(err, order.ErrConflict), errors.Is(err, order.ErrAlreadyCompleted),
		errors.Is(err, payment.ErrAlreadySettled):
		writeError(c, http.StatusConflict, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
