package storeserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	cartapp "github.com/sportsstore/go-gin-store-server/internal/domains/cart/application"
	cartports "github.com/sportsstore/go-gin-store-server/internal/domains/cart/ports"
	catalogapp "github.com/sportsstore/go-gin-store-server/internal/domains/catalog/application"
	catalogports "github.com/sportsstore/go-gin-store-server/internal/domains/catalog/ports"
	ordersapp "github.com/sportsstore/go-gin-store-server/internal/domains/orders/application"
	ordersports "github.com/sportsstore/go-gin-store-server/internal/domains/orders/ports"
	userapp "github.com/sportsstore/go-gin-store-server/internal/domains/users/application"
	userports "github.com/sportsstore/go-gin-store-server/internal/domains/users/ports"
	apierrors "github.com/sportsstore/go-gin-store-server/internal/shared/errors"
)

// respondProblem maps a ProblemDetail through the shared responder.
func respondProblem(c *gin.Context, problem apierrors.ProblemDetail) {
	apierrors.Respond(c, problem)
}

// respondError renders an RFC 7807 response for the given status and error.
func respondError(c *gin.Context, status int, err error) {
	if err == nil {
		return
	}
	var problem apierrors.ProblemDetail
	switch status {
	case http.StatusBadRequest:
		problem = apierrors.ErrBadRequest.WithDetail(err.Error())
	case http.StatusNotFound:
		problem = apierrors.ErrNotFound.WithDetail(err.Error())
	case http.StatusUnauthorized:
		problem = apierrors.ErrUnauthorized.WithDetail(err.Error())
	case http.StatusForbidden:
		problem = apierrors.ErrForbidden.WithDetail(err.Error())
	case http.StatusConflict:
		problem = apierrors.ErrConflict.WithDetail(err.Error())
	case http.StatusUnprocessableEntity:
		problem = apierrors.ErrUnprocessable.WithDetail(err.Error())
	default:
		problem = apierrors.ErrInternal.WithDetail(err.Error())
	}
	respondProblem(c, problem)
}

// respondServiceError translates application/port errors from any bounded
// context into the matching problem response.
func respondServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	var stockErr *ordersports.InsufficientStockError
	if errors.As(err, &stockErr) {
		respondProblem(c, apierrors.NewInsufficientStockProblem(stockErr.ProductID))
		return
	}
	switch {
	case errors.Is(err, ordersports.ErrEmptyCart):
		respondProblem(c, apierrors.NewEmptyCartProblem())
	case errors.Is(err, ordersports.ErrConflict):
		respondError(c, http.StatusConflict, err)
	case errors.Is(err, catalogports.ErrNotFound),
		errors.Is(err, cartports.ErrProductNotFound),
		errors.Is(err, cartports.ErrLineNotFound),
		errors.Is(err, ordersports.ErrNotFound),
		errors.Is(err, ordersports.ErrProductNotFound),
		errors.Is(err, userports.ErrNotFound):
		respondError(c, http.StatusNotFound, err)
	case errors.Is(err, userapp.ErrAuthentication):
		respondError(c, http.StatusUnauthorized, err)
	case errors.Is(err, catalogapp.ErrInvalidInput),
		errors.Is(err, cartapp.ErrInvalidInput),
		errors.Is(err, ordersapp.ErrInvalidInput),
		errors.Is(err, userapp.ErrInvalidInput):
		respondError(c, http.StatusBadRequest, err)
	default:
		respondError(c, http.StatusInternalServerError, err)
	}
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	value := c.Param(name)
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return 0, false
	}
	return id, true
}
