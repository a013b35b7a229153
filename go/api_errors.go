package shopserver

import (
	"errors"

	"github.com/gin-gonic/gin"

	catalogapp "github.com/Apurer/go-gin-shop-server/internal/domains/catalog/application"
	ordersapp "github.com/Apurer/go-gin-shop-server/internal/domains/orders/application"
	paymentsapp "github.com/Apurer/go-gin-shop-server/internal/domains/payments/application"
	apierrors "github.com/Apurer/go-gin-shop-server/internal/shared/errors"
)

// respondProblem maps a ProblemDetail through the shared responder.
func respondProblem(c *gin.Context, problem apierrors.ProblemDetail) {
	apierrors.Respond(c, problem)
}

var orderResponder = apierrors.NewChainedResponder("", mapOrderError)
var paymentResponder = apierrors.NewChainedResponder("", mapPaymentError)
var productResponder = apierrors.NewChainedResponder("", mapProductError)

func respondOrderServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	orderResponder.RespondError(c, err)
}

func respondPaymentServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	paymentResponder.RespondError(c, err)
}

func respondProductServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	productResponder.RespondError(c, err)
}

func mapOrderError(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, ordersapp.ErrOrderItemsEmpty),
		errors.Is(err, ordersapp.ErrInvalidQuantity),
		errors.Is(err, ordersapp.ErrAmountOverflow):
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	case errors.Is(err, ordersapp.ErrOrderNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()).WithExtension("resourceType", "order"), true
	case errors.Is(err, ordersapp.ErrProductNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()).WithExtension("resourceType", "product"), true
	case errors.Is(err, ordersapp.ErrUserNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()).WithExtension("resourceType", "user"), true
	case errors.Is(err, ordersapp.ErrPaymentNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()).WithExtension("resourceType", "payment"), true
	case errors.Is(err, ordersapp.ErrOrderForbidden):
		return apierrors.NewForbiddenProblem("order"), true
	case errors.Is(err, ordersapp.ErrPaymentForbidden):
		return apierrors.NewForbiddenProblem("payment"), true
	case errors.Is(err, ordersapp.ErrOutOfStock):
		return apierrors.NewConflictProblem("stock-available", err.Error()), true
	case errors.Is(err, ordersapp.ErrOrderAlreadyCancelled):
		return apierrors.NewConflictProblem("order-not-cancelled", err.Error()), true
	case errors.Is(err, ordersapp.ErrPaymentAlreadyCancelled):
		return apierrors.NewConflictProblem("payment-not-cancelled", err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

func mapPaymentError(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, paymentsapp.ErrInvalidMethod):
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	case errors.Is(err, paymentsapp.ErrPaymentNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()).WithExtension("resourceType", "payment"), true
	case errors.Is(err, paymentsapp.ErrOrderNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()).WithExtension("resourceType", "order"), true
	case errors.Is(err, paymentsapp.ErrUserNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()).WithExtension("resourceType", "user"), true
	case errors.Is(err, paymentsapp.ErrPaymentForbidden):
		return apierrors.NewForbiddenProblem("payment"), true
	case errors.Is(err, paymentsapp.ErrOrderForbidden):
		return apierrors.NewForbiddenProblem("order"), true
	case errors.Is(err, paymentsapp.ErrPaymentAlreadyExists):
		return apierrors.NewConflictProblem("one-payment-per-order", err.Error()), true
	case errors.Is(err, paymentsapp.ErrOrderCancelled):
		return apierrors.NewConflictProblem("order-not-cancelled", err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

func mapProductError(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, catalogapp.ErrInvalidProduct):
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	case errors.Is(err, catalogapp.ErrProductNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()).WithExtension("resourceType", "product"), true
	case errors.Is(err, catalogapp.ErrProductForbidden):
		return apierrors.NewForbiddenProblem("product"), true
	}
	return apierrors.ProblemDetail{}, false
}
