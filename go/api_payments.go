package shopserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	paymenthttpmapper "github.com/Apurer/go-gin-shop-server/internal/domains/payments/adapters/http/mapper"
	paymentsports "github.com/Apurer/go-gin-shop-server/internal/domains/payments/ports"
	apierrors "github.com/Apurer/go-gin-shop-server/internal/shared/errors"
)

// PaymentAPI wires HTTP transport with the payment bounded context service.
type PaymentAPI struct {
	service paymentsports.Service
}

// NewPaymentAPI creates a PaymentAPI backed by the provided service.
func NewPaymentAPI(service paymentsports.Service) PaymentAPI {
	return PaymentAPI{service: service}
}

// Post /api/v1/payments
// Settle a payment for an order
func (api *PaymentAPI) CreatePayment(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	var payload paymenthttpmapper.CreatePaymentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondProblem(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	input, err := paymenthttpmapper.ToInput(payload)
	if err != nil {
		respondProblem(c, apierrors.ErrValidation.WithDetail(err.Error()))
		return
	}
	receipt, err := api.service.CreatePayment(c.Request.Context(), principal, input)
	if err != nil {
		respondPaymentServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, paymenthttpmapper.FromReceipt(receipt))
}

// Get /api/v1/payments/:paymentId
// Load one payment
func (api *PaymentAPI) GetPayment(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	paymentID, ok := parseUUIDParam(c, "paymentId")
	if !ok {
		return
	}
	details, err := api.service.GetPayment(c.Request.Context(), principal, paymentID)
	if err != nil {
		respondPaymentServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, paymenthttpmapper.FromDetails(details))
}
