package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	paymentUC "edupay-backend/internal/usecase/payment"
)

type PaymentHandler struct {
	uc  *paymentUC.Usecase
	log *logrus.Logger
}

func NewPaymentHandler(uc *paymentUC.Usecase, log *logrus.Logger) *PaymentHandler {
	return &PaymentHandler{uc: uc, log: log}
}

type applyPaymentReq struct {
	Amount float64 `json:"amount" validate:"required,gt=0,dec2"`
}

func (h *PaymentHandler) ApplyPayment(c echo.Context) error {
	var req applyPaymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.ApplyManual(c.Request().Context(), paymentUC.ApplyInput{
		InstallmentID: c.Param("installment_id"),
		Amount:        decimal.NewFromFloat(req.Amount),
		Role:          actorRole(c),
		ActorID:       actorID(c),
	})
	if err != nil {
		return writeErr(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}
