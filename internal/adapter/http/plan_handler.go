package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	planUC "edupay-backend/internal/usecase/plan"
)

type PlanHandler struct {
	uc  *planUC.Usecase
	log *logrus.Logger
}

func NewPlanHandler(uc *planUC.Usecase, log *logrus.Logger) *PlanHandler {
	return &PlanHandler{uc: uc, log: log}
}

type createPlanReq struct {
	Name              string  `json:"name"               validate:"required"`
	InstallmentsCount int     `json:"installments_count" validate:"required,gt=0"`
	MonthlyAmount     float64 `json:"monthly_amount"     validate:"required,gt=0,dec2"`
	TotalAmount       float64 `json:"total_amount"       validate:"gte=0,dec2"`
	GraceDays         int     `json:"grace_days"         validate:"gte=0"`
	LateFeeRate       float64 `json:"late_fee_rate"      validate:"gte=0,dec2"`
}

func (h *PlanHandler) CreatePlan(c echo.Context) error {
	var req createPlanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Create(c.Request().Context(), planUC.CreateInput{
		Name:              req.Name,
		InstallmentsCount: req.InstallmentsCount,
		MonthlyAmount:     decimal.NewFromFloat(req.MonthlyAmount),
		TotalAmount:       decimal.NewFromFloat(req.TotalAmount),
		GraceDays:         req.GraceDays,
		LateFeeRate:       decimal.NewFromFloat(req.LateFeeRate),
		Role:              actorRole(c),
	})
	if err != nil {
		return writeErr(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *PlanHandler) GetPlan(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("plan_id"))
	if err != nil {
		return writeErr(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *PlanHandler) ListPlans(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context())
	if err != nil {
		return writeErr(c, h.log, err)
	}
	return c.JSON(http.StatusOK, out)
}
