package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"edupay-backend/internal/domain/actor"
	enrollmentUC "edupay-backend/internal/usecase/enrollment"
	"edupay-backend/pkg/fault"
)

type EnrollmentHandler struct {
	uc  *enrollmentUC.Usecase
	log *logrus.Logger
}

func NewEnrollmentHandler(uc *enrollmentUC.Usecase, log *logrus.Logger) *EnrollmentHandler {
	return &EnrollmentHandler{uc: uc, log: log}
}

type createEnrollmentReq struct {
	StudentID        string  `json:"student_id"         validate:"required,hex32"`
	PlanID           string  `json:"plan_id"            validate:"required,hex32"`
	EnrollmentFee    float64 `json:"enrollment_fee"     validate:"gte=0,dec2"`
	EnrollmentDate   string  `json:"enrollment_date"    validate:"required,datetime=2006-01-02"`
	FirstPaymentDate string  `json:"first_payment_date" validate:"omitempty,datetime=2006-01-02"`
}

func (h *EnrollmentHandler) CreateEnrollment(c echo.Context) error {
	if role := actorRole(c); role != actor.RoleCashier && role != actor.RoleAdmin {
		return writeErr(c, h.log, fault.Newf(fault.KindAuthorization, "role %q may not create enrollments", role))
	}
	var req createEnrollmentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	enrollDate, _ := parseDate(req.EnrollmentDate)
	in := enrollmentUC.CreateInput{
		StudentID:      req.StudentID,
		PlanID:         req.PlanID,
		EnrollmentFee:  decimal.NewFromFloat(req.EnrollmentFee),
		EnrollmentDate: enrollDate,
		VerifiedBy:     actorID(c),
	}
	if req.FirstPaymentDate != "" {
		d, _ := parseDate(req.FirstPaymentDate)
		in.FirstPaymentDate = &d
	}
	view, err := h.uc.Create(c.Request().Context(), in)
	if err != nil {
		return writeErr(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, view)
}

func (h *EnrollmentHandler) GetEnrollment(c echo.Context) error {
	view, err := h.uc.GetView(c.Request().Context(), c.Param("enrollment_id"))
	if err != nil {
		return writeErr(c, h.log, err)
	}
	return c.JSON(http.StatusOK, view)
}

func (h *EnrollmentHandler) CheckPlanChange(c echo.Context) error {
	res, err := h.uc.CheckPlanChange(c.Request().Context(), c.Param("student_id"))
	if err != nil {
		return writeErr(c, h.log, err)
	}
	return c.JSON(http.StatusOK, res)
}

type changePlanReq struct {
	NewPlanID string `json:"new_plan_id" validate:"required,hex32"`
	Reason    string `json:"reason"      validate:"required"`
}

func (h *EnrollmentHandler) ChangePlan(c echo.Context) error {
	if role := actorRole(c); role != actor.RoleAdmin {
		return writeErr(c, h.log, fault.Newf(fault.KindAuthorization, "role %q may not change plans", role))
	}
	var req changePlanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	view, err := h.uc.ChangePlan(c.Request().Context(), enrollmentUC.ChangePlanInput{
		StudentID: c.Param("student_id"),
		NewPlanID: req.NewPlanID,
		Reason:    req.Reason,
		ChangedBy: actorID(c),
	})
	if err != nil {
		return writeErr(c, h.log, err)
	}
	return c.JSON(http.StatusOK, view)
}
