package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"edupay-backend/internal/domain/student"
	prospectUC "edupay-backend/internal/usecase/prospect"
)

type StudentHandler struct {
	uc  *prospectUC.Usecase
	log *logrus.Logger
}

func NewStudentHandler(uc *prospectUC.Usecase, log *logrus.Logger) *StudentHandler {
	return &StudentHandler{uc: uc, log: log}
}

type registerStudentReq struct {
	FullName         string `json:"full_name"          validate:"required"`
	Email            string `json:"email"              validate:"omitempty,email"`
	FirstPaymentDate string `json:"first_payment_date" validate:"omitempty,datetime=2006-01-02"`
}

func (h *StudentHandler) RegisterStudent(c echo.Context) error {
	var req registerStudentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	in := prospectUC.RegisterInput{FullName: req.FullName, Email: req.Email}
	if req.FirstPaymentDate != "" {
		d, _ := parseDate(req.FirstPaymentDate)
		in.FirstPaymentDate = &d
	}
	dto, err := h.uc.Register(c.Request().Context(), in)
	if err != nil {
		return writeErr(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *StudentHandler) GetStudent(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("student_id"))
	if err != nil {
		return writeErr(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type transitionReq struct {
	Status string `json:"status" validate:"required,oneof=registered proposal_sent payment_under_review enrolled"`
	// Enrollment-only fields.
	PlanID        string  `json:"plan_id"        validate:"omitempty,hex32"`
	EnrollmentFee float64 `json:"enrollment_fee" validate:"gte=0,dec2"`
	PaymentDate   string  `json:"payment_date"   validate:"omitempty,datetime=2006-01-02"`
}

func (h *StudentHandler) TransitionStatus(c echo.Context) error {
	var req transitionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	in := prospectUC.TransitionInput{
		StudentID:     c.Param("student_id"),
		Requested:     student.ProspectStatus(req.Status),
		Role:          actorRole(c),
		ActorID:       actorID(c),
		PlanID:        req.PlanID,
		EnrollmentFee: decimal.NewFromFloat(req.EnrollmentFee),
	}
	if req.PaymentDate != "" {
		d, _ := time.Parse("2006-01-02", req.PaymentDate)
		in.PaymentDate = &d
	}
	dto, err := h.uc.Transition(c.Request().Context(), in)
	if err != nil {
		return writeErr(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}
