package http

import (
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"edupay-backend/internal/domain/actor"
	domainVoucher "edupay-backend/internal/domain/voucher"
	voucherUC "edupay-backend/internal/usecase/voucher"
	"edupay-backend/pkg/fault"
)

// maxProofSize caps an uploaded proof-of-payment file at 8 MiB.
const maxProofSize = 8 << 20

type VoucherHandler struct {
	uc  *voucherUC.Usecase
	log *logrus.Logger
}

func NewVoucherHandler(uc *voucherUC.Usecase, log *logrus.Logger) *VoucherHandler {
	return &VoucherHandler{uc: uc, log: log}
}

// SubmitVoucher accepts a multipart form: the proof file plus the declared
// payment details.
func (h *VoucherHandler) SubmitVoucher(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "proof file is required"})
	}
	if fileHeader.Size > maxProofSize {
		return c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{Error: "proof file exceeds 8 MiB"})
	}
	f, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "cannot read proof file"})
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, maxProofSize))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "cannot read proof file"})
	}

	amount, err := strconv.ParseFloat(c.FormValue("declared_amount"), 64)
	if err != nil || amount <= 0 {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "declared_amount must be a positive number"})
	}
	paymentDate, err := parseDate(c.FormValue("payment_date"))
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "payment_date must be formatted 2006-01-02"})
	}

	dto, err := h.uc.Submit(c.Request().Context(), voucherUC.SubmitInput{
		InstallmentID:  c.Param("installment_id"),
		File:           data,
		FileName:       fileHeader.Filename,
		DeclaredAmount: decimal.NewFromFloat(amount),
		PaymentDate:    paymentDate,
		Method:         c.FormValue("method"),
		Reference:      c.FormValue("reference"),
		Role:           actorRole(c),
		UploadedBy:     actorID(c),
	})
	if err != nil {
		return writeErr(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

// ListVouchers returns the full submission history for an installment,
// rejected vouchers included.
func (h *VoucherHandler) ListVouchers(c echo.Context) error {
	dtos, err := h.uc.ListForInstallment(c.Request().Context(), c.Param("installment_id"))
	if err != nil {
		return writeErr(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dtos)
}

type reviewVoucherReq struct {
	Decision string `json:"decision" validate:"required,oneof=approve reject"`
	Reason   string `json:"reason"`
}

func (h *VoucherHandler) ReviewVoucher(c echo.Context) error {
	if role := actorRole(c); role != actor.RoleCashier && role != actor.RoleAdmin {
		return writeErr(c, h.log, fault.Newf(fault.KindAuthorization, "role %q may not review vouchers", role))
	}
	var req reviewVoucherReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	res, err := h.uc.Review(c.Request().Context(), voucherUC.ReviewInput{
		VoucherID:  c.Param("voucher_id"),
		Decision:   domainVoucher.Decision(req.Decision),
		Reason:     req.Reason,
		ReviewerID: actorID(c),
	})
	if err != nil {
		return writeErr(c, h.log, err)
	}
	return c.JSON(http.StatusOK, res)
}
