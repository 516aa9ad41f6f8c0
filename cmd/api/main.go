package main

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	httpadp "edupay-backend/internal/adapter/http"
	"edupay-backend/internal/adapter/middleware"
	"edupay-backend/internal/adapter/repository/mysql"
	"edupay-backend/internal/config"
	"edupay-backend/internal/domain/enrollment"
	"edupay-backend/internal/domain/installment"
	"edupay-backend/internal/domain/plan"
	"edupay-backend/internal/domain/student"
	"edupay-backend/internal/domain/voucher"
	"edupay-backend/internal/infrastructure/blob"
	"edupay-backend/internal/infrastructure/cache"
	"edupay-backend/internal/infrastructure/db"
	enrollmentUC "edupay-backend/internal/usecase/enrollment"
	paymentUC "edupay-backend/internal/usecase/payment"
	planUC "edupay-backend/internal/usecase/plan"
	prospectUC "edupay-backend/internal/usecase/prospect"
	voucherUC "edupay-backend/internal/usecase/voucher"
	"edupay-backend/pkg/clock"
)

func main() {
	_ = godotenv.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}

	gormDB, err := db.OpenGorm(cfg.MySQLDSN(), log)
	if err != nil {
		log.WithError(err).Fatal("mysql connection failed")
	}
	if err := gormDB.AutoMigrate(
		&plan.PaymentPlan{},
		&plan.PlanChange{},
		&student.Student{},
		&enrollment.Enrollment{},
		&installment.Installment{},
		&voucher.Voucher{},
	); err != nil {
		log.WithError(err).Fatal("migration failed")
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.WithError(err).Fatal("redis connection failed")
	}

	blobs, err := blob.NewDiskStore(cfg.BlobDir, cfg.BlobBaseURL)
	if err != nil {
		log.WithError(err).Fatal("blob store init failed")
	}

	tx := mysql.NewGormUoW(gormDB)
	clk := clock.System{}

	planSvc := planUC.NewUsecase(tx, log)
	enrollmentSvc := enrollmentUC.NewUsecase(tx, clk, log, cfg.PlanChangeWindowDays)
	prospectSvc := prospectUC.NewUsecase(tx, clk, log)
	voucherSvc := voucherUC.NewUsecase(tx, blobs, clk, log)
	paymentSvc := paymentUC.NewUsecase(tx, clk, log)

	h := httpadp.NewHandler()
	planH := httpadp.NewPlanHandler(planSvc, log)
	studentH := httpadp.NewStudentHandler(prospectSvc, log)
	enrollmentH := httpadp.NewEnrollmentHandler(enrollmentSvc, log)
	voucherH := httpadp.NewVoucherHandler(voucherSvc, log)
	paymentH := httpadp.NewPaymentHandler(paymentSvc, log)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())

	idemp := middleware.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second, log)

	e.GET("/health", h.Health)

	e.POST("/plans", planH.CreatePlan)
	e.GET("/plans", planH.ListPlans)
	e.GET("/plans/:plan_id", planH.GetPlan)

	e.POST("/students", studentH.RegisterStudent)
	e.GET("/students/:student_id", studentH.GetStudent)
	e.POST("/students/:student_id/status", studentH.TransitionStatus)
	e.GET("/students/:student_id/plan-change", enrollmentH.CheckPlanChange)
	e.POST("/students/:student_id/plan-change", enrollmentH.ChangePlan, idemp)

	e.POST("/enrollments", enrollmentH.CreateEnrollment)
	e.GET("/enrollments/:enrollment_id", enrollmentH.GetEnrollment)

	e.POST("/installments/:installment_id/vouchers", voucherH.SubmitVoucher, idemp)
	e.GET("/installments/:installment_id/vouchers", voucherH.ListVouchers)
	e.POST("/vouchers/:voucher_id/review", voucherH.ReviewVoucher, idemp)
	e.POST("/installments/:installment_id/payments", paymentH.ApplyPayment, idemp)

	// serve uploaded proof-of-payment files
	e.Static("/files", cfg.BlobDir)

	addr := ":" + cfg.AppPort
	log.WithField("addr", addr).Info("listening")
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
