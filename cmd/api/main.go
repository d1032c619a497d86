package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/paycore/payroll-engine-go/internal/config"
	appHTTP "github.com/paycore/payroll-engine-go/internal/handler/http"
	"github.com/paycore/payroll-engine-go/internal/pkg/cron"
	"github.com/paycore/payroll-engine-go/internal/pkg/database"
	"github.com/paycore/payroll-engine-go/internal/pkg/jwt"
	"github.com/paycore/payroll-engine-go/internal/repository/postgresql"
	attendanceService "github.com/paycore/payroll-engine-go/internal/service/attendance"
	compensationService "github.com/paycore/payroll-engine-go/internal/service/compensation"
	payrollService "github.com/paycore/payroll-engine-go/internal/service/payroll"
	reportService "github.com/paycore/payroll-engine-go/internal/service/report"
	statutoryService "github.com/paycore/payroll-engine-go/internal/service/statutory"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(
		slog.String("app", "payroll-engine"),
	)

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	employeeRepo := postgresql.NewEmployeeRepository(db)
	compensationRepo := postgresql.NewCompensationRepository(db)
	deductionRepo := postgresql.NewDeductionRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	summaryRepo := postgresql.NewAttendanceSummaryRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	calendarRepo := postgresql.NewCalendarRepository(db)
	settingsRepo := postgresql.NewStatutorySettingsRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	reportRepo := postgresql.NewReportRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	attendanceSvc := attendanceService.NewAttendanceService(
		attendanceRepo,
		summaryRepo,
		employeeRepo,
		leaveRepo,
		calendarRepo,
		logger,
	)
	resolver := compensationService.NewResolver(compensationRepo, cfg.Payroll.BasicComponentCodes)
	calculator := statutoryService.NewCalculator()
	translator := payrollService.NewErrorTranslator()
	payrollSvc := payrollService.NewPayrollService(
		payrollRepo,
		employeeRepo,
		summaryRepo,
		deductionRepo,
		settingsRepo,
		attendanceSvc,
		resolver,
		calculator,
		translator,
		logger,
	)
	reportSvc := reportService.NewReportService(reportRepo, payrollRepo)

	scheduler := cron.NewScheduler()
	cron.NewAttendanceJobs(attendanceSvc).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	reportHandler := appHTTP.NewReportHandler(reportSvc)

	router := appHTTP.NewRouter(jwtService, payrollHandler, attendanceHandler, reportHandler)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	logger.Info("starting server", slog.String("addr", addr))
	if err := http.ListenAndServe(addr, router); err != nil {
		logger.Error("server stopped", slog.String("error", err.Error()))
	}
}
