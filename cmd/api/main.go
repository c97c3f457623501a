package main

import (
	"fmt"
	"net/http"

	"github.com/biotrackhr/biotrack-backend-go/internal/config"
	"github.com/biotrackhr/biotrack-backend-go/internal/domain/regularization"
	appHTTP "github.com/biotrackhr/biotrack-backend-go/internal/handler/http"
	"github.com/biotrackhr/biotrack-backend-go/internal/pkg/cron"
	"github.com/biotrackhr/biotrack-backend-go/internal/pkg/database"
	"github.com/biotrackhr/biotrack-backend-go/internal/repository/postgresql"
	attendanceService "github.com/biotrackhr/biotrack-backend-go/internal/service/attendance"
	"github.com/biotrackhr/biotrack-backend-go/internal/service/checkinimport"
	regularizationService "github.com/biotrackhr/biotrack-backend-go/internal/service/regularization"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	settingsRepo := postgresql.NewSettingsRepository(db, regularization.Settings{
		Enabled:             cfg.Regularization.Enabled,
		MaxRequestsPerMonth: cfg.Regularization.MaxRequestsPerMonth,
	})
	regularizationRepo := postgresql.NewRegularizationRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	checkinRepo := postgresql.NewCheckinRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)

	regularizationSvc := regularizationService.NewService(
		postgresql.NewTxManager(db),
		settingsRepo,
		regularizationRepo,
		employeeRepo,
		checkinRepo,
		attendanceRepo,
	)
	attendanceSvc := attendanceService.NewService(checkinRepo, employeeRepo, attendanceRepo)
	importSvc := checkinimport.NewService(
		employeeRepo,
		checkinRepo,
		checkinimport.NewPunchMapping(cfg.Import.PunchInCodes),
	)

	regularizationHandler := appHTTP.NewRegularizationHandler(regularizationSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	checkinHandler := appHTTP.NewCheckinHandler(importSvc)

	router := appHTTP.NewRouter(
		regularizationHandler,
		attendanceHandler,
		checkinHandler,
	)

	scheduler := cron.NewScheduler()
	cron.NewAttendanceJobs(attendanceSvc).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
