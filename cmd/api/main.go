package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/hamkke-hr/hr-backend-go/internal/config"
	attendanceDomain "github.com/hamkke-hr/hr-backend-go/internal/domain/attendance"
	appHTTP "github.com/hamkke-hr/hr-backend-go/internal/handler/http"
	"github.com/hamkke-hr/hr-backend-go/internal/pkg/database"
	"github.com/hamkke-hr/hr-backend-go/internal/pkg/dateutil"
	"github.com/hamkke-hr/hr-backend-go/internal/pkg/jwt"
	"github.com/hamkke-hr/hr-backend-go/internal/repository/postgresql"
	attendanceService "github.com/hamkke-hr/hr-backend-go/internal/service/attendance"
	authService "github.com/hamkke-hr/hr-backend-go/internal/service/auth"
	employeeService "github.com/hamkke-hr/hr-backend-go/internal/service/employee"
	leaveService "github.com/hamkke-hr/hr-backend-go/internal/service/leave"
	notificationService "github.com/hamkke-hr/hr-backend-go/internal/service/notification"
	reportService "github.com/hamkke-hr/hr-backend-go/internal/service/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	location, err := time.LoadLocation(cfg.Attendance.Timezone)
	if err != nil {
		fmt.Println("Error loading timezone:", err)
		return
	}
	policy := attendanceDomain.Policy{
		Location:         location,
		GraceWindowStart: cfg.Attendance.GraceWindowStart,
		GraceWindowEnd:   cfg.Attendance.GraceWindowEnd,
		EndOfDayCutoff:   cfg.Attendance.EndOfDayCutoff,
		MorningThreshold: cfg.Attendance.MorningThreshold,
	}

	userRepo := postgresql.NewUserRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	leaveBalanceRepo := postgresql.NewLeaveBalanceRepository(db)
	leaveLedger := postgresql.NewLeaveLedgerWriter(db)
	notificationRepo := postgresql.NewNotificationRepository(db)
	refreshTokenRepo := postgresql.NewRefreshTokenRepository(db)

	jwtSvc := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	notificationSvc := notificationService.NewNotificationService(notificationRepo, userRepo)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, userRepo, notificationSvc, policy)
	leaveSvc := leaveService.NewLeaveService(leaveRequestRepo, leaveBalanceRepo, leaveLedger, notificationSvc)
	employeeSvc := employeeService.NewEmployeeService(userRepo)
	authSvc := authService.NewAuthService(userRepo, refreshTokenRepo, jwtSvc)
	reportSvc := reportService.NewReportService(
		attendanceSvc,
		employeeSvc,
		leaveSvc,
		userRepo,
		attendanceRepo,
		leaveRequestRepo,
		notificationRepo,
		func() string { return dateutil.DayKey(time.Now().In(location)) },
	)

	handlers := appHTTP.Handlers{
		Auth:         appHTTP.NewAuthHandler(jwtSvc, authSvc),
		Attendance:   appHTTP.NewAttendanceHandler(attendanceSvc),
		Leave:        appHTTP.NewLeaveHandler(leaveSvc),
		Employee:     appHTTP.NewEmployeeHandler(employeeSvc),
		Notification: appHTTP.NewNotificationHandler(notificationSvc),
		Report:       appHTTP.NewReportHandler(reportSvc),
	}

	router := appHTTP.NewRouter(jwtSvc, handlers, []string{cfg.App.FrontendURL})

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
