package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/simagang/presensi-backend-go/internal/config"
	appHTTP "github.com/simagang/presensi-backend-go/internal/handler/http"
	"github.com/simagang/presensi-backend-go/internal/pkg/cron"
	"github.com/simagang/presensi-backend-go/internal/pkg/database"
	"github.com/simagang/presensi-backend-go/internal/pkg/jwt"
	"github.com/simagang/presensi-backend-go/internal/pkg/oauth"
	"github.com/simagang/presensi-backend-go/internal/pkg/storage"
	"github.com/simagang/presensi-backend-go/internal/repository/postgresql"
	attendanceService "github.com/simagang/presensi-backend-go/internal/service/attendance"
	authService "github.com/simagang/presensi-backend-go/internal/service/auth"
	evaluationService "github.com/simagang/presensi-backend-go/internal/service/evaluation"
	"github.com/simagang/presensi-backend-go/internal/service/file"
	leaveService "github.com/simagang/presensi-backend-go/internal/service/leave"
	policyService "github.com/simagang/presensi-backend-go/internal/service/policy"
	userService "github.com/simagang/presensi-backend-go/internal/service/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	profileRepo := postgresql.NewInternshipProfileRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	evaluationRepo := postgresql.NewEvaluationRepository(db)
	policyRepo := postgresql.NewPolicyRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	googleService := oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath)
	if err != nil {
		log.Fatal("Failed to initialize local storage:", err)
	}

	fileSvc := file.NewFileService(fileStorage)
	policySvc := policyService.NewPolicyService(policyRepo)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, profileRepo, policySvc)
	leaveSvc := leaveService.NewLeaveService(db, leaveRequestRepo, attendanceRepo, fileSvc)
	evaluationSvc := evaluationService.NewEvaluationService(evaluationRepo)
	userSvc := userService.NewUserService(userRepo, profileRepo)
	authSvc := authService.NewAuthService(userRepo, jwtService, googleService)

	authHandler := appHTTP.NewAuthHandler(jwtService, authSvc, googleService, cfg.App.FrontendURL)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc)
	evaluationHandler := appHTTP.NewEvaluationHandler(evaluationSvc)
	userHandler := appHTTP.NewUserHandler(userSvc)
	policyHandler := appHTTP.NewPolicyHandler(policySvc)

	scheduler := cron.NewScheduler()
	absenceJobs := cron.NewAbsenceJobs(attendanceRepo, profileRepo, policyRepo)
	absenceJobs.RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			FrontendURL: cfg.App.FrontendURL,
			Environment: cfg.App.Env,
			UploadDir:   cfg.Storage.BasePath,
		},
		jwtService,
		authHandler,
		attendanceHandler,
		leaveHandler,
		evaluationHandler,
		userHandler,
		policyHandler,
	)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Println("Server running on", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatal("Server failed:", err)
	}
}
