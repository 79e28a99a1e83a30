package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/leaveport/leaveport-backend-go/internal/config"
	appHTTP "github.com/leaveport/leaveport-backend-go/internal/handler/http"
	"github.com/leaveport/leaveport-backend-go/internal/pkg/cron"
	"github.com/leaveport/leaveport-backend-go/internal/pkg/database"
	"github.com/leaveport/leaveport-backend-go/internal/pkg/graph"
	"github.com/leaveport/leaveport-backend-go/internal/pkg/jwt"
	"github.com/leaveport/leaveport-backend-go/internal/pkg/oauth"
	"github.com/leaveport/leaveport-backend-go/internal/repository/postgresql"
	calendarService "github.com/leaveport/leaveport-backend-go/internal/service/calendar"
	directoryService "github.com/leaveport/leaveport-backend-go/internal/service/directory"
	leaveService "github.com/leaveport/leaveport-backend-go/internal/service/leave"
	profileService "github.com/leaveport/leaveport-backend-go/internal/service/profile"
	sessionService "github.com/leaveport/leaveport-backend-go/internal/service/session"
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

	profileRepo := postgresql.NewProfileRepository(db)
	sessionRepo := postgresql.NewSessionRepository(db)
	leaveStoreRepo := postgresql.NewLeaveStoreRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	MicrosoftService := oauth.NewMicrosoftService(
		cfg.OAuth2Microsoft.ClientID,
		cfg.OAuth2Microsoft.ClientSecret,
		cfg.OAuth2Microsoft.RedirectURL,
		cfg.OAuth2Microsoft.TenantID,
		cfg.OAuth2Microsoft.BaseScopes,
		cfg.OAuth2Microsoft.CalendarScope,
		cfg.Graph.BaseURL,
	)
	graphClient := graph.NewHTTPClient(cfg.Graph.BaseURL, cfg.Graph.Timeout)

	profileSvc := profileService.NewProfileService(profileRepo, cfg.Profile.ProvisionRetryDelay)
	sessionSvc := sessionService.NewSessionService(db, sessionRepo, profileRepo, profileSvc, JWTService, MicrosoftService)
	leaveSvc := leaveService.NewLeaveService(leaveStoreRepo)
	calendarSvc := calendarService.NewCalendarService(leaveStoreRepo, sessionRepo, graphClient, MicrosoftService, time.Local)
	directorySvc := directoryService.NewDirectoryService(profileRepo, sessionRepo)

	// Date-derived state rolls over at local midnight without a restart.
	refresher := cron.NewMidnightRefresher(time.Local, calendarSvc.RefreshToday)
	refresher.Start()
	defer refresher.Stop()

	authHandler := appHTTP.NewAuthHandler(JWTService, sessionSvc)
	profileHandler := appHTTP.NewProfileHandler(profileSvc)
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc, profileSvc)
	calendarHandler := appHTTP.NewCalendarHandler(calendarSvc)
	adminHandler := appHTTP.NewAdminHandler(directorySvc)

	router := appHTTP.NewRouter(
		cfg,
		JWTService,
		authHandler,
		profileHandler,
		leaveHandler,
		calendarHandler,
		adminHandler,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.App.ReadTimeout,
		WriteTimeout: cfg.App.WriteTimeout,
	}

	fmt.Printf("Server running at http://localhost%s\n", server.Addr)
	if err := server.ListenAndServe(); err != nil {
		fmt.Println("Server error:", err)
	}
}
