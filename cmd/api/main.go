package main

import (
	"fmt"
	"net/http"

	"github.com/flowhire/scheduling-backend-go/internal/config"
	appHTTP "github.com/flowhire/scheduling-backend-go/internal/handler/http"
	"github.com/flowhire/scheduling-backend-go/internal/pkg/cron"
	"github.com/flowhire/scheduling-backend-go/internal/pkg/database"
	"github.com/flowhire/scheduling-backend-go/internal/pkg/events"
	"github.com/flowhire/scheduling-backend-go/internal/pkg/jwt"
	"github.com/flowhire/scheduling-backend-go/internal/repository/postgresql"
	appointmentService "github.com/flowhire/scheduling-backend-go/internal/service/appointment"
	availabilityService "github.com/flowhire/scheduling-backend-go/internal/service/availability"
	bookingService "github.com/flowhire/scheduling-backend-go/internal/service/booking"
	bookingLinkService "github.com/flowhire/scheduling-backend-go/internal/service/bookinglink"
	candidateService "github.com/flowhire/scheduling-backend-go/internal/service/candidate"
	notificationService "github.com/flowhire/scheduling-backend-go/internal/service/notification"
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

	linkRepo := postgresql.NewBookingLinkRepository(db)
	appointmentRepo := postgresql.NewAppointmentRepository(db)
	availabilityRepo := postgresql.NewAvailabilityRepository(db)
	candidateRepo := postgresql.NewCandidateRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret)

	notificationSvc := notificationService.NewService(notificationRepo, nil)
	defer notificationSvc.Stop()

	linkSvc := bookingLinkService.NewService(linkRepo, notificationSvc, cfg.Booking, cfg.App.FrontendURL, nil)
	availabilitySvc := availabilityService.NewService(availabilityRepo, appointmentRepo, nil)
	appointmentSvc := appointmentService.NewService(appointmentRepo, candidateRepo, notificationSvc, cfg.Booking.LapseGraceHours, nil)
	bookingSvc := bookingService.NewService(db, linkRepo, appointmentRepo, availabilityRepo, linkSvc, notificationSvc, nil)

	bus := events.NewBus()
	bus.Subscribe(appointmentSvc.HandleCandidateStatusChanged)
	candidateSvc := candidateService.NewService(candidateRepo, bus, nil)

	scheduler := cron.NewScheduler()
	cron.NewAppointmentJobs(appointmentSvc, cfg.Booking.SweepInterval).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	bookingHandler := appHTTP.NewBookingHandler(linkSvc, availabilitySvc, bookingSvc)
	bookingLinkHandler := appHTTP.NewBookingLinkHandler(linkSvc)
	appointmentHandler := appHTTP.NewAppointmentHandler(appointmentSvc)
	candidateHandler := appHTTP.NewCandidateHandler(candidateSvc, notificationSvc)

	router := appHTTP.NewRouter(
		JWTService,
		cfg.App.FrontendURL,
		bookingHandler,
		bookingLinkHandler,
		appointmentHandler,
		candidateHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
