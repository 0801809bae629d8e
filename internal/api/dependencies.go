package api

import (
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"aeroclub/flightdesk/internal/common"
	"aeroclub/flightdesk/internal/db"
	"aeroclub/flightdesk/internal/db/repositories"
	"aeroclub/flightdesk/internal/metrics"
	"aeroclub/flightdesk/internal/services"
)

type Repositories struct {
	Booking     *repositories.BookingRepository
	BookingGorm *repositories.BookingGormRepository
	Aircraft    *repositories.AircraftRepository
	User        *repositories.UserRepositoryGORM
	Lesson      *repositories.LessonRepository
	Chargeable  *repositories.ChargeableRepository
	Billing     *repositories.BillingRepository
}

type Services struct {
	Cache        common.CacheInterface
	Sessions     *common.SessionService
	Availability *services.AvailabilityService
	Bookings     *services.BookingService
	Workflow     *services.WorkflowService
	Scheduler    *services.SchedulerService
	BookingView  *services.BookingViewService
	Registry     *services.RegistryService
	Billing      *services.BillingService
}

type Dependencies struct {
	Repo     *Repositories
	Services *Services
	Metrics  *metrics.MetricsRegistry
}

// InitDependencies wires the repository and service graph. The sqlx handle
// carries the scheduler's raw queries and the stored procedures, the gorm
// handle carries entity CRUD; both point at the same database.
func InitDependencies(redisClient *redis.Client, metricsReg *metrics.MetricsRegistry) (*Dependencies, error) {

	repos := &Repositories{
		Booking:     repositories.NewBookingRepository(db.DB),
		BookingGorm: repositories.NewBookingGormRepository(db.PgDB),
		Aircraft:    repositories.NewAircraftRepository(db.PgDB),
		User:        repositories.NewUserRepositoryGORM(db.PgDB),
		Lesson:      repositories.NewLessonRepository(db.PgDB),
		Chargeable:  repositories.NewChargeableRepository(db.PgDB),
		Billing:     repositories.NewBillingRepository(db.DB),
	}

	var cacheSvc common.CacheInterface = common.NewCacheService(60, 600)
	if redisClient != nil {
		if redisCache, err := common.NewRedisCacheService(redisClient); err == nil {
			cacheSvc = redisCache
		}
	}

	location := time.Local
	if tz := os.Getenv("CLUB_TIMEZONE"); tz != "" {
		if loc, err := time.LoadLocation(tz); err == nil {
			location = loc
		}
	}

	availability := services.NewAvailabilityService(repos.Booking, metricsReg)
	registry := services.NewRegistryService(repos.Aircraft, repos.User, repos.Lesson, repos.Chargeable, cacheSvc)

	signerKey := []byte(os.Getenv("URL_SIGNING_SECRET"))
	var signer services.LinkSigner
	if len(signerKey) > 0 && redisClient != nil {
		signer = common.NewURLSignerService(signerKey, redisClient)
	}
	baseURL := os.Getenv("PUBLIC_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	svcs := &Services{
		Cache:        cacheSvc,
		Sessions:     common.NewSessionService(redisClient),
		Availability: availability,
		Bookings:     services.NewBookingService(repos.BookingGorm, repos.Lesson, availability, location, metricsReg),
		Workflow:     services.NewWorkflowService(repos.BookingGorm, repos.Aircraft, repos.Lesson, repos.Billing, metricsReg),
		Scheduler:    services.NewSchedulerService(repos.Booking, repos.BookingGorm, registry, availability, cacheSvc, metricsReg),
		BookingView:  services.NewBookingViewService(repos.BookingGorm, repos.Aircraft, repos.User, repos.Lesson),
		Registry:     registry,
		Billing:      services.NewBillingService(repos.Billing, signer, baseURL),
	}

	return &Dependencies{
		Repo:     repos,
		Services: svcs,
		Metrics:  metricsReg,
	}, nil
}
