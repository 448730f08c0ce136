package api

import (
	"context"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/fedmatch/marketplace/internal/api/handler"
	"github.com/fedmatch/marketplace/internal/api/middleware"
	"github.com/fedmatch/marketplace/internal/core/domain"
	"github.com/fedmatch/marketplace/internal/core/service"
	mongodb "github.com/fedmatch/marketplace/internal/infrastructure/db/mongo"
	redisdb "github.com/fedmatch/marketplace/internal/infrastructure/db/redis"
	"github.com/fedmatch/marketplace/internal/infrastructure/queue"
)

// Options carries the router's tunables.
type Options struct {
	JWTSecret string
	TokenTTL  time.Duration
}

// NewRouter builds and returns the Echo instance with all routes registered.
// ctx bounds the lifetime of the background notice workers.
func NewRouter(ctx context.Context, db *mongo.Database, rdb *redis.Client, opts Options, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("fedmatch"))

	// --- Repositories ---
	profileRepo := mongodb.NewProfileRepository(db)
	contractorRepo := mongodb.NewContractorRepository(db)
	opportunityRepo := mongodb.NewOpportunityRepository(db)
	savedRepo := mongodb.NewSavedOpportunityRepository(db)
	bidRepo := mongodb.NewBidRepository(db)
	eventRepo := mongodb.NewEventRepository(db)
	messageRepo := mongodb.NewMessageRepository(db)

	// --- Inbox push: async fan-out in front of Redis pub/sub ---
	inbox := redisdb.NewInbox(rdb)
	noticeDispatcher := queue.NewNoticeDispatcher(0, inbox, log)
	noticeDispatcher.Start(ctx)

	// --- Services ---
	authService := service.NewAuthService(profileRepo, contractorRepo, opts.JWTSecret, opts.TokenTTL, log)
	profileService := service.NewProfileService(profileRepo, contractorRepo, log)
	contractorService := service.NewContractorService(profileRepo, contractorRepo, log)
	opportunityService := service.NewOpportunityService(opportunityRepo, savedRepo, bidRepo, log)
	savedService := service.NewSavedOpportunityService(savedRepo, opportunityRepo, log)
	bidService := service.NewBidService(bidRepo, opportunityRepo, contractorRepo, log)
	eventService := service.NewEventService(eventRepo, log)
	messageService := service.NewMessageService(messageRepo, profileRepo, noticeDispatcher, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	profileHandler := handler.NewProfileHandler(profileService)
	contractorHandler := handler.NewContractorHandler(contractorService)
	opportunityHandler := handler.NewOpportunityHandler(opportunityService, savedService)
	bidHandler := handler.NewBidHandler(bidService)
	eventHandler := handler.NewEventHandler(eventService)
	messageHandler := handler.NewMessageHandler(messageService)
	inboxHandler := handler.NewInboxHandler(inbox, log)

	authMiddleware := middleware.Auth(opts.JWTSecret)
	contractorOnly := middleware.AccountType(string(domain.AccountContractor))
	procurementOnly := middleware.AccountType(string(domain.AccountProcurement))

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Authenticated API ---
	v1 := e.Group("/v1", authMiddleware)

	v1.GET("/profiles/me", profileHandler.Me)
	v1.PUT("/profiles/me", profileHandler.Update)

	v1.GET("/contractors", contractorHandler.List)
	v1.PUT("/contractors/me", profileHandler.UpdateContractor, contractorOnly)
	v1.GET("/contractors/:id", contractorHandler.Get)

	v1.GET("/opportunities", opportunityHandler.List)
	v1.POST("/opportunities", opportunityHandler.Create, procurementOnly)
	v1.GET("/opportunities/mine", opportunityHandler.ListMine, procurementOnly)
	v1.GET("/opportunities/:id", opportunityHandler.Get)
	v1.PUT("/opportunities/:id", opportunityHandler.Update, procurementOnly)
	v1.DELETE("/opportunities/:id", opportunityHandler.Delete, procurementOnly)
	v1.POST("/opportunities/:id/save", opportunityHandler.ToggleSaved)
	v1.GET("/saved", opportunityHandler.ListSaved)

	v1.POST("/opportunities/:id/bids", bidHandler.Submit, contractorOnly)
	v1.GET("/opportunities/:id/bids", bidHandler.ListForOpportunity, procurementOnly)
	v1.GET("/bids/mine", bidHandler.ListMine, contractorOnly)
	v1.PATCH("/bids/:id/status", bidHandler.UpdateStatus, procurementOnly)

	v1.GET("/events", eventHandler.List)
	v1.GET("/events/registrations", eventHandler.ListRegistered)
	v1.GET("/events/:id", eventHandler.Get)
	v1.POST("/events/:id/register", eventHandler.Register)
	v1.DELETE("/events/:id/register", eventHandler.Unregister)

	v1.POST("/messages", messageHandler.Send)
	v1.GET("/messages/unread", messageHandler.UnreadCount)
	v1.GET("/conversations", messageHandler.ListConversations)
	v1.GET("/conversations/:id", messageHandler.GetConversation)
	v1.GET("/inbox/ws", inboxHandler.Stream)

	return e
}

// EnsureIndexes creates every collection index the repositories rely on.
// Called once at startup before the server accepts traffic.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	type indexer interface {
		EnsureIndexes(ctx context.Context) error
	}
	for _, r := range []indexer{
		mongodb.NewProfileRepository(db),
		mongodb.NewOpportunityRepository(db),
		mongodb.NewSavedOpportunityRepository(db),
		mongodb.NewBidRepository(db),
		mongodb.NewEventRepository(db),
		mongodb.NewMessageRepository(db),
	} {
		if err := r.EnsureIndexes(ctx); err != nil {
			return err
		}
	}
	return nil
}
