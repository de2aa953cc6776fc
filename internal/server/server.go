package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"clubhouse/internal/auth"
	"clubhouse/internal/billing"
	"clubhouse/internal/booking"
	"clubhouse/internal/chat"
	"clubhouse/internal/config"
	"clubhouse/internal/email"
	"clubhouse/internal/event"
	"clubhouse/internal/facility"
	"clubhouse/internal/member"
	"clubhouse/internal/user"
)

type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *sqlx.DB
	config *config.Config
	email  *email.Service
}

func New(db *sqlx.DB, cfg *config.Config, emailService *email.Service) *Server {
	registerValidators()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())
	router.Use(corsMiddleware())

	userHandler := user.NewHandler(user.NewService(user.NewPostgresRepository(db), cfg.JWTSecret))

	memberService := member.NewService(member.NewRepository(db))
	memberHandler := member.NewHandler(memberService)

	facilityService := facility.NewService(facility.NewPostgresRepository(db))
	facilityHandler := facility.NewHandler(facilityService)

	bookingService := booking.NewService(booking.NewPostgresRepository(db), facility.NewPostgresRepository(db), emailService)
	bookingHandler := booking.NewHandler(bookingService)

	eventService := event.NewService(event.NewPostgresRepository(db), emailService)
	eventHandler := event.NewHandler(eventService)

	chatProvider := chat.NewClient(cfg.AnthropicAPIKey, cfg.AnthropicBaseURL, cfg.AnthropicModel)
	chatHandler := chat.NewHandler(chat.NewService(chatProvider, eventService))

	billingService := billing.NewService(billing.NewPostgresRepository(db))
	billingHandler := billing.NewHandler(billingService, cfg.StripeWebhookSecret)

	public := router.Group("/auth")
	public.Use(RateLimitMiddleware(5, 10))
	{
		public.POST("/register", userHandler.Register)
		public.POST("/login", userHandler.Login)
		public.POST("/refresh", userHandler.RefreshToken)
	}

	router.POST("/webhooks/stripe", billingHandler.Webhook)

	authMiddleware := auth.AuthMiddleware(cfg.JWTSecret)

	// Club creation needs only an authenticated user; the caller has no
	// member row yet until the club exists.
	authed := router.Group("/")
	authed.Use(authMiddleware)
	{
		authed.POST("/clubs", memberHandler.CreateClub)
	}

	membered := router.Group("/")
	membered.Use(authMiddleware, member.RequireMember(memberService))
	{
		membered.GET("/me", memberHandler.GetMe)
		membered.GET("/tiers", memberHandler.ListTiers)
		membered.GET("/facilities", facilityHandler.List)
		membered.GET("/bookings/tee-times", bookingHandler.ListTeeTimes)
		membered.POST("/bookings", bookingHandler.Create)
		membered.PATCH("/bookings/:bookingID/cancel", bookingHandler.Cancel)
		membered.GET("/bookings/my", bookingHandler.ListMine)
		membered.GET("/events", eventHandler.ListUpcoming)
		membered.POST("/events/rsvp", eventHandler.UpsertRsvp)
		membered.GET("/events/rsvp/my", eventHandler.MyRsvps)
		membered.DELETE("/events/:eventID/rsvp", eventHandler.CancelRsvp)
		membered.POST("/chat", RateLimitMiddleware(1, 5), chatHandler.Chat)
		membered.GET("/billing/status", billingHandler.Status)
	}

	admin := router.Group("/admin")
	admin.Use(authMiddleware, member.RequireMember(memberService), member.RequireAdmin())
	{
		admin.POST("/members", memberHandler.InviteMember)
		admin.POST("/facilities", facilityHandler.Create)
		admin.POST("/facilities/:facilityID/slots", facilityHandler.AddSlot)
		admin.GET("/facilities/:facilityID/slots", facilityHandler.ListSlots)
		admin.POST("/events", eventHandler.Create)
		admin.GET("/bookings", bookingHandler.ListForFacility)
	}

	router.GET("/health", Health)
	router.GET("/ready", Ready(db))
	router.GET("/metrics", Metrics())
	router.GET("/test-email", TestEmail(emailService))

	return &Server{
		router: router,
		// Built here rather than in Start so a Shutdown racing a not yet
		// started listener still marks the server closed.
		http: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		db:     db,
		config: cfg,
		email:  emailService,
	}
}

func (s *Server) Start() error {
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
