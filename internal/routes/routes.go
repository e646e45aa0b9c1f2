package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/wiissal/take-a-chef/internal/audit"
	"github.com/wiissal/take-a-chef/internal/auth"
	"github.com/wiissal/take-a-chef/internal/config"
	"github.com/wiissal/take-a-chef/internal/handlers"
	"github.com/wiissal/take-a-chef/internal/infra/cache"
	infraRepo "github.com/wiissal/take-a-chef/internal/infra/repository"
	"github.com/wiissal/take-a-chef/internal/middleware"
	"github.com/wiissal/take-a-chef/internal/timezone"
	ucAccount "github.com/wiissal/take-a-chef/internal/usecase/account"
	ucBooking "github.com/wiissal/take-a-chef/internal/usecase/booking"
	ucChef "github.com/wiissal/take-a-chef/internal/usecase/chef"
	ucRating "github.com/wiissal/take-a-chef/internal/usecase/rating"
	ucReview "github.com/wiissal/take-a-chef/internal/usecase/review"
	"github.com/wiissal/take-a-chef/internal/validators"
)

// Deps are the process-wide singletons the router is built from.
// Redis and Audit may be nil.
type Deps struct {
	DB     *gorm.DB
	Config *config.Config
	Redis  *redis.Client
	Audit  *audit.Dispatcher
	Log    zerolog.Logger

	// BcryptCost overrides bcrypt.DefaultCost when positive.
	BcryptCost int
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(
		middleware.RequestID(),
		middleware.Recovery(d.Log),
		middleware.AccessLog(d.Log),
		middleware.Metrics(),
		middleware.CORSMiddleware(),
		middleware.ExposeErrors(cfg.IsDevelopment()),
	)

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	profileRepo := infraRepo.NewProfileGormRepository(d.DB)
	userRepo := infraRepo.NewUserGormRepository(d.DB)
	bookingRepo := infraRepo.NewBookingGormRepository(d.DB)
	reviewRepo := infraRepo.NewReviewGormRepository(d.DB, cfg.TxMaxRetries)
	ratingRepo := infraRepo.NewRatingGormRepository(d.DB, cfg.TxMaxRetries)

	chefCache := cache.NewChefCache(d.Redis, cfg.ChefCacheTTL)
	limiter := cache.NewRateLimiter(d.Redis, cfg.RateLimitRequests, cfg.RateLimitWindow)

	tokens := auth.NewIssuer(cfg.JWTSecret, cfg.JWTTTL)
	auditLogger := audit.New(d.DB)
	loc := timezone.Location(cfg.Timezone)

	var checkDomain func(string) bool
	if cfg.CheckEmailDomain {
		checkDomain = validators.NewEmailDomainChecker().Valid
	}
	bcryptCost := d.BcryptCost
	if bcryptCost <= 0 {
		bcryptCost = bcrypt.DefaultCost
	}

	// ======================================================
	// USE CASES
	// ======================================================
	aggregator := ucRating.NewAggregator(ratingRepo, d.Log)

	createBookingUC := ucBooking.NewCreateBooking(bookingRepo, d.Audit, loc)
	listBookingsUC := ucBooking.NewListBookings(bookingRepo)
	getBookingUC := ucBooking.NewGetBooking(bookingRepo)
	updateBookingUC := ucBooking.NewUpdateBookingStatus(bookingRepo, d.Audit)
	cancelBookingUC := ucBooking.NewCancelBooking(bookingRepo, d.Audit)

	createReviewUC := ucReview.NewCreateReview(reviewRepo, aggregator, chefCache, d.Audit, d.Log)
	listReviewsUC := ucReview.NewListChefReviews(reviewRepo)

	chefSummaryUC := ucChef.NewGetChefSummary(profileRepo, chefCache, d.Log)

	registerUC := ucAccount.NewRegister(userRepo, tokens, bcryptCost, checkDomain)
	loginUC := ucAccount.NewLogin(userRepo, tokens)
	meUC := ucAccount.NewGetMe(userRepo, profileRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(registerUC, loginUC)
	meHandler := handlers.NewMeHandler(meUC, auditLogger)
	chefHandler := handlers.NewChefHandler(chefSummaryUC)
	reviewHandler := handlers.NewReviewHandler(createReviewUC, listReviewsUC)
	bookingHandler := handlers.NewBookingHandler(
		createBookingUC,
		listBookingsUC,
		getBookingUC,
		updateBookingUC,
		cancelBookingUC,
	)

	throttle := middleware.RateLimit(limiter, d.Log)

	// ======================================================
	// OPS
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.POST("/auth/register", throttle, authHandler.Register)
		api.POST("/auth/login", throttle, authHandler.Login)

		api.GET("/chefs/:id", chefHandler.Get)
		api.GET("/chefs/:id/reviews", reviewHandler.ListForChef)

		// ------------------------------
		// AUTHENTICATED
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(tokens))
		{
			secured.GET("/me", meHandler.GetMe)
			secured.GET("/me/activity", meHandler.Activity)

			secured.POST("/bookings", throttle, bookingHandler.Create)
			secured.GET("/bookings", bookingHandler.List)
			secured.GET("/bookings/:id", bookingHandler.Get)
			secured.PUT("/bookings/:id/status", throttle, bookingHandler.UpdateStatus)
			secured.DELETE("/bookings/:id", throttle, bookingHandler.Cancel)

			secured.POST("/reviews", throttle, reviewHandler.Create)
		}
	}
}
