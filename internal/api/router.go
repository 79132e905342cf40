package api

import (
	"net/http"

	"OwlTurf/internal/config"
	"OwlTurf/internal/interfaces"
	"OwlTurf/internal/metrics"
	"OwlTurf/internal/middleware"
	"OwlTurf/internal/service"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const apiVersion = "1.0.0"

// Deps 构建路由所需的依赖，由 main 注入
type Deps struct {
	Config  *config.Config
	DB      *gorm.DB
	Store   interfaces.FileStore
	Limiter *middleware.RateLimiter // nil 表示不限流
	Logger  *logrus.Logger
}

// NewRouter 注册中间件与全部 API 路由
func NewRouter(d Deps) *gin.Engine {
	RegisterValidators()

	cfg := d.Config
	r := gin.New()
	r.MaxMultipartMemory = 32 << 20
	r.Use(gin.Recovery(), middleware.RequestLogger(d.Logger), middleware.Metrics(), middleware.CORS(cfg.Server.CORSOrigins))
	if d.Limiter != nil {
		r.Use(d.Limiter.Handler())
	}

	// 运维接口
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "OwlTurf Sports Booking API is running",
			"version": apiVersion,
			"docs":    cfg.Server.APIPrefix,
			"health":  "/health",
		})
	})
	r.GET("/health", healthHandler(d.DB, cfg.Server.Environment, d.Logger))
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	if cfg.Server.Mode == gin.DebugMode {
		pprof.Register(r)
	}

	v1 := r.Group(cfg.Server.APIPrefix)

	userHandler := NewUserHandler(d.DB, d.Logger)
	users := v1.Group("/users")
	users.POST("", userHandler.CreateUser)
	users.GET("", userHandler.ListUsers)
	users.GET("/:user_id", userHandler.GetUser)
	users.PUT("/:user_id", userHandler.UpdateUser)
	users.DELETE("/:user_id", userHandler.DeleteUser)

	productHandler := NewProductHandler(d.DB, d.Logger)
	products := v1.Group("/products")
	products.POST("", productHandler.CreateProduct)
	products.GET("", productHandler.ListProducts)
	products.GET("/:product_id", productHandler.GetProduct)
	products.PUT("/:product_id", productHandler.UpdateProduct)
	products.DELETE("/:product_id", productHandler.DeleteProduct)

	addressHandler := NewAddressHandler(d.DB, d.Logger)
	addresses := v1.Group("/addresses/:user_id")
	addresses.POST("", addressHandler.CreateAddress)
	addresses.GET("", addressHandler.ListAddresses)
	addresses.GET("/:address_id", addressHandler.GetAddress)
	addresses.PUT("/:address_id", addressHandler.UpdateAddress)
	addresses.PUT("/:address_id/default", addressHandler.SetDefaultAddress)
	addresses.DELETE("/:address_id", addressHandler.DeleteAddress)

	cartHandler := NewCartHandler(d.DB, d.Logger)
	cart := v1.Group("/cart/:user_id")
	cart.POST("", cartHandler.AddToCart)
	cart.GET("", cartHandler.ListCart)
	cart.DELETE("", cartHandler.ClearCart)
	cart.PUT("/:item_id", cartHandler.UpdateCartItem)
	cart.DELETE("/:item_id", cartHandler.RemoveCartItem)

	bookingHandler := NewBookingHandler(d.DB, d.Logger)
	bookings := v1.Group("/bookings/:user_id")
	bookings.POST("", bookingHandler.CreateBooking)
	bookings.GET("", bookingHandler.ListBookings)
	bookings.GET("/:booking_id", bookingHandler.GetBooking)
	bookings.PUT("/:booking_id", bookingHandler.UpdateBooking)
	bookings.DELETE("/:booking_id", bookingHandler.DeleteBooking)

	walletHandler := NewWalletHandler(d.DB, d.Logger)
	wallet := v1.Group("/wallet/:user_id")
	wallet.GET("", walletHandler.GetWallet)
	wallet.POST("/transactions", walletHandler.CreateTransaction)
	wallet.GET("/transactions", walletHandler.ListTransactions)
	wallet.GET("/transactions/:transaction_id", walletHandler.GetTransaction)

	fileService := service.NewFileService(d.Store, cfg.Storage.MaxSizeMB, cfg.Storage.DefaultMaxSizeMB, d.Logger)
	fileHandler := NewFileHandler(fileService, d.Logger)
	files := v1.Group("/files")
	files.POST("/upload", fileHandler.UploadFile)
	files.GET("/*path", fileHandler.GetFile)
	files.DELETE("/*path", fileHandler.DeleteFile)

	venueHandler := NewVenueHandler(d.DB, d.Logger)
	venues := v1.Group("/venues")
	venues.POST("", venueHandler.CreateVenue)
	venues.GET("", venueHandler.ListVenues)
	venues.GET("/:venue_id", venueHandler.GetVenue)
	venues.PUT("/:venue_id", venueHandler.UpdateVenue)
	venues.DELETE("/:venue_id", venueHandler.DeleteVenue)
	venues.POST("/:venue_id/images", venueHandler.AddVenueImages)

	// games/reels 第一段参数统一命名为 :id
	gameHandler := NewGameHandler(d.DB, d.Logger)
	games := v1.Group("/games")
	games.GET("", gameHandler.ListGames)
	games.GET("/user/:user_id", gameHandler.ListUserGames)
	games.POST("/:id", gameHandler.CreateGame)
	games.GET("/:id", gameHandler.GetGame)
	games.PUT("/:id", gameHandler.UpdateGame)
	games.POST("/:id/join/:user_id", gameHandler.JoinGame)
	games.POST("/:id/leave/:user_id", gameHandler.LeaveGame)
	games.DELETE("/:id/:user_id", gameHandler.CancelGame)

	reelHandler := NewReelHandler(d.DB, d.Logger)
	reels := v1.Group("/reels")
	reels.GET("", reelHandler.ListReels)
	reels.GET("/user/:user_id", reelHandler.ListUserReels)
	reels.POST("/:id", reelHandler.CreateReel)
	reels.GET("/:id", reelHandler.GetReel)
	reels.PUT("/:id", reelHandler.UpdateReel)
	reels.DELETE("/:id/:user_id", reelHandler.DeleteReel)
	reels.POST("/:id/like/:user_id", reelHandler.LikeReel)
	reels.DELETE("/:id/like/:user_id", reelHandler.UnlikeReel)
	reels.POST("/:id/comments/:user_id", reelHandler.CommentReel)
	reels.GET("/:id/comments", reelHandler.ListComments)
	reels.DELETE("/:id/comments/:comment_id/:user_id", reelHandler.DeleteComment)
	reels.POST("/:id/share/:user_id", reelHandler.ShareReel)

	return r
}

// healthHandler 健康检查，数据库不可达时返回 503
func healthHandler(db *gorm.DB, environment string, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		body := gin.H{"status": "healthy", "api_version": apiVersion, "environment": environment}
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			logger.WithError(err).Error("health check: database unreachable")
			body["status"] = "unhealthy"
			c.JSON(http.StatusServiceUnavailable, body)
			return
		}
		c.JSON(http.StatusOK, body)
	}
}
