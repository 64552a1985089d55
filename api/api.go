package api

import (
	"fmt"
	"growthprojection/internal/logger"
	"growthprojection/internal/repository"
	"growthprojection/internal/service"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ApiHandler struct {
	GrowthService       service.GrowthService
	PriceService        service.PriceService
	InflationRepository repository.InflationRepository
	TickerRepository    repository.TickerRepository
	CacheRepository     repository.CacheRepository
	InflationCountry    string
	ResponseTtl         time.Duration
	CorsOrigins         []string
	Logger              *zap.SugaredLogger
	// closed by CloseDependencies
	Closers []func() error
}

func (m ApiHandler) InitializeRouterEngine() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if len(m.CorsOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = m.CorsOrigins
	}
	router.Use(cors.New(corsConfig))
	router.Use(m.logRequestMiddleware)

	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(200, map[string]string{"message": "welcome to growth projection"})
	})
	router.POST("/calculate", m.calculate)
	router.GET("/api/inflation", m.getInflation)
	router.GET("/api/stocks", m.getStocks)
	router.GET("/api/stocks/search", m.searchStocks)
	router.POST("/api/prices/ingest", m.ingestPrices)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Not found",
			"details": "The requested resource was not found",
		})
	})

	return router
}

func (m ApiHandler) StartApi(port int) error {
	router := m.InitializeRouterEngine()
	return router.Run(fmt.Sprintf(":%d", port))
}

func returnErrorJson(err error, c *gin.Context) {
	returnErrorJsonCode(err, c, http.StatusInternalServerError)
}

func returnErrorJsonCode(err error, c *gin.Context, code int) {
	returnErrorJsonDetails(err, c, code, nil)
}

func returnErrorJsonDetails(err error, c *gin.Context, code int, details any) {
	lg := logger.FromContext(c)
	if code >= http.StatusInternalServerError {
		lg.Errorw("request failed", "error", err, "status", code)
	} else {
		lg.Warnw("request rejected", "error", err, "status", code)
	}

	body := gin.H{
		"error": err.Error(),
	}
	if details != nil {
		body["details"] = details
	}
	c.AbortWithStatusJSON(code, body)
}

// logRequestMiddleware tags every request with an id and attaches a
// request-scoped logger that downstream code reads with logger.FromContext
func (m ApiHandler) logRequestMiddleware(c *gin.Context) {
	base := m.Logger
	if base == nil {
		base = zap.S()
	}

	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.New().String()
	}
	lg := base.With(
		"requestID", requestID,
		"method", c.Request.Method,
		"route", c.Request.URL.Path,
	)
	c.Set(logger.ContextKey, lg)
	c.Header("X-Request-ID", requestID)

	start := time.Now()
	c.Next()

	lg.Infow(
		"request completed",
		"status", c.Writer.Status(),
		"durationMs", time.Since(start).Milliseconds(),
		"clientIP", c.ClientIP(),
	)
}
