package api

import (
	"commodityforecast/internal/chart"
	"commodityforecast/internal/domain"
	"commodityforecast/internal/logger"
	"commodityforecast/internal/metrics"
	"commodityforecast/internal/repository"
	l2_service "commodityforecast/internal/service/l2"
	l3_service "commodityforecast/internal/service/l3"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type ApiHandler struct {
	// only set when the dataset is loaded from postgres
	Db                         *sql.DB
	HistoricalRecordRepository repository.HistoricalRecordRepository
	ForecastService            l2_service.ForecastService
	VolumeService              l3_service.VolumeService
	ChartRenderer              chart.Renderer
	Metrics                    *metrics.Metrics
	// served on /metrics when set
	Gatherer prometheus.Gatherer
}

func (m ApiHandler) InitializeRouterEngine() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.Default())
	router.Use(m.logRequestMiddleware)

	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(200, map[string]string{"message": "welcome to the commodity forecast api"})
	})
	router.GET("/commodities", m.listCommodities)
	router.POST("/predict", m.predict)
	router.POST("/visualize", m.visualize)
	router.POST("/volumesTraded", m.volumesTraded)
	router.POST("/volumesTraded/totals", m.volumesTradedTotals)

	if m.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(m.Gatherer, promhttp.HandlerOpts{})))
	}

	return router
}

func (m ApiHandler) StartApi(port int) error {
	return m.InitializeRouterEngine().Run(fmt.Sprintf(":%d", port))
}

// errorStatusCode maps the domain error taxonomy onto http codes
func errorStatusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrParse), errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrData):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func returnErrorJson(err error, c *gin.Context) {
	returnErrorJsonCode(err, c, errorStatusCode(err))
}

func returnErrorJsonCode(err error, c *gin.Context, code int) {
	log := logger.FromContext(c.Request.Context())
	if code >= 500 {
		log.Errorw("request failed", "error", err.Error(), "status", code)
	} else {
		log.Infow("request rejected", "error", err.Error(), "status", code)
	}
	c.AbortWithStatusJSON(code, gin.H{
		"error": err.Error(),
	})
}

func (m ApiHandler) logRequestMiddleware(c *gin.Context) {
	requestID := uuid.New()
	log := zap.S().With(
		"requestId", requestID.String(),
		"method", c.Request.Method,
		"route", c.Request.URL.Path,
	)
	profile, endProfile := domain.NewProfile()
	ctx := logger.NewContext(c.Request.Context(), log)
	c.Request = c.Request.WithContext(domain.NewContextWithProfile(ctx, profile))
	c.Header("X-Request-Id", requestID.String())

	start := time.Now().UTC()
	c.Next()
	elapsed := time.Since(start)
	endProfile()

	route := c.FullPath()
	if route == "" {
		route = "unmatched"
	}
	status := c.Writer.Status()
	m.Metrics.ObserveRequest(route, strconv.Itoa(status), elapsed)

	log.Infow(
		"handled request",
		"status", status,
		"durationMs", elapsed.Milliseconds(),
		"ip", c.ClientIP(),
		"profile", profile,
	)
}
