package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"garderob/internal/repository"
	"garderob/internal/service"
)

type Server struct {
	engine       *gin.Engine
	categories   *service.CategoryService
	sets         *service.SetService
	orders       *service.OrderService
	availability *service.AvailabilityService
	reports      *service.ReportService
	uploadDir    string
}

func NewServer(
	categories *service.CategoryService,
	sets *service.SetService,
	orders *service.OrderService,
	availability *service.AvailabilityService,
	reports *service.ReportService,
	uploadDir string,
) *Server {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	s := &Server{
		engine:       r,
		categories:   categories,
		sets:         sets,
		orders:       orders,
		availability: availability,
		reports:      reports,
		uploadDir:    uploadDir,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Engine() *gin.Engine { return s.engine }

func (s *Server) registerRoutes() {
	// Swagger UI
	s.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// uploaded set photos
	s.engine.Static("/uploads", s.uploadDir)

	v1 := s.engine.Group("/api/v1")
	{
		categories := v1.Group("/categories")
		categories.POST("", s.createCategory)
		categories.GET("", s.listCategories)
		categories.GET(":id", s.getCategory)
		categories.PUT(":id", s.updateCategory)
		categories.DELETE(":id", s.deleteCategory)

		sets := v1.Group("/clothing-sets")
		sets.POST("", s.createSet)
		sets.GET("", s.listSets)
		sets.GET(":id", s.getSet)
		sets.PUT(":id", s.updateSet)
		sets.DELETE(":id", s.deleteSet)
		sets.POST(":id/check-availability", s.checkSetAvailability)

		v1.POST("/availability/check", s.checkAvailability)

		orders := v1.Group("/orders")
		orders.POST("", s.createOrder)
		orders.GET("", s.listOrders)
		orders.GET(":id", s.getOrder)
		orders.PATCH(":id/status", s.updateOrderStatus)

		v1.GET("/dashboard/stats", s.dashboardStats)
		v1.GET("/calendar/events", s.calendarEvents)
	}
}

func parseID(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

// parseDate даты ходят по проводу строками YYYY-MM-DD: закрытые интервалы
// подневной аренды, время суток смысла не имеет
func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrCategoryInUse):
		return http.StatusConflict
	case errors.Is(err, repository.ErrDuplicateName):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError: нехватка инвентаря отдаётся с деталями позиции,
// чтобы вызывающий мог поправить заявку и повторить
func respondError(c *gin.Context, err error) {
	var inv *service.InsufficientInventoryError
	if errors.As(err, &inv) {
		c.JSON(http.StatusConflict, gin.H{
			"error":           inv.Error(),
			"clothing_set_id": inv.ClothingSetID,
			"available":       inv.Available,
			"requested":       inv.Requested,
		})
		return
	}
	c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
}
