package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/workouts-backend-go/internal/handler"
	"github.com/jengzang/workouts-backend-go/internal/mapfeed"
	"github.com/jengzang/workouts-backend-go/internal/middleware"
	"github.com/jengzang/workouts-backend-go/internal/service"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps are the collaborators the router wires into handlers
type Deps struct {
	Session *service.Session
	Feed    *mapfeed.Hub
	Limiter *middleware.RateLimiter
	Logger  *slog.Logger
}

// SetupRouter 设置路由
func SetupRouter(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logger(deps.Logger), gin.Recovery())

	// CORS 中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Workouts Backend API is running",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	workoutHandler := handler.NewWorkoutHandler(deps.Session)
	mapHandler := handler.NewMapHandler(deps.Session)
	limit := middleware.RateLimit(deps.Limiter)

	// API 路由组
	api := r.Group("/api/v1")
	{
		// 地图
		m := api.Group("/map")
		{
			m.GET("", mapHandler.GetMap)
			m.POST("/click", limit, mapHandler.Click)
			m.POST("/position", limit, mapHandler.ReportPosition)
			m.GET("/feed", gin.WrapH(deps.Feed))
		}

		// 运动记录
		workouts := api.Group("/workouts")
		{
			workouts.GET("", workoutHandler.ListWorkouts)
			workouts.POST("", limit, workoutHandler.CreateWorkout)
			workouts.GET("/:id", workoutHandler.GetWorkout)
			workouts.GET("/:id/fit", workoutHandler.ExportWorkout)
			workouts.POST("/:id/select", limit, workoutHandler.SelectWorkout)
		}

		api.GET("/summary", workoutHandler.GetSummary)
		api.POST("/reset", limit, workoutHandler.Reset)
	}

	return r
}
