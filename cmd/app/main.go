package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"tripflow/cmd/fx/agent_fx"
	"tripflow/cmd/fx/controllers_fx"
	"tripflow/cmd/fx/core_fx"
	"tripflow/cmd/fx/db_fx"
	"tripflow/cmd/fx/planner_fx"
	"tripflow/cmd/fx/session_fx"
	"tripflow/internal/api/controllers"
	"tripflow/internal/config"
	"tripflow/internal/infra"
	"tripflow/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	app := fx.New(
		core_fx.Module,
		db_fx.Module,
		agent_fx.Module,
		planner_fx.Module,
		session_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine, cfg config.Config, db *gorm.DB) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Printf("Starting HTTP server at :%s", cfg.HTTP.Port)
				if err := engine.Run(":" + cfg.HTTP.Port); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			infra.ClosePostgresql(db)
			return nil
		},
	})
}

func ProvideRouter(
	chatController *controllers.ChatController,
	plannerController *controllers.PlannerController,
	sessionController *controllers.SessionController) *gin.Engine {

	r := gin.Default()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.TraceIDMiddleware())

	RegisterRoutes(r, chatController, plannerController, sessionController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	chatController *controllers.ChatController,
	plannerController *controllers.PlannerController,
	sessionController *controllers.SessionController) {

	r.POST("/chat", chatController.StreamChat)

	itineraries := r.Group("/itineraries")
	itineraries.POST("/generate", plannerController.GenerateItinerary)
	itineraries.POST("/resume", plannerController.ResumeItinerary)
	itineraries.POST("/update", plannerController.UpdateItinerary)
	itineraries.POST("/pdf", plannerController.RenderPDF)

	r.POST("/destinations/detect", plannerController.DetectDestinations)
	r.POST("/destinations/images", plannerController.DestinationImages)
	r.POST("/blogs/scrape", plannerController.ScrapeBlog)

	sessions := r.Group("/sessions")
	sessions.GET("", sessionController.ListSessions)
	sessions.PUT("/:name", sessionController.SaveSession)
	sessions.GET("/:name", sessionController.LoadSession)
	sessions.DELETE("/:name", sessionController.DeleteSession)
}
