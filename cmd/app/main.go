package main

import (
	"context"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"assinazap/cmd/fx/cadence_fx"
	"assinazap/cmd/fx/company_fx"
	"assinazap/cmd/fx/controllers_fx"
	"assinazap/cmd/fx/db_fx"
	"assinazap/cmd/fx/logger_fx"
	"assinazap/cmd/fx/subscriber_fx"
	"assinazap/cmd/fx/webhook_fx"
	"assinazap/cmd/fx/whatsapp_fx"
	"assinazap/internal/api/controllers"
	"assinazap/pkg/middleware"
)

func main() {
	_ = godotenv.Load()

	app := fx.New(
		logger_fx.Module,
		db_fx.Module,
		whatsapp_fx.Module,
		cadence_fx.Module,
		subscriber_fx.Module,
		company_fx.Module,
		webhook_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine, logger *zap.Logger) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				logger.Info("starting HTTP server", zap.String("port", port))
				if err := engine.Run(":" + port); err != nil {
					logger.Fatal("failed to start server", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	webhookController *controllers.WebhookController,
	subscriberController *controllers.SubscriberController,
	whatsAppController *controllers.WhatsAppController,
	companyController *controllers.CompanyController) *gin.Engine {

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.CORSMiddleware())

	RegisterRoutes(r, webhookController, subscriberController, whatsAppController, companyController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	webhookController *controllers.WebhookController,
	subscriberController *controllers.SubscriberController,
	whatsAppController *controllers.WhatsAppController,
	companyController *controllers.CompanyController) {

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.POST("/webhook/:provider", webhookController.Handle)
	r.GET("/consulta", subscriberController.Consulta)

	admin := r.Group("/admin")
	admin.Use(middleware.AdminAuthMiddleware())

	admin.GET("/whatsapp/config", whatsAppController.GetConfig)
	admin.PUT("/whatsapp/config", whatsAppController.UpdateConfig)

	admin.GET("/whatsapp/messages", whatsAppController.ListMessages)
	admin.POST("/whatsapp/messages", whatsAppController.CreateMessage)
	admin.PUT("/whatsapp/messages/reorder", whatsAppController.ReorderMessages)
	admin.PUT("/whatsapp/messages/:id", whatsAppController.UpdateMessage)
	admin.DELETE("/whatsapp/messages/:id", whatsAppController.DeleteMessage)

	admin.GET("/whatsapp/logs", whatsAppController.ListLogs)
	admin.GET("/webhooks/logs", webhookController.ListLogs)

	admin.PATCH("/companies/:id/status", companyController.ChangeStatus)
	admin.DELETE("/subscribers/:id", subscriberController.RemoveCorporate)
}
