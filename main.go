package main

import (
	"fmt"
	"log"
	"os"
	"thevoices-backend/config"
	"thevoices-backend/models"
	"thevoices-backend/routes"
	"thevoices-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.User{},
		&models.WritingPlan{},
		&models.SentReminder{},
		&models.Notification{},
		&models.PushSubscription{},
	)
}

func main() {
	reminders := services.NewReminderService(
		services.NewGormPlanStore(config.DB),
		services.NewGormReminderLedger(config.DB),
		buildNotifier(),
	)
	if err := reminders.StartScheduler(); err != nil {
		log.Fatalf("Failed to start reminder scheduler: %v", err)
	}
	defer reminders.StopScheduler()

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}
	r := routes.SetupRouter()
	printRoutes(r)
	r.Run(":" + port)
}

func buildNotifier() services.Notifier {
	inApp := services.NewNotificationService(config.DB)
	if services.SMSEnabled() {
		log.Println("Twilio credentials found, SMS delivery enabled")
		return services.NewSMSNotifier(inApp)
	}
	return inApp
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
