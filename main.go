package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	_ "colendar/docs"
	"colendar/internal/auth"
	"colendar/internal/handlers"
	"colendar/internal/models"
	"colendar/internal/response"
	"colendar/internal/storage"
	"colendar/internal/tasks"
	"colendar/internal/ws"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @Title						Colendar — персональный календарь
// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
func main() {
	key := os.Getenv("ENV_CHEK")
	if key == "" {
		fmt.Println("Подключение к .env")
		err := godotenv.Load()
		if err != nil {
			log.Fatal("Ошибка получения .env")
		}
	}

	storage.ConnectDatabase()

	if err := storage.DB.AutoMigrate(&models.User{}, &models.Event{}, &models.EventItem{}); err != nil {
		log.Fatal("Ошибка при миграции... ", err.Error())
	}

	storage.InitRedis()

	tasks.InitScheduler()

	go ws.HubInstance.Run()

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, response.ErrorResponse{
			Code:    "METHOD_NOT_ALLOWED",
			Message: "Метод не поддерживается для данного маршрута",
		})
	})

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/login", handlers.Login)
		authGroup.POST("/register", handlers.Register)
		authGroup.POST("/refresh", handlers.RefreshToken)
	}

	api := r.Group("/api", auth.AuthMiddleware())
	{
		api.GET("/events", handlers.ListEventsHandler)
		api.POST("/events", handlers.CreateEventHandler)
		api.PUT("/events", handlers.ReplaceEventHandler)
		api.GET("/events/:id", handlers.GetEventHandler)
		api.PATCH("/events/:id", handlers.UpdateEventHandler)
		api.DELETE("/events/:id", handlers.DeleteEventHandler)

		api.GET("/items", handlers.ListItemsHandler)
		api.POST("/items", handlers.CreateItemHandler)
		api.PATCH("/items/:id", handlers.UpdateItemHandler)
		api.DELETE("/items/:id", handlers.DeleteItemHandler)

		api.GET("/export/event/:id", handlers.ExportEventHandler)
		api.GET("/export/event/:id/ics", handlers.ExportEventICSHandler)
		api.POST("/import", handlers.ImportHandler)

		api.POST("/maintenance/strip-item-title-dates", handlers.StripItemTitleDatesHandler)

		api.GET("/holidays", handlers.GetHolidaysHandler)

		api.GET("/ws", ws.CalendarWebSocketHandler)
	}

	if err := r.Run(":8080"); err != nil {
		log.Fatal("Ошибка запуска сервера...", err.Error())
	}
}
