package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"atrium/auth"
	"atrium/config"
	"atrium/database"
	"atrium/docstore"
	"atrium/handlers"
	"atrium/middleware"
	"atrium/service"
)

func main() {
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// Create context with timeout for initial connections
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatal("Failed to connect to redis:", err)
	}
	defer redisClient.Close()

	signer := auth.NewTokenSigner(cfg.TokenSecret, cfg.TokenTTL)
	identity := auth.NewService(db, signer)
	projects := docstore.New(redisClient)
	svc := service.New(identity, db, projects)

	r := gin.Default()

	r.GET("/health", handlers.HealthCheck)

	api := r.Group("/api")
	api.POST("/signup", handlers.SignUp(svc))
	api.POST("/login", handlers.LogIn(svc))
	api.POST("/getUsersInfo", handlers.GetUsersInfo(svc))
	api.POST("/addUserInfo", handlers.AddUserInfo(svc))
	api.POST("/addAdminToProject", handlers.AddAdminToProject(svc))
	api.POST("/removeAdminFromProject", handlers.RemoveAdminFromProject(svc))

	authed := api.Group("", middleware.AuthRequired(signer))
	authed.POST("/projects", handlers.CreateProject(svc))
	authed.GET("/projects", handlers.ListProjects(svc))

	log.Println("Server starting on", cfg.Addr)
	r.Run(cfg.Addr)
}
