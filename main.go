package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"collegesphere/config"
	"collegesphere/db"
	"collegesphere/mailer"
	"collegesphere/middlewares"
	"collegesphere/models"
	"collegesphere/routes"
	"collegesphere/utils"
)

func main() {
	cfg := config.Load()
	utils.ConfigureTokens(cfg.JWTSecret, cfg.TokenExpiry)

	// Postgres: users + registrations
	sqldb, err := db.Open(cfg.PostgresDSN)
	if err != nil {
		log.Fatal("postgres:", err)
	}
	defer sqldb.Close()

	// Mongo: events + colleges
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	mg, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("mongo.Connect:", err)
	}
	if err := mg.Ping(ctx, nil); err != nil {
		log.Fatal("mongo ping:", err)
	}
	defer func() { _ = mg.Disconnect(context.Background()) }()

	eventsCol := mg.Database(cfg.MongoDB).Collection("events")
	collegesCol := mg.Database(cfg.MongoDB).Collection("colleges")
	if err := models.EnsureEventIndexes(ctx, eventsCol); err != nil {
		log.Printf("[warn] event indexes: %v", err)
	}
	if err := models.EnsureCollegeIndexes(ctx, collegesCol); err != nil {
		log.Printf("[warn] college indexes: %v", err)
	}

	// Redis: response cache + quotas
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	inv := utils.NewCacheInvalidator(rdb)

	// Notifications
	var m mailer.Mailer = mailer.LogMailer{}
	if cfg.SendgridAPIKey != "" {
		m = mailer.NewSendgrid(cfg.SendgridAPIKey, cfg.SendgridFrom, cfg.FromName)
	}
	notify := mailer.NewNotifier(m)

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		log.Fatal("upload dir:", err)
	}

	server := gin.Default()
	server.Use(middlewares.ResponseCache(rdb, 30*time.Second))
	server.Static("/uploads", cfg.UploadDir)

	routes.RegisterRoutes(server, routes.Deps{
		Users:     models.NewSQLUserRepository(sqldb),
		Colleges:  models.NewMongoCollegeRepository(collegesCol),
		Events:    models.NewMongoEventRepository(eventsCol),
		Regs:      models.NewSQLRegistrationRepository(sqldb),
		Notify:    notify,
		RDB:       rdb,
		Inv:       inv,
		UploadDir: cfg.UploadDir,
	})

	if err := server.Run(":" + cfg.Port); err != nil {
		log.Fatal("gin.Run:", err)
	}
}
