package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/secure-admin/internal/config"
	"github.com/iliyamo/secure-admin/internal/database"
	"github.com/iliyamo/secure-admin/internal/handler"
	"github.com/iliyamo/secure-admin/internal/mail"
	"github.com/iliyamo/secure-admin/internal/policy"
	"github.com/iliyamo/secure-admin/internal/queue"
	"github.com/iliyamo/secure-admin/internal/repository"
	"github.com/iliyamo/secure-admin/internal/router"
	queue_publisher "github.com/iliyamo/secure-admin/internal/service"
	"github.com/iliyamo/secure-admin/internal/token"
)

func main() {
	// .env is optional; real deployments set the variables directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	issuer := token.NewIssuer(cfg.JWTSecret,
		time.Duration(cfg.AccessTTLMin)*time.Minute,
		time.Duration(cfg.ResetTTLMin)*time.Minute)
	pol := policy.New(cfg.PublicUserListing)

	users := repository.NewUserRepo(db)
	roles := repository.NewRoleRepo(db)

	// Background consumer delivering reset mail from the queue.
	sender := mail.NewSender(config.LoadMail())
	go func() {
		if err := queue.StartResetMailConsumer(sender); err != nil {
			log.Printf("reset mail consumer stopped: %v", err)
		}
	}()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; response caching disabled")
	}

	e := echo.New()
	router.RegisterRoutes(e, router.Deps{
		Auth:   handler.NewAuthHandler(cfg, users, issuer, queue_publisher.PublishPasswordReset),
		Users:  handler.NewUserHandler(cfg, users),
		Roles:  handler.NewRoleHandler(roles, users),
		Issuer: issuer,
		Policy: pol,
		Cache:  config.LoadCacheConfig(),
		Redis:  rdb,
	})

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
