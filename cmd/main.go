package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"memorial-records-server/config"
	_ "memorial-records-server/docs"
	"memorial-records-server/internal/handler"
	"memorial-records-server/internal/repository"
	"memorial-records-server/internal/security"
	"memorial-records-server/internal/service"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
	httpSwagger "github.com/swaggo/http-swagger"
)

// @title Memorial-records-server
// @version 1.0
// @description REST API управления жизненным циклом токенов доступа

// @host localhost:8080
func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	db, err := config.SetupDatabase(cfg.DatabaseConfig.DSN)
	if err != nil {
		log.Fatalf("Не удалось подключиться к БД: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Ошибка при закрытии БД: %v", err)
		}
	}()

	redisClient, err := config.SetupRedis(&cfg.RedisConfig)
	if err != nil {
		log.Fatalf("Ошибка подключения к Redis: %v", err)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Printf("Ошибка при закрытии Redis: %v", err)
		}
	}()

	srv, router := config.SetupServer(cfg.ServerAddr)

	hasher := security.NewTokenHasher(cfg.Token.Salt)
	generator := security.NewSecretGenerator(cfg.Token.SecretLength)

	userRepo := repository.NewUserRepository(db)
	authRepo := repository.NewAuthenticationRepository(db, hasher, generator)
	cacheRepo := repository.NewCacheRepository(redisClient, time.Duration(cfg.TTL.AuthenticationCache)*time.Second)

	userService := service.NewUserService(userRepo)
	authService := service.NewAuthenticationService(authRepo, userService, cacheRepo, generator, cfg)

	authHandler := handler.NewAuthenticationHandler(authService)
	userHandler := handler.NewUserHandler(userService)

	router.Get("/swagger/*", httpSwagger.WrapHandler)

	setupAuthRoutes(router, authHandler)
	setupUserRoutes(router, userHandler)

	runServer(ctx, srv)
}

func setupAuthRoutes(r chi.Router, h *handler.AuthenticationHandler) {
	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/", h.Login)
		r.Post("/introspect", h.Introspect)
		r.Post("/refresh", h.Refresh)
		r.Post("/revoke", h.Revoke)
		r.Get("/{identifier}", h.GetAuthentication)
		r.Delete("/{identifier}", h.Logout)
	})
}

func setupUserRoutes(r chi.Router, h *handler.UserHandler) {
	r.Route("/api/users", func(r chi.Router) {
		r.Post("/", h.RegisterUser)
	})
}

func runServer(ctx context.Context, server *http.Server) {
	serverErrors := make(chan error, 1)
	go func() {
		log.Println("сервер запущен на " + server.Addr)
		serverErrors <- server.ListenAndServe()
	}()

	signalChannel := make(chan os.Signal, 1)
	signal.Notify(signalChannel, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil {
			log.Fatalf("ошибка работы сервера: %v", err)
		}
	case sig := <-signalChannel:
		log.Printf("получен сигнал %v остановки работы сервера ", sig)
	}

	shutDownCtx, shutDownCancel := context.WithTimeout(ctx, 5*time.Second)
	defer shutDownCancel()

	if err := server.Shutdown(shutDownCtx); err != nil {
		log.Printf("ошибка при остановке сервера: %v", err)
	} else {
		log.Println("Сервер успешно остановлен")
	}
}
