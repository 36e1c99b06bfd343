package main

import (
	"context"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/massimodamico86-art/bizscreen-sub004/internal/config"
	"github.com/massimodamico86-art/bizscreen-sub004/internal/database"
	httpapi "github.com/massimodamico86-art/bizscreen-sub004/internal/http"
	"github.com/massimodamico86-art/bizscreen-sub004/internal/logger"
	mqttpub "github.com/massimodamico86-art/bizscreen-sub004/internal/mqtt"
	"github.com/massimodamico86-art/bizscreen-sub004/internal/repository"
	"github.com/massimodamico86-art/bizscreen-sub004/internal/resolver"
	"github.com/massimodamico86-art/bizscreen-sub004/internal/service"
	"github.com/massimodamico86-art/bizscreen-sub004/internal/store"
)

// systemRand 进程级随机源；math/rand 顶层函数并发安全
type systemRand struct{}

func (systemRand) Float64() float64 { return rand.Float64() }

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format, "signage-player")
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer log.Sync()

	log.Info("Starting signage-player service")

	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close(db)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()
	{
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Warn("Redis unavailable, presence and variant cache degraded", zap.Error(err))
		}
		cancel()
	}
	kv := store.NewRedisKV(redisClient)
	presence := store.NewPresence(kv, store.DefaultPresenceTTL)

	// Repositories
	devicesRepo := repository.NewPostgresDevicesRepo(db)
	groupsRepo := repository.NewPostgresGroupsRepo(db)
	scenesRepo := repository.NewPostgresScenesRepo(db)
	contentRepo := repository.NewPostgresContentRepo(db)
	schedulesRepo := repository.NewPostgresSchedulesRepo(db)
	campaignsRepo := repository.NewPostgresCampaignsRepo(db)
	emergencyRepo := repository.NewPostgresEmergencyRepo(db)

	// 语言变体解析（外部协作服务，未配置时跳过变体替换）
	var langResolver resolver.LanguageResolver
	if cfg.Language.HTTPAddress != "" {
		client := service.NewLanguageVariantClient(
			cfg.Language.HTTPAddress,
			time.Duration(cfg.Language.TimeoutSec)*time.Second,
			log,
		)
		langResolver = service.NewCachedLanguageResolver(
			client,
			kv,
			time.Duration(cfg.Language.CacheTTLSec)*time.Second,
			log,
		)
	}

	// MQTT refresh 提示（可选）
	var notifier service.RefreshNotifier
	var refreshPub *mqttpub.RefreshPublisher
	if cfg.MQTT.Enabled {
		refreshPub, err = mqttpub.NewRefreshPublisher(&cfg.MQTT, log)
		if err != nil {
			log.Warn("MQTT unavailable, refresh hints disabled", zap.Error(err))
		} else {
			notifier = refreshPub
			defer refreshPub.Close()
		}
	}
	emergencyStore := service.NewNotifyingEmergencyStore(emergencyRepo, notifier, log)

	res := resolver.New(
		scenesRepo,
		schedulesRepo,
		campaignsRepo,
		emergencyStore,
		langResolver,
		systemRand{},
		log,
	)

	playerSvc := service.NewPlayerService(
		devicesRepo,
		groupsRepo,
		contentRepo,
		res,
		presence,
		log,
		nil,
	)

	router := httpapi.NewRouter(log)
	router.RegisterPlayerRoutes(httpapi.NewPlayerHandler(playerSvc, log))

	server := service.NewServer(cfg.HTTP.Addr, router, log)
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down signage-player service")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Stop(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}
	log.Info("signage-player service stopped")
}
