package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"linkpulse-core/internal/handler"
	"linkpulse-core/internal/model"
	"linkpulse-core/internal/payment"
	"linkpulse-core/internal/server"
	"linkpulse-core/internal/service"
	"linkpulse-core/internal/service/mq"
	"linkpulse-core/internal/worker"
	"linkpulse-core/internal/worker/tasks"
	"linkpulse-core/pkg/cache"
	"linkpulse-core/pkg/config"
	"linkpulse-core/pkg/database"
	"linkpulse-core/pkg/logger"
	"linkpulse-core/pkg/validator"

	_ "linkpulse-core/docs" // swagger docs
)

// @title LinkPulse Core API
// @version 1.0
// @description Points ledger, deposits and coupon engine.
// @BasePath /
func main() {
	// 1. Config and logger
	config.Init()
	cfg := config.Global
	logger.Init(cfg.App.Env)
	defer logger.Sync()
	validator.Init()

	// 2. Postgres
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DB.Host, cfg.DB.User, cfg.DB.Password, cfg.DB.Name, cfg.DB.Port)
	db, err := database.ConnectPostgres(dsn)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	if cfg.App.Env == "development" {
		if err := db.AutoMigrate(model.AllModels()...); err != nil {
			logger.Fatal("auto migrate failed", zap.Error(err))
		}
	}

	// 3. Redis
	rdb, err := database.ConnectRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		logger.Fatal("failed to connect redis", zap.Error(err))
	}

	// 4. Outbox producer + relay
	var producer mq.Producer
	if cfg.Redis.MQType == "kafka" {
		kp := mq.NewKafkaProducer(cfg.Kafka.Brokers)
		defer kp.Close()
		producer = kp
	} else {
		producer = mq.NewRedisProducer(rdb)
	}

	relayCtx, relayCancel := context.WithCancel(context.Background())
	defer relayCancel()
	relay := service.NewRelayService(db, producer)
	go relay.Start(relayCtx)

	// 5. Task queue (client for enqueue, in-process worker server)
	taskClient := worker.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	defer taskClient.Close()

	workerSrv := worker.NewServer(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Worker.Concurrency)
	workerSrv.Start()
	defer workerSrv.Stop()

	// 6. Services. Catalog lookups go through local-over-redis caching.
	catalogCache := cache.NewMultiLevelCache(
		cache.NewMemoryCache(5*time.Minute, 10*time.Minute),
		cache.NewRedisCache(rdb),
	)
	catalogSvc := service.NewCatalogService(db, catalogCache)
	couponSvc := service.NewCouponService(db, cfg.Billing.UniversalCoupon)
	ledgerSvc := service.NewLedgerService(db)
	depositSvc := service.NewDepositService(db, catalogSvc, couponSvc, ledgerSvc)
	pointsSvc := service.NewPointsService(db, ledgerSvc)
	indexSvc := service.NewIndexService(db, pointsSvc, cfg.Billing.IndexPointsPerURL)
	authSvc := service.NewAuthService(db, cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLMins)*time.Minute)

	// Receipt delivery rides the task queue after the settlement commits.
	depositSvc.OnSettled(func(dep *model.Deposit, points int64) {
		task, err := tasks.NewReceiptDeliveryTask(dep.ID, dep.UserID, dep.OrderCode, points)
		if err != nil {
			logger.Error("receipt task build failed", zap.Error(err))
			return
		}
		if _, err := taskClient.Enqueue(task); err != nil {
			logger.Error("receipt task enqueue failed",
				zap.String("order_code", dep.OrderCode), zap.Error(err))
		}
	})

	// 7. Payment adapters
	bankAdapter := payment.NewBankAdapter(depositSvc, cfg.Billing.BankWebhookSecret)
	paypalAdapter := payment.NewPayPalAdapter(depositSvc, cfg.Billing.PayPalWebhookSecret)
	vietqrAdapter := payment.NewVietQRAdapter(depositSvc, cfg.Billing.VietQRWebhookSecret)

	// 8. Housekeeping cron
	cronSvc := service.NewCronService(db, rdb, time.Duration(cfg.Billing.OrderTTLMins)*time.Minute)
	cronSvc.Start()
	defer cronSvc.Stop()

	// 9. HTTP
	router := server.NewHTTPRouter(server.Handlers{
		Auth:    handler.NewAuthHandler(authSvc),
		Deposit: handler.NewDepositHandler(depositSvc, catalogSvc),
		Points:  handler.NewPointsHandler(ledgerSvc, indexSvc),
		Payment: handler.NewPaymentHandler(bankAdapter, paypalAdapter, vietqrAdapter),
	}, authSvc)

	app := server.New(server.Config{HttpPort: cfg.App.HttpPort}, router)
	app.Run()
}
