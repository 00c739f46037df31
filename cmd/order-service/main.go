package main

import (
	"context"
	"log"
	"os"

	"go.opentelemetry.io/otel"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"orderflow/internal/pkg/bootstrap"
	"orderflow/internal/pkg/logger"
	"orderflow/internal/pkg/mq"
	"orderflow/internal/pkg/redis"
	"orderflow/internal/service/order/application"
	"orderflow/internal/service/order/domain"
	"orderflow/internal/service/order/domain/port"
	"orderflow/internal/service/order/infrastructure"
	"orderflow/internal/service/order/interfaces"
)

const (
	serviceName = "order-service"
	servicePort = 8081
)

// main 函数是应用的"组装根" (Composition Root)：
// 创建并组装所有依赖项，然后启动应用。
func main() {
	bootstrap.Init()
	logger.Init(serviceName)
	cfg := bootstrap.GetCurrentConfig()

	// 1. 存储
	db, err := gorm.Open(mysql.Open(cfg.Infra.Mysql.DSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("FATAL: failed to connect to mysql: %v", err)
	}
	if err := db.AutoMigrate(&infrastructure.OrderModel{}); err != nil {
		log.Fatalf("FATAL: failed to migrate order schema: %v", err)
	}
	orderRepo := infrastructure.NewGormOrderRepository(db)

	// 2. 快照缓存：默认进程内，多实例部署时切到 redis
	var cache port.SnapshotCache
	switch cfg.App.OrderCacheBackend {
	case "redis":
		redisClient, err := redis.NewClient(cfg.Infra.Redis.Addr)
		if err != nil {
			log.Fatalf("FATAL: failed to initialize redis client: %v", err)
		}
		defer redisClient.Close()
		cache = infrastructure.NewRedisSnapshotCache(redisClient)
	default:
		cache = infrastructure.NewMemorySnapshotCache()
	}

	// 3. 事件通道
	createdWriter := mq.NewKafkaWriter(cfg.Infra.Kafka.Brokers, domain.OrderCreatedTopic)
	producer := infrastructure.NewOrderProducerAdapter(createdWriter)
	defer producer.Close()

	tracer := otel.Tracer(serviceName)
	appSvc := application.NewOrderApplicationService(orderRepo, cache, producer, tracer)

	// 4. 结果应用消费者
	resultReader := mq.NewKafkaReader(
		cfg.Infra.Kafka.Brokers,
		domain.OrderResultTopic,
		getEnv("ORDER_RESULT_CONSUMER_GROUP", "order-result-applier"),
	)
	resultConsumer := interfaces.NewResultConsumerAdapter(resultReader, appSvc)

	consumerCtx, cancelConsumer := context.WithCancel(context.Background())
	resultConsumer.Start(consumerCtx)
	defer func() {
		cancelConsumer()
		resultConsumer.Stop(context.Background())
	}()

	// 5. HTTP 入口 + 通用启动/关停
	handler := interfaces.NewOrderHandler(appSvc)
	bootstrap.StartService(bootstrap.AppInfo{
		ServiceName: serviceName,
		Port:        servicePort,
		RegisterHandlers: func(appCtx bootstrap.AppCtx) {
			handler.RegisterRoutes(appCtx.Mux)
		},
	})
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
