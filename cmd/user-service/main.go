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
	"orderflow/internal/service/user/application"
	"orderflow/internal/service/user/domain"
	"orderflow/internal/service/user/infrastructure"
	"orderflow/internal/service/user/interfaces"
)

const (
	serviceName = "user-service"
	servicePort = 8082
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
	if err := db.AutoMigrate(&infrastructure.UserModel{}); err != nil {
		log.Fatalf("FATAL: failed to migrate user schema: %v", err)
	}
	userRepo := infrastructure.NewGormUserRepository(db)

	// 2. 出站事件通道
	resultWriter := mq.NewKafkaWriter(cfg.Infra.Kafka.Brokers, domain.OrderResultTopic)
	results := infrastructure.NewResultKafkaAdapter(resultWriter)
	defer results.Close()

	notificationWriter := mq.NewKafkaWriter(cfg.Infra.Kafka.Brokers, domain.NotificationsTopic)
	notifier := infrastructure.NewNotificationKafkaAdapter(notificationWriter)
	defer notifier.Close()

	tracer := otel.Tracer(serviceName)
	approvalSvc := application.NewApprovalService(userRepo, notifier, results, tracer)
	userSvc := application.NewUserApplicationService(userRepo, tracer)

	// 3. 审批消费者
	orderReader := mq.NewKafkaReader(
		cfg.Infra.Kafka.Brokers,
		domain.OrderCreatedTopic,
		getEnv("ORDER_CREATED_CONSUMER_GROUP", "order-approval"),
	)
	orderConsumer := interfaces.NewOrderConsumerAdapter(orderReader, approvalSvc)

	consumerCtx, cancelConsumer := context.WithCancel(context.Background())
	orderConsumer.Start(consumerCtx)
	defer func() {
		cancelConsumer()
		orderConsumer.Stop(context.Background())
	}()

	// 4. HTTP 入口 + 通用启动/关停
	handler := interfaces.NewUserHandler(userSvc)
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
