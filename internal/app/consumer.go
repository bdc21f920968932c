package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go-logistics/internal/delivery"
	"go-logistics/internal/events"
	"go-logistics/internal/hr"
	"go-logistics/internal/messaging/kafka/consumer"
	"go-logistics/internal/notification"
	"go-logistics/internal/shared/connection"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer hosts the Kafka consumer loops: payroll profile
// provisioning, delivery report generation and notification fan-out.
func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	hrRepo := hr.NewRepository(gormDB)
	profileService := hr.NewProfileService(sqlDB, hrRepo)

	deliveryRepo := delivery.NewRepository(gormDB)
	reportRepo := delivery.NewReportRepository(gormDB)
	reportService := delivery.NewReportService(deliveryRepo, reportRepo)

	notificationRepo := notification.NewRepository(gormDB)
	notificationService := notification.NewService(notificationRepo)

	newReader := func(topic, group string) *kafkago.Reader {
		return kafkago.NewReader(kafkago.ReaderConfig{
			Brokers:        []string{kafkaBroker},
			Topic:          topic,
			GroupID:        group,
			CommitInterval: 0,
			StartOffset:    kafkago.FirstOffset,
		})
	}

	lifecycleReader := newReader(events.EmployeeCreatedTopic, "go-logistics-payroll-profile")
	defer lifecycleReader.Close()

	reportReader := newReader(events.DeliveryReportRequestedTopic, "go-logistics-delivery-report")
	defer reportReader.Close()

	statusReader := newReader(events.DeliveryStatusChangedTopic, "go-logistics-delivery-notification")
	defer statusReader.Close()

	settlementReader := newReader(events.PaymentSettledTopic, "go-logistics-payment-notification")
	defer settlementReader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumeEmployeeLifecycle(ctx, lifecycleReader, profileService, logger)
	go consumer.ConsumeDeliveryReportRequested(ctx, reportReader, reportService, logger)
	go consumer.ConsumeDeliveryStatusChanged(ctx, statusReader, notificationService, logger)
	go consumer.ConsumePaymentSettled(ctx, settlementReader, notificationService, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
