package app

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/viper"

	"github.com/greenbasket/order-svc/internal/dal/gemini"
	"github.com/greenbasket/order-svc/internal/dal/postgres"
	"github.com/greenbasket/order-svc/internal/dal/rabbitmq"
	outboxrepo "github.com/greenbasket/order-svc/internal/dal/repositories/outbox/postgres"
	"github.com/greenbasket/order-svc/internal/jaeger"
	"github.com/greenbasket/order-svc/internal/service/services/ordersvc"
	"github.com/greenbasket/order-svc/internal/service/services/promptsvc"
	httptransport "github.com/greenbasket/order-svc/internal/transport/http"
	outboxworker "github.com/greenbasket/order-svc/internal/worker/outbox"
)

// App represents the application.
type App struct {
	orderSvc       *ordersvc.OrderService
	promptSvc      *promptsvc.PromptService
	transport      *httptransport.HTTPTransport
	postgresClient *postgres.Client
	rabbitClient   *rabbitmq.Client
	outboxWorker   *outboxworker.Worker
	traceShutdown  func(ctx context.Context) error
}

// MustNewApp creates a new application.
func MustNewApp() *App {
	postgresClient := postgres.MustNewClient()

	orderSvc := ordersvc.MustNewOrderService(
		ordersvc.WithPostgresClient(postgresClient),
	)

	promptSvc := promptsvc.MustNewPromptService(
		promptsvc.WithProvider(gemini.NewClient()),
	)

	transport := httptransport.NewHTTPTransport(orderSvc, promptSvc)
	transport.RegisterRoutes()

	a := &App{
		orderSvc:       orderSvc,
		promptSvc:      promptSvc,
		transport:      transport,
		postgresClient: postgresClient,
	}

	if viper.GetBool("tracing.enabled") {
		a.traceShutdown = jaeger.MustSetup()
	}

	if viper.GetBool("rabbitmq.enabled") {
		a.rabbitClient = rabbitmq.MustNewClient()
		a.outboxWorker = outboxworker.NewWorker(
			outboxrepo.NewPostgresOutboxRepository(postgresClient.Pool()),
			a.rabbitClient,
		)
	}

	return a
}

// Run starts the application.
// Tracks interrupt signal to gracefully shut down the application.
func (a *App) Run() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	workerCtx, cancelWorker := context.WithCancel(context.Background())
	defer cancelWorker()

	if a.outboxWorker != nil {
		go a.outboxWorker.Start(workerCtx)
	}

	go func() {
		slog.Info("Starting HTTP server", "port", viper.GetString("server.http.port"))
		if err := a.transport.Run(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	<-stop
	slog.Info("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.transport.Shutdown(ctx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped gracefully")
	}

	if a.outboxWorker != nil {
		a.outboxWorker.Stop()
	}

	if a.rabbitClient != nil {
		if err := a.rabbitClient.Close(); err != nil {
			slog.Error("RabbitMQ connection close error", "error", err)
		} else {
			slog.Info("RabbitMQ connection closed gracefully")
		}
	}

	if a.traceShutdown != nil {
		if err := a.traceShutdown(ctx); err != nil {
			slog.Error("Tracer shutdown error", "error", err)
		}
	}

	a.postgresClient.Close()
	slog.Info("Database connection closed gracefully")

	slog.Info("Application shutdown complete")
}
