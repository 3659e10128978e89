package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/viper"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	createorder "github.com/greenbasket/order-svc/internal/transport/http/create_order"
	deleteorder "github.com/greenbasket/order-svc/internal/transport/http/delete_order"
	getorder "github.com/greenbasket/order-svc/internal/transport/http/get_order"
	"github.com/greenbasket/order-svc/internal/transport/http/health"
	listorders "github.com/greenbasket/order-svc/internal/transport/http/list_orders"
	"github.com/greenbasket/order-svc/internal/transport/http/prompt"
	updateorder "github.com/greenbasket/order-svc/internal/transport/http/update_order"
	"github.com/greenbasket/order-svc/internal/service/models/order"
	"github.com/greenbasket/order-svc/pkg/http/middleware/trace"
	"github.com/greenbasket/order-svc/pkg/logger"
)

type orderService interface {
	List(ctx context.Context) ([]order.Order, error)
	Create(ctx context.Context, o order.Order) (order.Order, error)
	Get(ctx context.Context, id int64) (*order.Order, error)
	Update(ctx context.Context, o order.Order) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

type promptService interface {
	Answer(ctx context.Context, prompt string) (string, error)
	HasAPIKey() bool
}

type HTTPTransport struct {
	server    *http.Server
	router    *chi.Mux
	orderSvc  orderService
	promptSvc promptService
}

func NewHTTPTransport(orderSvc orderService, promptSvc promptService) *HTTPTransport {
	router := newRouter()
	server := newServer(router)
	return &HTTPTransport{
		server:    server,
		router:    router,
		orderSvc:  orderSvc,
		promptSvc: promptSvc,
	}
}

func (h *HTTPTransport) Run() error {
	return h.server.ListenAndServe()
}

func (h *HTTPTransport) Shutdown(ctx context.Context) error {
	return h.server.Shutdown(ctx)
}

// RegisterRoutes registers the routes for the HTTPTransport.
func (h *HTTPTransport) RegisterRoutes() {
	h.router.Route("/api", func(r chi.Router) {
		r.Get("/orders", h.listOrders)
		r.Post("/orders", h.createOrder)
		r.Get("/orders/{id}", h.getOrder)
		r.Put("/orders/{id}", h.updateOrder)
		r.Delete("/orders/{id}", h.deleteOrder)

		r.Post("/prompts", h.answerPrompt)
		r.Get("/health", h.health)

		r.Get("/docs/swagger.json", serveSwaggerSpec)
	})

	h.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/api/docs/swagger.json"),
	))

	if viper.GetString("app.env") == "production" {
		h.registerStatic()
	}
}

// registerStatic serves the prebuilt front-end for every non-API path.
func (h *HTTPTransport) registerStatic() {
	staticDir := viper.GetString("app.static_dir")
	if staticDir == "" {
		staticDir = "web/dist"
	}

	fileServer := http.FileServer(http.Dir(staticDir))
	h.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		path := filepath.Join(staticDir, filepath.Clean(r.URL.Path))
		if _, err := os.Stat(path); err != nil {
			// Unknown paths fall back to the SPA entry point.
			http.ServeFile(w, r, filepath.Join(staticDir, "index.html"))

			return
		}
		fileServer.ServeHTTP(w, r)
	})
}

func serveSwaggerSpec(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	http.ServeFile(w, r, "api/swagger.json")
}

func (h *HTTPTransport) listOrders(w http.ResponseWriter, r *http.Request) {
	listorders.ListOrders(w, r, h.orderSvc)
}

func (h *HTTPTransport) createOrder(w http.ResponseWriter, r *http.Request) {
	createorder.CreateOrder(w, r, h.orderSvc)
}

func (h *HTTPTransport) getOrder(w http.ResponseWriter, r *http.Request) {
	getorder.GetOrder(w, r, h.orderSvc)
}

func (h *HTTPTransport) updateOrder(w http.ResponseWriter, r *http.Request) {
	updateorder.UpdateOrder(w, r, h.orderSvc)
}

func (h *HTTPTransport) deleteOrder(w http.ResponseWriter, r *http.Request) {
	deleteorder.DeleteOrder(w, r, h.orderSvc)
}

func (h *HTTPTransport) answerPrompt(w http.ResponseWriter, r *http.Request) {
	prompt.AnswerPrompt(w, r, h.promptSvc)
}

func (h *HTTPTransport) health(w http.ResponseWriter, r *http.Request) {
	health.Health(w, r, h.promptSvc)
}

func newRouter() *chi.Mux {
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(logger.NewLoggerMiddleware(slog.Default()))

	if viper.GetBool("tracing.enabled") {
		router.Use(trace.NewTraceMiddleware)
	}

	allowedOrigins := viper.GetStringSlice("server.http.cors.allowed_origins")
	allowedMethods := viper.GetStringSlice("server.http.cors.allowed_methods")
	allowedHeaders := viper.GetStringSlice("server.http.cors.allowed_headers")
	exposedHeaders := viper.GetStringSlice("server.http.cors.exposed_headers")
	allowCredentials := viper.GetBool("server.http.cors.allow_credentials")
	maxAge := viper.GetInt("server.http.cors.max_age")

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   allowedMethods,
		AllowedHeaders:   allowedHeaders,
		ExposedHeaders:   exposedHeaders,
		AllowCredentials: allowCredentials,
		MaxAge:           maxAge,
	})

	router.Use(c.Handler)

	return router
}

func newServer(router http.Handler) *http.Server {
	return &http.Server{
		Addr:    "0.0.0.0:" + viper.GetString("server.http.port"),
		Handler: router,
	}
}
