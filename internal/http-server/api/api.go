package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"SmartShop/entity"
	"SmartShop/internal/config"
	"SmartShop/internal/http-server/handlers/cart"
	"SmartShop/internal/http-server/handlers/chatbot"
	herrors "SmartShop/internal/http-server/handlers/errors"
	"SmartShop/internal/http-server/handlers/order"
	"SmartShop/internal/http-server/handlers/product"
	"SmartShop/internal/http-server/handlers/support"
	"SmartShop/internal/http-server/handlers/user"
	"SmartShop/internal/http-server/middleware/authenticate"
	"SmartShop/internal/http-server/middleware/ratelimit"
	"SmartShop/internal/http-server/middleware/session"
	"SmartShop/internal/http-server/middleware/supportkey"
	"SmartShop/internal/lib/sl"
	"SmartShop/internal/ws"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
)

type Server struct {
	conf       *config.Config
	httpServer *http.Server
	log        *slog.Logger
}

type Handler interface {
	authenticate.Authenticate
	chatbot.Core
	support.Core
	user.Core
	product.Core
	cart.Core
	order.Core
}

// NewRouter builds the full route tree.
func NewRouter(ctx context.Context, conf *config.Config, log *slog.Logger, handler Handler, hub *ws.Hub) http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   conf.Origins(),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", supportkey.Header},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	sessionTTL := time.Duration(conf.Chatbot.SessionIdleMinutes) * time.Minute
	if conf.Redis.CartTTL > 0 {
		sessionTTL = time.Duration(conf.Redis.CartTTL) * time.Hour
	}
	router.Use(session.New(sessionTTL, conf.Env == "prod"))

	router.NotFound(herrors.NotFound(log))
	router.MethodNotAllowed(herrors.NotAllowed(log))

	limiter := ratelimit.New(float64(conf.Chatbot.RateLimit), conf.Chatbot.RateBurst)
	go limiter.Run(ctx)

	auth := authenticate.New(log, handler)
	maxUpload := conf.Upload.MaxSize

	router.Route("/api/v1", func(v1 chi.Router) {
		v1.Use(render.SetContentType(render.ContentTypeJSON))

		v1.Route("/chatbot", func(r chi.Router) {
			r.With(limiter.Middleware(log)).Post("/", chatbot.Reply(log, handler))
			r.Get("/buttons", chatbot.Buttons(log, handler))
		})
		v1.Route("/support", func(r chi.Router) {
			r.With(limiter.Middleware(log)).Post("/questions", support.SubmitQuestion(log, handler))
			r.Group(func(r chi.Router) {
				r.Use(supportkey.New(log, conf.Auth.SupportKey))
				r.Get("/questions", support.ListQuestions(log, handler))
				r.Post("/questions/{id}/status", support.SetStatus(log, handler))
			})
		})
		v1.Route("/user", func(r chi.Router) {
			r.Post("/signup", user.Signup(log, handler))
			r.Get("/verify/{token}", user.VerifyEmail(log, handler))
			r.Post("/login", user.Login(log, handler))
			r.Post("/reset-request", user.RequestReset(log, handler))
			r.Post("/reset/{token}", user.ResetPassword(log, handler))
			r.With(auth).Get("/me", user.Me(log, handler))
		})
		v1.Route("/products", func(r chi.Router) {
			r.Get("/", product.List(log, handler))
			r.Get("/categories", product.Categories(log, handler))
			r.Get("/images/{image_id}", product.Image(log, handler))
			r.Get("/{id}", product.Get(log, handler))
		})
		v1.Route("/cart", func(r chi.Router) {
			r.Get("/", cart.Get(log, handler))
			r.Put("/", cart.Update(log, handler))
			r.Post("/{product_id}", cart.Add(log, handler))
			r.Delete("/{product_id}", cart.Remove(log, handler))
		})
		v1.Route("/orders", func(r chi.Router) {
			r.Use(auth)
			r.Post("/checkout", order.Checkout(log, handler))
			r.Get("/", order.List(log, handler))
			r.Get("/{id}", order.Get(log, handler))
		})
		v1.Route("/seller", func(r chi.Router) {
			r.Use(auth)
			r.Use(authenticate.RequireRole(entity.SellerRole))
			r.Get("/products", product.SellerList(log, handler))
			r.Post("/products", product.Create(log, handler, maxUpload))
			r.Put("/products/{id}", product.Update(log, handler, maxUpload))
			r.Delete("/products/{id}", product.Delete(log, handler))
			r.Get("/orders", order.SellerList(log, handler))
			r.Post("/orders/{id}/status", order.UpdateStatus(log, handler))
		})
	})

	if hub != nil {
		router.Get("/ws/orders", func(w http.ResponseWriter, r *http.Request) {
			ws.ServeWs(hub, handler, log, w, r)
		})
	}

	return router
}

// New serves the API until ctx is done.
func New(ctx context.Context, conf *config.Config, log *slog.Logger, handler Handler, hub *ws.Hub) error {

	server := Server{
		conf: conf,
		log:  log.With(sl.Module("api.server")),
	}

	httpLog := slog.NewLogLogger(log.Handler(), slog.LevelError)
	server.httpServer = &http.Server{
		Handler:           NewRouter(ctx, conf, log, handler, hub),
		ErrorLog:          httpLog,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverAddress := fmt.Sprintf("%s:%s", conf.Listen.BindIP, conf.Listen.Port)
	listener, err := net.Listen("tcp", serverAddress)
	if err != nil {
		return err
	}

	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.httpServer.Shutdown(shutdown); err != nil {
			server.log.Error("shutdown", sl.Err(err))
		}
	}()

	server.log.Info("starting api server", slog.String("address", serverAddress))

	if err = server.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
