package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"SmartShop/bot"
	"SmartShop/impl/core"
	"SmartShop/internal/config"
	repository "SmartShop/internal/database"
	"SmartShop/internal/database/memory"
	redis_cart "SmartShop/internal/database/redis-cart"
	"SmartShop/internal/http-server/api"
	"SmartShop/internal/lib/logger"
	"SmartShop/internal/lib/sl"
	"SmartShop/internal/service/auth"
	"SmartShop/internal/service/cart"
	"SmartShop/internal/service/chatbot"
	mail_sender "SmartShop/internal/service/mail-sender"
	"SmartShop/internal/service/order"
	"SmartShop/internal/service/product"
	"SmartShop/internal/service/support"
	"SmartShop/internal/ws"
)

// storage is everything the services need from a backing store.
type storage interface {
	auth.Repository
	product.Repository
	product.ImageStore
	order.Repository
	support.Repository
	cart.Store
}

func main() {

	configPath := flag.String("conf", "config.yml", "path to config file")
	logPath := flag.String("log", "/var/log/", "path to log file directory")
	flag.Parse()

	conf := config.MustLoad(*configPath)
	lg := logger.SetupLogger(conf.Env, *logPath)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize Telegram bot if enabled
	var tgBot *bot.TgBot
	if conf.Telegram.Enabled {
		var err error
		tgBot, err = bot.NewTgBot(conf.Telegram.BotName, conf.Telegram.ApiKey, conf.Telegram.AdminId, lg)
		if err != nil {
			lg.Error("failed to initialize telegram bot", sl.Err(err))
		} else {
			// errors go to the support chat as well
			lg = logger.SetupTelegramHandler(lg, tgBot, slog.LevelError)
			lg.With(
				slog.String("bot_name", conf.Telegram.BotName),
			).Info("telegram bot initialized")

			go func() {
				if err := tgBot.Start(); err != nil {
					lg.Error("telegram bot error", sl.Err(err))
				}
			}()
		}
	}

	lg.Info("starting smartshop", slog.String("config", *configPath), slog.String("env", conf.Env))
	lg.Debug("debug messages enabled")

	if conf.Auth.SecretKey == "" {
		lg.Warn("secret key is empty, tokens and image links are not safe")
	}

	var store storage = memory.New()
	db, err := repository.NewMongoClient(conf, lg)
	if err != nil {
		lg.With(
			sl.Err(err),
		).Error("mongo client")
	}
	if db != nil {
		if err = db.EnsureIndexes(ctx); err != nil {
			lg.With(sl.Err(err)).Error("mongo indexes")
		}
		store = db
		lg.With(
			slog.String("host", conf.Mongo.Host),
			slog.String("port", conf.Mongo.Port),
			slog.String("user", conf.Mongo.User),
			slog.String("database", conf.Mongo.Database),
		).Info("mongo client initialized")
	} else {
		lg.Warn("mongo disabled, using in-memory storage")
	}

	var carts cart.Store = store
	if conf.Redis.Enabled {
		rc := redis_cart.NewStore(conf.Redis.Addr, conf.Redis.Password, conf.Redis.DB, time.Duration(conf.Redis.CartTTL)*time.Hour)
		if err = rc.Ping(ctx); err != nil {
			lg.With(sl.Err(err)).Error("redis ping, carts stay in the main store")
		} else {
			defer rc.Close()
			carts = rc
			lg.With(slog.String("addr", conf.Redis.Addr)).Info("redis cart store initialized")
		}
	}

	mailer := mail_sender.NewMailSenderService(mail_sender.Options{
		Server:   conf.Mail.Server,
		Port:     conf.Mail.Port,
		UseTLS:   conf.Mail.UseTLS,
		Username: conf.Mail.Username,
		Password: conf.Mail.Password,
	}, lg)
	if !mailer.Enabled() {
		lg.Warn("mail is not configured, signup and reset emails will fail")
	}

	authService := auth.NewAuthService(store, mailer, auth.Options{
		Secret:     conf.Auth.SecretKey,
		BaseURL:    conf.Auth.BaseURL,
		Sender:     conf.Mail.Username,
		LinkTTL:    time.Duration(conf.Auth.TokenTTL) * time.Minute,
		SessionTTL: time.Duration(conf.Auth.SessionTTL) * time.Hour,
	}, lg)

	productService := product.NewProductService(store, store, product.Options{
		AllowedExtensions: conf.AllowedExtensions(),
		MaxSize:           conf.Upload.MaxSize,
		URLSecret:         conf.Auth.SecretKey,
		URLTTL:            time.Duration(conf.Auth.ImageURLTTL) * time.Minute,
	}, lg)

	cartService := cart.NewCartService(carts, store, lg)

	hub := ws.NewHub(lg)
	go hub.Run(ctx)

	orderService := order.NewOrderService(store, cartService, conf.Orders.StrictTransitions, lg)
	orderService.SetEventPublisher(hub)

	supportAddr := conf.Mail.Support
	if supportAddr == "" {
		supportAddr = conf.Mail.Username
	}
	supportService := support.NewSupportService(store, mailer, conf.Mail.Username, supportAddr, lg)
	if tgBot != nil {
		supportService.SetAlerter(tgBot)
	}

	registry := chatbot.NewRegistry(chatbot.DefaultRuleSet(), time.Duration(conf.Chatbot.SessionIdleMinutes)*time.Minute)

	handler := core.New(registry, lg)
	handler.SetAuthService(authService)
	handler.SetProductService(productService)
	handler.SetCartService(cartService)
	handler.SetOrderService(orderService)
	handler.SetSupportService(supportService)
	handler.Init(ctx)

	// *** blocking start with http server ***
	err = api.New(ctx, conf, lg, handler, hub)
	if err != nil {
		lg.Error("server start", sl.Err(err))
		return
	}
	supportService.Wait()
	lg.Info("service stopped")
}
