package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/middleware"

	"github.com/bengalspicy/rms/internal/cart"
	"github.com/bengalspicy/rms/internal/contact"
	"github.com/bengalspicy/rms/internal/mailer"
	"github.com/bengalspicy/rms/internal/menu"
	"github.com/bengalspicy/rms/internal/mongo"
	"github.com/bengalspicy/rms/internal/order"
	"github.com/bengalspicy/rms/internal/user"
	"github.com/bengalspicy/rms/pkg"
	"github.com/bengalspicy/rms/pkg/event"
)

const (
	appNamespace = "RMS"
	appName      = "rms"
	appVersion   = "0.1.0"
)

func main() {
	config, err := apt.LoadConfig(appNamespace, os.Args[1:])
	if err != nil {
		log.Fatalf("%s(%s) cannot setup: %v", appName, appVersion, err)
	}

	logLevel, _ := config.GetString("log.level")
	logger := apt.NewLogger(logLevel)

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer stop()

	baseRepo := mongo.NewBaseRepo(config, logger)
	if err := baseRepo.Start(ctx); err != nil {
		log.Fatalf("%s(%s) cannot start base repository: %v", appName, appVersion, err)
	}

	db := baseRepo.GetDatabase()
	if db == nil {
		log.Fatalf("%s(%s) cannot initialize repository database: %v", appName, appVersion, errors.New("repository database is nil"))
	}

	menuRepo := mongo.NewMenuItemRepo(db)
	cartRepo := mongo.NewCartRepo(db)
	orderRepo := mongo.NewOrderRepo(db)
	checkoutRepo := mongo.NewCheckoutRepo(baseRepo.GetClient(), db)
	userRepo := mongo.NewUserRepo(db)
	contactRepo := mongo.NewContactRepo(db)

	natsURL := config.GetStringOrDef("nats.url", "nats://localhost:4222")

	pub, err := pkg.NewNATSPublisher(natsURL)
	if err != nil {
		log.Fatalf("%s(%s) cannot connect to NATS publisher: %v", appName, appVersion, err)
	}

	// The stream captures mail requests published by the contact handlers and
	// retains them while no mailer is attached.
	mailStream, err := pkg.NewNATSStream(pkg.NATSStreamConfig{
		URL:          natsURL,
		StreamName:   "MAIL_REQUESTS",
		Topic:        event.MailRequestsTopic,
		ConsumerName: "mailer",
		MaxAge:       72 * time.Hour,
	}, logger)
	if err != nil {
		log.Fatalf("%s(%s) cannot set up NATS mail stream: %v", appName, appVersion, err)
	}

	publisherLifecycle := apt.LifecycleHooks{
		OnStop: func(context.Context) error {
			return pub.Close()
		},
	}
	streamLifecycle := apt.LifecycleHooks{
		OnStop: func(context.Context) error {
			return mailStream.Close()
		},
	}

	menuHandler := menu.NewHandler(menu.HandlerDeps{Repo: menuRepo}, config, logger)
	cartHandler := cart.NewHandler(cart.HandlerDeps{Repo: cartRepo}, config, logger)
	orderHandler := order.NewHandler(order.HandlerDeps{
		OrderRepo: orderRepo,
		Checkout:  checkoutRepo,
	}, config, logger)
	userHandler := user.NewHandler(user.HandlerDeps{Repo: userRepo}, config, logger)
	contactHandler := contact.NewHandler(contact.HandlerDeps{
		Repo:      contactRepo,
		Publisher: pub,
	}, config, logger)

	lifecycles := []interface{}{
		apt.LifecycleHooks{OnStop: baseRepo.Stop},
		publisherLifecycle,
		streamLifecycle,
	}

	// Mail delivery is best-effort: without SMTP settings the API still runs,
	// requests stay queued on the stream until a configured instance drains them.
	sender, err := mailer.NewSMTPSender(config, logger)
	if err != nil {
		logger.Errorf("Mail sender disabled: %v", err)
	} else {
		mailSub := mailer.NewMailRequestSubscriber(mailStream, sender, logger)
		lifecycles = append(lifecycles, mailSub)
	}

	stack := middleware.DefaultStack(middleware.StackOptions{
		Logger: logger,
	})

	options := []apt.Option{
		apt.WithConfig(config),
		apt.WithLogger(logger),
		apt.WithHTTPMiddleware(stack...),
		apt.WithHTTPServerModules("web.port", menuHandler, cartHandler, orderHandler, userHandler, contactHandler),
		apt.WithLifecycle(lifecycles...),
		apt.WithHealthChecks(appName),
	}

	ms := apt.NewMicro(options...)
	logger.Infof("Starting %s(%s)", appName, appVersion)

	if err := ms.Run(ctx); err != nil {
		_ = baseRepo.Stop(context.Background())
		log.Fatalf("%s(%s) stopped: %v", appName, appVersion, err)
	}

	logger.Infof("%s(%s) stopped", appName, appVersion)
}
