package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/sushihentaime/quillpost/internal/assistservice"
	"github.com/sushihentaime/quillpost/internal/blogservice"
	"github.com/sushihentaime/quillpost/internal/common"
	"github.com/sushihentaime/quillpost/internal/engagementservice"
	"github.com/sushihentaime/quillpost/internal/galleryservice"
	"github.com/sushihentaime/quillpost/internal/mailservice"
	"github.com/sushihentaime/quillpost/internal/socialservice"
	"github.com/sushihentaime/quillpost/internal/userservice"
)

type application struct {
	config            *Config
	logger            *slog.Logger
	metrics           *metrics
	userService       *userservice.UserService
	blogService       *blogservice.BlogService
	engagementService *engagementservice.EngagementService
	socialService     *socialservice.SocialService
	galleryService    *galleryservice.GalleryService
	assistService     *assistservice.AssistService
	mailService       *mailservice.MailService
	broker            common.MessageProducer
}

func main() {
	configPath := flag.String("config", ".env", "path to the dotenv config file")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := loadConfig(*configPath)
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()

	shutdownTracing, err := initTracing(ctx, cfg)
	if err != nil {
		logger.Error("failed to initialize tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		c, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		shutdownTracing(c)
	}()

	db, err := common.NewDB(cfg.DB.common())
	if err != nil {
		logger.Error("failed to connect to the database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer common.CloseDB(db)

	m, err := common.Migrate(cfg.DB.MigrationsPath, cfg.DB.common().DSN())
	if err != nil {
		logger.Error("failed to run migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}
	m.Close()

	store, err := common.NewObjectStore(cfg.Storage.common())
	if err != nil {
		logger.Error("failed to create the object store", slog.String("error", err.Error()))
		os.Exit(1)
	}

	err = store.EnsureBucket(ctx)
	if err != nil {
		logger.Error("failed to prepare the storage bucket", slog.String("error", err.Error()))
		os.Exit(1)
	}

	cache := common.NewCache(cfg.OverviewCacheTTL, 2*cfg.OverviewCacheTTL)
	users := userservice.NewUserService(db, cache, userservice.NewSessionVerifier(cfg.Auth.JWTSecret, cfg.Auth.Issuer))

	app := &application{
		config:            cfg,
		logger:            logger,
		metrics:           newMetrics(),
		userService:       users,
		blogService:       blogservice.NewBlogService(db, cache, cfg.OverviewCacheTTL),
		engagementService: engagementservice.NewEngagementService(db),
		socialService:     socialservice.NewSocialService(db),
		galleryService:    galleryservice.NewGalleryService(db, store),
	}

	if cfg.Gemini.APIKey != "" {
		gen, err := assistservice.NewGeminiGenerator(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			logger.Error("failed to create the gemini client", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer gen.Close()

		app.assistService = assistservice.NewAssistService(assistservice.NewTemplateDrafter(gen), gen)
	} else {
		logger.Info("gemini api key not set, content assist disabled")
	}

	if cfg.RabbitMQ.enabled() {
		broker, err := common.NewMessageBroker(cfg.RabbitMQ.URI())
		if err != nil {
			logger.Error("failed to connect to the message broker", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer broker.Close()

		err = common.SetupEngagementExchange(broker)
		if err != nil {
			logger.Error("failed to setup the engagement exchange", slog.String("error", err.Error()))
			os.Exit(1)
		}

		app.broker = broker

		if cfg.Mail.enabled() {
			app.mailService = mailservice.NewMailService(broker, users, cfg.Mail.Host, cfg.Mail.User, cfg.Mail.Password, cfg.Mail.Sender, cfg.Mail.Port, logger)

			err = app.mailService.StartNotifications()
			if err != nil {
				logger.Error("failed to start notifications", slog.String("error", err.Error()))
				os.Exit(1)
			}
			defer app.mailService.Close()
		}
	} else {
		logger.Info("rabbitmq not configured, engagement events disabled")
	}

	err = app.serve()
	if err != nil {
		logger.Error("failed to start the server", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// publishEvent is best effort: a failed publish is logged and never fails the request.
func (app *application) publishEvent(r *http.Request, key common.BindingKey, event any) {
	if app.broker == nil {
		return
	}

	err := common.PublishEvent(r.Context(), app.broker, key, event)
	if err != nil {
		app.logError(r, err)
	}
}
