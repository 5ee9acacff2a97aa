// Package directory собирает и запускает HTTP-приложение каталога подрядчиков.
package directory

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/d-directory/d-directory/internal/cache"
	"github.com/d-directory/d-directory/internal/config"
	"github.com/d-directory/d-directory/internal/lib/jwt"
	"github.com/d-directory/d-directory/internal/lib/rabbitmq"
	"github.com/d-directory/d-directory/internal/lib/sl"
	"github.com/d-directory/d-directory/internal/migrations"
	"github.com/d-directory/d-directory/internal/scraper"
	authservice "github.com/d-directory/d-directory/internal/services/auth"
	contractorservice "github.com/d-directory/d-directory/internal/services/contractor"
	leadservice "github.com/d-directory/d-directory/internal/services/lead"
	planservice "github.com/d-directory/d-directory/internal/services/plan"
	projecttypeservice "github.com/d-directory/d-directory/internal/services/projecttype"
	subscriptionservice "github.com/d-directory/d-directory/internal/services/subscription"
	"github.com/d-directory/d-directory/internal/storage/repository"
)

// App инкапсулирует HTTP-сервер каталога и его зависимости.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	conn   *amqp.Connection
	ch     *amqp.Channel
}

// New собирает приложение: хранилище, миграции, кеш, брокер событий,
// сервисы и маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}
	if err = repository.CheckDatabaseReady(db); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	// Брокер поднимается best effort: без него заявки принимаются,
	// но уведомления подрядчикам не публикуются.
	var conn *amqp.Connection
	var ch *amqp.Channel
	var publisher leadservice.EventPublisher
	conn, err = rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		logger.Warn("rabbitmq unavailable, lead notifications disabled", sl.Err(err))
	} else {
		ch, err = rabbitmq.SetupChannel(conn, rabbitmq.GetNotificationQueues())
		if err != nil {
			_ = conn.Close()
			return nil, err
		}
		publisher = rabbitmq.NewLeadEventPublisher(ch)
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	authService := authservice.NewAuthService(db, jwtMaker)
	contractorService := contractorservice.NewContractorService(db, cacheRedis, logger)
	planService := planservice.NewPlanService(db, cacheRedis, logger)
	projectTypeService := projecttypeservice.NewProjectTypeService(db, cacheRedis, logger)
	subscriptionService := subscriptionservice.NewSubscriptionService(db, logger)
	leadService := leadservice.NewLeadService(db, publisher, logger)
	importer := scraper.New(db, &http.Client{Timeout: cfg.ScraperTimeout}, cfg.ScraperSourceURL, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, &Services{
		Auth:         authService,
		Contractor:   contractorService,
		Plan:         planService,
		ProjectType:  projectTypeService,
		Subscription: subscriptionService,
		Lead:         leadService,
		Importer:     importer,
	})

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		conn:   conn,
		ch:     ch,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его при отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if a.ch != nil {
			_ = a.ch.Close()
		}
		if a.conn != nil {
			_ = a.conn.Close()
		}
		_ = a.db.DB.Close()
		return err
	}
}
