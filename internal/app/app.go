package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/aidar/remote-work-hub/internal/config"
	"github.com/aidar/remote-work-hub/internal/handler"
	"github.com/aidar/remote-work-hub/internal/middleware"
	"github.com/aidar/remote-work-hub/internal/repository/postgres"
	"github.com/aidar/remote-work-hub/internal/service"
)

// App представляет приложение со всеми зависимостями
type App struct {
	config *config.Config
	db     *pgxpool.Pool
	router http.Handler
	server *http.Server
	logger *zap.SugaredLogger
}

// New создает новый экземпляр приложения
func New(cfg *config.Config, logger *zap.SugaredLogger) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	app := &App{
		config: cfg,
		logger: logger,
	}

	return app, nil
}

// Initialize инициализирует все компоненты приложения
func (a *App) Initialize(ctx context.Context) error {
	// Подключаемся к базе данных
	if err := a.connectDB(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Применяем встроенные миграции
	if a.config.Database.Migrate {
		if err := postgres.Migrate(ctx, a.db); err != nil {
			return fmt.Errorf("failed to apply migrations: %w", err)
		}
		a.logger.Info("Database migrations applied")
	}

	// Настраиваем HTTP сервер и роутинг
	a.setupServer()

	a.logger.Info("Application initialized successfully")
	return nil
}

// connectDB устанавливает подключение к PostgreSQL с connection pool
func (a *App) connectDB(ctx context.Context) error {
	poolConfig, err := pgxpool.ParseConfig(a.config.Database.DSN())
	if err != nil {
		return fmt.Errorf("failed to parse database config: %w", err)
	}

	// Настраиваем размеры connection pool
	poolConfig.MaxConns = a.config.Database.MaxConns
	poolConfig.MinConns = a.config.Database.MinConns

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}

	// Проверяем подключение к БД
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	a.db = pool
	a.logger.Info("Connected to database")
	return nil
}

// setupServer инициализирует HTTP роутер и обработчики
func (a *App) setupServer() {
	log := a.logger

	// Инициализируем слой репозиториев (работа с БД)
	userRepo := postgres.NewUserRepository(a.db)
	teamRepo := postgres.NewTeamRepository(a.db)
	taskRepo := postgres.NewTaskRepository(a.db)

	// Инициализируем слой сервисов (бизнес-логика)
	policy := service.DefaultPolicy()
	tokens := service.NewTokenCodec(a.config.JWT.Secret)
	hasher := service.NewBcryptHasher(a.config.Auth.BcryptCost)
	notifier := service.NewLogResetNotifier(log)

	authService := service.NewAuthService(userRepo, hasher, tokens, notifier, service.WithLogger(log))
	userService := service.NewUserService(userRepo, service.WithLogger(log))
	teamService := service.NewTeamService(teamRepo, userRepo, service.WithLogger(log))
	taskService := service.NewTaskService(taskRepo, teamRepo, userRepo, policy, service.WithLogger(log))
	statsService := service.NewStatsService(userRepo, teamRepo, taskRepo)

	// Инициализируем HTTP обработчики
	handlers := routeHandlers{
		auth:  handler.NewAuthHandler(authService, log),
		users: handler.NewUserHandler(userService, teamService, log),
		teams: handler.NewTeamHandler(teamService, log),
		tasks: handler.NewTaskHandler(taskService, log),
		stats: handler.NewStatsHandler(statsService, log),
	}

	// Middleware для определения пользователя по Bearer токену
	resolver := middleware.SessionResolver(tokens, userRepo, a.config.Auth.PublicPaths, log)

	a.router = newRouter(handlers, policy, resolver, a.config.Server.RequestTimeout, log)

	// Создаем HTTP сервер с настройками таймаутов
	addr := fmt.Sprintf("%s:%s", a.config.Server.Host, a.config.Server.Port)
	a.server = &http.Server{
		Addr:         addr,
		Handler:      a.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: a.config.Server.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	a.logger.Infow("HTTP server configured", "addr", addr)
}

// Handler возвращает корневой HTTP обработчик (доступен после Initialize)
func (a *App) Handler() http.Handler {
	return a.router
}

// Run запускает HTTP сервер
func (a *App) Run() error {
	a.logger.Infow("Starting HTTP server", "addr", a.server.Addr)
	if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown корректно останавливает приложение
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("Shutting down application")

	// Останавливаем HTTP сервер (ждем завершения текущих запросов)
	if a.server != nil {
		if err := a.server.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown server: %w", err)
		}
	}

	// Закрываем подключения к базе данных
	if a.db != nil {
		a.db.Close()
	}

	a.logger.Info("Application stopped gracefully")
	return nil
}
