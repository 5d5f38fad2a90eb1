package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/aidar/remote-work-hub/internal/app"
	"github.com/aidar/remote-work-hub/internal/config"
	"github.com/aidar/remote-work-hub/internal/logger"
)

func main() {
	// Загружаем конфигурацию из переменных окружения (и .env, если есть)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Не удалось загрузить конфигурацию: %v", err)
	}

	logg, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("Не удалось создать логгер: %v", err)
	}
	defer func() {
		_ = logg.Sync()
	}()

	// Создаем экземпляр приложения
	application, err := app.New(cfg, logg)
	if err != nil {
		logg.Fatalw("Не удалось создать приложение", "error", err)
	}

	// Инициализируем приложение (подключение к БД, миграции, настройка роутинга)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := application.Initialize(ctx); err != nil {
		logg.Fatalw("Не удалось инициализировать приложение", "error", err)
	}

	// Запускаем HTTP сервер в отдельной горутине
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- application.Run()
	}()

	logg.Infow("Сервер запущен", "port", cfg.Server.Port)

	// Ожидаем сигнал прерывания (Ctrl+C или SIGTERM) или падение сервера
	select {
	case <-ctx.Done():
		logg.Info("Остановка сервера...")
	case err := <-serverErr:
		if err != nil {
			logg.Errorw("Ошибка сервера", "error", err)
		}
	}

	// Создаем контекст с таймаутом для graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)

	// Корректно останавливаем приложение
	if err := application.Shutdown(shutdownCtx); err != nil {
		cancel()
		logg.Errorw("Не удалось корректно остановить сервер", "error", err)
		_ = logg.Sync()
		os.Exit(1)
	}
	cancel()

	logg.Info("Сервер остановлен")
}
