package app

import (
	"context"

	"fleetdesk/config"
	"fleetdesk/internal/controllers"
	"fleetdesk/internal/database"
	"fleetdesk/internal/events"
	"fleetdesk/internal/handlers/middleware"
	"fleetdesk/internal/jobs"
	"fleetdesk/internal/repositories"
	"fleetdesk/internal/services"
	"fleetdesk/internal/websockets"
	"fleetdesk/pkg/logger"
)

type App struct {
	Database   database.DB
	Middleware middleware.Middleware
	Websocket  *websockets.Manager
	EventBus   *events.EventBus
	Config     config.Config

	Repos       repositories.Repository
	Services    services.Service
	Controllers controllers.Controllers
}

func New() (*App, error) {
	log := logger.New("app").Function("New")

	config, err := config.New()
	if err != nil {
		return &App{}, log.Err("failed to initialize config", err)
	}

	db, err := database.New(config)
	if err != nil {
		return &App{}, log.Err("failed to create database", err)
	}

	eventBus := events.New(db.Cache.Events)

	repos := repositories.New(db)

	service, err := services.New(db, config, eventBus)
	if err != nil {
		return &App{}, log.Err("failed to create services", err)
	}

	websocket, err := websockets.New(db, eventBus)
	if err != nil {
		return &App{}, log.Err("failed to create websocket manager", err)
	}

	middleware := middleware.New(db, eventBus, config, repos)
	controllers := controllers.New(service, repos, config, db)

	if config.SeedDemoData {
		if err := db.SeedDemoData(); err != nil {
			return &App{}, log.Err("failed to seed demo data", err)
		}
	}

	// Derive the initial notification set before serving traffic
	db.WriteMu.Lock()
	_, err = service.Notification.Recompute(context.Background())
	db.WriteMu.Unlock()
	if err != nil {
		return &App{}, log.Err("failed to compute initial notifications", err)
	}

	if config.SchedulerEnabled {
		refreshJob := jobs.NewNotificationRefreshJob(service.Notification, db, services.Daily)
		if err := service.Scheduler.AddJob(refreshJob); err != nil {
			return &App{}, log.Err("failed to register notification refresh job", err)
		}
		log.Info("Registered notification refresh job with scheduler")
	}

	app := &App{
		Database:    db,
		Middleware:  middleware,
		Websocket:   websocket,
		EventBus:    eventBus,
		Config:      config,
		Repos:       repos,
		Services:    service,
		Controllers: controllers,
	}

	return app, nil
}

func (a *App) Start(ctx context.Context) error {
	log := logger.New("app").Function("Start")

	if a.Config.SchedulerEnabled {
		if err := a.Services.Scheduler.Start(ctx); err != nil {
			return log.Err("failed to start scheduler", err)
		}
	}

	return nil
}

func (a *App) Shutdown(ctx context.Context) error {
	log := logger.New("app").Function("Shutdown")

	if err := a.Services.Scheduler.Stop(ctx); err != nil {
		log.Er("failed to stop scheduler", err)
	}

	if err := a.EventBus.Close(); err != nil {
		log.Er("failed to close event bus", err)
	}

	if err := a.Database.Close(); err != nil {
		return log.Err("failed to close database", err)
	}

	return nil
}
