package main

import (
	"campusmove/internal/navigation/directions"
	"campusmove/internal/navigation/handler"
	"campusmove/internal/navigation/repository"
	"campusmove/internal/navigation/service"
	"campusmove/internal/navigation/validator"
	"campusmove/pkg/app"
	"campusmove/pkg/config"
)

const ServiceName = "navigator"

func main() {
	cfg := config.Load(ServiceName)

	cfg.Log.Info("Starting Navigator service")
	serverApp := app.NewApplication(cfg)

	store, err := repository.OpenBadgerViewStateRepository(cfg.ViewStatePath, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to open view state store", "path", cfg.ViewStatePath, "error", err)
	}
	serverApp.OnShutdown("viewstate-store", store.Close)

	navigationService := service.NewNavigationService(
		initProvider(cfg),
		store,
		validator.NewNavigationValidator(cfg.Log),
		cfg,
	)
	serverApp.OnShutdown("navigation-sessions", navigationService.Close)

	serverApp.SetApp(
		[]app.ReadinessCheck{{Name: "viewstate", Check: store.Ping}},
		handler.NewNavigationHandler(navigationService, cfg.Log),
	)
	serverApp.Run()
}

func initProvider(cfg *config.Config) directions.Provider {
	var provider directions.Provider
	switch cfg.DirectionsProvider {
	case config.ProviderMapbox:
		provider = directions.NewMapboxProvider(cfg.MapboxDirectionsURL, cfg.MapboxAccessToken, cfg.DirectionsTimeout)
	default:
		provider = directions.NewGoogleProvider(cfg.GoogleDirectionsURL, cfg.GoogleMapsAPIKey, cfg.DirectionsTimeout)
	}

	cfg.Log.Info("Directions provider selected", "provider", provider.Name(), "timeout", cfg.DirectionsTimeout)
	return directions.NewBreakerProvider(provider, directions.DefaultBreakerSettings(), cfg.Log)
}
