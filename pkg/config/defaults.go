package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "campusmove"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort = "5000"

	RentConsistencyTransactional = "transactional"
	RentConsistencySequential    = "sequential"
	DefaultRentConsistency       = RentConsistencyTransactional

	DefaultCORSAllowedOrigins = "*"

	DefaultRateLimitRequests = 100
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	ProviderGoogle = "google"
	ProviderMapbox = "mapbox"

	DefaultDirectionsProvider  = ProviderGoogle
	DefaultDirectionsTimeout   = 10 * time.Second
	DefaultGoogleDirectionsURL = "https://maps.googleapis.com/maps/api/directions/json"
	DefaultMapboxDirectionsURL = "https://api.mapbox.com/directions/v5/mapbox"

	DefaultViewStatePath  = "./data/viewstate"
	DefaultSessionIdleTTL = 30 * time.Minute
)
