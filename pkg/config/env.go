package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvRentConsistency = "RENT_CONSISTENCY"

	EnvCORSAllowedOrigins = "CORS_ALLOWED_ORIGINS"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvDirectionsProvider  = "DIRECTIONS_PROVIDER"
	EnvDirectionsTimeout   = "DIRECTIONS_TIMEOUT"
	EnvGoogleMapsAPIKey    = "GOOGLE_MAPS_API_KEY"
	EnvGoogleDirectionsURL = "GOOGLE_DIRECTIONS_URL"
	EnvMapboxAccessToken   = "MAPBOX_ACCESS_TOKEN"
	EnvMapboxDirectionsURL = "MAPBOX_DIRECTIONS_URL"

	EnvViewStatePath  = "VIEWSTATE_PATH"
	EnvSessionIdleTTL = "SESSION_IDLE_TTL"
)
