package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvTimezone = "SHOP_TIMEZONE"

	EnvLockWait      = "WRITE_LOCK_WAIT"
	EnvOrderIDPrefix = "ORDER_ID_PREFIX"

	EnvCalendarID         = "CALENDAR_ID"
	EnvGoogleAPIToken     = "GOOGLE_API_TOKEN"
	EnvCalendarBaseURL    = "CALENDAR_BASE_URL"
	EnvCalendarWindowDays = "CALENDAR_WINDOW_DAYS"

	EnvDriveBaseURL       = "DRIVE_BASE_URL"
	EnvDriveUploadBaseURL = "DRIVE_UPLOAD_BASE_URL"
	EnvDriveRootFolder    = "DRIVE_ROOT_FOLDER"

	EnvGeminiAPIKey  = "GEMINI_API_KEY"
	EnvGeminiBaseURL = "GEMINI_BASE_URL"

	EnvKafkaBrokers = "KAFKA_BROKERS"
	EnvKafkaTopic   = "KAFKA_TOPIC"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"
)
