package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "nailbook"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultTimezone = "Asia/Bangkok"

	// Bounded wait before a mutating action fails fast with "server busy".
	DefaultLockWait = 30 * time.Second

	DefaultOrderIDPrefix = "GY-"

	DefaultCalendarBaseURL    = "https://www.googleapis.com/calendar/v3"
	DefaultCalendarWindowDays = 90

	DefaultDriveBaseURL       = "https://www.googleapis.com/drive/v3"
	DefaultDriveUploadBaseURL = "https://www.googleapis.com/upload/drive/v3"
	DefaultDriveRootFolder    = "GY-Nail Files"

	DefaultGeminiBaseURL = "https://generativelanguage.googleapis.com"

	DefaultKafkaTopic = "nailbook.booking-events"

	DefaultRequestTimeout = 60 * time.Second
	DefaultMaxRequestSize = 8 * 1024 * 1024 // base64 image uploads

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 65 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	// Seed values for a fresh settings table; mirrored by the store bootstrap.
	DefaultShopName          = "GY-Nail"
	DefaultTimeSlots         = "10:00,11:30,13:00,14:30,16:00,17:30"
	DefaultAdminPassword     = "admin123"
	DefaultServiceDuration   = 60
	DefaultAdminBookingLimit = 1000
)
