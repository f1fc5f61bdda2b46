package config

import (
	"doccare-service/internal/pkg/constvars"
	"doccare-service/internal/pkg/utils"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		MongoDB: MongoDB{
			Port:                    utils.GetEnvString("MONGODB_PORT", "27017"),
			Host:                    utils.GetEnvString("MONGODB_HOST", "localhost"),
			DbName:                  utils.GetEnvString("MONGODB_DB_NAME", "doccare"),
			Username:                utils.GetEnvString("MONGODB_USERNAME", ""),
			Password:                utils.GetEnvString("MONGODB_PASSWORD", ""),
			ConnectTimeoutInSeconds: utils.GetEnvInt("MONGODB_CONNECT_TIMEOUT_IN_SECONDS", 10),
		},
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
			DB:       utils.GetEnvInt("REDIS_DB", 0),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
		RabbitMQ: RabbitMQ{
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Host:     utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "guest"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "guest"),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                       utils.GetEnvString("APP_ENV", constvars.AppEnvDevelopment),
			Port:                      utils.GetEnvString("APP_PORT", "8080"),
			Version:                   utils.GetEnvString("APP_VERSION", "v1"),
			Address:                   utils.GetEnvString("APP_ADDRESS", "localhost"),
			BaseUrl:                   utils.GetEnvString("APP_BASE_URL", "http://localhost:8080/api/v1"),
			Timezone:                  utils.GetEnvString("APP_TIMEZONE", "Asia/Dhaka"),
			EndpointPrefix:            utils.GetEnvString("APP_ENDPOINT_PREFIX", "api"),
			StorageDriver:             utils.GetEnvString("APP_STORAGE_DRIVER", constvars.StorageDriverMongo),
			MaxRequests:               utils.GetEnvInt("APP_MAX_REQUEST", 100),
			MaxTimeRequestsPerSeconds: utils.GetEnvInt("APP_MAX_TIME_REQUESTS_PER_SECONDS", 60),
			ShutdownTimeoutInSeconds:  utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT_IN_SECONDS", 10),
			RequestTimeoutInSeconds:   utils.GetEnvInt("APP_REQUEST_TIMEOUT_IN_SECONDS", 10),
			SweepAPIKey:               utils.GetEnvString("APP_SWEEP_API_KEY", ""),
			SweepAPIKeyRateLimit:      utils.GetEnvInt("APP_SWEEP_API_KEY_RATE_LIMIT", 30),
			DoctorSeedFile:            utils.GetEnvString("APP_DOCTOR_SEED_FILE", ""),
		},
		JWT: AppJWT{
			Secret:            utils.GetEnvString("JWT_SECRET", "anyjwt"),
			Issuer:            utils.GetEnvString("JWT_ISSUER", "doccare-service"),
			TokenTTLInMinutes: utils.GetEnvInt("JWT_TOKEN_TTL_IN_MINUTES", 60),
		},
		Scheduling: AppScheduling{
			SlotIntervalInMinutes:         utils.GetEnvInt("SCHEDULING_SLOT_INTERVAL_IN_MINUTES", 3),
			ConsultationDurationInMinutes: utils.GetEnvInt("SCHEDULING_CONSULTATION_DURATION_IN_MINUTES", 3),
			DoctorNoticeInHours:           utils.GetEnvInt("SCHEDULING_DOCTOR_NOTICE_IN_HOURS", 24),
			ReminderDispatchBatchSize:     utils.GetEnvInt("SCHEDULING_REMINDER_DISPATCH_BATCH_SIZE", 200),
		},
		Watchers: AppWatchers{
			Enabled:                             utils.GetEnvBool("WATCHERS_ENABLED", true),
			StartupDelayInSeconds:               utils.GetEnvInt("WATCHERS_STARTUP_DELAY_IN_SECONDS", 5),
			PaymentExpiryIntervalInSeconds:      utils.GetEnvInt("WATCHERS_PAYMENT_EXPIRY_INTERVAL_IN_SECONDS", 60),
			ConsultationExpiryIntervalInSeconds: utils.GetEnvInt("WATCHERS_CONSULTATION_EXPIRY_INTERVAL_IN_SECONDS", 30),
			ReminderDispatchIntervalInSeconds:   utils.GetEnvInt("WATCHERS_REMINDER_DISPATCH_INTERVAL_IN_SECONDS", 300),
			ReminderDispatchPerSecond:           utils.GetEnvInt("WATCHERS_REMINDER_DISPATCH_PER_SECOND", 20),
		},
		Notification: AppNotification{
			QueueName:               utils.GetEnvString("NOTIFICATION_QUEUE_NAME", "appointment_notifications"),
			DedupTTLInHours:         utils.GetEnvInt("NOTIFICATION_DEDUP_TTL_IN_HOURS", 24),
			PublishTimeoutInSeconds: utils.GetEnvInt("NOTIFICATION_PUBLISH_TIMEOUT_IN_SECONDS", 5),
		},
		DoctorDirectory: AppDoctorDirectory{
			CacheTTLInMinutes: utils.GetEnvInt("DOCTOR_DIRECTORY_CACHE_TTL_IN_MINUTES", 10),
		},
	}
}
