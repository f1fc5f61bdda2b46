package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
	CONTEXT_ACTOR_KEY                ContextKey = "actor"
)

const (
	REQUEST_ID_PREFIX      = "DOCCARE_SVC_"
	AppPaginationUrlFormat = "%s?page=%d&page_size=%d"
)

const (
	ResourceAppointments = "appointments"
	ResourcePayments     = "payments"
	ResourceReminders    = "reminders"
	ResourceDoctors      = "doctors"
)

const (
	StorageDriverMongo  = "mongo"
	StorageDriverMemory = "memory"
)

const (
	AppEnvDevelopment = "development"
	AppEnvProduction  = "production"
)

// Layouts used for the date and time-of-day fields of an appointment.
const (
	DateLayout      = "2006-01-02"
	TimeOfDayLayout = "15:04"
)

const (
	WatcherNamePaymentExpiry      = "payment-expiry"
	WatcherNameConsultationExpiry = "consultation-expiry"
	WatcherNameReminderDispatch   = "reminder-dispatch"
)

const (
	RedisKeyDoctorDirectoryFormat   = "doctor:directory:%s"
	RedisKeyNotificationDedupFormat = "notification:dedup:%s"
	RedisKeyRateLimitFormat         = "ratelimit:%s:%s:%d"
)
