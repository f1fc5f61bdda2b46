package constvars

const (
	LoggingRequestIDKey      = "request_id"
	LoggingDataKey           = "data"
	LoggingRequestKey        = "request"
	LoggingResponseKey       = "response"
	LoggingResponseLengthKey = "response_length"
	LoggingQueryParamsKey    = "query_params"

	LoggingMethodKey     = "method"
	LoggingEndpointKey   = "endpoint"
	LoggingRemoteAddrKey = "remote_addr"
	LoggingUserAgentKey  = "user_agent"
	LoggingQueryKey      = "query"
	LoggingStatusCodeKey = "status_code"
	LoggingDurationKey   = "duration"
	LoggingSuccessKey    = "success"

	LoggingActorIDKey            = "actor_id"
	LoggingActorRoleKey          = "actor_role"
	LoggingAppointmentIDKey      = "appointment_id"
	LoggingNewAppointmentIDKey   = "new_appointment_id"
	LoggingAppointmentStatusKey  = "appointment_status"
	LoggingConsultationStatusKey = "consultation_status"
	LoggingPatientIDKey          = "patient_id"
	LoggingDoctorIDKey           = "doctor_id"
	LoggingDateKey               = "date"
	LoggingSlotKey               = "slot"
	LoggingSlotCountKey          = "slot_count"
	LoggingPaymentIDKey          = "payment_id"
	LoggingPaymentStatusKey      = "payment_status"
	LoggingPaymentMethodKey      = "payment_method"
	LoggingPaymentAmountKey      = "payment_amount"
	LoggingPaymentDeadlineKey    = "payment_deadline"
	LoggingReminderIDKey         = "reminder_id"
	LoggingReminderTypeKey       = "reminder_type"
	LoggingReminderCountKey      = "reminder_count"
	LoggingNotificationTypeKey   = "notification_type"
	LoggingRecipientIDKey        = "recipient_id"
	LoggingRedisKey              = "redis_key"
	LoggingQueueNameKey          = "queue_name"
	LoggingWatcherNameKey        = "watcher"
	LoggingWatcherIntervalKey    = "interval"
	LoggingSweepNowKey           = "now"
	LoggingSweepProcessedKey     = "processed"
	LoggingSweepFailedKey        = "failed"
	LoggingStartTimeKey          = "start_time"
	LoggingEndTimeKey            = "end_time"
)
