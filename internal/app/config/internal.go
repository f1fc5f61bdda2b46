package config

import "time"

type InternalConfig struct {
	App             App
	JWT             AppJWT
	Scheduling      AppScheduling
	Watchers        AppWatchers
	Notification    AppNotification
	DoctorDirectory AppDoctorDirectory
}

type App struct {
	Env                       string
	Port                      string
	Version                   string
	Address                   string
	BaseUrl                   string
	Timezone                  string
	EndpointPrefix            string
	StorageDriver             string
	MaxRequests               int
	MaxTimeRequestsPerSeconds int
	ShutdownTimeoutInSeconds  int
	RequestTimeoutInSeconds   int
	SweepAPIKey               string
	SweepAPIKeyRateLimit      int
	DoctorSeedFile            string
}

type AppJWT struct {
	Secret            string
	Issuer            string
	TokenTTLInMinutes int
}

func (j AppJWT) TokenTTL() time.Duration {
	return time.Duration(j.TokenTTLInMinutes) * time.Minute
}

// AppScheduling holds the knobs of the appointment lifecycles.
type AppScheduling struct {
	SlotIntervalInMinutes         int
	ConsultationDurationInMinutes int
	DoctorNoticeInHours           int
	ReminderDispatchBatchSize     int
}

type AppWatchers struct {
	Enabled                             bool
	StartupDelayInSeconds               int
	PaymentExpiryIntervalInSeconds      int
	ConsultationExpiryIntervalInSeconds int
	ReminderDispatchIntervalInSeconds   int
	// ReminderDispatchPerSecond caps how fast due reminders are handed to the notification sink.
	ReminderDispatchPerSecond int
}

type AppNotification struct {
	QueueName               string
	DedupTTLInHours         int
	PublishTimeoutInSeconds int
}

type AppDoctorDirectory struct {
	CacheTTLInMinutes int
}

func (s AppScheduling) SlotInterval() time.Duration {
	return time.Duration(s.SlotIntervalInMinutes) * time.Minute
}

func (s AppScheduling) ConsultationDuration() time.Duration {
	return time.Duration(s.ConsultationDurationInMinutes) * time.Minute
}

func (s AppScheduling) DoctorNotice() time.Duration {
	return time.Duration(s.DoctorNoticeInHours) * time.Hour
}

func (w AppWatchers) StartupDelay() time.Duration {
	return time.Duration(w.StartupDelayInSeconds) * time.Second
}

func (w AppWatchers) IntervalOf(seconds int) time.Duration {
	return time.Duration(seconds) * time.Second
}

// Location resolves App.Timezone, falling back to UTC when it is unknown.
func (a App) Location() *time.Location {
	location, err := time.LoadLocation(a.Timezone)
	if err != nil {
		return time.UTC
	}
	return location
}
