package wiring

import (
	"context"
	"doccare-service/internal/app/config"
	"doccare-service/internal/app/contracts"
	"doccare-service/internal/app/drivers/database"
	"doccare-service/internal/app/models"
	"doccare-service/internal/app/services/core/appointments"
	"doccare-service/internal/app/services/core/consultations"
	"doccare-service/internal/app/services/core/doctors"
	"doccare-service/internal/app/services/core/payments"
	"doccare-service/internal/app/services/core/reminders"
	"doccare-service/internal/app/services/core/watchers"
	"doccare-service/internal/app/services/shared/jwtmanager"
	"doccare-service/internal/app/services/shared/notification"
	"doccare-service/internal/app/services/shared/ratelimiter"
	"doccare-service/internal/app/services/shared/redis"
	"doccare-service/internal/pkg/constvars"
	"doccare-service/internal/pkg/utils"
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// Services is the wired application graph shared by the HTTP server and the CLI.
type Services struct {
	Clock               utils.Clock
	DoctorRepository    contracts.DoctorRepository
	AppointmentUsecase  contracts.AppointmentUsecase
	PaymentUsecase      contracts.PaymentUsecase
	ConsultationUsecase contracts.ConsultationUsecase
	ReminderUsecase     contracts.ReminderUsecase
	Watchers            *watchers.Registry
	JWTManager          *jwtmanager.JWTManager
	ResourceLimiter     *ratelimiter.ResourceLimiter
}

type repositories struct {
	appointments contracts.AppointmentRepository
	payments     contracts.PaymentRepository
	reminders    contracts.ReminderRepository
	doctors      contracts.DoctorRepository
	redis        contracts.RedisRepository
}

// Build wires repositories, usecases and watchers for the configured storage
// driver. The Mongo driver requires bootstrap.MongoDB and bootstrap.Redis; the
// RabbitMQ sink is used whenever bootstrap.RabbitMQ is set.
func Build(ctx context.Context, bootstrap *config.Bootstrap, clock utils.Clock) (*Services, error) {
	internalConfig := bootstrap.InternalConfig
	log := bootstrap.Logger

	repos, err := buildRepositories(ctx, bootstrap)
	if err != nil {
		return nil, err
	}

	if path := internalConfig.App.DoctorSeedFile; path != "" {
		count, err := SeedDoctors(ctx, repos.doctors, path)
		if err != nil {
			return nil, err
		}
		log.Info("wiring.Build seeded doctors", zap.Int("doctor_count", count), zap.String("file", path))
	}

	sink, err := buildSink(bootstrap, repos.redis)
	if err != nil {
		return nil, err
	}
	notifier := notification.NewNotifier(sink, log, clock)

	doctorDirectory := doctors.NewDoctorDirectory(
		repos.doctors,
		repos.redis,
		time.Duration(internalConfig.DoctorDirectory.CacheTTLInMinutes)*time.Minute,
		log,
	)

	reminderUsecase := reminders.NewReminderUsecase(repos.reminders, repos.appointments, notifier, clock, internalConfig, log)
	paymentUsecase := payments.NewPaymentUsecase(repos.payments, repos.appointments, reminderUsecase, doctorDirectory, notifier, clock, internalConfig, log)
	consultationUsecase := consultations.NewConsultationUsecase(repos.appointments, notifier, clock, internalConfig, log)
	appointmentUsecase := appointments.NewAppointmentUsecase(repos.appointments, paymentUsecase, reminderUsecase, doctorDirectory, notifier, clock, internalConfig, log)

	registry := watchers.NewRegistry(
		watchers.NewPaymentExpiryWatcher(paymentUsecase, clock, internalConfig, log),
		watchers.NewConsultationExpiryWatcher(consultationUsecase, clock, internalConfig, log),
		watchers.NewReminderDispatchWatcher(reminderUsecase, clock, internalConfig, log),
	)

	jwtManager, err := jwtmanager.NewJWTManager(internalConfig, log)
	if err != nil {
		return nil, err
	}

	return &Services{
		Clock:               clock,
		DoctorRepository:    repos.doctors,
		AppointmentUsecase:  appointmentUsecase,
		PaymentUsecase:      paymentUsecase,
		ConsultationUsecase: consultationUsecase,
		ReminderUsecase:     reminderUsecase,
		Watchers:            registry,
		JWTManager:          jwtManager,
		ResourceLimiter:     ratelimiter.NewResourceLimiter(repos.redis, log),
	}, nil
}

func buildRepositories(ctx context.Context, bootstrap *config.Bootstrap) (*repositories, error) {
	switch bootstrap.InternalConfig.App.StorageDriver {
	case constvars.StorageDriverMemory:
		return &repositories{
			appointments: appointments.NewAppointmentMemoryRepository(),
			payments:     payments.NewPaymentMemoryRepository(),
			reminders:    reminders.NewReminderMemoryRepository(),
			doctors:      doctors.NewDoctorMemoryRepository(),
			redis:        redis.NewMemoryRedisRepository(nil),
		}, nil
	case constvars.StorageDriverMongo:
		if bootstrap.MongoDB == nil || bootstrap.Redis == nil {
			return nil, fmt.Errorf("storage driver %s needs MongoDB and Redis connections", constvars.StorageDriverMongo)
		}
		dbName := bootstrap.DriverConfig.MongoDB.DbName
		if err := database.EnsureMongoIndexes(ctx, bootstrap.MongoDB.Database(dbName)); err != nil {
			return nil, err
		}
		return &repositories{
			appointments: appointments.NewAppointmentMongoRepository(bootstrap.MongoDB, dbName),
			payments:     payments.NewPaymentMongoRepository(bootstrap.MongoDB, dbName),
			reminders:    reminders.NewReminderMongoRepository(bootstrap.MongoDB, dbName),
			doctors:      doctors.NewDoctorMongoRepository(bootstrap.MongoDB, dbName),
			redis:        redis.NewRedisRepository(bootstrap.Redis),
		}, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", bootstrap.InternalConfig.App.StorageDriver)
	}
}

func buildSink(bootstrap *config.Bootstrap, redisRepository contracts.RedisRepository) (contracts.NotificationSink, error) {
	if bootstrap.RabbitMQ == nil {
		return notification.NewLogSink(bootstrap.Logger), nil
	}
	sink, err := notification.NewRabbitMQSink(bootstrap.RabbitMQ, redisRepository, bootstrap.Logger, bootstrap.InternalConfig)
	if err != nil {
		return nil, err
	}
	return sink, nil
}

// SeedDoctors upserts the doctors listed in a JSON array file.
func SeedDoctors(ctx context.Context, repository contracts.DoctorRepository, path string) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read doctor seed file: %w", err)
	}

	var seed []models.Doctor
	if err := json.Unmarshal(raw, &seed); err != nil {
		return 0, fmt.Errorf("parse doctor seed file: %w", err)
	}

	for i := range seed {
		if seed[i].ID == "" {
			return i, fmt.Errorf("doctor at index %d has no id", i)
		}
		if err := repository.UpsertDoctor(ctx, &seed[i]); err != nil {
			return i, err
		}
	}
	return len(seed), nil
}
