package doctors

import (
	"context"
	"doccare-service/internal/app/contracts"
	"doccare-service/internal/app/models"
	"doccare-service/internal/pkg/constvars"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// cachedDirectory reads doctor profiles through a Redis cache. A cache
// failure falls back to the repository.
type cachedDirectory struct {
	DoctorRepository contracts.DoctorRepository
	RedisRepository  contracts.RedisRepository
	CacheTTL         time.Duration
	Log              *zap.Logger
}

func NewDoctorDirectory(doctorRepository contracts.DoctorRepository, redisRepository contracts.RedisRepository, cacheTTL time.Duration, logger *zap.Logger) contracts.DoctorDirectory {
	return &cachedDirectory{
		DoctorRepository: doctorRepository,
		RedisRepository:  redisRepository,
		CacheTTL:         cacheTTL,
		Log:              logger,
	}
}

func (d *cachedDirectory) GetWorkingHours(ctx context.Context, doctorID string) (*models.WorkingHours, error) {
	doctor, err := d.findDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if doctor == nil || doctor.WorkingHours == nil {
		return nil, nil
	}
	if doctor.WorkingHours.Start == "" || doctor.WorkingHours.End == "" {
		return nil, nil
	}
	return doctor.WorkingHours, nil
}

func (d *cachedDirectory) GetConsultationFee(ctx context.Context, doctorID string) (float64, error) {
	doctor, err := d.findDoctor(ctx, doctorID)
	if err != nil {
		return 0, err
	}
	if doctor == nil || doctor.ConsultationFee < 0 {
		return 0, nil
	}
	return doctor.ConsultationFee, nil
}

func (d *cachedDirectory) findDoctor(ctx context.Context, doctorID string) (*models.Doctor, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	key := fmt.Sprintf(constvars.RedisKeyDoctorDirectoryFormat, doctorID)

	if d.RedisRepository != nil {
		cached, err := d.RedisRepository.Get(ctx, key)
		if err != nil {
			d.Log.Warn("doctorDirectory.findDoctor cache read failed",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingRedisKey, key),
				zap.Error(err),
			)
		} else if cached != "" {
			var doctor models.Doctor
			if err := json.Unmarshal([]byte(cached), &doctor); err == nil {
				return &doctor, nil
			}
		}
	}

	doctor, err := d.DoctorRepository.FindByID(ctx, doctorID)
	if err != nil {
		d.Log.Error("doctorDirectory.findDoctor error fetching doctor",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingDoctorIDKey, doctorID),
			zap.Error(err),
		)
		return nil, err
	}
	if doctor == nil {
		return nil, nil
	}

	if d.RedisRepository != nil && d.CacheTTL > 0 {
		if err := d.RedisRepository.Set(ctx, key, doctor, d.CacheTTL); err != nil {
			d.Log.Warn("doctorDirectory.findDoctor cache write failed",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingRedisKey, key),
				zap.Error(err),
			)
		}
	}
	return doctor, nil
}
