package appointments

import (
	"context"
	"doccare-service/internal/app/contracts"
	"doccare-service/internal/app/models"
	"doccare-service/internal/pkg/constvars"
	"doccare-service/internal/pkg/exceptions"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AppointmentMongoRepository struct {
	Collection *mongo.Collection
}

func NewAppointmentMongoRepository(db *mongo.Client, dbName string) contracts.AppointmentRepository {
	return &AppointmentMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionAppointments),
	}
}

// CreateAppointment relies on the partial unique index over active
// (doctorId, date, slot) to reject a second booking of the same slot.
func (repo *AppointmentMongoRepository) CreateAppointment(ctx context.Context, appointment *models.Appointment) error {
	if appointment.ID == "" {
		appointment.ID = primitive.NewObjectID().Hex()
	}
	_, err := repo.Collection.InsertOne(ctx, appointment)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return exceptions.ErrDuplicateDocument
		}
		return exceptions.ErrMongoDBInsertDocument(err)
	}
	return nil
}

func (repo *AppointmentMongoRepository) FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	var appointment models.Appointment
	err := repo.Collection.FindOne(ctx, bson.M{"_id": appointmentID}).Decode(&appointment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &appointment, nil
}

func (repo *AppointmentMongoRepository) FindAll(ctx context.Context, filter models.AppointmentFilter) ([]models.Appointment, int, error) {
	query := bson.M{}
	if filter.PatientID != "" {
		query["patientId"] = filter.PatientID
	}
	if filter.DoctorID != "" {
		query["doctorId"] = filter.DoctorID
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Date != "" {
		query["date"] = filter.Date
	}

	total, err := repo.Collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, exceptions.ErrMongoDBFindDocument(err)
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "startAt", Value: 1}, {Key: "createdAt", Value: 1}})
	if filter.PageSize > 0 {
		findOptions.SetSkip(int64(filter.Skip())).SetLimit(int64(filter.PageSize))
	}

	cursor, err := repo.Collection.Find(ctx, query, findOptions)
	if err != nil {
		return nil, 0, exceptions.ErrMongoDBFindDocument(err)
	}

	appointments := []models.Appointment{}
	err = cursor.All(ctx, &appointments)
	if err != nil {
		return nil, 0, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return appointments, int(total), nil
}

func (repo *AppointmentMongoRepository) FindActiveBySlot(ctx context.Context, doctorID, date, slot string) (*models.Appointment, error) {
	var appointment models.Appointment
	filter := bson.M{"doctorId": doctorID, "date": date, "slot": slot, "isActive": true}
	err := repo.Collection.FindOne(ctx, filter).Decode(&appointment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &appointment, nil
}

func (repo *AppointmentMongoRepository) FindBookedSlots(ctx context.Context, doctorID, date string) ([]string, error) {
	values, err := repo.Collection.Distinct(ctx, "slot", bson.M{"doctorId": doctorID, "date": date, "isActive": true})
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}

	slots := make([]string, 0, len(values))
	for _, value := range values {
		if slot, ok := value.(string); ok {
			slots = append(slots, slot)
		}
	}
	return slots, nil
}

func (repo *AppointmentMongoRepository) UpdateStatus(ctx context.Context, appointmentID string, transition models.AppointmentTransition) (bool, error) {
	set := bson.M{
		"status":    transition.To,
		"updatedAt": transition.At,
	}
	if transition.ReleasesSlot() {
		set["isActive"] = false
	}
	if transition.CancellationReason != "" {
		set["cancellationReason"] = transition.CancellationReason
	}
	if transition.CancelledBy != "" {
		set["cancelledBy"] = transition.CancelledBy
	}
	if transition.RescheduledTo != "" {
		set["rescheduledTo"] = transition.RescheduledTo
	}

	filter := bson.M{"_id": appointmentID, "status": bson.M{"$in": transition.From}}
	result, err := repo.Collection.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return false, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return result.MatchedCount == 1, nil
}

func (repo *AppointmentMongoRepository) StartConsultation(ctx context.Context, appointmentID string, startedAt time.Time) (bool, error) {
	filter := bson.M{
		"_id":                appointmentID,
		"status":             models.AppointmentStatusConfirmed,
		"consultationStatus": models.ConsultationStatusNotStarted,
	}
	update := bson.M{"$set": bson.M{
		"consultationStatus":    models.ConsultationStatusInProgress,
		"consultationStartTime": startedAt,
		"updatedAt":             startedAt,
	}}
	result, err := repo.Collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return result.MatchedCount == 1, nil
}

func (repo *AppointmentMongoRepository) CompleteConsultation(ctx context.Context, appointmentID string, endedAt time.Time) (bool, error) {
	filter := bson.M{
		"_id":                appointmentID,
		"consultationStatus": models.ConsultationStatusInProgress,
	}
	update := bson.M{"$set": bson.M{
		"consultationStatus":  models.ConsultationStatusCompleted,
		"consultationEndTime": endedAt,
		"updatedAt":           endedAt,
	}}
	result, err := repo.Collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return result.MatchedCount == 1, nil
}

func (repo *AppointmentMongoRepository) FindExpiredConsultations(ctx context.Context, startedBefore time.Time) ([]models.Appointment, error) {
	filter := bson.M{
		"consultationStatus":    models.ConsultationStatusInProgress,
		"consultationStartTime": bson.M{"$lte": startedBefore},
	}
	cursor, err := repo.Collection.Find(ctx, filter)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}

	appointments := []models.Appointment{}
	err = cursor.All(ctx, &appointments)
	if err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return appointments, nil
}

func (repo *AppointmentMongoRepository) FindUnsettledConsultations(ctx context.Context) ([]models.Appointment, error) {
	return repo.findMany(ctx, bson.M{
		"status":             models.AppointmentStatusConfirmed,
		"consultationStatus": models.ConsultationStatusCompleted,
	})
}

func (repo *AppointmentMongoRepository) FindPendingStartedBefore(ctx context.Context, startedBefore time.Time) ([]models.Appointment, error) {
	return repo.findMany(ctx, bson.M{
		"status":  models.AppointmentStatusPending,
		"startAt": bson.M{"$lt": startedBefore},
	})
}

func (repo *AppointmentMongoRepository) findMany(ctx context.Context, filter bson.M) ([]models.Appointment, error) {
	cursor, err := repo.Collection.Find(ctx, filter)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}

	appointments := []models.Appointment{}
	err = cursor.All(ctx, &appointments)
	if err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return appointments, nil
}
