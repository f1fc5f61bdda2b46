package reminders

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

type ReminderMongoRepository struct {
	Collection *mongo.Collection
}

func NewReminderMongoRepository(db *mongo.Client, dbName string) contracts.ReminderRepository {
	return &ReminderMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionReminders),
	}
}

// CreateReminders inserts unordered so one duplicate does not stop the rest of the batch.
func (repo *ReminderMongoRepository) CreateReminders(ctx context.Context, reminders []models.Reminder) (int, error) {
	if len(reminders) == 0 {
		return 0, nil
	}

	documents := make([]interface{}, 0, len(reminders))
	for i := range reminders {
		if reminders[i].ID == "" {
			reminders[i].ID = primitive.NewObjectID().Hex()
		}
		documents = append(documents, reminders[i])
	}

	result, err := repo.Collection.InsertMany(ctx, documents, options.InsertMany().SetOrdered(false))
	if err != nil {
		var bulkErr mongo.BulkWriteException
		if errors.As(err, &bulkErr) && onlyDuplicateKeyErrors(bulkErr) {
			inserted := 0
			if result != nil {
				inserted = len(result.InsertedIDs)
			}
			return inserted, nil
		}
		return 0, exceptions.ErrMongoDBInsertDocument(err)
	}
	return len(result.InsertedIDs), nil
}

func onlyDuplicateKeyErrors(bulkErr mongo.BulkWriteException) bool {
	if bulkErr.WriteConcernError != nil {
		return false
	}
	for _, writeErr := range bulkErr.WriteErrors {
		if writeErr.Code != 11000 {
			return false
		}
	}
	return true
}

func (repo *ReminderMongoRepository) FindByAppointmentID(ctx context.Context, appointmentID string) ([]models.Reminder, error) {
	cursor, err := repo.Collection.Find(ctx, bson.M{"appointmentId": appointmentID}, options.Find().SetSort(bson.D{{Key: "reminderTime", Value: 1}}))
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}

	reminders := []models.Reminder{}
	err = cursor.All(ctx, &reminders)
	if err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return reminders, nil
}

// DeleteUnsentByAppointmentID never touches sent reminders; they are history.
func (repo *ReminderMongoRepository) DeleteUnsentByAppointmentID(ctx context.Context, appointmentID string) (int64, error) {
	result, err := repo.Collection.DeleteMany(ctx, bson.M{"appointmentId": appointmentID, "isSent": false})
	if err != nil {
		return 0, exceptions.ErrMongoDBDeleteDocument(err)
	}
	return result.DeletedCount, nil
}

func (repo *ReminderMongoRepository) FindDueReminders(ctx context.Context, now time.Time, limit int) ([]models.Reminder, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "reminderTime", Value: 1}})
	if limit > 0 {
		findOptions.SetLimit(int64(limit))
	}

	cursor, err := repo.Collection.Find(ctx, bson.M{"isSent": false, "reminderTime": bson.M{"$lte": now}}, findOptions)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}

	reminders := []models.Reminder{}
	err = cursor.All(ctx, &reminders)
	if err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return reminders, nil
}

func (repo *ReminderMongoRepository) MarkSent(ctx context.Context, reminderID string, at time.Time) (bool, error) {
	filter := bson.M{"_id": reminderID, "isSent": false}
	update := bson.M{"$set": bson.M{"isSent": true, "sentAt": at, "updatedAt": at}}
	result, err := repo.Collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return result.MatchedCount == 1, nil
}
