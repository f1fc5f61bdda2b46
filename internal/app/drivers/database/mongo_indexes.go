package database

import (
	"context"
	"doccare-service/internal/pkg/constvars"
	"doccare-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type collectionIndexes struct {
	collection string
	models     []mongo.IndexModel
}

// EnsureMongoIndexes creates the indexes the lifecycles rely on for atomic
// uniqueness and for the watcher queries. It is safe to call on every boot.
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := []collectionIndexes{
		{
			collection: constvars.MongoCollectionAppointments,
			models: []mongo.IndexModel{
				{
					Keys: bson.D{{Key: "doctorId", Value: 1}, {Key: "date", Value: 1}, {Key: "slot", Value: 1}},
					Options: options.Index().
						SetName(constvars.MongoIndexAppointmentActiveSlot).
						SetUnique(true).
						SetPartialFilterExpression(bson.M{"isActive": true}),
				},
				{
					Keys:    bson.D{{Key: "consultationStatus", Value: 1}, {Key: "consultationStartTime", Value: 1}},
					Options: options.Index().SetName(constvars.MongoIndexConsultationRunning),
				},
				{
					Keys:    bson.D{{Key: "status", Value: 1}, {Key: "startAt", Value: 1}},
					Options: options.Index().SetName(constvars.MongoIndexAppointmentStatusStart),
				},
			},
		},
		{
			collection: constvars.MongoCollectionPayments,
			models: []mongo.IndexModel{
				{
					Keys:    bson.D{{Key: "appointmentId", Value: 1}},
					Options: options.Index().SetName(constvars.MongoIndexPaymentAppointment).SetUnique(true),
				},
				{
					Keys:    bson.D{{Key: "status", Value: 1}, {Key: "paymentDeadline", Value: 1}},
					Options: options.Index().SetName(constvars.MongoIndexPaymentDue),
				},
			},
		},
		{
			collection: constvars.MongoCollectionReminders,
			models: []mongo.IndexModel{
				{
					Keys:    bson.D{{Key: "appointmentId", Value: 1}, {Key: "type", Value: 1}},
					Options: options.Index().SetName(constvars.MongoIndexReminderAppointment).SetUnique(true),
				},
				{
					Keys:    bson.D{{Key: "isSent", Value: 1}, {Key: "reminderTime", Value: 1}},
					Options: options.Index().SetName(constvars.MongoIndexReminderDue),
				},
			},
		},
	}

	for _, index := range indexes {
		_, err := db.Collection(index.collection).Indexes().CreateMany(ctx, index.models)
		if err != nil {
			return exceptions.ErrMongoDBCreateIndex(err, index.collection)
		}
	}
	return nil
}
