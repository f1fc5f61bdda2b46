package payments

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
)

type PaymentMongoRepository struct {
	Collection *mongo.Collection
}

func NewPaymentMongoRepository(db *mongo.Client, dbName string) contracts.PaymentRepository {
	return &PaymentMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionPayments),
	}
}

func (repo *PaymentMongoRepository) CreatePayment(ctx context.Context, payment *models.Payment) error {
	if payment.ID == "" {
		payment.ID = primitive.NewObjectID().Hex()
	}
	_, err := repo.Collection.InsertOne(ctx, payment)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return exceptions.ErrDuplicateDocument
		}
		return exceptions.ErrMongoDBInsertDocument(err)
	}
	return nil
}

func (repo *PaymentMongoRepository) FindByAppointmentID(ctx context.Context, appointmentID string) (*models.Payment, error) {
	var payment models.Payment
	err := repo.Collection.FindOne(ctx, bson.M{"appointmentId": appointmentID}).Decode(&payment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &payment, nil
}

func (repo *PaymentMongoRepository) CompletePayment(ctx context.Context, paymentID string, method models.PaymentMethod, details models.PaymentDetails, at time.Time) (bool, error) {
	filter := bson.M{
		"_id":             paymentID,
		"status":          models.PaymentStatusPending,
		"paymentDeadline": bson.M{"$gte": at},
	}
	update := bson.M{"$set": bson.M{
		"status":      models.PaymentStatusCompleted,
		"method":      method,
		"details":     details,
		"completedAt": at,
		"updatedAt":   at,
	}}
	return repo.updateOne(ctx, filter, update)
}

func (repo *PaymentMongoRepository) ExpirePayment(ctx context.Context, paymentID, reason string, at time.Time) (bool, error) {
	filter := bson.M{
		"_id":             paymentID,
		"status":          models.PaymentStatusPending,
		"paymentDeadline": bson.M{"$lt": at},
	}
	update := bson.M{"$set": bson.M{
		"status":        models.PaymentStatusExpired,
		"failureReason": reason,
		"failedAt":      at,
		"updatedAt":     at,
	}}
	return repo.updateOne(ctx, filter, update)
}

func (repo *PaymentMongoRepository) RetirePayment(ctx context.Context, paymentID string, from models.PaymentStatus, reason, transferredTo string, at time.Time) (bool, error) {
	if !from.CanTransferOut() {
		return false, nil
	}
	set := bson.M{
		"status":        models.PaymentStatusExpired,
		"failureReason": reason,
		"failedAt":      at,
		"updatedAt":     at,
	}
	if transferredTo != "" {
		set["transferredTo"] = transferredTo
	}
	return repo.updateOne(ctx, bson.M{"_id": paymentID, "status": from}, bson.M{"$set": set})
}

func (repo *PaymentMongoRepository) FindOverduePayments(ctx context.Context, now time.Time) ([]models.Payment, error) {
	filter := bson.M{
		"status":          models.PaymentStatusPending,
		"paymentDeadline": bson.M{"$lt": now},
	}
	cursor, err := repo.Collection.Find(ctx, filter)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}

	payments := []models.Payment{}
	err = cursor.All(ctx, &payments)
	if err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return payments, nil
}

func (repo *PaymentMongoRepository) updateOne(ctx context.Context, filter, update bson.M) (bool, error) {
	result, err := repo.Collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return result.MatchedCount == 1, nil
}
