package recordsRepo

import (
	"context"
	"errors"

	"medibook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrRecordNotFound is returned when no record matches the ticket ID.
var ErrRecordNotFound = errors.New("booking record not found")

// Archive inserts a confirmed booking record.
func (r *mongoRecordArchive) Archive(ctx context.Context, record *models.BookingRecord) error {
	_, err := r.coll.InsertOne(ctx, record)
	return err
}

// GetByTicketID returns a booking record by its ticket ID.
func (r *mongoRecordArchive) GetByTicketID(ctx context.Context, ticketID string) (*models.BookingRecord, error) {
	var record models.BookingRecord
	err := r.coll.FindOne(ctx, bson.M{"ticketId": ticketID}).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &record, nil
}

// ListByKind fetches all records for one workflow kind.
func (r *mongoRecordArchive) ListByKind(ctx context.Context, kind models.WorkflowKind) ([]models.BookingRecord, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"kind": kind})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []models.BookingRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}
