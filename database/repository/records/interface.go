package recordsRepo

import (
	"context"

	"medibook/database"
	"medibook/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// RecordArchive durably stores confirmed BookingRecords. The engine treats
// the archive as write-mostly: records are immutable once stored.
type RecordArchive interface {
	Archive(ctx context.Context, record *models.BookingRecord) error
	GetByTicketID(ctx context.Context, ticketID string) (*models.BookingRecord, error)
	ListByKind(ctx context.Context, kind models.WorkflowKind) ([]models.BookingRecord, error)
}

type mongoRecordArchive struct {
	coll *mongo.Collection
}

// NewMongoRecordArchive returns a RecordArchive backed by MongoDB.
func NewMongoRecordArchive() RecordArchive {
	db := database.MongoClient.Database("medibook")
	return &mongoRecordArchive{
		coll: db.Collection("booking_records"),
	}
}
