// File: database/repository/reservation/interface.go
package reservationRepo

import (
	"context"

	"innkeeper/database"
	"innkeeper/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ReservationRepository is the append-mostly reservation ledger. The chat core
// only inserts new pending rows and reads aggregates; status mutation belongs
// to the admin surface.
type ReservationRepository interface {
	Create(ctx context.Context, res *models.Reservation) (string, error)
	ReadAll(ctx context.Context) ([]models.Reservation, error)
	ListByDateRange(ctx context.Context, from, to string) ([]models.Reservation, error)
}

type mongoReservationRepo struct {
	coll *mongo.Collection
}

// NewMongoReservationRepo constructs a new MongoDB ReservationRepository.
func NewMongoReservationRepo() ReservationRepository {
	db := database.MongoClient.Database("innkeeper")
	return &mongoReservationRepo{
		coll: db.Collection("reservations"),
	}
}
