// File: database/repository/reservation/memory.go
package reservationRepo

import (
	"context"
	"sync"
	"time"

	"innkeeper/models"

	"github.com/google/uuid"
)

// MemoryReservationRepo is an in-memory ledger used by tests and redis-less
// development runs. ReadAll returns a copy, so availability checks always see
// a consistent snapshot.
type MemoryReservationRepo struct {
	mu           sync.RWMutex
	reservations []models.Reservation
}

// NewMemoryReservationRepo constructs an empty in-memory ledger.
func NewMemoryReservationRepo() *MemoryReservationRepo {
	return &MemoryReservationRepo{}
}

func (r *MemoryReservationRepo) Create(ctx context.Context, res *models.Reservation) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if res.ID == "" {
		res.ID = uuid.New().String()
	}
	if res.CreatedAt.IsZero() {
		res.CreatedAt = time.Now()
	}
	r.reservations = append(r.reservations, *res)
	return res.ID, nil
}

func (r *MemoryReservationRepo) ReadAll(ctx context.Context) ([]models.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Reservation, len(r.reservations))
	copy(out, r.reservations)
	return out, nil
}

func (r *MemoryReservationRepo) ListByDateRange(ctx context.Context, from, to string) ([]models.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.Reservation
	for _, res := range r.reservations {
		if res.Date >= from && res.Date <= to {
			out = append(out, res)
		}
	}
	return out, nil
}
