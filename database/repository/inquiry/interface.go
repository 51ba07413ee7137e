// File: database/repository/inquiry/interface.go
package inquiryRepo

import (
	"context"
	"sync"
	"time"

	"innkeeper/database"
	"innkeeper/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
)

// InquiryRepository persists open-ended guest inquiries handed to staff.
type InquiryRepository interface {
	Create(ctx context.Context, inq *models.Inquiry) (string, error)
}

type mongoInquiryRepo struct {
	coll *mongo.Collection
}

// NewMongoInquiryRepo constructs a new MongoDB InquiryRepository.
func NewMongoInquiryRepo() InquiryRepository {
	db := database.MongoClient.Database("innkeeper")
	return &mongoInquiryRepo{
		coll: db.Collection("inquiries"),
	}
}

func (r *mongoInquiryRepo) Create(ctx context.Context, inq *models.Inquiry) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if inq.ID == "" {
		inq.ID = uuid.New().String()
	}
	if inq.CreatedAt.IsZero() {
		inq.CreatedAt = time.Now()
	}
	if _, err := r.coll.InsertOne(ctx, inq); err != nil {
		return "", err
	}
	return inq.ID, nil
}

// MemoryInquiryRepo keeps inquiries in memory for tests and development.
type MemoryInquiryRepo struct {
	mu        sync.Mutex
	Inquiries []models.Inquiry
}

func NewMemoryInquiryRepo() *MemoryInquiryRepo {
	return &MemoryInquiryRepo{}
}

func (r *MemoryInquiryRepo) Create(ctx context.Context, inq *models.Inquiry) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if inq.ID == "" {
		inq.ID = uuid.New().String()
	}
	if inq.CreatedAt.IsZero() {
		inq.CreatedAt = time.Now()
	}
	r.Inquiries = append(r.Inquiries, *inq)
	return inq.ID, nil
}
