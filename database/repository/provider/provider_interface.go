package providerRepo

import (
	"homeserve/models"

	"go.mongodb.org/mongo-driver/bson"
)

// ProviderRepository defines persistence operations for providers.
type ProviderRepository interface {
	Create(provider *models.Provider) error
	Update(provider *models.Provider) error
	UpdateSetDocument(id string, updateDoc bson.M) error
	Delete(id string) error
	GetByID(id string) (*models.Provider, error)
	GetByIDWithProjection(id string, projection bson.M) (*models.Provider, error)
	GetByEmail(email string) (*models.Provider, error)
	GetAll() ([]models.Provider, error)
	SetRating(id string, rating float64, count int) error
	IncrementCompletedBookings(id string) error
}
