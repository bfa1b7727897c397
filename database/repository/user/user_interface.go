package userRepo

import (
	"homeserve/models"

	"go.mongodb.org/mongo-driver/bson"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(user *models.User) error
	Update(user *models.User) error
	UpdateSetDocument(id string, updateDoc bson.M) error
	UpdateAddToSetDocument(id string, updateDoc bson.M) error
	PullFromArray(id, field string, value interface{}) error
	Delete(id string) error
	GetByID(id string) (*models.User, error)
	GetByIDWithProjection(id string, projection bson.M) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByEmailWithProjection(email string, projection bson.M) (*models.User, error)
	GetAll() ([]models.User, error)
	GetAllWithProjection(projection bson.M) ([]models.User, error)
}
