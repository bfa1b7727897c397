package serviceRepo

import "homeserve/models"

// ServiceRepository defines persistence operations for catalogue services.
type ServiceRepository interface {
	Create(service *models.Service) error
	Update(service *models.Service) error
	Delete(id string) error
	GetByID(id string) (*models.Service, error)
	ListByProvider(providerID string) ([]models.Service, error)
	ListActiveByCategory(category string) ([]models.Service, error)
}
