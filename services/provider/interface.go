package provider

import (
	"context"

	providerRepo "homeserve/database/repository/provider"
	serviceRepo "homeserve/database/repository/service"
	"homeserve/models"
	"homeserve/services/storage"
)

type ProviderService interface {
	// Registration and authentication
	RegisterProvider(req models.ProviderRegistrationRequest, device models.Device) (*AuthResponse, error)
	AuthenticateProvider(email, password string, device models.Device) (*AuthResponse, error)

	// Provider management
	GetProviderByID(providerID string) (*models.Provider, error)
	GetPublicProfile(providerID string) (*models.Provider, error)
	UpdateProvider(req models.ProviderUpdateRequest) (*models.Provider, error)
	DeleteProvider(providerID string) error
	UpdatePayoutDetails(providerID string, details models.PayoutDetails) error
	UpdateFCMToken(providerID, token string) error
	RevokeProviderAuthToken(providerID, deviceID string) error

	// Verification
	SubmitKYPDocument(ctx context.Context, providerID, legalName, localFilePath string) (*models.Provider, error)
	SetVerificationStatus(providerID, status string) error

	// Catalogue
	CreateService(providerID string, req models.ServiceRequest) (*models.Service, error)
	UpdateService(providerID, serviceID string, req models.ServiceRequest) (*models.Service, error)
	DeleteService(providerID, serviceID string) error
	ListProviderServices(providerID string) ([]models.Service, error)
	BrowseServices(category string) ([]models.Service, error)

	// Admin
	GetAllProviders() ([]models.Provider, error)
}

// DefaultProviderService is the production implementation.
type DefaultProviderService struct {
	Repo     providerRepo.ProviderRepository
	Services serviceRepo.ServiceRepository
	Storage  storage.StorageService
}

// AuthResponse contains the provider's ID, token, and display details.
type AuthResponse struct {
	ID           string `json:"id"`
	Token        string `json:"token"`
	ProviderName string `json:"providerName,omitempty"`
	Email        string `json:"email,omitempty"`
	Verification string `json:"verificationStatus,omitempty"`
}
