package provider

import (
	"fmt"
	"time"

	"homeserve/models"

	"github.com/google/uuid"
)

// CreateService adds a catalogue entry. Only verified providers can publish
// services.
func (s *DefaultProviderService) CreateService(providerID string, req models.ServiceRequest) (*models.Service, error) {
	prov, err := s.GetProviderByID(providerID)
	if err != nil {
		return nil, err
	}
	if prov.Verification.VerificationStatus != models.VerificationVerified {
		return nil, fmt.Errorf("provider must be verified before publishing services")
	}
	if req.BaseRate <= 0 {
		return nil, fmt.Errorf("base rate must be positive")
	}

	currency := req.Currency
	if currency == "" {
		currency = prov.PayoutDetails.Currency
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}

	svc := models.Service{
		ID:          uuid.New().String(),
		ProviderID:  providerID,
		Category:    req.Category,
		Name:        req.Name,
		Description: req.Description,
		UnitType:    req.UnitType,
		BaseRate:    req.BaseRate,
		Currency:    currency,
		Active:      active,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := s.Services.Create(&svc); err != nil {
		return nil, fmt.Errorf("failed to create service: %w", err)
	}
	return &svc, nil
}

// UpdateService mutates a catalogue entry owned by the provider.
func (s *DefaultProviderService) UpdateService(providerID, serviceID string, req models.ServiceRequest) (*models.Service, error) {
	svc, err := s.Services.GetByID(serviceID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch service: %w", err)
	}
	if svc == nil || svc.ProviderID != providerID {
		return nil, fmt.Errorf("service not found")
	}

	if req.Category != "" {
		svc.Category = req.Category
	}
	if req.Name != "" {
		svc.Name = req.Name
	}
	if req.Description != "" {
		svc.Description = req.Description
	}
	if req.UnitType != "" {
		svc.UnitType = req.UnitType
	}
	if req.BaseRate > 0 {
		svc.BaseRate = req.BaseRate
	}
	if req.Currency != "" {
		svc.Currency = req.Currency
	}
	if req.Active != nil {
		svc.Active = *req.Active
	}
	svc.UpdatedAt = time.Now()

	if err := s.Services.Update(svc); err != nil {
		return nil, fmt.Errorf("failed to update service: %w", err)
	}
	return svc, nil
}

// DeleteService removes a catalogue entry owned by the provider.
func (s *DefaultProviderService) DeleteService(providerID, serviceID string) error {
	svc, err := s.Services.GetByID(serviceID)
	if err != nil {
		return fmt.Errorf("failed to fetch service: %w", err)
	}
	if svc == nil || svc.ProviderID != providerID {
		return fmt.Errorf("service not found")
	}
	return s.Services.Delete(serviceID)
}

// ListProviderServices lists the provider's own catalogue, active or not.
func (s *DefaultProviderService) ListProviderServices(providerID string) ([]models.Service, error) {
	return s.Services.ListByProvider(providerID)
}

// BrowseServices lists active services, optionally filtered by category.
func (s *DefaultProviderService) BrowseServices(category string) ([]models.Service, error) {
	return s.Services.ListActiveByCategory(category)
}
