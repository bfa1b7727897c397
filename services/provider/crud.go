package provider

import (
	"context"
	"fmt"
	"time"

	"homeserve/models"
	"homeserve/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func (s *DefaultProviderService) GetProviderByID(providerID string) (*models.Provider, error) {
	prov, err := s.Repo.GetByID(providerID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch provider: %w", err)
	}
	if prov == nil || prov.Status == models.AccountStatusDeleted {
		return nil, fmt.Errorf("provider not found")
	}
	return prov, nil
}

// GetPublicProfile returns a provider stripped of security and payout details,
// suitable for unauthenticated browsing.
func (s *DefaultProviderService) GetPublicProfile(providerID string) (*models.Provider, error) {
	prov, err := s.Repo.GetByIDWithProjection(providerID, bson.M{
		"id": 1, "profile": 1, "verification.verificationStatus": 1,
		"completedBookings": 1, "status": 1, "createdAt": 1,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch provider: %w", err)
	}
	if prov == nil || prov.Status == models.AccountStatusDeleted {
		return nil, fmt.Errorf("provider not found")
	}
	return prov, nil
}

// UpdateProvider applies the mutable profile fields and returns the fresh document.
func (s *DefaultProviderService) UpdateProvider(req models.ProviderUpdateRequest) (*models.Provider, error) {
	if req.ID == "" {
		return nil, fmt.Errorf("provider id is required")
	}

	updateDoc := bson.M{}
	if req.ProviderName != "" {
		updateDoc["profile.providerName"] = req.ProviderName
	}
	if req.PhoneNumber != "" {
		updateDoc["profile.phoneNumber"] = req.PhoneNumber
	}
	if req.ProfileImage != "" {
		updateDoc["profile.profileImage"] = req.ProfileImage
	}
	if req.Address != "" {
		updateDoc["profile.address"] = req.Address
	}
	if req.Bio != "" {
		updateDoc["profile.bio"] = req.Bio
	}
	if len(updateDoc) == 0 {
		return nil, fmt.Errorf("no fields to update")
	}

	if err := s.Repo.UpdateSetDocument(req.ID, updateDoc); err != nil {
		utils.GetLogger().Error("UpdateProvider: failed to update provider", zap.String("providerID", req.ID), zap.Error(err))
		return nil, fmt.Errorf("failed to update provider: %w", err)
	}
	return s.GetProviderByID(req.ID)
}

// DeleteProvider soft-deletes the account, deactivates its catalogue, and
// revokes every device session.
func (s *DefaultProviderService) DeleteProvider(providerID string) error {
	prov, err := s.Repo.GetByID(providerID)
	if err != nil {
		return fmt.Errorf("failed to fetch provider: %w", err)
	}
	if prov == nil || prov.Status == models.AccountStatusDeleted {
		return fmt.Errorf("provider not found")
	}

	services, err := s.Services.ListByProvider(providerID)
	if err != nil {
		utils.GetLogger().Warn("DeleteProvider: failed to list catalogue services",
			zap.String("providerID", providerID), zap.Error(err))
	}
	for i := range services {
		services[i].Active = false
		services[i].UpdatedAt = time.Now()
		if err := s.Services.Update(&services[i]); err != nil {
			utils.GetLogger().Warn("DeleteProvider: failed to deactivate service",
				zap.String("serviceID", services[i].ID), zap.Error(err))
		}
	}

	now := time.Now()
	if err := s.Repo.UpdateSetDocument(providerID, bson.M{
		"status":            models.AccountStatusDeleted,
		"deletedAt":         now,
		"security.devices":  []models.Device{},
		"security.fcmToken": "",
	}); err != nil {
		return fmt.Errorf("failed to delete provider: %w", err)
	}

	for _, d := range prov.Security.Devices {
		authCache := utils.GetAuthCacheClient()
		cacheKey := utils.AuthCachePrefix + providerID + ":" + d.DeviceID
		if err := authCache.Del(context.Background(), cacheKey).Err(); err != nil {
			utils.GetLogger().Warn("DeleteProvider: failed to clear auth cache",
				zap.String("deviceID", d.DeviceID), zap.Error(err))
		}
	}
	return nil
}

// UpdatePayoutDetails replaces the payout configuration.
func (s *DefaultProviderService) UpdatePayoutDetails(providerID string, details models.PayoutDetails) error {
	if len(details.PaymentMethods) == 0 {
		return fmt.Errorf("at least one payment method is required")
	}
	details.LastUpdated = time.Now()
	return s.Repo.UpdateSetDocument(providerID, bson.M{"payoutDetails": details})
}

// UpdateFCMToken stores the push-registration token for the account.
func (s *DefaultProviderService) UpdateFCMToken(providerID, token string) error {
	if token == "" {
		return fmt.Errorf("fcm token is required")
	}
	return s.Repo.UpdateSetDocument(providerID, bson.M{"security.fcmToken": token})
}

func (s *DefaultProviderService) GetAllProviders() ([]models.Provider, error) {
	return s.Repo.GetAll()
}
