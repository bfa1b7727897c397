package user

import (
	"context"
	"fmt"
	"time"

	"homeserve/models"
	"homeserve/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// GetUserDevices lists the devices attached to the account.
func (s *DefaultUserService) GetUserDevices(userID string) ([]models.Device, error) {
	usr, err := s.Repo.GetByIDWithProjection(userID, bson.M{"devices": 1})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch devices: %w", err)
	}
	if usr == nil {
		return nil, fmt.Errorf("user not found")
	}
	return usr.Devices, nil
}

// RevokeUserAuthToken invalidates the token bound to one device: it clears the
// cached hash and removes the device record from the user document.
func (s *DefaultUserService) RevokeUserAuthToken(userID, deviceID string) error {
	authCache := utils.GetAuthCacheClient()
	cacheKey := utils.AuthCachePrefix + userID + ":" + deviceID
	if err := authCache.Del(context.Background(), cacheKey).Err(); err != nil {
		utils.GetLogger().Warn("RevokeUserAuthToken: failed to clear auth cache",
			zap.String("userID", userID), zap.String("deviceID", deviceID), zap.Error(err))
	}
	if err := s.Repo.PullFromArray(userID, "devices", bson.M{"deviceId": deviceID}); err != nil {
		return fmt.Errorf("failed to remove device: %w", err)
	}
	return nil
}

// SignOutOtherDevices revokes every device session except the current one.
func (s *DefaultUserService) SignOutOtherDevices(userID, currentDeviceID string) error {
	usr, err := s.Repo.GetByIDWithProjection(userID, bson.M{"devices": 1})
	if err != nil {
		return fmt.Errorf("failed to fetch devices: %w", err)
	}
	if usr == nil {
		return fmt.Errorf("user not found")
	}
	for _, d := range usr.Devices {
		if d.DeviceID == currentDeviceID {
			continue
		}
		if err := s.RevokeUserAuthToken(userID, d.DeviceID); err != nil {
			return err
		}
	}
	return nil
}

// UpdateFCMToken stores the push-registration token for the account.
func (s *DefaultUserService) UpdateFCMToken(userID, token string) error {
	if token == "" {
		return fmt.Errorf("fcm token is required")
	}
	return s.Repo.UpdateSetDocument(userID, bson.M{"fcmToken": token, "updatedAt": time.Now()})
}

// UpdateUserPassword verifies the current password, stores the new hash, and
// signs out every other device so stale tokens die with the old password.
func (s *DefaultUserService) UpdateUserPassword(userID, currentPassword, newPassword, currentDeviceID string) (*models.User, error) {
	usr, err := s.Repo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	if usr == nil || usr.Status == models.AccountStatusDeleted {
		return nil, fmt.Errorf("user not found")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte(currentPassword)); err != nil {
		return nil, fmt.Errorf("current password is incorrect")
	}
	if err := VerifyPasswordComplexity(newPassword); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		utils.GetLogger().Error("UpdateUserPassword: failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("failed to update password")
	}

	if err := s.Repo.UpdateSetDocument(userID, bson.M{
		"passwordHash": string(hashed),
		"updatedAt":    time.Now(),
	}); err != nil {
		return nil, fmt.Errorf("failed to update password: %w", err)
	}

	if err := s.SignOutOtherDevices(userID, currentDeviceID); err != nil {
		utils.GetLogger().Warn("UpdateUserPassword: failed to sign out other devices",
			zap.String("userID", userID), zap.Error(err))
	}

	return s.GetUserByID(userID)
}
