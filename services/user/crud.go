package user

import (
	"fmt"
	"time"

	"homeserve/models"
	"homeserve/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func (s *DefaultUserService) GetUserByID(userID string) (*models.User, error) {
	usr, err := s.Repo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	if usr == nil || usr.Status == models.AccountStatusDeleted {
		return nil, fmt.Errorf("user not found")
	}
	return usr, nil
}

func (s *DefaultUserService) GetUserByEmail(email string) (*models.User, error) {
	usr, err := s.Repo.GetByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	if usr == nil || usr.Status == models.AccountStatusDeleted {
		return nil, fmt.Errorf("user not found")
	}
	return usr, nil
}

// UpdateUser applies the mutable profile fields and returns the fresh document.
func (s *DefaultUserService) UpdateUser(req models.UserUpdateRequest) (*models.User, error) {
	if req.ID == "" {
		return nil, fmt.Errorf("user id is required")
	}

	updateDoc := bson.M{}
	if req.Username != "" {
		updateDoc["username"] = req.Username
	}
	if req.PhoneNumber != "" {
		updateDoc["phoneNumber"] = req.PhoneNumber
	}
	if req.ProfileImage != "" {
		updateDoc["profileImage"] = req.ProfileImage
	}
	if req.Address != "" {
		updateDoc["address"] = req.Address
	}
	if len(updateDoc) == 0 {
		return nil, fmt.Errorf("no fields to update")
	}
	updateDoc["updatedAt"] = time.Now()

	if err := s.Repo.UpdateSetDocument(req.ID, updateDoc); err != nil {
		utils.GetLogger().Error("UpdateUser: failed to update user", zap.String("userID", req.ID), zap.Error(err))
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return s.GetUserByID(req.ID)
}

// DeleteUser soft-deletes the account and revokes every device session.
func (s *DefaultUserService) DeleteUser(userID string) error {
	usr, err := s.Repo.GetByIDWithProjection(userID, bson.M{"id": 1, "devices": 1, "status": 1})
	if err != nil {
		return fmt.Errorf("failed to fetch user: %w", err)
	}
	if usr == nil || usr.Status == models.AccountStatusDeleted {
		return fmt.Errorf("user not found")
	}

	now := time.Now()
	updateDoc := bson.M{
		"status":    models.AccountStatusDeleted,
		"deletedAt": now,
		"updatedAt": now,
		"devices":   []models.Device{},
		"fcmToken":  "",
	}
	if err := s.Repo.UpdateSetDocument(userID, updateDoc); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	for _, d := range usr.Devices {
		if err := s.RevokeUserAuthToken(userID, d.DeviceID); err != nil {
			utils.GetLogger().Warn("DeleteUser: failed to revoke device token",
				zap.String("userID", userID), zap.String("deviceID", d.DeviceID), zap.Error(err))
		}
	}
	return nil
}

func (s *DefaultUserService) GetAllUsers() ([]models.User, error) {
	return s.Repo.GetAllWithProjection(bson.M{"passwordHash": 0, "devices": 0})
}
