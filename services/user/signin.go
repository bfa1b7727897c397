package user

import (
	"context"
	"fmt"
	"time"

	"homeserve/models"
	"homeserve/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Authenticate verifies credentials, binds a token to the signing-in device,
// and records the device on the user document.
func (s *DefaultUserService) Authenticate(email, password string, device models.Device) (*AuthResponse, error) {
	logger := utils.GetLogger()

	usr, err := s.Repo.GetByEmail(email)
	if err != nil {
		logger.Error("Authenticate: lookup failed", zap.String("email", email), zap.Error(err))
		return nil, fmt.Errorf("authentication failed")
	}
	if usr == nil || usr.Status == models.AccountStatusDeleted {
		return nil, fmt.Errorf("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid email or password")
	}

	token, err := utils.GenerateToken(usr.ID, usr.Email, device.DeviceID)
	if err != nil {
		logger.Error("Authenticate: failed to generate token", zap.Error(err))
		return nil, fmt.Errorf("authentication failed")
	}

	device.TokenHash = utils.HashToken(token)
	device.LastLogin = time.Now()

	// Replace an existing record for the same device, otherwise append.
	replaced := false
	for i, d := range usr.Devices {
		if d.DeviceID == device.DeviceID {
			device.Creator = d.Creator
			usr.Devices[i] = device
			replaced = true
			break
		}
	}
	if !replaced {
		usr.Devices = append(usr.Devices, device)
	}

	if err := s.Repo.Update(usr); err != nil {
		logger.Error("Authenticate: failed to record device", zap.Error(err))
		return nil, fmt.Errorf("authentication failed")
	}

	// Prime the auth cache so the first authenticated request skips the DB.
	authCache := utils.GetAuthCacheClient()
	cacheKey := utils.AuthCachePrefix + usr.ID + ":" + device.DeviceID
	_ = authCache.Set(context.Background(), cacheKey, device.TokenHash, time.Hour).Err()

	return &AuthResponse{
		ID:           usr.ID,
		Token:        token,
		Username:     usr.Username,
		Email:        usr.Email,
		PhoneNumber:  usr.PhoneNumber,
		ProfileImage: usr.ProfileImage,
	}, nil
}
