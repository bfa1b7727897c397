package provider

import (
	"context"
	"fmt"
	"time"

	"homeserve/models"
	"homeserve/services/user"
	"homeserve/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// RegisterProvider creates a provider account with a device-bound token. New
// providers start unverified and stay hidden from browse until KYP clears.
func (s *DefaultProviderService) RegisterProvider(req models.ProviderRegistrationRequest, device models.Device) (*AuthResponse, error) {
	logger := utils.GetLogger()

	existing, err := s.Repo.GetByEmail(req.Email)
	if err != nil {
		logger.Error("RegisterProvider: failed to check for existing provider", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}
	if existing != nil {
		return nil, fmt.Errorf("a provider with this email already exists")
	}

	if err := user.VerifyPasswordComplexity(req.Password); err != nil {
		return nil, err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("RegisterProvider: failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	currency := req.Currency
	if currency == "" {
		currency = "usd"
	}
	paymentMethods := []string{"card"}
	if req.AcceptsCash {
		paymentMethods = append(paymentMethods, "cash")
	}

	prov := models.Provider{
		ID: uuid.New().String(),
		Profile: models.ProviderProfile{
			ProviderName: req.ProviderName,
			Email:        req.Email,
			PhoneNumber:  req.PhoneNumber,
			Address:      req.Address,
		},
		Security: models.ProviderSecurity{
			PasswordHash: string(hashed),
		},
		Verification: models.Verification{
			LegalName:          req.LegalName,
			VerificationStatus: models.VerificationPending,
		},
		PayoutDetails: models.PayoutDetails{
			PaymentMethods:  paymentMethods,
			PreferredMethod: "card",
			Currency:        currency,
			AcceptsCash:     req.AcceptsCash,
			LastUpdated:     time.Now(),
		},
		Status:    models.AccountStatusActive,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	token, err := utils.GenerateToken(prov.ID, prov.Profile.Email, device.DeviceID)
	if err != nil {
		logger.Error("RegisterProvider: failed to generate token", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}
	device.TokenHash = utils.HashToken(token)
	device.LastLogin = time.Now()
	device.Creator = true
	prov.Security.Devices = []models.Device{device}

	if err := s.Repo.Create(&prov); err != nil {
		logger.Error("RegisterProvider: failed to create provider", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	return &AuthResponse{
		ID:           prov.ID,
		Token:        token,
		ProviderName: prov.Profile.ProviderName,
		Email:        prov.Profile.Email,
		Verification: prov.Verification.VerificationStatus,
	}, nil
}

// AuthenticateProvider verifies credentials and binds a token to the device.
func (s *DefaultProviderService) AuthenticateProvider(email, password string, device models.Device) (*AuthResponse, error) {
	logger := utils.GetLogger()

	prov, err := s.Repo.GetByEmail(email)
	if err != nil {
		logger.Error("AuthenticateProvider: lookup failed", zap.String("email", email), zap.Error(err))
		return nil, fmt.Errorf("authentication failed")
	}
	if prov == nil || prov.Status == models.AccountStatusDeleted {
		return nil, fmt.Errorf("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(prov.Security.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid email or password")
	}

	token, err := utils.GenerateToken(prov.ID, prov.Profile.Email, device.DeviceID)
	if err != nil {
		logger.Error("AuthenticateProvider: failed to generate token", zap.Error(err))
		return nil, fmt.Errorf("authentication failed")
	}
	device.TokenHash = utils.HashToken(token)
	device.LastLogin = time.Now()

	replaced := false
	for i, d := range prov.Security.Devices {
		if d.DeviceID == device.DeviceID {
			device.Creator = d.Creator
			prov.Security.Devices[i] = device
			replaced = true
			break
		}
	}
	if !replaced {
		prov.Security.Devices = append(prov.Security.Devices, device)
	}

	if err := s.Repo.Update(prov); err != nil {
		logger.Error("AuthenticateProvider: failed to record device", zap.Error(err))
		return nil, fmt.Errorf("authentication failed")
	}

	authCache := utils.GetAuthCacheClient()
	cacheKey := utils.AuthCachePrefix + prov.ID + ":" + device.DeviceID
	_ = authCache.Set(context.Background(), cacheKey, device.TokenHash, time.Hour).Err()

	return &AuthResponse{
		ID:           prov.ID,
		Token:        token,
		ProviderName: prov.Profile.ProviderName,
		Email:        prov.Profile.Email,
		Verification: prov.Verification.VerificationStatus,
	}, nil
}

// RevokeProviderAuthToken invalidates the token bound to one device.
func (s *DefaultProviderService) RevokeProviderAuthToken(providerID, deviceID string) error {
	authCache := utils.GetAuthCacheClient()
	cacheKey := utils.AuthCachePrefix + providerID + ":" + deviceID
	if err := authCache.Del(context.Background(), cacheKey).Err(); err != nil {
		utils.GetLogger().Warn("RevokeProviderAuthToken: failed to clear auth cache",
			zap.String("providerID", providerID), zap.String("deviceID", deviceID), zap.Error(err))
	}

	prov, err := s.Repo.GetByID(providerID)
	if err != nil {
		return fmt.Errorf("failed to fetch provider: %w", err)
	}
	if prov == nil {
		return fmt.Errorf("provider not found")
	}
	kept := prov.Security.Devices[:0]
	for _, d := range prov.Security.Devices {
		if d.DeviceID != deviceID {
			kept = append(kept, d)
		}
	}
	prov.Security.Devices = kept
	return s.Repo.Update(prov)
}
