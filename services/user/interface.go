package user

import (
	userRepo "homeserve/database/repository/user"
	"homeserve/models"
)

type UserService interface {
	// Registration
	InitiateRegistration(basicData models.UserBasicRegistrationData, device models.Device) (string, int, error)
	VerifyRegistrationOTP(sessionID string, deviceID string, providedOTP string) (int, error)
	FinalizeRegistration(sessionID string) (*AuthResponse, error)

	// Authentication
	Authenticate(email, password string, device models.Device) (*AuthResponse, error)

	// User management
	GetUserByID(userID string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	UpdateUser(req models.UserUpdateRequest) (*models.User, error)
	DeleteUser(userID string) error
	UpdateUserPassword(userID, currentPassword, newPassword, currentDeviceID string) (*models.User, error)
	RevokeUserAuthToken(userID, deviceID string) error

	// Device management
	GetUserDevices(userID string) ([]models.Device, error)
	SignOutOtherDevices(userID, currentDeviceID string) error
	UpdateFCMToken(userID, token string) error

	// Admin
	GetAllUsers() ([]models.User, error)
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo userRepo.UserRepository
}

// AuthResponse contains the user's ID, token, and additional details.
type AuthResponse struct {
	ID           string `json:"id"`
	Token        string `json:"token"`
	Username     string `json:"username,omitempty"`
	Email        string `json:"email,omitempty"`
	PhoneNumber  string `json:"phoneNumber,omitempty"`
	ProfileImage string `json:"profileImage,omitempty"`
}
