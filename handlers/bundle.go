package handlers

import (
	providerRepoPkg "homeserve/database/repository/provider"
	userRepoPkg "homeserve/database/repository/user"
)

// HandlerBundle groups all endpoint handlers plus the repositories the auth
// middleware needs for its DB fallback.
type HandlerBundle struct {
	UserRepo     userRepoPkg.UserRepository
	ProviderRepo providerRepoPkg.ProviderRepository

	User         *UserHandler
	Provider     *ProviderHandler
	Booking      *BookingHandler
	Payment      *PaymentHandler
	Review       *ReviewHandler
	Notification *NotificationHandler
	Storage      *StorageHandler
	Admin        *AdminHandler
}
