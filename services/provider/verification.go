package provider

import (
	"context"
	"fmt"

	"homeserve/models"
	"homeserve/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

const kypFolder = "kyp_documents"

// SubmitKYPDocument uploads the identity document to storage and resets the
// verification to pending for admin review. Resubmission replaces the previous
// document.
func (s *DefaultProviderService) SubmitKYPDocument(ctx context.Context, providerID, legalName, localFilePath string) (*models.Provider, error) {
	prov, err := s.GetProviderByID(providerID)
	if err != nil {
		return nil, err
	}
	if prov.Verification.VerificationStatus == models.VerificationVerified {
		return nil, fmt.Errorf("provider is already verified")
	}

	publicID, err := s.Storage.UploadFile(ctx, localFilePath, kypFolder)
	if err != nil {
		utils.GetLogger().Error("SubmitKYPDocument: upload failed",
			zap.String("providerID", providerID), zap.Error(err))
		return nil, fmt.Errorf("failed to upload document: %w", err)
	}

	if prov.Verification.KYPDocument != "" && prov.Verification.KYPDocument != publicID {
		if err := s.Storage.DeleteFile(ctx, prov.Verification.KYPDocument); err != nil {
			utils.GetLogger().Warn("SubmitKYPDocument: failed to delete previous document",
				zap.String("publicID", prov.Verification.KYPDocument), zap.Error(err))
		}
	}

	if legalName == "" {
		legalName = prov.Verification.LegalName
	}
	if err := s.Repo.UpdateSetDocument(providerID, bson.M{
		"verification.legalName":          legalName,
		"verification.kypDocument":        publicID,
		"verification.verificationStatus": models.VerificationPending,
	}); err != nil {
		return nil, fmt.Errorf("failed to record document: %w", err)
	}
	return s.GetProviderByID(providerID)
}

// SetVerificationStatus is the admin decision on a submitted KYP document.
func (s *DefaultProviderService) SetVerificationStatus(providerID, status string) error {
	switch status {
	case models.VerificationVerified, models.VerificationRejected, models.VerificationPending:
	default:
		return fmt.Errorf("invalid verification status: %s", status)
	}

	prov, err := s.GetProviderByID(providerID)
	if err != nil {
		return err
	}
	if status != models.VerificationPending && prov.Verification.KYPDocument == "" {
		return fmt.Errorf("provider has not submitted a verification document")
	}

	return s.Repo.UpdateSetDocument(providerID, bson.M{
		"verification.verificationStatus": status,
	})
}
