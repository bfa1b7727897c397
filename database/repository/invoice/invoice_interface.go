package invoiceRepo

import "homeserve/models"

// InvoiceRepository defines persistence operations for invoices.
type InvoiceRepository interface {
	Create(invoice *models.Invoice) error
	Update(invoice *models.Invoice) error
	GetByID(id string) (*models.Invoice, error)
	ListByUser(userID string) ([]models.Invoice, error)
}
