package invoiceRepo

import (
	"context"
	"fmt"
	"time"

	"homeserve/database"
	"homeserve/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoInvoiceRepo implements InvoiceRepository using MongoDB.
type MongoInvoiceRepo struct {
	coll *mongo.Collection
}

// NewMongoInvoiceRepo creates a new instance of InvoiceRepository using MongoDB.
func NewMongoInvoiceRepo() InvoiceRepository {
	coll := database.MongoClient.Database(database.DBName).Collection("invoices")
	repo := &MongoInvoiceRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoInvoiceRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "invoiceId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "bookingId", Value: 1}}},
		{Keys: bson.D{{Key: "userId", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new invoice document.
func (r *MongoInvoiceRepo) Create(invoice *models.Invoice) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	_, err := r.coll.InsertOne(ctx, invoice)
	if err != nil {
		return fmt.Errorf("failed to create invoice: %w", err)
	}
	return nil
}

// Update modifies an existing invoice document.
func (r *MongoInvoiceRepo) Update(invoice *models.Invoice) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	invoice.UpdatedAt = time.Now()
	filter := bson.M{"invoiceId": invoice.InvoiceID}
	update := bson.M{"$set": invoice}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update invoice %s: %w", invoice.InvoiceID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("invoice %s not found", invoice.InvoiceID)
	}
	return nil
}

// GetByID retrieves an invoice by its unique ID.
func (r *MongoInvoiceRepo) GetByID(id string) (*models.Invoice, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var invoice models.Invoice
	if err := r.coll.FindOne(ctx, bson.M{"invoiceId": id}).Decode(&invoice); err != nil {
		return nil, fmt.Errorf("failed to fetch invoice %s: %w", id, err)
	}
	return &invoice, nil
}

// ListByUser retrieves a user's invoices, newest first.
func (r *MongoInvoiceRepo) ListByUser(userID string) ([]models.Invoice, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve invoices: %w", err)
	}
	defer cursor.Close(ctx)

	var invoices []models.Invoice
	for cursor.Next(ctx) {
		var inv models.Invoice
		if err := cursor.Decode(&inv); err != nil {
			return nil, fmt.Errorf("failed to decode invoice: %w", err)
		}
		invoices = append(invoices, inv)
	}
	return invoices, nil
}
