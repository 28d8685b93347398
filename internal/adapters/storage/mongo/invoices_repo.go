package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"vet-clinic/internal/domain/invoices"
)

type invoiceDoc struct {
	ID            string    `bson:"_id"`
	RecordID      string    `bson:"record_id"`
	VetID         string    `bson:"vet_id"`
	MedicationIDs []string  `bson:"medication_ids"`
	ServiceIDs    []string  `bson:"service_ids"`
	Total         float64   `bson:"total"`
	CreatedAt     time.Time `bson:"created_at"`
}

func toInvoiceDoc(inv invoices.Invoice) invoiceDoc {
	return invoiceDoc{
		ID:            inv.ID,
		RecordID:      inv.RecordID,
		VetID:         inv.VetID,
		MedicationIDs: inv.MedicationIDs,
		ServiceIDs:    inv.ServiceIDs,
		Total:         inv.Total,
		CreatedAt:     inv.CreatedAt,
	}
}

func (d invoiceDoc) toDomain() invoices.Invoice {
	return invoices.Invoice{
		ID:            d.ID,
		RecordID:      d.RecordID,
		VetID:         d.VetID,
		MedicationIDs: d.MedicationIDs,
		ServiceIDs:    d.ServiceIDs,
		Total:         d.Total,
		CreatedAt:     d.CreatedAt,
	}
}

type InvoicesRepo struct {
	col *mongo.Collection
}

func NewInvoicesRepo(db *mongo.Database) *InvoicesRepo {
	return &InvoicesRepo{col: db.Collection("invoices")}
}

func (r *InvoicesRepo) Create(ctx context.Context, inv invoices.Invoice) error {
	_, err := r.col.InsertOne(ctx, toInvoiceDoc(inv))
	return err
}

func (r *InvoicesRepo) GetByID(ctx context.Context, id string) (invoices.Invoice, error) {
	return r.getOne(ctx, bson.M{"_id": id})
}

func (r *InvoicesRepo) GetByRecord(ctx context.Context, recordID string) (invoices.Invoice, error) {
	if recordID == "" {
		return invoices.Invoice{}, invoices.ErrNotFound
	}
	return r.getOne(ctx, bson.M{"record_id": recordID})
}

func (r *InvoicesRepo) getOne(ctx context.Context, filter bson.M) (invoices.Invoice, error) {
	var d invoiceDoc
	if err := r.col.FindOne(ctx, filter).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return invoices.Invoice{}, invoices.ErrNotFound
		}
		return invoices.Invoice{}, err
	}
	return d.toDomain(), nil
}

func (r *InvoicesRepo) ListByVet(ctx context.Context, vetID string) ([]invoices.Invoice, error) {
	return r.find(ctx, bson.M{"vet_id": vetID})
}

func (r *InvoicesRepo) ListAll(ctx context.Context) ([]invoices.Invoice, error) {
	return r.find(ctx, bson.M{})
}

func (r *InvoicesRepo) find(ctx context.Context, filter bson.M) ([]invoices.Invoice, error) {
	cur, err := r.col.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]invoices.Invoice, 0)
	for cur.Next(ctx) {
		var d invoiceDoc
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		out = append(out, d.toDomain())
	}
	return out, cur.Err()
}
