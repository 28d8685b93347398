package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"vet-clinic/internal/domain/records"
)

type recordDoc struct {
	ID            string    `bson:"_id"`
	PetID         string    `bson:"pet_id"`
	OwnerID       string    `bson:"owner_id"`
	VetID         string    `bson:"vet_id"`
	BookingID     string    `bson:"booking_id,omitempty"`
	VisitDate     time.Time `bson:"visit_date"`
	Reason        string    `bson:"reason"`
	Symptoms      string    `bson:"symptoms"`
	Diagnosis     string    `bson:"diagnosis"`
	Treatment     string    `bson:"treatment"`
	Notes         string    `bson:"notes"`
	MedicationIDs []string  `bson:"medication_ids"`
	HasInvoice    bool      `bson:"has_invoice"`
	CreatedAt     time.Time `bson:"created_at"`
	UpdatedAt     time.Time `bson:"updated_at"`
}

func toRecordDoc(rec records.Record) recordDoc {
	return recordDoc{
		ID:            rec.ID,
		PetID:         rec.PetID,
		OwnerID:       rec.OwnerID,
		VetID:         rec.VetID,
		BookingID:     rec.BookingID,
		VisitDate:     rec.VisitDate,
		Reason:        rec.Reason,
		Symptoms:      rec.Symptoms,
		Diagnosis:     rec.Diagnosis,
		Treatment:     rec.Treatment,
		Notes:         rec.Notes,
		MedicationIDs: rec.MedicationIDs,
		HasInvoice:    rec.HasInvoice,
		CreatedAt:     rec.CreatedAt,
		UpdatedAt:     rec.UpdatedAt,
	}
}

func (d recordDoc) toDomain() records.Record {
	return records.Record{
		ID:            d.ID,
		PetID:         d.PetID,
		OwnerID:       d.OwnerID,
		VetID:         d.VetID,
		BookingID:     d.BookingID,
		VisitDate:     d.VisitDate,
		Reason:        d.Reason,
		Symptoms:      d.Symptoms,
		Diagnosis:     d.Diagnosis,
		Treatment:     d.Treatment,
		Notes:         d.Notes,
		MedicationIDs: d.MedicationIDs,
		HasInvoice:    d.HasInvoice,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

type RecordsRepo struct {
	col *mongo.Collection
}

func NewRecordsRepo(db *mongo.Database) *RecordsRepo {
	return &RecordsRepo{col: db.Collection("records")}
}

func (r *RecordsRepo) Create(ctx context.Context, rec records.Record) error {
	_, err := r.col.InsertOne(ctx, toRecordDoc(rec))
	return err
}

func (r *RecordsRepo) Update(ctx context.Context, rec records.Record) error {
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": rec.ID}, toRecordDoc(rec))
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return records.ErrNotFound
	}
	return nil
}

func (r *RecordsRepo) GetByID(ctx context.Context, id string) (records.Record, error) {
	var d recordDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return records.Record{}, records.ErrNotFound
		}
		return records.Record{}, err
	}
	return d.toDomain(), nil
}

func (r *RecordsRepo) ListByVet(ctx context.Context, vetID string) ([]records.Record, error) {
	return r.find(ctx, bson.M{"vet_id": vetID})
}

func (r *RecordsRepo) ListByPet(ctx context.Context, petID string) ([]records.Record, error) {
	return r.find(ctx, bson.M{"pet_id": petID})
}

func (r *RecordsRepo) find(ctx context.Context, filter bson.M) ([]records.Record, error) {
	cur, err := r.col.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "visit_date", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]records.Record, 0)
	for cur.Next(ctx) {
		var d recordDoc
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		out = append(out, d.toDomain())
	}
	return out, cur.Err()
}

func (r *RecordsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return records.ErrNotFound
	}
	return nil
}

func (r *RecordsRepo) SetHasInvoice(ctx context.Context, id string, has bool) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"has_invoice": has, "updated_at": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return records.ErrNotFound
	}
	return nil
}
