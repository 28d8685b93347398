package mongo

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"vet-clinic/internal/domain/catalog"
)

type medicationDoc struct {
	ID           string    `bson:"_id"`
	VetID        string    `bson:"vet_id"`
	Name         string    `bson:"name"`
	Dosage       string    `bson:"dosage"`
	Instructions string    `bson:"instructions"`
	Price        float64   `bson:"price"`
	Quantity     int       `bson:"quantity"`
	CreatedAt    time.Time `bson:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at"`
}

func toMedicationDoc(m catalog.Medication) medicationDoc {
	return medicationDoc{
		ID:           m.ID,
		VetID:        m.VetID,
		Name:         m.Name,
		Dosage:       m.Dosage,
		Instructions: m.Instructions,
		Price:        m.Price,
		Quantity:     m.Quantity,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func (d medicationDoc) toDomain() catalog.Medication {
	return catalog.Medication{
		ID:           d.ID,
		VetID:        d.VetID,
		Name:         d.Name,
		Dosage:       d.Dosage,
		Instructions: d.Instructions,
		Price:        d.Price,
		Quantity:     d.Quantity,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

type MedicationsRepo struct {
	col *mongo.Collection
}

func NewMedicationsRepo(db *mongo.Database) *MedicationsRepo {
	return &MedicationsRepo{col: db.Collection("medications")}
}

func (r *MedicationsRepo) Create(ctx context.Context, m catalog.Medication) error {
	_, err := r.col.InsertOne(ctx, toMedicationDoc(m))
	return err
}

func (r *MedicationsRepo) Update(ctx context.Context, m catalog.Medication) error {
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": m.ID}, toMedicationDoc(m))
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return catalog.ErrMedicationNotFound
	}
	return nil
}

func (r *MedicationsRepo) GetByID(ctx context.Context, id string) (catalog.Medication, error) {
	return r.getOne(ctx, bson.M{"_id": id})
}

func (r *MedicationsRepo) GetByName(ctx context.Context, vetID, name string) (catalog.Medication, error) {
	// match case-insensitive sin índice especial; los catálogos por clínica
	// son chicos
	return r.getOne(ctx, bson.M{
		"vet_id": vetID,
		"name":   bson.M{"$regex": "^" + regexp.QuoteMeta(name) + "$", "$options": "i"},
	})
}

func (r *MedicationsRepo) getOne(ctx context.Context, filter bson.M) (catalog.Medication, error) {
	var d medicationDoc
	if err := r.col.FindOne(ctx, filter).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return catalog.Medication{}, catalog.ErrMedicationNotFound
		}
		return catalog.Medication{}, err
	}
	return d.toDomain(), nil
}

func (r *MedicationsRepo) ListByVet(ctx context.Context, vetID string) ([]catalog.Medication, error) {
	cur, err := r.col.Find(ctx, bson.M{"vet_id": vetID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]catalog.Medication, 0)
	for cur.Next(ctx) {
		var d medicationDoc
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		out = append(out, d.toDomain())
	}
	return out, cur.Err()
}

func (r *MedicationsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return catalog.ErrMedicationNotFound
	}
	return nil
}

type serviceDoc struct {
	ID          string    `bson:"_id"`
	VetID       string    `bson:"vet_id"`
	Name        string    `bson:"name"`
	Price       float64   `bson:"price"`
	DurationMin int       `bson:"duration_min"`
	Available   bool      `bson:"available"`
	UsageCount  int       `bson:"usage_count"`
	CreatedAt   time.Time `bson:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at"`
}

func toServiceDoc(s catalog.Service) serviceDoc {
	return serviceDoc{
		ID:          s.ID,
		VetID:       s.VetID,
		Name:        s.Name,
		Price:       s.Price,
		DurationMin: s.DurationMin,
		Available:   s.Available,
		UsageCount:  s.UsageCount,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func (d serviceDoc) toDomain() catalog.Service {
	return catalog.Service{
		ID:          d.ID,
		VetID:       d.VetID,
		Name:        d.Name,
		Price:       d.Price,
		DurationMin: d.DurationMin,
		Available:   d.Available,
		UsageCount:  d.UsageCount,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

type ServicesRepo struct {
	col *mongo.Collection
}

func NewServicesRepo(db *mongo.Database) *ServicesRepo {
	return &ServicesRepo{col: db.Collection("services")}
}

func (r *ServicesRepo) Create(ctx context.Context, s catalog.Service) error {
	_, err := r.col.InsertOne(ctx, toServiceDoc(s))
	return err
}

func (r *ServicesRepo) Update(ctx context.Context, s catalog.Service) error {
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": s.ID}, toServiceDoc(s))
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return catalog.ErrServiceNotFound
	}
	return nil
}

func (r *ServicesRepo) GetByID(ctx context.Context, id string) (catalog.Service, error) {
	var d serviceDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return catalog.Service{}, catalog.ErrServiceNotFound
		}
		return catalog.Service{}, err
	}
	return d.toDomain(), nil
}

func (r *ServicesRepo) ListByVet(ctx context.Context, vetID string) ([]catalog.Service, error) {
	cur, err := r.col.Find(ctx, bson.M{"vet_id": vetID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]catalog.Service, 0)
	for cur.Next(ctx) {
		var d serviceDoc
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		out = append(out, d.toDomain())
	}
	return out, cur.Err()
}

func (r *ServicesRepo) Delete(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return catalog.ErrServiceNotFound
	}
	return nil
}

func (r *ServicesRepo) IncrementUsage(ctx context.Context, id string) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$inc": bson.M{"usage_count": 1},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return catalog.ErrServiceNotFound
	}
	return nil
}
