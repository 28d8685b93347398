package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"vet-clinic/internal/domain/pets"
)

type petDoc struct {
	ID        string    `bson:"_id"`
	OwnerID   string    `bson:"owner_id"`
	Name      string    `bson:"name"`
	Breed     string    `bson:"breed"`
	Sex       string    `bson:"sex"`
	AgeYears  int       `bson:"age_years"`
	WeightKg  float64   `bson:"weight_kg"`
	ImageURL  string    `bson:"image_url"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func toPetDoc(p pets.Pet) petDoc {
	return petDoc{
		ID:        p.ID,
		OwnerID:   p.OwnerID,
		Name:      p.Name,
		Breed:     p.Breed,
		Sex:       string(p.Sex),
		AgeYears:  p.AgeYears,
		WeightKg:  p.WeightKg,
		ImageURL:  p.ImageURL,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func (d petDoc) toDomain() pets.Pet {
	return pets.Pet{
		ID:        d.ID,
		OwnerID:   d.OwnerID,
		Name:      d.Name,
		Breed:     d.Breed,
		Sex:       pets.Sex(d.Sex),
		AgeYears:  d.AgeYears,
		WeightKg:  d.WeightKg,
		ImageURL:  d.ImageURL,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type PetsRepo struct {
	col *mongo.Collection
}

func NewPetsRepo(db *mongo.Database) *PetsRepo {
	return &PetsRepo{col: db.Collection("pets")}
}

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	_, err := r.col.InsertOne(ctx, toPetDoc(p))
	return err
}

func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) error {
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": p.ID}, toPetDoc(p))
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return pets.ErrNotFound
	}
	return nil
}

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	var d petDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return pets.Pet{}, pets.ErrNotFound
		}
		return pets.Pet{}, err
	}
	return d.toDomain(), nil
}

func (r *PetsRepo) ListByOwner(ctx context.Context, ownerID string) ([]pets.Pet, error) {
	cur, err := r.col.Find(ctx, bson.M{"owner_id": ownerID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]pets.Pet, 0)
	for cur.Next(ctx) {
		var d petDoc
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		out = append(out, d.toDomain())
	}
	return out, cur.Err()
}

func (r *PetsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return pets.ErrNotFound
	}
	return nil
}
