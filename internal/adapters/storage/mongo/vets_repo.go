package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"vet-clinic/internal/domain/vets"
)

type vetDoc struct {
	ID          string    `bson:"_id"`
	OwnerUserID string    `bson:"owner_user_id"`
	Name        string    `bson:"name"`
	Address     string    `bson:"address"`
	Phone       string    `bson:"phone"`
	Description string    `bson:"description"`
	ImageURLs   []string  `bson:"image_urls"`
	CreatedAt   time.Time `bson:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at"`
}

func toVetDoc(v vets.Vet) vetDoc {
	return vetDoc{
		ID:          v.ID,
		OwnerUserID: v.OwnerUserID,
		Name:        v.Name,
		Address:     v.Address,
		Phone:       v.Phone,
		Description: v.Description,
		ImageURLs:   v.ImageURLs,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
}

func (d vetDoc) toDomain() vets.Vet {
	return vets.Vet{
		ID:          d.ID,
		OwnerUserID: d.OwnerUserID,
		Name:        d.Name,
		Address:     d.Address,
		Phone:       d.Phone,
		Description: d.Description,
		ImageURLs:   d.ImageURLs,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

type VetsRepo struct {
	col *mongo.Collection
}

func NewVetsRepo(db *mongo.Database) *VetsRepo {
	return &VetsRepo{col: db.Collection("vets")}
}

func (r *VetsRepo) Create(ctx context.Context, v vets.Vet) error {
	_, err := r.col.InsertOne(ctx, toVetDoc(v))
	return err
}

func (r *VetsRepo) Update(ctx context.Context, v vets.Vet) error {
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": v.ID}, toVetDoc(v))
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return vets.ErrNotFound
	}
	return nil
}

func (r *VetsRepo) GetByID(ctx context.Context, id string) (vets.Vet, error) {
	var d vetDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return vets.Vet{}, vets.ErrNotFound
		}
		return vets.Vet{}, err
	}
	return d.toDomain(), nil
}

func (r *VetsRepo) ListByOwnerUser(ctx context.Context, ownerUserID string) ([]vets.Vet, error) {
	return r.find(ctx, bson.M{"owner_user_id": ownerUserID})
}

func (r *VetsRepo) List(ctx context.Context) ([]vets.Vet, error) {
	return r.find(ctx, bson.M{})
}

func (r *VetsRepo) find(ctx context.Context, filter bson.M) ([]vets.Vet, error) {
	cur, err := r.col.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]vets.Vet, 0)
	for cur.Next(ctx) {
		var d vetDoc
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		out = append(out, d.toDomain())
	}
	return out, cur.Err()
}
