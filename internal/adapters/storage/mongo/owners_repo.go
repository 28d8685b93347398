package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"vet-clinic/internal/domain/owners"
)

// ownerDoc es la representación BSON del owner. Usamos el uuid del dominio
// como _id, no ObjectID.
type ownerDoc struct {
	ID        string    `bson:"_id"`
	Name      string    `bson:"name"`
	Email     string    `bson:"email"`
	Phone     string    `bson:"phone"`
	AvatarURL string    `bson:"avatar_url"`
	Role      string    `bson:"role"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func toOwnerDoc(o owners.Owner) ownerDoc {
	return ownerDoc{
		ID:        o.ID,
		Name:      o.Name,
		Email:     o.Email,
		Phone:     o.Phone,
		AvatarURL: o.AvatarURL,
		Role:      o.Role,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

func (d ownerDoc) toDomain() owners.Owner {
	return owners.Owner{
		ID:        d.ID,
		Name:      d.Name,
		Email:     d.Email,
		Phone:     d.Phone,
		AvatarURL: d.AvatarURL,
		Role:      d.Role,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type OwnersRepo struct {
	col *mongo.Collection
}

func NewOwnersRepo(db *mongo.Database) *OwnersRepo {
	return &OwnersRepo{col: db.Collection("owners")}
}

func (r *OwnersRepo) Create(ctx context.Context, o owners.Owner) error {
	_, err := r.col.InsertOne(ctx, toOwnerDoc(o))
	return err
}

func (r *OwnersRepo) Update(ctx context.Context, o owners.Owner) error {
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": o.ID}, toOwnerDoc(o))
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return owners.ErrNotFound
	}
	return nil
}

func (r *OwnersRepo) GetByID(ctx context.Context, id string) (owners.Owner, error) {
	return r.getOne(ctx, bson.M{"_id": id})
}

func (r *OwnersRepo) GetByEmail(ctx context.Context, email string) (owners.Owner, error) {
	return r.getOne(ctx, bson.M{"email": email})
}

func (r *OwnersRepo) GetByPhone(ctx context.Context, phone string) (owners.Owner, error) {
	return r.getOne(ctx, bson.M{"phone": phone})
}

func (r *OwnersRepo) getOne(ctx context.Context, filter bson.M) (owners.Owner, error) {
	var d ownerDoc
	if err := r.col.FindOne(ctx, filter).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return owners.Owner{}, owners.ErrNotFound
		}
		return owners.Owner{}, err
	}
	return d.toDomain(), nil
}

func (r *OwnersRepo) List(ctx context.Context) ([]owners.Owner, error) {
	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]owners.Owner, 0)
	for cur.Next(ctx) {
		var d ownerDoc
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		out = append(out, d.toDomain())
	}
	return out, cur.Err()
}
