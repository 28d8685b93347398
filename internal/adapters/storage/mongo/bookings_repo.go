package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"vet-clinic/internal/domain/bookings"
)

type bookingDoc struct {
	ID         string    `bson:"_id"`
	VetID      string    `bson:"vet_id"`
	OwnerID    string    `bson:"owner_id"`
	PetID      string    `bson:"pet_id"`
	OwnerPhone string    `bson:"owner_phone"`
	Date       time.Time `bson:"date"`
	Status     int       `bson:"status"`
	CreatedAt  time.Time `bson:"created_at"`
	UpdatedAt  time.Time `bson:"updated_at"`
}

func toBookingDoc(b bookings.Booking) bookingDoc {
	return bookingDoc{
		ID:         b.ID,
		VetID:      b.VetID,
		OwnerID:    b.OwnerID,
		PetID:      b.PetID,
		OwnerPhone: b.OwnerPhone,
		Date:       b.Date,
		Status:     int(b.Status),
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}

func (d bookingDoc) toDomain() bookings.Booking {
	return bookings.Booking{
		ID:         d.ID,
		VetID:      d.VetID,
		OwnerID:    d.OwnerID,
		PetID:      d.PetID,
		OwnerPhone: d.OwnerPhone,
		Date:       d.Date,
		Status:     bookings.Status(d.Status),
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

type BookingsRepo struct {
	col *mongo.Collection
}

func NewBookingsRepo(db *mongo.Database) *BookingsRepo {
	return &BookingsRepo{col: db.Collection("bookings")}
}

func (r *BookingsRepo) Create(ctx context.Context, b bookings.Booking) error {
	_, err := r.col.InsertOne(ctx, toBookingDoc(b))
	return err
}

func (r *BookingsRepo) Update(ctx context.Context, b bookings.Booking) error {
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": b.ID}, toBookingDoc(b))
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return bookings.ErrNotFound
	}
	return nil
}

func (r *BookingsRepo) GetByID(ctx context.Context, id string) (bookings.Booking, error) {
	var d bookingDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return bookings.Booking{}, bookings.ErrNotFound
		}
		return bookings.Booking{}, err
	}
	return d.toDomain(), nil
}

func (r *BookingsRepo) ListByVet(ctx context.Context, vetID string) ([]bookings.Booking, error) {
	return r.find(ctx, bson.M{"vet_id": vetID})
}

func (r *BookingsRepo) ListByPetAndVet(ctx context.Context, petID, vetID string) ([]bookings.Booking, error) {
	return r.find(ctx, bson.M{"pet_id": petID, "vet_id": vetID})
}

func (r *BookingsRepo) ListAll(ctx context.Context) ([]bookings.Booking, error) {
	return r.find(ctx, bson.M{})
}

func (r *BookingsRepo) find(ctx context.Context, filter bson.M) ([]bookings.Booking, error) {
	cur, err := r.col.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]bookings.Booking, 0)
	for cur.Next(ctx) {
		var d bookingDoc
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		out = append(out, d.toDomain())
	}
	return out, cur.Err()
}

func (r *BookingsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return bookings.ErrNotFound
	}
	return nil
}
