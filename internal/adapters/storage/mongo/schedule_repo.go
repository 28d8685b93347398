package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"vet-clinic/internal/domain/schedule"
)

type entryDoc struct {
	ID          string    `bson:"_id"`
	OwnerID     string    `bson:"owner_id"`
	BookingID   string    `bson:"booking_id,omitempty"`
	Title       string    `bson:"title"`
	Description string    `bson:"description"`
	Date        time.Time `bson:"date"`
	Category    string    `bson:"category"`
	CreatedAt   time.Time `bson:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at"`
}

func toEntryDoc(e schedule.Entry) entryDoc {
	return entryDoc{
		ID:          e.ID,
		OwnerID:     e.OwnerID,
		BookingID:   e.BookingID,
		Title:       e.Title,
		Description: e.Description,
		Date:        e.Date,
		Category:    string(e.Category),
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func (d entryDoc) toDomain() schedule.Entry {
	return schedule.Entry{
		ID:          d.ID,
		OwnerID:     d.OwnerID,
		BookingID:   d.BookingID,
		Title:       d.Title,
		Description: d.Description,
		Date:        d.Date,
		Category:    schedule.Category(d.Category),
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

type ScheduleRepo struct {
	col *mongo.Collection
}

func NewScheduleRepo(db *mongo.Database) *ScheduleRepo {
	return &ScheduleRepo{col: db.Collection("schedule_entries")}
}

func (r *ScheduleRepo) Create(ctx context.Context, e schedule.Entry) error {
	_, err := r.col.InsertOne(ctx, toEntryDoc(e))
	return err
}

func (r *ScheduleRepo) Update(ctx context.Context, e schedule.Entry) error {
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": e.ID}, toEntryDoc(e))
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return schedule.ErrNotFound
	}
	return nil
}

func (r *ScheduleRepo) GetByID(ctx context.Context, id string) (schedule.Entry, error) {
	return r.getOne(ctx, bson.M{"_id": id})
}

func (r *ScheduleRepo) GetByBooking(ctx context.Context, bookingID string) (schedule.Entry, error) {
	if bookingID == "" {
		return schedule.Entry{}, schedule.ErrNotFound
	}
	return r.getOne(ctx, bson.M{"booking_id": bookingID})
}

func (r *ScheduleRepo) getOne(ctx context.Context, filter bson.M) (schedule.Entry, error) {
	var d entryDoc
	if err := r.col.FindOne(ctx, filter).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return schedule.Entry{}, schedule.ErrNotFound
		}
		return schedule.Entry{}, err
	}
	return d.toDomain(), nil
}

func (r *ScheduleRepo) ListByOwner(ctx context.Context, ownerID string) ([]schedule.Entry, error) {
	cur, err := r.col.Find(ctx, bson.M{"owner_id": ownerID},
		options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]schedule.Entry, 0)
	for cur.Next(ctx) {
		var d entryDoc
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		out = append(out, d.toDomain())
	}
	return out, cur.Err()
}

func (r *ScheduleRepo) Delete(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return schedule.ErrNotFound
	}
	return nil
}
