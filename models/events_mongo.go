package models

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoEventRepo struct {
	col *mongo.Collection
}

func NewMongoEventRepository(col *mongo.Collection) EventRepository {
	return &mongoEventRepo{col: col}
}

// EnsureEventIndexes creates the unique id index the repository relies on.
func EnsureEventIndexes(ctx context.Context, col *mongo.Collection) error {
	_, err := col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("events_id_unique"),
		},
		{
			Keys:    bson.D{{Key: "college_id", Value: 1}, {Key: "is_approved", Value: 1}},
			Options: options.Index().SetName("events_college_approved"),
		},
	})
	return err
}

func opCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 5*time.Second)
}

func (r *mongoEventRepo) Create(e *Event) error {
	ctx, cancel := opCtx()
	defer cancel()
	_, err := r.col.InsertOne(ctx, e)
	return err
}

func (r *mongoEventRepo) GetByID(id string) (Event, error) {
	ctx, cancel := opCtx()
	defer cancel()

	var e Event
	if err := r.col.FindOne(ctx, bson.M{"id": id}).Decode(&e); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Event{}, ErrNotFound
		}
		return Event{}, err
	}
	return e, nil
}

func (r *mongoEventRepo) Update(e *Event) error {
	ctx, cancel := opCtx()
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"id": e.ID}, e)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoEventRepo) Delete(id string) error {
	ctx, cancel := opCtx()
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoEventRepo) SetApproval(id string, approved bool) error {
	ctx, cancel := opCtx()
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{"is_approved": approved}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoEventRepo) find(filter bson.M) ([]Event, error) {
	ctx, cancel := opCtx()
	defer cancel()

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []Event{}
	for cur.Next(ctx) {
		var e Event
		if err := cur.Decode(&e); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, cur.Err()
}

func (r *mongoEventRepo) ListByApproval(approved bool) ([]Event, error) {
	return r.find(bson.M{"is_approved": approved})
}

func (r *mongoEventRepo) ListByCollege(collegeID string) ([]Event, error) {
	return r.find(bson.M{"college_id": collegeID, "is_approved": true})
}

func (r *mongoEventRepo) ListByCreator(userID int64) ([]Event, error) {
	return r.find(bson.M{"created_by": userID})
}

func (r *mongoEventRepo) CountByApproval(approved bool) (int64, error) {
	ctx, cancel := opCtx()
	defer cancel()
	return r.col.CountDocuments(ctx, bson.M{"is_approved": approved})
}
