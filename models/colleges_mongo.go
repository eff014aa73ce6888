package models

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoCollegeRepo struct {
	col *mongo.Collection
}

func NewMongoCollegeRepository(col *mongo.Collection) CollegeRepository {
	return &mongoCollegeRepo{col: col}
}

// EnsureCollegeIndexes makes college names unique at the storage layer.
func EnsureCollegeIndexes(ctx context.Context, col *mongo.Collection) error {
	_, err := col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("colleges_id_unique"),
		},
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("colleges_name_unique"),
		},
	})
	return err
}

func (r *mongoCollegeRepo) Create(c *College) error {
	ctx, cancel := opCtx()
	defer cancel()

	_, err := r.col.InsertOne(ctx, c)
	if mongo.IsDuplicateKeyError(err) {
		return ErrCollegeExists
	}
	return err
}

func (r *mongoCollegeRepo) GetByID(id string) (College, error) {
	ctx, cancel := opCtx()
	defer cancel()

	var c College
	if err := r.col.FindOne(ctx, bson.M{"id": id}).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return College{}, ErrNotFound
		}
		return College{}, err
	}
	return c, nil
}

func (r *mongoCollegeRepo) GetAll() ([]College, error) {
	ctx, cancel := opCtx()
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []College{}
	for cur.Next(ctx) {
		var c College
		if err := cur.Decode(&c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, cur.Err()
}

func (r *mongoCollegeRepo) Count() (int64, error) {
	ctx, cancel := opCtx()
	defer cancel()
	return r.col.CountDocuments(ctx, bson.M{})
}
