package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cardealer/cardealer_backend/models"
)

// CarRepository wraps the cars collection. Finders return (nil, nil) when no
// document matches.
type CarRepository struct {
	collection *mongo.Collection
}

func NewCarRepository(db *mongo.Database) *CarRepository {
	return &CarRepository{
		collection: db.Collection("cars"),
	}
}

func (r *CarRepository) findOne(ctx context.Context, filter bson.M) (*models.Car, error) {
	var car models.Car
	err := r.collection.FindOne(ctx, filter).Decode(&car)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &car, nil
}

func (r *CarRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Car, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *CarRepository) FindByVIN(ctx context.Context, vin string) (*models.Car, error) {
	return r.findOne(ctx, bson.M{"units.vin": vin})
}

// FindByBrandModel matches the car grouping the units of one brand+model.
func (r *CarRepository) FindByBrandModel(ctx context.Context, brand, model string) (*models.Car, error) {
	return r.findOne(ctx, bson.M{"brand": brand, "model": model})
}

// FindAssignable matches the car only if it has at least one available unit
// and no assigned manager. A null assignedManager satisfies the $ne clause,
// so unassigned wins.
func (r *CarRepository) FindAssignable(ctx context.Context, id, managerID primitive.ObjectID) (*models.Car, error) {
	filter := bson.M{
		"_id":   id,
		"units": bson.M{"$elemMatch": bson.M{"isAvailable": true}},
		"$or": []bson.M{
			{"assignedManager": bson.M{"$exists": false}},
			{"assignedManager": nil},
		},
	}
	if !managerID.IsZero() {
		filter["assignedManager"] = bson.M{"$ne": managerID}
	}
	return r.findOne(ctx, filter)
}

func (r *CarRepository) FindAssignedTo(ctx context.Context, id, managerID primitive.ObjectID) (*models.Car, error) {
	return r.findOne(ctx, bson.M{"_id": id, "assignedManager": managerID})
}

func (r *CarRepository) Create(ctx context.Context, car *models.Car) error {
	now := time.Now()
	car.CreatedAt = now
	car.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, car)
	if err != nil {
		return err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		car.ID = oid
	}
	return nil
}

func (r *CarRepository) UpdateByID(ctx context.Context, id primitive.ObjectID, update bson.M) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}

// Find returns a page of cars matching filter, newest first.
func (r *CarRepository) Find(ctx context.Context, filter bson.M, skip, limit int) ([]models.Car, error) {
	opts := options.Find().
		SetSkip(int64(skip)).
		SetLimit(int64(limit)).
		SetSort(bson.M{"createdAt": -1})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var cars []models.Car
	if err := cursor.All(ctx, &cars); err != nil {
		return nil, err
	}
	return cars, nil
}

func (r *CarRepository) Count(ctx context.Context, filter bson.M) (int64, error) {
	return r.collection.CountDocuments(ctx, filter)
}
