package repository

import (
	"context"
	"errors"
	"fmt"

	rentalerrors "campusmove/internal/rentals/errors"
	"campusmove/pkg/config"
	mongotx "campusmove/pkg/db/mongo"
	"campusmove/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type RentalRepository interface {
	// DecrementAvailability takes one unit of the item and returns the
	// remaining count. It never takes the count below zero.
	DecrementAvailability(ctx context.Context, rentalID string) (int, error)
	AssignToUser(ctx context.Context, userID string, item any, location any) error
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

type mongoRentalRepository struct {
	cfg       *config.Config
	inventory *mongo.Collection
	users     *mongo.Collection
	txManager mongotx.TransactionManager
}

func NewMongoRentalRepository(cfg *config.Config, txManager mongotx.TransactionManager) RentalRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoRentalRepository{
		cfg:       cfg,
		inventory: db.Collection(mongotx.CollectionRentalInventory),
		users:     db.Collection(mongotx.CollectionUsers),
		txManager: txManager,
	}
}

func (r *mongoRentalRepository) DecrementAvailability(ctx context.Context, rentalID string) (int, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	filter := bson.M{
		"_id":          IDFilter(rentalID),
		"availability": bson.M{"$gt": 0},
	}
	update := bson.M{"$inc": bson.M{"availability": -1}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var item model.RentalItem
	err := r.inventory.FindOneAndUpdate(ctx, filter, update, opts).Decode(&item)
	if err == nil {
		return item.Availability, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return 0, fmt.Errorf("failed to decrement availability: %w", err)
	}

	// No match: either the item does not exist or it is exhausted.
	n, err := r.inventory.CountDocuments(ctx, bson.M{"_id": IDFilter(rentalID)}, options.Count().SetLimit(1))
	if err != nil {
		return 0, fmt.Errorf("failed to look up rental item: %w", err)
	}
	if n == 0 {
		return 0, fmt.Errorf("%w: %s", rentalerrors.ErrRentalNotFound, rentalID)
	}
	return 0, fmt.Errorf("%w: %s", rentalerrors.ErrItemUnavailable, rentalID)
}

func (r *mongoRentalRepository) AssignToUser(ctx context.Context, userID string, item any, location any) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"item":     item,
		"location": location,
	}}

	result, err := r.users.UpdateOne(ctx, bson.M{"_id": IDFilter(userID)}, update)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: %s", rentalerrors.ErrUserNotFound, userID)
	}
	return nil
}

func (r *mongoRentalRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}

// IDFilter matches a document id stored either as the given string or, when
// the string is a valid hex ObjectID, as that ObjectID.
func IDFilter(id string) any {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return bson.M{"$in": bson.A{id, oid}}
	}
	return id
}
