package repository

import (
	"context"
	"fmt"

	catalogerrors "campusmove/internal/catalog/errors"
	"campusmove/pkg/config"
	mongotx "campusmove/pkg/db/mongo"
	"campusmove/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type CatalogRepository interface {
	ListSchedules(ctx context.Context) ([]model.Document, error)
	ListRentalInventory(ctx context.Context) ([]model.Document, error)
	ListLocations(ctx context.Context) ([]model.Document, error)
}

type mongoCatalogRepository struct {
	cfg             *config.Config
	schedules       *mongo.Collection
	rentalInventory *mongo.Collection
	locations       *mongo.Collection
}

func NewMongoCatalogRepository(cfg *config.Config) CatalogRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoCatalogRepository{
		cfg:             cfg,
		schedules:       db.Collection(mongotx.CollectionSchedules),
		rentalInventory: db.Collection(mongotx.CollectionRentalInventory),
		locations:       db.Collection(mongotx.CollectionLocations),
	}
}

func (r *mongoCatalogRepository) ListSchedules(ctx context.Context) ([]model.Document, error) {
	return r.listAll(ctx, r.schedules)
}

func (r *mongoCatalogRepository) ListRentalInventory(ctx context.Context) ([]model.Document, error) {
	return r.listAll(ctx, r.rentalInventory)
}

func (r *mongoCatalogRepository) ListLocations(ctx context.Context) ([]model.Document, error) {
	return r.listAll(ctx, r.locations)
}

// listAll reads a whole collection. The collections are small reference
// sets, so there is no paging or filtering.
func (r *mongoCatalogRepository) listAll(ctx context.Context, coll *mongo.Collection) ([]model.Document, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	cursor, err := coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", catalogerrors.ErrQueryFailed, coll.Name(), err)
	}
	defer cursor.Close(ctx)

	var raw []bson.M
	if err = cursor.All(ctx, &raw); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", catalogerrors.ErrDecodeFailed, coll.Name(), err)
	}

	docs := make([]model.Document, 0, len(raw))
	for _, m := range raw {
		docs = append(docs, ToDocument(m))
	}
	return docs, nil
}

// ToDocument exposes the stored _id as "id" and passes every other field
// through. ObjectIDs are rendered as hex strings.
func ToDocument(m bson.M) model.Document {
	doc := make(model.Document, len(m))
	for k, v := range m {
		if k == "_id" {
			continue
		}
		doc[k] = v
	}
	switch id := m["_id"].(type) {
	case primitive.ObjectID:
		doc["id"] = id.Hex()
	case nil:
	default:
		doc["id"] = id
	}
	return doc
}
