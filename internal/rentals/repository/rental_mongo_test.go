package repository

import (
	"context"
	"testing"
	"time"

	rentalerrors "campusmove/internal/rentals/errors"
	"campusmove/pkg/client"
	"campusmove/pkg/config"
	mongotx "campusmove/pkg/db/mongo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func newMockRepository(mt *mtest.T) RentalRepository {
	cfg := &config.Config{
		MongoDatabaseName: mt.DB.Name(),
		WriteTimeout:      5 * time.Second,
		Client:            &client.Client{Mongo: mt.Client},
	}
	return NewMongoRentalRepository(cfg, mongotx.NewSequentialManager())
}

func inventoryNS(mt *mtest.T) string {
	return mt.DB.Name() + "." + mongotx.CollectionRentalInventory
}

func TestDecrementAvailability(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("returns remaining count", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "value", Value: bson.D{
				{Key: "_id", Value: "bike-01"},
				{Key: "availability", Value: 2},
			}},
		))

		remaining, err := newMockRepository(mt).DecrementAvailability(context.Background(), "bike-01")
		require.NoError(t, err)
		assert.Equal(t, 2, remaining)

		cmd := mt.GetStartedEvent().Command
		filter, ok := cmd.Lookup("query").DocumentOK()
		require.True(t, ok)
		gt, err := filter.LookupErr("availability", "$gt")
		require.NoError(t, err)
		assert.Equal(t, int32(0), gt.Int32())
		inc, err := cmd.LookupErr("update", "$inc", "availability")
		require.NoError(t, err)
		assert.Equal(t, int32(-1), inc.Int32())
	})

	mt.Run("exhausted item is unavailable", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}),
			mtest.CreateCursorResponse(0, inventoryNS(mt), mtest.FirstBatch, bson.D{{Key: "n", Value: 1}}),
		)

		_, err := newMockRepository(mt).DecrementAvailability(context.Background(), "bike-01")
		assert.ErrorIs(t, err, rentalerrors.ErrItemUnavailable)
		assert.NotErrorIs(t, err, rentalerrors.ErrRentalNotFound)
	})

	mt.Run("missing item is not found", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}),
			mtest.CreateCursorResponse(0, inventoryNS(mt), mtest.FirstBatch),
		)

		_, err := newMockRepository(mt).DecrementAvailability(context.Background(), "bike-404")
		assert.ErrorIs(t, err, rentalerrors.ErrRentalNotFound)
	})

	mt.Run("database error is wrapped", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Name:    "BadValue",
			Message: "bad value",
		}))

		_, err := newMockRepository(mt).DecrementAvailability(context.Background(), "bike-01")
		require.Error(t, err)
		assert.NotErrorIs(t, err, rentalerrors.ErrRentalNotFound)
		assert.NotErrorIs(t, err, rentalerrors.ErrItemUnavailable)
		assert.Contains(t, err.Error(), "failed to decrement availability")
	})
}

func TestAssignToUser(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("updates matched user", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		err := newMockRepository(mt).AssignToUser(context.Background(), "user-1", "bike", "Library")
		require.NoError(t, err)

		update, err := mt.GetStartedEvent().Command.LookupErr("updates")
		require.NoError(t, err)
		first, err := update.Array().IndexErr(0)
		require.NoError(t, err)
		item, err := first.Value().Document().LookupErr("u", "$set", "item")
		require.NoError(t, err)
		assert.Equal(t, "bike", item.StringValue())
	})

	mt.Run("unknown user is not found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))

		err := newMockRepository(mt).AssignToUser(context.Background(), "ghost", "bike", "Library")
		assert.ErrorIs(t, err, rentalerrors.ErrUserNotFound)
	})
}
