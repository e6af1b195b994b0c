package mongo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	mongodb "campusmove/pkg/db/mongo"
)

func TestCollections_CoversEveryStoredCollection(t *testing.T) {
	defs := Collections()

	for _, name := range []string{
		mongodb.CollectionSchedules,
		mongodb.CollectionLocations,
		mongodb.CollectionRentalInventory,
		mongodb.CollectionUsers,
	} {
		_, ok := defs[name]
		assert.True(t, ok, "missing collection %q", name)
	}
	assert.Len(t, defs, 4)
}

func TestCollections_PassThroughCollectionsHaveNoValidator(t *testing.T) {
	defs := Collections()

	assert.Nil(t, defs[mongodb.CollectionSchedules].Validator)
	assert.Nil(t, defs[mongodb.CollectionLocations].Validator)
}

func TestRentalInventoryValidator_AvailabilityIsNonNegativeAndOptional(t *testing.T) {
	schema, ok := Collections()[mongodb.CollectionRentalInventory].Validator["$jsonSchema"].(bson.M)
	require.True(t, ok)

	_, hasRequired := schema["required"]
	assert.False(t, hasRequired)

	props, ok := schema["properties"].(bson.M)
	require.True(t, ok)
	availability, ok := props["availability"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, 0, availability["minimum"])
}
