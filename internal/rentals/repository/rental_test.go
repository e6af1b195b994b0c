package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestIDFilter(t *testing.T) {
	assert.Equal(t, "bike-01", IDFilter("bike-01"))

	hex := "507f1f77bcf86cd799439011"
	oid, err := primitive.ObjectIDFromHex(hex)
	assert.NoError(t, err)
	assert.Equal(t, bson.M{"$in": bson.A{hex, oid}}, IDFilter(hex))
}
