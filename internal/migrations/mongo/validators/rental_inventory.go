package validators

import "go.mongodb.org/mongo-driver/bson"

// RentalInventoryValidator only constrains availability. Documents without
// the field are accepted and treated as unavailable by the rent flow.
var RentalInventoryValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"additionalProperties": true,

		"properties": bson.M{
			"availability": bson.M{
				"bsonType": bson.A{"int", "long"},
				"minimum":  0,
			},
		},
	},
}
