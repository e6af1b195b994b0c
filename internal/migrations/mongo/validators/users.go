package validators

import "go.mongodb.org/mongo-driver/bson"

var UsersValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"additionalProperties": true,

		"properties": bson.M{
			"item": bson.M{
				"bsonType": bson.A{"object", "string", "null"},
			},
			"location": bson.M{
				"bsonType": bson.A{"object", "string", "null"},
			},
		},
	},
}
