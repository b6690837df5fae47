package models

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the stores rely on. The partial unique
// index on bookings is what makes double booking impossible at the storage
// level, so startup fails without it.
func (mdb *MongodbRepo) EnsureIndexes(ctx context.Context) error {
	byCollection := map[string][]mongo.IndexModel{
		BookingColName: {
			{
				Keys: bson.D{{Key: "serviceName", Value: 1}, {Key: "datetime", Value: 1}},
				Options: options.Index().
					SetName("active_service_datetime_unique").
					SetUnique(true).
					SetPartialFilterExpression(bson.M{"active": true}),
			},
			{Keys: bson.D{{Key: "datetime", Value: 1}}, Options: options.Index().SetName("datetime")},
		},
		BookingLockColName: {
			{
				Keys:    bson.D{{Key: "expiresAt", Value: 1}},
				Options: options.Index().SetName("expires_ttl").SetExpireAfterSeconds(0),
			},
		},
		AdminColName: {
			{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetName("username_unique").SetUnique(true)},
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetName("email_unique").SetUnique(true)},
			{
				Keys: bson.D{{Key: "first", Value: 1}},
				Options: options.Index().
					SetName("first_admin_unique").
					SetUnique(true).
					SetPartialFilterExpression(bson.M{"first": true}),
			},
		},
		FeedbackColName: {
			{Keys: bson.D{{Key: "createdAt", Value: -1}}, Options: options.Index().SetName("created_desc")},
		},
		GalleryColName: {
			{Keys: bson.D{{Key: "createdAt", Value: -1}}, Options: options.Index().SetName("created_desc")},
		},
	}

	for _, name := range []string{BookingColName, BookingLockColName, AdminColName, FeedbackColName, GalleryColName} {
		col, err := mdb.GetCollection(ctx, name)
		if err != nil {
			return err
		}
		if _, err := col.Indexes().CreateMany(ctx, byCollection[name]); err != nil {
			return storeError("create indexes on "+name, err)
		}
	}
	return nil
}
