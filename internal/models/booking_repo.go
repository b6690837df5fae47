package models

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (mdb *MongodbRepo) CreateBooking(ctx context.Context, booking *Booking) (*Booking, error) {
	col, err := mdb.GetCollection(ctx, BookingColName)
	if err != nil {
		return nil, err
	}
	booking.BeforeCreate()
	if _, err := col.InsertOne(ctx, booking); err != nil {
		return nil, storeError("insert booking", err)
	}
	return booking, nil
}

func (mdb *MongodbRepo) ListBookings(ctx context.Context) ([]*Booking, error) {
	col, err := mdb.GetCollection(ctx, BookingColName)
	if err != nil {
		return nil, err
	}
	opts := options.Find().SetSort(bson.D{{Key: "datetime", Value: 1}})
	return findBookings(ctx, col, bson.M{}, opts)
}

func (mdb *MongodbRepo) GetBookingByID(ctx context.Context, id string) (*Booking, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	col, err := mdb.GetCollection(ctx, BookingColName)
	if err != nil {
		return nil, err
	}
	var booking Booking
	if err := col.FindOne(ctx, bson.M{"_id": oid}).Decode(&booking); err != nil {
		return nil, storeError("find booking", err)
	}
	return &booking, nil
}

// ListActiveBookings returns active bookings starting in [q.From, q.To),
// ordered by start time.
func (mdb *MongodbRepo) ListActiveBookings(ctx context.Context, q BookingQuery) ([]*Booking, error) {
	col, err := mdb.GetCollection(ctx, BookingColName)
	if err != nil {
		return nil, err
	}
	filter := bson.M{
		"active":   true,
		"datetime": bson.M{"$gte": q.From, "$lt": q.To},
	}
	if q.ServiceName != "" {
		filter["serviceName"] = q.ServiceName
	}
	opts := options.Find().SetSort(bson.D{{Key: "datetime", Value: 1}})
	return findBookings(ctx, col, filter, opts)
}

// UpdateBookingStatus writes status, active and updatedAt in one document
// update and returns the stored result.
func (mdb *MongodbRepo) UpdateBookingStatus(ctx context.Context, id string, status BookingStatus) (*Booking, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	col, err := mdb.GetCollection(ctx, BookingColName)
	if err != nil {
		return nil, err
	}
	update := bson.M{
		"$set": bson.M{
			"status":    status,
			"active":    status.Blocks(),
			"updatedAt": time.Now().UTC(),
		},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var booking Booking
	if err := col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&booking); err != nil {
		return nil, storeError("update booking status", err)
	}
	return &booking, nil
}

func (mdb *MongodbRepo) DeleteBooking(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	col, err := mdb.GetCollection(ctx, BookingColName)
	if err != nil {
		return err
	}
	res, err := col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return storeError("delete booking", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("delete booking: %w", ErrNotFound)
	}
	return nil
}

// DeleteBookingsBefore removes every booking that started before cutoff,
// whatever its status.
func (mdb *MongodbRepo) DeleteBookingsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	col, err := mdb.GetCollection(ctx, BookingColName)
	if err != nil {
		return 0, err
	}
	res, err := col.DeleteMany(ctx, bson.M{"datetime": bson.M{"$lt": cutoff}})
	if err != nil {
		return 0, storeError("delete expired bookings", err)
	}
	return res.DeletedCount, nil
}

func findBookings(ctx context.Context, col *mongo.Collection, filter bson.M, opts *options.FindOptions) ([]*Booking, error) {
	cursor, err := col.Find(ctx, filter, opts)
	if err != nil {
		return nil, storeError("find bookings", err)
	}
	defer cursor.Close(ctx)

	bookings := []*Booking{}
	for cursor.Next(ctx) {
		var b Booking
		if err := cursor.Decode(&b); err != nil {
			return nil, fmt.Errorf("error decoding booking: %w", err)
		}
		bookings = append(bookings, &b)
	}
	if err := cursor.Err(); err != nil {
		return nil, storeError("iterate bookings", err)
	}
	return bookings, nil
}
