package models

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// BookingLock is an advisory lock document. The _id is the lock key, so a
// second insert for the same key fails with a duplicate key error. Owner
// is a per-acquire token so a holder can only release its own lock.
type BookingLock struct {
	ID        string    `bson:"_id"`
	Owner     string    `bson:"owner"`
	ExpiresAt time.Time `bson:"expiresAt"`
	CreatedAt time.Time `bson:"createdAt"`
}

type Locker interface {
	AcquireLock(ctx context.Context, key string, ttl time.Duration) (string, error)
	ReleaseLock(ctx context.Context, key, owner string) error
}

// AcquireLock inserts the lock document for key and returns its owner
// token. A held lock returns
// ErrLockHeld. Locks past expiresAt are reclaimed here because the TTL
// monitor only runs about once a minute.
func (mdb *MongodbRepo) AcquireLock(ctx context.Context, key string, ttl time.Duration) (string, error) {
	col, err := mdb.GetCollection(ctx, BookingLockColName)
	if err != nil {
		return "", err
	}
	now := time.Now().UTC()
	lock := BookingLock{ID: key, Owner: uuid.NewString(), ExpiresAt: now.Add(ttl), CreatedAt: now}

	_, err = col.InsertOne(ctx, lock)
	if err == nil {
		return lock.Owner, nil
	}
	if !mongo.IsDuplicateKeyError(err) {
		return "", storeError("acquire lock", err)
	}

	res, err := col.DeleteOne(ctx, bson.M{"_id": key, "expiresAt": bson.M{"$lt": now}})
	if err != nil {
		return "", storeError("reclaim lock", err)
	}
	if res.DeletedCount == 0 {
		return "", ErrLockHeld
	}
	if _, err := col.InsertOne(ctx, lock); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", ErrLockHeld
		}
		return "", storeError("acquire lock", err)
	}
	return lock.Owner, nil
}

// ReleaseLock deletes the lock only while owner still holds it. A lock that
// expired and was reclaimed by another request is left alone.
func (mdb *MongodbRepo) ReleaseLock(ctx context.Context, key, owner string) error {
	col, err := mdb.GetCollection(ctx, BookingLockColName)
	if err != nil {
		return err
	}
	if _, err := col.DeleteOne(ctx, bson.M{"_id": key, "owner": owner}); err != nil {
		return storeError("release lock", err)
	}
	return nil
}
