package models

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type GalleryImage struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	URL       string             `bson:"url" json:"url"`
	PublicID  string             `bson:"publicId" json:"-"`
	Caption   string             `bson:"caption" json:"caption"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

type GalleryUpload struct {
	Source  string `json:"source" validate:"required"`
	Caption string `json:"caption" validate:"max=200"`
}

type GalleryRepo interface {
	CreateImage(ctx context.Context, image *GalleryImage) (*GalleryImage, error)
	ListImages(ctx context.Context) ([]*GalleryImage, error)
	DeleteImage(ctx context.Context, id string) (*GalleryImage, error)
}

func (mdb *MongodbRepo) CreateImage(ctx context.Context, image *GalleryImage) (*GalleryImage, error) {
	col, err := mdb.GetCollection(ctx, GalleryColName)
	if err != nil {
		return nil, err
	}
	if image.ID.IsZero() {
		image.ID = primitive.NewObjectID()
	}
	image.CreatedAt = time.Now().UTC()
	if _, err := col.InsertOne(ctx, image); err != nil {
		return nil, storeError("insert image", err)
	}
	return image, nil
}

func (mdb *MongodbRepo) ListImages(ctx context.Context) ([]*GalleryImage, error) {
	col, err := mdb.GetCollection(ctx, GalleryColName)
	if err != nil {
		return nil, err
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, storeError("find images", err)
	}
	defer cursor.Close(ctx)

	images := []*GalleryImage{}
	if err := cursor.All(ctx, &images); err != nil {
		return nil, storeError("decode images", err)
	}
	return images, nil
}

// DeleteImage removes the record and returns it so the caller can drop the
// hosted asset too.
func (mdb *MongodbRepo) DeleteImage(ctx context.Context, id string) (*GalleryImage, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	col, err := mdb.GetCollection(ctx, GalleryColName)
	if err != nil {
		return nil, err
	}
	var image GalleryImage
	if err := col.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&image); err != nil {
		return nil, storeError("delete image", err)
	}
	return &image, nil
}
