package models

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AdminUser struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username string             `bson:"username" json:"username" validate:"required,min=3,max=50"`
	Email    string             `bson:"email" json:"email" validate:"required,contactemail"`
	Password string             `bson:"password" json:"-"`
	// First marks the bootstrap admin. A partial unique index allows one.
	First     bool      `bson:"first,omitempty" json:"-"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

type AdminRepo interface {
	CreateAdmin(ctx context.Context, admin *AdminUser) (*AdminUser, error)
	FindAdmin(ctx context.Context, identifier string) (*AdminUser, error)
	CountAdmins(ctx context.Context) (int64, error)
}

func (mdb *MongodbRepo) CreateAdmin(ctx context.Context, admin *AdminUser) (*AdminUser, error) {
	col, err := mdb.GetCollection(ctx, AdminColName)
	if err != nil {
		return nil, err
	}
	if admin.ID.IsZero() {
		admin.ID = primitive.NewObjectID()
	}
	admin.Username = strings.TrimSpace(admin.Username)
	admin.Email = strings.ToLower(strings.TrimSpace(admin.Email))
	admin.CreatedAt = time.Now().UTC()

	if _, err := col.InsertOne(ctx, admin); err != nil {
		return nil, storeError("insert admin", err)
	}
	return admin, nil
}

// FindAdmin looks an admin up by username or email.
func (mdb *MongodbRepo) FindAdmin(ctx context.Context, identifier string) (*AdminUser, error) {
	col, err := mdb.GetCollection(ctx, AdminColName)
	if err != nil {
		return nil, err
	}
	identifier = strings.TrimSpace(identifier)
	filter := bson.M{"$or": bson.A{
		bson.M{"username": identifier},
		bson.M{"email": strings.ToLower(identifier)},
	}}

	var admin AdminUser
	if err := col.FindOne(ctx, filter).Decode(&admin); err != nil {
		return nil, storeError("find admin", err)
	}
	return &admin, nil
}

func (mdb *MongodbRepo) CountAdmins(ctx context.Context) (int64, error) {
	col, err := mdb.GetCollection(ctx, AdminColName)
	if err != nil {
		return 0, err
	}
	n, err := col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, storeError("count admins", err)
	}
	return n, nil
}
