package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/accounthub/internal/app/system/passwords"
	"github.com/dalemusser/accounthub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser inserts a user with the given fields and a real bcrypt
// hash of password, returning the stored record.
func (f *Fixtures) CreateUser(ctx context.Context, fullName, email, password, role string) models.User {
	f.t.Helper()

	hash, err := passwords.Hash(password)
	if err != nil {
		f.t.Fatalf("failed to hash fixture password: %v", err)
	}

	now := time.Now().UTC()
	user := models.User{
		ID:           primitive.NewObjectID(),
		FullName:     fullName,
		FullNameCI:   text.Fold(fullName),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Status:       models.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateAdmin inserts an admin user.
func (f *Fixtures) CreateAdmin(ctx context.Context, fullName, email, password string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, fullName, email, password, models.RoleAdmin)
}

// CreateInactiveUser inserts a user whose status is inactive.
func (f *Fixtures) CreateInactiveUser(ctx context.Context, fullName, email, password string) models.User {
	f.t.Helper()

	u := f.CreateUser(ctx, fullName, email, password, models.RoleUser)
	if _, err := f.db.Collection("users").UpdateOne(ctx,
		bson.M{"_id": u.ID},
		bson.M{"$set": bson.M{"status": models.StatusInactive}},
	); err != nil {
		f.t.Fatalf("failed to deactivate test user: %v", err)
	}
	u.Status = models.StatusInactive
	return u
}
