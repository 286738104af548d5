package repository

import (
	"context"
	"log"
	"time"

	"tuneboard/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const mongoDatabase = "tuneboard"

type MongoUserRepo struct {
	DB *mongo.Client
}

func NewMongoUserRepo(db *mongo.Client) *MongoUserRepo {
	r := &MongoUserRepo{DB: db}

	// Uniqueness of active user names is guaranteed by the index, not by
	// the application-level pre-check in CreateUser.
	_, err := r.users().Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		log.Printf("could not ensure unique index on users.name: %v", err)
	}

	return r
}

func (r *MongoUserRepo) users() *mongo.Collection {
	return r.DB.Database(mongoDatabase).Collection("users")
}

func (r *MongoUserRepo) deletedUsers() *mongo.Collection {
	return r.DB.Database(mongoDatabase).Collection("deleted_users")
}

func (r *MongoUserRepo) CreateUser(user *models.User) error {
	ctx := context.Background()
	now := time.Now().UTC()
	if user.CreatedDate.IsZero() {
		user.CreatedDate = now
	}
	if user.UpdatedDate.IsZero() {
		user.UpdatedDate = now
	}

	existing, err := r.GetUserByName(user.Name)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrDuplicateName
	}

	_, err = r.users().InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		// Concurrent signup with the same name lost the race to the index.
		return ErrDuplicateName
	}
	return err
}

func (r *MongoUserRepo) GetUserByName(name string) (*models.User, error) {
	ctx := context.Background()
	user := &models.User{}

	err := r.users().FindOne(ctx, bson.M{"name": name}).Decode(user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}

	return user, nil
}

func (r *MongoUserRepo) GetAllUsers() ([]*models.User, error) {
	ctx := context.Background()

	cur, err := r.users().Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*models.User
	for cur.Next(ctx) {
		var u models.User
		if err := cur.Decode(&u); err != nil {
			return nil, err
		}
		out = append(out, &u)
	}
	return out, cur.Err()
}

func (r *MongoUserRepo) UpdateUser(name string, user *models.User) error {
	ctx := context.Background()

	if user.Name != name {
		existing, err := r.GetUserByName(user.Name)
		if err != nil {
			return err
		}
		if existing != nil {
			return ErrDuplicateName
		}
	}

	user.UpdatedDate = time.Now().UTC()
	res, err := r.users().UpdateOne(ctx,
		bson.M{"name": name},
		bson.M{"$set": bson.M{
			"name":         user.Name,
			"password":     user.Password,
			"is_admin":     user.IsAdmin,
			"updated_date": user.UpdatedDate,
		}},
	)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateName
	}
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoUserRepo) DeleteUser(name string) error {
	ctx := context.Background()

	user, err := r.GetUserByName(name)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrNotFound
	}

	tombstone := &models.DeletedUser{
		Name:         user.Name,
		CreatedDate:  user.CreatedDate,
		DeletionDate: time.Now().UTC(),
	}
	if _, err := r.deletedUsers().InsertOne(ctx, tombstone); err != nil {
		return err
	}

	_, err = r.users().DeleteOne(ctx, bson.M{"name": name})
	return err
}

func (r *MongoUserRepo) GetDeletedUsers() ([]*models.DeletedUser, error) {
	ctx := context.Background()

	cur, err := r.deletedUsers().Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*models.DeletedUser
	for cur.Next(ctx) {
		var d models.DeletedUser
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		out = append(out, &d)
	}
	return out, cur.Err()
}
