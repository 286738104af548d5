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

type MongoSessionRepo struct {
	DB *mongo.Client
}

func NewMongoSessionRepo(db *mongo.Client) *MongoSessionRepo {
	r := &MongoSessionRepo{DB: db}

	// TTL index: Mongo reaps expired sessions on its own.
	_, err := r.sessions().Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	if err != nil {
		log.Printf("could not ensure TTL index on sessions.expires_at: %v", err)
	}

	return r
}

func (r *MongoSessionRepo) sessions() *mongo.Collection {
	return r.DB.Database(mongoDatabase).Collection("sessions")
}

func (r *MongoSessionRepo) GetSession(id string) (*models.Session, error) {
	ctx := context.Background()
	session := &models.Session{}

	err := r.sessions().FindOne(ctx, bson.M{"_id": id}).Decode(session)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}

	// The TTL monitor runs on a coarse interval; treat anything past its
	// expiry as gone even if the reaper has not caught up yet.
	if session.Expired(time.Now().UTC()) {
		return nil, nil
	}

	return session, nil
}

func (r *MongoSessionRepo) SaveSession(session *models.Session) error {
	ctx := context.Background()

	_, err := r.sessions().ReplaceOne(ctx,
		bson.M{"_id": session.ID},
		session,
		options.Replace().SetUpsert(true),
	)
	return err
}

func (r *MongoSessionRepo) DeleteSession(id string) error {
	ctx := context.Background()

	_, err := r.sessions().DeleteOne(ctx, bson.M{"_id": id})
	return err
}
