package repository

import (
	"context"
	"time"

	"tuneboard/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type MongoPostRepo struct {
	DB *mongo.Client
}

func NewMongoPostRepo(db *mongo.Client) *MongoPostRepo {
	return &MongoPostRepo{DB: db}
}

func (r *MongoPostRepo) posts() *mongo.Collection {
	return r.DB.Database(mongoDatabase).Collection("posts")
}

func (r *MongoPostRepo) CreatePost(post *models.Post) error {
	ctx := context.Background()

	if err := ValidatePost(post); err != nil {
		return err
	}
	if post.ID == "" {
		post.ID = NewID()
	}
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now().UTC()
	}

	_, err := r.posts().InsertOne(ctx, post)
	return err
}

func (r *MongoPostRepo) GetPostByID(id string) (*models.Post, error) {
	ctx := context.Background()
	post := &models.Post{}

	err := r.posts().FindOne(ctx, bson.M{"_id": id}).Decode(post)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return post, nil
}

// GetAllPosts returns posts in natural (insertion) order; the home feed
// renders oldest first.
func (r *MongoPostRepo) GetAllPosts() ([]*models.Post, error) {
	ctx := context.Background()

	cur, err := r.posts().Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*models.Post
	for cur.Next(ctx) {
		var p models.Post
		if err := cur.Decode(&p); err != nil {
			return nil, err
		}
		out = append(out, &p)
	}
	return out, cur.Err()
}

func (r *MongoPostRepo) UpdatePost(id string, post *models.Post) error {
	ctx := context.Background()

	now := time.Now().UTC()
	post.UpdatedAt = &now

	// Images are replaced with exactly what the caller provides; an empty
	// slice clears the list.
	images := post.Images
	if images == nil {
		images = []string{}
	}

	res, err := r.posts().UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"name":        post.Name,
			"description": post.Description,
			"images":      images,
			"updated_at":  post.UpdatedAt,
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoPostRepo) DeletePost(id string) error {
	ctx := context.Background()

	res, err := r.posts().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
