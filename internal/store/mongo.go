package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/joonpark/post-board/internal/apperr"
	"github.com/joonpark/post-board/internal/models"
)

// MongoStore handles post CRUD in MongoDB.
type MongoStore struct {
	col *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{col: db.Collection("posts")}
}

// EnsureIndexes creates the created_at index backing newest-first listing.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "created_at", Value: -1}},
	})
	return err
}

func parseObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, apperr.WithMessage(apperr.ErrInvalidID, "invalid post id")
	}
	return oid, nil
}

// InsertPost persists a new post and returns it with the generated id.
func (s *MongoStore) InsertPost(ctx context.Context, post *models.Post) (*models.Post, error) {
	res, err := s.col.InsertOne(ctx, post)
	if err != nil {
		return nil, fmt.Errorf("mongo insert: %w", err)
	}
	post.ID = res.InsertedID.(primitive.ObjectID)
	return post, nil
}

// GetPostByID returns the post, ErrInvalidID for a malformed id, or
// ErrNotFound when no post has that id.
func (s *MongoStore) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	var post models.Post
	if err := s.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&post); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("mongo find: %w", err)
	}
	return &post, nil
}

// ListPostsPage returns one page of posts, newest first, plus the total
// count across all pages.
func (s *MongoStore) ListPostsPage(ctx context.Context, offset, limit int) ([]models.Post, int64, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))
	cur, err := s.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("mongo find: %w", err)
	}
	defer cur.Close(ctx)

	var posts []models.Post
	if err := cur.All(ctx, &posts); err != nil {
		return nil, 0, fmt.Errorf("mongo decode: %w", err)
	}

	total, err := s.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("mongo count: %w", err)
	}
	return posts, total, nil
}

// ReplacePostFields sets title, content, and updated_at in a single
// statement so concurrent updates can never leave mismatched fields.
func (s *MongoStore) ReplacePostFields(ctx context.Context, id, title, content string, updatedAt time.Time) error {
	oid, err := parseObjectID(id)
	if err != nil {
		return err
	}
	res, err := s.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"title":      title,
		"content":    content,
		"updated_at": updatedAt,
	}})
	if err != nil {
		return fmt.Errorf("mongo update: %w", err)
	}
	if res.MatchedCount == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// DeletePostByID permanently removes the post. Deleting an absent id
// reports ErrNotFound.
func (s *MongoStore) DeletePostByID(ctx context.Context, id string) error {
	oid, err := parseObjectID(id)
	if err != nil {
		return err
	}
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("mongo delete: %w", err)
	}
	if res.DeletedCount == 0 {
		return apperr.ErrNotFound
	}
	return nil
}
