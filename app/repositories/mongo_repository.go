package repositories

import (
	"context"
	"errors"
	"fmt"

	"commentsapi/app/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// Collection names used by the Mongo repositories.
const (
	PostCollection    = "posts"
	CommentCollection = "comments"
)

// MongoPostRepository implements PostRepository on a MongoDB collection
type MongoPostRepository struct {
	coll *mongo.Collection
}

// NewMongoPostRepository creates a new MongoPostRepository
func NewMongoPostRepository(db *mongo.Database) *MongoPostRepository {
	return &MongoPostRepository{coll: db.Collection(PostCollection)}
}

// Create inserts a new post
func (r *MongoPostRepository) Create(ctx context.Context, post *models.Post) error {
	post.BeforeCreate()
	if _, err := r.coll.InsertOne(ctx, post); err != nil {
		return fmt.Errorf("insert post: %w", err)
	}
	return nil
}

// GetByID retrieves a post by ID
func (r *MongoPostRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	var post models.Post
	if err := findByID(ctx, r.coll, id, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// PrependComment pushes commentID at position 0 of the post's comments
// array in a single update.
func (r *MongoPostRepository) PrependComment(ctx context.Context, postID, commentID string) error {
	update := bson.D{{Key: "$push", Value: bson.D{{Key: "comments", Value: bson.D{
		{Key: "$each", Value: bson.A{commentID}},
		{Key: "$position", Value: 0},
	}}}}}
	res, err := r.coll.UpdateOne(ctx, bson.D{{Key: "_id", Value: postID}}, update)
	if err != nil {
		return fmt.Errorf("prepend comment: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// MongoCommentRepository implements CommentRepository on a MongoDB collection
type MongoCommentRepository struct {
	coll *mongo.Collection
}

// NewMongoCommentRepository creates a new MongoCommentRepository
func NewMongoCommentRepository(db *mongo.Database) *MongoCommentRepository {
	return &MongoCommentRepository{coll: db.Collection(CommentCollection)}
}

// Create inserts a new comment
func (r *MongoCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	comment.BeforeCreate()
	if _, err := r.coll.InsertOne(ctx, comment); err != nil {
		return fmt.Errorf("insert comment: %w", err)
	}
	return nil
}

// GetByID retrieves a comment by ID
func (r *MongoCommentRepository) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	var comment models.Comment
	if err := findByID(ctx, r.coll, id, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// UpdateText replaces the text of an existing comment
func (r *MongoCommentRepository) UpdateText(ctx context.Context, id, text string) error {
	update := bson.D{{Key: "$set", Value: bson.D{{Key: "text", Value: text}}}}
	res, err := r.coll.UpdateOne(ctx, bson.D{{Key: "_id", Value: id}}, update)
	if err != nil {
		return fmt.Errorf("update comment: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func findByID(ctx context.Context, coll *mongo.Collection, id string, out interface{}) error {
	err := coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("find %s %s: %w", coll.Name(), id, err)
	}
	return nil
}
