package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post is a single board post stored in MongoDB. The author is stored as
// the user's id; the Author projection is resolved from the user store
// before the post is returned to a client.
type Post struct {
	ID        primitive.ObjectID `json:"id"         bson:"_id,omitempty"`
	Title     string             `json:"title"      bson:"title"`
	Content   string             `json:"content"    bson:"content"`
	AuthorID  string             `json:"-"          bson:"author"`
	Author    *Author            `json:"author"     bson:"-"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

// PostRequest is the JSON body for POST /posts and PUT /posts/{id}.
type PostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}
