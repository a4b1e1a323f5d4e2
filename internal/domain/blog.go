package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const MaxBlogImages = 5

// OtherCategory selects blogs whose category is outside MainBlogCategories.
const OtherCategory = "other"

var MainBlogCategories = []string{"crops", "livestock", "fertilizers", "pesticides", "technology"}

type Blog struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title     string             `bson:"title" json:"title"`
	Images    [][]byte           `bson:"images" json:"images"`
	Content   string             `bson:"content" json:"content"`
	UserID    primitive.ObjectID `bson:"userId,omitempty" json:"userId,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	Category  string             `bson:"category,omitempty" json:"category,omitempty"`
}

// BlogView is a blog with its author reduced to id and username.
type BlogView struct {
	Blog
	Author *UserRef `json:"author,omitempty"`
}
