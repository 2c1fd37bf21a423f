package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Assignment struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title       string             `json:"title" bson:"title" validate:"required"`
	Photo       string             `json:"photo" bson:"photo"`
	Marks       int                `json:"marks" bson:"marks" validate:"gte=0"`
	Difficulty  string             `json:"difficulty" bson:"difficulty"`
	Due         time.Time          `json:"due" bson:"due"`
	Description string             `json:"description" bson:"description"`
	CreatedBy   string             `json:"created_by" bson:"created_by"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
}
