package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SubmissionStatus string

const (
	StatusPending SubmissionStatus = "pending"
	StatusGraded  SubmissionStatus = "graded"
)

func (s SubmissionStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusGraded:
		return true
	default:
		return false
	}
}

type Submission struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	AssignmentID primitive.ObjectID `json:"assignment_id" bson:"assignment_id" validate:"required"`
	Title        string             `json:"title" bson:"title"`
	Note         string             `json:"note" bson:"note"`
	SubmittedBy  string             `json:"submitted_by" bson:"submitted_by"`
	Status       SubmissionStatus   `json:"status" bson:"status"`
	GivenMark    int                `json:"given_mark" bson:"given_mark"`
	Feedback     string             `json:"feedback" bson:"feedback"`
	GradedBy     string             `json:"graded_by" bson:"graded_by"`
	SubmittedAt  time.Time          `json:"submitted_at" bson:"submitted_at"`
}

// Grade is the set of fields written when a submission is marked.
type Grade struct {
	GivenMark int    `json:"given_mark" bson:"given_mark"`
	Feedback  string `json:"feedback" bson:"feedback"`
	GradedBy  string `json:"graded_by" bson:"graded_by"`
}
