package domain

import "time"

// SubjectReviewEvents is the NATS subject every review mutation is published on
const SubjectReviewEvents = "reviews.events"

const (
	EventReviewCreated = "review.created"
	EventReviewUpdated = "review.updated"
	EventReviewDeleted = "review.deleted"
)

// ReviewEvent is published after a review mutation commits
type ReviewEvent struct {
	Type      string           `json:"type"`
	Timestamp time.Time        `json:"timestamp"`
	Shop      string           `json:"shop"`
	ProductID ProductID        `json:"product_id"`
	ReviewID  int64            `json:"review_id"`
	Status    ModerationStatus `json:"status"`
	Author    Author           `json:"author"`
}
