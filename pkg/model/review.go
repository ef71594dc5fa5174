package model

import "time"

type ReviewStatus string

const (
	ReviewPending  ReviewStatus = "pending"
	ReviewApproved ReviewStatus = "approved"
	ReviewRejected ReviewStatus = "rejected"
)

// Review is one row of the reviews table, keyed by the booking it reviews.
type Review struct {
	OrderID      string       `json:"orderId" bson:"order_id"`
	CustomerName string       `json:"customerName" bson:"customer_name"`
	Rating       int          `json:"rating" bson:"rating"`
	Text         string       `json:"review,omitempty" bson:"text,omitempty"`
	ImageURL     string       `json:"imageUrl,omitempty" bson:"image_url,omitempty"`
	CreatedAt    time.Time    `json:"date" bson:"created_at"`
	Status       ReviewStatus `json:"status" bson:"status"`
}
