package model

import "time"

// Customer is one row of the customer/CRM table.
type Customer struct {
	ID          string    `json:"id" bson:"customer_id"`
	Phone       string    `json:"phone" bson:"phone"`
	Name        string    `json:"name" bson:"name"`
	Birthday    string    `json:"birthday,omitempty" bson:"birthday,omitempty"`
	NailType    string    `json:"nailType,omitempty" bson:"nail_type,omitempty"`
	Allergies   string    `json:"allergies,omitempty" bson:"allergies,omitempty"`
	Preferences string    `json:"preferences,omitempty" bson:"preferences,omitempty"`
	History     string    `json:"history,omitempty" bson:"history,omitempty"`
	TotalVisits int       `json:"totalVisits" bson:"total_visits"`
	TotalSpent  float64   `json:"totalSpent" bson:"total_spent"`
	LastVisit   string    `json:"lastVisit,omitempty" bson:"last_visit,omitempty"`
	Notes       string    `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt   time.Time `json:"createdAt" bson:"created_at"`
}
