package model

// Service is one row of the services catalog.
type Service struct {
	ID          string  `json:"id" bson:"service_id"`
	Name        string  `json:"name" bson:"name"`
	Category    string  `json:"category,omitempty" bson:"category,omitempty"`
	Price       float64 `json:"price" bson:"price"`
	DurationMin int     `json:"duration" bson:"duration_min"`
	Description string  `json:"description,omitempty" bson:"description,omitempty"`
	ImageURL    string  `json:"imageUrl,omitempty" bson:"image_url,omitempty"`
	Active      bool    `json:"active" bson:"active"`
}

// Staff is one row of the staff catalog.
type Staff struct {
	ID          string   `json:"id" bson:"staff_id"`
	Name        string   `json:"name" bson:"name"`
	Nickname    string   `json:"nickname,omitempty" bson:"nickname,omitempty"`
	Specialties []string `json:"specialties,omitempty" bson:"specialties,omitempty"`
	Bio         string   `json:"bio,omitempty" bson:"bio,omitempty"`
	ImageURL    string   `json:"imageUrl,omitempty" bson:"image_url,omitempty"`
	Active      bool     `json:"active" bson:"active"`
}
