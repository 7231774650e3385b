package models

import "time"

// Review is a user's rating of a parking lot.
// CreatedAt is refreshed whenever the review is edited.
type Review struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"user_id" db:"user_id"`
	ParkingID int64     `json:"parking_id" db:"parking_id"`
	Rating    int       `json:"rating" db:"rating"`
	Comment   *string   `json:"comment" db:"comment"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// ReviewCreate is the body of POST /api/reviews.
type ReviewCreate struct {
	UserID    *int64  `json:"user_id"`
	ParkingID *int64  `json:"parking_id"`
	Rating    *int    `json:"rating"`
	Comment   *string `json:"comment"`
}

// ReviewUpdate is the body of PUT /api/reviews/{id}.
type ReviewUpdate struct {
	Rating  *int    `json:"rating"`
	Comment *string `json:"comment"`
}
