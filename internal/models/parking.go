package models

import "time"

// Parking represents a parking lot run by a manager.
type Parking struct {
	ID          int64     `json:"id" db:"id"`
	ManagerID   *int64    `json:"manager_id" db:"manager_id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description" db:"description"`
	Address     *string   `json:"address" db:"address"`
	Latitude    *float64  `json:"latitude" db:"latitude"`
	Longitude   *float64  `json:"longitude" db:"longitude"`
	TotalSpaces int       `json:"total_spaces" db:"total_spaces"`
	HourlyRate  float64   `json:"hourly_rate" db:"hourly_rate"`
	IsActive    bool      `json:"is_active" db:"is_active"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// ParkingInput is the body of POST /api/parkings and PUT /api/parkings/{id}.
// ManagerID is ignored on update.
type ParkingInput struct {
	ManagerID   *int64   `json:"manager_id"`
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Address     *string  `json:"address"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	TotalSpaces *int     `json:"total_spaces"`
	HourlyRate  *float64 `json:"hourly_rate"`
	IsActive    *bool    `json:"is_active"`
}

// ActiveOrDefault returns IsActive, treating an absent flag as active.
func (p *ParkingInput) ActiveOrDefault() bool {
	if p.IsActive == nil {
		return true
	}
	return *p.IsActive
}
