package domain

import "time"

// DonorProfile is the donor identity attached to a user account.
// Registrations reference the profile, not the account.
type DonorProfile struct {
	ID          uint      `json:"id"`
	UserID      uint      `json:"user_id"`
	BloodType   string    `json:"blood_type"`
	Phone       string    `json:"phone"`
	DateOfBirth time.Time `json:"date_of_birth"`
	City        string    `json:"city"`
	State       string    `json:"state"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
