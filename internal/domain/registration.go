package domain

import "time"

type RegistrationStatus string

const (
	RegistrationStatusRegistered RegistrationStatus = "registered"
	RegistrationStatusCheckedIn  RegistrationStatus = "checked_in"
	RegistrationStatusCompleted  RegistrationStatus = "completed"
	RegistrationStatusCancelled  RegistrationStatus = "cancelled"
)

func (s RegistrationStatus) IsValid() bool {
	switch s {
	case RegistrationStatusRegistered, RegistrationStatusCheckedIn,
		RegistrationStatusCompleted, RegistrationStatusCancelled:
		return true
	}
	return false
}

// CampRegistration links a donor profile to a camp. At most one
// non-cancelled registration exists per (camp, donor) pair; re-registering
// after cancellation reuses the row instead of inserting a new one.
type CampRegistration struct {
	ID               uint               `json:"id"`
	CampID           uint               `json:"camp_id"`
	DonorID          uint               `json:"donor_id"`
	RegistrationDate time.Time          `json:"registration_date"`
	Status           RegistrationStatus `json:"status"`
	CheckInTime      *time.Time         `json:"check_in_time,omitempty"`
	CheckOutTime     *time.Time         `json:"check_out_time,omitempty"`
	Notes            string             `json:"notes,omitempty"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
}

// RegistrationWithDonor is the organizer's view of a registration.
type RegistrationWithDonor struct {
	CampRegistration
	DonorName  string `json:"donor_name"`
	DonorEmail string `json:"donor_email"`
	DonorPhone string `json:"donor_phone"`
	BloodType  string `json:"blood_type"`
}

// RegistrationWithCamp is the donor's view of their own registration.
type RegistrationWithCamp struct {
	CampRegistration
	CampName      string     `json:"camp_name"`
	CampCity      string     `json:"camp_city"`
	CampStartDate time.Time  `json:"camp_start_date"`
	CampEndDate   time.Time  `json:"camp_end_date"`
	CampStatus    CampStatus `json:"camp_status"`
}
