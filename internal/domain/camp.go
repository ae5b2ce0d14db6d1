package domain

import "time"

type CampStatus string

const (
	CampStatusUpcoming  CampStatus = "upcoming"
	CampStatusActive    CampStatus = "active"
	CampStatusCompleted CampStatus = "completed"
	CampStatusCancelled CampStatus = "cancelled"
)

func (s CampStatus) IsValid() bool {
	switch s {
	case CampStatusUpcoming, CampStatusActive, CampStatusCompleted, CampStatusCancelled:
		return true
	}
	return false
}

// DonationCamp is a blood-donation event owned by its organizer.
//
// Status is maintained by the organizer and is never derived from the date
// window; IsUpcoming/IsActive/IsCompleted compute the window from the dates
// independently. Both are consulted when gating registrations.
type DonationCamp struct {
	ID                   uint       `json:"id"`
	OrganizerID          uint       `json:"organizer_id"`
	Name                 string     `json:"name"`
	Description          string     `json:"description"`
	StartDate            time.Time  `json:"start_date"`
	EndDate              time.Time  `json:"end_date"`
	Address              string     `json:"address"`
	City                 string     `json:"city"`
	State                string     `json:"state"`
	PostalCode           string     `json:"postal_code"`
	Latitude             *float64   `json:"latitude,omitempty"`
	Longitude            *float64   `json:"longitude,omitempty"`
	ContactPhone         string     `json:"contact_phone"`
	ContactEmail         string     `json:"contact_email"`
	Website              string     `json:"website,omitempty"`
	MaxCapacity          *int       `json:"max_capacity,omitempty"`
	RegistrationRequired bool       `json:"registration_required"`
	Status               CampStatus `json:"status"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

// IsUpcoming, IsActive and IsCompleted partition time around the camp's date
// window. Both bounds are inclusive for IsActive, so now == StartDate and
// now == EndDate both count as active.
func (c DonationCamp) IsUpcoming(now time.Time) bool {
	return now.Before(c.StartDate)
}

func (c DonationCamp) IsActive(now time.Time) bool {
	return !now.Before(c.StartDate) && !now.After(c.EndDate)
}

func (c DonationCamp) IsCompleted(now time.Time) bool {
	return now.After(c.EndDate)
}

// AcceptsRegistrations reports whether the camp is open for registration
// changes: the stored status must be upcoming or active, and the date window
// must not have passed.
func (c DonationCamp) AcceptsRegistrations(now time.Time) bool {
	if c.Status != CampStatusUpcoming && c.Status != CampStatusActive {
		return false
	}

	return c.IsUpcoming(now) || c.IsActive(now)
}

func CanRegister(camp DonationCamp, now time.Time, isOwnCamp, alreadyRegistered bool) bool {
	return !isOwnCamp && !alreadyRegistered && camp.AcceptsRegistrations(now)
}

func CanCancel(camp DonationCamp, now time.Time, alreadyRegistered bool) bool {
	return alreadyRegistered && camp.AcceptsRegistrations(now)
}

// CampUpdate carries a partial camp mutation; nil fields are left unchanged.
type CampUpdate struct {
	Name                 *string    `json:"name,omitempty"`
	Description          *string    `json:"description,omitempty"`
	StartDate            *time.Time `json:"start_date,omitempty"`
	EndDate              *time.Time `json:"end_date,omitempty"`
	Address              *string    `json:"address,omitempty"`
	City                 *string    `json:"city,omitempty"`
	State                *string    `json:"state,omitempty"`
	PostalCode           *string    `json:"postal_code,omitempty"`
	Latitude             *float64   `json:"latitude,omitempty"`
	Longitude            *float64   `json:"longitude,omitempty"`
	ContactPhone         *string    `json:"contact_phone,omitempty"`
	ContactEmail         *string    `json:"contact_email,omitempty"`
	Website              *string    `json:"website,omitempty"`
	MaxCapacity          *int       `json:"max_capacity,omitempty"`
	RegistrationRequired *bool      `json:"registration_required,omitempty"`
}

// CampFilters compose conjunctively; SearchTerm matches name or description
// independently of the other filters.
type CampFilters struct {
	Status     CampStatus
	City       string
	State      string
	StartDate  *time.Time
	EndDate    *time.Time
	SearchTerm string
}

type NearbyCamp struct {
	DonationCamp
	DistanceKm float64 `json:"distance_km"`
}

type CampStatistics struct {
	CampID              uint    `json:"camp_id"`
	TotalRegistrations  int     `json:"total_registrations"`
	ActiveRegistrations int     `json:"active_registrations"`
	CheckedIn           int     `json:"checked_in"`
	Completed           int     `json:"completed"`
	Cancelled           int     `json:"cancelled"`
	RegistrationRate    float64 `json:"registration_rate"`
}
