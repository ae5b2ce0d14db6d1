package request

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/reddrop/reddrop-api/internal/domain"
)

var (
	errDateNotInPast  = errors.New("date must be in the past")
	errEndBeforeStart = errors.New("end_date must not be before start_date")
)

type CreateCampRequest struct {
	Name                 string    `json:"name"`
	Description          string    `json:"description"`
	StartDate            time.Time `json:"start_date"`
	EndDate              time.Time `json:"end_date"`
	Address              string    `json:"address"`
	City                 string    `json:"city"`
	State                string    `json:"state"`
	PostalCode           string    `json:"postal_code"`
	Latitude             *float64  `json:"latitude"`
	Longitude            *float64  `json:"longitude"`
	ContactPhone         string    `json:"contact_phone"`
	ContactEmail         string    `json:"contact_email"`
	Website              string    `json:"website"`
	MaxCapacity          *int      `json:"max_capacity"`
	RegistrationRequired bool      `json:"registration_required"`
}

func (req *CreateCampRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Description, validation.Length(0, 2000)),
		validation.Field(&req.StartDate, validation.Required),
		validation.Field(&req.EndDate, validation.Required),
		validation.Field(&req.Address, validation.Required, validation.Length(2, 200)),
		validation.Field(&req.City, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.State, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.PostalCode, validation.Length(0, 20)),
		validation.Field(&req.Latitude, validation.Min(-90.0), validation.Max(90.0)),
		validation.Field(&req.Longitude, validation.Min(-180.0), validation.Max(180.0)),
		validation.Field(&req.ContactPhone, validation.Required, validation.Match(phoneExp)),
		validation.Field(&req.ContactEmail, validation.Required, is.Email),
		validation.Field(&req.Website, is.URL),
		validation.Field(&req.MaxCapacity, validation.Min(1)),
	)
	if err != nil {
		return err
	}

	if req.EndDate.Before(req.StartDate) {
		return errEndBeforeStart
	}

	return nil
}

func (req *CreateCampRequest) ToDomain() domain.DonationCamp {
	return domain.DonationCamp{
		Name:                 req.Name,
		Description:          req.Description,
		StartDate:            req.StartDate,
		EndDate:              req.EndDate,
		Address:              req.Address,
		City:                 req.City,
		State:                req.State,
		PostalCode:           req.PostalCode,
		Latitude:             req.Latitude,
		Longitude:            req.Longitude,
		ContactPhone:         req.ContactPhone,
		ContactEmail:         req.ContactEmail,
		Website:              req.Website,
		MaxCapacity:          req.MaxCapacity,
		RegistrationRequired: req.RegistrationRequired,
	}
}

// UpdateCampRequest mirrors domain.CampUpdate; nil fields stay unchanged.
type UpdateCampRequest struct {
	Name                 *string    `json:"name"`
	Description          *string    `json:"description"`
	StartDate            *time.Time `json:"start_date"`
	EndDate              *time.Time `json:"end_date"`
	Address              *string    `json:"address"`
	City                 *string    `json:"city"`
	State                *string    `json:"state"`
	PostalCode           *string    `json:"postal_code"`
	Latitude             *float64   `json:"latitude"`
	Longitude            *float64   `json:"longitude"`
	ContactPhone         *string    `json:"contact_phone"`
	ContactEmail         *string    `json:"contact_email"`
	Website              *string    `json:"website"`
	MaxCapacity          *int       `json:"max_capacity"`
	RegistrationRequired *bool      `json:"registration_required"`
}

func (req *UpdateCampRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Length(2, 100)),
		validation.Field(&req.Description, validation.Length(0, 2000)),
		validation.Field(&req.Address, validation.Length(2, 200)),
		validation.Field(&req.City, validation.Length(1, 100)),
		validation.Field(&req.State, validation.Length(1, 100)),
		validation.Field(&req.PostalCode, validation.Length(0, 20)),
		validation.Field(&req.Latitude, validation.Min(-90.0), validation.Max(90.0)),
		validation.Field(&req.Longitude, validation.Min(-180.0), validation.Max(180.0)),
		validation.Field(&req.ContactEmail, is.Email),
		validation.Field(&req.Website, is.URL),
		validation.Field(&req.MaxCapacity, validation.Min(1)),
	)
	if err != nil {
		return err
	}

	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		return errEndBeforeStart
	}

	return nil
}

func (req *UpdateCampRequest) ToDomain() domain.CampUpdate {
	return domain.CampUpdate{
		Name:                 req.Name,
		Description:          req.Description,
		StartDate:            req.StartDate,
		EndDate:              req.EndDate,
		Address:              req.Address,
		City:                 req.City,
		State:                req.State,
		PostalCode:           req.PostalCode,
		Latitude:             req.Latitude,
		Longitude:            req.Longitude,
		ContactPhone:         req.ContactPhone,
		ContactEmail:         req.ContactEmail,
		Website:              req.Website,
		MaxCapacity:          req.MaxCapacity,
		RegistrationRequired: req.RegistrationRequired,
	}
}

type UpdateCampStatusRequest struct {
	Status string `json:"status"`
}

func (req *UpdateCampStatusRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Status, validation.Required,
			validation.In("upcoming", "active", "completed", "cancelled")),
	)
}

type RegisterForCampRequest struct {
	Notes string `json:"notes"`
}

func (req *RegisterForCampRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Notes, validation.Length(0, 500)),
	)
}

type UpdateRegistrationStatusRequest struct {
	Status string `json:"status"`
}

func (req *UpdateRegistrationStatusRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Status, validation.Required,
			validation.In("registered", "checked_in", "completed", "cancelled")),
	)
}
