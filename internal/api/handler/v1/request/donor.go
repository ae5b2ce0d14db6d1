package request

import (
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

var bloodTypes = []interface{}{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}

var phoneExp = regexp.MustCompile(`^\+?[0-9\s\-()]{7,20}$`)

type DonorProfileRequest struct {
	BloodType   string    `json:"blood_type"`
	Phone       string    `json:"phone"`
	DateOfBirth time.Time `json:"date_of_birth"`
	City        string    `json:"city"`
	State       string    `json:"state"`
}

func (req *DonorProfileRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.BloodType, validation.Required, validation.In(bloodTypes...)),
		validation.Field(&req.Phone, validation.Required, validation.Match(phoneExp)),
		validation.Field(&req.DateOfBirth, validation.Required, validation.By(dateInPast)),
		validation.Field(&req.City, validation.Length(0, 100)),
		validation.Field(&req.State, validation.Length(0, 100)),
	)
}

func dateInPast(value interface{}) error {
	date, ok := value.(time.Time)
	if !ok || !date.Before(time.Now()) {
		return errDateNotInPast
	}
	return nil
}
