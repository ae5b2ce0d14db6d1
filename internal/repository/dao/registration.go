package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrRegistrationNotFound = errors.New("registration not found")
)

type CampRegistration struct {
	ID uint `gorm:"primaryKey"`

	CampID  uint         `gorm:"not null;index:idx_registrations_camp_donor"`
	Camp    DonationCamp `gorm:"foreignKey:CampID"`
	DonorID uint         `gorm:"not null;index:idx_registrations_camp_donor"`
	Donor   DonorProfile `gorm:"foreignKey:DonorID"`

	RegistrationDate time.Time `gorm:"not null"`
	Status           string    `gorm:"not null;default:registered"`
	CheckInTime      *time.Time
	CheckOutTime     *time.Time
	Notes            string

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type RegistrationWithDonor struct {
	CampRegistration `gorm:"embedded"`
	DonorName        string `gorm:"column:donor_name"`
	DonorEmail       string `gorm:"column:donor_email"`
	DonorPhone       string `gorm:"column:donor_phone"`
	BloodType        string `gorm:"column:blood_type"`
}

type RegistrationWithCamp struct {
	CampRegistration `gorm:"embedded"`
	CampName         string    `gorm:"column:camp_name"`
	CampCity         string    `gorm:"column:camp_city"`
	CampStartDate    time.Time `gorm:"column:camp_start_date"`
	CampEndDate      time.Time `gorm:"column:camp_end_date"`
	CampStatus       string    `gorm:"column:camp_status"`
}

type RegistrationDAO struct {
	db *gorm.DB
}

func NewRegistrationDAO(db *gorm.DB) *RegistrationDAO {
	return &RegistrationDAO{
		db: db,
	}
}

func (d *RegistrationDAO) Insert(ctx context.Context, registration CampRegistration) (CampRegistration, error) {
	result := d.db.WithContext(ctx).Create(&registration)
	if result.Error != nil {
		return CampRegistration{}, result.Error
	}

	return registration, nil
}

func (d *RegistrationDAO) FindByID(ctx context.Context, id uint) (CampRegistration, error) {
	var registration CampRegistration

	result := d.db.WithContext(ctx).First(&registration, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return CampRegistration{}, ErrRegistrationNotFound
		}

		return CampRegistration{}, result.Error
	}

	return registration, nil
}

// FindByCampAndDonor returns the single registration row for the pair,
// cancelled or not. The uniqueness invariant lives in the service, which
// reuses a cancelled row instead of inserting a second one.
func (d *RegistrationDAO) FindByCampAndDonor(ctx context.Context, campID, donorID uint) (CampRegistration, error) {
	var registration CampRegistration

	result := d.db.WithContext(ctx).
		First(&registration, "camp_id = ? AND donor_id = ?", campID, donorID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return CampRegistration{}, ErrRegistrationNotFound
		}

		return CampRegistration{}, result.Error
	}

	return registration, nil
}

func (d *RegistrationDAO) Update(ctx context.Context, registration CampRegistration) (CampRegistration, error) {
	result := d.db.WithContext(ctx).Save(&registration)
	if result.Error != nil {
		return CampRegistration{}, result.Error
	}

	return registration, nil
}

func (d *RegistrationDAO) FindByCampWithDonor(ctx context.Context, campID uint) ([]RegistrationWithDonor, error) {
	var rows []RegistrationWithDonor

	result := d.db.WithContext(ctx).
		Table("camp_registrations").
		Select(`camp_registrations.*,
			users.name AS donor_name,
			users.email AS donor_email,
			donor_profiles.phone AS donor_phone,
			donor_profiles.blood_type AS blood_type`).
		Joins("JOIN donor_profiles ON donor_profiles.id = camp_registrations.donor_id").
		Joins("JOIN users ON users.id = donor_profiles.user_id").
		Where("camp_registrations.camp_id = ?", campID).
		Order("camp_registrations.registration_date DESC").
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	return rows, nil
}

func (d *RegistrationDAO) FindByDonorWithCamp(ctx context.Context, donorID uint) ([]RegistrationWithCamp, error) {
	var rows []RegistrationWithCamp

	result := d.db.WithContext(ctx).
		Table("camp_registrations").
		Select(`camp_registrations.*,
			donation_camps.name AS camp_name,
			donation_camps.city AS camp_city,
			donation_camps.start_date AS camp_start_date,
			donation_camps.end_date AS camp_end_date,
			donation_camps.status AS camp_status`).
		Joins("JOIN donation_camps ON donation_camps.id = camp_registrations.camp_id").
		Where("camp_registrations.donor_id = ?", donorID).
		Order("camp_registrations.registration_date DESC").
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	return rows, nil
}
