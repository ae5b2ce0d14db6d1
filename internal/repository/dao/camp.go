package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrCampNotFound = errors.New("camp not found")
)

type DonationCamp struct {
	ID uint `gorm:"primaryKey"`

	OrganizerID uint `gorm:"index;not null"`
	Organizer   User `gorm:"foreignKey:OrganizerID"`

	Name        string `gorm:"not null"`
	Description string

	StartDate time.Time `gorm:"index;not null"`
	EndDate   time.Time `gorm:"not null"`

	Address    string `gorm:"not null"`
	City       string `gorm:"index"`
	State      string
	PostalCode string
	Latitude   *float64
	Longitude  *float64

	ContactPhone string
	ContactEmail string
	Website      string

	MaxCapacity          *int
	RegistrationRequired bool   `gorm:"not null;default:true"`
	Status               string `gorm:"index;not null;default:upcoming"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// CampFilters compose conjunctively. City, State and SearchTerm are
// case-insensitive partial matches; the date bounds are inclusive.
type CampFilters struct {
	Status     string
	City       string
	State      string
	StartDate  *time.Time
	EndDate    *time.Time
	SearchTerm string
}

type NearbyCamp struct {
	DonationCamp `gorm:"embedded"`
	DistanceKm   float64 `gorm:"column:distance_km"`
}

type CampStatistics struct {
	TotalRegistrations  int `gorm:"column:total_registrations"`
	ActiveRegistrations int `gorm:"column:active_registrations"`
	CheckedIn           int `gorm:"column:checked_in"`
	Completed           int `gorm:"column:completed"`
	Cancelled           int `gorm:"column:cancelled"`
}

type CampDAO struct {
	db *gorm.DB
}

func NewCampDAO(db *gorm.DB) *CampDAO {
	return &CampDAO{
		db: db,
	}
}

func (d *CampDAO) Insert(ctx context.Context, camp DonationCamp) (DonationCamp, error) {
	result := d.db.WithContext(ctx).Create(&camp)
	if result.Error != nil {
		return DonationCamp{}, result.Error
	}

	return camp, nil
}

func (d *CampDAO) FindByID(ctx context.Context, id uint) (DonationCamp, error) {
	var camp DonationCamp

	result := d.db.WithContext(ctx).First(&camp, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return DonationCamp{}, ErrCampNotFound
		}

		return DonationCamp{}, result.Error
	}

	return camp, nil
}

func (d *CampDAO) FindByOrganizerID(ctx context.Context, organizerID uint) ([]DonationCamp, error) {
	var camps []DonationCamp

	result := d.db.WithContext(ctx).
		Where("organizer_id = ?", organizerID).
		Order("start_date DESC").
		Find(&camps)
	if result.Error != nil {
		return nil, result.Error
	}

	return camps, nil
}

func (d *CampDAO) FindPublic(ctx context.Context, filters CampFilters) ([]DonationCamp, error) {
	tx := d.db.WithContext(ctx).Model(&DonationCamp{})

	if filters.Status != "" {
		tx = tx.Where("status = ?", filters.Status)
	}
	if filters.City != "" {
		tx = tx.Where("city ILIKE ?", "%"+filters.City+"%")
	}
	if filters.State != "" {
		tx = tx.Where("state ILIKE ?", "%"+filters.State+"%")
	}
	if filters.StartDate != nil {
		tx = tx.Where("start_date >= ?", *filters.StartDate)
	}
	if filters.EndDate != nil {
		tx = tx.Where("end_date <= ?", *filters.EndDate)
	}
	if filters.SearchTerm != "" {
		term := "%" + filters.SearchTerm + "%"
		tx = tx.Where("name ILIKE ? OR description ILIKE ?", term, term)
	}

	var camps []DonationCamp
	result := tx.Order("start_date ASC").Find(&camps)
	if result.Error != nil {
		return nil, result.Error
	}

	return camps, nil
}

func (d *CampDAO) Update(ctx context.Context, camp DonationCamp) (DonationCamp, error) {
	result := d.db.WithContext(ctx).Save(&camp)
	if result.Error != nil {
		return DonationCamp{}, result.Error
	}

	return camp, nil
}

func (d *CampDAO) UpdateStatus(ctx context.Context, id uint, status string) error {
	result := d.db.WithContext(ctx).
		Model(&DonationCamp{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCampNotFound
	}

	return nil
}

func (d *CampDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&DonationCamp{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCampNotFound
	}

	return nil
}

// FindNearby computes great-circle distances with the haversine formula in
// SQL, mirroring the find_nearby_camps stored procedure the mobile clients
// used. Camps without coordinates are excluded.
func (d *CampDAO) FindNearby(ctx context.Context, lat, lng, radiusKm float64) ([]NearbyCamp, error) {
	const query = `
		SELECT * FROM (
			SELECT c.*,
				(6371 * acos(least(1.0,
					cos(radians(?)) * cos(radians(c.latitude)) *
					cos(radians(c.longitude) - radians(?)) +
					sin(radians(?)) * sin(radians(c.latitude))
				))) AS distance_km
			FROM donation_camps c
			WHERE c.latitude IS NOT NULL AND c.longitude IS NOT NULL
		) nearby
		WHERE nearby.distance_km <= ?
		ORDER BY nearby.distance_km ASC`

	var camps []NearbyCamp
	result := d.db.WithContext(ctx).Raw(query, lat, lng, lat, radiusKm).Scan(&camps)
	if result.Error != nil {
		return nil, result.Error
	}

	return camps, nil
}

// Statistics aggregates registration counts per status for one camp.
// TotalRegistrations excludes cancelled rows.
func (d *CampDAO) Statistics(ctx context.Context, campID uint) (CampStatistics, error) {
	const query = `
		SELECT
			COUNT(*) FILTER (WHERE status <> 'cancelled') AS total_registrations,
			COUNT(*) FILTER (WHERE status = 'registered') AS active_registrations,
			COUNT(*) FILTER (WHERE status = 'checked_in') AS checked_in,
			COUNT(*) FILTER (WHERE status = 'completed')  AS completed,
			COUNT(*) FILTER (WHERE status = 'cancelled')  AS cancelled
		FROM camp_registrations
		WHERE camp_id = ?`

	var stats CampStatistics
	result := d.db.WithContext(ctx).Raw(query, campID).Scan(&stats)
	if result.Error != nil {
		return CampStatistics{}, result.Error
	}

	return stats, nil
}
