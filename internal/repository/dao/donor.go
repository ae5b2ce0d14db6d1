package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrDonorProfileExists   = errors.New("donor profile already exists")
	ErrDonorProfileNotFound = errors.New("donor profile not found")
)

type DonorProfile struct {
	ID uint `gorm:"primaryKey"`

	UserID      uint      `gorm:"uniqueIndex;not null"`
	User        User      `gorm:"foreignKey:UserID"`
	BloodType   string    `gorm:"not null"`
	Phone       string    `gorm:"not null"`
	DateOfBirth time.Time `gorm:"not null"`
	City        string
	State       string

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type DonorDAO struct {
	db *gorm.DB
}

func NewDonorDAO(db *gorm.DB) *DonorDAO {
	return &DonorDAO{
		db: db,
	}
}

func (d *DonorDAO) Insert(ctx context.Context, profile DonorProfile) (DonorProfile, error) {
	result := d.db.WithContext(ctx).Create(&profile)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) && err.Code == pgerrcode.UniqueViolation {
			return DonorProfile{}, ErrDonorProfileExists
		}

		return DonorProfile{}, result.Error
	}

	return profile, nil
}

func (d *DonorDAO) FindByUserID(ctx context.Context, userID uint) (DonorProfile, error) {
	var profile DonorProfile

	result := d.db.WithContext(ctx).First(&profile, "user_id = ?", userID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return DonorProfile{}, ErrDonorProfileNotFound
		}

		return DonorProfile{}, result.Error
	}

	return profile, nil
}

func (d *DonorDAO) Update(ctx context.Context, profile DonorProfile) (DonorProfile, error) {
	result := d.db.WithContext(ctx).Save(&profile)
	if result.Error != nil {
		return DonorProfile{}, result.Error
	}

	return profile, nil
}
