package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/reddrop/reddrop-api/internal/domain"
	"github.com/reddrop/reddrop-api/internal/repository"
)

var (
	ErrCampNotFound              = repository.ErrCampNotFound
	ErrRegistrationNotFound      = repository.ErrRegistrationNotFound
	ErrNotCampOrganizer          = errors.New("caller is not the camp organizer")
	ErrNotRegistrationOwner      = errors.New("caller does not own this registration")
	ErrMissingDonorProfile       = errors.New("donor profile required")
	ErrAlreadyRegistered         = errors.New("already registered for this camp")
	ErrRegistrationClosed        = errors.New("camp is not accepting registration changes")
	ErrInvalidCampStatus         = errors.New("invalid camp status")
	ErrInvalidRegistrationStatus = errors.New("invalid registration status")
	ErrInvalidDateRange          = errors.New("end_date must not be before start_date")
)

type CampRepository interface {
	CreateCamp(ctx context.Context, camp domain.DonationCamp) (domain.DonationCamp, error)
	GetCampByID(ctx context.Context, id uint) (domain.DonationCamp, error)
	FindCampsByOrganizer(ctx context.Context, organizerID uint) ([]domain.DonationCamp, error)
	FindPublicCamps(ctx context.Context, filters domain.CampFilters) ([]domain.DonationCamp, error)
	SaveCamp(ctx context.Context, camp domain.DonationCamp) (domain.DonationCamp, error)
	UpdateCampStatus(ctx context.Context, id uint, status domain.CampStatus) error
	DeleteCamp(ctx context.Context, id uint) error
	FindNearbyCamps(ctx context.Context, lat, lng, radiusKm float64) ([]domain.NearbyCamp, error)
	GetCampStatistics(ctx context.Context, campID uint) (domain.CampStatistics, error)
	CreateRegistration(ctx context.Context, registration domain.CampRegistration) (domain.CampRegistration, error)
	GetRegistrationByID(ctx context.Context, id uint) (domain.CampRegistration, error)
	FindRegistration(ctx context.Context, campID, donorID uint) (domain.CampRegistration, error)
	SaveRegistration(ctx context.Context, registration domain.CampRegistration) (domain.CampRegistration, error)
	FindRegistrationsByCamp(ctx context.Context, campID uint) ([]domain.RegistrationWithDonor, error)
	FindRegistrationsByDonor(ctx context.Context, donorID uint) ([]domain.RegistrationWithCamp, error)
}

type DonorRepository interface {
	FindDonorProfileByUserID(ctx context.Context, userID uint) (domain.DonorProfile, error)
}

// CampService is the sole authorized path for camp and registration
// mutations. Organizer-scoped operations fetch the target first and compare
// its OrganizerID with the caller; the check and the mutation are separate
// round trips, which is accepted since ownership never changes after create.
type CampService struct {
	repo      CampRepository
	donorRepo DonorRepository
	now       func() time.Time
}

func NewCampService(repo CampRepository, donorRepo DonorRepository) *CampService {
	return &CampService{
		repo:      repo,
		donorRepo: donorRepo,
		now:       time.Now,
	}
}

func (s *CampService) CreateCamp(ctx context.Context, camp domain.DonationCamp, organizerID uint) (domain.DonationCamp, error) {
	camp.OrganizerID = organizerID
	camp.Status = domain.CampStatusUpcoming

	created, err := s.repo.CreateCamp(ctx, camp)
	if err != nil {
		return domain.DonationCamp{}, fmt.Errorf("s.repo.CreateCamp -> %w", err)
	}

	return created, nil
}

func (s *CampService) GetCamp(ctx context.Context, id uint) (domain.DonationCamp, error) {
	camp, err := s.repo.GetCampByID(ctx, id)
	if err != nil {
		return domain.DonationCamp{}, fmt.Errorf("s.repo.GetCampByID -> %w", err)
	}

	return camp, nil
}

func (s *CampService) ListUserCamps(ctx context.Context, organizerID uint) ([]domain.DonationCamp, error) {
	camps, err := s.repo.FindCampsByOrganizer(ctx, organizerID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindCampsByOrganizer -> %w", err)
	}

	return camps, nil
}

func (s *CampService) ListPublicCamps(ctx context.Context, filters domain.CampFilters) ([]domain.DonationCamp, error) {
	camps, err := s.repo.FindPublicCamps(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindPublicCamps -> %w", err)
	}

	return camps, nil
}

func (s *CampService) UpdateCamp(ctx context.Context, campID, callerID uint, update domain.CampUpdate) (domain.DonationCamp, error) {
	camp, err := s.ownedCamp(ctx, campID, callerID)
	if err != nil {
		return domain.DonationCamp{}, err
	}

	applyCampUpdate(&camp, update)

	// The request layer can only compare the dates it was sent; a partial
	// update must also hold against the stored counterpart.
	if camp.EndDate.Before(camp.StartDate) {
		return domain.DonationCamp{}, ErrInvalidDateRange
	}

	updated, err := s.repo.SaveCamp(ctx, camp)
	if err != nil {
		return domain.DonationCamp{}, fmt.Errorf("s.repo.SaveCamp -> %w", err)
	}

	return updated, nil
}

func (s *CampService) UpdateCampStatus(ctx context.Context, campID, callerID uint, status domain.CampStatus) error {
	if !status.IsValid() {
		return ErrInvalidCampStatus
	}

	if _, err := s.ownedCamp(ctx, campID, callerID); err != nil {
		return err
	}

	if err := s.repo.UpdateCampStatus(ctx, campID, status); err != nil {
		return fmt.Errorf("s.repo.UpdateCampStatus -> %w", err)
	}

	return nil
}

func (s *CampService) DeleteCamp(ctx context.Context, campID, callerID uint) error {
	if _, err := s.ownedCamp(ctx, campID, callerID); err != nil {
		return err
	}

	if err := s.repo.DeleteCamp(ctx, campID); err != nil {
		return fmt.Errorf("s.repo.DeleteCamp -> %w", err)
	}

	return nil
}

// RegisterForCamp registers the caller's donor profile for a camp. A prior
// cancelled registration is reset in place so the (camp, donor) pair never
// grows a second row; any other prior registration fails as a duplicate.
func (s *CampService) RegisterForCamp(ctx context.Context, campID, userID uint, notes string) (domain.CampRegistration, error) {
	donor, err := s.callerDonor(ctx, userID)
	if err != nil {
		return domain.CampRegistration{}, err
	}

	camp, err := s.repo.GetCampByID(ctx, campID)
	if err != nil {
		return domain.CampRegistration{}, fmt.Errorf("s.repo.GetCampByID -> %w", err)
	}

	// An active duplicate always reports as such, even when the camp's
	// window has since closed, so the duplicate check runs first.
	existing, err := s.repo.FindRegistration(ctx, campID, donor.ID)
	switch {
	case err == nil:
		if existing.Status != domain.RegistrationStatusCancelled {
			return domain.CampRegistration{}, ErrAlreadyRegistered
		}

		now := s.now()
		if !camp.AcceptsRegistrations(now) {
			return domain.CampRegistration{}, ErrRegistrationClosed
		}

		existing.Status = domain.RegistrationStatusRegistered
		existing.RegistrationDate = now
		existing.Notes = notes
		existing.CheckInTime = nil
		existing.CheckOutTime = nil

		reused, err := s.repo.SaveRegistration(ctx, existing)
		if err != nil {
			return domain.CampRegistration{}, fmt.Errorf("s.repo.SaveRegistration -> %w", err)
		}

		return reused, nil

	case errors.Is(err, ErrRegistrationNotFound):
		now := s.now()
		if !camp.AcceptsRegistrations(now) {
			return domain.CampRegistration{}, ErrRegistrationClosed
		}

		created, err := s.repo.CreateRegistration(ctx, domain.CampRegistration{
			CampID:           campID,
			DonorID:          donor.ID,
			RegistrationDate: now,
			Status:           domain.RegistrationStatusRegistered,
			Notes:            notes,
		})
		if err != nil {
			return domain.CampRegistration{}, fmt.Errorf("s.repo.CreateRegistration -> %w", err)
		}

		return created, nil

	default:
		return domain.CampRegistration{}, fmt.Errorf("s.repo.FindRegistration -> %w", err)
	}
}

func (s *CampService) CancelRegistration(ctx context.Context, registrationID, userID uint) (domain.CampRegistration, error) {
	donor, err := s.callerDonor(ctx, userID)
	if err != nil {
		return domain.CampRegistration{}, err
	}

	registration, err := s.repo.GetRegistrationByID(ctx, registrationID)
	if err != nil {
		return domain.CampRegistration{}, fmt.Errorf("s.repo.GetRegistrationByID -> %w", err)
	}

	if registration.DonorID != donor.ID {
		return domain.CampRegistration{}, ErrNotRegistrationOwner
	}

	camp, err := s.repo.GetCampByID(ctx, registration.CampID)
	if err != nil {
		return domain.CampRegistration{}, fmt.Errorf("s.repo.GetCampByID -> %w", err)
	}
	if !camp.AcceptsRegistrations(s.now()) {
		return domain.CampRegistration{}, ErrRegistrationClosed
	}

	registration.Status = domain.RegistrationStatusCancelled

	cancelled, err := s.repo.SaveRegistration(ctx, registration)
	if err != nil {
		return domain.CampRegistration{}, fmt.Errorf("s.repo.SaveRegistration -> %w", err)
	}

	return cancelled, nil
}

func (s *CampService) ListCampRegistrations(ctx context.Context, campID, callerID uint) ([]domain.RegistrationWithDonor, error) {
	if _, err := s.ownedCamp(ctx, campID, callerID); err != nil {
		return nil, err
	}

	registrations, err := s.repo.FindRegistrationsByCamp(ctx, campID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindRegistrationsByCamp -> %w", err)
	}

	return registrations, nil
}

func (s *CampService) ListUserRegistrations(ctx context.Context, userID uint) ([]domain.RegistrationWithCamp, error) {
	donor, err := s.callerDonor(ctx, userID)
	if err != nil {
		return nil, err
	}

	registrations, err := s.repo.FindRegistrationsByDonor(ctx, donor.ID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindRegistrationsByDonor -> %w", err)
	}

	return registrations, nil
}

// UpdateRegistrationStatus is organizer-only, resolved through the
// registration's camp. Transition order is not validated; check-in and
// check-out times are stamped when the corresponding status is reached.
func (s *CampService) UpdateRegistrationStatus(ctx context.Context, registrationID, callerID uint, status domain.RegistrationStatus) (domain.CampRegistration, error) {
	if !status.IsValid() {
		return domain.CampRegistration{}, ErrInvalidRegistrationStatus
	}

	registration, err := s.repo.GetRegistrationByID(ctx, registrationID)
	if err != nil {
		return domain.CampRegistration{}, fmt.Errorf("s.repo.GetRegistrationByID -> %w", err)
	}

	if _, err = s.ownedCamp(ctx, registration.CampID, callerID); err != nil {
		return domain.CampRegistration{}, err
	}

	registration.Status = status
	switch status {
	case domain.RegistrationStatusCheckedIn:
		now := s.now()
		registration.CheckInTime = &now
	case domain.RegistrationStatusCompleted:
		now := s.now()
		registration.CheckOutTime = &now
	}

	updated, err := s.repo.SaveRegistration(ctx, registration)
	if err != nil {
		return domain.CampRegistration{}, fmt.Errorf("s.repo.SaveRegistration -> %w", err)
	}

	return updated, nil
}

func (s *CampService) FindNearbyCamps(ctx context.Context, lat, lng, radiusKm float64) ([]domain.NearbyCamp, error) {
	camps, err := s.repo.FindNearbyCamps(ctx, lat, lng, radiusKm)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindNearbyCamps -> %w", err)
	}

	return camps, nil
}

func (s *CampService) GetCampStatistics(ctx context.Context, campID, callerID uint) (domain.CampStatistics, error) {
	camp, err := s.ownedCamp(ctx, campID, callerID)
	if err != nil {
		return domain.CampStatistics{}, err
	}

	stats, err := s.repo.GetCampStatistics(ctx, campID)
	if err != nil {
		return domain.CampStatistics{}, fmt.Errorf("s.repo.GetCampStatistics -> %w", err)
	}

	if camp.MaxCapacity != nil && *camp.MaxCapacity > 0 {
		stats.RegistrationRate = float64(stats.TotalRegistrations) / float64(*camp.MaxCapacity) * 100
	} else {
		stats.RegistrationRate = 0
	}

	return stats, nil
}

func (s *CampService) ownedCamp(ctx context.Context, campID, callerID uint) (domain.DonationCamp, error) {
	camp, err := s.repo.GetCampByID(ctx, campID)
	if err != nil {
		return domain.DonationCamp{}, fmt.Errorf("s.repo.GetCampByID -> %w", err)
	}

	if camp.OrganizerID != callerID {
		return domain.DonationCamp{}, ErrNotCampOrganizer
	}

	return camp, nil
}

func (s *CampService) callerDonor(ctx context.Context, userID uint) (domain.DonorProfile, error) {
	donor, err := s.donorRepo.FindDonorProfileByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrDonorProfileNotFound) {
			return domain.DonorProfile{}, ErrMissingDonorProfile
		}

		return domain.DonorProfile{}, fmt.Errorf("s.donorRepo.FindDonorProfileByUserID -> %w", err)
	}

	return donor, nil
}

func applyCampUpdate(camp *domain.DonationCamp, update domain.CampUpdate) {
	if update.Name != nil {
		camp.Name = *update.Name
	}
	if update.Description != nil {
		camp.Description = *update.Description
	}
	if update.StartDate != nil {
		camp.StartDate = *update.StartDate
	}
	if update.EndDate != nil {
		camp.EndDate = *update.EndDate
	}
	if update.Address != nil {
		camp.Address = *update.Address
	}
	if update.City != nil {
		camp.City = *update.City
	}
	if update.State != nil {
		camp.State = *update.State
	}
	if update.PostalCode != nil {
		camp.PostalCode = *update.PostalCode
	}
	if update.Latitude != nil {
		camp.Latitude = update.Latitude
	}
	if update.Longitude != nil {
		camp.Longitude = update.Longitude
	}
	if update.ContactPhone != nil {
		camp.ContactPhone = *update.ContactPhone
	}
	if update.ContactEmail != nil {
		camp.ContactEmail = *update.ContactEmail
	}
	if update.Website != nil {
		camp.Website = *update.Website
	}
	if update.MaxCapacity != nil {
		camp.MaxCapacity = update.MaxCapacity
	}
	if update.RegistrationRequired != nil {
		camp.RegistrationRequired = *update.RegistrationRequired
	}
}
