// Package campstate holds an in-memory view of camp data for one consumer,
// mirroring service results into local state. Each instance owns its state;
// nothing is shared across instances.
package campstate

import (
	"context"
	"sync"

	"github.com/reddrop/reddrop-api/internal/domain"
)

// CampService is the slice of the camp service the store drives. The
// concrete service is injected so tests can substitute a double.
type CampService interface {
	CreateCamp(ctx context.Context, camp domain.DonationCamp, organizerID uint) (domain.DonationCamp, error)
	GetCamp(ctx context.Context, id uint) (domain.DonationCamp, error)
	ListUserCamps(ctx context.Context, organizerID uint) ([]domain.DonationCamp, error)
	ListPublicCamps(ctx context.Context, filters domain.CampFilters) ([]domain.DonationCamp, error)
	UpdateCamp(ctx context.Context, campID, callerID uint, update domain.CampUpdate) (domain.DonationCamp, error)
	UpdateCampStatus(ctx context.Context, campID, callerID uint, status domain.CampStatus) error
	DeleteCamp(ctx context.Context, campID, callerID uint) error
	RegisterForCamp(ctx context.Context, campID, userID uint, notes string) (domain.CampRegistration, error)
	CancelRegistration(ctx context.Context, registrationID, userID uint) (domain.CampRegistration, error)
	ListCampRegistrations(ctx context.Context, campID, callerID uint) ([]domain.RegistrationWithDonor, error)
	ListUserRegistrations(ctx context.Context, userID uint) ([]domain.RegistrationWithCamp, error)
	GetCampStatistics(ctx context.Context, campID, callerID uint) (domain.CampStatistics, error)
}

// Store mirrors camp service results for a single user. Every operation sets
// the loading flag, clears the previous error, calls the service, and on
// success reconciles the result into local state: created camps are
// prepended, updated entities replaced by id, deleted ones filtered out.
// On failure the error is stored, prior state is left untouched, and a
// neutral zero value is returned. No retries, no optimistic updates.
type Store struct {
	svc    CampService
	userID uint

	mu                sync.Mutex
	camps             []domain.DonationCamp
	userCamps         []domain.DonationCamp
	currentCamp       *domain.DonationCamp
	registrations     []domain.RegistrationWithDonor
	userRegistrations []domain.RegistrationWithCamp
	statistics        *domain.CampStatistics
	loading           bool
	err               error
}

func NewStore(svc CampService, userID uint) *Store {
	return &Store{
		svc:    svc,
		userID: userID,
	}
}

func (s *Store) LoadPublicCamps(ctx context.Context, filters domain.CampFilters) []domain.DonationCamp {
	s.begin()

	camps, err := s.svc.ListPublicCamps(ctx, filters)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = err
		return nil
	}

	s.camps = camps
	return camps
}

func (s *Store) LoadUserCamps(ctx context.Context) []domain.DonationCamp {
	s.begin()

	camps, err := s.svc.ListUserCamps(ctx, s.userID)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = err
		return nil
	}

	s.userCamps = camps
	return camps
}

func (s *Store) LoadCamp(ctx context.Context, campID uint) *domain.DonationCamp {
	s.begin()

	camp, err := s.svc.GetCamp(ctx, campID)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = err
		return nil
	}

	s.currentCamp = &camp
	return &camp
}

func (s *Store) CreateCamp(ctx context.Context, camp domain.DonationCamp) *domain.DonationCamp {
	s.begin()

	created, err := s.svc.CreateCamp(ctx, camp, s.userID)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = err
		return nil
	}

	s.userCamps = append([]domain.DonationCamp{created}, s.userCamps...)
	return &created
}

func (s *Store) UpdateCamp(ctx context.Context, campID uint, update domain.CampUpdate) *domain.DonationCamp {
	s.begin()

	updated, err := s.svc.UpdateCamp(ctx, campID, s.userID, update)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = err
		return nil
	}

	s.replaceCamp(updated)
	return &updated
}

func (s *Store) UpdateCampStatus(ctx context.Context, campID uint, status domain.CampStatus) bool {
	s.begin()

	err := s.svc.UpdateCampStatus(ctx, campID, s.userID, status)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = err
		return false
	}

	for i := range s.userCamps {
		if s.userCamps[i].ID == campID {
			s.userCamps[i].Status = status
		}
	}
	for i := range s.camps {
		if s.camps[i].ID == campID {
			s.camps[i].Status = status
		}
	}
	if s.currentCamp != nil && s.currentCamp.ID == campID {
		s.currentCamp.Status = status
	}
	return true
}

func (s *Store) DeleteCamp(ctx context.Context, campID uint) bool {
	s.begin()

	err := s.svc.DeleteCamp(ctx, campID, s.userID)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = err
		return false
	}

	s.userCamps = dropCamp(s.userCamps, campID)
	s.camps = dropCamp(s.camps, campID)
	if s.currentCamp != nil && s.currentCamp.ID == campID {
		s.currentCamp = nil
	}
	return true
}

func (s *Store) RegisterForCamp(ctx context.Context, campID uint, notes string) *domain.CampRegistration {
	s.begin()

	registration, err := s.svc.RegisterForCamp(ctx, campID, s.userID, notes)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = err
		return nil
	}

	// The camp summary is only available when the registered camp is the one
	// currently loaded; a later LoadUserRegistrations refreshes the rest.
	if s.currentCamp != nil && s.currentCamp.ID == campID {
		s.userRegistrations = append([]domain.RegistrationWithCamp{{
			CampRegistration: registration,
			CampName:         s.currentCamp.Name,
			CampCity:         s.currentCamp.City,
			CampStartDate:    s.currentCamp.StartDate,
			CampEndDate:      s.currentCamp.EndDate,
			CampStatus:       s.currentCamp.Status,
		}}, s.userRegistrations...)
	}
	return &registration
}

func (s *Store) CancelRegistration(ctx context.Context, registrationID uint) *domain.CampRegistration {
	s.begin()

	cancelled, err := s.svc.CancelRegistration(ctx, registrationID, s.userID)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = err
		return nil
	}

	for i := range s.userRegistrations {
		if s.userRegistrations[i].ID == registrationID {
			s.userRegistrations[i].CampRegistration = cancelled
		}
	}
	return &cancelled
}

func (s *Store) LoadCampRegistrations(ctx context.Context, campID uint) []domain.RegistrationWithDonor {
	s.begin()

	registrations, err := s.svc.ListCampRegistrations(ctx, campID, s.userID)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = err
		return nil
	}

	s.registrations = registrations
	return registrations
}

func (s *Store) LoadUserRegistrations(ctx context.Context) []domain.RegistrationWithCamp {
	s.begin()

	registrations, err := s.svc.ListUserRegistrations(ctx, s.userID)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = err
		return nil
	}

	s.userRegistrations = registrations
	return registrations
}

func (s *Store) LoadStatistics(ctx context.Context, campID uint) *domain.CampStatistics {
	s.begin()

	stats, err := s.svc.GetCampStatistics(ctx, campID, s.userID)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = err
		return nil
	}

	s.statistics = &stats
	return &stats
}

func (s *Store) Camps() []domain.DonationCamp {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.camps
}

func (s *Store) UserCamps() []domain.DonationCamp {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userCamps
}

func (s *Store) CurrentCamp() *domain.DonationCamp {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentCamp
}

func (s *Store) Registrations() []domain.RegistrationWithDonor {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registrations
}

func (s *Store) UserRegistrations() []domain.RegistrationWithCamp {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userRegistrations
}

func (s *Store) Statistics() *domain.CampStatistics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statistics
}

func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *Store) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *Store) begin() {
	s.mu.Lock()
	s.loading = true
	s.err = nil
	s.mu.Unlock()
}

func (s *Store) replaceCamp(camp domain.DonationCamp) {
	for i := range s.userCamps {
		if s.userCamps[i].ID == camp.ID {
			s.userCamps[i] = camp
		}
	}
	for i := range s.camps {
		if s.camps[i].ID == camp.ID {
			s.camps[i] = camp
		}
	}
	if s.currentCamp != nil && s.currentCamp.ID == camp.ID {
		s.currentCamp = &camp
	}
}

// dropCamp allocates rather than filtering in place; slices previously
// handed out by the accessors must not see their elements shift.
func dropCamp(camps []domain.DonationCamp, campID uint) []domain.DonationCamp {
	kept := make([]domain.DonationCamp, 0, len(camps))
	for _, c := range camps {
		if c.ID != campID {
			kept = append(kept, c)
		}
	}
	return kept
}
