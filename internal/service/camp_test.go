package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reddrop/reddrop-api/internal/domain"
	"github.com/reddrop/reddrop-api/internal/repository"
)

type fakeCampRepository struct {
	camps         map[uint]domain.DonationCamp
	registrations map[uint]domain.CampRegistration
	nextCampID    uint
	nextRegID     uint
	statistics    domain.CampStatistics
}

func newFakeCampRepository() *fakeCampRepository {
	return &fakeCampRepository{
		camps:         make(map[uint]domain.DonationCamp),
		registrations: make(map[uint]domain.CampRegistration),
		nextCampID:    1,
		nextRegID:     1,
	}
}

func (f *fakeCampRepository) CreateCamp(_ context.Context, camp domain.DonationCamp) (domain.DonationCamp, error) {
	camp.ID = f.nextCampID
	f.nextCampID++
	f.camps[camp.ID] = camp

	return camp, nil
}

func (f *fakeCampRepository) GetCampByID(_ context.Context, id uint) (domain.DonationCamp, error) {
	camp, ok := f.camps[id]
	if !ok {
		return domain.DonationCamp{}, repository.ErrCampNotFound
	}

	return camp, nil
}

func (f *fakeCampRepository) FindCampsByOrganizer(_ context.Context, organizerID uint) ([]domain.DonationCamp, error) {
	var camps []domain.DonationCamp
	for _, camp := range f.camps {
		if camp.OrganizerID == organizerID {
			camps = append(camps, camp)
		}
	}

	return camps, nil
}

func (f *fakeCampRepository) FindPublicCamps(_ context.Context, _ domain.CampFilters) ([]domain.DonationCamp, error) {
	var camps []domain.DonationCamp
	for _, camp := range f.camps {
		camps = append(camps, camp)
	}

	return camps, nil
}

func (f *fakeCampRepository) SaveCamp(_ context.Context, camp domain.DonationCamp) (domain.DonationCamp, error) {
	if _, ok := f.camps[camp.ID]; !ok {
		return domain.DonationCamp{}, repository.ErrCampNotFound
	}
	f.camps[camp.ID] = camp

	return camp, nil
}

func (f *fakeCampRepository) UpdateCampStatus(_ context.Context, id uint, status domain.CampStatus) error {
	camp, ok := f.camps[id]
	if !ok {
		return repository.ErrCampNotFound
	}
	camp.Status = status
	f.camps[id] = camp

	return nil
}

func (f *fakeCampRepository) DeleteCamp(_ context.Context, id uint) error {
	if _, ok := f.camps[id]; !ok {
		return repository.ErrCampNotFound
	}
	delete(f.camps, id)

	return nil
}

func (f *fakeCampRepository) FindNearbyCamps(_ context.Context, _, _, _ float64) ([]domain.NearbyCamp, error) {
	return nil, nil
}

func (f *fakeCampRepository) GetCampStatistics(_ context.Context, campID uint) (domain.CampStatistics, error) {
	stats := f.statistics
	stats.CampID = campID

	return stats, nil
}

func (f *fakeCampRepository) CreateRegistration(_ context.Context, registration domain.CampRegistration) (domain.CampRegistration, error) {
	registration.ID = f.nextRegID
	f.nextRegID++
	f.registrations[registration.ID] = registration

	return registration, nil
}

func (f *fakeCampRepository) GetRegistrationByID(_ context.Context, id uint) (domain.CampRegistration, error) {
	registration, ok := f.registrations[id]
	if !ok {
		return domain.CampRegistration{}, repository.ErrRegistrationNotFound
	}

	return registration, nil
}

func (f *fakeCampRepository) FindRegistration(_ context.Context, campID, donorID uint) (domain.CampRegistration, error) {
	for _, registration := range f.registrations {
		if registration.CampID == campID && registration.DonorID == donorID {
			return registration, nil
		}
	}

	return domain.CampRegistration{}, repository.ErrRegistrationNotFound
}

func (f *fakeCampRepository) SaveRegistration(_ context.Context, registration domain.CampRegistration) (domain.CampRegistration, error) {
	if _, ok := f.registrations[registration.ID]; !ok {
		return domain.CampRegistration{}, repository.ErrRegistrationNotFound
	}
	f.registrations[registration.ID] = registration

	return registration, nil
}

func (f *fakeCampRepository) FindRegistrationsByCamp(_ context.Context, campID uint) ([]domain.RegistrationWithDonor, error) {
	var rows []domain.RegistrationWithDonor
	for _, registration := range f.registrations {
		if registration.CampID == campID {
			rows = append(rows, domain.RegistrationWithDonor{CampRegistration: registration})
		}
	}

	return rows, nil
}

func (f *fakeCampRepository) FindRegistrationsByDonor(_ context.Context, donorID uint) ([]domain.RegistrationWithCamp, error) {
	var rows []domain.RegistrationWithCamp
	for _, registration := range f.registrations {
		if registration.DonorID == donorID {
			rows = append(rows, domain.RegistrationWithCamp{CampRegistration: registration})
		}
	}

	return rows, nil
}

type fakeDonorRepository struct {
	profiles map[uint]domain.DonorProfile // keyed by user ID
}

func (f *fakeDonorRepository) FindDonorProfileByUserID(_ context.Context, userID uint) (domain.DonorProfile, error) {
	profile, ok := f.profiles[userID]
	if !ok {
		return domain.DonorProfile{}, repository.ErrDonorProfileNotFound
	}

	return profile, nil
}

const (
	organizerID = uint(10)
	donorUserID = uint(20)
)

func newTestService(t *testing.T, now time.Time) (*CampService, *fakeCampRepository) {
	t.Helper()

	repo := newFakeCampRepository()
	donors := &fakeDonorRepository{
		profiles: map[uint]domain.DonorProfile{
			donorUserID: {ID: 7, UserID: donorUserID, BloodType: "O+"},
		},
	}

	svc := NewCampService(repo, donors)
	svc.now = func() time.Time { return now }

	return svc, repo
}

func seedCamp(t *testing.T, svc *CampService, start, end time.Time) domain.DonationCamp {
	t.Helper()

	camp, err := svc.CreateCamp(context.Background(), domain.DonationCamp{
		Name:      "Community Blood Drive",
		StartDate: start,
		EndDate:   end,
		City:      "Springfield",
	}, organizerID)
	require.NoError(t, err)

	return camp
}

func TestCampService_CreateCamp(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	svc, _ := newTestService(t, now)

	camp, err := svc.CreateCamp(context.Background(), domain.DonationCamp{
		Name:        "Drive",
		OrganizerID: 999,
		Status:      domain.CampStatusActive,
		StartDate:   now.AddDate(0, 0, 7),
		EndDate:     now.AddDate(0, 0, 8),
	}, organizerID)

	require.NoError(t, err)
	assert.Equal(t, organizerID, camp.OrganizerID, "organizer comes from the session, not the payload")
	assert.Equal(t, domain.CampStatusUpcoming, camp.Status, "new camps always start upcoming")
}

func TestCampService_UpdateCamp(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	svc, _ := newTestService(t, now)
	camp := seedCamp(t, svc, now.AddDate(0, 0, 7), now.AddDate(0, 0, 8))

	t.Run("organizer can update, nil fields unchanged", func(t *testing.T) {
		name := "Renamed Drive"
		updated, err := svc.UpdateCamp(context.Background(), camp.ID, organizerID, domain.CampUpdate{Name: &name})

		require.NoError(t, err)
		assert.Equal(t, "Renamed Drive", updated.Name)
		assert.Equal(t, "Springfield", updated.City)
	})

	t.Run("non-organizer is rejected", func(t *testing.T) {
		name := "Hijacked"
		_, err := svc.UpdateCamp(context.Background(), camp.ID, donorUserID, domain.CampUpdate{Name: &name})

		assert.ErrorIs(t, err, ErrNotCampOrganizer)
	})

	t.Run("unknown camp", func(t *testing.T) {
		_, err := svc.UpdateCamp(context.Background(), 12345, organizerID, domain.CampUpdate{})

		assert.ErrorIs(t, err, ErrCampNotFound)
	})
}

func TestCampService_UpdateCamp_DateOrder(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	svc, repo := newTestService(t, now)
	camp := seedCamp(t, svc, now.AddDate(0, 0, 7), now.AddDate(0, 0, 8))

	t.Run("start moved past stored end", func(t *testing.T) {
		start := camp.EndDate.AddDate(0, 1, 0)
		_, err := svc.UpdateCamp(context.Background(), camp.ID, organizerID, domain.CampUpdate{StartDate: &start})

		assert.ErrorIs(t, err, ErrInvalidDateRange)
		assert.Equal(t, camp.StartDate, repo.camps[camp.ID].StartDate, "rejected update leaves the camp untouched")
	})

	t.Run("end moved before stored start", func(t *testing.T) {
		end := camp.StartDate.AddDate(0, 0, -1)
		_, err := svc.UpdateCamp(context.Background(), camp.ID, organizerID, domain.CampUpdate{EndDate: &end})

		assert.ErrorIs(t, err, ErrInvalidDateRange)
	})

	t.Run("both dates moved consistently", func(t *testing.T) {
		start := camp.StartDate.AddDate(0, 2, 0)
		end := camp.EndDate.AddDate(0, 2, 0)
		updated, err := svc.UpdateCamp(context.Background(), camp.ID, organizerID, domain.CampUpdate{StartDate: &start, EndDate: &end})

		require.NoError(t, err)
		assert.Equal(t, start, updated.StartDate)
		assert.Equal(t, end, updated.EndDate)
	})
}

func TestCampService_UpdateCampStatus(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	svc, repo := newTestService(t, now)
	camp := seedCamp(t, svc, now.AddDate(0, 0, 7), now.AddDate(0, 0, 8))

	err := svc.UpdateCampStatus(context.Background(), camp.ID, organizerID, domain.CampStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, domain.CampStatusCancelled, repo.camps[camp.ID].Status)

	err = svc.UpdateCampStatus(context.Background(), camp.ID, organizerID, domain.CampStatus("archived"))
	assert.ErrorIs(t, err, ErrInvalidCampStatus)

	err = svc.UpdateCampStatus(context.Background(), camp.ID, donorUserID, domain.CampStatusActive)
	assert.ErrorIs(t, err, ErrNotCampOrganizer)
}

func TestCampService_RegisterForCamp(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("happy path", func(t *testing.T) {
		svc, _ := newTestService(t, now)
		camp := seedCamp(t, svc, now.AddDate(0, 0, 7), now.AddDate(0, 0, 8))

		registration, err := svc.RegisterForCamp(context.Background(), camp.ID, donorUserID, "first time donor")

		require.NoError(t, err)
		assert.Equal(t, domain.RegistrationStatusRegistered, registration.Status)
		assert.Equal(t, camp.ID, registration.CampID)
		assert.Equal(t, uint(7), registration.DonorID)
		assert.Equal(t, now, registration.RegistrationDate)
	})

	t.Run("duplicate registration", func(t *testing.T) {
		svc, _ := newTestService(t, now)
		camp := seedCamp(t, svc, now.AddDate(0, 0, 7), now.AddDate(0, 0, 8))

		_, err := svc.RegisterForCamp(context.Background(), camp.ID, donorUserID, "")
		require.NoError(t, err)

		_, err = svc.RegisterForCamp(context.Background(), camp.ID, donorUserID, "")
		assert.ErrorIs(t, err, ErrAlreadyRegistered)
	})

	t.Run("no donor profile", func(t *testing.T) {
		svc, _ := newTestService(t, now)
		camp := seedCamp(t, svc, now.AddDate(0, 0, 7), now.AddDate(0, 0, 8))

		_, err := svc.RegisterForCamp(context.Background(), camp.ID, 999, "")
		assert.ErrorIs(t, err, ErrMissingDonorProfile)
	})

	t.Run("window has passed", func(t *testing.T) {
		svc, _ := newTestService(t, now)
		camp := seedCamp(t, svc, now.AddDate(0, 0, -8), now.AddDate(0, 0, -7))

		_, err := svc.RegisterForCamp(context.Background(), camp.ID, donorUserID, "")
		assert.ErrorIs(t, err, ErrRegistrationClosed)
	})

	t.Run("active duplicate wins over a closed window", func(t *testing.T) {
		svc, repo := newTestService(t, now)
		camp := seedCamp(t, svc, now.AddDate(0, 0, -8), now.AddDate(0, 0, -7))

		repo.registrations[1] = domain.CampRegistration{
			ID:      1,
			CampID:  camp.ID,
			DonorID: 7,
			Status:  domain.RegistrationStatusRegistered,
		}
		repo.nextRegID = 2

		_, err := svc.RegisterForCamp(context.Background(), camp.ID, donorUserID, "")
		assert.ErrorIs(t, err, ErrAlreadyRegistered)
	})

	t.Run("cancelled registration cannot be revived after the window", func(t *testing.T) {
		svc, repo := newTestService(t, now)
		camp := seedCamp(t, svc, now.AddDate(0, 0, -8), now.AddDate(0, 0, -7))

		repo.registrations[1] = domain.CampRegistration{
			ID:      1,
			CampID:  camp.ID,
			DonorID: 7,
			Status:  domain.RegistrationStatusCancelled,
		}
		repo.nextRegID = 2

		_, err := svc.RegisterForCamp(context.Background(), camp.ID, donorUserID, "")
		assert.ErrorIs(t, err, ErrRegistrationClosed)
	})

	t.Run("cancelled camp", func(t *testing.T) {
		svc, _ := newTestService(t, now)
		camp := seedCamp(t, svc, now.AddDate(0, 0, 7), now.AddDate(0, 0, 8))
		require.NoError(t, svc.UpdateCampStatus(context.Background(), camp.ID, organizerID, domain.CampStatusCancelled))

		_, err := svc.RegisterForCamp(context.Background(), camp.ID, donorUserID, "")
		assert.ErrorIs(t, err, ErrRegistrationClosed)
	})
}

func TestCampService_RegisterCancelReregister(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	svc, _ := newTestService(t, now)
	camp := seedCamp(t, svc, now.AddDate(0, 0, 7), now.AddDate(0, 0, 8))

	first, err := svc.RegisterForCamp(context.Background(), camp.ID, donorUserID, "morning slot")
	require.NoError(t, err)

	cancelled, err := svc.CancelRegistration(context.Background(), first.ID, donorUserID)
	require.NoError(t, err)
	assert.Equal(t, domain.RegistrationStatusCancelled, cancelled.Status)

	again, err := svc.RegisterForCamp(context.Background(), camp.ID, donorUserID, "afternoon slot")
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID, "re-registering reuses the cancelled row")
	assert.Equal(t, domain.RegistrationStatusRegistered, again.Status)
	assert.Equal(t, "afternoon slot", again.Notes)
	assert.Nil(t, again.CheckInTime)
	assert.Nil(t, again.CheckOutTime)
}

func TestCampService_CancelRegistration(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	svc, repo := newTestService(t, now)
	camp := seedCamp(t, svc, now.AddDate(0, 0, 7), now.AddDate(0, 0, 8))

	registration, err := svc.RegisterForCamp(context.Background(), camp.ID, donorUserID, "")
	require.NoError(t, err)

	t.Run("only the owner can cancel", func(t *testing.T) {
		otherDonors := &fakeDonorRepository{
			profiles: map[uint]domain.DonorProfile{
				donorUserID: {ID: 99, UserID: donorUserID},
			},
		}
		otherSvc := NewCampService(repo, otherDonors)
		otherSvc.now = func() time.Time { return now }

		_, err := otherSvc.CancelRegistration(context.Background(), registration.ID, donorUserID)
		assert.ErrorIs(t, err, ErrNotRegistrationOwner)
	})

	t.Run("unknown registration", func(t *testing.T) {
		_, err := svc.CancelRegistration(context.Background(), 4242, donorUserID)
		assert.ErrorIs(t, err, ErrRegistrationNotFound)
	})

	t.Run("owner cancels", func(t *testing.T) {
		cancelled, err := svc.CancelRegistration(context.Background(), registration.ID, donorUserID)

		require.NoError(t, err)
		assert.Equal(t, domain.RegistrationStatusCancelled, cancelled.Status)
	})
}

func TestCampService_UpdateRegistrationStatus(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)
	svc, _ := newTestService(t, now)
	camp := seedCamp(t, svc, now.AddDate(0, 0, 1), now.AddDate(0, 0, 2))

	registration, err := svc.RegisterForCamp(context.Background(), camp.ID, donorUserID, "")
	require.NoError(t, err)

	t.Run("check-in stamps the time", func(t *testing.T) {
		updated, err := svc.UpdateRegistrationStatus(context.Background(), registration.ID, organizerID, domain.RegistrationStatusCheckedIn)

		require.NoError(t, err)
		assert.Equal(t, domain.RegistrationStatusCheckedIn, updated.Status)
		require.NotNil(t, updated.CheckInTime)
		assert.Equal(t, now, *updated.CheckInTime)
		assert.Nil(t, updated.CheckOutTime)
	})

	t.Run("completion stamps check-out", func(t *testing.T) {
		updated, err := svc.UpdateRegistrationStatus(context.Background(), registration.ID, organizerID, domain.RegistrationStatusCompleted)

		require.NoError(t, err)
		require.NotNil(t, updated.CheckOutTime)
		assert.Equal(t, now, *updated.CheckOutTime)
	})

	t.Run("only the camp organizer", func(t *testing.T) {
		_, err := svc.UpdateRegistrationStatus(context.Background(), registration.ID, donorUserID, domain.RegistrationStatusCheckedIn)
		assert.ErrorIs(t, err, ErrNotCampOrganizer)
	})

	t.Run("invalid status", func(t *testing.T) {
		_, err := svc.UpdateRegistrationStatus(context.Background(), registration.ID, organizerID, domain.RegistrationStatus("no_show"))
		assert.ErrorIs(t, err, ErrInvalidRegistrationStatus)
	})
}

func TestCampService_GetCampStatistics(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("rate from capacity", func(t *testing.T) {
		svc, repo := newTestService(t, now)
		camp := seedCamp(t, svc, now.AddDate(0, 0, 7), now.AddDate(0, 0, 8))

		capacity := 50
		camp.MaxCapacity = &capacity
		repo.camps[camp.ID] = camp
		repo.statistics = domain.CampStatistics{TotalRegistrations: 25, ActiveRegistrations: 20, CheckedIn: 3, Completed: 2}

		stats, err := svc.GetCampStatistics(context.Background(), camp.ID, organizerID)

		require.NoError(t, err)
		assert.Equal(t, camp.ID, stats.CampID)
		assert.InDelta(t, 50.0, stats.RegistrationRate, 0.001)
	})

	t.Run("no capacity means zero rate", func(t *testing.T) {
		svc, repo := newTestService(t, now)
		camp := seedCamp(t, svc, now.AddDate(0, 0, 7), now.AddDate(0, 0, 8))
		repo.statistics = domain.CampStatistics{TotalRegistrations: 25}

		stats, err := svc.GetCampStatistics(context.Background(), camp.ID, organizerID)

		require.NoError(t, err)
		assert.Zero(t, stats.RegistrationRate)
	})

	t.Run("organizer only", func(t *testing.T) {
		svc, _ := newTestService(t, now)
		camp := seedCamp(t, svc, now.AddDate(0, 0, 7), now.AddDate(0, 0, 8))

		_, err := svc.GetCampStatistics(context.Background(), camp.ID, donorUserID)
		assert.ErrorIs(t, err, ErrNotCampOrganizer)
	})
}

func TestCampService_ListCampRegistrations(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	svc, _ := newTestService(t, now)
	camp := seedCamp(t, svc, now.AddDate(0, 0, 7), now.AddDate(0, 0, 8))

	_, err := svc.RegisterForCamp(context.Background(), camp.ID, donorUserID, "")
	require.NoError(t, err)

	rows, err := svc.ListCampRegistrations(context.Background(), camp.ID, organizerID)
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	_, err = svc.ListCampRegistrations(context.Background(), camp.ID, donorUserID)
	assert.ErrorIs(t, err, ErrNotCampOrganizer)
}

func TestCampService_DeleteCamp(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	svc, repo := newTestService(t, now)
	camp := seedCamp(t, svc, now.AddDate(0, 0, 7), now.AddDate(0, 0, 8))

	err := svc.DeleteCamp(context.Background(), camp.ID, donorUserID)
	assert.ErrorIs(t, err, ErrNotCampOrganizer)

	err = svc.DeleteCamp(context.Background(), camp.ID, organizerID)
	require.NoError(t, err)
	assert.Empty(t, repo.camps)
}
