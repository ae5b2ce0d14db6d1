package repository

import (
	"context"
	"fmt"

	"github.com/reddrop/reddrop-api/internal/domain"
	"github.com/reddrop/reddrop-api/internal/repository/dao"
)

var (
	ErrCampNotFound         = dao.ErrCampNotFound
	ErrRegistrationNotFound = dao.ErrRegistrationNotFound
)

type CampDAO interface {
	Insert(ctx context.Context, camp dao.DonationCamp) (dao.DonationCamp, error)
	FindByID(ctx context.Context, id uint) (dao.DonationCamp, error)
	FindByOrganizerID(ctx context.Context, organizerID uint) ([]dao.DonationCamp, error)
	FindPublic(ctx context.Context, filters dao.CampFilters) ([]dao.DonationCamp, error)
	Update(ctx context.Context, camp dao.DonationCamp) (dao.DonationCamp, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
	Delete(ctx context.Context, id uint) error
	FindNearby(ctx context.Context, lat, lng, radiusKm float64) ([]dao.NearbyCamp, error)
	Statistics(ctx context.Context, campID uint) (dao.CampStatistics, error)
}

type RegistrationDAO interface {
	Insert(ctx context.Context, registration dao.CampRegistration) (dao.CampRegistration, error)
	FindByID(ctx context.Context, id uint) (dao.CampRegistration, error)
	FindByCampAndDonor(ctx context.Context, campID, donorID uint) (dao.CampRegistration, error)
	Update(ctx context.Context, registration dao.CampRegistration) (dao.CampRegistration, error)
	FindByCampWithDonor(ctx context.Context, campID uint) ([]dao.RegistrationWithDonor, error)
	FindByDonorWithCamp(ctx context.Context, donorID uint) ([]dao.RegistrationWithCamp, error)
}

type CampRepository struct {
	dao             CampDAO
	registrationDAO RegistrationDAO
}

func NewCampRepository(campDAO CampDAO, registrationDAO RegistrationDAO) *CampRepository {
	return &CampRepository{
		dao:             campDAO,
		registrationDAO: registrationDAO,
	}
}

func (r *CampRepository) CreateCamp(ctx context.Context, camp domain.DonationCamp) (domain.DonationCamp, error) {
	created, err := r.dao.Insert(ctx, r.campDomainToDao(camp))
	if err != nil {
		return domain.DonationCamp{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.campDaoToDomain(created), nil
}

func (r *CampRepository) GetCampByID(ctx context.Context, id uint) (domain.DonationCamp, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.DonationCamp{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.campDaoToDomain(found), nil
}

func (r *CampRepository) FindCampsByOrganizer(ctx context.Context, organizerID uint) ([]domain.DonationCamp, error) {
	camps, err := r.dao.FindByOrganizerID(ctx, organizerID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByOrganizerID -> %w", err)
	}

	return r.campsDaoToDomain(camps), nil
}

func (r *CampRepository) FindPublicCamps(ctx context.Context, filters domain.CampFilters) ([]domain.DonationCamp, error) {
	camps, err := r.dao.FindPublic(ctx, dao.CampFilters{
		Status:     string(filters.Status),
		City:       filters.City,
		State:      filters.State,
		StartDate:  filters.StartDate,
		EndDate:    filters.EndDate,
		SearchTerm: filters.SearchTerm,
	})
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindPublic -> %w", err)
	}

	return r.campsDaoToDomain(camps), nil
}

func (r *CampRepository) SaveCamp(ctx context.Context, camp domain.DonationCamp) (domain.DonationCamp, error) {
	updated, err := r.dao.Update(ctx, r.campDomainToDao(camp))
	if err != nil {
		return domain.DonationCamp{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.campDaoToDomain(updated), nil
}

func (r *CampRepository) UpdateCampStatus(ctx context.Context, id uint, status domain.CampStatus) error {
	if err := r.dao.UpdateStatus(ctx, id, string(status)); err != nil {
		return fmt.Errorf("r.dao.UpdateStatus -> %w", err)
	}

	return nil
}

func (r *CampRepository) DeleteCamp(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *CampRepository) FindNearbyCamps(ctx context.Context, lat, lng, radiusKm float64) ([]domain.NearbyCamp, error) {
	camps, err := r.dao.FindNearby(ctx, lat, lng, radiusKm)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindNearby -> %w", err)
	}

	nearby := make([]domain.NearbyCamp, len(camps))
	for i, c := range camps {
		nearby[i] = domain.NearbyCamp{
			DonationCamp: r.campDaoToDomain(c.DonationCamp),
			DistanceKm:   c.DistanceKm,
		}
	}

	return nearby, nil
}

func (r *CampRepository) GetCampStatistics(ctx context.Context, campID uint) (domain.CampStatistics, error) {
	stats, err := r.dao.Statistics(ctx, campID)
	if err != nil {
		return domain.CampStatistics{}, fmt.Errorf("r.dao.Statistics -> %w", err)
	}

	return domain.CampStatistics{
		CampID:              campID,
		TotalRegistrations:  stats.TotalRegistrations,
		ActiveRegistrations: stats.ActiveRegistrations,
		CheckedIn:           stats.CheckedIn,
		Completed:           stats.Completed,
		Cancelled:           stats.Cancelled,
	}, nil
}

func (r *CampRepository) CreateRegistration(ctx context.Context, registration domain.CampRegistration) (domain.CampRegistration, error) {
	created, err := r.registrationDAO.Insert(ctx, r.registrationDomainToDao(registration))
	if err != nil {
		return domain.CampRegistration{}, fmt.Errorf("r.registrationDAO.Insert -> %w", err)
	}

	return r.registrationDaoToDomain(created), nil
}

func (r *CampRepository) GetRegistrationByID(ctx context.Context, id uint) (domain.CampRegistration, error) {
	found, err := r.registrationDAO.FindByID(ctx, id)
	if err != nil {
		return domain.CampRegistration{}, fmt.Errorf("r.registrationDAO.FindByID -> %w", err)
	}

	return r.registrationDaoToDomain(found), nil
}

func (r *CampRepository) FindRegistration(ctx context.Context, campID, donorID uint) (domain.CampRegistration, error) {
	found, err := r.registrationDAO.FindByCampAndDonor(ctx, campID, donorID)
	if err != nil {
		return domain.CampRegistration{}, fmt.Errorf("r.registrationDAO.FindByCampAndDonor -> %w", err)
	}

	return r.registrationDaoToDomain(found), nil
}

func (r *CampRepository) SaveRegistration(ctx context.Context, registration domain.CampRegistration) (domain.CampRegistration, error) {
	updated, err := r.registrationDAO.Update(ctx, r.registrationDomainToDao(registration))
	if err != nil {
		return domain.CampRegistration{}, fmt.Errorf("r.registrationDAO.Update -> %w", err)
	}

	return r.registrationDaoToDomain(updated), nil
}

func (r *CampRepository) FindRegistrationsByCamp(ctx context.Context, campID uint) ([]domain.RegistrationWithDonor, error) {
	rows, err := r.registrationDAO.FindByCampWithDonor(ctx, campID)
	if err != nil {
		return nil, fmt.Errorf("r.registrationDAO.FindByCampWithDonor -> %w", err)
	}

	registrations := make([]domain.RegistrationWithDonor, len(rows))
	for i, row := range rows {
		registrations[i] = domain.RegistrationWithDonor{
			CampRegistration: r.registrationDaoToDomain(row.CampRegistration),
			DonorName:        row.DonorName,
			DonorEmail:       row.DonorEmail,
			DonorPhone:       row.DonorPhone,
			BloodType:        row.BloodType,
		}
	}

	return registrations, nil
}

func (r *CampRepository) FindRegistrationsByDonor(ctx context.Context, donorID uint) ([]domain.RegistrationWithCamp, error) {
	rows, err := r.registrationDAO.FindByDonorWithCamp(ctx, donorID)
	if err != nil {
		return nil, fmt.Errorf("r.registrationDAO.FindByDonorWithCamp -> %w", err)
	}

	registrations := make([]domain.RegistrationWithCamp, len(rows))
	for i, row := range rows {
		registrations[i] = domain.RegistrationWithCamp{
			CampRegistration: r.registrationDaoToDomain(row.CampRegistration),
			CampName:         row.CampName,
			CampCity:         row.CampCity,
			CampStartDate:    row.CampStartDate,
			CampEndDate:      row.CampEndDate,
			CampStatus:       domain.CampStatus(row.CampStatus),
		}
	}

	return registrations, nil
}

func (r *CampRepository) campDomainToDao(c domain.DonationCamp) dao.DonationCamp {
	return dao.DonationCamp{
		ID:                   c.ID,
		OrganizerID:          c.OrganizerID,
		Name:                 c.Name,
		Description:          c.Description,
		StartDate:            c.StartDate,
		EndDate:              c.EndDate,
		Address:              c.Address,
		City:                 c.City,
		State:                c.State,
		PostalCode:           c.PostalCode,
		Latitude:             c.Latitude,
		Longitude:            c.Longitude,
		ContactPhone:         c.ContactPhone,
		ContactEmail:         c.ContactEmail,
		Website:              c.Website,
		MaxCapacity:          c.MaxCapacity,
		RegistrationRequired: c.RegistrationRequired,
		Status:               string(c.Status),
		CreatedAt:            c.CreatedAt,
		UpdatedAt:            c.UpdatedAt,
	}
}

func (r *CampRepository) campDaoToDomain(c dao.DonationCamp) domain.DonationCamp {
	return domain.DonationCamp{
		ID:                   c.ID,
		OrganizerID:          c.OrganizerID,
		Name:                 c.Name,
		Description:          c.Description,
		StartDate:            c.StartDate,
		EndDate:              c.EndDate,
		Address:              c.Address,
		City:                 c.City,
		State:                c.State,
		PostalCode:           c.PostalCode,
		Latitude:             c.Latitude,
		Longitude:            c.Longitude,
		ContactPhone:         c.ContactPhone,
		ContactEmail:         c.ContactEmail,
		Website:              c.Website,
		MaxCapacity:          c.MaxCapacity,
		RegistrationRequired: c.RegistrationRequired,
		Status:               domain.CampStatus(c.Status),
		CreatedAt:            c.CreatedAt,
		UpdatedAt:            c.UpdatedAt,
	}
}

func (r *CampRepository) campsDaoToDomain(camps []dao.DonationCamp) []domain.DonationCamp {
	result := make([]domain.DonationCamp, len(camps))
	for i, c := range camps {
		result[i] = r.campDaoToDomain(c)
	}
	return result
}

func (r *CampRepository) registrationDomainToDao(reg domain.CampRegistration) dao.CampRegistration {
	return dao.CampRegistration{
		ID:               reg.ID,
		CampID:           reg.CampID,
		DonorID:          reg.DonorID,
		RegistrationDate: reg.RegistrationDate,
		Status:           string(reg.Status),
		CheckInTime:      reg.CheckInTime,
		CheckOutTime:     reg.CheckOutTime,
		Notes:            reg.Notes,
		CreatedAt:        reg.CreatedAt,
		UpdatedAt:        reg.UpdatedAt,
	}
}

func (r *CampRepository) registrationDaoToDomain(reg dao.CampRegistration) domain.CampRegistration {
	return domain.CampRegistration{
		ID:               reg.ID,
		CampID:           reg.CampID,
		DonorID:          reg.DonorID,
		RegistrationDate: reg.RegistrationDate,
		Status:           domain.RegistrationStatus(reg.Status),
		CheckInTime:      reg.CheckInTime,
		CheckOutTime:     reg.CheckOutTime,
		Notes:            reg.Notes,
		CreatedAt:        reg.CreatedAt,
		UpdatedAt:        reg.UpdatedAt,
	}
}
