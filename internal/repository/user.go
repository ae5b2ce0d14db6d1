package repository

import (
	"context"
	"fmt"

	"github.com/reddrop/reddrop-api/internal/domain"
	"github.com/reddrop/reddrop-api/internal/repository/dao"
)

var (
	ErrUserEmailExists      = dao.ErrUserEmailExists
	ErrUserNotFound         = dao.ErrUserNotFound
	ErrDonorProfileExists   = dao.ErrDonorProfileExists
	ErrDonorProfileNotFound = dao.ErrDonorProfileNotFound
)

type UserDAO interface {
	Insert(ctx context.Context, user dao.User) (dao.User, error)
	FindByID(ctx context.Context, id uint) (dao.User, error)
	FindByEmail(ctx context.Context, email string) (dao.User, error)
}

type DonorDAO interface {
	Insert(ctx context.Context, profile dao.DonorProfile) (dao.DonorProfile, error)
	FindByUserID(ctx context.Context, userID uint) (dao.DonorProfile, error)
	Update(ctx context.Context, profile dao.DonorProfile) (dao.DonorProfile, error)
}

type UserRepository struct {
	dao      UserDAO
	donorDAO DonorDAO
}

func NewUserRepository(userDAO UserDAO, donorDAO DonorDAO) *UserRepository {
	return &UserRepository{
		dao:      userDAO,
		donorDAO: donorDAO,
	}
}

func (r *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	created, err := r.dao.Insert(ctx, dao.User{
		Email:    user.Email,
		Password: user.Password,
		Name:     user.Name,
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (domain.User, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	found, err := r.dao.FindByEmail(ctx, email)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByEmail -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *UserRepository) CreateDonorProfile(ctx context.Context, profile domain.DonorProfile) (domain.DonorProfile, error) {
	created, err := r.donorDAO.Insert(ctx, r.donorDomainToDao(profile))
	if err != nil {
		return domain.DonorProfile{}, fmt.Errorf("r.donorDAO.Insert -> %w", err)
	}

	return r.donorDaoToDomain(created), nil
}

func (r *UserRepository) FindDonorProfileByUserID(ctx context.Context, userID uint) (domain.DonorProfile, error) {
	found, err := r.donorDAO.FindByUserID(ctx, userID)
	if err != nil {
		return domain.DonorProfile{}, fmt.Errorf("r.donorDAO.FindByUserID -> %w", err)
	}

	return r.donorDaoToDomain(found), nil
}

func (r *UserRepository) UpdateDonorProfile(ctx context.Context, profile domain.DonorProfile) (domain.DonorProfile, error) {
	updated, err := r.donorDAO.Update(ctx, r.donorDomainToDao(profile))
	if err != nil {
		return domain.DonorProfile{}, fmt.Errorf("r.donorDAO.Update -> %w", err)
	}

	return r.donorDaoToDomain(updated), nil
}

func (r *UserRepository) daoToDomain(u dao.User) domain.User {
	return domain.User{
		ID:        u.ID,
		Email:     u.Email,
		Password:  u.Password,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func (r *UserRepository) donorDomainToDao(p domain.DonorProfile) dao.DonorProfile {
	return dao.DonorProfile{
		ID:          p.ID,
		UserID:      p.UserID,
		BloodType:   p.BloodType,
		Phone:       p.Phone,
		DateOfBirth: p.DateOfBirth,
		City:        p.City,
		State:       p.State,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (r *UserRepository) donorDaoToDomain(p dao.DonorProfile) domain.DonorProfile {
	return domain.DonorProfile{
		ID:          p.ID,
		UserID:      p.UserID,
		BloodType:   p.BloodType,
		Phone:       p.Phone,
		DateOfBirth: p.DateOfBirth,
		City:        p.City,
		State:       p.State,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
