package service

import (
	"context"
	"fmt"

	"github.com/reddrop/reddrop-api/internal/domain"
	"github.com/reddrop/reddrop-api/internal/repository"
)

var (
	ErrUserNotFound         = repository.ErrUserNotFound
	ErrDonorProfileExists   = repository.ErrDonorProfileExists
	ErrDonorProfileNotFound = repository.ErrDonorProfileNotFound
)

type UserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
	CreateDonorProfile(ctx context.Context, profile domain.DonorProfile) (domain.DonorProfile, error)
	FindDonorProfileByUserID(ctx context.Context, userID uint) (domain.DonorProfile, error)
	UpdateDonorProfile(ctx context.Context, profile domain.DonorProfile) (domain.DonorProfile, error)
}

type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{
		repo: repo,
	}
}

func (s *UserService) GetUser(ctx context.Context, id uint) (domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return user, nil
}

func (s *UserService) GetDonorProfile(ctx context.Context, userID uint) (domain.DonorProfile, error) {
	profile, err := s.repo.FindDonorProfileByUserID(ctx, userID)
	if err != nil {
		return domain.DonorProfile{}, fmt.Errorf("s.repo.FindDonorProfileByUserID -> %w", err)
	}

	return profile, nil
}

func (s *UserService) CreateDonorProfile(ctx context.Context, profile domain.DonorProfile) (domain.DonorProfile, error) {
	created, err := s.repo.CreateDonorProfile(ctx, profile)
	if err != nil {
		return domain.DonorProfile{}, fmt.Errorf("s.repo.CreateDonorProfile -> %w", err)
	}

	return created, nil
}

// UpdateDonorProfile overwrites the caller's own profile. The stored row is
// fetched first so the caller cannot repoint the profile at another user.
func (s *UserService) UpdateDonorProfile(ctx context.Context, userID uint, profile domain.DonorProfile) (domain.DonorProfile, error) {
	existing, err := s.repo.FindDonorProfileByUserID(ctx, userID)
	if err != nil {
		return domain.DonorProfile{}, fmt.Errorf("s.repo.FindDonorProfileByUserID -> %w", err)
	}

	existing.BloodType = profile.BloodType
	existing.Phone = profile.Phone
	existing.DateOfBirth = profile.DateOfBirth
	existing.City = profile.City
	existing.State = profile.State

	updated, err := s.repo.UpdateDonorProfile(ctx, existing)
	if err != nil {
		return domain.DonorProfile{}, fmt.Errorf("s.repo.UpdateDonorProfile -> %w", err)
	}

	return updated, nil
}
