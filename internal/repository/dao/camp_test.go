package dao_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/reddrop/reddrop-api/internal/repository/dao"
)

// setupPostgres spins up a throwaway Postgres container and migrates the
// schema into it. Skips when Docker is not available.
func setupPostgres(t *testing.T) *gorm.DB {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("could not construct docker pool: %v", err)
	}
	if err = pool.Client.Ping(); err != nil {
		t.Skipf("docker is not running: %v", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=test",
			"POSTGRES_PASSWORD=test",
			"POSTGRES_DB=reddrop_test",
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = pool.Purge(resource)
	})

	var db *gorm.DB
	err = pool.Retry(func() error {
		dsn := fmt.Sprintf("host=localhost port=%v user=test password=test dbname=reddrop_test sslmode=disable",
			resource.GetPort("5432/tcp"))

		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		if err != nil {
			return err
		}

		sqlDB, err := db.DB()
		if err != nil {
			return err
		}

		return sqlDB.Ping()
	})
	require.NoError(t, err)

	require.NoError(t, dao.InitTables(db))

	return db
}

func seedOrganizer(t *testing.T, db *gorm.DB) dao.User {
	t.Helper()

	user, err := dao.NewUserDAO(db).Insert(context.Background(), dao.User{
		Email:    fmt.Sprintf("organizer-%d@example.com", time.Now().UnixNano()),
		Password: "hashed",
		Name:     "Organizer",
	})
	require.NoError(t, err)

	return user
}

func ptrFloat(v float64) *float64 { return &v }

func TestCampDAO_FindPublic(t *testing.T) {
	db := setupPostgres(t)
	campDAO := dao.NewCampDAO(db)
	organizer := seedOrganizer(t, db)

	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	camps := []dao.DonationCamp{
		{
			OrganizerID: organizer.ID,
			Name:        "Springfield Community Drive",
			Description: "Annual spring drive",
			StartDate:   base,
			EndDate:     base.AddDate(0, 0, 1),
			Address:     "1 Main St",
			City:        "Springfield",
			State:       "IL",
			Status:      "upcoming",
		},
		{
			OrganizerID: organizer.ID,
			Name:        "Shelbyville Hospital Camp",
			Description: "Hospital blood bank replenishment",
			StartDate:   base.AddDate(0, 1, 0),
			EndDate:     base.AddDate(0, 1, 1),
			Address:     "2 Oak Ave",
			City:        "Shelbyville",
			State:       "IL",
			Status:      "upcoming",
		},
		{
			OrganizerID: organizer.ID,
			Name:        "Capital City Drive",
			Description: "Downtown event",
			StartDate:   base.AddDate(0, 2, 0),
			EndDate:     base.AddDate(0, 2, 1),
			Address:     "3 Elm Rd",
			City:        "Capital City",
			State:       "TX",
			Status:      "cancelled",
		},
	}
	for _, camp := range camps {
		_, err := campDAO.Insert(context.Background(), camp)
		require.NoError(t, err)
	}

	t.Run("no filters returns all ordered by start date", func(t *testing.T) {
		got, err := campDAO.FindPublic(context.Background(), dao.CampFilters{})

		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, "Springfield Community Drive", got[0].Name)
		assert.Equal(t, "Capital City Drive", got[2].Name)
	})

	t.Run("status filter", func(t *testing.T) {
		got, err := campDAO.FindPublic(context.Background(), dao.CampFilters{Status: "cancelled"})

		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Capital City Drive", got[0].Name)
	})

	t.Run("city is a case-insensitive partial match", func(t *testing.T) {
		got, err := campDAO.FindPublic(context.Background(), dao.CampFilters{City: "spring"})

		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Springfield", got[0].City)
	})

	t.Run("search matches name or description", func(t *testing.T) {
		got, err := campDAO.FindPublic(context.Background(), dao.CampFilters{SearchTerm: "hospital"})

		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Shelbyville Hospital Camp", got[0].Name)
	})

	t.Run("date range", func(t *testing.T) {
		from := base.AddDate(0, 0, 15)
		got, err := campDAO.FindPublic(context.Background(), dao.CampFilters{StartDate: &from})

		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("filters compose", func(t *testing.T) {
		got, err := campDAO.FindPublic(context.Background(), dao.CampFilters{State: "il", SearchTerm: "hospital"})

		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Shelbyville Hospital Camp", got[0].Name)
	})
}

func TestCampDAO_FindNearby(t *testing.T) {
	db := setupPostgres(t)
	campDAO := dao.NewCampDAO(db)
	organizer := seedOrganizer(t, db)

	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	// Bangalore city center, a camp ~12km out, and one in another city.
	camps := []dao.DonationCamp{
		{
			OrganizerID: organizer.ID,
			Name:        "City Center Camp",
			StartDate:   base,
			EndDate:     base.AddDate(0, 0, 1),
			Address:     "MG Road",
			Latitude:    ptrFloat(12.9716),
			Longitude:   ptrFloat(77.5946),
			Status:      "upcoming",
		},
		{
			OrganizerID: organizer.ID,
			Name:        "Airport Road Camp",
			StartDate:   base,
			EndDate:     base.AddDate(0, 0, 1),
			Address:     "Airport Rd",
			Latitude:    ptrFloat(13.0700),
			Longitude:   ptrFloat(77.6200),
			Status:      "upcoming",
		},
		{
			OrganizerID: organizer.ID,
			Name:        "Chennai Camp",
			StartDate:   base,
			EndDate:     base.AddDate(0, 0, 1),
			Address:     "Marina",
			Latitude:    ptrFloat(13.0827),
			Longitude:   ptrFloat(80.2707),
			Status:      "upcoming",
		},
		{
			OrganizerID: organizer.ID,
			Name:        "No Coordinates Camp",
			StartDate:   base,
			EndDate:     base.AddDate(0, 0, 1),
			Address:     "Unknown",
			Status:      "upcoming",
		},
	}
	for _, camp := range camps {
		_, err := campDAO.Insert(context.Background(), camp)
		require.NoError(t, err)
	}

	got, err := campDAO.FindNearby(context.Background(), 12.9716, 77.5946, 25)

	require.NoError(t, err)
	require.Len(t, got, 2, "camps beyond the radius or without coordinates are excluded")
	assert.Equal(t, "City Center Camp", got[0].Name, "ordered closest first")
	assert.InDelta(t, 0, got[0].DistanceKm, 0.5)
	assert.Equal(t, "Airport Road Camp", got[1].Name)
	assert.Greater(t, got[1].DistanceKm, got[0].DistanceKm)
}

func TestCampDAO_Statistics(t *testing.T) {
	db := setupPostgres(t)
	ctx := context.Background()
	campDAO := dao.NewCampDAO(db)
	registrationDAO := dao.NewRegistrationDAO(db)
	organizer := seedOrganizer(t, db)

	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	camp, err := campDAO.Insert(ctx, dao.DonationCamp{
		OrganizerID: organizer.ID,
		Name:        "Stats Camp",
		StartDate:   base,
		EndDate:     base.AddDate(0, 0, 1),
		Address:     "1 Main St",
		Status:      "active",
	})
	require.NoError(t, err)

	donorDAO := dao.NewDonorDAO(db)
	userDAO := dao.NewUserDAO(db)
	statuses := []string{"registered", "registered", "checked_in", "completed", "cancelled"}
	for i, status := range statuses {
		user, err := userDAO.Insert(ctx, dao.User{
			Email:    fmt.Sprintf("donor%d-%d@example.com", i, time.Now().UnixNano()),
			Password: "hashed",
			Name:     fmt.Sprintf("Donor %d", i),
		})
		require.NoError(t, err)

		donor, err := donorDAO.Insert(ctx, dao.DonorProfile{
			UserID:      user.ID,
			BloodType:   "O+",
			Phone:       "+15551234567",
			DateOfBirth: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)

		_, err = registrationDAO.Insert(ctx, dao.CampRegistration{
			CampID:           camp.ID,
			DonorID:          donor.ID,
			RegistrationDate: base,
			Status:           status,
		})
		require.NoError(t, err)
	}

	stats, err := campDAO.Statistics(ctx, camp.ID)

	require.NoError(t, err)
	assert.Equal(t, 4, stats.TotalRegistrations, "cancelled rows do not count toward the total")
	assert.Equal(t, 2, stats.ActiveRegistrations)
	assert.Equal(t, 1, stats.CheckedIn)
	assert.Equal(t, 1, stats.Completed)
	assert.Equal(t, 1, stats.Cancelled)
}
