package postgres

import (
	"context"
	"fmt"

	"github.com/xy-planning-network/meadowlark"
	"gorm.io/gorm"
)

// A Store reads and writes the storefront's records.
//
// The *gorm.DB backing a Store is never mutated;
// every method starts a fresh session scoped to its context.
type Store struct {
	db *gorm.DB
}

// NewStore constructs a *Store from a *gorm.DB.
func NewStore(db *gorm.DB) *Store { return &Store{db: db} }

// DB exposes the underlying *gorm.DB backing Store.
//
// NB: use in exceptional circumstances only.
func (s *Store) DB() *gorm.DB { return s.db }

func (s *Store) with(ctx context.Context) *gorm.DB { return s.db.WithContext(ctx) }

// SeedVacations fills an empty catalog with meadowlark.SeedVacations.
// A catalog holding any vacation is left alone.
func (s *Store) SeedVacations(ctx context.Context) (int, error) {
	var seeded int
	err := s.with(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(new(meadowlark.Vacation)).Count(&count).Error; err != nil {
			return err
		}

		if count > 0 {
			return nil
		}

		seeds := meadowlark.SeedVacations()
		if err := tx.Create(&seeds).Error; err != nil {
			return err
		}

		seeded = len(seeds)
		return nil
	})
	if err != nil {
		return 0, translate(err)
	}

	return seeded, nil
}

// Vacations lists the vacations available for booking by name.
func (s *Store) Vacations(ctx context.Context) ([]meadowlark.Vacation, error) {
	vs := make([]meadowlark.Vacation, 0)
	if err := s.with(ctx).Where("available = ?", true).Order("name").Find(&vs).Error; err != nil {
		return nil, translate(err)
	}

	return vs, nil
}

// Attractions lists the approved attractions.
func (s *Store) Attractions(ctx context.Context) ([]meadowlark.Attraction, error) {
	as := make([]meadowlark.Attraction, 0)
	if err := s.with(ctx).Where("approved = ?", true).Order("id").Find(&as).Error; err != nil {
		return nil, translate(err)
	}

	return as, nil
}

// Attraction retrieves the attraction with id and its history.
// Unapproved attractions are included.
func (s *Store) Attraction(ctx context.Context, id uint) (meadowlark.Attraction, error) {
	var a meadowlark.Attraction
	if err := s.with(ctx).Preload("History").First(&a, id).Error; err != nil {
		return meadowlark.Attraction{}, translate(err)
	}

	return a, nil
}

// CreateAttraction inserts a along with its history, returning its new ID.
// An attraction already stored is refused with meadowlark.ErrNotValid.
func (s *Store) CreateAttraction(ctx context.Context, a meadowlark.Attraction) (uint, error) {
	if a.Name == "" {
		return 0, fmt.Errorf("%w: attraction has no name", meadowlark.ErrMissingData)
	}

	if a.Exists() {
		return 0, fmt.Errorf("%w: attraction %d is already stored", meadowlark.ErrNotValid, a.ID)
	}

	err := s.with(ctx).Transaction(func(tx *gorm.DB) error { return tx.Create(&a).Error })
	if err != nil {
		return 0, translate(err)
	}

	return a.ID, nil
}

// GetUser retrieves the user with id.
func (s *Store) GetUser(ctx context.Context, id uint) (meadowlark.User, error) {
	var u meadowlark.User
	if err := s.with(ctx).First(&u, id).Error; err != nil {
		return meadowlark.User{}, translate(err)
	}

	return u, nil
}

// FindOrCreateUser retrieves the user with authID.
// If there is none, a customer is created with name and email.
func (s *Store) FindOrCreateUser(ctx context.Context, authID, name, email string) (meadowlark.User, error) {
	if authID == "" {
		return meadowlark.User{}, fmt.Errorf("%w: no auth ID", meadowlark.ErrMissingData)
	}

	var u meadowlark.User
	err := s.with(ctx).
		Where(meadowlark.User{AuthID: authID}).
		Attrs(meadowlark.User{Name: name, Email: email, Role: meadowlark.RoleCustomer}).
		FirstOrCreate(&u).
		Error
	if err != nil {
		return meadowlark.User{}, translate(err)
	}

	return u, nil
}

// Users lists every user, newest first.
func (s *Store) Users(ctx context.Context) ([]meadowlark.User, error) {
	us := make([]meadowlark.User, 0)
	if err := s.with(ctx).Order("created_at desc").Find(&us).Error; err != nil {
		return nil, translate(err)
	}

	return us, nil
}
