package app

import (
	"context"

	"github.com/xy-planning-network/meadowlark"
	"github.com/xy-planning-network/meadowlark/auth"
)

//go:generate mockgen -destination=mocks/mock_store.go -package=mocks . Store

// A Store holds the storefront's records.
// *postgres.Store is the implementation used outside of tests.
type Store interface {
	auth.UserStore

	Attraction(ctx context.Context, id uint) (meadowlark.Attraction, error)
	Attractions(ctx context.Context) ([]meadowlark.Attraction, error)
	CreateAttraction(ctx context.Context, a meadowlark.Attraction) (uint, error)
	SeedVacations(ctx context.Context) (int, error)
	Users(ctx context.Context) ([]meadowlark.User, error)
	Vacations(ctx context.Context) ([]meadowlark.Vacation, error)
}
