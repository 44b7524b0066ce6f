package db

import (
	"github.com/pkg/errors"

	"github.com/cardloop/cardloop/internal/profile"
	"github.com/cardloop/cardloop/store"
	"github.com/cardloop/cardloop/store/db/postgres"
	"github.com/cardloop/cardloop/store/db/sqlite"
)

// NewDBDriver creates new db driver based on profile.
// SQLite is the default for single-instance deployments; PostgreSQL is
// supported for setups that want an external database.
func NewDBDriver(profile *profile.Profile) (store.Driver, error) {
	var driver store.Driver
	var err error

	switch profile.Driver {
	case "sqlite":
		driver, err = sqlite.NewDB(profile)
	case "postgres":
		driver, err = postgres.NewDB(profile)
	default:
		return nil, errors.New("unknown db driver: only 'sqlite' and 'postgres' are supported")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to create db driver")
	}
	return driver, nil
}
