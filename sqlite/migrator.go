package sqlite

import (
	"context"
	"embed"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Migrations is the embedded set of schema migration scripts. Scripts are
// named like "0001_create_flavors.sql" and must bump PRAGMA user_version to
// their own number as their last statement.
//
//go:embed migrations/*.sql
var Migrations embed.FS

type Migrator struct {
	store *SqlStore
	log   *zap.Logger
}

func NewMigrator(store *SqlStore, log *zap.Logger) *Migrator {
	return &Migrator{
		store: store,
		log:   log,
	}
}

// Up applies every migration script from source whose version is newer than
// the database's current user_version, in version order.
func (m *Migrator) Up(ctx context.Context, source embed.FS) error {
	list, err := source.ReadDir("migrations")
	if err != nil {
		return err
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Name() < list[j].Name()
	})

	current, err := m.store.userVersion()
	if err != nil {
		return err
	}

	final, err := scriptVersion(list[len(list)-1].Name())
	if err != nil {
		return err
	}

	// log this message only if there are migrations to run
	if final > current {
		m.log.Info("Bringing up metadata migrations", zap.Int("migration_count", final-current))
	}

	for _, f := range list {
		n := f.Name()
		v, err := scriptVersion(n)
		if err != nil {
			return err
		}

		// re-read user_version each time so an out-of-order script can
		// never be applied on top of a newer one
		c, err := m.store.userVersion()
		if err != nil {
			return err
		}

		if v > c {
			m.log.Debug("Executing metadata migration", zap.String("migration_name", n))
			stmt, err := source.ReadFile("migrations/" + n)
			if err != nil {
				return err
			}

			if err := m.store.execTrans(ctx, string(stmt)); err != nil {
				return err
			}
		}
	}

	return nil
}

// scriptVersion extracts the version number from a file named like
// "0002_migration_name.sql".
func scriptVersion(filename string) (int, error) {
	vString := strings.Split(filename, "_")[0]
	vInt, err := strconv.Atoi(vString)
	if err != nil {
		return 0, err
	}

	return vInt, nil
}
