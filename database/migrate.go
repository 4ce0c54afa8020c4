package database

import (
	"database/sql"
	"embed"

	"github.com/golang-migrate/migrate/v4"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Direction selects which way RunMigrations moves the schema.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// RunMigrations applies (or rolls back) the embedded SQL migrations on the
// database at dsn. Running up on a current schema is a no-op.
func RunMigrations(dsn string, dir Direction) error {
	if dir != Up && dir != Down {
		return errors.Errorf("unknown migration direction %q", dir)
	}

	m, closeFn, err := newMigrator(dsn)
	if err != nil {
		return err
	}
	defer closeFn()

	if dir == Up {
		err = m.Up()
	} else {
		err = m.Down()
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return errors.Wrapf(err, "migrate %s", dir)
	}

	version, dirty, verr := m.Version()
	switch {
	case errors.Is(verr, migrate.ErrNilVersion):
		log.WithField("direction", dir).Info("migrations complete, schema empty")
	case verr != nil:
		return errors.Wrap(verr, "read migration version")
	default:
		log.WithFields(log.Fields{"direction": dir, "version": version, "dirty": dirty}).Info("migrations complete")
	}
	return nil
}

func newMigrator(dsn string) (*migrate.Migrate, func(), error) {
	src, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return nil, nil, errors.Wrap(err, "open migration source")
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, nil, errors.Wrap(err, "open migration connection")
	}

	driver, err := migratepgx.WithInstance(db, &migratepgx.Config{})
	if err != nil {
		db.Close()
		return nil, nil, errors.Wrap(err, "migration driver")
	}

	m, err := migrate.NewWithInstance("iofs", src, "pgx5", driver)
	if err != nil {
		db.Close()
		return nil, nil, errors.Wrap(err, "create migrator")
	}

	return m, func() {
		if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
			log.WithFields(log.Fields{"source": srcErr, "database": dbErr}).Warn("close migrator")
		}
	}, nil
}
