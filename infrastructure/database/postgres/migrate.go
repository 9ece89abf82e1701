package postgres

import (
	"errors"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/sirupsen/logrus"
)

// RunMigrations aplica os arquivos *.up.sql de scripts no banco da conexão
func (c *Connection) RunMigrations(scripts fs.FS, dir string) error {
	source, err := iofs.New(scripts, dir)
	if err != nil {
		return err
	}

	driver, err := migratepg.WithInstance(c.DB, &migratepg.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logrus.Info("migrations: schema already up to date")
			return nil
		}
		return err
	}

	version, dirty, _ := m.Version()
	logrus.WithFields(logrus.Fields{
		"version": version,
		"dirty":   dirty,
	}).Info("migrations: schema updated")

	return nil
}
