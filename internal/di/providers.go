package di

import (
	"gorm.io/gorm"

	"socialwall/internal/config"
	"socialwall/internal/dbmysql"
	"socialwall/internal/user"
	"socialwall/internal/wall"
)

// Application bundles everything the wall service main needs.
type Application struct {
	Config      *config.Config
	DB          *gorm.DB
	WallHandler *wall.Handler
	UserHandler *user.Handler
}

func ProvideConfig() *config.Config {
	return config.Load()
}

func ProvideDatabaseConnection(cfg *config.Config) (*gorm.DB, func(), error) {
	db, err := dbmysql.NewMySQL(cfg)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}
	return db, cleanup, nil
}

func ProvideWallService(cfg *config.Config, repo wall.Repository) *wall.Service {
	return wall.NewService(repo, cfg.Feed.PageSize)
}
