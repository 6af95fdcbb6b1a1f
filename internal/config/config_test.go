package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()
	require.NotNil(t, cfg)

	assert.Equal(t, "8080", cfg.Server.WallPort)
	assert.Equal(t, "8081", cfg.Server.MediaPort)
	assert.Equal(t, "development", cfg.Server.Environment)

	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "3306", cfg.Database.Port)
	assert.Equal(t, "socialwall_db", cfg.Database.DatabaseName)

	assert.Equal(t, int64(4<<20), cfg.Media.MaxImageBytes)
	assert.Equal(t, int64(16<<20), cfg.Media.MaxVideoBytes)

	assert.Equal(t, 10, cfg.Feed.PageSize)
	assert.Equal(t, "5s", cfg.Feed.PollInterval.String())
	assert.Equal(t, "30s", cfg.Feed.LeaderboardInterval.String())
	assert.Equal(t, "5s", cfg.Feed.InitialLoadTimeout.String())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("FEED_PAGE_SIZE", "25")
	t.Setenv("MAX_IMAGE_BYTES", "1048576")
	t.Setenv("WALL_PORT", "9090")

	cfg := Load()

	assert.Equal(t, 25, cfg.Feed.PageSize)
	assert.Equal(t, int64(1<<20), cfg.Media.MaxImageBytes)
	assert.Equal(t, "9090", cfg.Server.WallPort)
}

func TestDSN(t *testing.T) {
	cfg := &Config{
		Database: DatabaseConfig{
			Host:         "db.example.com",
			Port:         "3307",
			Username:     "wall",
			Password:     "secret",
			DatabaseName: "walldb",
		},
	}

	dsn := cfg.DSN()
	assert.Equal(t, "wall:secret@tcp(db.example.com:3307)/walldb?charset=utf8mb4&parseTime=True&loc=Local", dsn)
}

func TestDSN_FillsMissingHostAndPort(t *testing.T) {
	cfg := &Config{
		Database: DatabaseConfig{
			Username:     "wall",
			DatabaseName: "walldb",
		},
	}

	dsn := cfg.DSN()
	assert.Contains(t, dsn, "@tcp(localhost:3306)/walldb")
}

func TestGetMongoURI(t *testing.T) {
	cfg := &Config{
		MongoDB: MongoConfig{Host: "localhost", Port: "27017"},
	}
	assert.Equal(t, "mongodb://localhost:27017", cfg.GetMongoURI())

	cfg.MongoDB.Username = "admin"
	cfg.MongoDB.Password = "pw"
	assert.Equal(t, "mongodb://admin:pw@localhost:27017", cfg.GetMongoURI())
}
