package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"karuta-server/internal/util"
)

func TestInstance(t *testing.T) {
	clear1 := util.SetEnv("KARUTA_CONFIG_FILE", "testdata/config.yaml")
	defer clear1()
	clear2 := util.SetEnv("KARUTA_GAME_DEFAULT_MINUTES", "3")
	defer clear2()

	config = Config{}

	a := assert.New(t)
	cfg := Instance()
	a.Equal("testdata/karuta_data.json", cfg.CatalogPath)
	a.Equal(StoreDriverPostgres, cfg.Store.Driver)
	a.Equal("postgres://karuta@db:5432/karuta?sslmode=disable", cfg.Store.PGDSN)
	a.Equal("debug", cfg.Log.Level)
	a.Equal(20, cfg.Game.DefaultCardCount)
	a.Equal(3, cfg.Game.DefaultMinutes)

	// values not in the file keep their defaults
	a.Equal("./sql", cfg.Store.MigrationsPath)

	// ensure that it's only loaded once
	clear3 := util.SetEnv("KARUTA_GAME_DEFAULT_MINUTES", "4")
	defer clear3()
	// ensure we aren't using a pointer
	cfg.Game.DefaultMinutes = 99
	cfg = Instance()
	a.Equal(3, cfg.Game.DefaultMinutes)
}

func TestDefaults(t *testing.T) {
	clear1 := util.SetEnv("KARUTA_CONFIG_FILE", "testdata/does-not-exist.yaml")
	defer clear1()

	assert.NoError(t, Load())
	cfg := Instance()
	assert.Equal(t, StoreDriverFile, cfg.Store.Driver)
	assert.Equal(t, "teiichi.json", cfg.Store.Path)
	assert.Equal(t, 50, cfg.Game.DefaultCardCount)
	assert.Equal(t, 15, cfg.Game.DefaultMinutes)
}

func TestLoad_Invalid(t *testing.T) {
	clear1 := util.SetEnv("KARUTA_CONFIG_FILE", "testdata/invalid.yaml")
	defer clear1()

	err := Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestLoad_OddCardCount(t *testing.T) {
	clear1 := util.SetEnv("KARUTA_CONFIG_FILE", "testdata/does-not-exist.yaml")
	defer clear1()
	clear2 := util.SetEnv("KARUTA_GAME_DEFAULT_CARD_COUNT", "21")
	defer clear2()

	err := Load()
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "DefaultCardCount")
		assert.Contains(t, err.Error(), "even")
	}

	clear3 := util.SetEnv("KARUTA_GAME_DEFAULT_CARD_COUNT", "22")
	defer clear3()
	assert.NoError(t, Load())
	assert.Equal(t, 22, Instance().Game.DefaultCardCount)
}
