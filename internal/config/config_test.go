package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"pickupsixes-server/internal/util"
)

func TestInstance(t *testing.T) {
	clear1 := util.SetEnv("PSX_CONFIG_FILE", "testdata/config.yaml")
	defer clear1()
	clear2 := util.SetEnv("PSX_JWT_PRIVATE_KEY", "private2.key")
	defer clear2()

	a := assert.New(t)
	a.NoError(Load())
	cfg := Instance()
	a.Equal("postgres://postgres@testhost:5432/pickupsixes?sslmode=disable", cfg.PGDSN)
	a.Equal("https://deckofcardsapi.com", cfg.DeckAPIURL)
	a.Equal("public.pem", cfg.JWT.PublicKey)
	a.Equal("private2.key", cfg.JWT.PrivateKey, "env overrides yaml")
	a.Equal("debug", cfg.Log.Level)

	// ensure that it's only loaded once
	_ = os.Setenv("PSX_JWT_PRIVATE_KEY", "private3.key")
	// ensure we aren't using a pointer
	cfg.JWT.PrivateKey = "bad"
	cfg = Instance()
	a.Equal("private2.key", cfg.JWT.PrivateKey)
}

func TestDefaults(t *testing.T) {
	clear := util.SetEnv("PSX_CONFIG_FILE", "testdata/does-not-exist.yaml")
	defer clear()

	assert.NoError(t, Load())
	cfg := Instance()
	assert.Equal(t, "./sql", cfg.MigrationsPath)
	assert.Equal(t, "", cfg.DeckAPIURL)
}
