package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	// Empty directory: no config file, defaults only.
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 6, cfg.Game.MaxPlayers)
	assert.Equal(t, 2*time.Hour, cfg.Sweep.InactivityThreshold)
	assert.Equal(t, time.Hour, cfg.Sweep.Interval)
	assert.Equal(t, 5*time.Minute, cfg.Sweep.ErrorBackoff)
	assert.Equal(t, time.Hour, cfg.Sweep.AdminThreshold)
	assert.Empty(t, cfg.Bot.Token)
	assert.Empty(t, cfg.Admin.IDs)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	content := `bot:
  token: test-token
admin:
  ids:
    - 111
    - 222
whitelist:
  chats:
    - -100500
game:
  max_players: 4
sweep:
  inactivity_threshold: 30m
  admin_threshold: 10m
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "test-token", cfg.Bot.Token)
	assert.Equal(t, []int64{111, 222}, cfg.Admin.IDs)
	assert.Equal(t, []int64{-100500}, cfg.Whitelist.Chats)
	assert.Equal(t, 4, cfg.Game.MaxPlayers)
	assert.Equal(t, 30*time.Minute, cfg.Sweep.InactivityThreshold)
	assert.Equal(t, 10*time.Minute, cfg.Sweep.AdminThreshold)
	// Unset keys keep their defaults.
	assert.Equal(t, time.Hour, cfg.Sweep.Interval)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("BOT_TOKEN", "env-token")
	t.Setenv("GAME_MAX_PLAYERS", "3")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "env-token", cfg.Bot.Token)
	assert.Equal(t, 3, cfg.Game.MaxPlayers)
}

func TestIsAdmin(t *testing.T) {
	cfg := &Config{Admin: AdminConfig{IDs: []int64{111, 222}}}

	assert.True(t, cfg.IsAdmin(111))
	assert.True(t, cfg.IsAdmin(222))
	assert.False(t, cfg.IsAdmin(333))

	empty := &Config{}
	assert.False(t, empty.IsAdmin(111), "empty admin list trusts no one")
}

func TestIsChatAllowed(t *testing.T) {
	open := &Config{}
	assert.True(t, open.IsChatAllowed(-100500), "empty whitelist allows all chats")

	restricted := &Config{Whitelist: WhitelistConfig{Chats: []int64{-100500}}}
	assert.True(t, restricted.IsChatAllowed(-100500))
	assert.False(t, restricted.IsChatAllowed(-100501))
}
