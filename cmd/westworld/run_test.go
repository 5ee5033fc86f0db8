package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enetx/stackfsm/config"
)

func quietConfig() config.Config {
	cfg := config.Default()
	cfg.TickInterval = 0
	cfg.MaxTicks = 20
	cfg.LogLevel = "error"
	cfg.Seed = 42

	return cfg
}

func TestSimulate_StopsAtMaxTicks(t *testing.T) {
	require.NoError(t, simulate(context.Background(), quietConfig(), false))
}

func TestSimulate_Parallel(t *testing.T) {
	cfg := quietConfig()
	cfg.Parallel = true

	require.NoError(t, simulate(context.Background(), cfg, false))
}

func TestSimulate_InterruptIsNotAnError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := quietConfig()
	cfg.MaxTicks = 0

	assert.NoError(t, simulate(ctx, cfg, false))
}

func TestSimulate_RejectsBadLevel(t *testing.T) {
	cfg := quietConfig()
	cfg.LogLevel = "loud"

	assert.Error(t, simulate(context.Background(), cfg, false))
}

func TestRunCommand_FlagsOverrideConfig(t *testing.T) {
	t.Setenv("WESTWORLD_LOG_LEVEL", "debug")

	rootCmd.SetArgs([]string{"run", "--ticks", "3", "--interval", "0s", "--log-level", "error", "--seed", "9"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	require.NoError(t, rootCmd.ExecuteContext(context.Background()))

	cfg, err := loadConfig(runCmd)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), cfg.MaxTicks)
	assert.Equal(t, "error", cfg.LogLevel)
	assert.Equal(t, uint64(9), cfg.Seed)
	assert.Zero(t, cfg.TickInterval)
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer

	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "westworld version dev\n", out.String())
}
