package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromEnv(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("DRUID_ADDR", "")
		t.Setenv("DRUID_SEED_DEMO_DATA", "")
		t.Setenv("DRUID_AUDIT_BUFFER", "")

		cfg := FromEnv()
		assert.Equal(t, ":8080", cfg.Addr)
		assert.True(t, cfg.SeedDemoData)
		assert.Equal(t, 256, cfg.AuditBuffer)
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("DRUID_ADDR", ":9090")
		t.Setenv("DRUID_SEED_DEMO_DATA", "false")
		t.Setenv("DRUID_AUDIT_BUFFER", "32")

		cfg := FromEnv()
		assert.Equal(t, ":9090", cfg.Addr)
		assert.False(t, cfg.SeedDemoData)
		assert.Equal(t, 32, cfg.AuditBuffer)
	})

	t.Run("garbage buffer sizes fall back", func(t *testing.T) {
		t.Setenv("DRUID_AUDIT_BUFFER", "-3")
		assert.Equal(t, 256, FromEnv().AuditBuffer)

		t.Setenv("DRUID_AUDIT_BUFFER", "lots")
		assert.Equal(t, 256, FromEnv().AuditBuffer)
	})
}
