package profile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	dir := t.TempDir()

	t.Run("defaults sqlite DSN from data dir", func(t *testing.T) {
		p := &Profile{Mode: "dev", Data: dir, Driver: "sqlite"}
		require.NoError(t, p.Validate())
		assert.Contains(t, p.DSN, "cardloop_dev.db")
	})

	t.Run("unknown mode falls back to demo", func(t *testing.T) {
		p := &Profile{Mode: "bogus", Data: dir, Driver: "sqlite"}
		require.NoError(t, p.Validate())
		assert.Equal(t, "demo", p.Mode)
	})

	t.Run("rejects unsupported driver", func(t *testing.T) {
		p := &Profile{Mode: "dev", Data: dir, Driver: "mysql"}
		assert.Error(t, p.Validate())
	})

	t.Run("rejects invalid timezone", func(t *testing.T) {
		p := &Profile{Mode: "dev", Data: dir, Driver: "sqlite", Timezone: "Mars/Olympus"}
		assert.Error(t, p.Validate())
	})
}

func TestLocation(t *testing.T) {
	p := &Profile{}
	assert.Equal(t, time.UTC, p.Location())

	p.Timezone = "Asia/Seoul"
	loc := p.Location()
	require.NotNil(t, loc)
	assert.Equal(t, "Asia/Seoul", loc.String())

	p.Timezone = "not-a-zone"
	assert.Equal(t, time.UTC, p.Location())
}
