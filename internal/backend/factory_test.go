package backend

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expensetracker/internal/config"
)

func TestFromAppConfig(t *testing.T) {
	app := config.Defaults()
	app.DataBackend = "bolt"
	app.BoltDBPath = "/tmp/x.bolt"
	app.AMQPURL = "amqp://localhost/"

	cfg, err := FromAppConfig(&app)

	require.NoError(t, err)
	assert.Equal(t, BoltBackend, cfg.Type)
	assert.Equal(t, "/tmp/x.bolt", cfg.BoltDBPath)
	assert.Equal(t, "amqp://localhost/", cfg.AMQPURL)
	assert.Equal(t, "ledger", cfg.AMQPExchange)

	_, err = FromAppConfig(nil)
	assert.Error(t, err)

	app.DataBackend = "sheets"
	_, err = FromAppConfig(&app)
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, Config{Type: MemoryBackend}.Validate())
	assert.Error(t, Config{Type: "nope"}.Validate())
	assert.Error(t, Config{Type: FileBackend}.Validate())
	assert.Error(t, Config{Type: BoltBackend}.Validate())
	assert.Error(t, Config{Type: SQLiteBackend}.Validate())
}

func TestGetBackendTypeStrings(t *testing.T) {
	assert.Equal(t, []string{"memory", "file", "bolt", "sqlite"}, GetBackendTypeStrings())
}

func TestCreateBackend(t *testing.T) {
	dir := t.TempDir()
	cases := []Config{
		{Type: MemoryBackend},
		{Type: FileBackend, DataDirectory: filepath.Join(dir, "files")},
		{Type: BoltBackend, BoltDBPath: filepath.Join(dir, "bolt", "ledger.bolt")},
		{Type: SQLiteBackend, SQLiteDBPath: filepath.Join(dir, "ledger.db")},
	}

	for _, cfg := range cases {
		t.Run(cfg.Type.String(), func(t *testing.T) {
			ctx := context.Background()
			result, err := NewFactory(nil).CreateBackend(ctx, cfg)
			require.NoError(t, err)
			assert.Nil(t, result.Notifier)

			require.NoError(t, result.Store.Put(ctx, "expenses", []byte(`[]`)))
			got, err := result.Store.Get(ctx, "expenses")
			require.NoError(t, err)
			assert.Equal(t, "[]", string(got))

			require.NoError(t, result.Cleanup())
		})
	}

	_, err := os.Stat(filepath.Join(dir, "files", "expenses.json"))
	assert.NoError(t, err)
}

func TestCreateBackend_InvalidConfig(t *testing.T) {
	_, err := NewFactory(nil).CreateBackend(context.Background(), Config{Type: SQLiteBackend})
	assert.Error(t, err)
}
