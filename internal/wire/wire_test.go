package wire

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/crm/internal/adapters/filesystem"
	"github.com/example/crm/internal/adapters/sqlite"
	"github.com/example/crm/internal/config"
)

func TestOpenSlotStore(t *testing.T) {
	t.Run("sqlite driver", func(t *testing.T) {
		dir := t.TempDir()
		cfg := config.Default()

		slots, err := OpenSlotStore(cfg, dir)
		require.NoError(t, err)
		assert.IsType(t, &sqlite.SlotRepository{}, slots)

		require.NoError(t, slots.Save(context.Background(), cfg.Storage.Slot, []byte("[]")))
		_, err = os.Stat(filepath.Join(dir, "crm.db"))
		assert.NoError(t, err)
	})

	t.Run("file driver", func(t *testing.T) {
		dir := t.TempDir()
		cfg := config.Default()
		cfg.Storage.Driver = config.DriverFile

		slots, err := OpenSlotStore(cfg, dir)
		require.NoError(t, err)
		require.IsType(t, &filesystem.SlotFile{}, slots)
		assert.Equal(t, filepath.Join(dir, "slots"), slots.(*filesystem.SlotFile).Dir())
	})

	t.Run("unknown driver", func(t *testing.T) {
		cfg := config.Default()
		cfg.Storage.Driver = "redis"

		_, err := OpenSlotStore(cfg, t.TempDir())
		assert.ErrorContains(t, err, "unknown storage driver")
	})
}
