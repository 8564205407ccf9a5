package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Astemirdum/driver-rating/pkg/storage"
	"github.com/Astemirdum/driver-rating/rating/internal/model"
	"github.com/Astemirdum/driver-rating/rating/internal/repository"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewRepository(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		cfg       storage.Config
		wantCount int
		isMemory  bool
	}{
		{name: "memory", cfg: storage.Config{URL: "memory://"}, isMemory: true},
		{name: "memory seeded", cfg: storage.Config{URL: "memory://", SeedFixtures: true}, wantCount: 2, isMemory: true},
		{name: "sqlite in memory", cfg: storage.Config{URL: ""}},
		{name: "sqlite file", cfg: storage.Config{URL: "sqlite://" + filepath.Join(t.TempDir(), "rating.db")}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			repo, closeRepo, err := newRepository(context.Background(), &tt.cfg, zap.NewNop())
			require.NoError(t, err)
			defer closeRepo()

			_, ok := repo.(*repository.Memory)
			require.Equal(t, tt.isMemory, ok)

			all, err := repo.ListAll(context.Background())
			require.NoError(t, err)
			require.Len(t, all, tt.wantCount)

			_, err = repo.CreateRating(context.Background(), model.CreateRating{Plate: "AAA-1111", Score: 3, Comment: "ok"})
			require.NoError(t, err)
		})
	}
}

func TestNewRepository_Unsupported(t *testing.T) {
	t.Parallel()
	_, _, err := newRepository(context.Background(), &storage.Config{URL: "mysql://localhost"}, zap.NewNop())
	require.ErrorIs(t, err, storage.ErrUnsupportedURL)
}
