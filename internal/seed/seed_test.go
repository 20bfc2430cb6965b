package seed

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/midwaife/backend/internal/db"
	"github.com/midwaife/backend/internal/model"
	"github.com/midwaife/backend/internal/repository"
	"github.com/midwaife/backend/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSeeder(t *testing.T) (*Seeder, *service.MealService) {
	t.Helper()

	database, err := db.Init("sqlite", filepath.Join(t.TempDir(), "seed.db"), db.Options{MaxOpenConns: 1})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close(database) })
	require.NoError(t, db.RunMigrations(database.DB, "sqlite"))

	meals := service.NewMealService(repository.NewFoodRepository(database), repository.NewMealRepository(database), nil)
	return NewSeeder(
		meals,
		service.NewMilestoneService(repository.NewMilestoneRepository(database)),
		service.NewUserService(repository.NewUserRepository(database)),
	), meals
}

func TestLoad(t *testing.T) {
	file, err := LoadFile(filepath.Join("testdata", "catalog.yaml"))
	require.NoError(t, err)
	require.Len(t, file.Foods, 3)
	assert.Equal(t, []string{"iron", "calcium", "folate"}, file.Foods[1].Nutrients)
	require.Len(t, file.Milestones, 1)
	assert.Equal(t, 12, file.Milestones[0].Week)
	require.Len(t, file.Users, 1)

	t.Run("unknown nutrient", func(t *testing.T) {
		_, err := Load(strings.NewReader("foods:\n  - name: Kale\n    nutrients: [iodine]\n"))
		assert.ErrorContains(t, err, `unknown nutrient "iodine"`)
	})

	t.Run("unknown field", func(t *testing.T) {
		_, err := Load(strings.NewReader("foods:\n  - name: Kale\n    colour: green\n"))
		assert.Error(t, err)
	})

	t.Run("empty file", func(t *testing.T) {
		file, err := Load(strings.NewReader(""))
		require.NoError(t, err)
		assert.Empty(t, file.Foods)
	})
}

func TestApply(t *testing.T) {
	ctx := context.Background()
	seeder, meals := newSeeder(t)

	file, err := LoadFile(filepath.Join("testdata", "catalog.yaml"))
	require.NoError(t, err)

	res, err := seeder.Apply(ctx, file)
	require.NoError(t, err)
	assert.Equal(t, &Result{Foods: 3, Milestones: 1, Users: 1}, res)

	foods, err := meals.SearchFoods(ctx, "tuna")
	require.NoError(t, err)
	require.Len(t, foods, 1)
	assert.True(t, foods[0].HasWarnings)
	assert.True(t, foods[0].ContainsMicronutrients.Protein)
	assert.Equal(t, model.PresencePresent, foods[0].ContainsMicronutrients.Omega3)
	assert.Equal(t, model.PresenceAbsent, foods[0].ContainsMicronutrients.Fiber)

	again, err := seeder.Apply(ctx, file)
	require.NoError(t, err)
	assert.Equal(t, 0, again.Foods)
	assert.Equal(t, 4, again.Skipped)
	assert.Equal(t, 1, again.Milestones)
}
