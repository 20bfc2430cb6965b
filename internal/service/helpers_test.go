package service

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/midwaife/backend/internal/db"
	"github.com/midwaife/backend/internal/model"
	"github.com/midwaife/backend/internal/repository"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	database, err := db.Init("sqlite", path+"?_pragma=foreign_keys(1)", db.Options{MaxOpenConns: 1})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close(database) })

	require.NoError(t, db.RunMigrations(database.DB, "sqlite"))
	return database
}

func newMealService(t *testing.T, store *memoryStorage) (*MealService, repository.FoodRepository) {
	t.Helper()

	database := newTestDB(t)
	foods := repository.NewFoodRepository(database)
	if store == nil {
		return NewMealService(foods, repository.NewMealRepository(database), nil), foods
	}
	return NewMealService(foods, repository.NewMealRepository(database), store), foods
}

func createFood(t *testing.T, repo repository.FoodRepository, name string, nutrients ...string) *model.FoodRecord {
	t.Helper()

	food := &model.FoodRecord{Name: name, IsSafePregnancy: true}
	require.NoError(t, repo.Create(context.Background(), food, nutrients))
	return food
}

type memoryStorage struct {
	objects map[string][]byte
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{objects: map[string][]byte{}}
}

func (m *memoryStorage) Save(_ context.Context, key string, body io.Reader, _ string) error {
	var buf bytes.Buffer
	_, err := io.Copy(&buf, body)
	if err != nil {
		return err
	}
	m.objects[key] = buf.Bytes()
	return nil
}

func (m *memoryStorage) Delete(_ context.Context, key string) error {
	delete(m.objects, key)
	return nil
}

func (m *memoryStorage) PresignedURL(_ context.Context, key string) (string, error) {
	return "https://exports.test/" + key, nil
}
