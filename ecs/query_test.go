package ecs_test

import (
	"testing"

	"github.com/plus3/zapper/ecs"
	"github.com/stretchr/testify/assert"
)

func TestQuery(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	storage.Spawn(Position{X: 1, Y: 2}, Velocity{DX: 0.5, DY: 0.5})
	storage.Spawn(Position{X: 3, Y: 4}, Velocity{DX: 1.0, DY: 1.0})
	storage.Spawn(Position{X: 5, Y: 6}, Velocity{DX: 1.5, DY: 1.5}, Health{Current: 100, Max: 100})
	storage.Spawn(Position{X: 7, Y: 8})

	query := ecs.NewQuery[struct {
		*Position
		*Velocity
	}](storage)

	t.Run("execute builds cache", func(t *testing.T) {
		query.Execute()
		assert.Equal(t, 3, query.Len())
	})

	t.Run("iter executes lazily", func(t *testing.T) {
		fresh := ecs.NewQuery[struct{ *Position }](storage)
		count := 0
		for range fresh.Iter() {
			count++
		}
		assert.Equal(t, 4, count)
	})

	t.Run("snapshot is stable until executed again", func(t *testing.T) {
		query.Execute()
		storage.Spawn(Position{X: 9, Y: 9}, Velocity{})
		assert.Equal(t, 3, query.Len())

		query.Execute()
		assert.Equal(t, 4, query.Len())
	})

	t.Run("new archetypes are picked up", func(t *testing.T) {
		storage.Spawn(Position{}, Velocity{}, Name{Value: "late"})
		query.Execute()
		assert.Equal(t, 5, query.Len())
	})

	t.Run("values share storage pointers", func(t *testing.T) {
		query.Execute()
		for item := range query.Values() {
			item.Position.X = 0
		}
		for item := range ecs.NewView[struct {
			*Position
			*Velocity
		}](storage).Values() {
			assert.Equal(t, float32(0), item.Position.X)
		}
	})
}

func TestQueryIterOrderMatchesSpawnOrder(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	var spawned []ecs.EntityId
	for i := 0; i < 100; i++ {
		spawned = append(spawned, storage.Spawn(Score(i)))
	}

	query := ecs.NewQuery[struct{ *Score }](storage)

	var visited []ecs.EntityId
	for id := range query.Iter() {
		visited = append(visited, id)
	}
	assert.Equal(t, spawned, visited)
}
