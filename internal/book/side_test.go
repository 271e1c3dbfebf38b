package book

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testOrder struct {
	id uint64
}

func (o testOrder) ID() uint64 { return o.id }

func ascending(a, b int64) bool  { return a < b }
func descending(a, b int64) bool { return a > b }

func TestSide_InsertAndBest(t *testing.T) {
	s := New[testOrder](ascending)

	s.Insert(101, testOrder{id: 1})
	s.Insert(100, testOrder{id: 2})
	s.Insert(102, testOrder{id: 3})

	level, ok := s.Best()
	require.True(t, ok)
	assert.EqualValues(t, 100, level.Price)
	assert.Equal(t, 3, s.Len())
}

func TestSide_InsertAppendsFIFOWithinLevel(t *testing.T) {
	s := New[testOrder](ascending)

	s.Insert(100, testOrder{id: 1})
	s.Insert(100, testOrder{id: 2})
	s.Insert(100, testOrder{id: 3})

	level, ok := s.Best()
	require.True(t, ok)
	require.Len(t, level.Orders, 3)
	assert.Equal(t, uint64(1), level.Orders[0].ID())
	assert.Equal(t, uint64(2), level.Orders[1].ID())
	assert.Equal(t, uint64(3), level.Orders[2].ID())
}

func TestSide_DescendingOrdering(t *testing.T) {
	s := New[testOrder](descending)

	s.Insert(100, testOrder{id: 1})
	s.Insert(102, testOrder{id: 2})
	s.Insert(101, testOrder{id: 3})

	level, ok := s.Best()
	require.True(t, ok)
	assert.EqualValues(t, 102, level.Price)
}

func TestSide_RemoveDropsEmptyLevel(t *testing.T) {
	s := New[testOrder](ascending)
	s.Insert(100, testOrder{id: 1})

	assert.True(t, s.Remove(1))
	assert.Equal(t, 0, s.Len())
	_, ok := s.Best()
	assert.False(t, ok)
}

func TestSide_RemoveFromMiddleOfQueue(t *testing.T) {
	s := New[testOrder](ascending)
	s.Insert(100, testOrder{id: 1})
	s.Insert(100, testOrder{id: 2})
	s.Insert(100, testOrder{id: 3})

	assert.True(t, s.Remove(2))

	level, ok := s.Best()
	require.True(t, ok)
	require.Len(t, level.Orders, 2)
	assert.Equal(t, uint64(1), level.Orders[0].ID())
	assert.Equal(t, uint64(3), level.Orders[1].ID())
}

func TestSide_RemoveUnknownOrderReturnsFalse(t *testing.T) {
	s := New[testOrder](ascending)
	assert.False(t, s.Remove(999))
}

func TestSide_ConsumeFrontPartial(t *testing.T) {
	s := New[testOrder](ascending)
	s.Insert(100, testOrder{id: 1})
	s.Insert(100, testOrder{id: 2})
	s.Insert(100, testOrder{id: 3})

	level, _ := s.BestMut()
	s.ConsumeFront(level, 2)

	require.Len(t, level.Orders, 1)
	assert.Equal(t, uint64(3), level.Orders[0].ID())
	assert.False(t, s.Remove(1))
	assert.False(t, s.Remove(2))
}

func TestSide_ConsumeFrontAllDeletesLevel(t *testing.T) {
	s := New[testOrder](ascending)
	s.Insert(100, testOrder{id: 1})
	s.Insert(100, testOrder{id: 2})

	level, _ := s.BestMut()
	s.ConsumeFront(level, 2)

	assert.Equal(t, 0, s.Len())
	_, ok := s.Best()
	assert.False(t, ok)
}

func TestSide_WalkStopsEarly(t *testing.T) {
	s := New[testOrder](ascending)
	s.Insert(100, testOrder{id: 1})
	s.Insert(101, testOrder{id: 2})
	s.Insert(102, testOrder{id: 3})

	var seen []int64
	s.Walk(func(level *Level[testOrder]) bool {
		seen = append(seen, level.Price)
		return len(seen) < 2
	})

	assert.Equal(t, []int64{100, 101}, seen)
}
