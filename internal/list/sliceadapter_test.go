package list

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSliceAdapterMutationsEmitEvents(t *testing.T) {
	adapter := NewSliceAdapter[string](stringDelegate{}, func(s string) string { return s })
	obs := &recordingObserver{}
	adapter.RegisterObserver(obs)

	adapter.ReplaceAll([]string{"a", "b", "c"})
	adapter.Append("d", "e")
	adapter.InsertAt(1, "x")
	adapter.RemoveRange(0, 2)
	adapter.Set(0, "y")
	adapter.Move(0, 3, 1)

	want := []event{
		{kind: "reset"},
		{kind: "inserted", start: 3, count: 2},
		{kind: "inserted", start: 1, count: 1},
		{kind: "removed", start: 0, count: 2},
		{kind: "changed", start: 0, count: 1},
		{kind: "moved", from: 0, to: 3, count: 1},
	}
	assert.Equal(t, want, obs.events)
	assert.Equal(t, []string{"c", "d", "e", "y"}, adapter.Items())
}

func TestSliceAdapterNoopMutationsStaySilent(t *testing.T) {
	adapter := NewSliceAdapter[string](stringDelegate{}, nil)
	adapter.ReplaceAll([]string{"a", "b"})
	obs := &recordingObserver{}
	adapter.RegisterObserver(obs)

	adapter.Append()
	adapter.InsertAt(1)
	adapter.RemoveRange(1, 0)
	adapter.Move(1, 1, 1)

	assert.Empty(t, obs.events)
}

func TestSliceAdapterMoveReordersItems(t *testing.T) {
	tests := []struct {
		name     string
		from, to int
		count    int
		want     []string
	}{
		{name: "single forward", from: 0, to: 3, count: 1, want: []string{"b", "c", "d", "a", "e"}},
		{name: "single backward", from: 4, to: 0, count: 1, want: []string{"e", "a", "b", "c", "d"}},
		{name: "pair forward", from: 0, to: 2, count: 2, want: []string{"c", "d", "a", "b", "e"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adapter := NewSliceAdapter[string](stringDelegate{}, nil)
			adapter.ReplaceAll([]string{"a", "b", "c", "d", "e"})

			adapter.Move(tt.from, tt.to, tt.count)
			assert.Equal(t, tt.want, adapter.Items())
		})
	}
}

func TestSliceAdapterBoundsPanics(t *testing.T) {
	adapter := NewSliceAdapter[string](stringDelegate{}, nil)
	adapter.ReplaceAll([]string{"a", "b"})

	assert.Panics(t, func() { adapter.Item(-1) })
	assert.Panics(t, func() { adapter.Item(2) })
	assert.Panics(t, func() { adapter.InsertAt(3, "x") })
	assert.Panics(t, func() { adapter.RemoveRange(1, 2) })
	assert.Panics(t, func() { adapter.Set(5, "x") })
	assert.Panics(t, func() { adapter.Move(0, 2, 1) })
}

func TestSliceAdapterStableIDs(t *testing.T) {
	adapter := NewSliceAdapter[string](stringDelegate{}, func(s string) string { return s })
	adapter.ReplaceAll([]string{"alpha", "beta"})

	require.True(t, adapter.HasStableIDs())
	alphaID := adapter.StableID(0)
	betaID := adapter.StableID(1)
	assert.NotEqual(t, alphaID, betaID)

	// Identity follows the item across reordering.
	adapter.Move(0, 1, 1)
	assert.Equal(t, betaID, adapter.StableID(0))
	assert.Equal(t, alphaID, adapter.StableID(1))
}

func TestSliceAdapterWithoutKeyHasNoStableIDs(t *testing.T) {
	adapter := NewSliceAdapter[string](stringDelegate{}, nil)
	adapter.ReplaceAll([]string{"a"})

	assert.False(t, adapter.HasStableIDs())
	assert.Equal(t, NoStableID, adapter.StableID(0))
}

func TestSliceAdapterDelegateBinding(t *testing.T) {
	adapter := NewSliceAdapter[string](stringDelegate{}, nil)
	adapter.ReplaceAll([]string{"hello"})

	holder := adapter.CreateHolder(0)
	adapter.Bind(holder, 0)
	assert.Equal(t, "hello", holder.View(80, false))
	assert.Equal(t, "hello", adapter.SearchText(0))
}
