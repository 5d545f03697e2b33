package list

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObservableFanout(t *testing.T) {
	var o Observable
	first := &recordingObserver{}
	second := &recordingObserver{}
	o.RegisterObserver(first)
	o.RegisterObserver(second)

	o.NotifyChanged()
	o.NotifyRangeInserted(2, 3)
	o.NotifyRangeMoved(1, 4, 2)

	want := []event{
		{kind: "reset"},
		{kind: "inserted", start: 2, count: 3},
		{kind: "moved", from: 1, to: 4, count: 2},
	}
	assert.Equal(t, want, first.events)
	assert.Equal(t, want, second.events)
}

func TestObservableRegisterTwice(t *testing.T) {
	var o Observable
	obs := &recordingObserver{}
	o.RegisterObserver(obs)
	o.RegisterObserver(obs)

	o.NotifyChanged()
	assert.Len(t, obs.events, 1)
}

func TestObservableUnregister(t *testing.T) {
	var o Observable
	kept := &recordingObserver{}
	dropped := &recordingObserver{}
	o.RegisterObserver(kept)
	o.RegisterObserver(dropped)
	o.UnregisterObserver(dropped)

	o.NotifyRangeRemoved(0, 1)

	assert.Len(t, kept.events, 1)
	assert.Empty(t, dropped.events)
}
