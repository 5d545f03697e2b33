package list

import (
	"fmt"
	"slices"

	"github.com/cespare/xxhash/v2"
)

// Delegate renders content rows for a SliceAdapter: it classifies items
// into view types, creates holders, and binds items into them.
type Delegate[T any] interface {
	ViewType(item T) ViewType
	CreateHolder(viewType ViewType) Holder
	Bind(holder Holder, item T)
}

// SearchDelegate is optionally implemented by delegates whose items carry
// filterable text.
type SearchDelegate[T any] interface {
	SearchText(item T) string
}

// SliceAdapter is an ItemAdapter backed by a plain slice. Every mutation
// emits the matching structural notification so hosts can re-render
// incrementally.
//
// Stable ids are derived by hashing the key function's output with xxhash;
// pass a nil key to disable stable ids.
type SliceAdapter[T any] struct {
	Observable

	items    []T
	delegate Delegate[T]
	key      func(item T) string
}

// NewSliceAdapter creates an empty adapter rendering through delegate.
// key derives a stable identity string per item; nil disables stable ids.
func NewSliceAdapter[T any](delegate Delegate[T], key func(item T) string) *SliceAdapter[T] {
	return &SliceAdapter[T]{delegate: delegate, key: key}
}

func (a *SliceAdapter[T]) Count() int {
	return len(a.items)
}

// Item returns the item at pos. pos must be in [0, Count()).
func (a *SliceAdapter[T]) Item(pos int) T {
	a.checkPos(pos)
	return a.items[pos]
}

// Items returns the backing slice. Callers must not mutate it.
func (a *SliceAdapter[T]) Items() []T {
	return a.items
}

func (a *SliceAdapter[T]) ViewType(pos int) ViewType {
	a.checkPos(pos)
	return a.delegate.ViewType(a.items[pos])
}

func (a *SliceAdapter[T]) HasStableIDs() bool {
	return a.key != nil
}

func (a *SliceAdapter[T]) StableID(pos int) int64 {
	a.checkPos(pos)
	if a.key == nil {
		return NoStableID
	}
	return int64(xxhash.Sum64String(a.key(a.items[pos])))
}

func (a *SliceAdapter[T]) CreateHolder(viewType ViewType) Holder {
	return a.delegate.CreateHolder(viewType)
}

func (a *SliceAdapter[T]) Bind(holder Holder, pos int) {
	a.checkPos(pos)
	a.delegate.Bind(holder, a.items[pos])
}

// SearchText implements Searcher when the delegate supports it; otherwise
// every row reports no searchable text.
func (a *SliceAdapter[T]) SearchText(pos int) string {
	a.checkPos(pos)
	if sd, ok := a.delegate.(SearchDelegate[T]); ok {
		return sd.SearchText(a.items[pos])
	}
	return ""
}

// ReplaceAll swaps the backing content wholesale and emits a full reset.
func (a *SliceAdapter[T]) ReplaceAll(items []T) {
	a.items = slices.Clone(items)
	a.NotifyChanged()
}

// Append adds items at the end and emits a range insertion.
func (a *SliceAdapter[T]) Append(items ...T) {
	if len(items) == 0 {
		return
	}
	start := len(a.items)
	a.items = append(a.items, items...)
	a.NotifyRangeInserted(start, len(items))
}

// InsertAt inserts items at pos and emits a range insertion. pos may equal
// Count() to append.
func (a *SliceAdapter[T]) InsertAt(pos int, items ...T) {
	if pos < 0 || pos > len(a.items) {
		panic(fmt.Sprintf("list: insert position %d out of range [0,%d]", pos, len(a.items)))
	}
	if len(items) == 0 {
		return
	}
	a.items = slices.Insert(a.items, pos, items...)
	a.NotifyRangeInserted(pos, len(items))
}

// RemoveRange removes count items starting at start and emits a range
// removal.
func (a *SliceAdapter[T]) RemoveRange(start, count int) {
	if start < 0 || count < 0 || start+count > len(a.items) {
		panic(fmt.Sprintf("list: remove range [%d,%d) out of range [0,%d)", start, start+count, len(a.items)))
	}
	if count == 0 {
		return
	}
	a.items = slices.Delete(a.items, start, start+count)
	a.NotifyRangeRemoved(start, count)
}

// Set replaces the item at pos in place and emits a range change.
func (a *SliceAdapter[T]) Set(pos int, item T) {
	a.checkPos(pos)
	a.items[pos] = item
	a.NotifyRangeChanged(pos, 1, nil)
}

// Move relocates count items from from to to and emits a range move.
func (a *SliceAdapter[T]) Move(from, to, count int) {
	if from < 0 || count <= 0 || from+count > len(a.items) {
		panic(fmt.Sprintf("list: move source [%d,%d) out of range [0,%d)", from, from+count, len(a.items)))
	}
	if to < 0 || to+count > len(a.items) {
		panic(fmt.Sprintf("list: move target [%d,%d) out of range [0,%d)", to, to+count, len(a.items)))
	}
	if from == to {
		return
	}
	moved := slices.Clone(a.items[from : from+count])
	rest := slices.Delete(slices.Clone(a.items), from, from+count)
	a.items = slices.Insert(rest, to, moved...)
	a.NotifyRangeMoved(from, to, count)
}

func (a *SliceAdapter[T]) checkPos(pos int) {
	if pos < 0 || pos >= len(a.items) {
		panic(fmt.Sprintf("list: position %d out of range [0,%d)", pos, len(a.items)))
	}
}
