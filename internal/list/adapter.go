// Package list provides a virtualized-list adapter framework for terminal
// UIs: a host-facing Adapter contract, observable change notifications, a
// slice-backed adapter, and an infinite-scroll decorator that adds
// loading/error header and footer rows on top of any wrapped adapter.
package list

// ViewType classifies which renderer a row uses. A wrapped adapter may use
// any values except the reserved decoration types below.
type ViewType int

// Reserved view types used by the infinite-scroll decorator for its header
// and footer rows. Wrapped adapters must not use these values.
const (
	HeaderViewType ViewType = 20
	FooterViewType ViewType = 21
)

// NoStableID is returned by StableID when an adapter has no stable ids.
const NoStableID int64 = -1

// Holder renders one bound row. Holders are created once per view type by
// the host view and recycled across binds.
type Holder interface {
	View(width int, selected bool) string
}

// Clickable is implemented by holders whose row reacts to activation
// (enter/click on the selected row).
type Clickable interface {
	Click()
}

// Spinning is implemented by holders that animate a spinner. The host view
// drives the frame from its tick.
type Spinning interface {
	SetSpinnerFrame(frame int)
}

// Adapter is the contract a host list view consumes: row count, per-row
// classification and identity, holder creation and binding, and structural
// change notifications.
//
// All methods are single-threaded; see the package concurrency note on
// Observable.
type Adapter interface {
	Count() int
	ViewType(pos int) ViewType
	StableID(pos int) int64
	HasStableIDs() bool
	CreateHolder(viewType ViewType) Holder
	Bind(holder Holder, pos int)
	RegisterObserver(obs DataObserver)
	UnregisterObserver(obs DataObserver)
}

// ItemAdapter is an Adapter over typed items with wholesale content
// replacement. This is the contract the infinite-scroll decorator wraps.
type ItemAdapter[T any] interface {
	Adapter
	Item(pos int) T
	ReplaceAll(items []T)
}

// Searcher is optionally implemented by adapters whose rows have filterable
// text. Rows with no searchable text (e.g. decoration rows) return "".
type Searcher interface {
	SearchText(pos int) string
}
