package list

import "fmt"

// InfiniteScrollAdapter decorates a wrapped ItemAdapter with an optional
// header row (refresh progress, refresh error, new items available) and an
// optional footer row (load-more progress, load-more error). Content rows
// delegate to the wrapped adapter with positions shifted past the header,
// and every structural notification from the wrapped adapter is re-emitted
// shifted the same way.
//
// The decorator wraps exactly one adapter for its own lifetime and is
// single-threaded like the rest of the package.
type InfiniteScrollAdapter[T any] struct {
	Observable

	inner      ItemAdapter[T]
	headerMode HeaderMode
	footerMode FooterMode

	// Retry handlers are resolved at click time through proxy closures
	// handed to the holders, so registering a handler after an error row
	// is already rendered still takes effect on the next click.
	headerRetry func()
	footerRetry func()

	newItems int
}

// Wrap decorates inner. Header and footer start hidden.
func Wrap[T any](inner ItemAdapter[T]) *InfiniteScrollAdapter[T] {
	a := &InfiniteScrollAdapter[T]{inner: inner}
	inner.RegisterObserver(&forwarder[T]{a: a})
	return a
}

// forwarder re-emits the wrapped adapter's notifications shifted by the
// header offset, read at forwarding time rather than cached.
type forwarder[T any] struct {
	a *InfiniteScrollAdapter[T]
}

func (f *forwarder[T]) OnChanged() {
	f.a.NotifyChanged()
}

func (f *forwarder[T]) OnRangeChanged(start, count int, payload any) {
	f.a.NotifyRangeChanged(start+f.a.headerOffset(), count, payload)
}

func (f *forwarder[T]) OnRangeInserted(start, count int) {
	f.a.NotifyRangeInserted(start+f.a.headerOffset(), count)
}

func (f *forwarder[T]) OnRangeRemoved(start, count int) {
	f.a.NotifyRangeRemoved(start+f.a.headerOffset(), count)
}

// OnRangeMoved is forwarded as a change over the span covering both
// endpoints. That over-invalidates the rows between them, which only costs
// extra re-binding; hosts with native move support could forward the move
// directly instead.
func (f *forwarder[T]) OnRangeMoved(from, to, count int) {
	off := f.a.headerOffset()
	lo, hi := from, to
	if hi < lo {
		lo, hi = hi, lo
	}
	f.a.NotifyRangeChanged(lo+off, hi-lo+count, nil)
}

// SetHeaderMode switches the header row state. Setting the current mode is
// a no-op; any actual change issues a full invalidation.
func (a *InfiniteScrollAdapter[T]) SetHeaderMode(mode HeaderMode) {
	if a.headerMode == mode {
		return
	}
	a.headerMode = mode
	a.NotifyChanged()
}

// HeaderMode returns the active header state.
func (a *InfiniteScrollAdapter[T]) HeaderMode() HeaderMode {
	return a.headerMode
}

// SetFooterMode switches the footer row state. Setting the current mode is
// a no-op; any actual change issues a full invalidation.
func (a *InfiniteScrollAdapter[T]) SetFooterMode(mode FooterMode) {
	if a.footerMode == mode {
		return
	}
	a.footerMode = mode
	a.NotifyChanged()
}

// FooterMode returns the active footer state.
func (a *InfiniteScrollAdapter[T]) FooterMode() FooterMode {
	return a.footerMode
}

// OnHeaderRetry registers the handler invoked when the header row is
// clicked in its error or new-items state. May be registered or replaced
// after the row is already rendered.
func (a *InfiniteScrollAdapter[T]) OnHeaderRetry(fn func()) {
	a.headerRetry = fn
}

// OnFooterRetry registers the handler invoked when the footer row is
// clicked in its error state.
func (a *InfiniteScrollAdapter[T]) OnFooterRetry(fn func()) {
	a.footerRetry = fn
}

// SetNewItemsCount updates the count shown by the new-items header row.
func (a *InfiniteScrollAdapter[T]) SetNewItemsCount(n int) {
	if a.newItems == n {
		return
	}
	a.newItems = n
	if a.headerMode == HeaderNewItems {
		a.NotifyRangeChanged(0, 1, nil)
	}
}

// Accept replaces the wrapped adapter's content wholesale. The resulting
// reset notification is forwarded like any other.
func (a *InfiniteScrollAdapter[T]) Accept(items []T) {
	a.inner.ReplaceAll(items)
}

// Inner returns the wrapped adapter.
func (a *InfiniteScrollAdapter[T]) Inner() ItemAdapter[T] {
	return a.inner
}

// RowAt resolves a decorated position into header, footer, or a content
// row with its inner position. Panics when pos is out of range.
func (a *InfiniteScrollAdapter[T]) RowAt(pos int) Row {
	if pos < 0 || pos >= a.Count() {
		panic(fmt.Sprintf("list: position %d out of range [0,%d)", pos, a.Count()))
	}
	switch {
	case a.isHeaderRow(pos):
		return Row{Kind: HeaderRow, Inner: -1}
	case a.isFooterRow(pos):
		return Row{Kind: FooterRow, Inner: -1}
	default:
		return Row{Kind: ContentRow, Inner: pos - a.headerOffset()}
	}
}

// IsDecorationRow reports whether pos is the header or footer row.
func (a *InfiniteScrollAdapter[T]) IsDecorationRow(pos int) bool {
	return a.RowAt(pos).Kind != ContentRow
}

func (a *InfiniteScrollAdapter[T]) Count() int {
	count := a.inner.Count() + a.headerOffset()
	if a.footerVisible() {
		count++
	}
	return count
}

// Item returns the wrapped item behind pos. Panics when pos is a
// decoration row: decoration rows have no item and querying one indicates
// a caller bug.
func (a *InfiniteScrollAdapter[T]) Item(pos int) T {
	row := a.RowAt(pos)
	if row.Kind != ContentRow {
		panic(fmt.Sprintf("list: position %d is a %s row, not a wrapped item", pos, row.Kind))
	}
	return a.inner.Item(row.Inner)
}

// ViewType returns the reserved decoration type for header/footer rows and
// delegates otherwise. Panics when the wrapped adapter hands back a
// reserved type, which means the wrapped adapter broke the view-type
// namespace contract.
func (a *InfiniteScrollAdapter[T]) ViewType(pos int) ViewType {
	switch row := a.RowAt(pos); row.Kind {
	case HeaderRow:
		return HeaderViewType
	case FooterRow:
		return FooterViewType
	default:
		vt := a.inner.ViewType(row.Inner)
		if vt == HeaderViewType || vt == FooterViewType {
			panic(fmt.Sprintf("list: wrapped adapter view type %d collides with a reserved decoration type", vt))
		}
		return vt
	}
}

func (a *InfiniteScrollAdapter[T]) HasStableIDs() bool {
	return a.inner.HasStableIDs()
}

// StableID uses the reserved view-type constants as the singleton ids of
// the header and footer rows, which keeps them collision-free against the
// wrapped adapter's view-type namespace.
func (a *InfiniteScrollAdapter[T]) StableID(pos int) int64 {
	switch row := a.RowAt(pos); row.Kind {
	case HeaderRow:
		return int64(HeaderViewType)
	case FooterRow:
		return int64(FooterViewType)
	default:
		return a.inner.StableID(row.Inner)
	}
}

func (a *InfiniteScrollAdapter[T]) CreateHolder(viewType ViewType) Holder {
	switch viewType {
	case HeaderViewType:
		return newHeaderHolder(func() {
			if fn := a.headerRetry; fn != nil {
				fn()
			}
		})
	case FooterViewType:
		return newFooterHolder(func() {
			if fn := a.footerRetry; fn != nil {
				fn()
			}
		})
	default:
		return a.inner.CreateHolder(viewType)
	}
}

func (a *InfiniteScrollAdapter[T]) Bind(holder Holder, pos int) {
	switch row := a.RowAt(pos); row.Kind {
	case HeaderRow:
		holder.(*HeaderHolder).bind(a.headerMode, a.newItems)
	case FooterRow:
		holder.(*FooterHolder).bind(a.footerMode)
	default:
		a.inner.Bind(holder, row.Inner)
	}
}

// SearchText implements Searcher. Decoration rows have no searchable text;
// content rows delegate when the wrapped adapter is a Searcher.
func (a *InfiniteScrollAdapter[T]) SearchText(pos int) string {
	row := a.RowAt(pos)
	if row.Kind != ContentRow {
		return ""
	}
	if s, ok := a.inner.(Searcher); ok {
		return s.SearchText(row.Inner)
	}
	return ""
}

func (a *InfiniteScrollAdapter[T]) headerOffset() int {
	if a.headerMode != HeaderHidden {
		return 1
	}
	return 0
}

func (a *InfiniteScrollAdapter[T]) footerVisible() bool {
	return a.footerMode != FooterHidden
}

func (a *InfiniteScrollAdapter[T]) isHeaderRow(pos int) bool {
	return a.headerMode != HeaderHidden && pos == 0
}

// The header check runs first, so with an empty wrapped list and both
// decorations visible position 0 is the header and position 1 the footer.
func (a *InfiniteScrollAdapter[T]) isFooterRow(pos int) bool {
	return a.footerVisible() && pos == a.Count()-1 && !a.isHeaderRow(pos)
}
