package list

// DataObserver receives structural change notifications from an adapter.
// The five kinds mirror what incremental list hosts understand: a full
// reset, and changed/inserted/removed/moved ranges.
type DataObserver interface {
	OnChanged()
	OnRangeChanged(start, count int, payload any)
	OnRangeInserted(start, count int)
	OnRangeRemoved(start, count int)
	OnRangeMoved(from, to, count int)
}

// Observable is the observer registry adapters embed to emit change
// notifications. It performs no locking: registration, mutation, and
// notification are expected to happen on the single UI goroutine, matching
// the host view's own threading contract.
type Observable struct {
	observers []DataObserver
}

// RegisterObserver adds an observer. Registering the same observer twice is
// a no-op.
func (o *Observable) RegisterObserver(obs DataObserver) {
	for _, existing := range o.observers {
		if existing == obs {
			return
		}
	}
	o.observers = append(o.observers, obs)
}

// UnregisterObserver removes a previously registered observer.
func (o *Observable) UnregisterObserver(obs DataObserver) {
	for i, existing := range o.observers {
		if existing == obs {
			o.observers = append(o.observers[:i], o.observers[i+1:]...)
			return
		}
	}
}

// NotifyChanged signals a full reset: counts, ids, and content may all have
// changed.
func (o *Observable) NotifyChanged() {
	for _, obs := range o.observers {
		obs.OnChanged()
	}
}

// NotifyRangeChanged signals that count rows starting at start changed in
// place. payload is an optional hint forwarded verbatim.
func (o *Observable) NotifyRangeChanged(start, count int, payload any) {
	for _, obs := range o.observers {
		obs.OnRangeChanged(start, count, payload)
	}
}

// NotifyRangeInserted signals that count rows were inserted at start.
func (o *Observable) NotifyRangeInserted(start, count int) {
	for _, obs := range o.observers {
		obs.OnRangeInserted(start, count)
	}
}

// NotifyRangeRemoved signals that count rows were removed at start.
func (o *Observable) NotifyRangeRemoved(start, count int) {
	for _, obs := range o.observers {
		obs.OnRangeRemoved(start, count)
	}
}

// NotifyRangeMoved signals that count rows moved from from to to.
func (o *Observable) NotifyRangeMoved(from, to, count int) {
	for _, obs := range o.observers {
		obs.OnRangeMoved(from, to, count)
	}
}
