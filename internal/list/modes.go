package list

// HeaderMode is the state of the decorator's leading row.
type HeaderMode int

const (
	// HeaderHidden removes the header row entirely.
	HeaderHidden HeaderMode = iota
	// HeaderProgress shows a spinner while a refresh is in flight.
	HeaderProgress
	// HeaderError shows a clickable retry row after a failed refresh.
	HeaderError
	// HeaderNewItems announces items fetched but not yet shown, clickable
	// to reveal them.
	HeaderNewItems
)

func (m HeaderMode) String() string {
	switch m {
	case HeaderHidden:
		return "hidden"
	case HeaderProgress:
		return "progress"
	case HeaderError:
		return "error"
	case HeaderNewItems:
		return "new-items"
	default:
		return "unknown"
	}
}

// FooterMode is the state of the decorator's trailing row.
type FooterMode int

const (
	// FooterHidden removes the footer row entirely.
	FooterHidden FooterMode = iota
	// FooterProgress shows a spinner while more items load.
	FooterProgress
	// FooterError shows a clickable retry row after a failed load.
	FooterError
)

func (m FooterMode) String() string {
	switch m {
	case FooterHidden:
		return "hidden"
	case FooterProgress:
		return "progress"
	case FooterError:
		return "error"
	default:
		return "unknown"
	}
}
