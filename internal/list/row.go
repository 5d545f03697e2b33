package list

// RowKind tags what a decorated position resolves to.
type RowKind int

const (
	// ContentRow is a row backed by the wrapped adapter.
	ContentRow RowKind = iota
	// HeaderRow is the decorator's leading row.
	HeaderRow
	// FooterRow is the decorator's trailing row.
	FooterRow
)

func (k RowKind) String() string {
	switch k {
	case ContentRow:
		return "content"
	case HeaderRow:
		return "header"
	case FooterRow:
		return "footer"
	default:
		return "unknown"
	}
}

// Row is the resolved identity of one decorated position. Inner is the
// position in the wrapped adapter and is only meaningful for ContentRow;
// it is -1 for decoration rows.
type Row struct {
	Kind  RowKind
	Inner int
}
