package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"github.com/drake/feedline/internal/list"
	"github.com/drake/feedline/internal/tui/styles"
)

// Layout constants for the list view
const (
	// Border adds 1 char on each side (left+right for width, top+bottom for height)
	BorderWidth  = 2
	BorderHeight = 2

	// Scroll indicators ("↑ more" and "↓ more") each take 1 line
	ScrollIndicatorLines = 2

	// Rows from the bottom at which NearBottomMsg fires
	nearBottomThreshold = 3
)

// ListView is a scrollable window over any list.Adapter. It renders rows
// through recycled holders (one per view type), keeps a rendered-line
// cache keyed by stable id, and listens to the adapter's change
// notifications to evict exactly the invalidated rows and keep the cursor
// on the same item across mutations.
type ListView struct {
	adapter list.Adapter

	// Selection
	cursor     int
	offset     int
	maxVisible int

	// Dimensions
	width   int
	height  int
	focused bool

	title string

	// One recycled holder per view type
	holders map[list.ViewType]list.Holder

	// Rendered lines keyed by stable id; disabled when the adapter has no
	// stable ids. Animated (Spinning) holders and the selected row bypass
	// the cache.
	lineCache map[int64]string

	spinnerFrame int

	// Filter state
	filterActive bool
	filterInput  textinput.Model
	filterQuery  string
	filteredIdx  []int // adapter positions passing the filter

	keys ListKeyMap
}

// NewListView creates a view over adapter and subscribes to its change
// notifications.
func NewListView(title string, adapter list.Adapter) *ListView {
	ti := textinput.New()
	ti.Placeholder = "type to filter..."
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle

	v := &ListView{
		adapter:     adapter,
		title:       title,
		holders:     make(map[list.ViewType]list.Holder),
		lineCache:   make(map[int64]string),
		filterInput: ti,
		keys:        DefaultListKeyMap(),
	}
	adapter.RegisterObserver(v)
	return v
}

func (v *ListView) Init() tea.Cmd {
	return nil
}

func (v *ListView) Update(msg tea.Msg) (*ListView, tea.Cmd) {
	if !v.focused {
		return v, nil
	}

	// Typing mode: route keys into the filter input
	if v.filterActive && v.filterInput.Focused() {
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch {
			case key.Matches(keyMsg, v.keys.Escape):
				v.clearFilter()
				return v, nil
			case key.Matches(keyMsg, v.keys.Enter):
				v.filterInput.Blur()
				if query := v.filterQuery; query != "" {
					return v, func() tea.Msg {
						return FilterAcceptedMsg{Query: query}
					}
				}
				return v, nil
			case keyMsg.String() == "backspace" && v.filterInput.Value() == "":
				v.clearFilter()
				return v, nil
			}
		}

		var cmd tea.Cmd
		v.filterInput, cmd = v.filterInput.Update(msg)
		v.applyFilter()
		return v, cmd
	}

	// Navigation mode with an accepted filter
	if v.filterActive {
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch {
			case key.Matches(keyMsg, v.keys.Escape):
				v.clearFilter()
				return v, nil
			case key.Matches(keyMsg, v.keys.Filter):
				v.filterInput.Focus()
				return v, nil
			}
		}
	}

	count := v.visibleCount()

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil
	}

	if key.Matches(keyMsg, v.keys.Filter) && !v.filterActive {
		if _, searchable := v.adapter.(list.Searcher); searchable {
			v.filterActive = true
			v.filterInput.Focus()
			v.recalcMaxVisible()
		}
		return v, nil
	}

	if count == 0 {
		return v, nil
	}

	switch {
	case key.Matches(keyMsg, v.keys.Down):
		if v.cursor < count-1 {
			v.cursor++
			v.ensureVisible()
		}
		return v, v.maybeNearBottom()
	case key.Matches(keyMsg, v.keys.Up):
		if v.cursor > 0 {
			v.cursor--
			v.ensureVisible()
		}
	case key.Matches(keyMsg, v.keys.Home):
		v.cursor = 0
		v.offset = 0
	case key.Matches(keyMsg, v.keys.End):
		v.cursor = count - 1
		v.ensureVisible()
		return v, v.maybeNearBottom()
	case key.Matches(keyMsg, v.keys.HalfDown):
		v.cursor += v.maxVisible / 2
		if v.cursor >= count {
			v.cursor = count - 1
		}
		v.ensureVisible()
		return v, v.maybeNearBottom()
	case key.Matches(keyMsg, v.keys.HalfUp):
		v.cursor -= v.maxVisible / 2
		if v.cursor < 0 {
			v.cursor = 0
		}
		v.ensureVisible()
	case key.Matches(keyMsg, v.keys.Enter):
		return v, v.activateSelected()
	}

	return v, nil
}

// activateSelected binds the selected row's holder and forwards the click
// when the holder is clickable, then reports the activation to the app.
func (v *ListView) activateSelected() tea.Cmd {
	count := v.visibleCount()
	if count == 0 || v.cursor >= count {
		return nil
	}

	pos := v.mapIndex(v.cursor)
	holder := v.holderFor(pos)
	v.adapter.Bind(holder, pos)
	if c, ok := holder.(list.Clickable); ok {
		c.Click()
	}

	return func() tea.Msg {
		return RowActivatedMsg{Pos: pos}
	}
}

func (v *ListView) maybeNearBottom() tea.Cmd {
	if v.filterActive {
		return nil
	}
	if v.cursor < v.visibleCount()-1-nearBottomThreshold {
		return nil
	}
	return func() tea.Msg {
		return NearBottomMsg{}
	}
}

func (v *ListView) View() string {
	style := styles.InactiveBorder
	if v.focused {
		style = styles.ActiveBorder
	}

	content := v.renderContent()

	frameW, frameH := style.GetFrameSize()
	return style.
		Width(v.width - frameW).
		Height(v.height - frameH).
		Render(content)
}

func (v *ListView) SetSize(width, height int) {
	if width != v.width {
		// Cached lines are rendered at a fixed width
		clear(v.lineCache)
	}
	v.width = width
	v.height = height
	v.recalcMaxVisible()
	v.ensureVisible()
}

func (v *ListView) SetFocused(focused bool) {
	v.focused = focused
}

func (v *ListView) IsFocused() bool {
	return v.focused
}

func (v *ListView) SetTitle(title string) {
	v.title = title
}

// SetSpinnerFrame advances the animation frame used by Spinning holders.
func (v *ListView) SetSpinnerFrame(frame int) {
	v.spinnerFrame = frame
}

// SelectedPos returns the adapter position under the cursor, or -1 when
// the list is empty.
func (v *ListView) SelectedPos() int {
	if v.visibleCount() == 0 || v.cursor >= v.visibleCount() {
		return -1
	}
	return v.mapIndex(v.cursor)
}

// Select moves the cursor to the given adapter position when visible.
func (v *ListView) Select(pos int) {
	for i := 0; i < v.visibleCount(); i++ {
		if v.mapIndex(i) == pos {
			v.cursor = i
			v.ensureVisible()
			return
		}
	}
}

func (v *ListView) IsFilterTyping() bool {
	return v.filterActive && v.filterInput.Focused()
}

// === list.DataObserver ===

func (v *ListView) OnChanged() {
	clear(v.lineCache)
	v.refreshFilter()
	v.clampCursor()
}

func (v *ListView) OnRangeChanged(start, count int, payload any) {
	v.evictRange(start, count)
	v.refreshFilter()
}

func (v *ListView) OnRangeInserted(start, count int) {
	// Keep the same item selected by shifting the cursor past the insert
	if !v.filterActive && start <= v.cursor {
		v.cursor += count
	}
	v.refreshFilter()
	v.clampCursor()
	v.ensureVisible()
}

func (v *ListView) OnRangeRemoved(start, count int) {
	if !v.filterActive {
		switch {
		case v.cursor >= start+count:
			v.cursor -= count
		case v.cursor >= start:
			v.cursor = start
		}
	}
	v.refreshFilter()
	v.clampCursor()
	v.ensureVisible()
}

func (v *ListView) OnRangeMoved(from, to, count int) {
	lo, hi := from, to
	if hi < lo {
		lo, hi = hi, lo
	}
	v.evictRange(lo, hi-lo+count)
	v.refreshFilter()
	v.clampCursor()
}

// evictRange drops the cached lines for the rows at [start, start+count),
// resolved to stable ids at the positions' current content.
func (v *ListView) evictRange(start, count int) {
	if !v.adapter.HasStableIDs() {
		return
	}
	end := start + count
	if end > v.adapter.Count() {
		end = v.adapter.Count()
	}
	for pos := start; pos < end; pos++ {
		if pos < 0 {
			continue
		}
		delete(v.lineCache, v.adapter.StableID(pos))
	}
}

func (v *ListView) clampCursor() {
	count := v.visibleCount()
	if count == 0 {
		v.cursor = 0
		v.offset = 0
		return
	}
	if v.cursor >= count {
		v.cursor = count - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
}

// === Internal ===

func (v *ListView) recalcMaxVisible() {
	interiorHeight := v.height - BorderHeight
	v.maxVisible = interiorHeight - ScrollIndicatorLines - 1 // -1 for title
	if v.filterActive {
		v.maxVisible--
	}
	if v.maxVisible < 1 {
		v.maxVisible = 1
	}
}

func (v *ListView) ensureVisible() {
	if v.maxVisible <= 0 {
		return
	}
	if v.cursor < v.offset {
		v.offset = v.cursor
	}
	if v.cursor >= v.offset+v.maxVisible {
		v.offset = v.cursor - v.maxVisible + 1
	}
}

func (v *ListView) clearFilter() {
	v.filterActive = false
	v.filterQuery = ""
	v.filteredIdx = nil
	v.filterInput.SetValue("")
	v.filterInput.Blur()
	v.recalcMaxVisible()
}

// refreshFilter re-applies the active filter after a data change.
func (v *ListView) refreshFilter() {
	if v.filterActive && v.filterQuery != "" {
		v.filterBy(v.filterQuery)
	}
}

func (v *ListView) applyFilter() {
	query := v.filterInput.Value()
	v.filterQuery = query

	if query == "" {
		v.filteredIdx = nil
		return
	}
	v.filterBy(query)
	v.cursor = 0
	v.offset = 0
}

// filterBy matches searchable rows against query. Rows with no searchable
// text (decoration rows) stay visible so loading/error chrome survives
// filtering.
func (v *ListView) filterBy(query string) {
	searcher, ok := v.adapter.(list.Searcher)
	if !ok {
		v.filteredIdx = nil
		return
	}

	count := v.adapter.Count()
	texts := make([]string, 0, count)
	positions := make([]int, 0, count)
	chrome := make(map[int]bool)
	for pos := 0; pos < count; pos++ {
		text := searcher.SearchText(pos)
		if text == "" {
			chrome[pos] = true
			continue
		}
		texts = append(texts, strings.ToLower(text))
		positions = append(positions, pos)
	}

	matched := make(map[int]bool)
	for _, m := range fuzzy.Find(strings.ToLower(query), texts) {
		matched[positions[m.Index]] = true
	}

	v.filteredIdx = v.filteredIdx[:0]
	for pos := 0; pos < count; pos++ {
		if chrome[pos] || matched[pos] {
			v.filteredIdx = append(v.filteredIdx, pos)
		}
	}
}

func (v *ListView) visibleCount() int {
	if v.filterActive && v.filterQuery != "" {
		return len(v.filteredIdx)
	}
	return v.adapter.Count()
}

func (v *ListView) mapIndex(i int) int {
	if v.filterActive && v.filterQuery != "" && i < len(v.filteredIdx) {
		return v.filteredIdx[i]
	}
	return i
}

func (v *ListView) holderFor(pos int) list.Holder {
	vt := v.adapter.ViewType(pos)
	holder, ok := v.holders[vt]
	if !ok {
		holder = v.adapter.CreateHolder(vt)
		v.holders[vt] = holder
	}
	return holder
}

func (v *ListView) renderRow(pos int, selected bool, width int) string {
	holder := v.holderFor(pos)

	if sp, ok := holder.(list.Spinning); ok {
		sp.SetSpinnerFrame(v.spinnerFrame)
		v.adapter.Bind(holder, pos)
		return holder.View(width, selected)
	}

	if v.adapter.HasStableIDs() && !selected {
		id := v.adapter.StableID(pos)
		if line, ok := v.lineCache[id]; ok {
			return line
		}
		v.adapter.Bind(holder, pos)
		line := holder.View(width, selected)
		v.lineCache[id] = line
		return line
	}

	v.adapter.Bind(holder, pos)
	return holder.View(width, selected)
}

func (v *ListView) renderContent() string {
	itemWidth := v.width - BorderWidth
	if itemWidth < 10 {
		itemWidth = 10
	}

	titleLine := styles.AccentStyle.Render(styles.Truncate(v.title, itemWidth))

	count := v.visibleCount()
	if count == 0 {
		emptyMsg := styles.DimStyle.Render("No stories")
		if v.filterActive && v.filterQuery != "" {
			emptyMsg = styles.DimStyle.Render("No matches")
		}
		return titleLine + "\n" + " " + "\n" + emptyMsg + "\n" + " "
	}

	var lines []string

	end := v.offset + v.maxVisible
	if end > count {
		end = count
	}

	for i := v.offset; i < end; i++ {
		pos := v.mapIndex(i)
		lines = append(lines, v.renderRow(pos, i == v.cursor, itemWidth))
	}

	// ALWAYS reserve space for the indicators to prevent layout shifts
	header := " "
	if v.offset > 0 {
		header = styles.DimStyle.Render("↑ more")
	}
	footer := " "
	if end < count {
		footer = styles.DimStyle.Render("↓ more")
	}

	content := titleLine + "\n" + header + "\n" + strings.Join(lines, "\n") + "\n" + footer

	if v.filterActive {
		content += "\n" + v.renderFilterBar()
	}

	return content
}

func (v *ListView) renderFilterBar() string {
	input := v.filterInput.View()
	countStr := ""
	if v.filterQuery != "" {
		countStr = styles.DimStyle.Render(fmt.Sprintf(" [%d/%d]", v.visibleCount(), v.adapter.Count()))
	}
	return input + countStr
}
