package tui

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drake/feedline/internal/domain"
	"github.com/drake/feedline/internal/list"
)

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func testFeed(n int) (*list.SliceAdapter[domain.Story], *list.InfiniteScrollAdapter[domain.Story]) {
	stories := make([]domain.Story, n)
	for i := range stories {
		stories[i] = domain.Story{
			ID:    int64(i + 1),
			Rank:  i + 1,
			Title: fmt.Sprintf("Story number %d", i+1),
			Score: (i + 1) * 10,
		}
	}
	inner := list.NewSliceAdapter[domain.Story](StoryDelegate{}, domain.Story.Key)
	decorated := list.Wrap[domain.Story](inner)
	decorated.Accept(stories)
	return inner, decorated
}

func newTestView(n int) (*list.SliceAdapter[domain.Story], *list.InfiniteScrollAdapter[domain.Story], *ListView) {
	inner, decorated := testFeed(n)
	v := NewListView("Test Feed", decorated)
	v.SetFocused(true)
	v.SetSize(80, 14) // interior 12, minus indicators and title = 9 visible rows
	return inner, decorated, v
}

func TestViewWindowing(t *testing.T) {
	_, _, v := newTestView(20)

	out := v.View()
	assert.Contains(t, out, "Test Feed")
	assert.Contains(t, out, "Story number 1")
	assert.Contains(t, out, "Story number 9")
	assert.NotContains(t, out, "Story number 10")
	assert.Contains(t, out, "↓ more")
	assert.NotContains(t, out, "↑ more")
}

func TestCursorNavigationScrolls(t *testing.T) {
	_, _, v := newTestView(20)

	// G jumps to the end
	v, _ = v.Update(keyRune('G'))
	assert.Equal(t, 19, v.SelectedPos())

	out := v.View()
	assert.Contains(t, out, "Story number 20")
	assert.Contains(t, out, "↑ more")
	assert.NotContains(t, out, "↓ more")

	// g jumps back home
	v, _ = v.Update(keyRune('g'))
	assert.Equal(t, 0, v.SelectedPos())
}

func TestNearBottomFires(t *testing.T) {
	_, _, v := newTestView(6)

	var cmd tea.Cmd
	v, cmd = v.Update(keyRune('j'))
	assert.Nil(t, cmd, "cursor at 1 of 6 is above the threshold")

	v, cmd = v.Update(keyRune('j'))
	require.NotNil(t, cmd, "cursor at 2 of 6 is within the threshold")
	assert.IsType(t, NearBottomMsg{}, cmd())

	_ = v
}

func TestEnterOnContentRowReportsActivation(t *testing.T) {
	_, _, v := newTestView(5)

	v, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	msg, ok := cmd().(RowActivatedMsg)
	require.True(t, ok)
	assert.Equal(t, 0, msg.Pos)
	_ = v
}

func TestEnterOnErrorHeaderClicksRetry(t *testing.T) {
	_, decorated, v := newTestView(5)

	retried := false
	decorated.OnHeaderRetry(func() { retried = true })
	decorated.SetHeaderMode(list.HeaderError)

	// Row 0 is now the header
	v, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.True(t, retried)

	msg, ok := cmd().(RowActivatedMsg)
	require.True(t, ok)
	assert.Equal(t, 0, msg.Pos)
	assert.True(t, decorated.IsDecorationRow(msg.Pos))
	_ = v
}

func TestCachedRowsEvictedOnForwardedChange(t *testing.T) {
	inner, decorated, v := newTestView(5)

	out := v.View()
	assert.Contains(t, out, "Story number 2")

	// Replace the second story in place. The decorator forwards the change
	// and the view must drop the stale cached line.
	updated := inner.Item(1)
	updated.Title = "Edited title"
	inner.Set(1, updated)

	out = v.View()
	assert.Contains(t, out, "Edited title")
	assert.NotContains(t, out, "Story number 2")

	// A progress header shifts every forwarded index by one; an update to
	// the same item must still reach the right row.
	decorated.SetHeaderMode(list.HeaderProgress)
	updated.Title = "Edited again"
	inner.Set(1, updated)

	out = v.View()
	assert.Contains(t, out, "Edited again")
	assert.NotContains(t, out, "Edited title")
}

func TestCursorFollowsItemAcrossInsert(t *testing.T) {
	inner, _, v := newTestView(5)

	v, _ = v.Update(keyRune('j'))
	v, _ = v.Update(keyRune('j'))
	require.Equal(t, 2, v.SelectedPos())

	inner.InsertAt(0, domain.Story{ID: 99, Title: "Breaking news"})
	assert.Equal(t, 3, v.SelectedPos(), "cursor stays on the same story")
}

func TestCursorClampedOnRemoval(t *testing.T) {
	inner, _, v := newTestView(5)

	v, _ = v.Update(keyRune('G'))
	require.Equal(t, 4, v.SelectedPos())

	inner.RemoveRange(3, 2)
	assert.Equal(t, 2, v.SelectedPos())
}

func TestFilterKeepsDecorationRows(t *testing.T) {
	_, decorated, v := newTestView(5)
	decorated.SetFooterMode(list.FooterError)

	v, _ = v.Update(keyRune('/'))
	require.True(t, v.IsFilterTyping())

	for _, r := range "number 3" {
		v, _ = v.Update(keyRune(r))
	}

	out := v.View()
	assert.Contains(t, out, "Story number 3")
	assert.NotContains(t, out, "Story number 1")
	assert.Contains(t, out, "retry", "footer survives filtering")

	// Escape restores the full list
	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyEscape})
	assert.False(t, v.IsFilterTyping())
	out = v.View()
	assert.Contains(t, out, "Story number 1")
}

func TestFilterTypingSwallowsNavigationKeys(t *testing.T) {
	_, _, v := newTestView(5)

	v, _ = v.Update(keyRune('/'))
	require.True(t, v.IsFilterTyping())

	// j is input, not navigation: it matches no title, so the list
	// narrows to nothing instead of the cursor moving
	v, _ = v.Update(keyRune('j'))
	assert.True(t, v.IsFilterTyping())
	assert.Equal(t, -1, v.SelectedPos())

	// Deleting the query restores the list with the cursor unmoved
	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, 0, v.SelectedPos())

	// Enter leaves typing mode, then j navigates again
	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, v.IsFilterTyping())
	v, _ = v.Update(keyRune('j'))
	assert.Equal(t, 1, v.SelectedPos())
}

func TestFilterAcceptEmitsQuery(t *testing.T) {
	_, _, v := newTestView(5)

	v, _ = v.Update(keyRune('/'))
	for _, r := range "number" {
		v, _ = v.Update(keyRune(r))
	}

	v, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	msg, ok := cmd().(FilterAcceptedMsg)
	require.True(t, ok)
	assert.Equal(t, "number", msg.Query)
	assert.False(t, v.IsFilterTyping())

	// Accepting an empty query announces nothing
	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyEscape})
	v, _ = v.Update(keyRune('/'))
	v, cmd = v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	_ = v
}

func TestSelectedPosEmptyList(t *testing.T) {
	inner := list.NewSliceAdapter[domain.Story](StoryDelegate{}, domain.Story.Key)
	v := NewListView("Empty", inner)
	v.SetFocused(true)
	v.SetSize(80, 14)

	assert.Equal(t, -1, v.SelectedPos())
	assert.Contains(t, v.View(), "No stories")
}
