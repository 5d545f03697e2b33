package tui

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/drake/feedline/internal/domain"
	"github.com/drake/feedline/internal/feed"
	"github.com/drake/feedline/internal/list"
	"github.com/drake/feedline/internal/tui/styles"
)

// Vertical chrome below the list: single help/status line
const ChromeHeight = 1

// App is the main Bubble Tea model. It owns the story adapter chain
// (slice adapter wrapped by the infinite-scroll decorator), drives the
// header through the refresh lifecycle and the footer through load-more,
// and polls for stories arriving above the current snapshot.
type App struct {
	svc    *feed.Service
	logger *slog.Logger

	stories *list.SliceAdapter[domain.Story]
	feed    *list.InfiniteScrollAdapter[domain.Story]
	view    *ListView

	keys AppKeyMap

	width  int
	height int
	ready  bool

	refreshing  bool
	loadingMore bool

	// Set by the decorator's retry proxies during click dispatch and
	// converted into commands after the event is processed.
	headerClicked bool
	footerClicked bool

	spinnerFrame int
	pollInterval time.Duration

	showKeys  bool
	status    string
	statusErr bool
}

// NewApp wires the adapter chain and list view.
func NewApp(svc *feed.Service, pollInterval time.Duration, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}

	stories := list.NewSliceAdapter[domain.Story](StoryDelegate{}, domain.Story.Key)
	decorated := list.Wrap[domain.Story](stories)
	view := NewListView("Hacker News · Top Stories", decorated)
	view.SetFocused(true)

	app := &App{
		svc:          svc,
		logger:       logger,
		stories:      stories,
		feed:         decorated,
		view:         view,
		keys:         DefaultAppKeyMap(),
		pollInterval: pollInterval,
	}

	// Clicks resolve through these proxies even when the handlers are
	// registered after the row was rendered.
	decorated.OnHeaderRetry(func() { app.headerClicked = true })
	decorated.OnFooterRetry(func() { app.footerClicked = true })

	return app
}

func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.startRefresh(), SpinnerTickCmd()}
	if a.pollInterval > 0 {
		cmds = append(cmds, PollTickCmd(a.pollInterval))
	}
	return tea.Batch(cmds...)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.view.SetSize(msg.Width, msg.Height-ChromeHeight)
		a.ready = true
		return a, nil

	case tea.KeyMsg:
		if !a.view.IsFilterTyping() {
			switch {
			case key.Matches(msg, a.keys.Quit):
				return a, tea.Quit
			case key.Matches(msg, a.keys.Refresh):
				return a, a.startRefresh()
			case key.Matches(msg, a.keys.Comments):
				return a, a.openSelected(true)
			case key.Matches(msg, a.keys.Help):
				a.showKeys = !a.showKeys
				return a, nil
			}
		}
		return a, a.updateView(msg)

	case RefreshedMsg:
		a.refreshing = false
		a.status = ""
		a.feed.SetHeaderMode(list.HeaderHidden)
		a.feed.SetNewItemsCount(0)
		a.feed.Accept(msg.Stories)
		a.logger.Info("feed refreshed", "stories", len(msg.Stories), "has_more", msg.HasMore)
		return a, nil

	case RefreshFailedMsg:
		a.refreshing = false
		a.setError("refresh failed", msg.Err)
		a.feed.SetHeaderMode(list.HeaderError)
		return a, nil

	case MoreLoadedMsg:
		a.loadingMore = false
		a.feed.SetFooterMode(list.FooterHidden)
		a.stories.Append(msg.Stories...)
		return a, nil

	case LoadMoreFailedMsg:
		a.loadingMore = false
		a.setError("loading more failed", msg.Err)
		a.feed.SetFooterMode(list.FooterError)
		return a, nil

	case NearBottomMsg:
		return a, a.startLoadMore()

	case NewStoriesMsg:
		if msg.Count > 0 && !a.refreshing && a.feed.HeaderMode() == list.HeaderHidden {
			a.feed.SetNewItemsCount(msg.Count)
			a.feed.SetHeaderMode(list.HeaderNewItems)
		} else if msg.Count > 0 && a.feed.HeaderMode() == list.HeaderNewItems {
			a.feed.SetNewItemsCount(msg.Count)
		}
		return a, nil

	case PollTickMsg:
		cmds := []tea.Cmd{PollTickCmd(a.pollInterval)}
		if !a.refreshing {
			cmds = append(cmds, CheckNewCmd(a.svc))
		}
		return a, tea.Batch(cmds...)

	case SpinnerTickMsg:
		a.spinnerFrame++
		a.view.SetSpinnerFrame(a.spinnerFrame)
		return a, SpinnerTickCmd()

	case RowActivatedMsg:
		return a, a.rowActivated(msg.Pos)

	case FilterAcceptedMsg:
		a.selectBestMatch(msg.Query)
		return a, nil

	case OpenFailedMsg:
		a.setError("opening browser failed", msg.Err)
		return a, nil

	case ErrMsg:
		a.setError(msg.Context, msg.Err)
		return a, nil
	}

	return a, a.updateView(msg)
}

// updateView forwards msg to the list view and converts any decoration
// clicks recorded by the retry proxies into commands.
func (a *App) updateView(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	a.view, cmd = a.view.Update(msg)

	var cmds []tea.Cmd
	if cmd != nil {
		cmds = append(cmds, cmd)
	}
	if a.headerClicked {
		a.headerClicked = false
		cmds = append(cmds, a.startRefresh())
	}
	if a.footerClicked {
		a.footerClicked = false
		cmds = append(cmds, a.startLoadMore())
	}
	return tea.Batch(cmds...)
}

func (a *App) startRefresh() tea.Cmd {
	if a.refreshing {
		return nil
	}
	a.refreshing = true
	a.status = ""
	a.feed.SetHeaderMode(list.HeaderProgress)
	return RefreshCmd(a.svc)
}

func (a *App) startLoadMore() tea.Cmd {
	if a.loadingMore || a.refreshing || !a.svc.HasMore() {
		return nil
	}
	if a.feed.FooterMode() == list.FooterError {
		// Stay in the error state until the retry row is clicked
		return nil
	}
	a.loadingMore = true
	a.feed.SetFooterMode(list.FooterProgress)
	return LoadMoreCmd(a.svc)
}

// rowActivated opens the story behind a content row; decoration rows were
// already handled by their holders' click dispatch.
func (a *App) rowActivated(pos int) tea.Cmd {
	if pos < 0 || pos >= a.feed.Count() || a.feed.IsDecorationRow(pos) {
		return nil
	}
	story := a.feed.Item(pos)
	url := story.URL
	if url == "" {
		url = story.DiscussionURL()
	}
	a.logger.Debug("opening story", "id", story.ID, "url", url)
	return OpenURLCmd(url)
}

// selectBestMatch moves the cursor to the story the ranked title search
// considers the closest match for query.
func (a *App) selectBestMatch(query string) {
	results := a.svc.Search(query)
	if len(results) == 0 {
		return
	}
	target := results[0].ID
	for pos := 0; pos < a.feed.Count(); pos++ {
		if a.feed.IsDecorationRow(pos) {
			continue
		}
		if a.feed.Item(pos).ID == target {
			a.view.Select(pos)
			return
		}
	}
}

// openSelected opens the selected story, forcing the comments page when
// comments is true.
func (a *App) openSelected(comments bool) tea.Cmd {
	pos := a.view.SelectedPos()
	if pos < 0 || a.feed.IsDecorationRow(pos) {
		return nil
	}
	story := a.feed.Item(pos)
	url := story.URL
	if comments || url == "" {
		url = story.DiscussionURL()
	}
	return OpenURLCmd(url)
}

func (a *App) setError(context string, err error) {
	a.status = context + ": " + err.Error()
	a.statusErr = true
	a.logger.Error(context, "error", err)
}

func (a *App) View() string {
	if !a.ready {
		return "Loading..."
	}
	return a.view.View() + "\n" + a.renderChrome()
}

func (a *App) renderChrome() string {
	if a.status != "" {
		style := styles.DimStyle
		if a.statusErr {
			style = styles.ErrorStyle
		}
		return style.Render(styles.Truncate(a.status, a.width))
	}

	if a.showKeys {
		return lipgloss.JoinHorizontal(lipgloss.Top,
			styles.HelpKeyStyle.Render("g/G"), styles.HelpDescStyle.Render(" top/bottom  "),
			styles.HelpKeyStyle.Render("C-u/C-d"), styles.HelpDescStyle.Render(" half page  "),
			styles.HelpKeyStyle.Render("esc"), styles.HelpDescStyle.Render(" clear filter  "),
			styles.HelpKeyStyle.Render("?"), styles.HelpDescStyle.Render(" back"),
		)
	}

	help := lipgloss.JoinHorizontal(lipgloss.Top,
		styles.HelpKeyStyle.Render("j/k"), styles.HelpDescStyle.Render(" move  "),
		styles.HelpKeyStyle.Render("enter"), styles.HelpDescStyle.Render(" open  "),
		styles.HelpKeyStyle.Render("c"), styles.HelpDescStyle.Render(" comments  "),
		styles.HelpKeyStyle.Render("r"), styles.HelpDescStyle.Render(" refresh  "),
		styles.HelpKeyStyle.Render("/"), styles.HelpDescStyle.Render(" filter  "),
		styles.HelpKeyStyle.Render("?"), styles.HelpDescStyle.Render(" keys  "),
		styles.HelpKeyStyle.Render("q"), styles.HelpDescStyle.Render(" quit"),
	)
	return help
}
