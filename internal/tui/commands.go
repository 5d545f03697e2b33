package tui

import (
	"context"
	"os/exec"
	"runtime"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/drake/feedline/internal/feed"
)

// Command factories for async operations

const (
	refreshTimeout = 60 * time.Second
	checkTimeout   = 30 * time.Second

	spinnerInterval = 100 * time.Millisecond
)

// RefreshCmd takes a fresh snapshot and loads the first page
func RefreshCmd(svc *feed.Service) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
		defer cancel()

		stories, err := svc.Refresh(ctx)
		if err != nil {
			return RefreshFailedMsg{Err: err}
		}
		return RefreshedMsg{Stories: stories, HasMore: svc.HasMore()}
	}
}

// LoadMoreCmd loads the next page of the current snapshot
func LoadMoreCmd(svc *feed.Service) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
		defer cancel()

		stories, err := svc.LoadMore(ctx)
		if err != nil {
			return LoadMoreFailedMsg{Err: err}
		}
		return MoreLoadedMsg{Stories: stories, HasMore: svc.HasMore()}
	}
}

// CheckNewCmd counts stories that arrived above the current snapshot
func CheckNewCmd(svc *feed.Service) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
		defer cancel()

		count, err := svc.CheckNew(ctx)
		if err != nil {
			// Polling is best-effort; a failed check just tries again later
			return NewStoriesMsg{Count: 0}
		}
		return NewStoriesMsg{Count: count}
	}
}

// OpenURLCmd opens url in the system browser
func OpenURLCmd(url string) tea.Cmd {
	return func() tea.Msg {
		var cmd *exec.Cmd
		switch runtime.GOOS {
		case "darwin":
			cmd = exec.Command("open", url)
		case "windows":
			cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
		default:
			cmd = exec.Command("xdg-open", url)
		}
		if err := cmd.Start(); err != nil {
			return OpenFailedMsg{Err: err}
		}
		return nil
	}
}

// SpinnerTickCmd schedules the next spinner frame
func SpinnerTickCmd() tea.Cmd {
	return tea.Tick(spinnerInterval, func(time.Time) tea.Msg {
		return SpinnerTickMsg{}
	})
}

// PollTickCmd schedules the next new-stories check
func PollTickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return PollTickMsg{}
	})
}
