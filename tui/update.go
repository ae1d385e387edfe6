package tui

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/viper"

	"github.com/goughy12/Get-GithubRelease/internal/fetch"
	"github.com/goughy12/Get-GithubRelease/internal/ghrel"
	"github.com/goughy12/Get-GithubRelease/internal/releases"
	"github.com/goughy12/Get-GithubRelease/internal/version"
)

type releasesLoadedMsg struct {
	rels []ghrel.Release
}

type releasesErrMsg struct {
	err error
}

type releasesCanceledMsg struct{}

type downloadDoneMsg struct {
	res fetch.Result
}

type downloadErrMsg struct {
	err error
}

type downloadCanceledMsg struct{}

// initRefreshMsg triggers the startup auto-refresh flow.
type initRefreshMsg struct{}

func refreshReleasesCmd(ctx context.Context, src releases.Source, owner, repo, token string) tea.Cmd {
	return func() tea.Msg {
		rels, err := src.ListReleases(ctx, owner, repo, token)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return releasesCanceledMsg{}
			}
			return releasesErrMsg{err: fmt.Errorf("refresh releases: %w", err)}
		}
		return releasesLoadedMsg{rels: rels}
	}
}

func downloadCmd(ctx context.Context, src releases.Source, opts fetch.Options) tea.Cmd {
	return func() tea.Msg {
		res, err := fetch.Run(ctx, src, opts)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return downloadCanceledMsg{}
			}
			return downloadErrMsg{err: fmt.Errorf("download asset: %w", err)}
		}
		return downloadDoneMsg{res: res}
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		m.spin.Tick,
		func() tea.Msg { return initRefreshMsg{} },
	)
}

func (m *model) startRefresh() tea.Cmd {
	// Cancel/replace policy: starting a refresh cancels any in-flight work.
	m.cancelDownload()
	m.downloading = false
	m.cancelRefresh()

	m.clearError()
	m.loadingReleases = true
	m.status = "Refreshing release list…"

	baseCtx, cancel := context.WithCancel(context.Background())
	m.refreshCancel = cancel
	ctx, timeoutCancel := context.WithTimeout(baseCtx, 30*time.Second)

	inner := refreshReleasesCmd(ctx, m.src, m.ref.Owner, m.ref.Name, m.resolveToken())
	return func() tea.Msg {
		defer timeoutCancel()
		return inner()
	}
}

func (m *model) startDownload() tea.Cmd {
	// Cancel/replace policy: starting a download cancels any in-flight work.
	m.cancelRefresh()
	m.loadingReleases = false
	m.cancelDownload()

	if err := m.validateDownload(); err != nil {
		m.setError(err)
		return nil
	}

	m.clearError()
	m.downloading = true
	m.status = "Downloading…"

	baseCtx, cancel := context.WithCancel(context.Background())
	m.downloadCancel = cancel
	ctx, timeoutCancel := context.WithTimeout(baseCtx, 10*time.Minute)

	inner := downloadCmd(ctx, m.src, fetch.Options{
		Owner:              m.ref.Owner,
		Repo:               m.ref.Name,
		Tag:                m.selectedTag,
		Pattern:            m.resolvePattern(),
		DownloadFolder:     m.resolveOutput(),
		ExtractEnabled:     viper.GetBool("extract.enabled"),
		ArchiveToolPath:    viper.GetString("extract.tool-path"),
		DeleteAfterExtract: viper.GetBool("extract.delete-after"),
		Token:              m.resolveToken(),
	})
	return func() tea.Msg {
		defer timeoutCancel()
		return inner()
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case initRefreshMsg:
		return m, m.startRefresh()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.releases.SetSize(max(msg.Width-4, 40), max(msg.Height-14, 6))
		return m, nil

	case tea.KeyMsg:
		key := msg.String()

		if key == "q" || key == "ctrl+c" {
			m.cancelRefresh()
			m.cancelDownload()
			return m, tea.Quit
		}

		if key == "esc" {
			m.clearError()
			m.status = "Ready"
			return m, nil
		}

		if key == "ctrl+r" {
			return m, m.startRefresh()
		}

		if key == "ctrl+d" {
			return m, m.startDownload()
		}

		if key == "tab" {
			m.focus = focusTarget((int(m.focus) + 1) % focusCount)
			m.applyFocus()
			return m, nil
		}
		if key == "shift+tab" {
			i := int(m.focus) - 1
			if i < 0 {
				i = focusCount - 1
			}
			m.focus = focusTarget(i)
			m.applyFocus()
			return m, nil
		}

		if m.focus == focusReleases {
			var cmd tea.Cmd
			m.releases, cmd = m.releases.Update(msg)

			if key == "enter" {
				if it, ok := m.releases.SelectedItem().(releaseItem); ok {
					m.selectedTag = it.tag
					if it.isLatest {
						m.status = "Selected release: " + it.display + " (latest)"
					} else {
						m.status = "Selected release: " + it.display
					}
				}
			}
			return m, cmd
		}

		return m.updateFocusedInput(msg)

	case releasesLoadedMsg:
		m.loadingReleases = false
		m.refreshCancel = nil

		// The provider lists newest first; its head release is what the
		// "latest" selector resolves to, regardless of how tags compare
		// as versions.
		latestTag := ""
		if len(msg.rels) > 0 {
			latestTag = msg.rels[0].TagName
		}

		items := make([]releaseItem, 0, len(msg.rels))
		for _, rel := range msg.rels {
			items = append(items, releaseItem{
				tag:        rel.TagName,
				display:    version.NormalizeTag(rel.TagName),
				assetCount: len(rel.Assets),
				isLatest:   rel.TagName == latestTag,
			})
		}

		if len(items) == 0 {
			m.setError(errors.New("no releases found for this repository"))
			m.status = "No releases found."
			m.releases.SetItems(nil)
			return m, nil
		}

		// Sort releases descending for display; listing order on the CLI
		// stays provider-defined.
		sort.Slice(items, func(i, j int) bool {
			di := items[i].display
			dj := items[j].display
			if di == dj {
				return items[i].tag > items[j].tag
			}
			return version.Greater(di, dj)
		})

		litems := make([]list.Item, 0, len(items))
		for _, it := range items {
			litems = append(litems, it)
		}
		m.releases.SetItems(litems)

		selectedIdx := 0
		if m.selectedTag != "" {
			found := false
			for i := range items {
				if items[i].tag == m.selectedTag {
					selectedIdx = i
					found = true
					break
				}
			}
			if !found {
				m.selectedTag = items[0].tag
				selectedIdx = 0
			}
		} else {
			m.selectedTag = items[0].tag
			selectedIdx = 0
		}

		m.releases.Select(selectedIdx)

		selectedDisplay := items[selectedIdx].display
		if items[selectedIdx].isLatest {
			m.status = "Selected release: " + selectedDisplay + " (latest)"
		} else {
			m.status = "Selected release: " + selectedDisplay
		}

		return m, nil

	case releasesErrMsg:
		m.loadingReleases = false
		m.refreshCancel = nil
		m.setError(msg.err)
		return m, nil

	case releasesCanceledMsg:
		m.loadingReleases = false
		m.refreshCancel = nil
		m.status = "Refresh canceled."
		return m, nil

	case downloadDoneMsg:
		m.downloading = false
		m.downloadCancel = nil
		switch {
		case msg.res.Extracted && msg.res.DeleteErr != nil:
			// Deletion failure is a warning, not a failure: the asset is
			// already unpacked.
			m.status = "Extracted to " + msg.res.ExtractFolder +
				" (warning: could not delete archive: " + msg.res.DeleteErr.Error() + ")"
		case msg.res.Extracted && msg.res.Deleted:
			m.status = "Extracted to " + msg.res.ExtractFolder + " (archive deleted)"
		case msg.res.Extracted:
			m.status = "Extracted to " + msg.res.ExtractFolder
		default:
			m.status = "Downloaded: " + msg.res.ArchivePath
		}
		return m, nil

	case downloadErrMsg:
		m.downloading = false
		m.downloadCancel = nil
		m.setError(msg.err)
		return m, nil

	case downloadCanceledMsg:
		m.downloading = false
		m.downloadCancel = nil
		m.status = "Download canceled."
		return m, nil

	default:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)

		return m, cmd
	}
}

func (m *model) updateFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case focusPattern:
		m.pattern, cmd = m.pattern.Update(msg)
	case focusOutput:
		m.output, cmd = m.output.Update(msg)
	case focusToken:
		m.token, cmd = m.token.Update(msg)
	}
	return *m, cmd
}
