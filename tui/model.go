package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/goughy12/Get-GithubRelease/internal/releases"
	"github.com/goughy12/Get-GithubRelease/internal/repo"
)

type focusTarget int

const (
	focusReleases focusTarget = iota
	focusPattern
	focusOutput
	focusToken
)

const focusCount = int(focusToken) + 1

type releaseItem struct {
	tag        string
	display    string
	assetCount int
	isLatest   bool
}

func (r releaseItem) Title() string {
	if r.isLatest {
		return r.display + " (latest)"
	}
	return r.display
}

func (r releaseItem) Description() string {
	if r.assetCount == 1 {
		return "1 asset"
	}
	return fmt.Sprintf("%d assets", r.assetCount)
}

func (r releaseItem) FilterValue() string { return r.tag }

type model struct {
	ref repo.Ref
	src releases.Source

	pattern textinput.Model
	output  textinput.Model
	token   textinput.Model

	releases list.Model

	selectedTag string

	focus focusTarget

	loadingReleases bool
	downloading     bool
	refreshCancel   context.CancelFunc
	downloadCancel  context.CancelFunc
	spin            spinner.Model

	status string
	err    error

	width  int
	height int
}

func newModel(ref repo.Ref, src releases.Source, githubToken string) model {
	pattern := textinput.New()
	pattern.Placeholder = "*_windows_amd64.zip"
	pattern.Prompt = "Pattern: "
	pattern.CharLimit = 500
	pattern.Width = 40

	output := textinput.New()
	output.Placeholder = "." + string(os.PathSeparator)
	output.Prompt = "Folder:  "
	output.CharLimit = 2000
	output.Width = 40

	token := textinput.New()
	token.Placeholder = "(optional; overrides GITHUB_TOKEN)"
	token.Prompt = "Token:   "
	token.CharLimit = 4000
	token.Width = 40
	token.EchoMode = textinput.EchoPassword
	token.EchoCharacter = '•'
	token.SetValue(githubToken)

	items := []list.Item{}
	l := list.New(items, list.NewDefaultDelegate(), 40, 8)
	l.Title = "Releases"
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()

	sp := spinner.New()

	m := model{
		ref:      ref,
		src:      src,
		pattern:  pattern,
		output:   output,
		token:    token,
		releases: l,
		focus:    focusReleases,
		spin:     sp,
		status:   "ctrl+r: refresh releases   ctrl+d: download   tab: next   shift+tab: prev   q: quit",
	}

	m.applyFocus()
	return m
}

func (m *model) resolveToken() string {
	return strings.TrimSpace(m.token.Value())
}

func (m *model) resolvePattern() string {
	p := strings.TrimSpace(m.pattern.Value())
	if p == "" {
		return "*"
	}
	return p
}

func (m *model) resolveOutput() string {
	out := strings.TrimSpace(m.output.Value())
	if out == "" {
		return "."
	}
	return out
}

func (m *model) validateDownload() error {
	if strings.TrimSpace(m.selectedTag) == "" {
		return errors.New("select a release (refresh with ctrl+r and choose one)")
	}
	return nil
}

func (m *model) setError(err error) {
	m.err = err
	if err != nil {
		m.status = err.Error()
	}
}

func (m *model) clearError() {
	m.err = nil
}

func (m *model) cancelRefresh() {
	if m.refreshCancel != nil {
		m.refreshCancel()
		m.refreshCancel = nil
	}
}

func (m *model) cancelDownload() {
	if m.downloadCancel != nil {
		m.downloadCancel()
		m.downloadCancel = nil
	}
}

func (m *model) applyFocus() {
	m.pattern.Blur()
	m.output.Blur()
	m.token.Blur()

	switch m.focus {
	case focusPattern:
		m.pattern.Focus()
	case focusOutput:
		m.output.Focus()
	case focusToken:
		m.token.Focus()
	}
}
