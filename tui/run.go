package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/goughy12/Get-GithubRelease/internal/releases"
	"github.com/goughy12/Get-GithubRelease/internal/repo"
)

func Run(ref repo.Ref, githubToken string) error {
	m := newModel(ref, releases.NewGitHubSource(), githubToken)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
