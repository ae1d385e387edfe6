package cmd

import (
	"github.com/spf13/cobra"

	"github.com/goughy12/Get-GithubRelease/internal/repo"
	"github.com/goughy12/Get-GithubRelease/tui"
)

var (
	tuiRepository string
	tuiToken      string
)

func newTuiCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Browse a repository's releases interactively and download assets",
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := repo.Parse(tuiRepository)
			if err != nil {
				return err
			}
			return tui.Run(ref, resolveToken(tuiToken))
		},
	}

	cmd.Flags().StringVar(&tuiRepository, "repository", "", "target repository as owner/name (required)")
	cmd.Flags().StringVar(&tuiToken, "token", "", "GitHub token (optional; overrides GITHUB_TOKEN)")

	_ = cmd.MarkFlagRequired("repository")

	return cmd
}
