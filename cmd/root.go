package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/goughy12/Get-GithubRelease/config"
	"github.com/goughy12/Get-GithubRelease/internal/fetch"
	"github.com/goughy12/Get-GithubRelease/internal/logger"
	"github.com/goughy12/Get-GithubRelease/internal/releases"
	"github.com/goughy12/Get-GithubRelease/internal/repo"
)

var (
	rootRepository  string
	rootList        bool
	rootPattern     string
	rootTag         string
	rootDownloadDir string
	rootExtract     bool
	rootToolPath    string
	rootExtractDir  string
	rootDeleteAfter bool
	rootToken       string
)

var rootCmd = &cobra.Command{
	Use:   "get-githubrelease",
	Short: "Download a single asset from a GitHub release, optionally extracting it",
	Long: `get-githubrelease resolves one release of a GitHub repository (a literal
tag or the latest), selects exactly one asset by a case-sensitive wildcard
pattern ('*' matches any run of characters), downloads it, and unpacks
recognized archives (zip, 7z, gz, rar, xz, bz2) with an external archiver.

With --list it prints every release tag and its asset names instead.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Minute)
		defer cancel()

		ref, err := repo.Parse(rootRepository)
		if err != nil {
			return err
		}

		applyConfigDefaults(cmd)
		token := resolveToken(rootToken)
		src := releases.NewGitHubSource()

		if rootList {
			return listReleases(ctx, cmd, src, ref, token)
		}

		logger.Log.Info("resolving release", "repository", ref.String(), "tag", rootTag)

		res, err := fetch.Run(ctx, src, fetch.Options{
			Owner:              ref.Owner,
			Repo:               ref.Name,
			Tag:                rootTag,
			Pattern:            rootPattern,
			DownloadFolder:     rootDownloadDir,
			ExtractEnabled:     rootExtract,
			ArchiveToolPath:    rootToolPath,
			ExtractFolder:      rootExtractDir,
			DeleteAfterExtract: rootDeleteAfter,
			Token:              token,
		})
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Downloaded %s (release %s) to %s\n", res.AssetName, res.Tag, res.ArchivePath)
		if res.Extracted {
			fmt.Fprintf(cmd.OutOrStdout(), "Extracted to %s\n", res.ExtractFolder)
		}
		if res.Deleted {
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted archive %s\n", res.ArchivePath)
		}
		if res.DeleteErr != nil {
			logger.Log.Warn("could not delete archive after extraction", "path", res.ArchivePath, "err", res.DeleteErr)
		}
		return nil
	},
}

func listReleases(ctx context.Context, cmd *cobra.Command, src releases.Source, ref repo.Ref, token string) error {
	rels, err := src.ListReleases(ctx, ref.Owner, ref.Name, token)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, rel := range rels {
		fmt.Fprintln(out, rel.TagName)
		for _, a := range rel.Assets {
			fmt.Fprintln(out, "  "+a.Name)
		}
	}
	return nil
}

// applyConfigDefaults overlays config-file/env values onto flags the user did
// not set explicitly. Precedence: flag > config file > built-in default.
func applyConfigDefaults(cmd *cobra.Command) {
	if !cmd.Flags().Changed("asset-pattern") {
		rootPattern = viper.GetString("download.asset-pattern")
	}
	if !cmd.Flags().Changed("tag") {
		rootTag = viper.GetString("download.tag")
	}
	if !cmd.Flags().Changed("download-folder") {
		rootDownloadDir = viper.GetString("download.folder")
	}
	if !cmd.Flags().Changed("extract-enabled") {
		rootExtract = viper.GetBool("extract.enabled")
	}
	if !cmd.Flags().Changed("archive-tool-path") {
		rootToolPath = viper.GetString("extract.tool-path")
	}
	if !cmd.Flags().Changed("delete-after-extract") {
		rootDeleteAfter = viper.GetBool("extract.delete-after")
	}
}

func resolveToken(flagToken string) string {
	if flagToken != "" {
		return flagToken
	}
	return viper.GetString("github.token")
}

func Execute() {
	config.Init()

	if err := rootCmd.Execute(); err != nil {
		// Plain print: selection errors span multiple lines (the available
		// asset list) and must stay readable.
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVar(&rootRepository, "repository", "", "target repository as owner/name (required)")
	rootCmd.Flags().BoolVar(&rootList, "list", false, "list every release tag and its assets, then exit")
	rootCmd.Flags().StringVar(&rootPattern, "asset-pattern", "*", "case-sensitive wildcard filter on asset names ('*' only)")
	rootCmd.Flags().StringVar(&rootTag, "tag", "latest", "release tag, or 'latest' for the most recent release")
	rootCmd.Flags().StringVar(&rootDownloadDir, "download-folder", ".", "folder the asset is saved into")
	rootCmd.Flags().BoolVar(&rootExtract, "extract-enabled", true, "extract the asset when it is a recognized archive")
	rootCmd.Flags().StringVar(&rootToolPath, "archive-tool-path", "", "path to the external archiver (default: 7-Zip in its platform location)")
	rootCmd.Flags().StringVar(&rootExtractDir, "extract-folder", "", "extraction destination (default: <download-folder>/<repo-name>)")
	rootCmd.Flags().BoolVar(&rootDeleteAfter, "delete-after-extract", true, "delete the archive after successful extraction")
	rootCmd.Flags().StringVar(&rootToken, "token", "", "GitHub token (optional; overrides GITHUB_TOKEN)")

	_ = rootCmd.MarkFlagRequired("repository")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(newTuiCmd())
}
