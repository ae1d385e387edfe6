// Package fetch runs the download pipeline shared by the CLI and the TUI:
// resolve one release, select exactly one asset, download it, and optionally
// extract and clean up the archive. Stages run strictly in order; the first
// failing stage aborts the rest.
package fetch

import (
	"context"
	"os"
	"path/filepath"

	"github.com/goughy12/Get-GithubRelease/internal/assets"
	"github.com/goughy12/Get-GithubRelease/internal/extract"
	"github.com/goughy12/Get-GithubRelease/internal/releases"
)

// Options configures one pipeline run. Empty Tag, Pattern, DownloadFolder
// and ExtractFolder fall back to the documented defaults; the boolean
// toggles are taken as given.
type Options struct {
	Owner string
	Repo  string

	// Tag selects the release; empty or releases.LatestTag means the most
	// recent one.
	Tag string

	// Pattern filters asset names; '*' is the only wildcard. Empty matches
	// everything.
	Pattern string

	// DownloadFolder receives the asset file; defaults to the current
	// directory.
	DownloadFolder string

	ExtractEnabled  bool
	ArchiveToolPath string

	// ExtractFolder defaults to <DownloadFolder>/<Repo>.
	ExtractFolder string

	DeleteAfterExtract bool

	Token string
}

// Result describes what a successful run did.
type Result struct {
	Tag         string
	AssetName   string
	ArchivePath string

	Extracted     bool
	ExtractFolder string

	Deleted bool
	// DeleteErr records a failed post-extract deletion. It is non-fatal:
	// the run still counts as successful and the caller decides how to
	// surface the warning.
	DeleteErr error
}

// Run executes the pipeline against src.
func Run(ctx context.Context, src releases.Source, opts Options) (Result, error) {
	var res Result

	pattern := opts.Pattern
	if pattern == "" {
		pattern = "*"
	}
	folder := opts.DownloadFolder
	if folder == "" {
		folder = "."
	}

	rel, err := src.Release(ctx, opts.Owner, opts.Repo, opts.Tag, opts.Token)
	if err != nil {
		return res, err
	}
	res.Tag = rel.TagName

	asset, err := assets.Select(rel, pattern)
	if err != nil {
		return res, err
	}
	res.AssetName = asset.Name

	outPath := filepath.Join(folder, asset.Name)
	if err := src.DownloadAsset(ctx, asset.BrowserDownloadURL, outPath, opts.Token); err != nil {
		return res, err
	}
	res.ArchivePath = outPath

	if !opts.ExtractEnabled || !extract.IsArchive(asset.Name) {
		return res, nil
	}

	dest := opts.ExtractFolder
	if dest == "" {
		dest = filepath.Join(folder, opts.Repo)
	}
	if err := extract.Extract(ctx, opts.ArchiveToolPath, outPath, dest); err != nil {
		return res, err
	}
	res.Extracted = true
	res.ExtractFolder = dest

	if opts.DeleteAfterExtract {
		if err := os.Remove(outPath); err != nil {
			res.DeleteErr = err
		} else {
			res.Deleted = true
		}
	}

	return res, nil
}
