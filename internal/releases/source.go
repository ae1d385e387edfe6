package releases

import (
	"context"

	"github.com/goughy12/Get-GithubRelease/internal/ghrel"
)

// LatestTag is the tag selector value that resolves to the repository's most
// recent release instead of a literal tag.
const LatestTag = "latest"

// Source abstracts release resolution, release enumeration and asset
// downloads.
type Source interface {
	// Release resolves a single release. A tag of LatestTag selects the
	// most recent release.
	Release(ctx context.Context, owner, repo, tag, githubToken string) (ghrel.Release, error)

	// ListReleases returns every release of the repository in provider
	// order (newest first).
	ListReleases(ctx context.Context, owner, repo, githubToken string) ([]ghrel.Release, error)

	// DownloadAsset streams the content at downloadURL to outPath,
	// overwriting any existing file.
	DownloadAsset(ctx context.Context, downloadURL, outPath, githubToken string) error
}
