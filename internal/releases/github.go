package releases

import (
	"context"
	"net/http"

	"github.com/goughy12/Get-GithubRelease/internal/ghrel"
)

type gitHubSource struct {
	client  *http.Client
	baseURL string
}

// NewGitHubSource returns a releases.Source backed by the GitHub Releases
// API client in internal/ghrel.
func NewGitHubSource() Source {
	return gitHubSource{
		client:  ghrel.NewGitHubClient(),
		baseURL: ghrel.DefaultAPIBaseURL,
	}
}

func (s gitHubSource) Release(ctx context.Context, owner, repo, tag, githubToken string) (ghrel.Release, error) {
	if tag == "" || tag == LatestTag {
		return ghrel.GetLatestRelease(ctx, s.client, s.baseURL, owner, repo, githubToken)
	}
	return ghrel.GetReleaseByTag(ctx, s.client, s.baseURL, owner, repo, tag, githubToken)
}

func (s gitHubSource) ListReleases(ctx context.Context, owner, repo, githubToken string) ([]ghrel.Release, error) {
	return ghrel.ListReleases(ctx, s.client, s.baseURL, owner, repo, githubToken)
}

func (s gitHubSource) DownloadAsset(ctx context.Context, downloadURL, outPath, githubToken string) error {
	return ghrel.DownloadAsset(ctx, s.client, downloadURL, outPath, githubToken)
}
