package ghrel

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Asset is a single downloadable artifact attached to a release. Only the
// fields consumed by this tool are modeled.
type Asset struct {
	// Name is the filename of the release asset.
	Name string `json:"name"`

	// BrowserDownloadURL is the public URL for downloading the asset.
	BrowserDownloadURL string `json:"browser_download_url"`
}

// Release is a tagged release and its assets, in the order GitHub returns
// them.
type Release struct {
	TagName string  `json:"tag_name"`
	Assets  []Asset `json:"assets"`
}

// ErrNotFound reports a 404 from the releases API, typically a tag that has
// no published release.
var ErrNotFound = errors.New("release not found")

// NewGitHubClient returns an HTTP client configured with a fixed,
// request-wide timeout.
func NewGitHubClient() *http.Client {
	return &http.Client{Timeout: 60 * time.Second}
}

// DefaultAPIBaseURL is the production GitHub API endpoint. Tests point the
// client at a local server instead.
const DefaultAPIBaseURL = "https://api.github.com"

// GetReleaseByTag fetches release metadata for a specific tag.
// If githubToken is provided, it is used for authentication and rate-limit relief.
func GetReleaseByTag(
	ctx context.Context,
	client *http.Client,
	baseURL, owner, repo, tag, githubToken string,
) (Release, error) {
	return getRelease(ctx, client, baseURL, owner, repo, "tags/"+tag, githubToken)
}

// GetLatestRelease fetches metadata for the repository's most recent release.
func GetLatestRelease(
	ctx context.Context,
	client *http.Client,
	baseURL, owner, repo, githubToken string,
) (Release, error) {
	return getRelease(ctx, client, baseURL, owner, repo, "latest", githubToken)
}

// getRelease fetches release metadata. releaseID is either "latest" or
// "tags/<tag>".
func getRelease(
	ctx context.Context,
	client *http.Client,
	baseURL, owner, repo, releaseID, githubToken string,
) (Release, error) {
	var rel Release

	apiURL := fmt.Sprintf("%s/repos/%s/%s/releases/%s", strings.TrimRight(baseURL, "/"), owner, repo, releaseID)

	body, err := getJSON(ctx, client, apiURL, githubToken)
	if err != nil {
		return rel, err
	}
	defer body.Close()

	if err := json.NewDecoder(body).Decode(&rel); err != nil {
		return rel, fmt.Errorf("decode release JSON: %w", err)
	}
	return rel, nil
}

// ListReleases fetches every release of the repository in GitHub's default
// ordering (newest first).
func ListReleases(
	ctx context.Context,
	client *http.Client,
	baseURL, owner, repo, githubToken string,
) ([]Release, error) {
	apiURL := fmt.Sprintf("%s/repos/%s/%s/releases", strings.TrimRight(baseURL, "/"), owner, repo)

	body, err := getJSON(ctx, client, apiURL, githubToken)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var rels []Release
	if err := json.NewDecoder(body).Decode(&rels); err != nil {
		return nil, fmt.Errorf("decode release JSON: %w", err)
	}
	return rels, nil
}

// getJSON performs an authenticated GET against the releases API and returns
// the response body. The caller must close it.
func getJSON(ctx context.Context, client *http.Client, apiURL, githubToken string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/vnd.github+json")
	if githubToken != "" {
		req.Header.Set("Authorization", "Bearer "+githubToken)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch release metadata: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		resp.Body.Close()
		return nil, fmt.Errorf("fetch release metadata: %s: %w", apiURL, ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		resp.Body.Close()
		return nil, fmt.Errorf("fetch release metadata: status=%s body=%s", resp.Status, string(b))
	}

	return resp.Body, nil
}

// DownloadToWriter streams the content at downloadURL into w.
// If githubToken is provided, an Authorization header is added to the initial request.
func DownloadToWriter(
	ctx context.Context,
	client *http.Client,
	downloadURL, githubToken string,
	w io.Writer,
) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, downloadURL, nil)
	if err != nil {
		return err
	}

	if githubToken != "" {
		req.Header.Set("Authorization", "Bearer "+githubToken)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("download asset: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		return fmt.Errorf("download asset: status=%s body=%s", resp.Status, string(b))
	}

	if _, err := io.Copy(w, resp.Body); err != nil {
		return fmt.Errorf("stream asset: %w", err)
	}

	return nil
}

// WriteFileAtomically writes a file to outPath by writing to a temporary file
// in the destination directory and then renaming it into place. An existing
// file at outPath is replaced without prompting.
func WriteFileAtomically(outPath string, write func(f *os.File) error) error {
	if outPath == "" {
		return fmt.Errorf("outPath is empty")
	}

	dir := filepath.Dir(outPath)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir: %w", err)
		}
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	// Best-effort cleanup: if we fail prior to rename, remove the temp file.
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	if err := write(tmp); err != nil {
		return err
	}

	// Best-effort flush for the file contents.
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpName, outPath); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}

	return nil
}

// DownloadAsset streams the asset at downloadURL to outPath, replacing any
// existing file of that name.
func DownloadAsset(
	ctx context.Context,
	client *http.Client,
	downloadURL, outPath, githubToken string,
) error {
	if downloadURL == "" {
		return fmt.Errorf("download URL is empty")
	}
	return WriteFileAtomically(outPath, func(f *os.File) error {
		return DownloadToWriter(ctx, client, downloadURL, githubToken, f)
	})
}
