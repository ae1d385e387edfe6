package fetch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goughy12/Get-GithubRelease/internal/assets"
	"github.com/goughy12/Get-GithubRelease/internal/ghrel"
)

// fakeSource serves a canned release and writes canned bytes on download.
type fakeSource struct {
	release ghrel.Release

	gotTag       string
	downloadURLs []string
}

func (f *fakeSource) Release(ctx context.Context, owner, repo, tag, token string) (ghrel.Release, error) {
	f.gotTag = tag
	return f.release, nil
}

func (f *fakeSource) ListReleases(ctx context.Context, owner, repo, token string) ([]ghrel.Release, error) {
	return []ghrel.Release{f.release}, nil
}

func (f *fakeSource) DownloadAsset(ctx context.Context, downloadURL, outPath, token string) error {
	f.downloadURLs = append(f.downloadURLs, downloadURL)
	return os.WriteFile(outPath, []byte("payload"), 0o644)
}

func windowsRelease() ghrel.Release {
	return ghrel.Release{
		TagName: "v2.1.0",
		Assets: []ghrel.Asset{
			{Name: "ffuf_2.1.0_linux_amd64.tar.gz", BrowserDownloadURL: "url-linux"},
			{Name: "ffuf_2.1.0_windows_amd64.zip", BrowserDownloadURL: "url-windows"},
			{Name: "checksums.txt", BrowserDownloadURL: "url-sums"},
		},
	}
}

func stubArchiver(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("stub archiver script requires a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "fake7z")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\nexit 0\n"), 0o755))
	return path
}

func TestRunDownloadOnly(t *testing.T) {
	src := &fakeSource{release: windowsRelease()}
	dir := t.TempDir()

	res, err := Run(context.Background(), src, Options{
		Owner:          "ffuf",
		Repo:           "ffuf",
		Tag:            "latest",
		Pattern:        "checksums.txt",
		DownloadFolder: dir,
	})
	require.NoError(t, err)

	assert.Equal(t, "latest", src.gotTag)
	assert.Equal(t, []string{"url-sums"}, src.downloadURLs)
	assert.Equal(t, "v2.1.0", res.Tag)
	assert.Equal(t, "checksums.txt", res.AssetName)
	assert.Equal(t, filepath.Join(dir, "checksums.txt"), res.ArchivePath)
	assert.False(t, res.Extracted)

	_, statErr := os.Stat(res.ArchivePath)
	assert.NoError(t, statErr)
}

func TestRunExtractionSkippedForNonArchive(t *testing.T) {
	src := &fakeSource{release: windowsRelease()}

	res, err := Run(context.Background(), src, Options{
		Owner:           "ffuf",
		Repo:            "ffuf",
		Pattern:         "checksums.txt",
		DownloadFolder:  t.TempDir(),
		ExtractEnabled:  true,
		ArchiveToolPath: "definitely-not-a-real-archiver",
	})
	require.NoError(t, err)
	assert.False(t, res.Extracted)
}

func TestRunExtractAndDelete(t *testing.T) {
	src := &fakeSource{release: windowsRelease()}
	dir := t.TempDir()

	res, err := Run(context.Background(), src, Options{
		Owner:              "ffuf",
		Repo:               "ffuf",
		Pattern:            "ffuf_*_windows_amd64.zip",
		DownloadFolder:     dir,
		ExtractEnabled:     true,
		ArchiveToolPath:    stubArchiver(t),
		DeleteAfterExtract: true,
	})
	require.NoError(t, err)

	assert.True(t, res.Extracted)
	assert.Equal(t, filepath.Join(dir, "ffuf"), res.ExtractFolder)
	assert.True(t, res.Deleted)
	assert.NoError(t, res.DeleteErr)

	_, statErr := os.Stat(res.ArchivePath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunDeleteFailureIsNonFatal(t *testing.T) {
	src := &fakeSource{release: windowsRelease()}
	dir := t.TempDir()

	// The stub archiver consumes the archive itself, so the post-extract
	// deletion has nothing left to remove.
	if runtime.GOOS == "windows" {
		t.Skip("stub archiver script requires a POSIX shell")
	}
	tool := filepath.Join(t.TempDir(), "fake7z")
	require.NoError(t, os.WriteFile(tool, []byte("#!/bin/sh\nrm -f \"$2\"\nexit 0\n"), 0o755))

	res, err := Run(context.Background(), src, Options{
		Owner:              "ffuf",
		Repo:               "ffuf",
		Pattern:            "ffuf_*_windows_amd64.zip",
		DownloadFolder:     dir,
		ExtractEnabled:     true,
		ArchiveToolPath:    tool,
		DeleteAfterExtract: true,
	})
	require.NoError(t, err, "a failed deletion must not fail the run")

	assert.True(t, res.Extracted)
	assert.False(t, res.Deleted)
	assert.Error(t, res.DeleteErr)
}

func TestRunExtractFolderOverride(t *testing.T) {
	src := &fakeSource{release: windowsRelease()}
	dest := filepath.Join(t.TempDir(), "custom")

	res, err := Run(context.Background(), src, Options{
		Owner:           "ffuf",
		Repo:            "ffuf",
		Pattern:         "ffuf_*_windows_amd64.zip",
		DownloadFolder:  t.TempDir(),
		ExtractEnabled:  true,
		ArchiveToolPath: stubArchiver(t),
		ExtractFolder:   dest,
	})
	require.NoError(t, err)
	assert.Equal(t, dest, res.ExtractFolder)

	// Archive kept when delete-after-extract is off.
	_, statErr := os.Stat(res.ArchivePath)
	assert.NoError(t, statErr)
}

func TestRunAmbiguousPatternAborts(t *testing.T) {
	src := &fakeSource{release: windowsRelease()}

	_, err := Run(context.Background(), src, Options{
		Owner:          "ffuf",
		Repo:           "ffuf",
		Pattern:        "ffuf_*",
		DownloadFolder: t.TempDir(),
	})

	var ambiguous *assets.AmbiguousMatchError
	require.True(t, errors.As(err, &ambiguous))
	assert.Empty(t, src.downloadURLs, "no download may happen after a failed selection")
}

func TestRunDefaultsPatternAndFolder(t *testing.T) {
	src := &fakeSource{release: ghrel.Release{
		TagName: "v1.0.0",
		Assets:  []ghrel.Asset{{Name: "only.bin", BrowserDownloadURL: "url"}},
	}}

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	defer func() { _ = os.Chdir(wd) }()

	res, err := Run(context.Background(), src, Options{Owner: "o", Repo: "r"})
	require.NoError(t, err)
	assert.Equal(t, "only.bin", res.AssetName)
	assert.Equal(t, "only.bin", res.ArchivePath)
}
