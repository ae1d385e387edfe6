package cmd

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goughy12/Get-GithubRelease/internal/ghrel"
	"github.com/goughy12/Get-GithubRelease/internal/repo"
)

type listOnlySource struct {
	rels      []ghrel.Release
	downloads int
}

func (s *listOnlySource) Release(ctx context.Context, owner, repoName, tag, token string) (ghrel.Release, error) {
	return ghrel.Release{}, nil
}

func (s *listOnlySource) ListReleases(ctx context.Context, owner, repoName, token string) ([]ghrel.Release, error) {
	return s.rels, nil
}

func (s *listOnlySource) DownloadAsset(ctx context.Context, downloadURL, outPath, token string) error {
	s.downloads++
	return nil
}

func TestListReleasesPrintsTagsAndAssetsInProviderOrder(t *testing.T) {
	src := &listOnlySource{rels: []ghrel.Release{
		{TagName: "v2.1.0", Assets: []ghrel.Asset{
			{Name: "ffuf_2.1.0_windows_amd64.zip"},
			{Name: "ffuf_2.1.0_linux_amd64.tar.gz"},
		}},
		{TagName: "v2.0.0", Assets: []ghrel.Asset{
			{Name: "ffuf_2.0.0_windows_amd64.zip"},
		}},
	}}

	var out bytes.Buffer
	c := &cobra.Command{}
	c.SetOut(&out)

	ref := repo.Ref{Owner: "ffuf", Name: "ffuf"}
	require.NoError(t, listReleases(context.Background(), c, src, ref, ""))

	want := "v2.1.0\n" +
		"  ffuf_2.1.0_windows_amd64.zip\n" +
		"  ffuf_2.1.0_linux_amd64.tar.gz\n" +
		"v2.0.0\n" +
		"  ffuf_2.0.0_windows_amd64.zip\n"
	assert.Equal(t, want, out.String())
	assert.Zero(t, src.downloads, "listing must not download anything")
}
