// Package ghrel talks to the GitHub Releases REST API. It fetches a single
// release by tag, the latest release, or every release of a repository, and
// streams a release asset to a local file with optional token-based
// authentication.
package ghrel
