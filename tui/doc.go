// Package tui implements the Bubble Tea terminal UI for the application.
// It shows a repository's releases in a selectable list next to inputs for
// the asset pattern, download folder and token, with keybind-driven actions
// to refresh the release list and download the matching asset.
package tui
