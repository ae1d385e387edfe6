// Package extract unpacks downloaded archives by driving an external
// archiver. Archive codecs are deliberately not implemented here: the
// contract is "given a local archive and a destination folder, produce its
// unpacked contents", and 7-Zip covers every format this tool recognizes.
package extract

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// archiveExtensions are the filename extensions (lower-cased, without dot)
// that trigger extraction.
var archiveExtensions = map[string]struct{}{
	"zip": {},
	"7z":  {},
	"gz":  {},
	"rar": {},
	"xz":  {},
	"bz2": {},
}

// IsArchive reports whether name has a recognized archive extension.
// Detection is case-insensitive.
func IsArchive(name string) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	_, ok := archiveExtensions[ext]
	return ok
}

// DefaultToolPath returns the platform-specific default location of the
// 7-Zip executable.
func DefaultToolPath() string {
	if runtime.GOOS == "windows" {
		return `C:\Program Files\7-Zip\7z.exe`
	}
	return "7z"
}

// ToolMissingError reports that the configured archiver executable could not
// be found. Its message includes guidance on obtaining the tool.
type ToolMissingError struct {
	Path string
}

func (e *ToolMissingError) Error() string {
	return fmt.Sprintf("archive tool not found at %q: install 7-Zip from https://www.7-zip.org (or the p7zip package on Linux/macOS), or point --archive-tool-path at an existing archiver", e.Path)
}

// resolveTool checks that toolPath names an existing executable. Bare names
// are looked up on PATH, paths are checked on disk.
func resolveTool(toolPath string) (string, error) {
	if toolPath == "" {
		toolPath = DefaultToolPath()
	}
	if filepath.Base(toolPath) == toolPath {
		resolved, err := exec.LookPath(toolPath)
		if err != nil {
			return "", &ToolMissingError{Path: toolPath}
		}
		return resolved, nil
	}
	if _, err := os.Stat(toolPath); err != nil {
		return "", &ToolMissingError{Path: toolPath}
	}
	return toolPath, nil
}

// Extract unpacks archivePath into destDir using the archiver at toolPath,
// overwriting existing files without prompting. The destination directory is
// created if needed.
func Extract(ctx context.Context, toolPath, archivePath, destDir string) error {
	tool, err := resolveTool(toolPath)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return fmt.Errorf("create extract folder: %w", err)
	}

	// 7-Zip syntax: x extracts with full paths, -o sets the destination
	// (no space before the path), -y answers yes to all prompts.
	cmd := exec.CommandContext(ctx, tool, "x", archivePath, "-o"+destDir, "-y")

	if _, err := cmd.Output(); err != nil {
		if ee, ok := err.(*exec.ExitError); ok {
			return fmt.Errorf("extract %s: %w; stderr=%s", filepath.Base(archivePath), err, string(ee.Stderr))
		}
		return fmt.Errorf("extract %s: %w", filepath.Base(archivePath), err)
	}

	return nil
}
