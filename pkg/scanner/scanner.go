// Package scanner finds the video files of a directory.
package scanner

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/user/droneframes/pkg/ports"
)

// ErrDirNotFound is returned when the input directory does not exist.
var ErrDirNotFound = errors.New("scanner: directory not found")

// DefaultExtensions are used when no filter is given. Matching is case-sensitive.
var DefaultExtensions = []string{".mp4", ".avi", ".mov", ".MP4", ".AVI", ".MOV", ".mkv", ".MKV"}

// NormalizeExtensions adds the leading dot where missing and drops blanks
// and duplicates. An empty list yields DefaultExtensions.
func NormalizeExtensions(exts []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, ext := range exts {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if !seen[ext] {
			seen[ext] = true
			out = append(out, ext)
		}
	}
	if len(out) == 0 {
		return append([]string(nil), DefaultExtensions...)
	}
	return out
}

// Scan returns the sorted paths of the regular files directly inside dir
// whose name ends with one of exts. Subdirectories are not searched.
func Scan(fs ports.FileSystem, dir string, exts []string) ([]string, error) {
	isDir, err := fs.IsDir(dir)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", dir, err)
	}
	if !isDir {
		return nil, fmt.Errorf("%w: %s", ErrDirNotFound, dir)
	}

	names, err := fs.ListFiles(dir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}

	exts = NormalizeExtensions(exts)
	var videos []string
	for _, name := range names {
		for _, ext := range exts {
			if strings.HasSuffix(name, ext) && len(name) > len(ext) {
				videos = append(videos, filepath.Join(dir, name))
				break
			}
		}
	}

	sort.Strings(videos)
	return videos, nil
}
