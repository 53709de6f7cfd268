// Package fonts locates TTF/OTF files for the overlay UI under assets/fonts.
package fonts

import (
	"os"
	"path/filepath"
	"strings"
)

// Exts are the font file extensions considered when scanning.
var Exts = []string{".ttf", ".otf"}

// BaseDirs returns candidate base directories for fonts (relative to process cwd), so the
// viewer finds its assets whether run from the repo root or from cmd/portfolio.
func BaseDirs() []string {
	return []string{"assets/fonts", "../../assets/fonts"}
}

// ScanDir returns relative paths of all font files under dir (e.g. "Inter/Inter-Regular.ttf").
// Paths use forward slashes. A missing dir yields no paths and no error.
func ScanDir(dir string) ([]string, error) {
	var out []string
	dir = filepath.Clean(dir)
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if info.IsDir() || !isFont(path) {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		out = append(out, filepath.ToSlash(rel))
		return nil
	})
	return out, err
}

func isFont(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Exts {
		if ext == e {
			return true
		}
	}
	return false
}

// normalizeForMatch lowercases and removes spaces, dashes, and underscores for fuzzy matching.
func normalizeForMatch(s string) string {
	s = strings.ToLower(s)
	return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(s)
}

// Resolve turns a configured font into a loadable path. An existing file path is returned as
// is; otherwise name is searched under BaseDirs. Empty name means "use the built-in font" and
// returns os.ErrNotExist.
func Resolve(name string) (string, error) {
	return ResolveIn(BaseDirs(), name)
}

// ResolveIn is Resolve over explicit base directories.
func ResolveIn(dirs []string, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", os.ErrNotExist
	}
	if info, err := os.Stat(name); err == nil && !info.IsDir() && isFont(name) {
		return name, nil
	}
	_, full, err := FindFontIn(dirs, name)
	return full, err
}

// FindFontIn searches dirs for a font file whose path fuzzily contains search (e.g. "Inter",
// "Google Sans", "Inter-Regular"). It returns the relative and full path of the match. When
// several files match, one whose path contains "regular" wins.
func FindFontIn(dirs []string, search string) (relPath string, fullPath string, err error) {
	norm := normalizeForMatch(strings.TrimSuffix(strings.TrimSuffix(search, ".ttf"), ".otf"))
	if norm == "" {
		return "", "", os.ErrNotExist
	}
	type match struct{ rel, full string }
	var candidates []match
	for _, base := range dirs {
		list, walkErr := ScanDir(base)
		if walkErr != nil {
			continue
		}
		for _, rel := range list {
			if strings.Contains(normalizeForMatch(rel), norm) {
				candidates = append(candidates, match{rel, filepath.Join(base, filepath.FromSlash(rel))})
			}
		}
	}
	if len(candidates) == 0 {
		return "", "", os.ErrNotExist
	}
	for _, c := range candidates {
		if strings.Contains(strings.ToLower(c.rel), "regular") {
			return c.rel, c.full, nil
		}
	}
	return candidates[0].rel, candidates[0].full, nil
}
