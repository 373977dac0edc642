// Package soundfont locates the SF2 voice bank consumed by the renderer.
package soundfont

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// ErrNotFound reports that neither the default path nor the search root
// yielded a usable soundfont.
var ErrNotFound = errors.New("no soundfont found")

const (
	// DefaultPath is the voice bank shipped by most Linux distributions.
	DefaultPath = "/usr/share/sounds/sf2/FluidR3_GM.sf2"

	// DefaultSearchRoot is scanned for any *.sf2 when DefaultPath is absent.
	DefaultSearchRoot = "/usr/share/sounds/sf2"

	sf2Ext = ".sf2"
)

type Options struct {
	DefaultPath string
	SearchRoot  string
}

func DefaultOptions() Options {
	return Options{
		DefaultPath: DefaultPath,
		SearchRoot:  DefaultSearchRoot,
	}
}

// Resolve picks exactly one voice-bank path: the default if it exists as a
// regular file, otherwise the lexically first *.sf2 found under the search
// root. It never falls through to a second candidate once one is chosen.
func Resolve(opts Options) (string, error) {
	if opts.DefaultPath != "" {
		if fi, err := os.Stat(opts.DefaultPath); err == nil && fi.Mode().IsRegular() {
			return opts.DefaultPath, nil
		}
	}
	if opts.SearchRoot == "" {
		return "", ErrNotFound
	}
	var matches []string
	_ = filepath.WalkDir(opts.SearchRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable entry or missing root; keep whatever was found.
			return nil
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), sf2Ext) {
			matches = append(matches, path)
		}
		return nil
	})
	if len(matches) == 0 {
		return "", errors.Wrapf(ErrNotFound, "searched %s", opts.SearchRoot)
	}
	// WalkDir visits lexically, but sort anyway so the pick is stable even
	// if the walk order ever changes.
	sort.Strings(matches)
	return matches[0], nil
}
