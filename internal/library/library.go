// Package library locates adventure books on disk and hands their contents
// to the document parsers. The core never does I/O of its own; this is the
// collaborator that reads bytes and passes strings.
package library

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/purrie/adventure-book-sub000/internal/adventure"
)

const (
	// AdventureFile is the metadata file every book folder must carry.
	AdventureFile = "adventure.txt"
	// PageExtension is appended to page names when resolving their files.
	PageExtension = ".txt"
)

// Library scans one or more book directories for playable adventures.
type Library struct {
	Dirs []string
}

// New creates a library over the given book directories.
func New(dirs ...string) *Library {
	return &Library{Dirs: dirs}
}

// Capture walks every configured directory and collects the adventures it
// can load. Folders without a metadata file or with one that doesn't parse
// are skipped; a missing or unreadable directory skips silently too, since
// the search path includes locations that may not exist on this machine.
func (l *Library) Capture() []*adventure.Adventure {
	var found []*adventure.Adventure
	for _, dir := range l.Dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			bookDir := filepath.Join(dir, entry.Name())
			data, err := os.ReadFile(filepath.Join(bookDir, AdventureFile))
			if err != nil {
				continue
			}
			adv, err := adventure.ParseAdventure(string(data), bookDir)
			if err != nil {
				continue
			}
			found = append(found, adv)
		}
	}
	return found
}

// ReadPage opens a page file inside a book folder and parses it. The
// expected extension is applied to the page name automatically.
func ReadPage(bookPath, name string) (*adventure.Page, error) {
	data, err := os.ReadFile(filepath.Join(bookPath, name+PageExtension))
	if err != nil {
		return nil, fmt.Errorf("read page %q: %w", name, err)
	}
	return adventure.ParsePage(string(data))
}

// Pages adapts a book folder to the story.PageReader interface.
type Pages struct {
	Path string
}

func (p Pages) ReadPage(name string) (*adventure.Page, error) {
	return ReadPage(p.Path, name)
}
