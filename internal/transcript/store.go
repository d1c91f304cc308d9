// Package transcript keeps an append-only jsonl log of what happened
// during a play session: pages visited, choices taken, records changed.
// The log is a record for the player to read back, not a replay mechanism.
package transcript

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// EntryType tags what kind of moment an entry captures.
type EntryType string

const (
	EntryPageVisited   EntryType = "page_visited"
	EntryChoiceTaken   EntryType = "choice_taken"
	EntryRecordChanged EntryType = "record_changed"
	EntryGameOver      EntryType = "game_over"
)

// Entry is one logged moment. Only the fields relevant to its type are
// filled in.
type Entry struct {
	Type   EntryType `json:"type"`
	Page   string    `json:"page,omitempty"`
	Choice string    `json:"choice,omitempty"`
	Record string    `json:"record,omitempty"`
	Value  int       `json:"value,omitempty"`
	At     time.Time `json:"at"`
}

// Store handles append-only writing of the transcript log.
type Store struct {
	file *os.File
}

// NewStore opens or creates the file at path for appending lines.
func NewStore(path string) (*Store, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open transcript file: %w", err)
	}
	return &Store{file: file}, nil
}

// Append marshals one entry to the jsonl log, stamping it if unstamped.
func (s *Store) Append(entry Entry) error {
	if entry.At.IsZero() {
		entry.At = time.Now()
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	if _, err := s.file.Write(append(data, '\n')); err != nil {
		return err
	}
	return s.file.Sync()
}

// Load replays the whole log back as a slice of entries.
func (s *Store) Load() ([]Entry, error) {
	if _, err := s.file.Seek(0, 0); err != nil {
		return nil, err
	}

	var entries []Entry
	scanner := bufio.NewScanner(s.file)
	for scanner.Scan() {
		var entry Entry
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			return nil, fmt.Errorf("failed to decode transcript line: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// Close handles safe shutdown.
func (s *Store) Close() error {
	return s.file.Close()
}
