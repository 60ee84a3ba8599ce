package app

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/janeyeyey/mcal/internal/contract"
)

// journalEntry records one mutation for `mcal history`. Prev and Next carry
// the event before and after the change; a delete has no Next and an add has
// no Prev.
type journalEntry struct {
	At      time.Time       `json:"at"`
	Type    string          `json:"type"`
	EventID string          `json:"eventId"`
	Prev    *contract.Event `json:"prev,omitempty"`
	Next    *contract.Event `json:"next,omitempty"`
}

type journal struct {
	path string
}

func openJournal(path string) *journal {
	return &journal{path: path}
}

// append writes one entry to the end of the log. Journal failures never fail
// the mutation that produced them; callers surface them as warnings.
func (j *journal) append(entry journalEntry) error {
	if err := os.MkdirAll(filepath.Dir(j.path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(j.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(entry)
	if err != nil {
		f.Close()
		return err
	}
	if _, err := f.Write(append(raw, '\n')); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// readPage returns up to limit entries, newest first, skipping page*limit
// newest entries. Malformed lines are counted but not returned.
func (j *journal) readPage(limit, page int) ([]journalEntry, int, error) {
	f, err := os.Open(j.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, 0, nil
		}
		return nil, 0, err
	}
	defer f.Close()

	var all []journalEntry
	skipped := 0
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		var entry journalEntry
		if err := json.Unmarshal(sc.Bytes(), &entry); err != nil {
			skipped++
			continue
		}
		all = append(all, entry)
	}
	if err := sc.Err(); err != nil {
		return nil, skipped, err
	}

	// Newest first.
	for i, jj := 0, len(all)-1; i < jj; i, jj = i+1, jj-1 {
		all[i], all[jj] = all[jj], all[i]
	}
	if limit <= 0 {
		limit = 20
	}
	start := page * limit
	if start >= len(all) {
		return nil, skipped, nil
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], skipped, nil
}

func appendJournal(opts *globalOptions, entry journalEntry, warn func(string)) {
	j := openJournal(opts.journalPath())
	if err := j.append(entry); err != nil {
		warn(fmt.Sprintf("could not record history entry: %v", err))
	}
}
