package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func tempJournal(t *testing.T) *journal {
	t.Helper()
	return openJournal(filepath.Join(t.TempDir(), "history.jsonl"))
}

func entryAt(min int, typ, id string) journalEntry {
	return journalEntry{
		At:      time.Date(2024, 3, 1, 9, min, 0, 0, time.UTC),
		Type:    typ,
		EventID: id,
	}
}

func TestJournalRoundTripNewestFirst(t *testing.T) {
	j := tempJournal(t)
	for i, typ := range []string{"add", "update", "delete"} {
		if err := j.append(entryAt(i, typ, "e1")); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	entries, skipped, err := j.readPage(10, 0)
	if err != nil {
		t.Fatalf("readPage: %v", err)
	}
	if skipped != 0 {
		t.Fatalf("skipped = %d", skipped)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries", len(entries))
	}
	if entries[0].Type != "delete" || entries[2].Type != "add" {
		t.Fatalf("not newest first: %s, %s, %s", entries[0].Type, entries[1].Type, entries[2].Type)
	}
}

func TestJournalPaging(t *testing.T) {
	j := tempJournal(t)
	for i := 0; i < 5; i++ {
		if err := j.append(entryAt(i, "add", "e1")); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	page0, _, err := j.readPage(2, 0)
	if err != nil {
		t.Fatal(err)
	}
	page1, _, err := j.readPage(2, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(page0) != 2 || len(page1) != 2 {
		t.Fatalf("page sizes %d, %d", len(page0), len(page1))
	}
	if !page0[0].At.After(page1[0].At) {
		t.Fatal("page 0 should be newer than page 1")
	}
	if beyond, _, _ := j.readPage(2, 9); len(beyond) != 0 {
		t.Fatalf("page past the end returned %d entries", len(beyond))
	}
}

func TestJournalMissingFileIsEmpty(t *testing.T) {
	j := tempJournal(t)
	entries, skipped, err := j.readPage(10, 0)
	if err != nil || skipped != 0 || len(entries) != 0 {
		t.Fatalf("got %v, %d, %v", entries, skipped, err)
	}
}

func TestJournalSkipsMalformedLines(t *testing.T) {
	j := tempJournal(t)
	if err := j.append(entryAt(0, "add", "e1")); err != nil {
		t.Fatal(err)
	}
	f, err := os.OpenFile(j.path, os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.WriteString("not json\n"); err != nil {
		t.Fatal(err)
	}
	f.Close()
	if err := j.append(entryAt(1, "delete", "e1")); err != nil {
		t.Fatal(err)
	}

	entries, skipped, err := j.readPage(10, 0)
	if err != nil {
		t.Fatal(err)
	}
	if skipped != 1 || len(entries) != 2 {
		t.Fatalf("skipped = %d, entries = %d", skipped, len(entries))
	}
}

func TestMutationsAreJournaled(t *testing.T) {
	isolateEnv(t)
	fake := seedFake()
	withFakeStore(t, fake)
	data := filepath.Join(t.TempDir(), "events.json")

	_, _, err := runMcal(t, "events", "reschedule", "e2", "2024-03-10", "--json", "--data", data)
	if err != nil {
		t.Fatalf("reschedule: %v", err)
	}

	j := openJournal(filepath.Join(filepath.Dir(data), "history.jsonl"))
	entries, _, err := j.readPage(10, 0)
	if err != nil {
		t.Fatalf("readPage: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d journal entries", len(entries))
	}
	e := entries[0]
	if e.Type != "reschedule" || e.EventID != "e2" {
		t.Fatalf("entry = %+v", e)
	}
	if e.Prev == nil || e.Prev.Date != "2024-03-01" {
		t.Fatalf("prev = %+v", e.Prev)
	}
	if e.Next == nil || e.Next.Date != "2024-03-10" || e.Next.EndDate != "2024-03-12" {
		t.Fatalf("next = %+v", e.Next)
	}
}

func TestHistoryCommandReadsJournal(t *testing.T) {
	isolateEnv(t)
	fake := seedFake()
	withFakeStore(t, fake)
	data := filepath.Join(t.TempDir(), "events.json")

	if _, _, err := runMcal(t, "events", "delete", "e1", "--force", "--data", data); err != nil {
		t.Fatalf("delete: %v", err)
	}

	out, _, err := runMcal(t, "history", "--json", "--data", data)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	var entries []journalEntry
	mustUnmarshal(t, decodeEnvelope(t, out).Data, &entries)
	if len(entries) != 1 || entries[0].Type != "delete" {
		t.Fatalf("entries = %+v", entries)
	}
	if entries[0].Prev == nil || entries[0].Prev.Title != "AI Launch Briefing" {
		t.Fatalf("prev = %+v", entries[0].Prev)
	}
}
