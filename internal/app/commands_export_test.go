package app

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/janeyeyey/mcal/internal/contract"
)

func TestExportJSONToStdout(t *testing.T) {
	isolateEnv(t)
	withFakeStore(t, seedFake())

	out, _, err := runMcal(t, "export", "json")
	if err != nil {
		t.Fatalf("export json: %v", err)
	}
	var events []contract.Event
	if err := json.Unmarshal([]byte(out), &events); err != nil {
		t.Fatalf("output is not an event array: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("exported %d events", len(events))
	}
	if !strings.Contains(out, "\n  ") {
		t.Fatal("export should be pretty-printed")
	}
}

func TestExportJSONToFile(t *testing.T) {
	isolateEnv(t)
	withFakeStore(t, seedFake())
	path := filepath.Join(t.TempDir(), "export.json")

	out, _, err := runMcal(t, "export", "json", "--out", path, "--json")
	if err != nil {
		t.Fatalf("export json: %v", err)
	}
	var meta map[string]any
	mustUnmarshal(t, decodeEnvelope(t, out).Data, &meta)
	if meta["events"] != float64(3) {
		t.Fatalf("meta = %v", meta)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var events []contract.Event
	if err := json.Unmarshal(raw, &events); err != nil {
		t.Fatalf("written file is not an event array: %v", err)
	}
}

func TestExportJSONEmptyStoreWritesEmptyArray(t *testing.T) {
	isolateEnv(t)
	withFakeStore(t, &fakeStore{})

	out, _, err := runMcal(t, "export", "json")
	if err != nil {
		t.Fatalf("export json: %v", err)
	}
	if got := strings.TrimSpace(out); got != "[]" {
		t.Fatalf("output = %q, want []", got)
	}
}

func TestExportICS(t *testing.T) {
	isolateEnv(t)
	withFakeStore(t, seedFake())

	out, _, err := runMcal(t, "export", "ics")
	if err != nil {
		t.Fatalf("export ics: %v", err)
	}
	for _, want := range []string{
		"BEGIN:VCALENDAR",
		"METHOD:PUBLISH",
		"SUMMARY:Security Workshop",
		"UID:e2@mcal",
		"DTSTART;VALUE=DATE:20240301",
		"LOCATION:Seoul Office",
		"END:VCALENDAR",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
	// Inclusive 2024-03-01..2024-03-03 exports an exclusive DTEND one day later.
	if !strings.Contains(out, "DTEND;VALUE=DATE:20240304") {
		t.Fatalf("missing exclusive end date in:\n%s", out)
	}
}

func TestExportICSSkipsMalformedDates(t *testing.T) {
	isolateEnv(t)
	fake := seedFake()
	fake.events = append(fake.events, contract.Event{
		ID: "bad", Title: "Broken", Solution: contract.SolutionSecurity, Date: "soon", Location: "x",
	})
	withFakeStore(t, fake)

	out, stderr, err := runMcal(t, "export", "ics")
	if err != nil {
		t.Fatalf("export ics: %v", err)
	}
	if strings.Contains(out, "Broken") {
		t.Fatal("malformed event was exported")
	}
	if !strings.Contains(stderr, "skipped 1") {
		t.Fatalf("stderr = %q", stderr)
	}
}

func TestExportICSSolutionFilter(t *testing.T) {
	isolateEnv(t)
	withFakeStore(t, seedFake())

	out, _, err := runMcal(t, "export", "ics", "--solution", string(contract.SolutionSecurity))
	if err != nil {
		t.Fatalf("export ics: %v", err)
	}
	if strings.Contains(out, "Cloud Roadshow") || strings.Contains(out, "AI Launch Briefing") {
		t.Fatalf("filter ignored:\n%s", out)
	}
	if !strings.Contains(out, "Security Workshop") {
		t.Fatalf("filtered event missing:\n%s", out)
	}
}
