package sessionstore

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/spf13/afero"

	"github.com/fjl/giosci/internal/calc"
	"github.com/fjl/giosci/internal/plot"
)

const testDir = "/data"

func newTestStore(t *testing.T, fs afero.Fs) (*Store, *test.Hook) {
	t.Helper()
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	return NewStore(testDir, WithFs(fs), WithLogger(log)), hook
}

func writeLog(t *testing.T, fs afero.Fs, content []byte) {
	t.Helper()
	if err := fs.MkdirAll(testDir, 0700); err != nil {
		t.Fatal(err)
	}
	if err := afero.WriteFile(fs, filepath.Join(testDir, dataFileName), content, 0644); err != nil {
		t.Fatal(err)
	}
}

func nextEvent(t *testing.T, s *Store) Event {
	t.Helper()
	select {
	case ev := <-s.Events():
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for store event")
		return nil
	}
}

func readLog(t *testing.T, fs afero.Fs) (calc.Snapshot, int) {
	t.Helper()
	data, err := afero.ReadFile(fs, filepath.Join(testDir, dataFileName))
	if err != nil {
		t.Fatal(err)
	}
	snap, count, err := replay(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("replay error: %v", err)
	}
	return snap, count
}

func TestStoreRestore(t *testing.T) {
	fs := afero.NewMemMapFs()
	s, _ := newTestStore(t, fs)
	window, _ := plot.DefaultWindow().Zoom(0.5)
	s.SetMemory(5)
	s.SetSettings(calc.ModeScientific, calc.Degrees)
	s.SetSlot(1, "x^2")
	s.SetWindow(window)
	s.Close()

	want := calc.New().Snapshot()
	want.Memory = 5
	want.Mode = calc.ModeScientific
	want.Angle = calc.Degrees
	want.Slots[1] = "x^2"
	want.Window = window

	s, _ = newTestStore(t, fs)
	defer s.Close()
	ev, ok := nextEvent(t, s).(*Restored)
	if !ok {
		t.Fatalf("got %T, want *Restored", ev)
	}
	if ev.Events != 4 {
		t.Errorf("replayed %d events, want 4", ev.Events)
	}
	if diff := cmp.Diff(want, ev.Snapshot); diff != "" {
		t.Errorf("restored snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestStoreNoEcho(t *testing.T) {
	fs := afero.NewMemMapFs()
	s, _ := newTestStore(t, fs)
	s.SetMemory(1)
	s.SetMemory(2)
	s.Close()

	select {
	case ev := <-s.Events():
		t.Fatalf("unexpected event %T", ev)
	default:
	}
	snap, _ := readLog(t, fs)
	if snap.Memory != 2 {
		t.Errorf("memory = %v, want 2", snap.Memory)
	}
}

func TestStoreIOError(t *testing.T) {
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())
	s, hook := newTestStore(t, fs)
	defer s.Close()

	ev, ok := nextEvent(t, s).(*IOError)
	if !ok {
		t.Fatalf("got %T, want *IOError", ev)
	}
	if !strings.Contains(ev.Err.Error(), "data directory") {
		t.Errorf("unexpected error %q", ev.Err)
	}
	if e := hook.LastEntry(); e == nil || e.Level != logrus.ErrorLevel {
		t.Errorf("error was not logged: %v", e)
	}
}

func TestStoreDamagedLog(t *testing.T) {
	fs := afero.NewMemMapFs()
	content := `{"type":"memory","event":{"Value":7}}` + "\n" + `{"type":"slot","eve`
	writeLog(t, fs, []byte(content))

	s, _ := newTestStore(t, fs)
	ev, ok := nextEvent(t, s).(*Restored)
	if !ok {
		t.Fatalf("got %T, want *Restored", ev)
	}
	if ev.Snapshot.Memory != 7 || ev.Events != 1 {
		t.Errorf("restored memory %v from %d events, want 7 from 1", ev.Snapshot.Memory, ev.Events)
	}
	s.SetMemory(8)
	s.Close()

	snap, count := readLog(t, fs)
	if count != 2 || snap.Memory != 8 {
		t.Errorf("log has memory %v in %d events, want 8 in 2", snap.Memory, count)
	}
}

func TestStoreUnknownEvent(t *testing.T) {
	fs := afero.NewMemMapFs()
	content := `{"type":"memory","event":{"Value":1}}` + "\n" + `{"type":"bogus","event":{}}` + "\n"
	writeLog(t, fs, []byte(content))
	s, hook := newTestStore(t, fs)
	defer s.Close()

	ev, ok := nextEvent(t, s).(*Restored)
	if !ok {
		t.Fatalf("got %T, want *Restored", ev)
	}
	if ev.Snapshot.Memory != 1 {
		t.Errorf("memory = %v, want 1", ev.Snapshot.Memory)
	}
	var warned bool
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel {
			warned = true
		}
	}
	if !warned {
		t.Error("damaged log was not reported")
	}
}

func TestStoreCompaction(t *testing.T) {
	fs := afero.NewMemMapFs()
	var buf bytes.Buffer
	for i := 0; i < maxLogEvents+10; i++ {
		fmt.Fprintf(&buf, `{"type":"memory","event":{"Value":%d}}`+"\n", i)
	}
	writeLog(t, fs, buf.Bytes())

	s, _ := newTestStore(t, fs)
	ev, ok := nextEvent(t, s).(*Restored)
	if !ok {
		t.Fatalf("got %T, want *Restored", ev)
	}
	if ev.Events != maxLogEvents+10 {
		t.Errorf("replayed %d events, want %d", ev.Events, maxLogEvents+10)
	}
	s.Close()

	snap, count := readLog(t, fs)
	if count != 1 {
		t.Errorf("compacted log has %d events, want 1", count)
	}
	if snap.Memory != maxLogEvents+9 {
		t.Errorf("memory = %v, want %d", snap.Memory, maxLogEvents+9)
	}
	if exists, _ := afero.Exists(fs, filepath.Join(testDir, dataFileName+".tmp")); exists {
		t.Error("temporary file left behind")
	}
}

func TestDiffApply(t *testing.T) {
	old := calc.New().Snapshot()
	cur := old
	cur.Memory = -2.5
	cur.Angle = calc.Degrees
	cur.Slots = cur.Slots.Set(4, "ln(x)")
	cur.Window.XMax = 20

	evs := Diff(old, cur)
	if len(evs) != 4 {
		t.Fatalf("got %d events, want 4", len(evs))
	}
	got := old
	for _, ev := range evs {
		got = Apply(got, ev)
	}
	if diff := cmp.Diff(cur, got); diff != "" {
		t.Errorf("folded snapshot mismatch (-want +got):\n%s", diff)
	}
	if evs := Diff(cur, cur); len(evs) != 0 {
		t.Errorf("diff of equal snapshots: %v", evs)
	}
}
