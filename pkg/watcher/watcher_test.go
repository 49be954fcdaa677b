package watcher

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func waitChanged(t *testing.T, w *Watcher) {
	t.Helper()
	select {
	case <-w.Changed():
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for change notification")
	}
}

func TestDebouncer_CoalescesRapidTriggers(t *testing.T) {
	d := NewDebouncer(50 * time.Millisecond)

	var calls atomic.Int32
	for i := 0; i < 10; i++ {
		d.Trigger(func() { calls.Add(1) })
		time.Sleep(10 * time.Millisecond)
	}
	time.Sleep(120 * time.Millisecond)

	if n := calls.Load(); n != 1 {
		t.Errorf("expected 1 callback, got %d", n)
	}
}

func TestDebouncer_Cancel(t *testing.T) {
	d := NewDebouncer(50 * time.Millisecond)
	var called atomic.Bool
	d.Trigger(func() { called.Store(true) })
	d.Cancel()
	time.Sleep(100 * time.Millisecond)
	if called.Load() {
		t.Error("callback ran after Cancel")
	}
	if NewDebouncer(0).Duration() != DefaultDebounceDuration {
		t.Error("non-positive duration should select the default")
	}
}

func TestNew_DeduplicatesAndGroupsByDir(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "core.json")
	b := filepath.Join(dir, "extra.yaml")

	w, err := New([]string{a, b, a})
	if err != nil {
		t.Fatal(err)
	}
	if w.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", w.Len())
	}
	if got := w.Paths(); got[0] != a || got[1] != b {
		t.Errorf("Paths() = %v", got)
	}
	if p, ok := w.watched(filepath.Join(dir, "extra.yaml")); !ok || p != b {
		t.Errorf("watched(extra) = %q, %v", p, ok)
	}
	if _, ok := w.watched(filepath.Join(dir, "notes.txt")); ok {
		t.Error("unrelated files in a watched dir must be ignored")
	}
}

func TestWatcher_FsnotifyDetectsWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lessons.json")
	writeFile(t, path, "[]")

	var (
		mu  sync.Mutex
		got string
	)
	w, err := WatchFiles([]string{path},
		WithDebounceDuration(30*time.Millisecond),
		WithOnChange(func(p string) {
			mu.Lock()
			got = p
			mu.Unlock()
		}),
	)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	time.Sleep(50 * time.Millisecond)
	writeFile(t, path, `[{"id":"a"}]`)
	waitChanged(t, w)

	mu.Lock()
	defer mu.Unlock()
	if got != path {
		t.Errorf("onChange path = %q, want %q", got, path)
	}
}

func TestWatcher_PollingAnyFileSignals(t *testing.T) {
	dir := t.TempDir()
	core := filepath.Join(dir, "core.json")
	extra := filepath.Join(dir, "extra.yaml")
	writeFile(t, core, "[]")
	writeFile(t, extra, "[]")

	w, err := WatchFiles([]string{core, extra},
		WithDebounceDuration(20*time.Millisecond),
		WithPollInterval(30*time.Millisecond),
		WithForcePoll(true),
	)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Stop()
	if !w.IsPolling() {
		t.Fatal("expected polling mode")
	}

	time.Sleep(50 * time.Millisecond)
	writeFile(t, extra, "- id: a\n  title: A\n  star_rating: 1\n")
	waitChanged(t, w)
}

func TestWatcher_PollingSeesLateCreation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "later.jsonl")

	w, err := WatchFiles([]string{path},
		WithDebounceDuration(10*time.Millisecond),
		WithPollInterval(25*time.Millisecond),
		WithForcePoll(true),
	)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	writeFile(t, path, "{}\n")
	waitChanged(t, w)
}

func TestWatcher_EnvForcePolling(t *testing.T) {
	t.Setenv(ForcePollEnvVar, "yes")
	path := filepath.Join(t.TempDir(), "lessons.json")
	writeFile(t, path, "[]")

	w, err := WatchFiles([]string{path})
	if err != nil {
		t.Fatal(err)
	}
	defer w.Stop()
	if !w.IsPolling() {
		t.Fatalf("%s should force polling", ForcePollEnvVar)
	}
}

func TestWatcher_RemoteFilesystemPolls(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lessons.json")
	writeFile(t, path, "[]")

	orig := detectFilesystemTypeFunc
	detectFilesystemTypeFunc = func(string) FilesystemType { return FSTypeNFS }
	t.Cleanup(func() { detectFilesystemTypeFunc = orig })

	w, err := WatchFiles([]string{path}, WithPollInterval(time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	defer w.Stop()
	if !w.IsPolling() {
		t.Fatal("datasets on NFS should be polled")
	}
	if w.PollInterval() != time.Hour {
		t.Errorf("PollInterval() = %v", w.PollInterval())
	}
}

func TestWatcher_FileRemovedIsReported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lessons.json")
	writeFile(t, path, "[]")

	errs := make(chan error, 4)
	w, err := WatchFiles([]string{path},
		WithPollInterval(25*time.Millisecond),
		WithForcePoll(true),
		WithOnError(func(err error) {
			select {
			case errs <- err:
			default:
			}
		}),
	)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	select {
	case err := <-errs:
		if !errors.Is(err, ErrFileRemoved) {
			t.Errorf("error = %v, want ErrFileRemoved", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("removal not reported")
	}
}

func TestWatcher_StartStop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lessons.json")
	writeFile(t, path, "[]")

	w, err := New([]string{path})
	if err != nil {
		t.Fatal(err)
	}
	if w.IsStarted() {
		t.Error("New must not start the watcher")
	}
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	if err := w.Start(); !errors.Is(err, ErrAlreadyStarted) {
		t.Errorf("second Start = %v, want ErrAlreadyStarted", err)
	}
	w.Stop()
	if w.IsStarted() {
		t.Error("still started after Stop")
	}
	w.Stop()
}

func TestWatcher_NoPaths(t *testing.T) {
	w, err := WatchFiles(nil)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Stop()
	if w.Len() != 0 || !w.IsStarted() {
		t.Errorf("empty watcher: len=%d started=%v", w.Len(), w.IsStarted())
	}
}

func TestWatcher_StopDropsPendingChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lessons.json")
	writeFile(t, path, "[]")

	var calls atomic.Int32
	w, err := New([]string{path},
		WithDebounceDuration(80*time.Millisecond),
		WithOnChange(func(string) { calls.Add(1) }),
	)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	w.trigger(path)
	w.Stop()
	time.Sleep(150 * time.Millisecond)
	if calls.Load() != 0 {
		t.Error("a change pending at Stop must not be delivered")
	}
}

func TestFilesystemType_String(t *testing.T) {
	tests := []struct {
		fsType FilesystemType
		want   string
	}{
		{FSTypeUnknown, "unknown"},
		{FSTypeLocal, "local"},
		{FSTypeNFS, "nfs"},
		{FSTypeSMB, "smb"},
		{FSTypeSSHFS, "sshfs"},
		{FSTypeFUSE, "fuse"},
		{FilesystemType(99), "unknown"},
	}
	for _, tc := range tests {
		if got := tc.fsType.String(); got != tc.want {
			t.Errorf("FilesystemType(%d).String() = %q, want %q", tc.fsType, got, tc.want)
		}
	}
}

func TestEnvBool(t *testing.T) {
	tests := map[string]bool{
		"1": true, "true": true, "TRUE": true, "yes": true, "y": true, "on": true, " On ": true,
		"0": false, "false": false, "no": false, "": false, "maybe": false,
	}
	for value, want := range tests {
		t.Setenv("ACADEMY_TEST_ENV_BOOL", value)
		if got := envBool("ACADEMY_TEST_ENV_BOOL"); got != want {
			t.Errorf("envBool(%q) = %v, want %v", value, got, want)
		}
	}
}

func TestDetectFilesystemType(t *testing.T) {
	if got := DetectFilesystemType(""); got != FSTypeUnknown {
		t.Errorf("empty path = %v, want unknown", got)
	}
	// Missing files are classified by their nearest existing parent.
	_ = DetectFilesystemType(filepath.Join(t.TempDir(), "missing", "lessons.json"))
}
