package tracker

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// The snapshot is a JSONL file: a header line carrying the format version,
// then one pending task per line in registration order. It only exists so
// that jobs submitted before a restart are picked up again; the in-memory
// registry stays authoritative for the current process lifetime.

// snapshotVersion is the current snapshot format version.
const snapshotVersion = 1

type snapshotHeader struct {
	Version int `json:"version"`
}

// EncodeSnapshot writes the tasks to w in snapshot format.
func EncodeSnapshot(w io.Writer, tasks []PendingTask) error {
	enc := json.NewEncoder(w)
	if err := enc.Encode(snapshotHeader{Version: snapshotVersion}); err != nil {
		return fmt.Errorf("could not write snapshot header: %w", err)
	}
	for _, task := range tasks {
		if err := enc.Encode(task); err != nil {
			return fmt.Errorf("could not write snapshot entry %q: %w", task.ID, err)
		}
	}
	return nil
}

// DecodeSnapshot reads a snapshot from r. A missing or unknown version makes
// the whole snapshot unreadable.
func DecodeSnapshot(r io.Reader) ([]PendingTask, error) {
	scanner := bufio.NewScanner(r)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("error reading snapshot: %w", err)
		}
		// An empty file restores to nothing.
		return nil, nil
	}
	var header snapshotHeader
	if err := json.Unmarshal(scanner.Bytes(), &header); err != nil {
		return nil, fmt.Errorf("could not read snapshot header: %w", err)
	}
	if header.Version != snapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d", header.Version)
	}

	var tasks []PendingTask
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var task PendingTask
		if err := json.Unmarshal(line, &task); err != nil {
			return nil, fmt.Errorf("could not read snapshot entry %q: %w", string(line), err)
		}
		tasks = append(tasks, task)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading snapshot: %w", err)
	}
	return tasks, nil
}

// snapshot persists the current registry, logging failures: persistence
// errors are never fatal to the tracker.
func (t *Tracker) snapshot() {
	if err := t.writeSnapshot(); err != nil {
		t.log.Printf("snapshot write failed (ignored): %v", err)
	}
}

func (t *Tracker) writeSnapshot() error {
	if t.opts.SnapshotFile == "" {
		return nil
	}
	tasks := t.List()

	if err := os.MkdirAll(filepath.Dir(t.opts.SnapshotFile), 0755); err != nil {
		return fmt.Errorf("could not create snapshot directory: %w", err)
	}
	f, err := os.Create(t.opts.SnapshotFile)
	if err != nil {
		return fmt.Errorf("could not open snapshot %q for writing: %w", t.opts.SnapshotFile, err)
	}
	defer f.Close()

	return EncodeSnapshot(f, tasks)
}

// restore loads the last snapshot, discarding tasks older than the expiry
// window. Unreadable snapshots restore to nothing: recovery is best-effort
// and never fails startup.
func (t *Tracker) restore() []PendingTask {
	if t.opts.SnapshotFile == "" {
		return nil
	}
	f, err := os.Open(t.opts.SnapshotFile)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			t.log.Printf("could not open snapshot %q (ignored): %v", t.opts.SnapshotFile, err)
		}
		return nil
	}
	defer f.Close()

	tasks, err := DecodeSnapshot(f)
	if err != nil {
		t.log.Printf("snapshot %q is unreadable, starting empty: %v", t.opts.SnapshotFile, err)
		return nil
	}

	oldest := time.Now().Add(-t.opts.ExpireAfter)
	kept := tasks[:0]
	for _, task := range tasks {
		if task.StartedAt.Before(oldest) {
			t.log.Printf("dropping expired %s %q (task %s, started %s)", task.Kind, task.Label, task.ID, task.StartedAt.Format(time.RFC3339))
			continue
		}
		kept = append(kept, task)
	}
	return kept
}
