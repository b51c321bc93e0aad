// Package tracker follows long-running document generation jobs executed by a
// remote backend. Callers register a pending task; the tracker polls the
// backend until the job reaches a terminal state, commits the resulting
// artifact, notifies subscribers exactly once, and forgets the task. Pending
// state is snapshotted to disk so jobs survive a process restart.
package tracker

import (
	"context"
	"log"
	"sync"
	"time"
)

// Defaults for Options fields left zero.
const (
	DefaultPollInterval  = 10 * time.Second
	DefaultFlushInterval = 30 * time.Second
	DefaultExpireAfter   = 30 * time.Minute
)

// closeTimeout bounds how long Close waits for polling loops to drain.
const closeTimeout = 5 * time.Second

// Options configures a Tracker. The zero value is usable: defaults apply and
// persistence is disabled when SnapshotFile is empty.
type Options struct {
	// PollInterval is the delay between two status checks of one task.
	PollInterval time.Duration
	// FlushInterval is the delay between two periodic snapshot writes.
	FlushInterval time.Duration
	// ExpireAfter is the maximum age of a task accepted on restore.
	ExpireAfter time.Duration
	// SnapshotFile is the path of the pending-task snapshot. Empty disables
	// persistence entirely.
	SnapshotFile string
	// Logger receives operational messages. Defaults to log.Default().
	Logger *log.Logger
}

// Tracker is the process-wide supervisor for pending generation jobs.
// Construct one with New and inject it into callers; it is safe for
// concurrent use.
//
// A task registered in the current session is polled until it resolves or the
// process ends: there is deliberately no live per-task deadline, only the
// restore-time expiry window.
type Tracker struct {
	opts      Options
	resolver  StatusResolver
	committer ResultCommitter
	log       *log.Logger

	mu    sync.Mutex
	tasks map[string]PendingTask
	order []string // task ids in registration order, for first-match lookups
	loops map[string]context.CancelFunc
	subs  map[int]func(PendingTask)
	seq   int

	completions chan PendingTask

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	once   sync.Once
}

// New creates a Tracker, restores the previous snapshot (dropping entries
// older than the expiry window) and resumes polling the restored tasks as if
// they had just been registered.
func New(resolver StatusResolver, committer ResultCommitter, opts Options) *Tracker {
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}
	if opts.FlushInterval <= 0 {
		opts.FlushInterval = DefaultFlushInterval
	}
	if opts.ExpireAfter <= 0 {
		opts.ExpireAfter = DefaultExpireAfter
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())
	t := &Tracker{
		opts:        opts,
		resolver:    resolver,
		committer:   committer,
		log:         logger,
		tasks:       make(map[string]PendingTask),
		loops:       make(map[string]context.CancelFunc),
		subs:        make(map[int]func(PendingTask)),
		completions: make(chan PendingTask, 16),
		ctx:         ctx,
		cancel:      cancel,
	}

	// Restore happens before any new registration is possible.
	for _, task := range t.restore() {
		t.Register(task)
	}

	if t.opts.SnapshotFile != "" {
		t.wg.Add(1)
		go t.flushLoop()
	}
	return t
}

// Register inserts or overwrites the entry for task.ID, snapshots the
// registry and ensures a polling loop is running for it. Registering an
// already-pending id is a no-op apart from overwriting the record: only one
// loop ever exists per id. Register never fails.
func (t *Tracker) Register(task PendingTask) {
	if task.StartedAt.IsZero() {
		task.StartedAt = time.Now()
	}

	t.mu.Lock()
	if _, ok := t.tasks[task.ID]; !ok {
		t.order = append(t.order, task.ID)
	}
	t.tasks[task.ID] = task
	t.startLoop(task.ID)
	t.mu.Unlock()

	t.log.Printf("tracking %s %q since %s (task %s)", task.Kind, task.Label, task.StartedAt.Format(time.RFC3339), task.ID)
	t.snapshot()
}

// Get returns the pending task for id, if any.
func (t *Tracker) Get(id string) (PendingTask, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	task, ok := t.tasks[id]
	return task, ok
}

// FindByAsset returns the first pending task registered for the given asset
// and kind. Concurrent jobs of the same kind for the same asset are
// tolerated; the earliest registration wins the lookup.
func (t *Tracker) FindByAsset(assetID int64, kind Kind) (PendingTask, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, id := range t.order {
		task, ok := t.tasks[id]
		if ok && task.AssetID == assetID && task.Kind == kind {
			return task, true
		}
	}
	return PendingTask{}, false
}

// Pending reports whether a job of the given kind is being tracked for the asset.
func (t *Tracker) Pending(assetID int64, kind Kind) bool {
	_, ok := t.FindByAsset(assetID, kind)
	return ok
}

// PendingTaskID returns the task id of the first pending job for the asset
// and kind, if any.
func (t *Tracker) PendingTaskID(assetID int64, kind Kind) (string, bool) {
	task, ok := t.FindByAsset(assetID, kind)
	return task.ID, ok
}

// Remove evicts the task and stops its polling loop. Removing an absent id
// has no effect.
func (t *Tracker) Remove(id string) {
	t.mu.Lock()
	removed := t.removeLocked(id)
	t.mu.Unlock()
	if removed {
		t.snapshot()
	}
}

// removeLocked deletes the entry and cancels its loop. Caller holds mu.
func (t *Tracker) removeLocked(id string) bool {
	if cancel, ok := t.loops[id]; ok {
		cancel()
		delete(t.loops, id)
	}
	if _, ok := t.tasks[id]; !ok {
		return false
	}
	delete(t.tasks, id)
	for i, v := range t.order {
		if v == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return true
}

// List returns a snapshot copy of all pending tasks in registration order.
func (t *Tracker) List() []PendingTask {
	t.mu.Lock()
	defer t.mu.Unlock()
	list := make([]PendingTask, 0, len(t.order))
	for _, id := range t.order {
		list = append(list, t.tasks[id])
	}
	return list
}

// OnCompleted subscribes fn to successful completions. fn is called exactly
// once per task that completes, after the commit attempt and before the task
// leaves the registry, so Get(task.ID) still succeeds inside the callback.
// The returned function unsubscribes.
func (t *Tracker) OnCompleted(fn func(PendingTask)) (unsubscribe func()) {
	t.mu.Lock()
	id := t.seq
	t.seq++
	t.subs[id] = fn
	t.mu.Unlock()
	return func() {
		t.mu.Lock()
		delete(t.subs, id)
		t.mu.Unlock()
	}
}

// Completions is a broadcast channel carrying successfully completed tasks,
// for listeners that cannot hold a callback on the tracker. Delivery is
// best-effort: when nobody drains the channel, completions are dropped.
func (t *Tracker) Completions() <-chan PendingTask {
	return t.completions
}

// Close stops all polling loops, waits a bounded time for them to drain and
// writes a final snapshot. It is safe to call more than once.
func (t *Tracker) Close() error {
	var err error
	t.once.Do(func() {
		t.cancel()

		done := make(chan struct{})
		go func() {
			t.wg.Wait()
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(closeTimeout):
			t.log.Printf("tracker close timed out after %v, some loops may still be running", closeTimeout)
		}

		err = t.writeSnapshot()
	})
	return err
}

// startLoop arms the polling loop for id. Caller holds mu. A second call for
// a live id is a no-op.
func (t *Tracker) startLoop(id string) {
	if _, ok := t.loops[id]; ok {
		return
	}
	ctx, cancel := context.WithCancel(t.ctx)
	t.loops[id] = cancel
	t.wg.Add(1)
	go t.poll(ctx, id)
}

// poll runs one task's polling loop: an immediate check, then one check per
// tick until the task resolves or the loop is cancelled. Checks are strictly
// sequential within a task, so a completed status can never be committed twice.
func (t *Tracker) poll(ctx context.Context, id string) {
	defer t.wg.Done()

	if t.check(ctx, id) {
		return
	}
	ticker := time.NewTicker(t.opts.PollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if t.check(ctx, id) {
				return
			}
		}
	}
}

// check performs one status check for id and classifies the outcome.
// It reports whether the loop must stop.
func (t *Tracker) check(ctx context.Context, id string) bool {
	task, ok := t.Get(id)
	if !ok {
		// Removed externally between two firings: the loop self-stops.
		t.stopLoop(id)
		return true
	}

	res, err := t.resolver.CheckStatus(ctx, id)
	if err != nil {
		if ctx.Err() != nil {
			return true
		}
		// Transient: the job is treated as still running and polling
		// continues for as long as the task lives.
		t.log.Printf("status check for %q (task %s) failed, will retry: %v", task.Label, id, err)
		return false
	}

	switch {
	case res.Status == Completed:
		if err := t.committer.CommitResult(ctx, task, res.ArtifactRef); err != nil {
			// Deliberate: commits are not retried, the artifact may be lost.
			t.log.Printf("could not save %s %q (task %s), document may be lost: %v", task.Kind, task.Label, id, err)
		}
		t.notify(task)
		t.Remove(id)
		return true
	case res.Status.Terminal():
		t.log.Printf("%s %q (task %s) ended as %s", task.Kind, task.Label, id, res.Status)
		t.Remove(id)
		return true
	default:
		return false
	}
}

// stopLoop cancels the loop for id without touching the task entry. Safe to
// call from inside the loop itself.
func (t *Tracker) stopLoop(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if cancel, ok := t.loops[id]; ok {
		cancel()
		delete(t.loops, id)
	}
}

// notify fans a successful completion out to the subscribed callbacks and the
// broadcast channel. Callbacks run synchronously in the polling goroutine,
// while the task is still present in the registry.
func (t *Tracker) notify(task PendingTask) {
	t.mu.Lock()
	fns := make([]func(PendingTask), 0, len(t.subs))
	for _, fn := range t.subs {
		fns = append(fns, fn)
	}
	t.mu.Unlock()

	for _, fn := range fns {
		fn(task)
	}

	select {
	case t.completions <- task:
	default:
		// Nobody is draining, drop rather than block the loop.
	}
}

// flushLoop writes the snapshot on a fixed period until the tracker closes.
func (t *Tracker) flushLoop() {
	defer t.wg.Done()
	ticker := time.NewTicker(t.opts.FlushInterval)
	defer ticker.Stop()
	for {
		select {
		case <-t.ctx.Done():
			return
		case <-ticker.C:
			t.snapshot()
		}
	}
}
