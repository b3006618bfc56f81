package client

import (
	"context"
	"sort"
	"sync"
)

// TaskAPI is the slice of the API the cache needs. *Client satisfies it.
type TaskAPI interface {
	Tasks(ctx context.Context, filter *TaskFilter) ([]Task, error)
	Task(ctx context.Context, id string) (*Task, error)
	UpdateTask(ctx context.Context, id string, patch TaskPatch) (*Task, error)
	ReorderTasks(ctx context.Context, updates []PositionUpdate) error
}

var _ TaskAPI = (*Client)(nil)

// TaskCache keeps the task list and per-task detail entries, applying
// mutations optimistically before the server confirms them. A failed mutation
// restores the snapshot taken when it started; a settled mutation marks the
// affected entries stale so the next read refetches server truth.
//
// Rollbacks are guarded by per-entity mutation stamps: when two optimistic
// writes overlap on the same task, only the newest one's rollback may touch
// it, so a late failure cannot stomp a later update.
type TaskCache struct {
	api TaskAPI

	mu          sync.Mutex
	list        []Task
	listValid   bool
	listStamp   uint64
	details     map[string]Task
	detailValid map[string]bool
	stamps      map[string]uint64
}

func NewTaskCache(api TaskAPI) *TaskCache {
	return &TaskCache{
		api:         api,
		details:     make(map[string]Task),
		detailValid: make(map[string]bool),
		stamps:      make(map[string]uint64),
	}
}

// List returns the cached task list, refetching if it has been invalidated.
func (c *TaskCache) List(ctx context.Context) ([]Task, error) {
	c.mu.Lock()
	if c.listValid {
		out := make([]Task, len(c.list))
		copy(out, c.list)
		c.mu.Unlock()
		return out, nil
	}
	c.mu.Unlock()

	tasks, err := c.api.Tasks(ctx, nil)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.list = tasks
	c.listValid = true
	out := make([]Task, len(c.list))
	copy(out, c.list)
	c.mu.Unlock()
	return out, nil
}

// Get returns the cached detail entry, refetching if invalidated.
func (c *TaskCache) Get(ctx context.Context, id string) (*Task, error) {
	c.mu.Lock()
	if c.detailValid[id] {
		task := c.details[id]
		c.mu.Unlock()
		return &task, nil
	}
	c.mu.Unlock()

	task, err := c.api.Task(ctx, id)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.details[id] = *task
	c.detailValid[id] = true
	c.mu.Unlock()
	return task, nil
}

type taskSnapshot struct {
	listIndex   int
	listEntry   Task
	detail      Task
	hadDetail   bool
	detailValid bool
}

// UpdateTask applies the patch to the cached entries immediately, then sends
// it to the server. On failure the snapshot is restored exactly; either way
// the list is invalidated on settle so the next read reconciles with the
// server.
func (c *TaskCache) UpdateTask(ctx context.Context, id string, patch TaskPatch) error {
	c.mu.Lock()
	snap := taskSnapshot{listIndex: -1}
	for i := range c.list {
		if c.list[i].ID == id {
			snap.listIndex = i
			snap.listEntry = c.list[i]
			patch.apply(&c.list[i])
			break
		}
	}
	if detail, ok := c.details[id]; ok {
		snap.detail = detail
		snap.hadDetail = true
		snap.detailValid = c.detailValid[id]
		updated := detail
		patch.apply(&updated)
		c.details[id] = updated
	}
	c.stamps[id]++
	stamp := c.stamps[id]
	c.mu.Unlock()

	_, err := c.api.UpdateTask(ctx, id, patch)

	c.mu.Lock()
	if err != nil {
		// Roll back only if no newer write has stamped this task since.
		if c.stamps[id] == stamp {
			if snap.listIndex >= 0 && snap.listIndex < len(c.list) && c.list[snap.listIndex].ID == id {
				c.list[snap.listIndex] = snap.listEntry
			}
			if snap.hadDetail {
				c.details[id] = snap.detail
				c.detailValid[id] = snap.detailValid
			} else {
				delete(c.details, id)
				delete(c.detailValid, id)
			}
		}
	} else {
		c.detailValid[id] = false
	}
	c.listValid = false
	c.mu.Unlock()
	return err
}

// ReorderTasks re-sorts the cached list by the new position map immediately,
// then sends the bulk update. On failure the previous order is restored; on
// settle the list is invalidated either way.
func (c *TaskCache) ReorderTasks(ctx context.Context, updates []PositionUpdate) error {
	positions := make(map[string]int, len(updates))
	for _, u := range updates {
		positions[u.ID] = u.Position
	}

	c.mu.Lock()
	snapshot := make([]Task, len(c.list))
	copy(snapshot, c.list)

	for i := range c.list {
		if pos, ok := positions[c.list[i].ID]; ok {
			p := pos
			c.list[i].Position = &p
		}
	}
	sort.SliceStable(c.list, func(i, j int) bool {
		a, b := c.list[i].Position, c.list[j].Position
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return *a < *b
	})
	c.listStamp++
	stamp := c.listStamp
	c.mu.Unlock()

	err := c.api.ReorderTasks(ctx, updates)

	c.mu.Lock()
	if err != nil && c.listStamp == stamp {
		c.list = snapshot
	}
	c.listValid = false
	c.mu.Unlock()
	return err
}

// CachedList returns the current cache contents without fetching, stale or
// not. UI layers render from this while a refetch is in flight.
func (c *TaskCache) CachedList() []Task {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Task, len(c.list))
	copy(out, c.list)
	return out
}

// CachedTask returns the detail entry without fetching.
func (c *TaskCache) CachedTask(id string) (Task, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	task, ok := c.details[id]
	return task, ok
}

// Invalidate drops everything, forcing refetches.
func (c *TaskCache) Invalidate() {
	c.mu.Lock()
	c.listValid = false
	c.detailValid = make(map[string]bool)
	c.mu.Unlock()
}
