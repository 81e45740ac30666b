package history

import (
	"sort"
	"sync"

	"github.com/planweave/planweave/core"
)

// Store persists task execution records. Implementations must tolerate
// concurrent access: an agent saves records while callers list or fetch
// them.
type Store interface {
	// Save stores a snapshot of the given execution, overwriting any record
	// with the same task id.
	Save(exec *core.TaskExecution) error

	// Get returns the record with the given task id.
	Get(taskID string) (*core.TaskExecution, bool)

	// List returns all records for the given agent, ordered by start time.
	// An empty agent id matches every record.
	List(agentID string) []*core.TaskExecution
}

// InMemoryStore is a volatile Store keeping records in a process local map.
// It is safe for concurrent access and best suited for tests or short-lived
// agents. Records are cloned on the way in and out so callers can never
// mutate stored state.
type InMemoryStore struct {
	mu    sync.RWMutex
	tasks map[string]*core.TaskExecution
}

// NewInMemoryStore constructs an empty in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{tasks: make(map[string]*core.TaskExecution)}
}

// Save stores a clone of the provided execution snapshot.
func (s *InMemoryStore) Save(exec *core.TaskExecution) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tasks[exec.TaskID] = exec.Clone()

	return nil
}

// Get returns a clone of the record with the given task id.
func (s *InMemoryStore) Get(taskID string) (*core.TaskExecution, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	exec, ok := s.tasks[taskID]
	if !ok {
		return nil, false
	}

	return exec.Clone(), true
}

// List returns clones of all records for the given agent, oldest first.
func (s *InMemoryStore) List(agentID string) []*core.TaskExecution {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var execs []*core.TaskExecution

	for _, exec := range s.tasks {
		if agentID == "" || exec.AgentID == agentID {
			execs = append(execs, exec.Clone())
		}
	}

	sort.Slice(execs, func(i, j int) bool {
		return execs[i].StartTime.Before(execs[j].StartTime)
	})

	return execs
}
