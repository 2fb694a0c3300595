package client

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/todo-app/internal/model"
)

// Messages shown to the user. The underlying error only goes to the log.
const (
	MsgLoadFailed   = "Failed to load tasks. Please try again later."
	MsgAddFailed    = "Failed to add task. Please try again."
	MsgUpdateFailed = "Failed to update task. Please try again."
	MsgDeleteFailed = "Failed to delete task. Please try again."
)

// State is what the view renders.
type State struct {
	Tasks   []model.Task
	Draft   string
	Loading bool
	Err     string
}

func (s State) clone() State {
	s.Tasks = append([]model.Task(nil), s.Tasks...)
	return s
}

// Store owns the client state. Actions call the API without holding the lock
// and apply the result only when the call succeeded; every change is pushed
// to subscribers as a snapshot.
type Store struct {
	api    API
	logger *zap.Logger

	// notifyMu keeps deliveries in the order the changes were applied.
	notifyMu sync.Mutex

	mu     sync.Mutex
	state  State
	subs   map[int]func(State)
	nextID int
}

func NewStore(api API, logger *zap.Logger) *Store {
	return &Store{
		api:    api,
		logger: logger,
		state:  State{Tasks: []model.Task{}, Loading: true},
		subs:   make(map[int]func(State)),
	}
}

// State returns a snapshot of the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Subscribe registers fn for every subsequent change and returns the function
// that removes it.
func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// update applies mutate under s.mu, then notifies subscribers outside it.
// Subscribers must not call back into update.
func (s *Store) update(mutate func(*State)) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	mutate(&s.state)
	snapshot := s.state.clone()
	subs := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snapshot)
	}
}

func (s *Store) Load(ctx context.Context) {
	s.update(func(st *State) { st.Loading = true })

	tasks, err := s.api.List(ctx)
	if err != nil {
		s.logger.Error("Error fetching todos", zap.Error(err))
		s.update(func(st *State) {
			st.Err = MsgLoadFailed
			st.Loading = false
		})
		return
	}

	s.update(func(st *State) {
		st.Tasks = tasks
		st.Err = ""
		st.Loading = false
	})
}

func (s *Store) SetDraft(text string) {
	s.update(func(st *State) { st.Draft = text })
}

// Submit creates a task from the draft. A blank draft is ignored.
func (s *Store) Submit(ctx context.Context) {
	draft := s.State().Draft
	if strings.TrimSpace(draft) == "" {
		return
	}

	task, err := s.api.Create(ctx, draft)
	if err != nil {
		s.logger.Error("Error adding todo", zap.Error(err))
		s.update(func(st *State) { st.Err = MsgAddFailed })
		return
	}

	s.update(func(st *State) {
		st.Tasks = append([]model.Task{task}, st.Tasks...)
		st.Draft = ""
	})
}

// Toggle flips the completed flag of the task with the given id. Ids that are
// not in the local list are ignored.
func (s *Store) Toggle(ctx context.Context, id string) {
	current, ok := s.find(id)
	if !ok {
		return
	}

	updated, err := s.api.SetCompleted(ctx, id, !current.Completed)
	if err != nil {
		s.logger.Error("Error updating todo", zap.String("id", id), zap.Error(err))
		s.update(func(st *State) { st.Err = MsgUpdateFailed })
		return
	}

	s.update(func(st *State) {
		for i := range st.Tasks {
			if st.Tasks[i].ID == id {
				st.Tasks[i] = updated
			}
		}
	})
}

func (s *Store) Remove(ctx context.Context, id string) {
	if err := s.api.Delete(ctx, id); err != nil {
		s.logger.Error("Error deleting todo", zap.String("id", id), zap.Error(err))
		s.update(func(st *State) { st.Err = MsgDeleteFailed })
		return
	}

	s.update(func(st *State) {
		kept := st.Tasks[:0:0]
		for _, t := range st.Tasks {
			if t.ID != id {
				kept = append(kept, t)
			}
		}
		st.Tasks = kept
	})
}

func (s *Store) find(id string) (model.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.state.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return model.Task{}, false
}
