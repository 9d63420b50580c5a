package repository

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"todovault-backend/internal/task/domain"
	"todovault-backend/pkg/kvstore"

	"github.com/google/uuid"
)

// collectionKeyPrefix partitions the key-value backend by user identity.
const collectionKeyPrefix = "todos_"

// kvTaskRepository implements TaskRepository on a key-value backend. Each
// user's tasks are one JSON array under todos_<userID>, and every write is a
// read-modify-write of the whole collection. A per-user mutex serializes
// those cycles so concurrent writers cannot silently drop each other's
// changes.
type kvTaskRepository struct {
	store kvstore.Store
	now   func() time.Time

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewKVTaskRepository creates a TaskRepository backed by the given store.
func NewKVTaskRepository(store kvstore.Store) TaskRepository {
	return &kvTaskRepository{
		store: store,
		now:   time.Now,
		locks: make(map[string]*sync.Mutex),
	}
}

func collectionKey(userID string) string {
	return collectionKeyPrefix + userID
}

// userLock returns the mutex guarding one user's partition, creating it on
// first use.
func (r *kvTaskRepository) userLock(userID string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	lock, ok := r.locks[userID]
	if !ok {
		lock = &sync.Mutex{}
		r.locks[userID] = lock
	}
	return lock
}

// load reads and decodes one user's collection. A missing key is an empty
// collection. An unparseable value is also treated as empty so the client
// stays usable; the corruption is logged rather than hidden.
func (r *kvTaskRepository) load(ctx context.Context, userID string) ([]domain.Task, error) {
	raw, found, err := r.store.Get(ctx, collectionKey(userID))
	if err != nil {
		return nil, &domain.StorageError{Op: "read", Err: err}
	}
	if !found || raw == "" {
		return []domain.Task{}, nil
	}

	var tasks []domain.Task
	if err := json.Unmarshal([]byte(raw), &tasks); err != nil {
		log.Printf("[TaskRepo] Unparseable collection for user %s, treating as empty: %v", userID, err)
		return []domain.Task{}, nil
	}
	return tasks, nil
}

func (r *kvTaskRepository) persist(ctx context.Context, userID string, tasks []domain.Task) error {
	data, err := json.Marshal(tasks)
	if err != nil {
		return &domain.StorageError{Op: "encode", Err: err}
	}
	if err := r.store.Set(ctx, collectionKey(userID), string(data)); err != nil {
		return &domain.StorageError{Op: "write", Err: err}
	}
	return nil
}

func (r *kvTaskRepository) Add(ctx context.Context, userID string, draft domain.Draft) (*domain.Task, error) {
	lock := r.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	tasks, err := r.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	priority := draft.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}

	task := domain.Task{
		ID:          uuid.New().String(),
		UserID:      userID,
		Title:       draft.Title,
		Description: draft.Description,
		DueDate:     draft.DueDate,
		Priority:    priority,
		Completed:   false,
		CreatedAt:   r.now(),
	}

	tasks = append(tasks, task)
	if err := r.persist(ctx, userID, tasks); err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *kvTaskRepository) GetAll(ctx context.Context, userID string) ([]domain.Task, error) {
	return r.load(ctx, userID)
}

func (r *kvTaskRepository) Update(ctx context.Context, userID, id string, fields domain.TaskUpdate) (*domain.Task, error) {
	lock := r.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	tasks, err := r.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	index := -1
	for i := range tasks {
		if tasks[i].ID == id {
			index = i
			break
		}
	}
	if index == -1 {
		return nil, domain.ErrTaskNotFound
	}

	task := &tasks[index]
	if fields.Title != nil {
		task.Title = *fields.Title
	}
	if fields.Description != nil {
		task.Description = *fields.Description
	}
	if fields.DueDate != nil {
		task.DueDate = *fields.DueDate
	}
	if fields.Priority != nil {
		task.Priority = *fields.Priority
	}
	// Completed only ever goes up.
	if fields.Completed != nil && *fields.Completed {
		task.Completed = true
	}

	if err := r.persist(ctx, userID, tasks); err != nil {
		return nil, err
	}

	updated := *task
	return &updated, nil
}

func (r *kvTaskRepository) Delete(ctx context.Context, userID, id string) error {
	lock := r.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	tasks, err := r.load(ctx, userID)
	if err != nil {
		return err
	}

	filtered := tasks[:0]
	for _, task := range tasks {
		if task.ID != id {
			filtered = append(filtered, task)
		}
	}

	return r.persist(ctx, userID, filtered)
}
