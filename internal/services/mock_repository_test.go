package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dashhub/productivity-service/internal/models"
	"github.com/dashhub/productivity-service/internal/repositories"
)

// memoryRepository is an in-memory Repository for testing the services
// without a database.
type memoryRepository struct {
	mu    sync.Mutex
	seq   int64
	users map[string]*models.User
	tests []models.TypingTest
	todos map[string]*models.Todo
	calcs []models.CalculatorEntry

	// error injection
	userUpdateErr error
	testCreateErr error
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		users: make(map[string]*models.User),
		todos: make(map[string]*models.Todo),
	}
}

func (r *memoryRepository) User() repositories.UserRepository             { return &memoryUserRepo{r} }
func (r *memoryRepository) TypingTest() repositories.TypingTestRepository { return &memoryTestRepo{r} }
func (r *memoryRepository) Todo() repositories.TodoRepository             { return &memoryTodoRepo{r} }
func (r *memoryRepository) Calculator() repositories.CalculatorRepository { return &memoryCalcRepo{r} }

func (r *memoryRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(r)
}

func (r *memoryRepository) Ping(ctx context.Context) error { return nil }
func (r *memoryRepository) Close() error                   { return nil }

// nextTimestamp returns strictly increasing timestamps so ordering
// assertions are deterministic even for back-to-back inserts.
func (r *memoryRepository) nextTimestamp() time.Time {
	r.seq++
	return time.Now().UTC().Add(time.Duration(r.seq) * time.Microsecond)
}

// ===== USER =====

type memoryUserRepo struct{ r *memoryRepository }

func (m *memoryUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	m.r.mu.Lock()
	defer m.r.mu.Unlock()

	user, ok := m.r.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (m *memoryUserRepo) GetBySubjectID(ctx context.Context, subjectID string) (*models.User, error) {
	m.r.mu.Lock()
	defer m.r.mu.Unlock()

	for _, user := range m.r.users {
		if user.SubjectID == subjectID {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *memoryUserRepo) Create(ctx context.Context, user *models.User) error {
	m.r.mu.Lock()
	defer m.r.mu.Unlock()

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	user.CreatedAt = time.Now().UTC()
	copied := *user
	m.r.users[user.ID] = &copied
	return nil
}

func (m *memoryUserRepo) UpdateTypingStats(ctx context.Context, id string, maxSpeed, avgSpeed float64) error {
	m.r.mu.Lock()
	defer m.r.mu.Unlock()

	if m.r.userUpdateErr != nil {
		return m.r.userUpdateErr
	}
	user, ok := m.r.users[id]
	if !ok {
		return repositories.ErrNotFound
	}
	user.MaxTypingSpeed = maxSpeed
	user.AverageTypingSpeed = avgSpeed
	return nil
}

func (m *memoryUserRepo) ExistsBySubjectID(ctx context.Context, subjectID string) (bool, error) {
	_, err := m.GetBySubjectID(ctx, subjectID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// ===== TYPING TEST =====

type memoryTestRepo struct{ r *memoryRepository }

func (m *memoryTestRepo) Create(ctx context.Context, test *models.TypingTest) error {
	m.r.mu.Lock()
	defer m.r.mu.Unlock()

	if m.r.testCreateErr != nil {
		return m.r.testCreateErr
	}
	if test.ID == "" {
		test.ID = uuid.New().String()
	}
	if test.Timestamp.IsZero() {
		test.Timestamp = m.r.nextTimestamp()
	}
	m.r.tests = append(m.r.tests, *test)
	return nil
}

func (m *memoryTestRepo) GetByUser(ctx context.Context, userID string) ([]models.TypingTest, error) {
	m.r.mu.Lock()
	defer m.r.mu.Unlock()

	var out []models.TypingTest
	for _, t := range m.r.tests {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *memoryTestRepo) GetByUserNewestFirst(ctx context.Context, userID string) ([]models.TypingTest, error) {
	tests, err := m.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	sort.Slice(tests, func(i, j int) bool {
		return tests[i].Timestamp.After(tests[j].Timestamp)
	})
	return tests, nil
}

func (m *memoryTestRepo) CountByUser(ctx context.Context, userID string) (int64, error) {
	tests, err := m.GetByUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	return int64(len(tests)), nil
}

// ===== TODO =====

type memoryTodoRepo struct{ r *memoryRepository }

func (m *memoryTodoRepo) Create(ctx context.Context, todo *models.Todo) error {
	m.r.mu.Lock()
	defer m.r.mu.Unlock()

	if todo.ID == "" {
		todo.ID = uuid.New().String()
	}
	todo.CreatedAt = m.r.nextTimestamp()
	copied := *todo
	m.r.todos[todo.ID] = &copied
	return nil
}

func (m *memoryTodoRepo) GetByID(ctx context.Context, id string) (*models.Todo, error) {
	m.r.mu.Lock()
	defer m.r.mu.Unlock()

	todo, ok := m.r.todos[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *todo
	return &copied, nil
}

func (m *memoryTodoRepo) GetByUserNewestFirst(ctx context.Context, userID string) ([]models.Todo, error) {
	m.r.mu.Lock()
	defer m.r.mu.Unlock()

	var out []models.Todo
	for _, todo := range m.r.todos {
		if todo.UserID == userID {
			out = append(out, *todo)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (m *memoryTodoRepo) Update(ctx context.Context, todo *models.Todo) error {
	m.r.mu.Lock()
	defer m.r.mu.Unlock()

	if _, ok := m.r.todos[todo.ID]; !ok {
		return repositories.ErrNotFound
	}
	copied := *todo
	m.r.todos[todo.ID] = &copied
	return nil
}

func (m *memoryTodoRepo) Delete(ctx context.Context, id string) error {
	m.r.mu.Lock()
	defer m.r.mu.Unlock()

	if _, ok := m.r.todos[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(m.r.todos, id)
	return nil
}

// ===== CALCULATOR =====

type memoryCalcRepo struct{ r *memoryRepository }

func (m *memoryCalcRepo) Create(ctx context.Context, entry *models.CalculatorEntry) error {
	m.r.mu.Lock()
	defer m.r.mu.Unlock()

	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = m.r.nextTimestamp()
	}
	m.r.calcs = append(m.r.calcs, *entry)
	return nil
}

func (m *memoryCalcRepo) GetLastByUser(ctx context.Context, userID string) (*models.CalculatorEntry, error) {
	entries, err := m.GetByUserNewestFirst(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, repositories.ErrNotFound
	}
	return &entries[0], nil
}

func (m *memoryCalcRepo) GetByUserNewestFirst(ctx context.Context, userID string) ([]models.CalculatorEntry, error) {
	m.r.mu.Lock()
	defer m.r.mu.Unlock()

	var out []models.CalculatorEntry
	for _, e := range m.r.calcs {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out, nil
}
