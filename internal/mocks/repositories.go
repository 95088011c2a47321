package mocks

import (
	"context"
	"sort"

	"github.com/journalist-portfolio-api/internal/models"
	"github.com/journalist-portfolio-api/internal/repository"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	Users       map[string]*models.User
	InsertError error
	LookupError error
	nextID      int64
}

// Verify interface compliance
var _ repository.UserRepository = (*MockUserRepository)(nil)

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users: make(map[string]*models.User),
	}
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	if m.InsertError != nil {
		return m.InsertError
	}
	if _, exists := m.Users[user.Username]; exists {
		return repository.ErrConflict
	}
	m.nextID++
	user.ID = m.nextID
	if user.Role == "" {
		user.Role = models.DefaultRole
	}
	m.Users[user.Username] = user
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	if m.LookupError != nil {
		return nil, m.LookupError
	}
	for _, u := range m.Users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if m.LookupError != nil {
		return nil, m.LookupError
	}
	return m.Users[username], nil
}

func (m *MockUserRepository) Exists(ctx context.Context, username string) (bool, error) {
	_, exists := m.Users[username]
	return exists, nil
}

func (m *MockUserRepository) Count(ctx context.Context) (int, error) {
	return len(m.Users), nil
}

// MockCategoryRepository is a mock implementation of CategoryRepository
// keyed by slug
type MockCategoryRepository struct {
	Categories       map[string]*models.Category
	InsertError      error
	UpsertBatchFunc  func(ctx context.Context, categories []*models.Category, key string) (int, error)
	UpsertBatchCalls int
	nextID           int64
}

// Verify interface compliance
var _ repository.CategoryRepository = (*MockCategoryRepository)(nil)

func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{
		Categories: make(map[string]*models.Category),
	}
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *models.Category) (int64, error) {
	if m.InsertError != nil {
		return 0, m.InsertError
	}
	if _, exists := m.Categories[category.Slug]; exists {
		return 0, repository.ErrConflict
	}
	m.nextID++
	category.ID = m.nextID
	m.Categories[category.Slug] = category
	return category.ID, nil
}

// sorted returns the categories in id order
func (m *MockCategoryRepository) sorted() []*models.Category {
	out := make([]*models.Category, 0, len(m.Categories))
	for _, c := range m.Categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *MockCategoryRepository) List(ctx context.Context) ([]*models.Category, error) {
	return m.sorted(), nil
}

func (m *MockCategoryRepository) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	return m.Categories[slug], nil
}

func (m *MockCategoryRepository) Delete(ctx context.Context, slug string) (bool, error) {
	_, exists := m.Categories[slug]
	delete(m.Categories, slug)
	return exists, nil
}

func (m *MockCategoryRepository) IDsBySlugs(ctx context.Context, slugs []string) (map[string]int64, error) {
	ids := make(map[string]int64, len(slugs))
	for _, s := range slugs {
		if c, ok := m.Categories[s]; ok {
			ids[s] = c.ID
		}
	}
	return ids, nil
}

func (m *MockCategoryRepository) UpsertBatch(ctx context.Context, categories []*models.Category, key string) (int, error) {
	m.UpsertBatchCalls++
	if m.UpsertBatchFunc != nil {
		return m.UpsertBatchFunc(ctx, categories, key)
	}
	if m.InsertError != nil {
		return 0, m.InsertError
	}
	for _, c := range categories {
		if existing, ok := m.Categories[c.Slug]; ok {
			c.ID = existing.ID
		} else {
			m.nextID++
			c.ID = m.nextID
		}
		m.Categories[c.Slug] = c
	}
	return len(categories), nil
}

func (m *MockCategoryRepository) Count(ctx context.Context) (int, error) {
	return len(m.Categories), nil
}

func (m *MockCategoryRepository) StreamAll(ctx context.Context, callback func(*models.Category) error) error {
	for _, c := range m.sorted() {
		if err := callback(c); err != nil {
			return err
		}
	}
	return nil
}

// MockSettingsRepository is a mock implementation of SettingsRepository
type MockSettingsRepository struct {
	Settings    map[string]string
	UpsertError error
	Upserts     [][]models.Setting
}

// Verify interface compliance
var _ repository.SettingsRepository = (*MockSettingsRepository)(nil)

func NewMockSettingsRepository() *MockSettingsRepository {
	return &MockSettingsRepository{
		Settings: make(map[string]string),
	}
}

func (m *MockSettingsRepository) All(ctx context.Context) (map[string]string, error) {
	out := make(map[string]string, len(m.Settings))
	for k, v := range m.Settings {
		out[k] = v
	}
	return out, nil
}

func (m *MockSettingsRepository) UpsertAll(ctx context.Context, settings []models.Setting) error {
	m.Upserts = append(m.Upserts, settings)
	if m.UpsertError != nil {
		return m.UpsertError
	}
	for _, s := range settings {
		m.Settings[s.Key] = s.Value
	}
	return nil
}

// MockContactRepository is a mock implementation of ContactRepository
type MockContactRepository struct {
	Submissions []*models.ContactSubmission
	InsertError error
}

// Verify interface compliance
var _ repository.ContactRepository = (*MockContactRepository)(nil)

func NewMockContactRepository() *MockContactRepository {
	return &MockContactRepository{}
}

func (m *MockContactRepository) Create(ctx context.Context, submission *models.ContactSubmission) (int64, error) {
	if m.InsertError != nil {
		return 0, m.InsertError
	}
	submission.ID = int64(len(m.Submissions) + 1)
	submission.Status = models.ContactStatusUnread
	m.Submissions = append(m.Submissions, submission)
	return submission.ID, nil
}

func (m *MockContactRepository) List(ctx context.Context) ([]*models.ContactSubmission, error) {
	out := make([]*models.ContactSubmission, 0, len(m.Submissions))
	for i := len(m.Submissions) - 1; i >= 0; i-- {
		out = append(out, m.Submissions[i])
	}
	return out, nil
}

func (m *MockContactRepository) Count(ctx context.Context) (int, error) {
	return len(m.Submissions), nil
}

// MockProfileRepository is a mock implementation of ProfileRepository
// holding the single profile row
type MockProfileRepository struct {
	Profile     *models.Profile
	UpsertError error
}

// Verify interface compliance
var _ repository.ProfileRepository = (*MockProfileRepository)(nil)

func NewMockProfileRepository() *MockProfileRepository {
	return &MockProfileRepository{}
}

func (m *MockProfileRepository) Get(ctx context.Context) (*models.Profile, error) {
	return m.Profile, nil
}

func (m *MockProfileRepository) Update(ctx context.Context, profile *models.Profile) (bool, error) {
	if m.Profile == nil {
		return false, nil
	}
	profile.ID = models.ProfileID
	m.Profile = profile
	return true, nil
}

func (m *MockProfileRepository) UpsertBatch(ctx context.Context, profiles []*models.Profile, key string) (int, error) {
	if m.UpsertError != nil {
		return 0, m.UpsertError
	}
	for _, p := range profiles {
		m.Profile = p
	}
	return len(profiles), nil
}
