package store

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"eduportal_backend/models"

	"github.com/google/uuid"
)

// Memory is an in-memory implementation of the store interfaces, used
// by tests. It mirrors the Postgres behavior, including cascading
// section deletes and the referential check on lesson creation.
type Memory struct {
	mu       sync.Mutex
	sections map[string]models.Section
	lessons  map[string]models.Lesson
	users    map[string]models.User
	roles    map[string][]string
	tokens   map[string]memoryToken
}

type memoryToken struct {
	userID    string
	expiresAt time.Time
}

func NewMemory() *Memory {
	return &Memory{
		sections: make(map[string]models.Section),
		lessons:  make(map[string]models.Lesson),
		users:    make(map[string]models.User),
		roles:    make(map[string][]string),
		tokens:   make(map[string]memoryToken),
	}
}

func (m *Memory) ListSections() ([]models.Section, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sections := make([]models.Section, 0, len(m.sections))
	for _, section := range m.sections {
		sections = append(sections, section)
	}
	sort.Slice(sections, func(i, j int) bool {
		return sections[i].CreatedAt.After(sections[j].CreatedAt)
	})
	return sections, nil
}

func (m *Memory) CreateSection(section models.Section) (models.Section, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	section.ID = uuid.NewString()
	if section.CreatedAt.IsZero() {
		section.CreatedAt = time.Now()
	}
	m.sections[section.ID] = section
	return section, nil
}

func (m *Memory) DeleteSection(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sections[id]; !ok {
		return ErrNotFound
	}
	delete(m.sections, id)
	for lessonID, lesson := range m.lessons {
		if lesson.SectionID == id {
			delete(m.lessons, lessonID)
		}
	}
	return nil
}

func (m *Memory) ListLessons(sectionID string) ([]models.Lesson, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	lessons := make([]models.Lesson, 0)
	for _, lesson := range m.lessons {
		if lesson.SectionID == sectionID {
			lessons = append(lessons, lesson)
		}
	}
	sort.Slice(lessons, func(i, j int) bool {
		return lessons[i].CreatedAt.After(lessons[j].CreatedAt)
	})
	return lessons, nil
}

func (m *Memory) GetLesson(id string) (models.Lesson, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	lesson, ok := m.lessons[id]
	if !ok {
		return models.Lesson{}, ErrNotFound
	}
	return lesson, nil
}

func (m *Memory) CreateLesson(lesson models.Lesson) (models.Lesson, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sections[lesson.SectionID]; !ok {
		return models.Lesson{}, ErrNotFound
	}
	lesson.ID = uuid.NewString()
	if lesson.CreatedAt.IsZero() {
		lesson.CreatedAt = time.Now()
	}
	m.lessons[lesson.ID] = lesson
	return lesson, nil
}

func (m *Memory) DeleteLesson(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.lessons[id]; !ok {
		return ErrNotFound
	}
	delete(m.lessons, id)
	return nil
}

func (m *Memory) ListUsers() ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	users := make([]models.User, 0, len(m.users))
	for _, user := range m.users {
		user.Roles = append([]string(nil), m.roles[user.ID]...)
		if user.Roles == nil {
			user.Roles = make([]string, 0)
		}
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].CreatedAt.After(users[j].CreatedAt)
	})
	return users, nil
}

func (m *Memory) GetUser(id string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[id]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return m.withRoles(user), nil
}

func (m *Memory) GetUserByEmail(email string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, user := range m.users {
		if user.Email == email {
			return m.withRoles(user), nil
		}
	}
	return models.User{}, ErrNotFound
}

func (m *Memory) GetUserByUsername(username string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, user := range m.users {
		if user.Username == username {
			return m.withRoles(user), nil
		}
	}
	return models.User{}, ErrNotFound
}

func (m *Memory) withRoles(user models.User) models.User {
	user.Roles = append([]string(nil), m.roles[user.ID]...)
	if user.Roles == nil {
		user.Roles = make([]string, 0)
	}
	return user
}

func (m *Memory) CreateUser(user models.User) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return models.User{}, fmt.Errorf("user %q already exists", user.Username)
		}
	}
	user.ID = uuid.NewString()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	m.users[user.ID] = user
	user.Roles = make([]string, 0)
	return user, nil
}

func (m *Memory) AssignRole(userID, role string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.roles[userID] {
		if existing == role {
			return nil
		}
	}
	m.roles[userID] = append(m.roles[userID], role)
	return nil
}

func (m *Memory) IsAdmin(userID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, role := range m.roles[userID] {
		if role == models.RoleAdmin {
			return true, nil
		}
	}
	return false, nil
}

func (m *Memory) DeleteUser(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[id]; !ok {
		return ErrNotFound
	}
	delete(m.users, id)
	delete(m.roles, id)
	for token, entry := range m.tokens {
		if entry.userID == id {
			delete(m.tokens, token)
		}
	}
	return nil
}

func (m *Memory) SaveRefreshToken(userID, token string, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.tokens[token] = memoryToken{userID: userID, expiresAt: expiresAt}
	return nil
}

func (m *Memory) LookupRefreshToken(token string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.tokens[token]
	if !ok || !entry.expiresAt.After(time.Now()) {
		return "", ErrNotFound
	}
	return entry.userID, nil
}

func (m *Memory) DeleteRefreshToken(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.tokens, token)
	return nil
}
