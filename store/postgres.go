package store

import (
	"database/sql"
	"fmt"
	"time"

	"eduportal_backend/models"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const foreignKeyViolation = "23503"

type PostgresSectionStore struct {
	db *sql.DB
}

func NewPostgresSectionStore(db *sql.DB) *PostgresSectionStore {
	return &PostgresSectionStore{db: db}
}

func (s *PostgresSectionStore) ListSections() ([]models.Section, error) {
	rows, err := s.db.Query(`
		SELECT id, name, COALESCE(created_by::text, ''), created_at
		FROM sections
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("error fetching sections: %w", err)
	}
	defer rows.Close()

	sections := make([]models.Section, 0)
	for rows.Next() {
		var section models.Section
		if err := rows.Scan(&section.ID, &section.Name, &section.CreatedBy, &section.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning section: %w", err)
		}
		sections = append(sections, section)
	}
	return sections, rows.Err()
}

func (s *PostgresSectionStore) CreateSection(section models.Section) (models.Section, error) {
	section.ID = uuid.NewString()
	err := s.db.QueryRow(`
		INSERT INTO sections (id, name, created_by)
		VALUES ($1, $2, NULLIF($3, '')::uuid)
		RETURNING created_at
	`, section.ID, section.Name, section.CreatedBy).Scan(&section.CreatedAt)
	if err != nil {
		return models.Section{}, fmt.Errorf("error creating section: %w", err)
	}
	return section, nil
}

func (s *PostgresSectionStore) DeleteSection(id string) error {
	res, err := s.db.Exec(`DELETE FROM sections WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting section: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

type PostgresLessonStore struct {
	db *sql.DB
}

func NewPostgresLessonStore(db *sql.DB) *PostgresLessonStore {
	return &PostgresLessonStore{db: db}
}

func (s *PostgresLessonStore) ListLessons(sectionID string) ([]models.Lesson, error) {
	rows, err := s.db.Query(`
		SELECT id, section_id, name, youtube_url, COALESCE(created_by::text, ''), created_at
		FROM lessons
		WHERE section_id = $1
		ORDER BY created_at DESC
	`, sectionID)
	if err != nil {
		return nil, fmt.Errorf("error fetching lessons: %w", err)
	}
	defer rows.Close()

	lessons := make([]models.Lesson, 0)
	for rows.Next() {
		var lesson models.Lesson
		err := rows.Scan(&lesson.ID, &lesson.SectionID, &lesson.Name,
			&lesson.YoutubeURL, &lesson.CreatedBy, &lesson.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning lesson: %w", err)
		}
		lessons = append(lessons, lesson)
	}
	return lessons, rows.Err()
}

func (s *PostgresLessonStore) GetLesson(id string) (models.Lesson, error) {
	var lesson models.Lesson
	err := s.db.QueryRow(`
		SELECT id, section_id, name, youtube_url, COALESCE(created_by::text, ''), created_at
		FROM lessons
		WHERE id = $1
	`, id).Scan(&lesson.ID, &lesson.SectionID, &lesson.Name,
		&lesson.YoutubeURL, &lesson.CreatedBy, &lesson.CreatedAt)
	if err == sql.ErrNoRows {
		return models.Lesson{}, ErrNotFound
	}
	if err != nil {
		return models.Lesson{}, fmt.Errorf("error fetching lesson: %w", err)
	}
	return lesson, nil
}

func (s *PostgresLessonStore) CreateLesson(lesson models.Lesson) (models.Lesson, error) {
	lesson.ID = uuid.NewString()
	err := s.db.QueryRow(`
		INSERT INTO lessons (id, section_id, name, youtube_url, created_by)
		VALUES ($1, $2, $3, $4, NULLIF($5, '')::uuid)
		RETURNING created_at
	`, lesson.ID, lesson.SectionID, lesson.Name, lesson.YoutubeURL, lesson.CreatedBy).
		Scan(&lesson.CreatedAt)
	if err != nil {
		// The section reference is enforced by the store's foreign key,
		// not checked up front.
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == foreignKeyViolation {
			return models.Lesson{}, ErrNotFound
		}
		return models.Lesson{}, fmt.Errorf("error creating lesson: %w", err)
	}
	return lesson, nil
}

func (s *PostgresLessonStore) DeleteLesson(id string) error {
	res, err := s.db.Exec(`DELETE FROM lessons WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting lesson: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

type PostgresUserStore struct {
	db *sql.DB
}

func NewPostgresUserStore(db *sql.DB) *PostgresUserStore {
	return &PostgresUserStore{db: db}
}

func (s *PostgresUserStore) ListUsers() ([]models.User, error) {
	rows, err := s.db.Query(`
		SELECT u.id, u.username, u.created_at, COALESCE(ur.role, '')
		FROM users u
		LEFT JOIN user_roles ur ON ur.user_id = u.id
		ORDER BY u.created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("error fetching users: %w", err)
	}
	defer rows.Close()

	users := make([]models.User, 0)
	index := make(map[string]int)
	for rows.Next() {
		var id, username, role string
		var createdAt time.Time
		if err := rows.Scan(&id, &username, &createdAt, &role); err != nil {
			return nil, fmt.Errorf("error scanning user: %w", err)
		}
		i, ok := index[id]
		if !ok {
			users = append(users, models.User{
				ID:        id,
				Username:  username,
				Roles:     make([]string, 0),
				CreatedAt: createdAt,
			})
			i = len(users) - 1
			index[id] = i
		}
		if role != "" {
			users[i].Roles = append(users[i].Roles, role)
		}
	}
	return users, rows.Err()
}

func (s *PostgresUserStore) GetUser(id string) (models.User, error) {
	return s.getUser(`WHERE id = $1`, id)
}

func (s *PostgresUserStore) GetUserByEmail(email string) (models.User, error) {
	return s.getUser(`WHERE email = $1`, email)
}

func (s *PostgresUserStore) GetUserByUsername(username string) (models.User, error) {
	return s.getUser(`WHERE username = $1`, username)
}

func (s *PostgresUserStore) getUser(where string, arg any) (models.User, error) {
	var user models.User
	err := s.db.QueryRow(`
		SELECT id, username, email, password_hash, created_at
		FROM users `+where,
		arg,
	).Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("error fetching user: %w", err)
	}
	user.Roles, err = s.userRoles(user.ID)
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (s *PostgresUserStore) userRoles(userID string) ([]string, error) {
	rows, err := s.db.Query(`SELECT role FROM user_roles WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("error fetching user roles: %w", err)
	}
	defer rows.Close()

	roles := make([]string, 0)
	for rows.Next() {
		var role string
		if err := rows.Scan(&role); err != nil {
			return nil, fmt.Errorf("error scanning role: %w", err)
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

func (s *PostgresUserStore) CreateUser(user models.User) (models.User, error) {
	user.ID = uuid.NewString()
	err := s.db.QueryRow(`
		INSERT INTO users (id, username, email, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`, user.ID, user.Username, user.Email, user.PasswordHash).Scan(&user.CreatedAt)
	if err != nil {
		return models.User{}, fmt.Errorf("error creating user: %w", err)
	}
	if user.Roles == nil {
		user.Roles = make([]string, 0)
	}
	return user, nil
}

func (s *PostgresUserStore) AssignRole(userID, role string) error {
	_, err := s.db.Exec(`
		INSERT INTO user_roles (id, user_id, role)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, role) DO NOTHING
	`, uuid.NewString(), userID, role)
	if err != nil {
		return fmt.Errorf("error assigning role: %w", err)
	}
	return nil
}

func (s *PostgresUserStore) IsAdmin(userID string) (bool, error) {
	var isAdmin bool
	err := s.db.QueryRow(`
		SELECT EXISTS (
			SELECT 1 FROM user_roles
			WHERE user_id = $1 AND role = $2
		)
	`, userID, models.RoleAdmin).Scan(&isAdmin)
	if err != nil {
		return false, fmt.Errorf("error checking admin role: %w", err)
	}
	return isAdmin, nil
}

func (s *PostgresUserStore) DeleteUser(id string) error {
	res, err := s.db.Exec(`DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting user: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

type PostgresTokenStore struct {
	db *sql.DB
}

func NewPostgresTokenStore(db *sql.DB) *PostgresTokenStore {
	return &PostgresTokenStore{db: db}
}

func (s *PostgresTokenStore) SaveRefreshToken(userID, token string, expiresAt time.Time) error {
	_, err := s.db.Exec(`
		INSERT INTO refresh_tokens (user_id, token, expires_at)
		VALUES ($1, $2, $3)
	`, userID, token, expiresAt)
	if err != nil {
		return fmt.Errorf("error saving refresh token: %w", err)
	}
	return nil
}

func (s *PostgresTokenStore) LookupRefreshToken(token string) (string, error) {
	var userID string
	err := s.db.QueryRow(`
		SELECT user_id FROM refresh_tokens
		WHERE token = $1 AND expires_at > NOW()
	`, token).Scan(&userID)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("error looking up refresh token: %w", err)
	}
	return userID, nil
}

func (s *PostgresTokenStore) DeleteRefreshToken(token string) error {
	_, err := s.db.Exec(`DELETE FROM refresh_tokens WHERE token = $1`, token)
	if err != nil {
		return fmt.Errorf("error deleting refresh token: %w", err)
	}
	return nil
}
