package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/vy1216/v4learnease/internal/domain/chat"
	"github.com/vy1216/v4learnease/internal/domain/material"
	"github.com/vy1216/v4learnease/internal/domain/support"
	"github.com/vy1216/v4learnease/internal/domain/user"
)

// ============================================================================
// Users
// ============================================================================

func (s *SQLiteStore) CreateUser(ctx context.Context, u *user.User) error {
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO users (username, email, password_hash) VALUES (?, ?, ?)",
		u.Username, u.Email, u.PasswordHash,
	)
	if err != nil {
		return err
	}
	u.ID, err = res.LastInsertId()
	return err
}

func (s *SQLiteStore) GetUserByEmail(ctx context.Context, email string) (*user.User, error) {
	var u user.User
	err := s.db.QueryRowContext(ctx,
		"SELECT id, username, email, password_hash FROM users WHERE email = ?", email,
	).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// ============================================================================
// Chat messages
// ============================================================================

func (s *SQLiteStore) SaveMessage(ctx context.Context, m chat.Message) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO messages (user_text, bot_text) VALUES (?, ?)",
		m.User, m.Text,
	)
	return err
}

func (s *SQLiteStore) ListMessages(ctx context.Context) ([]chat.Message, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT user_text, bot_text FROM messages ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := []chat.Message{}
	for rows.Next() {
		var m chat.Message
		if err := rows.Scan(&m.User, &m.Text); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// ============================================================================
// Materials and upload index
// ============================================================================

func (s *SQLiteStore) SaveMaterial(ctx context.Context, m *material.Material) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO materials (id, name, description, file_url, uploader_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		m.ID, m.Name, m.Description, m.FileURL, m.UploaderID, m.CreatedAt.Format(time.RFC3339Nano),
	)
	return err
}

func (s *SQLiteStore) ListMaterials(ctx context.Context) ([]*material.Material, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, description, file_url, uploader_id, created_at
		FROM materials ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	materials := []*material.Material{}
	for rows.Next() {
		var m material.Material
		var createdAt string
		if err := rows.Scan(&m.ID, &m.Name, &m.Description, &m.FileURL, &m.UploaderID, &createdAt); err != nil {
			return nil, err
		}
		m.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		materials = append(materials, &m)
	}
	return materials, rows.Err()
}

// SaveUpload inserts or refreshes the indexed text for an upload id.
func (s *SQLiteStore) SaveUpload(ctx context.Context, u *material.Upload) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO uploads (id, name, url, text) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, url = excluded.url, text = excluded.text`,
		u.ID, u.Name, u.URL, u.Text,
	)
	return err
}

func (s *SQLiteStore) GetUpload(ctx context.Context, id string) (*material.Upload, error) {
	var u material.Upload
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, url, text FROM uploads WHERE id = ?", id,
	).Scan(&u.ID, &u.Name, &u.URL, &u.Text)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// ============================================================================
// Help tickets
// ============================================================================

func (s *SQLiteStore) SaveTicket(ctx context.Context, t *support.Ticket) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO help_tickets (id, name, email, message, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		t.ID, t.Name, t.Email, t.Message, t.CreatedAt.Format(time.RFC3339Nano),
	)
	return err
}
