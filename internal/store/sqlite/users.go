package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/quotevibe/quotevibe-server/internal/domain"
	"github.com/quotevibe/quotevibe-server/internal/store"
)

// userColumns is the ordered list of columns selected in user queries.
// Must match the scan order in scanUser.
const userColumns = `id, username, email, password_hash, full_name, bio, avatar,
	country, country_code, phone, language, is_admin,
	followers_count, following_count, quotes_count, score, created_at, updated_at`

func scanUser(row scanner) (*domain.User, error) {
	var (
		u         domain.User
		isAdmin   int
		createdAt string
		updatedAt string
	)

	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.FullName,
		&u.Bio,
		&u.Avatar,
		&u.Country,
		&u.CountryCode,
		&u.Phone,
		&u.Language,
		&isAdmin,
		&u.FollowersCount,
		&u.FollowingCount,
		&u.QuotesCount,
		&u.Score,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	u.IsAdmin = isAdmin != 0
	if u.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if u.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

func collectUsers(rows *sql.Rows) ([]*domain.User, error) {
	defer rows.Close()

	users := make([]*domain.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// CreateUser inserts a new user with zeroed counters.
// Returns store.ErrAlreadyExists if the username or email is taken.
func (s *Store) CreateUser(ctx context.Context, u *domain.User) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (
			id, username, email, email_lower, password_hash, full_name, bio, avatar,
			country, country_code, phone, language, is_admin, score, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID,
		u.Username,
		u.Email,
		domain.NormalizeEmail(u.Email),
		u.PasswordHash,
		u.FullName,
		u.Bio,
		u.Avatar,
		u.Country,
		u.CountryCode,
		u.Phone,
		u.Language,
		boolToInt(u.IsAdmin),
		u.Score,
		formatTime(u.CreatedAt),
		formatTime(u.UpdatedAt),
	)
	if isUniqueViolation(err) {
		return store.ErrAlreadyExists
	}
	return err
}

// GetUser retrieves a user by ID.
func (s *Store) GetUser(ctx context.Context, id string) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	u, err := scanUser(row)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return u, nil
}

// GetUserByEmail looks a user up by case-insensitive email.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email_lower = ?`, domain.NormalizeEmail(email))
	u, err := scanUser(row)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return u, nil
}

// GetUserByUsername looks a user up by exact username.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE username = ?`, username)
	u, err := scanUser(row)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return u, nil
}

// UserExists reports whether a user with the given ID exists.
func (s *Store) UserExists(ctx context.Context, id string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM users WHERE id = ?`, id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ListUsers returns every user in insertion order. Ranking relies on this
// order as its tie-break.
func (s *Store) ListUsers(ctx context.Context) ([]*domain.User, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	return collectUsers(rows)
}

// GetUsersByIDs returns the users found among ids, keyed by ID.
func (s *Store) GetUsersByIDs(ctx context.Context, ids []string) (map[string]*domain.User, error) {
	result := make(map[string]*domain.User, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id IN (`+placeholders+`)`, args...)
	if err != nil {
		return nil, err
	}
	users, err := collectUsers(rows)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		result[u.ID] = u
	}
	return result, nil
}

// TopUsers returns users created at or after since, ordered by followers_count
// descending with insertion order breaking ties.
func (s *Store) TopUsers(ctx context.Context, since time.Time, limit int) ([]*domain.User, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+userColumns+` FROM users
		WHERE created_at >= ?
		ORDER BY followers_count DESC, rowid ASC
		LIMIT ?`, formatTime(since), limit)
	if err != nil {
		return nil, err
	}
	return collectUsers(rows)
}

// UpdateUserProfile applies the non-nil fields of upd.
func (s *Store) UpdateUserProfile(ctx context.Context, id string, upd domain.ProfileUpdate, now time.Time) error {
	sets := []string{"updated_at = ?"}
	args := []any{formatTime(now)}

	if upd.FullName != nil {
		sets = append(sets, "full_name = ?")
		args = append(args, *upd.FullName)
	}
	if upd.Bio != nil {
		sets = append(sets, "bio = ?")
		args = append(args, *upd.Bio)
	}
	if upd.Avatar != nil {
		sets = append(sets, "avatar = ?")
		args = append(args, *upd.Avatar)
	}
	args = append(args, id)

	result, err := s.db.ExecContext(ctx,
		`UPDATE users SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

// SetUserScore overwrites the stored reputation score.
func (s *Store) SetUserScore(ctx context.Context, id string, score int64, now time.Time) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE users SET score = ?, updated_at = ? WHERE id = ?`, score, formatTime(now), id)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

// DeleteUser removes a user and every row that references them.
//
// With strict=false counters on the other side of each relation are left as
// they are: categories keep counting the deleted quotes, and other users keep
// their follower and following counts. With strict=true those counters are
// repaired in the same transaction.
func (s *Store) DeleteUser(ctx context.Context, id string, strict bool) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		var one int
		if err := tx.QueryRowContext(ctx, `SELECT 1 FROM users WHERE id = ?`, id).Scan(&one); err != nil {
			return notFoundOr(err)
		}

		if strict {
			if err := repairCountersForUser(ctx, tx, id); err != nil {
				return fmt.Errorf("repair counters: %w", err)
			}
		}

		stmts := []string{
			`DELETE FROM likes WHERE user_id = ? OR quote_id IN (SELECT id FROM quotes WHERE user_id = ?)`,
			`DELETE FROM saves WHERE user_id = ? OR quote_id IN (SELECT id FROM quotes WHERE user_id = ?)`,
			`DELETE FROM follows WHERE follower_id = ? OR following_id = ?`,
			`DELETE FROM messages WHERE sender_id = ? OR receiver_id = ?`,
		}
		for _, stmt := range stmts {
			if _, err := tx.ExecContext(ctx, stmt, id, id); err != nil {
				return err
			}
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM quotes WHERE user_id = ?`, id); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
		return err
	})
}

// repairCountersForUser decrements the counters that point at rows about to be
// removed with user id.
func repairCountersForUser(ctx context.Context, tx *sql.Tx, id string) error {
	stmts := []string{
		// Categories of the user's quotes.
		`UPDATE categories SET quotes_count = MAX(0, quotes_count - (
			SELECT COUNT(*) FROM quotes q WHERE q.category_id = categories.id AND q.user_id = ?1))
		WHERE id IN (SELECT category_id FROM quotes WHERE user_id = ?1 AND category_id IS NOT NULL)`,
		// Quotes of other users that this user liked or saved.
		`UPDATE quotes SET likes_count = MAX(0, likes_count - 1)
		WHERE user_id <> ?1 AND id IN (SELECT quote_id FROM likes WHERE user_id = ?1)`,
		`UPDATE quotes SET saves_count = MAX(0, saves_count - 1)
		WHERE user_id <> ?1 AND id IN (SELECT quote_id FROM saves WHERE user_id = ?1)`,
		// Users this user followed, and users following this user.
		`UPDATE users SET followers_count = MAX(0, followers_count - 1)
		WHERE id IN (SELECT following_id FROM follows WHERE follower_id = ?1)`,
		`UPDATE users SET following_count = MAX(0, following_count - 1)
		WHERE id IN (SELECT follower_id FROM follows WHERE following_id = ?1)`,
	}
	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt, id); err != nil {
			return err
		}
	}
	return nil
}

// requireAffected returns store.ErrNotFound when an update or delete matched nothing.
func requireAffected(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
