package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"stepone/internal/modules/progress/domain"
	apperrors "stepone/internal/platform/errors"

	_ "modernc.org/sqlite"
)

const progressKey = "user_progress"

// SQLiteProgressStore keeps the encoded record in a key/value row and mirrors
// the stamp list into a queryable table.
type SQLiteProgressStore struct {
	db *sql.DB
}

func NewSQLiteProgressStore(dbPath string) (*SQLiteProgressStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	store := &SQLiteProgressStore{db: db}
	if err := store.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteProgressStore) ensureSchema(ctx context.Context) error {
	const progressDDL = `
CREATE TABLE IF NOT EXISTS progress (
  key TEXT PRIMARY KEY,
  schema_version INTEGER NOT NULL,
  payload TEXT NOT NULL,
  updated_at TEXT NOT NULL
);
`
	const stampsDDL = `
CREATE TABLE IF NOT EXISTS stamps (
  id TEXT PRIMARY KEY,
  mission_id TEXT NOT NULL,
  earned_at TEXT NOT NULL,
  badge_icon TEXT NOT NULL,
  badge_color TEXT NOT NULL
);
`
	if _, err := s.db.ExecContext(ctx, progressDDL); err != nil {
		return fmt.Errorf("create progress table: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, stampsDDL); err != nil {
		return fmt.Errorf("create stamps table: %w", err)
	}
	return nil
}

func (s *SQLiteProgressStore) Load(ctx context.Context) (domain.UserProgress, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM progress WHERE key = ?`, progressKey).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.UserProgress{}, apperrors.ErrNoProgress
		}
		return domain.UserProgress{}, fmt.Errorf("query progress: %w", err)
	}
	return decodeProgress([]byte(payload))
}

func (s *SQLiteProgressStore) Save(ctx context.Context, progress domain.UserProgress) error {
	payload, err := encodeProgress(progress)
	if err != nil {
		return err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin progress tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const upsert = `
INSERT INTO progress (key, schema_version, payload, updated_at)
VALUES (?, ?, ?, ?)
ON CONFLICT(key) DO UPDATE SET
  schema_version=excluded.schema_version,
  payload=excluded.payload,
  updated_at=excluded.updated_at;
`
	if _, err := tx.ExecContext(ctx, upsert, progressKey, domain.SchemaVersion, string(payload), time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("upsert progress: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM stamps`); err != nil {
		return fmt.Errorf("reset stamps: %w", err)
	}
	const insertStamp = `
INSERT INTO stamps (id, mission_id, earned_at, badge_icon, badge_color)
VALUES (?, ?, ?, ?, ?);
`
	for _, stamp := range progress.Stamps {
		if _, err := tx.ExecContext(ctx, insertStamp,
			stamp.ID,
			stamp.MissionID,
			stamp.EarnedAt.Format(time.RFC3339Nano),
			stamp.BadgeIcon,
			stamp.BadgeColor,
		); err != nil {
			return fmt.Errorf("insert stamp %s: %w", stamp.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit progress: %w", err)
	}
	return nil
}

func (s *SQLiteProgressStore) Clear(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin clear tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()
	if _, err := tx.ExecContext(ctx, `DELETE FROM progress`); err != nil {
		return fmt.Errorf("clear progress: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM stamps`); err != nil {
		return fmt.Errorf("clear stamps: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit clear: %w", err)
	}
	return nil
}

// CountStampsByMission reads the stamp projection, keyed by mission id.
func (s *SQLiteProgressStore) CountStampsByMission(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT mission_id, COUNT(*) FROM stamps GROUP BY mission_id`)
	if err != nil {
		return nil, fmt.Errorf("query stamps: %w", err)
	}
	defer rows.Close()
	counts := map[string]int{}
	for rows.Next() {
		var missionID string
		var n int
		if err := rows.Scan(&missionID, &n); err != nil {
			return nil, fmt.Errorf("scan stamps: %w", err)
		}
		counts[missionID] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stamps: %w", err)
	}
	return counts, nil
}

func (s *SQLiteProgressStore) Close() error {
	return s.db.Close()
}
