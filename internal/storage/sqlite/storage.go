// Package sqlite provides a SQLite-backed storage implementation for
// single-node deployments.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/mcoot/tilepath/internal/model"
	"github.com/mcoot/tilepath/internal/storage"
)

//go:embed schema.sql
var schema string

// Storage persists users, games and attempts in a SQLite file
type Storage struct {
	db *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens (creating if needed) the database at path and applies the schema
func Open(ctx context.Context, path string) (*Storage, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Storage{db: db}, nil
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) SaveUser(ctx context.Context, user *model.User) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, name, gamer_key, phone, password_hash, role, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   name = excluded.name,
		   gamer_key = excluded.gamer_key,
		   phone = excluded.phone,
		   password_hash = excluded.password_hash,
		   role = excluded.role`,
		string(user.ID),
		user.Name,
		user.GamerKey,
		user.Phone,
		user.PasswordHash,
		string(user.Role),
		toMillis(user.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.ErrDuplicatePhone
		}
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}

const userColumns = `id, name, gamer_key, phone, password_hash, role, created_at`

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, string(id))
	return scanUser(row)
}

func (s *Storage) GetUserByPhone(ctx context.Context, phone string) (*model.User, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE phone = ?`, phone)
	return scanUser(row)
}

func scanUser(row *sql.Row) (*model.User, error) {
	var (
		user      model.User
		id, role  string
		createdAt int64
	)
	err := row.Scan(&id, &user.Name, &user.GamerKey, &user.Phone, &user.PasswordHash, &role, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	user.ID = model.UserID(id)
	user.Role = model.Role(role)
	user.CreatedAt = fromMillis(createdAt)
	return &user, nil
}

// Game operations

type tileRecord struct {
	Position [2]int `json:"position"`
	Number   int    `json:"number"`
}

func (s *Storage) SaveGame(ctx context.Context, game *model.Game) error {
	records := make([]tileRecord, len(game.NumberedTiles))
	for i, t := range game.NumberedTiles {
		records[i] = tileRecord{Position: t.Position.Pair(), Number: t.Number}
	}
	tiles, err := json.Marshal(records)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO games (id, creator, max_number, numbered_tiles, created_at) VALUES (?, ?, ?, ?, ?)`,
		string(game.ID),
		game.Creator,
		game.MaxNumber,
		string(tiles),
		toMillis(game.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("save game: %w", err)
	}
	return nil
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	var (
		game      model.Game
		tiles     string
		createdAt int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT creator, max_number, numbered_tiles, created_at FROM games WHERE id = ?`,
		string(id),
	).Scan(&game.Creator, &game.MaxNumber, &tiles, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrGameNotFound
		}
		return nil, fmt.Errorf("get game: %w", err)
	}

	var records []tileRecord
	if err := json.Unmarshal([]byte(tiles), &records); err != nil {
		return nil, fmt.Errorf("decode numbered tiles: %w", err)
	}
	game.NumberedTiles = make([]model.NumberedTile, len(records))
	for i, r := range records {
		game.NumberedTiles[i] = model.NumberedTile{Position: model.NewPosition(r.Position), Number: r.Number}
	}
	game.ID = id
	game.CreatedAt = fromMillis(createdAt)
	return &game, nil
}

// Attempt operations

func (s *Storage) SaveAttempt(ctx context.Context, attempt *model.Attempt) error {
	pairs := make([][2]int, len(attempt.Path))
	for i, p := range attempt.Path {
		pairs[i] = p.Pair()
	}
	path, err := json.Marshal(pairs)
	if err != nil {
		return err
	}

	var mainTime sql.NullFloat64
	if attempt.MainTime != nil {
		mainTime = sql.NullFloat64{Float64: *attempt.MainTime, Valid: true}
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO attempts (id, game_id, player, path, duration, successful, main_time, timestamp)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		string(attempt.ID),
		string(attempt.GameID),
		attempt.Player,
		string(path),
		attempt.Duration,
		attempt.Successful,
		mainTime,
		toMillis(attempt.Timestamp),
	)
	if err != nil {
		return fmt.Errorf("save attempt: %w", err)
	}
	return nil
}

func (s *Storage) ListAttempts(ctx context.Context, gameID model.GameID, limit int) ([]*model.Attempt, error) {
	if limit <= 0 {
		limit = -1 // no limit
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, player, path, duration, successful, main_time, timestamp
		 FROM attempts WHERE game_id = ? ORDER BY seq LIMIT ?`,
		string(gameID), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	attempts := []*model.Attempt{}
	for rows.Next() {
		var (
			id        string
			path      string
			mainTime  sql.NullFloat64
			timestamp int64
		)
		attempt := &model.Attempt{GameID: gameID}
		if err := rows.Scan(&id, &attempt.Player, &path, &attempt.Duration, &attempt.Successful, &mainTime, &timestamp); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}

		var pairs [][2]int
		if err := json.Unmarshal([]byte(path), &pairs); err != nil {
			return nil, fmt.Errorf("decode path: %w", err)
		}
		attempt.Path = make([]model.Position, len(pairs))
		for i, p := range pairs {
			attempt.Path[i] = model.NewPosition(p)
		}

		attempt.ID = model.AttemptID(id)
		if mainTime.Valid {
			v := mainTime.Float64
			attempt.MainTime = &v
		}
		attempt.Timestamp = fromMillis(timestamp)
		attempts = append(attempts, attempt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	return attempts, nil
}

// Lifecycle

// Ping checks the database handle is usable
func (s *Storage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the SQLite handle
func (s *Storage) Close() error {
	return s.db.Close()
}

func isUniqueViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	switch sqliteErr.Code() {
	case sqlite3lib.SQLITE_CONSTRAINT_UNIQUE, sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY:
		return true
	}
	return sqliteErr.Code()&0xff == sqlite3lib.SQLITE_CONSTRAINT
}
