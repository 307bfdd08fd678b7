package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/tempod/backend/internal/domain/temporary"
)

// timerSnapshotRepository 计时器快照 SQLite 仓储实现
// 充当核心依赖的外部持久化注册表：每次状态转换后落盘最新属性包，
// 进程重启时据此恢复存活的实体
type timerSnapshotRepository struct {
	db *sql.DB
}

// NewTimerSnapshotRepository 创建计时器快照仓储实例
func NewTimerSnapshotRepository(db *sql.DB) (temporary.SnapshotStore, error) {
	if err := initSnapshotTable(db); err != nil {
		return nil, fmt.Errorf("failed to init timer_snapshots table: %w", err)
	}
	return &timerSnapshotRepository{db: db}, nil
}

// initSnapshotTable 初始化快照表
func initSnapshotTable(db *sql.DB) error {
	createTableSQL := `
	CREATE TABLE IF NOT EXISTS timer_snapshots (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		state TEXT NOT NULL,
		created_at TEXT NOT NULL,
		finalized_at TEXT,
		expected_duration REAL,
		duration TEXT NOT NULL,
		remaining TEXT NOT NULL,
		start_time TEXT,
		finishes_at TEXT,
		updated_at INTEGER NOT NULL
	);`

	if _, err := db.Exec(createTableSQL); err != nil {
		return fmt.Errorf("failed to create timer_snapshots table: %w", err)
	}

	// 创建索引
	createIndexSQL := `
	CREATE INDEX IF NOT EXISTS idx_timer_snapshots_state ON timer_snapshots(state);`

	if _, err := db.Exec(createIndexSQL); err != nil {
		return fmt.Errorf("failed to create timer_snapshots index: %w", err)
	}

	return nil
}

// Save 保存快照（upsert）
func (r *timerSnapshotRepository) Save(snap *temporary.Snapshot) error {
	var expected sql.NullFloat64
	if snap.ExpectedDuration != nil {
		expected = sql.NullFloat64{Float64: *snap.ExpectedDuration, Valid: true}
	}

	query := `
		INSERT OR REPLACE INTO timer_snapshots
		(id, name, state, created_at, finalized_at, expected_duration, duration, remaining, start_time, finishes_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.Exec(query,
		snap.ID,
		snap.Name,
		snap.State,
		snap.CreatedAt,
		nullString(snap.FinalizedAt),
		expected,
		snap.Duration,
		snap.Remaining,
		nullString(snap.StartTime),
		nullString(snap.FinishesAt),
		time.Now().UnixMilli(),
	)

	if err != nil {
		return fmt.Errorf("failed to save timer snapshot: %w", err)
	}

	return nil
}

// Delete 删除指定实体的快照，不存在时不报错
func (r *timerSnapshotRepository) Delete(id string) error {
	if _, err := r.db.Exec(`DELETE FROM timer_snapshots WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete timer snapshot: %w", err)
	}
	return nil
}

// FindAll 返回所有已持久化的快照
func (r *timerSnapshotRepository) FindAll() ([]*temporary.Snapshot, error) {
	query := `
		SELECT id, name, state, created_at, finalized_at, expected_duration, duration, remaining, start_time, finishes_at
		FROM timer_snapshots
		ORDER BY created_at`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query timer snapshots: %w", err)
	}
	defer rows.Close()

	var result []*temporary.Snapshot
	for rows.Next() {
		var snap temporary.Snapshot
		var finalizedAt, startTime, finishesAt sql.NullString
		var expected sql.NullFloat64

		if err := rows.Scan(
			&snap.ID,
			&snap.Name,
			&snap.State,
			&snap.CreatedAt,
			&finalizedAt,
			&expected,
			&snap.Duration,
			&snap.Remaining,
			&startTime,
			&finishesAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan timer snapshot: %w", err)
		}

		snap.FinalizedAt = finalizedAt.String
		snap.StartTime = startTime.String
		snap.FinishesAt = finishesAt.String
		if expected.Valid {
			v := expected.Float64
			snap.ExpectedDuration = &v
		}

		result = append(result, &snap)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate timer snapshots: %w", err)
	}

	return result, nil
}

// nullString 空字符串转为 NULL
func nullString(val string) sql.NullString {
	if val == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: val, Valid: true}
}
