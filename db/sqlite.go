// Package db 提供SQLite持久化
package db

import (
	"database/sql"
	"errors"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"flowquant/market"
)

var database *sql.DB

// InitDB 打开数据库并建表
func InitDB(path string) error {
	var err error
	database, err = sql.Open("sqlite3", path)
	if err != nil {
		return err
	}

	query := `
    CREATE TABLE IF NOT EXISTS spot_quotes (
        id INTEGER PRIMARY KEY,
        symbol VARCHAR(20),
        name TEXT,
        open REAL,
        high REAL,
        low REAL,
        price REAL,
        volume INTEGER,
        timestamp DATETIME,
        UNIQUE(symbol, timestamp)
    );
    CREATE TABLE IF NOT EXISTS analysis_runs (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        date TEXT NOT NULL,
        rows INTEGER NOT NULL,
        cache_hit INTEGER NOT NULL,
        duration_ms INTEGER NOT NULL,
        created_at DATETIME DEFAULT CURRENT_TIMESTAMP
    );
    `

	_, err = database.Exec(query)
	return err
}

// Close 关闭数据库
func Close() error {
	if database == nil {
		return nil
	}
	return database.Close()
}

// SaveSpots 批量保存个股快照
func SaveSpots(spots []market.Spot) error {
	if database == nil {
		return errors.New("database not initialized")
	}
	if len(spots) == 0 {
		return nil
	}

	tx, err := database.Begin()
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
        INSERT OR REPLACE INTO spot_quotes (symbol, name, open, high, low, price, volume, timestamp)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, s := range spots {
		if _, err := stmt.Exec(s.Symbol, s.Name, s.Open, s.High, s.Low, s.Price, s.Volume, s.Timestamp); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// SaveAnalysisRun 记录一次行业分析的执行情况
func SaveAnalysisRun(date string, rows int, cacheHit bool, duration time.Duration) error {
	if database == nil {
		return errors.New("database not initialized")
	}
	hit := 0
	if cacheHit {
		hit = 1
	}
	_, err := database.Exec(`
        INSERT INTO analysis_runs (date, rows, cache_hit, duration_ms)
        VALUES (?, ?, ?, ?)`,
		date, rows, hit, duration.Milliseconds())
	return err
}

// AnalysisRun 单次分析的审计记录
type AnalysisRun struct {
	Date       string    `json:"date"`
	Rows       int       `json:"rows"`
	CacheHit   bool      `json:"cache_hit"`
	DurationMs int64     `json:"duration_ms"`
	CreatedAt  time.Time `json:"created_at"`
}

// LoadAnalysisRuns 按时间倒序读取最近的分析记录
func LoadAnalysisRuns(limit int) ([]AnalysisRun, error) {
	if database == nil {
		return nil, errors.New("database not initialized")
	}
	rows, err := database.Query(`
        SELECT date, rows, cache_hit, duration_ms, created_at
        FROM analysis_runs
        ORDER BY created_at DESC
        LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []AnalysisRun
	for rows.Next() {
		var run AnalysisRun
		var hit int
		if err := rows.Scan(&run.Date, &run.Rows, &hit, &run.DurationMs, &run.CreatedAt); err != nil {
			return nil, err
		}
		run.CacheHit = hit == 1
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
