package mysql

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"

	"bms-board/internal/config"
)

type Storage struct {
	db *sql.DB
}

func New(cfg config.Config) (*Storage, error) {
	const op = "storage.mysql.New"

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4",
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBHost,
		cfg.DBPort,
		cfg.DBName,
	)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s := &Storage{db: db}
	if err := s.initSchema(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s, nil
}

func (s *Storage) initSchema(ctx context.Context) error {
	const op = "storage.mysql.initSchema"

	// classification comes in as a serialized list, comments are free text
	schema := `
	CREATE TABLE IF NOT EXISTS bms_orders (
		code               VARCHAR(64)  NOT NULL,
		order_id           VARCHAR(32)  NOT NULL DEFAULT '',
		status             VARCHAR(64)  NOT NULL DEFAULT '',
		created_at         VARCHAR(64)  NOT NULL DEFAULT '',
		customer_name      VARCHAR(128) NOT NULL DEFAULT '',
		lens_staff         VARCHAR(128) NOT NULL DEFAULT '',
		frame_staff        VARCHAR(128) NOT NULL DEFAULT '',
		lens_type          VARCHAR(32)  NOT NULL DEFAULT '',
		frame_type         VARCHAR(32)  NOT NULL DEFAULT '',
		las_reference_id   VARCHAR(64)  NOT NULL DEFAULT '',
		las_classification TEXT,
		las_comment        TEXT,
		fas_reference_id   VARCHAR(64)  NOT NULL DEFAULT '',
		fas_classification TEXT,
		fas_comment        TEXT,
		synced_at          DATETIME DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (code),
		KEY idx_bms_orders_order_id (order_id)
	)`

	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
