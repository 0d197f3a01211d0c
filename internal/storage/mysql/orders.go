package mysql

import (
	"context"
	"database/sql"
	"fmt"

	"bms-board/internal/storage"
)

// Snapshot reads the whole order table into memory. Every pass over the
// worklist works against the copy it got, a concurrent sync never shows
// through mid-pass.
func (s *Storage) Snapshot(ctx context.Context) (storage.Snapshot, error) {
	const op = "storage.mysql.Snapshot"

	stmt := `
		SELECT order_id, code, status, created_at, customer_name,
		       lens_staff, frame_staff, lens_type, frame_type,
		       las_reference_id, las_classification, las_comment,
		       fas_reference_id, fas_classification, fas_comment
		FROM bms_orders
	`

	rows, err := s.db.QueryContext(ctx, stmt)
	if err != nil {
		return storage.Snapshot{}, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	snap := storage.Snapshot{Columns: make(map[string]bool)}

	for rows.Next() {
		var o storage.OrderRecord
		var lasClass, lasComment, fasClass, fasComment sql.NullString

		err := rows.Scan(
			&o.ID, &o.Code, &o.Status, &o.CreatedAt, &o.Customer,
			&o.LensStaff, &o.FrameStaff, &o.LensType, &o.FrameType,
			&o.LensService.ReferenceID, &lasClass, &lasComment,
			&o.FrameService.ReferenceID, &fasClass, &fasComment,
		)
		if err != nil {
			return storage.Snapshot{}, fmt.Errorf("%s: %w", op, err)
		}

		o.LensService.Classification = lasClass.String
		o.LensService.Comment = lasComment.String
		o.FrameService.Classification = fasClass.String
		o.FrameService.Comment = fasComment.String

		markColumns(&snap, o)
		snap.Orders = append(snap.Orders, o)
	}
	if err := rows.Err(); err != nil {
		return storage.Snapshot{}, fmt.Errorf("%s: %w", op, err)
	}

	return snap, nil
}

// markColumns records which logical columns actually carry data. A dimension
// the remote system never filled in looks exactly like a missing sheet
// column, and the matching pass is skipped downstream.
func markColumns(snap *storage.Snapshot, o storage.OrderRecord) {
	if o.LensType != "" {
		snap.Columns[storage.ColLensType] = true
	}
	if o.FrameType != "" {
		snap.Columns[storage.ColFrameType] = true
	}
	if o.LensStaff != "" {
		snap.Columns[storage.ColLensStaff] = true
	}
	if o.FrameStaff != "" {
		snap.Columns[storage.ColFrameStaff] = true
	}
	if o.LensService.ReferenceID != "" {
		snap.Columns[storage.ColLasReferenceID] = true
	}
	if o.FrameService.ReferenceID != "" {
		snap.Columns[storage.ColFasReferenceID] = true
	}
}

// UpsertOrders writes one sync batch, replacing by order code: the remote
// side re-serves the same order with newer state, last write wins.
func (s *Storage) UpsertOrders(ctx context.Context, orders []storage.OrderRecord) (int, error) {
	const op = "storage.mysql.UpsertOrders"

	if len(orders) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO bms_orders (
			code, order_id, status, created_at, customer_name,
			lens_staff, frame_staff, lens_type, frame_type,
			las_reference_id, las_classification, las_comment,
			fas_reference_id, fas_classification, fas_comment
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			order_id = VALUES(order_id),
			status = VALUES(status),
			created_at = VALUES(created_at),
			customer_name = VALUES(customer_name),
			lens_staff = VALUES(lens_staff),
			frame_staff = VALUES(frame_staff),
			lens_type = VALUES(lens_type),
			frame_type = VALUES(frame_type),
			las_reference_id = VALUES(las_reference_id),
			las_classification = VALUES(las_classification),
			las_comment = VALUES(las_comment),
			fas_reference_id = VALUES(fas_reference_id),
			fas_classification = VALUES(fas_classification),
			fas_comment = VALUES(fas_comment)
	`)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	defer stmt.Close()

	count := 0
	for _, o := range orders {
		if o.Code == "" {
			continue
		}
		_, err := stmt.ExecContext(ctx,
			o.Code, o.ID, o.Status, o.CreatedAt, o.Customer,
			o.LensStaff, o.FrameStaff, o.LensType, o.FrameType,
			o.LensService.ReferenceID, o.LensService.Classification, o.LensService.Comment,
			o.FrameService.ReferenceID, o.FrameService.Classification, o.FrameService.Comment,
		)
		if err != nil {
			return 0, fmt.Errorf("%s: upsert %s: %w", op, o.Code, err)
		}
		count++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return count, nil
}
