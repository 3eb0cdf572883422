package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/htn0810/Bill-Sharing/internal/models"
	"github.com/htn0810/Bill-Sharing/internal/storage"
)

var billColumns = []string{"id", "name", "status", "created_at", "completed_at"}

// CreateBill persists a new bill together with its members.
func (s *SQLiteStore) CreateBill(ctx context.Context, bill *models.Bill) error {
	if bill.ID == "" {
		bill.ID = uuid.New().String()
	}
	if bill.CreatedAt.IsZero() {
		bill.CreatedAt = time.Now().UTC()
	}
	if bill.Status == "" {
		bill.Status = models.BillStatusActive
	}
	rec := storage.FromBill(bill)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query, args, err := sq.Insert("bills").
		Columns(billColumns...).
		Values(rec.ID, rec.Name, rec.Status, rec.CreatedAt, nullable(rec.CompletedAt)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build bill insert: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert bill: %w", err)
	}

	if err := insertMembers(ctx, tx, rec.ID, rec.Members); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetBill retrieves a bill by ID, including its members.
func (s *SQLiteStore) GetBill(ctx context.Context, billID string) (*models.Bill, error) {
	query, args, err := sq.Select(billColumns...).
		From("bills").
		Where(sq.Eq{"id": billID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build bill query: %w", err)
	}

	rec, err := scanBill(s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("bill %s: %w", billID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}

	members, err := s.members(ctx, []string{billID})
	if err != nil {
		return nil, err
	}
	rec.Members = members[billID]

	return storage.ToBill(rec)
}

// ListBills returns every bill, newest first.
func (s *SQLiteStore) ListBills(ctx context.Context) ([]*models.Bill, error) {
	query, args, err := sq.Select(billColumns...).
		From("bills").
		OrderBy("created_at DESC", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build bill query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}

	var records []storage.BillRecord
	for rows.Next() {
		rec, err := scanBill(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan bill: %w", err)
		}
		records = append(records, rec)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bills: %w", err)
	}

	ids := make([]string, len(records))
	for i, rec := range records {
		ids[i] = rec.ID
	}
	members, err := s.members(ctx, ids)
	if err != nil {
		return nil, err
	}

	bills := make([]*models.Bill, 0, len(records))
	for _, rec := range records {
		rec.Members = members[rec.ID]
		bill, err := storage.ToBill(rec)
		if err != nil {
			return nil, err
		}
		bills = append(bills, bill)
	}
	return bills, nil
}

// SetBillStatus updates the lifecycle state of a bill.
func (s *SQLiteStore) SetBillStatus(ctx context.Context, billID string, status models.BillStatus, completedAt time.Time) error {
	var completed any
	if status == models.BillStatusCompleted {
		completed = completedAt.UTC().Format(storage.TimeLayout)
	}

	query, args, err := sq.Update("bills").
		Set("status", string(status)).
		Set("completed_at", completed).
		Where(sq.Eq{"id": billID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build bill update: %w", err)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update bill status: %w", err)
	}
	return rowsAffected(res, "bill", billID)
}

// UpdateBillMembers replaces the member list of a bill.
func (s *SQLiteStore) UpdateBillMembers(ctx context.Context, billID string, members []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, "SELECT 1 FROM bills WHERE id = ?", billID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("bill %s: %w", billID, storage.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to check bill: %w", err)
	}

	query, args, err := sq.Delete("bill_members").Where(sq.Eq{"bill_id": billID}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build member delete: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to delete members: %w", err)
	}

	if err := insertMembers(ctx, tx, billID, members); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func insertMembers(ctx context.Context, tx *sql.Tx, billID string, members []string) error {
	if len(members) == 0 {
		return nil
	}

	insert := sq.Insert("bill_members").Columns("bill_id", "name", "position")
	for i, name := range members {
		insert = insert.Values(billID, name, i)
	}
	query, args, err := insert.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build member insert: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert members: %w", err)
	}
	return nil
}

// members loads the ordered member lists of the given bills.
func (s *SQLiteStore) members(ctx context.Context, billIDs []string) (map[string][]string, error) {
	out := make(map[string][]string, len(billIDs))
	if len(billIDs) == 0 {
		return out, nil
	}

	query, args, err := sq.Select("bill_id", "name").
		From("bill_members").
		Where(sq.Eq{"bill_id": billIDs}).
		OrderBy("bill_id", "position").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build member query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get members: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var billID, name string
		if err := rows.Scan(&billID, &name); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		out[billID] = append(out[billID], name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate members: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBill(row scanner) (storage.BillRecord, error) {
	var (
		rec         storage.BillRecord
		completedAt sql.NullString
	)
	if err := row.Scan(&rec.ID, &rec.Name, &rec.Status, &rec.CreatedAt, &completedAt); err != nil {
		return storage.BillRecord{}, err
	}
	rec.CompletedAt = completedAt.String
	return rec, nil
}
