package repositories

import (
	"context"
	"errors"
	"fmt"

	"school-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FeeRecordRepository struct {
	DB *pgxpool.Pool
}

func NewFeeRecordRepository(db *pgxpool.Pool) *FeeRecordRepository {
	return &FeeRecordRepository{DB: db}
}

const feeRecordColumns = `
	fr.id, fr.student_id, COALESCE(s.name, ''), fr.fee_structure_id, fr.fee_type,
	fr.description, fr.amount, fr.discount, fr.fine, fr.total_amount, fr.amount_paid,
	fr.due_date, fr.academic_year, fr.created_at, fr.updated_at
`

func scanFeeRecord(row pgx.Row) (*models.FeeRecord, error) {
	rec := &models.FeeRecord{}
	err := row.Scan(
		&rec.ID,
		&rec.StudentID,
		&rec.StudentName,
		&rec.FeeStructureID,
		&rec.FeeType,
		&rec.Description,
		&rec.Amount,
		&rec.Discount,
		&rec.Fine,
		&rec.TotalAmount,
		&rec.AmountPaid,
		&rec.DueDate,
		&rec.AcademicYear,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *FeeRecordRepository) Create(ctx context.Context, rec *models.FeeRecord) error {
	query := `
		INSERT INTO fee_records (student_id, fee_structure_id, fee_type, description,
		                         amount, discount, fine, total_amount, amount_paid,
		                         due_date, academic_year)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at
	`
	return r.DB.QueryRow(ctx, query,
		rec.StudentID,
		rec.FeeStructureID,
		rec.FeeType,
		rec.Description,
		rec.Amount,
		rec.Discount,
		rec.Fine,
		rec.TotalAmount,
		rec.AmountPaid,
		rec.DueDate,
		rec.AcademicYear,
	).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)
}

// BulkCreateForStructure inserts one record per student, skipping students
// that already hold a record for this structure. Returns the number actually
// created, which is what makes re-running an assignment a no-op.
func (r *FeeRecordRepository) BulkCreateForStructure(ctx context.Context, records []*models.FeeRecord) (int, error) {
	created := 0
	for _, rec := range records {
		query := `
			INSERT INTO fee_records (student_id, fee_structure_id, fee_type, description,
			                         amount, discount, fine, total_amount, amount_paid,
			                         due_date, academic_year)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			ON CONFLICT (fee_structure_id, student_id) WHERE fee_structure_id IS NOT NULL
			DO NOTHING
		`
		tag, err := r.DB.Exec(ctx, query,
			rec.StudentID,
			rec.FeeStructureID,
			rec.FeeType,
			rec.Description,
			rec.Amount,
			rec.Discount,
			rec.Fine,
			rec.TotalAmount,
			rec.AmountPaid,
			rec.DueDate,
			rec.AcademicYear,
		)
		if err != nil {
			return created, fmt.Errorf("failed to create fee record for student %d: %w", rec.StudentID, err)
		}
		created += int(tag.RowsAffected())
	}
	return created, nil
}

func (r *FeeRecordRepository) Get(ctx context.Context, id int) (*models.FeeRecord, error) {
	query := `
		SELECT ` + feeRecordColumns + `
		FROM fee_records fr
		LEFT JOIN students s ON fr.student_id = s.id
		WHERE fr.id = $1
	`
	rec, err := scanFeeRecord(r.DB.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrRecordNotFound
	}
	return rec, err
}

// List returns records narrowed by every non-zero filter field except
// PaymentStatus, which is derived in Go by the caller so the status logic
// stays in one place.
func (r *FeeRecordRepository) List(ctx context.Context, filter models.FeeRecordFilter) ([]*models.FeeRecord, error) {
	query := `
		SELECT ` + feeRecordColumns + `
		FROM fee_records fr
		LEFT JOIN students s ON fr.student_id = s.id
		WHERE 1=1
	`
	args := []interface{}{}
	n := 0

	if filter.FeeType != "" {
		n++
		query += fmt.Sprintf(" AND fr.fee_type = $%d", n)
		args = append(args, filter.FeeType)
	}
	if filter.AcademicYear != "" {
		n++
		query += fmt.Sprintf(" AND fr.academic_year = $%d", n)
		args = append(args, filter.AcademicYear)
	}
	if filter.ClassID != 0 {
		n++
		query += fmt.Sprintf(" AND s.class_id = $%d", n)
		args = append(args, filter.ClassID)
	}
	if filter.Search != "" {
		n++
		query += fmt.Sprintf(" AND (s.name ILIKE $%d OR s.admission_number ILIKE $%d)", n, n)
		args = append(args, "%"+filter.Search+"%")
	}
	query += " ORDER BY fr.due_date, fr.id"

	return r.queryRecords(ctx, query, args...)
}

func (r *FeeRecordRepository) ListByStudent(ctx context.Context, studentID int) ([]*models.FeeRecord, error) {
	query := `
		SELECT ` + feeRecordColumns + `
		FROM fee_records fr
		LEFT JOIN students s ON fr.student_id = s.id
		WHERE fr.student_id = $1
		ORDER BY fr.due_date, fr.id
	`
	return r.queryRecords(ctx, query, studentID)
}

// ListStudentIDsForStructure returns the students already holding a record
// for the structure, used by the Assignment Engine's idempotency check.
func (r *FeeRecordRepository) ListStudentIDsForStructure(ctx context.Context, structureID int) (map[int]bool, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT student_id FROM fee_records WHERE fee_structure_id = $1`, structureID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	existing := make(map[int]bool)
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		existing[id] = true
	}
	return existing, rows.Err()
}

func (r *FeeRecordRepository) Update(ctx context.Context, rec *models.FeeRecord) error {
	query := `
		UPDATE fee_records
		SET description = $1, amount = $2, discount = $3, fine = $4,
		    total_amount = $5, due_date = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING updated_at
	`
	err := r.DB.QueryRow(ctx, query,
		rec.Description,
		rec.Amount,
		rec.Discount,
		rec.Fine,
		rec.TotalAmount,
		rec.DueDate,
		rec.ID,
	).Scan(&rec.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.ErrRecordNotFound
	}
	return err
}

// Delete removes a record only while nothing has been paid against it
func (r *FeeRecordRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx,
		`DELETE FROM fee_records WHERE id = $1 AND amount_paid = 0`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("fee record %d cannot be deleted: not found or payments exist", id)
	}
	return nil
}

// GenerateBillNumber mints a unique bill number from a database sequence
func (r *FeeRecordRepository) GenerateBillNumber(ctx context.Context) (string, error) {
	var nextNum int
	err := r.DB.QueryRow(ctx, "SELECT nextval('bill_number_sequence')").Scan(&nextNum)
	if err != nil {
		return "", fmt.Errorf("failed to get next bill number: %w", err)
	}
	return fmt.Sprintf("BILL-%06d", nextNum), nil
}

func (r *FeeRecordRepository) queryRecords(ctx context.Context, query string, args ...interface{}) ([]*models.FeeRecord, error) {
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*models.FeeRecord
	for rows.Next() {
		rec, err := scanFeeRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
