package repositories

import (
	"context"

	"school-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type FeeStructureRepository struct {
	DB *pgxpool.Pool
}

func NewFeeStructureRepository(db *pgxpool.Pool) *FeeStructureRepository {
	return &FeeStructureRepository{DB: db}
}

func (r *FeeStructureRepository) Create(ctx context.Context, s *models.FeeStructure) error {
	query := `
		INSERT INTO fee_structures (name, fee_type, class_id, academic_year, amount, due_date, frequency)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, is_active, created_at, updated_at
	`
	return r.DB.QueryRow(ctx, query,
		s.Name,
		s.FeeType,
		s.ClassID,
		s.AcademicYear,
		s.Amount,
		s.DueDate,
		s.Frequency,
	).Scan(&s.ID, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
}

func (r *FeeStructureRepository) Get(ctx context.Context, id int) (*models.FeeStructure, error) {
	query := `
		SELECT id, name, fee_type, class_id, academic_year, amount, due_date, frequency,
		       is_active, created_at, updated_at
		FROM fee_structures
		WHERE id = $1
	`
	s := &models.FeeStructure{}
	err := r.DB.QueryRow(ctx, query, id).Scan(
		&s.ID,
		&s.Name,
		&s.FeeType,
		&s.ClassID,
		&s.AcademicYear,
		&s.Amount,
		&s.DueDate,
		&s.Frequency,
		&s.IsActive,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *FeeStructureRepository) List(ctx context.Context) ([]*models.FeeStructure, error) {
	query := `
		SELECT id, name, fee_type, class_id, academic_year, amount, due_date, frequency,
		       is_active, created_at, updated_at
		FROM fee_structures
		ORDER BY academic_year DESC, class_id, name
	`
	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var structures []*models.FeeStructure
	for rows.Next() {
		s := &models.FeeStructure{}
		err := rows.Scan(
			&s.ID,
			&s.Name,
			&s.FeeType,
			&s.ClassID,
			&s.AcademicYear,
			&s.Amount,
			&s.DueDate,
			&s.Frequency,
			&s.IsActive,
			&s.CreatedAt,
			&s.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		structures = append(structures, s)
	}
	return structures, rows.Err()
}

// Update edits a structure in place. Deactivation is handled separately by
// ToggleActive so amount/date edits never flip visibility by accident.
func (r *FeeStructureRepository) Update(ctx context.Context, s *models.FeeStructure) error {
	query := `
		UPDATE fee_structures
		SET name = $1, fee_type = $2, class_id = $3, academic_year = $4,
		    amount = $5, due_date = $6, frequency = $7, updated_at = NOW()
		WHERE id = $8
		RETURNING updated_at
	`
	return r.DB.QueryRow(ctx, query,
		s.Name,
		s.FeeType,
		s.ClassID,
		s.AcademicYear,
		s.Amount,
		s.DueDate,
		s.Frequency,
		s.ID,
	).Scan(&s.UpdatedAt)
}

func (r *FeeStructureRepository) ToggleActive(ctx context.Context, id int) (*models.FeeStructure, error) {
	query := `
		UPDATE fee_structures
		SET is_active = NOT is_active, updated_at = NOW()
		WHERE id = $1
	`
	if _, err := r.DB.Exec(ctx, query, id); err != nil {
		return nil, err
	}
	return r.Get(ctx, id)
}

func (r *FeeStructureRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM fee_structures WHERE id = $1`, id)
	return err
}
