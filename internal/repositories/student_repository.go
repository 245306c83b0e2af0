package repositories

import (
	"context"

	"school-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type StudentRepository struct {
	DB *pgxpool.Pool
}

func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{DB: db}
}

func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	query := `
		INSERT INTO students (admission_number, name, class_id, class_name, guardian_name, guardian_phone)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, is_enrolled, created_at, updated_at
	`
	return r.DB.QueryRow(ctx, query,
		student.AdmissionNumber,
		student.Name,
		student.ClassID,
		student.ClassName,
		student.GuardianName,
		student.GuardianPhone,
	).Scan(&student.ID, &student.IsEnrolled, &student.CreatedAt, &student.UpdatedAt)
}

func (r *StudentRepository) Get(ctx context.Context, id int) (*models.Student, error) {
	query := `
		SELECT id, admission_number, name, class_id, class_name, guardian_name, guardian_phone,
		       is_enrolled, created_at, updated_at
		FROM students
		WHERE id = $1
	`
	student := &models.Student{}
	err := r.DB.QueryRow(ctx, query, id).Scan(
		&student.ID,
		&student.AdmissionNumber,
		&student.Name,
		&student.ClassID,
		&student.ClassName,
		&student.GuardianName,
		&student.GuardianPhone,
		&student.IsEnrolled,
		&student.CreatedAt,
		&student.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return student, nil
}

func (r *StudentRepository) List(ctx context.Context) ([]*models.Student, error) {
	query := `
		SELECT id, admission_number, name, class_id, class_name, guardian_name, guardian_phone,
		       is_enrolled, created_at, updated_at
		FROM students
		ORDER BY class_id, name
	`
	return r.queryStudents(ctx, query)
}

// ListEnrolledByClass returns the students the Assignment Engine expands a
// structure over: currently enrolled members of the class.
func (r *StudentRepository) ListEnrolledByClass(ctx context.Context, classID int) ([]*models.Student, error) {
	query := `
		SELECT id, admission_number, name, class_id, class_name, guardian_name, guardian_phone,
		       is_enrolled, created_at, updated_at
		FROM students
		WHERE class_id = $1 AND is_enrolled
		ORDER BY name
	`
	return r.queryStudents(ctx, query, classID)
}

func (r *StudentRepository) queryStudents(ctx context.Context, query string, args ...interface{}) ([]*models.Student, error) {
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		student := &models.Student{}
		err := rows.Scan(
			&student.ID,
			&student.AdmissionNumber,
			&student.Name,
			&student.ClassID,
			&student.ClassName,
			&student.GuardianName,
			&student.GuardianPhone,
			&student.IsEnrolled,
			&student.CreatedAt,
			&student.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		students = append(students, student)
	}
	return students, rows.Err()
}
