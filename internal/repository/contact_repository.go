package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/internship-service/internal/domain"
)

// ContactFilter captures dashboard search parameters for submissions.
type ContactFilter struct {
	Status     *domain.ContactStatus
	SearchTerm *string
}

// ContactRepository encapsulates contact-submission persistence.
type ContactRepository interface {
	Create(ctx context.Context, contact *domain.ContactSubmission) error
	GetByID(ctx context.Context, id string) (*domain.ContactSubmission, error)
	ListWithFilter(ctx context.Context, filter ContactFilter) ([]domain.ContactSubmission, error)
	UpdateStatus(ctx context.Context, id string, status domain.ContactStatus) error
	Stats(ctx context.Context) (*domain.ContactStats, error)
	Delete(ctx context.Context, id string) error
}

type contactRepository struct {
	pool *pgxpool.Pool
}

// NewContactRepository returns a Postgres-backed implementation.
func NewContactRepository(pool *pgxpool.Pool) ContactRepository {
	return &contactRepository{pool: pool}
}

const contactColumns = `id, name, email, subject, message, phone, status, created_at, updated_at`

func (r *contactRepository) Create(ctx context.Context, contact *domain.ContactSubmission) error {
	const query = `
        INSERT INTO contact_submissions (name, email, subject, message, phone, status)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		contact.Name,
		contact.Email,
		contact.Subject,
		contact.Message,
		contact.Phone,
		contact.Status,
	).Scan(&contact.ID, &contact.CreatedAt, &contact.UpdatedAt)
}

func (r *contactRepository) GetByID(ctx context.Context, id string) (*domain.ContactSubmission, error) {
	query := fmt.Sprintf(`SELECT %s FROM contact_submissions WHERE id=$1`, contactColumns)
	var contact domain.ContactSubmission
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&contact.ID,
		&contact.Name,
		&contact.Email,
		&contact.Subject,
		&contact.Message,
		&contact.Phone,
		&contact.Status,
		&contact.CreatedAt,
		&contact.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &contact, nil
}

func (r *contactRepository) ListWithFilter(ctx context.Context, filter ContactFilter) ([]domain.ContactSubmission, error) {
	base := fmt.Sprintf(`SELECT %s FROM contact_submissions`, contactColumns)
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}
	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
		search := "%" + strings.ToLower(strings.TrimSpace(*filter.SearchTerm)) + "%"
		args = append(args, search)
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf(
			"(LOWER(name) LIKE %s OR LOWER(email) LIKE %s OR LOWER(subject) LIKE %s OR LOWER(message) LIKE %s)",
			placeholder, placeholder, placeholder, placeholder))
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY created_at DESC`, base, strings.Join(clauses, " AND "))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ContactSubmission
	for rows.Next() {
		var contact domain.ContactSubmission
		if err := rows.Scan(
			&contact.ID,
			&contact.Name,
			&contact.Email,
			&contact.Subject,
			&contact.Message,
			&contact.Phone,
			&contact.Status,
			&contact.CreatedAt,
			&contact.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, contact)
	}
	return result, rows.Err()
}

func (r *contactRepository) UpdateStatus(ctx context.Context, id string, status domain.ContactStatus) error {
	cmd, err := r.pool.Exec(ctx,
		`UPDATE contact_submissions SET status=$1, updated_at=NOW() WHERE id=$2`, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *contactRepository) Stats(ctx context.Context) (*domain.ContactStats, error) {
	const query = `
        SELECT COUNT(*),
               COUNT(*) FILTER (WHERE status='new'),
               COUNT(*) FILTER (WHERE status='read'),
               COUNT(*) FILTER (WHERE status='responded')
        FROM contact_submissions`
	var stats domain.ContactStats
	if err := r.pool.QueryRow(ctx, query).Scan(&stats.Total, &stats.New, &stats.Read, &stats.Responded); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *contactRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM contact_submissions WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
