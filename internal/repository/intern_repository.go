package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/internship-service/internal/domain"
)

// InternFilter captures dashboard search parameters.
type InternFilter struct {
	Status     *domain.InternStatus
	Domain     *string
	SearchTerm *string
}

// InternRepository encapsulates intern persistence.
type InternRepository interface {
	Create(ctx context.Context, intern *domain.Intern) error
	Update(ctx context.Context, intern *domain.Intern) error
	GetByID(ctx context.Context, id string) (*domain.Intern, error)
	GetByInternID(ctx context.Context, internID string) (*domain.Intern, error)
	GetByEmail(ctx context.Context, email string) (*domain.Intern, error)
	ListWithFilter(ctx context.Context, filter InternFilter) ([]domain.Intern, error)
	Stats(ctx context.Context) (*domain.InternStats, error)
	Delete(ctx context.Context, id string) error
	// HighestSheetRow returns the largest source-roster row number recorded
	// so far, or 0 when no synced record exists.
	HighestSheetRow(ctx context.Context) (int, error)
	// InTx runs fn against a transaction-scoped repository with a hard
	// deadline. Any error from fn (or the deadline) rolls the whole unit
	// back.
	InTx(ctx context.Context, timeout time.Duration, fn func(ctx context.Context, repo InternRepository) error) error
}

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type internRepository struct {
	pool *pgxpool.Pool
	db   querier
}

// NewInternRepository returns a Postgres-backed implementation.
func NewInternRepository(pool *pgxpool.Pool) InternRepository {
	return &internRepository{pool: pool, db: pool}
}

const internColumns = `id, intern_id, name, email, phone, gender, country, domain,
        address, college, degree, year_of_study, social_media, applied_at, phase,
        start_date, end_date, status, offer_letter_sent, certificate_sent,
        sheet_row, created_at, updated_at`

func (r *internRepository) Create(ctx context.Context, intern *domain.Intern) error {
	const query = `
        INSERT INTO interns (intern_id, name, email, phone, gender, country, domain,
            address, college, degree, year_of_study, social_media, applied_at, phase,
            start_date, end_date, status, offer_letter_sent, certificate_sent, sheet_row)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20)
        RETURNING id, created_at, updated_at`
	return r.db.QueryRow(ctx, query,
		intern.InternID,
		intern.Name,
		intern.Email,
		intern.Phone,
		intern.Gender,
		intern.Country,
		intern.Domain,
		intern.Address,
		intern.College,
		intern.Degree,
		intern.YearOfStudy,
		intern.SocialMedia,
		intern.AppliedAt,
		intern.Phase,
		intern.StartDate,
		intern.EndDate,
		intern.Status,
		intern.OfferSent,
		intern.CertSent,
		intern.SheetRow,
	).Scan(&intern.ID, &intern.CreatedAt, &intern.UpdatedAt)
}

func (r *internRepository) Update(ctx context.Context, intern *domain.Intern) error {
	// intern_id is immutable and deliberately absent from the SET list.
	const query = `
        UPDATE interns SET name=$1, email=$2, phone=$3, gender=$4, country=$5, domain=$6,
            address=$7, college=$8, degree=$9, year_of_study=$10, social_media=$11,
            applied_at=$12, phase=$13, start_date=$14, end_date=$15, status=$16,
            offer_letter_sent=$17, certificate_sent=$18, sheet_row=$19, updated_at=NOW()
        WHERE id=$20`
	cmd, err := r.db.Exec(ctx, query,
		intern.Name,
		intern.Email,
		intern.Phone,
		intern.Gender,
		intern.Country,
		intern.Domain,
		intern.Address,
		intern.College,
		intern.Degree,
		intern.YearOfStudy,
		intern.SocialMedia,
		intern.AppliedAt,
		intern.Phase,
		intern.StartDate,
		intern.EndDate,
		intern.Status,
		intern.OfferSent,
		intern.CertSent,
		intern.SheetRow,
		intern.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *internRepository) GetByID(ctx context.Context, id string) (*domain.Intern, error) {
	query := fmt.Sprintf(`SELECT %s FROM interns WHERE id=$1`, internColumns)
	return r.fetchSingle(ctx, query, id)
}

func (r *internRepository) GetByInternID(ctx context.Context, internID string) (*domain.Intern, error) {
	query := fmt.Sprintf(`SELECT %s FROM interns WHERE intern_id=$1`, internColumns)
	return r.fetchSingle(ctx, query, internID)
}

func (r *internRepository) GetByEmail(ctx context.Context, email string) (*domain.Intern, error) {
	query := fmt.Sprintf(`SELECT %s FROM interns WHERE email=$1`, internColumns)
	return r.fetchSingle(ctx, query, email)
}

func (r *internRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Intern, error) {
	var intern domain.Intern
	if err := scanIntern(r.db.QueryRow(ctx, query, arg), &intern); err != nil {
		return nil, err
	}
	return &intern, nil
}

func (r *internRepository) ListWithFilter(ctx context.Context, filter InternFilter) ([]domain.Intern, error) {
	base := fmt.Sprintf(`SELECT %s FROM interns`, internColumns)
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}
	if filter.Domain != nil {
		args = append(args, *filter.Domain)
		clauses = append(clauses, fmt.Sprintf("domain=$%d", len(args)))
	}
	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
		search := "%" + strings.ToLower(strings.TrimSpace(*filter.SearchTerm)) + "%"
		args = append(args, search)
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf(
			"(LOWER(name) LIKE %s OR LOWER(email) LIKE %s OR LOWER(intern_id) LIKE %s)",
			placeholder, placeholder, placeholder))
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY created_at DESC`, base, strings.Join(clauses, " AND "))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanInterns(rows)
}

func (r *internRepository) Stats(ctx context.Context) (*domain.InternStats, error) {
	const query = `
        SELECT COUNT(*),
               COUNT(*) FILTER (WHERE status='pending'),
               COUNT(*) FILTER (WHERE status='active'),
               COUNT(*) FILTER (WHERE status='completed')
        FROM interns`
	var stats domain.InternStats
	if err := r.db.QueryRow(ctx, query).Scan(&stats.Total, &stats.Pending, &stats.Active, &stats.Completed); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *internRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM interns WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *internRepository) HighestSheetRow(ctx context.Context) (int, error) {
	var row int
	err := r.db.QueryRow(ctx, `SELECT COALESCE(MAX(sheet_row), 0) FROM interns`).Scan(&row)
	if err != nil {
		return 0, err
	}
	return row, nil
}

func (r *internRepository) InTx(ctx context.Context, timeout time.Duration, fn func(ctx context.Context, repo InternRepository) error) error {
	if r.pool == nil {
		return fmt.Errorf("transactions require a connection pool")
	}

	txCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		txCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	tx, err := r.pool.Begin(txCtx)
	if err != nil {
		return err
	}

	if err := fn(txCtx, &internRepository{db: tx}); err != nil {
		_ = tx.Rollback(txCtx)
		return err
	}
	return tx.Commit(txCtx)
}

func scanIntern(row pgx.Row, intern *domain.Intern) error {
	return row.Scan(
		&intern.ID,
		&intern.InternID,
		&intern.Name,
		&intern.Email,
		&intern.Phone,
		&intern.Gender,
		&intern.Country,
		&intern.Domain,
		&intern.Address,
		&intern.College,
		&intern.Degree,
		&intern.YearOfStudy,
		&intern.SocialMedia,
		&intern.AppliedAt,
		&intern.Phase,
		&intern.StartDate,
		&intern.EndDate,
		&intern.Status,
		&intern.OfferSent,
		&intern.CertSent,
		&intern.SheetRow,
		&intern.CreatedAt,
		&intern.UpdatedAt,
	)
}

func scanInterns(rows pgx.Rows) ([]domain.Intern, error) {
	var result []domain.Intern
	for rows.Next() {
		var intern domain.Intern
		if err := scanIntern(rows, &intern); err != nil {
			return nil, err
		}
		result = append(result, intern)
	}
	return result, rows.Err()
}
