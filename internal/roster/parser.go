package roster

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Row is a parsed and validated roster entry, ready for cohort computation.
type Row struct {
	SheetRow    int
	AppliedAt   time.Time
	Name        string
	Email       string
	Phone       string
	Gender      string
	Country     string
	Domain      string
	Address     string
	College     string
	Degree      string
	Year        string
	SocialMedia string
}

// Rejection reasons. Rejected rows are skipped by the sync engine, never
// treated as errors.
var (
	ErrMissingEmail     = errors.New("email is empty")
	ErrMissingTimestamp = errors.New("timestamp is empty")
	ErrMissingDomain    = errors.New("domain is empty")
)

// The source timestamp format is DD/MM/YYYY with an optional time of day.
var timestampLayouts = []string{
	"02/01/2006 15:04:05",
	"02/01/2006",
	"2/1/2006 15:04:05",
	"2/1/2006",
}

// ColumnMap holds the resolved header index per logical field; -1 means the
// field has no matching column and parses to an empty string.
type ColumnMap struct {
	Timestamp   int
	Name        int
	Email       int
	Phone       int
	Gender      int
	Country     int
	Domain      int
	Address     int
	College     int
	Degree      int
	Year        int
	SocialMedia int
}

// columnAliases is the fixed substring table used to discover columns in the
// operator-edited header row. Per field, the first alias with a matching
// header wins.
var columnAliases = struct {
	timestamp, name, email, phone, gender, country,
	domain, address, college, degree, year, socialMedia []string
}{
	timestamp:   []string{"timestamp", "time", "date"},
	name:        []string{"name", "full name", "student name"},
	email:       []string{"email", "e-mail", "email address"},
	phone:       []string{"phone", "mobile", "contact", "whatsapp"},
	gender:      []string{"gender", "sex"},
	country:     []string{"country", "nation"},
	domain:      []string{"domain", "field", "department", "track"},
	address:     []string{"address", "location"},
	college:     []string{"college", "university", "institute"},
	degree:      []string{"degree", "course", "program"},
	year:        []string{"year", "graduation year", "passing year"},
	socialMedia: []string{"social", "linkedin", "portfolio", "github"},
}

// MapColumns resolves the logical-field to column-index mapping for a header
// row. Matching is case-insensitive substring containment.
func MapColumns(header []string) ColumnMap {
	return ColumnMap{
		Timestamp:   findColumn(header, columnAliases.timestamp),
		Name:        findColumn(header, columnAliases.name),
		Email:       findColumn(header, columnAliases.email),
		Phone:       findColumn(header, columnAliases.phone),
		Gender:      findColumn(header, columnAliases.gender),
		Country:     findColumn(header, columnAliases.country),
		Domain:      findColumn(header, columnAliases.domain),
		Address:     findColumn(header, columnAliases.address),
		College:     findColumn(header, columnAliases.college),
		Degree:      findColumn(header, columnAliases.degree),
		Year:        findColumn(header, columnAliases.year),
		SocialMedia: findColumn(header, columnAliases.socialMedia),
	}
}

func findColumn(header []string, aliases []string) int {
	for _, alias := range aliases {
		for i, h := range header {
			if strings.Contains(strings.ToLower(h), alias) {
				return i
			}
		}
	}
	return -1
}

// Parse maps a raw data row through the column mapping and validates the
// mandatory fields. sheetRow is the absolute row number in the source sheet.
func (m ColumnMap) Parse(cells []string, sheetRow int) (*Row, error) {
	row := &Row{
		SheetRow:    sheetRow,
		Name:        cellAt(cells, m.Name),
		Email:       strings.TrimSpace(cellAt(cells, m.Email)),
		Phone:       cellAt(cells, m.Phone),
		Gender:      cellAt(cells, m.Gender),
		Country:     cellAt(cells, m.Country),
		Domain:      strings.TrimSpace(cellAt(cells, m.Domain)),
		Address:     cellAt(cells, m.Address),
		College:     cellAt(cells, m.College),
		Degree:      cellAt(cells, m.Degree),
		Year:        cellAt(cells, m.Year),
		SocialMedia: cellAt(cells, m.SocialMedia),
	}

	if row.Email == "" {
		return nil, ErrMissingEmail
	}
	if row.Domain == "" {
		return nil, ErrMissingDomain
	}

	raw := strings.TrimSpace(cellAt(cells, m.Timestamp))
	if raw == "" {
		return nil, ErrMissingTimestamp
	}
	appliedAt, err := parseTimestamp(raw)
	if err != nil {
		return nil, err
	}
	row.AppliedAt = appliedAt

	return row, nil
}

func parseTimestamp(raw string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable timestamp %q", raw)
}

func cellAt(cells []string, idx int) string {
	if idx < 0 || idx >= len(cells) {
		return ""
	}
	return cells[idx]
}
