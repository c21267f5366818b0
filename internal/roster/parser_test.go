package roster

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapColumns(t *testing.T) {
	t.Parallel()

	header := []string{"Timestamp", "Full Name", "Email Address", "WhatsApp Number", "Domain", "College/University"}
	m := MapColumns(header)

	assert.Equal(t, 0, m.Timestamp)
	assert.Equal(t, 1, m.Name)
	assert.Equal(t, 2, m.Email)
	assert.Equal(t, 3, m.Phone)
	assert.Equal(t, 4, m.Domain)
	assert.Equal(t, 5, m.College)
	assert.Equal(t, -1, m.Gender)
	assert.Equal(t, -1, m.SocialMedia)
}

func TestMapColumns_AliasPriority(t *testing.T) {
	t.Parallel()

	// "email" outranks "e-mail"; the first alias with any matching header
	// wins even when a later alias would match an earlier column.
	header := []string{"E-Mail (personal)", "Email Address"}
	m := MapColumns(header)
	assert.Equal(t, 0, m.Email, "substring 'email' also matches 'E-Mail (personal)' first")

	// Case-insensitive containment.
	m = MapColumns([]string{"STUDENT EMAIL"})
	assert.Equal(t, 0, m.Email)
}

func TestParse_AcceptsCompleteRow(t *testing.T) {
	t.Parallel()

	m := MapColumns([]string{"Timestamp", "Full Name", "Email Address", "Domain"})
	row, err := m.Parse([]string{"15/01/2025 10:00:00", "Asha Rao", "asha@example.com", "MERN Stack"}, 2)
	require.NoError(t, err)

	assert.Equal(t, 2, row.SheetRow)
	assert.Equal(t, "Asha Rao", row.Name)
	assert.Equal(t, "asha@example.com", row.Email)
	assert.Equal(t, "MERN Stack", row.Domain)
	assert.Equal(t, time.Date(2025, time.January, 15, 10, 0, 0, 0, time.UTC), row.AppliedAt)
}

func TestParse_TimeOfDayOptional(t *testing.T) {
	t.Parallel()

	m := MapColumns([]string{"Timestamp", "Email", "Domain"})
	row, err := m.Parse([]string{"15/01/2025", "asha@example.com", "AI/ML"}, 7)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC), row.AppliedAt)
}

func TestParse_Rejections(t *testing.T) {
	t.Parallel()

	m := MapColumns([]string{"Timestamp", "Full Name", "Email", "Domain"})

	tests := []struct {
		name    string
		cells   []string
		wantErr error
	}{
		{
			name:    "empty email",
			cells:   []string{"15/01/2025", "Asha Rao", "   ", "MERN Stack"},
			wantErr: ErrMissingEmail,
		},
		{
			name:    "empty timestamp",
			cells:   []string{"", "Asha Rao", "asha@example.com", "MERN Stack"},
			wantErr: ErrMissingTimestamp,
		},
		{
			name:    "empty domain",
			cells:   []string{"15/01/2025", "Asha Rao", "asha@example.com", ""},
			wantErr: ErrMissingDomain,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := m.Parse(tt.cells, 3)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("unparseable timestamp", func(t *testing.T) {
		t.Parallel()
		_, err := m.Parse([]string{"January 15, 2025", "Asha Rao", "asha@example.com", "MERN Stack"}, 3)
		assert.Error(t, err)
	})
}

func TestParse_ShortRowDefaultsToEmpty(t *testing.T) {
	t.Parallel()

	// Sheets API truncates trailing empty cells; unmapped or missing cells
	// must come back as empty strings, never panic.
	m := MapColumns([]string{"Timestamp", "Full Name", "Email", "Domain", "College"})
	row, err := m.Parse([]string{"15/01/2025", "Asha Rao", "asha@example.com", "MERN Stack"}, 4)
	require.NoError(t, err)
	assert.Empty(t, row.College)
}
