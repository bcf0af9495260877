package postgres

import (
	"fmt"
	"testing"

	"gaia/internal/domain/entity"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestOrderClause(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		sortBy string
		order  entity.SortOrder
		want   string
	}{
		{name: "default is newest first", sortBy: "", order: "", want: "created_at DESC, id DESC"},
		{name: "ascending last name", sortBy: entity.SortByLastName, order: entity.SortAsc, want: "last_name ASC, id ASC"},
		{name: "email descending", sortBy: entity.SortByEmail, order: entity.SortDesc, want: "email DESC, id DESC"},
		{name: "unknown column falls back", sortBy: "password", order: entity.SortAsc, want: "created_at ASC, id ASC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, orderClause(tt.sortBy, tt.order))
		})
	}
}

func TestEscapeLike(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `50\%\_off\\`, escapeLike(`50%_off\`))
	assert.Equal(t, "ada", escapeLike("ada"))
}

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "ada@example.com", normalizeEmail("  Ada@Example.COM "))
}

func TestConstraintViolations(t *testing.T) {
	t.Parallel()

	unique := fmt.Errorf("insert: %w", &pgconn.PgError{Code: pgerrcode.UniqueViolation})
	notNull := &pgconn.PgError{Code: pgerrcode.NotNullViolation}

	assert.True(t, isUniqueConstraintViolation(unique))
	assert.True(t, isUniqueConstraintViolation(errors.Wrap(gorm.ErrDuplicatedKey, "create")))
	assert.False(t, isUniqueConstraintViolation(notNull))
	assert.False(t, isUniqueConstraintViolation(errors.New("boom")))

	assert.True(t, isNotNullConstraintViolation(notNull))
	assert.True(t, isCheckConstraintViolation(&pgconn.PgError{Code: pgerrcode.CheckViolation}))
	assert.True(t, isCheckConstraintViolation(gorm.ErrCheckConstraintViolated))
}
