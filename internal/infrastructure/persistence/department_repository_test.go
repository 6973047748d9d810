package persistence

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/jx4/backend/internal/domain/shared"
)

func TestGormDepartmentRepository_FindBySlug(t *testing.T) {
	t.Run("orders by updated_at so the latest duplicate wins", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormDepartmentRepository(gormDB)

		deptID := uuid.New()
		rows := sqlmock.NewRows([]string{"id", "nombre", "slug", "activo"}).
			AddRow(deptID, "Carnes", "carnes", true)

		mock.ExpectQuery(`SELECT \* FROM "departments" WHERE slug = \$1 ORDER BY updated_at DESC,.* LIMIT .*`).
			WithArgs("carnes", 1).
			WillReturnRows(rows)

		dept, err := repo.FindBySlug(context.Background(), "carnes")

		require.NoError(t, err)
		assert.Equal(t, deptID, dept.ID)
		assert.Equal(t, "carnes", dept.Slug)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps missing slug to not found", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormDepartmentRepository(gormDB)

		mock.ExpectQuery(`SELECT \* FROM "departments" WHERE slug = \$1 ORDER BY updated_at DESC,.* LIMIT .*`).
			WithArgs("inexistente", 1).
			WillReturnError(gorm.ErrRecordNotFound)

		dept, err := repo.FindBySlug(context.Background(), "inexistente")

		assert.Nil(t, dept)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormDepartmentRepository_FindActive(t *testing.T) {
	gormDB, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormDepartmentRepository(gormDB)

	rows := sqlmock.NewRows([]string{"id", "nombre", "slug", "activo"}).
		AddRow(uuid.New(), "Aves", "aves", true).
		AddRow(uuid.New(), "Carnes", "carnes", true)

	mock.ExpectQuery(`SELECT \* FROM "departments" WHERE activo = \$1 ORDER BY nombre ASC`).
		WithArgs(true).
		WillReturnRows(rows)

	depts, err := repo.FindActive(context.Background())

	require.NoError(t, err)
	assert.Len(t, depts, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}
