package repositories

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/Luasgl/P2AULA2/models"

	"github.com/DATA-DOG/go-sqlmock"
	mysqldrv "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// helper: new GORM DB using a sqlmock connection with MySQL dialect.
func newMySQLMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)

	// pass the existing *sql.DB to gorm's mysql driver; no real server to ping
	dial := mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	})

	gdb, err := gorm.Open(dial, &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	return gdb, mock, sqlDB
}

func TestUsuarioRepository_Create(t *testing.T) {
	db, mock, sqlDB := newMySQLMockDB(t)
	defer sqlDB.Close()

	repo := NewUsuarioRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `usuarios` (`nome`,`nome_original`,`email`,`created_at`) VALUES (?,?,?,?)")).
		WithArgs("Maria da Silva", "  MARIA  DA   SILVA ", "maria.da.silva@empresa.com.br", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1)) // last insert id=1, affected=1
	mock.ExpectCommit()

	u := &models.Usuario{
		Nome:         "Maria da Silva",
		NomeOriginal: "  MARIA  DA   SILVA ",
		Email:        "maria.da.silva@empresa.com.br",
	}
	err := repo.Create(context.Background(), u)
	require.NoError(t, err)
	assert.Equal(t, uint(1), u.ID) // GORM maps last insert id
	assert.False(t, u.CreatedAt.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUsuarioRepository_Create_DuplicateEmailRollsBack(t *testing.T) {
	db, mock, sqlDB := newMySQLMockDB(t)
	defer sqlDB.Close()

	repo := NewUsuarioRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `usuarios`")).
		WillReturnError(&mysqldrv.MySQLError{Number: 1062, Message: "Duplicate entry"})
	mock.ExpectRollback()

	err := repo.Create(context.Background(), &models.Usuario{Nome: "Ana", Email: "ana@empresa.com.br"})
	assert.ErrorIs(t, err, ErrEmailTaken)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUsuarioRepository_Create_OtherErrorWrapped(t *testing.T) {
	db, mock, sqlDB := newMySQLMockDB(t)
	defer sqlDB.Close()

	repo := NewUsuarioRepository(db)
	boom := errors.New("connection reset")

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `usuarios`")).WillReturnError(boom)
	mock.ExpectRollback()

	err := repo.Create(context.Background(), &models.Usuario{Nome: "Ana", Email: "ana@empresa.com.br"})
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrEmailTaken)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUsuarioRepository_List(t *testing.T) {
	db, mock, sqlDB := newMySQLMockDB(t)
	defer sqlDB.Close()

	repo := NewUsuarioRepository(db)
	now := time.Now()

	rows := sqlmock.NewRows([]string{"id", "nome", "nome_original", "email", "created_at"}).
		AddRow(1, "Maria da Silva", "maria da silva", "maria.da.silva@empresa.com.br", now).
		AddRow(2, "Pedro de Souza", "  pedro   de souza  ", "pedro.de.souza@empresa.com.br", now)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `usuarios` ORDER BY id ASC")).
		WillReturnRows(rows)

	items, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Pedro de Souza", items[1].Nome)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUsuarioRepository_List_Empty(t *testing.T) {
	db, mock, sqlDB := newMySQLMockDB(t)
	defer sqlDB.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `usuarios`")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "nome", "nome_original", "email", "created_at"}))

	items, err := NewUsuarioRepository(db).List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}
