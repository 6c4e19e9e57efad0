package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/Luasgl/P2AULA2/core"
	"github.com/Luasgl/P2AULA2/events"
	"github.com/Luasgl/P2AULA2/global"
	"github.com/Luasgl/P2AULA2/mocks"
	"github.com/Luasgl/P2AULA2/models"
	"github.com/Luasgl/P2AULA2/repositories"
	"github.com/Luasgl/P2AULA2/utils/redislog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var ctx = context.Background()

// small helper to build the exact JSON the service caches
func mustJSON(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}

func TestUsuarioService_Create_NormalizesPersistsAndPublishes(t *testing.T) {
	repo := new(mocks.UsuarioRepositoryMock)
	pub := new(mocks.PublisherMock)
	rdb, rmock := mocks.NewRedisMock()

	var stored *models.Usuario
	repo.On("Create", mock.Anything, mock.AnythingOfType("*models.Usuario")).Return(nil).Run(func(args mock.Arguments) {
		stored = args.Get(1).(*models.Usuario)
		stored.ID = 10
	})
	rmock.ExpectIncr(global.CacheKeyUsuariosGen).SetVal(1)
	pub.On("Publish", mock.Anything, events.UsuarioCriado, mock.Anything, "pedro.de.souza@empresa.com.br").Return(nil)

	svc := NewUsuarioService(repo, rdb, nil, pub, core.Pipeline{})
	out, err := svc.Create(ctx, models.CreateUsuarioRequest{Nome: "  pedro   de souza  ", Email: "p@x.com"})
	require.NoError(t, err)

	assert.Equal(t, uint(10), out.ID)
	assert.Equal(t, "Pedro de Souza", out.Nome)
	assert.Equal(t, "pedro.de.souza@empresa.com.br", out.Email)
	assert.Equal(t, "  pedro   de souza  ", out.Detalhes.NomeOriginal)
	assert.Equal(t, "Pedro de Souza", out.Detalhes.NomePadronizado)
	assert.Equal(t, "pedro.de.souza@empresa.com.br", out.Detalhes.EmailGerado)

	require.NotNil(t, stored)
	assert.Equal(t, "  pedro   de souza  ", stored.NomeOriginal)

	repo.AssertExpectations(t)
	pub.AssertExpectations(t)
	assert.NoError(t, rmock.ExpectationsWereMet())
}

func TestUsuarioService_Create_InvalidNameNeverPersists(t *testing.T) {
	repo := new(mocks.UsuarioRepositoryMock)
	pub := new(mocks.PublisherMock)
	rlog, _, lmock := mocks.NewRedisLoggerWithMock()

	// the rejection is logged once to the Redis list
	entry := mustJSON(redislog.Entry{
		Level: "warn",
		Msg:   "create rejected name",
		Time:  mocks.LogClock.Format(time.RFC3339),
		Meta:  map[string]string{"nome": "+++", "err": core.ErrEmptyLocalPart.Error()},
	})
	lmock.ExpectTxPipeline()
	lmock.ExpectLPush("logs:test", entry).SetVal(1)
	lmock.ExpectLTrim("logs:test", 0, 99).SetVal("OK")
	lmock.ExpectExpire("logs:test", 24*time.Hour).SetVal(true)
	lmock.ExpectTxPipelineExec()

	svc := NewUsuarioService(repo, nil, rlog, pub, core.Pipeline{})
	out, err := svc.Create(ctx, models.CreateUsuarioRequest{Nome: "+++", Email: "p@x.com"})

	assert.Nil(t, out)
	assert.ErrorIs(t, err, ErrInvalidName)
	assert.ErrorIs(t, err, core.ErrEmptyLocalPart)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	assert.NoError(t, lmock.ExpectationsWereMet())
}

func TestUsuarioService_Create_DuplicateEmail(t *testing.T) {
	repo := new(mocks.UsuarioRepositoryMock)
	pub := new(mocks.PublisherMock)
	repo.On("Create", mock.Anything, mock.Anything).Return(repositories.ErrEmailTaken)

	svc := NewUsuarioService(repo, nil, nil, pub, core.Pipeline{})
	_, err := svc.Create(ctx, models.CreateUsuarioRequest{Nome: "Ana", Email: "a@b.c"})

	assert.ErrorIs(t, err, repositories.ErrEmailTaken)
	pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUsuarioService_Create_PublishFailureIsNotFatal(t *testing.T) {
	repo := new(mocks.UsuarioRepositoryMock)
	pub := new(mocks.PublisherMock)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	pub.On("Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("broker down"))

	svc := NewUsuarioService(repo, nil, nil, pub, core.Pipeline{FoldAccents: true})
	out, err := svc.Create(ctx, models.CreateUsuarioRequest{Nome: "joão dos santos", Email: "a@b.c"})

	require.NoError(t, err)
	assert.Equal(t, "João dos Santos", out.Nome)
	assert.Equal(t, "joao.dos.santos@empresa.com.br", out.Email)
}

func TestUsuarioService_List_CacheHit(t *testing.T) {
	repo := new(mocks.UsuarioRepositoryMock)
	rdb, rmock := mocks.NewRedisMock()
	svc := NewUsuarioService(repo, rdb, nil, nil, core.Pipeline{})

	cached := []models.Usuario{{ID: 5, Nome: "Maria da Silva", Email: "maria.da.silva@empresa.com.br"}}
	rmock.ExpectGet(global.CacheKeyUsuariosGen).SetVal("3")
	rmock.ExpectGet("usuarios:all:3").SetVal(string(mustJSON(cached)))

	got, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "maria.da.silva@empresa.com.br", got[0].Email)
	repo.AssertNotCalled(t, "List", mock.Anything)
	assert.NoError(t, rmock.ExpectationsWereMet())
}

func TestUsuarioService_List_MissThenDBThenSet(t *testing.T) {
	repo := new(mocks.UsuarioRepositoryMock)
	rdb, rmock := mocks.NewRedisMock()
	svc := NewUsuarioService(repo, rdb, nil, nil, core.Pipeline{})

	items := []models.Usuario{{ID: 9, Nome: "Ana", Email: "ana@empresa.com.br"}}
	rmock.ExpectGet(global.CacheKeyUsuariosGen).RedisNil() // no create yet -> generation 0
	rmock.ExpectGet("usuarios:all:0").RedisNil()
	repo.On("List", mock.Anything).Return(items, nil)
	rmock.ExpectSet("usuarios:all:0", mustJSON(items), global.UsuariosCacheTTL).SetVal("OK")

	got, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, items, got)
	assert.NoError(t, rmock.ExpectationsWereMet())
}

func TestUsuarioService_List_NoCacheDBError(t *testing.T) {
	repo := new(mocks.UsuarioRepositoryMock)
	repo.On("List", mock.Anything).Return(nil, errors.New("db down"))

	svc := NewUsuarioService(repo, nil, nil, nil, core.Pipeline{})
	got, err := svc.List(ctx)

	assert.Nil(t, got)
	assert.EqualError(t, err, "db down")
}

func TestUsuarioService_List_CreateDuringDBReadIsNotHiddenByRefill(t *testing.T) {
	repo := new(mocks.UsuarioRepositoryMock)
	rdb, rmock := mocks.NewRedisMock()
	svc := NewUsuarioService(repo, rdb, nil, nil, core.Pipeline{})

	before := []models.Usuario{{ID: 1, Nome: "Ana", Email: "ana@empresa.com.br"}}
	after := append(append([]models.Usuario{}, before...), models.Usuario{ID: 2, Nome: "Bia", Email: "bia@empresa.com.br"})

	// first List: empty cache, and a create commits while the DB read is still in flight
	rmock.ExpectGet(global.CacheKeyUsuariosGen).RedisNil()
	rmock.ExpectGet("usuarios:all:0").RedisNil()
	rmock.ExpectIncr(global.CacheKeyUsuariosGen).SetVal(1)
	rmock.ExpectSet("usuarios:all:0", mustJSON(before), global.UsuariosCacheTTL).SetVal("OK")
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	repo.On("List", mock.Anything).Return(before, nil).Once().Run(func(mock.Arguments) {
		_, err := svc.Create(ctx, models.CreateUsuarioRequest{Nome: "bia", Email: "b@x.com"})
		require.NoError(t, err)
	})

	// second List: the late refill sits on generation 0, so generation 1 misses and reads the DB
	rmock.ExpectGet(global.CacheKeyUsuariosGen).SetVal("1")
	rmock.ExpectGet("usuarios:all:1").RedisNil()
	repo.On("List", mock.Anything).Return(after, nil).Once()
	rmock.ExpectSet("usuarios:all:1", mustJSON(after), global.UsuariosCacheTTL).SetVal("OK")

	first, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, first, 1)

	second, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, second, 2)

	repo.AssertExpectations(t)
	assert.NoError(t, rmock.ExpectationsWereMet())
}

func TestUsuarioService_List_GenerationErrorBypassesCache(t *testing.T) {
	repo := new(mocks.UsuarioRepositoryMock)
	rdb, rmock := mocks.NewRedisMock()
	svc := NewUsuarioService(repo, rdb, nil, nil, core.Pipeline{})

	items := []models.Usuario{{ID: 3, Nome: "Caio", Email: "caio@empresa.com.br"}}
	rmock.ExpectGet(global.CacheKeyUsuariosGen).SetErr(errors.New("redis down"))
	repo.On("List", mock.Anything).Return(items, nil)

	got, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, items, got)
	assert.NoError(t, rmock.ExpectationsWereMet()) // no list GET, no SET
}
