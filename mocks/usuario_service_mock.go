package mocks

import (
	"context"

	"github.com/Luasgl/P2AULA2/models"

	"github.com/stretchr/testify/mock"
)

// UsuarioServiceMock is a testify/mock for services.UsuarioService.
// Handlers are tested against it without real business logic.
type UsuarioServiceMock struct{ mock.Mock }

func (m *UsuarioServiceMock) Create(ctx context.Context, req models.CreateUsuarioRequest) (*models.CreateUsuarioResponse, error) {
	args := m.Called(ctx, req)
	if v := args.Get(0); v != nil {
		return v.(*models.CreateUsuarioResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UsuarioServiceMock) List(ctx context.Context) ([]models.Usuario, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]models.Usuario), args.Error(1)
	}
	return nil, args.Error(1)
}
