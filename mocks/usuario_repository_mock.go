package mocks

import (
	"context"

	"github.com/Luasgl/P2AULA2/models"

	"github.com/stretchr/testify/mock"
)

// UsuarioRepositoryMock is a testify/mock for repositories.UsuarioRepository.
// It lets the service layer be tested without a DB.
type UsuarioRepositoryMock struct{ mock.Mock }

func (m *UsuarioRepositoryMock) Create(ctx context.Context, u *models.Usuario) error {
	return m.Called(ctx, u).Error(0)
}

func (m *UsuarioRepositoryMock) List(ctx context.Context) ([]models.Usuario, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]models.Usuario), args.Error(1)
	}
	return nil, args.Error(1)
}
