// Repository hides GORM details behind an interface so services stay DB-agnostic.
// Data-access layer only: no HTTP, no JSON, no name rules.
package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Luasgl/P2AULA2/models"

	"gorm.io/gorm"
)

// ErrEmailTaken is returned when the derived e-mail already exists (unique index hit).
var ErrEmailTaken = errors.New("email already exists")

// UsuarioRepository is the storage collaborator the service depends on.
// Records are append-only, so there is no Update/Delete here.
type UsuarioRepository interface {
	Create(ctx context.Context, u *models.Usuario) error
	List(ctx context.Context) ([]models.Usuario, error)
}

// usuarioRepo holds a *gorm.DB that can talk to any configured dialect.
type usuarioRepo struct{ db *gorm.DB }

// NewUsuarioRepository injects *gorm.DB and returns the interface.
func NewUsuarioRepository(db *gorm.DB) UsuarioRepository {
	return &usuarioRepo{db: db}
}

// Create inserts u inside its own transaction: committed on success, rolled
// back on any error. On success u.ID and u.CreatedAt are filled in.
func (r *usuarioRepo) Create(ctx context.Context, u *models.Usuario) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(u).Error
	})
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %s", ErrEmailTaken, u.Email)
	}
	return fmt.Errorf("insert usuario: %w", err)
}

// List returns every stored record in insertion order.
func (r *usuarioRepo) List(ctx context.Context) ([]models.Usuario, error) {
	items := []models.Usuario{} // non-nil so an empty table encodes as [].
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list usuarios: %w", err)
	}
	return items, nil
}
