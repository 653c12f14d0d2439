package repository

import (
	"context"

	"github.com/jhoicas/facturas-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para usuarios.
type UserRepository interface {
	// Create persiste un usuario nuevo. Devuelve domain.ErrUsernameAlreadyExists
	// si el username ya existe.
	Create(ctx context.Context, user *entity.User) error
	// GetByUsername devuelve (nil, nil) cuando el usuario no existe.
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
}
