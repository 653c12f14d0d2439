package entity

import "time"

// User representa un usuario del sistema. Solo lectura después del registro
// (no hay rutas de actualización ni borrado).
type User struct {
	ID           string // UUID
	Username     string // único
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	CreatedAt    time.Time
}
