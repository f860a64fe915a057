package storage

import (
	"context"
	"errors"
)

// AuthTokenKey es la clave fija bajo la que se persiste el bearer token.
const AuthTokenKey = "authToken"

// ErrUnknownBackend se devuelve cuando TOKEN_STORE no nombra un backend soportado.
var ErrUnknownBackend = errors.New("unknown storage backend")

// KeyValueStore abstrae el almacenamiento durable clave/valor del cliente.
// Remove de una clave inexistente no es un error.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}
