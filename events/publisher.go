// Package events publishes domain events about stored name records.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Luasgl/P2AULA2/models"
)

// UsuarioCriado is emitted after a record is committed.
const UsuarioCriado = "usuario.criado"

// Publisher sends an already-encoded event. key picks the partition.
type Publisher interface {
	Publish(ctx context.Context, eventType string, payload []byte, key string) error
	Close() error
}

// UsuarioCriadoPayload is the JSON body of a usuario.criado event.
type UsuarioCriadoPayload struct {
	ID           uint      `json:"id"`
	NomeOriginal string    `json:"nome_original"`
	Nome         string    `json:"nome"`
	Email        string    `json:"email"`
	CreatedAt    time.Time `json:"created_at"`
}

// EncodeUsuarioCriado builds the payload and partition key for u.
func EncodeUsuarioCriado(u *models.Usuario) ([]byte, string, error) {
	b, err := json.Marshal(UsuarioCriadoPayload{
		ID:           u.ID,
		NomeOriginal: u.NomeOriginal,
		Nome:         u.Nome,
		Email:        u.Email,
		CreatedAt:    u.CreatedAt.UTC(),
	})
	return b, u.Email, err
}

// Nop drops every event. Used when no brokers are configured.
type Nop struct{}

func (Nop) Publish(context.Context, string, []byte, string) error { return nil }
func (Nop) Close() error                                          { return nil }
