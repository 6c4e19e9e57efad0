// GORM model + simple DTOs used in handlers.

package models

import "time"

// Usuario is one standardized name record in the "usuarios" table.
// Rows are insert-only: there is no update path, the derived e-mail is unique.
type Usuario struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Nome         string    `gorm:"size:180;not null" json:"nome"`              // normalized display name
	NomeOriginal string    `gorm:"size:255" json:"nome_original"`              // raw input as received
	Email        string    `gorm:"size:434;uniqueIndex;not null" json:"email"` // 180-char local part + "@" + 253-char domain
	CreatedAt    time.Time `json:"created_at"`
}

// TableName keeps the table name stable regardless of GORM's naming strategy.
func (Usuario) TableName() string { return "usuarios" }

// DTOs (request/response)

// CreateUsuarioRequest is the payload for POST /usuarios.
// Email is a contact address validated as such; the stored address is always derived from Nome.
// Nome is capped at 180 characters (runes), the width of the nome column.
type CreateUsuarioRequest struct {
	Nome  string `json:"nome" binding:"required,max=180"`
	Email string `json:"email" binding:"required,email"`
}

// Detalhes shows how the stored values were produced.
type Detalhes struct {
	NomeOriginal    string `json:"Nome_original"`
	NomePadronizado string `json:"nome_padronizado"`
	EmailGerado     string `json:"email_gerado"`
}

// CreateUsuarioResponse is returned with 201 after a successful create.
type CreateUsuarioResponse struct {
	ID       uint     `json:"id"`
	Nome     string   `json:"nome"`
	Email    string   `json:"e-mail"`
	Detalhes Detalhes `json:"detalhes"`
}

// NewCreateUsuarioResponse builds the response envelope from a stored record.
func NewCreateUsuarioResponse(u *Usuario) *CreateUsuarioResponse {
	return &CreateUsuarioResponse{
		ID:    u.ID,
		Nome:  u.Nome,
		Email: u.Email,
		Detalhes: Detalhes{
			NomeOriginal:    u.NomeOriginal,
			NomePadronizado: u.Nome,
			EmailGerado:     u.Email,
		},
	}
}
