package domain

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleAdmin = 1
	RoleOwner = 2
)

type Owner struct {
	ID           int        `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"password,omitempty"`
	BusinessName string     `json:"business_name"`
	Timezone     string     `json:"timezone"`
	Active       bool       `json:"active"`
	RoleID       int        `json:"role_id"`
	Deleted      bool       `json:"deleted"`
	DeletedAt    *time.Time `json:"deleted_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type RegisterOwnerRequest struct {
	Name         string `json:"name" validate:"required,max=120"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=8"`
	BusinessName string `json:"business_name" validate:"required,max=120"`
	Timezone     string `json:"timezone" validate:"omitempty,timezone"`
}

type UpdateOwnerRequest struct {
	ID           int     `json:"-"`
	Name         *string `json:"name" validate:"omitempty,max=120"`
	Email        *string `json:"email" validate:"omitempty,email"`
	BusinessName *string `json:"business_name" validate:"omitempty,max=120"`
	Timezone     *string `json:"timezone" validate:"omitempty,timezone"`
	Active       *bool   `json:"active"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type Claims struct {
	OwnerID      int
	OwnerName    string
	OwnerEmail   string
	BusinessName string
	Timezone     string
	RoleID       int
	jwt.RegisteredClaims
}

// Session identifica o dono autenticado de uma requisição
type Session struct {
	OwnerID      int
	OwnerName    string
	BusinessName string
	Location     *time.Location
}

// NewSession monta a sessão a partir do perfil gravado do dono. O fuso tz tem
// precedência sobre o do dono; fallback é usado quando nenhum dos dois é válido.
func NewSession(owner *Owner, tz string, fallback *time.Location) Session {
	session := Session{
		OwnerID:      owner.ID,
		OwnerName:    owner.Name,
		BusinessName: owner.BusinessName,
		Location:     fallback,
	}

	for _, name := range []string{tz, owner.Timezone} {
		if name == "" {
			continue
		}
		if loc, err := time.LoadLocation(name); err == nil {
			session.Location = loc
			break
		}
	}

	if session.Location == nil {
		session.Location = time.UTC
	}

	return session
}

// Now retorna o instante atual no fuso do usuário
func (s Session) Now() time.Time {
	return time.Now().In(s.Location)
}
