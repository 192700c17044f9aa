package authenticating

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/business-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/business-dashboard-api/internal/config"
	"github.com/vfg2006/business-dashboard-api/internal/domain"
	"github.com/vfg2006/business-dashboard-api/pkg/apiErrors"
	"golang.org/x/crypto/bcrypt"
)

const defaultTokenTTL = 24 * time.Hour

// TokenValidator é o que o middleware de autenticação precisa
type TokenValidator interface {
	ValidateToken(tokenString string) (*domain.Claims, error)
}

// SessionResolver monta a sessão da requisição a partir do perfil gravado do dono.
// Fuso e nome do negócio não são lidos das claims, que ficam fixas até o token expirar.
type SessionResolver interface {
	ResolveSession(ctx context.Context, claims *domain.Claims, tz string) (domain.Session, error)
}

type Authenticator interface {
	TokenValidator
	SessionResolver
	Register(ctx context.Context, req *domain.RegisterOwnerRequest) (*domain.Owner, error)
	Login(ctx context.Context, email, password string) (string, error)
	GetProfile(ctx context.Context, ownerID int) (*domain.Owner, error)
	UpdateProfile(ctx context.Context, req *domain.UpdateOwnerRequest) (*domain.Owner, error)
	ListOwners(ctx context.Context) ([]*domain.Owner, error)
	ChangePassword(ctx context.Context, ownerID int, currentPassword, newPassword string) error
	ValidatePasswordStrength(password string) error
}

type Service struct {
	ownerRepo repository.OwnerRepository
	cfg       *config.Config
}

func NewService(ownerRepo repository.OwnerRepository, cfg *config.Config) *Service {
	return &Service{
		ownerRepo: ownerRepo,
		cfg:       cfg,
	}
}

func handleEmail(s string) string {
	email := strings.ToLower(s)
	email = strings.TrimSpace(email)
	email = strings.ReplaceAll(email, " ", "")
	return email
}

func (s *Service) Register(ctx context.Context, req *domain.RegisterOwnerRequest) (*domain.Owner, error) {
	if req.Email == "" || req.Name == "" || req.BusinessName == "" || req.Password == "" {
		return nil, NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "Email, nome, nome do negócio e senha são obrigatórios")
	}

	if err := s.ValidatePasswordStrength(req.Password); err != nil {
		return nil, NewAuthError(ErrWeakPassword, apiErrors.ErrInvalidFormat, err.Error())
	}

	email := handleEmail(req.Email)

	existing, err := s.ownerRepo.GetOwnerByEmail(ctx, email)
	if err != nil {
		return nil, NewAuthError(err, apiErrors.ErrDatabaseOperation, "Erro ao consultar dono no banco de dados")
	}
	if existing != nil {
		return nil, NewAuthError(ErrOwnerAlreadyExists, apiErrors.ErrOwnerAlreadyExists, "Email já cadastrado")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	timezone := req.Timezone
	if timezone == "" {
		timezone = s.cfg.App.Timezone
	}

	owner, err := s.ownerRepo.CreateOwner(ctx, &domain.Owner{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hashedPassword),
		BusinessName: strings.TrimSpace(req.BusinessName),
		Timezone:     timezone,
		Active:       true,
		RoleID:       domain.RoleOwner,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, NewAuthError(ErrOwnerAlreadyExists, apiErrors.ErrOwnerAlreadyExists, "Email já cadastrado")
		}
		return nil, NewAuthError(err, apiErrors.ErrDatabaseOperation, "Erro ao criar dono")
	}

	owner.PasswordHash = ""
	return owner, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "Email e senha são obrigatórios")
	}

	owner, err := s.ownerRepo.GetOwnerByEmail(ctx, handleEmail(email))
	if err != nil {
		return "", NewAuthError(err, apiErrors.ErrDatabaseOperation, "Erro ao consultar dono no banco de dados")
	}

	if owner == nil {
		return "", NewAuthError(ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, "Email ou senha incorretos")
	}

	if !owner.Active {
		return "", NewOwnerAuthError(ErrOwnerDisabled, apiErrors.ErrOwnerDisabled, owner.ID, "Conta desativada")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(owner.PasswordHash), []byte(password)); err != nil {
		return "", NewOwnerAuthError(ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, owner.ID, "Email ou senha incorretos")
	}

	token, err := s.generateJWT(owner)
	if err != nil {
		return "", NewAuthError(err, apiErrors.ErrInternalServer, "Erro ao gerar token de autenticação")
	}

	return token, nil
}

func (s *Service) GetProfile(ctx context.Context, ownerID int) (*domain.Owner, error) {
	owner, err := s.ownerRepo.GetOwnerByID(ctx, ownerID)
	if err != nil {
		logrus.WithError(err).Error("Erro ao buscar perfil do dono")
		return nil, NewAuthError(err, apiErrors.ErrDatabaseOperation, "Erro ao buscar perfil")
	}
	if owner == nil {
		return nil, NewOwnerAuthError(ErrOwnerNotFound, apiErrors.ErrOwnerNotFound, ownerID, "Dono não encontrado")
	}

	owner.PasswordHash = ""
	return owner, nil
}

// ResolveSession usa o fuso tz quando válido, depois o fuso gravado do dono e por fim APP_TIMEZONE
func (s *Service) ResolveSession(ctx context.Context, claims *domain.Claims, tz string) (domain.Session, error) {
	owner, err := s.ownerRepo.GetOwnerByID(ctx, claims.OwnerID)
	if err != nil {
		logrus.WithError(err).WithField("owner_id", claims.OwnerID).Error("Erro ao buscar dono da sessão")
		return domain.Session{}, NewOwnerAuthError(err, apiErrors.ErrDatabaseOperation, claims.OwnerID, "Erro ao buscar perfil")
	}
	if owner == nil {
		return domain.Session{}, NewOwnerAuthError(ErrOwnerNotFound, apiErrors.ErrOwnerNotFound, claims.OwnerID, "Dono não encontrado")
	}
	if !owner.Active {
		return domain.Session{}, NewOwnerAuthError(ErrOwnerDisabled, apiErrors.ErrOwnerDisabled, claims.OwnerID, "Conta desativada")
	}

	return domain.NewSession(owner, tz, s.cfg.Location()), nil
}

func (s *Service) UpdateProfile(ctx context.Context, req *domain.UpdateOwnerRequest) (*domain.Owner, error) {
	if req.ID == 0 {
		return nil, NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "ID do dono é obrigatório")
	}

	owner, err := s.ownerRepo.GetOwnerByID(ctx, req.ID)
	if err != nil {
		return nil, NewAuthError(err, apiErrors.ErrDatabaseOperation, "Erro ao buscar dono")
	}
	if owner == nil {
		return nil, NewOwnerAuthError(ErrOwnerNotFound, apiErrors.ErrOwnerNotFound, req.ID, fmt.Sprintf("dono %d não encontrado", req.ID))
	}

	if req.Name != nil {
		owner.Name = strings.TrimSpace(*req.Name)
	}

	if req.Email != nil {
		email := handleEmail(*req.Email)
		if email != owner.Email {
			other, err := s.ownerRepo.GetOwnerByEmail(ctx, email)
			if err != nil {
				return nil, NewAuthError(err, apiErrors.ErrDatabaseOperation, "Erro ao consultar email")
			}
			if other != nil {
				return nil, NewOwnerAuthError(ErrOwnerAlreadyExists, apiErrors.ErrOwnerAlreadyExists, req.ID, "Email já cadastrado")
			}
		}
		owner.Email = email
	}

	if req.BusinessName != nil {
		owner.BusinessName = strings.TrimSpace(*req.BusinessName)
	}

	if req.Timezone != nil {
		if _, err := time.LoadLocation(*req.Timezone); err != nil {
			return nil, NewOwnerAuthError(ErrInvalidFormat, apiErrors.ErrInvalidFormat, req.ID, "Fuso horário inválido")
		}
		owner.Timezone = *req.Timezone
	}

	if req.Active != nil {
		owner.Active = *req.Active
	}

	// senha só muda por ChangePassword
	owner.PasswordHash = ""

	if err := s.ownerRepo.UpdateOwner(ctx, owner); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, NewOwnerAuthError(ErrOwnerAlreadyExists, apiErrors.ErrOwnerAlreadyExists, req.ID, "Email já cadastrado")
		}
		return nil, NewOwnerAuthError(err, apiErrors.ErrDatabaseOperation, req.ID, "Erro ao atualizar dono")
	}

	return owner, nil
}

func (s *Service) ListOwners(ctx context.Context) ([]*domain.Owner, error) {
	owners, err := s.ownerRepo.ListOwners(ctx, false)
	if err != nil {
		return nil, NewAuthError(err, apiErrors.ErrDatabaseOperation, "Erro ao listar donos")
	}

	for _, owner := range owners {
		owner.PasswordHash = ""
	}

	return owners, nil
}

func (s *Service) generateJWT(owner *domain.Owner) (string, error) {
	ttl := s.cfg.Auth.TokenTTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}

	now := time.Now()
	claims := domain.Claims{
		OwnerID:      owner.ID,
		OwnerName:    owner.Name,
		OwnerEmail:   owner.Email,
		BusinessName: owner.BusinessName,
		Timezone:     owner.Timezone,
		RoleID:       owner.RoleID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.SecretKey))
}

func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.SecretKey), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, errors.Wrap(ErrInvalidToken, err.Error())
	}

	claims, ok := token.Claims.(*domain.Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// ValidatePasswordStrength exige pelo menos 8 caracteres com maiúsculas, minúsculas, números e caracteres especiais
func (s *Service) ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return errors.New("a senha deve conter pelo menos 8 caracteres")
	}

	var (
		hasUpper   bool
		hasLower   bool
		hasNumber  bool
		hasSpecial bool
	)

	const (
		lowerChars   = "abcdefghijklmnopqrstuvwxyz"
		upperChars   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
		numberChars  = "0123456789"
		specialChars = "!@#$%^&*()-_=+[]{}|;:,.<>?"
	)

	for _, char := range password {
		switch {
		case strings.ContainsRune(lowerChars, char):
			hasLower = true
		case strings.ContainsRune(upperChars, char):
			hasUpper = true
		case strings.ContainsRune(numberChars, char):
			hasNumber = true
		case strings.ContainsRune(specialChars, char):
			hasSpecial = true
		}
	}

	if !hasUpper {
		return errors.New("a senha deve conter pelo menos uma letra maiúscula")
	}
	if !hasLower {
		return errors.New("a senha deve conter pelo menos uma letra minúscula")
	}
	if !hasNumber {
		return errors.New("a senha deve conter pelo menos um número")
	}
	if !hasSpecial {
		return errors.New("a senha deve conter pelo menos um caractere especial")
	}

	return nil
}

// ChangePassword confere a senha atual antes de gravar a nova
func (s *Service) ChangePassword(ctx context.Context, ownerID int, currentPassword, newPassword string) error {
	owner, err := s.ownerRepo.GetOwnerByID(ctx, ownerID)
	if err != nil {
		return NewOwnerAuthError(err, apiErrors.ErrDatabaseOperation, ownerID, "Erro ao buscar dono")
	}
	if owner == nil {
		return NewOwnerAuthError(ErrOwnerNotFound, apiErrors.ErrOwnerNotFound, ownerID, "Dono não encontrado")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(owner.PasswordHash), []byte(currentPassword)); err != nil {
		return NewOwnerAuthError(ErrPasswordMismatch, apiErrors.ErrInvalidCredentials, ownerID, "Senha atual incorreta")
	}

	if currentPassword == newPassword {
		return NewOwnerAuthError(ErrSamePassword, apiErrors.ErrInvalidFormat, ownerID, "A nova senha deve ser diferente da atual")
	}

	if err := s.ValidatePasswordStrength(newPassword); err != nil {
		return NewOwnerAuthError(ErrWeakPassword, apiErrors.ErrInvalidFormat, ownerID, err.Error())
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	owner.PasswordHash = string(hashedPassword)
	if err := s.ownerRepo.UpdateOwner(ctx, owner); err != nil {
		return NewOwnerAuthError(err, apiErrors.ErrDatabaseOperation, ownerID, "Erro ao atualizar senha")
	}

	return nil
}
