package authenticating

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/vfg2006/dealership-sales-api/internal/config"
	"github.com/vfg2006/dealership-sales-api/internal/domain"
	"github.com/vfg2006/dealership-sales-api/pkg/apiErrors"
)

type Authenticator interface {
	ValidateToken(tokenString string) (*domain.Claims, error)
	// GenerateToken emite tokens para gerentes e vendedores. salespersonID só
	// é considerado para RoleSalesperson
	GenerateToken(subjectID int64, roleID int, salespersonID int64) (string, error)
}

type Service struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewService(cfg config.Auth) Authenticator {
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	return &Service{
		secret: []byte(cfg.Secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

func (s *Service) GenerateToken(subjectID int64, roleID int, salespersonID int64) (string, error) {
	if roleID != domain.RoleManager && roleID != domain.RoleSalesperson {
		return "", NewAuthError(ErrInvalidClaims, apiErrors.ErrInvalidRequest, fmt.Sprintf("perfil desconhecido: %d", roleID))
	}
	if roleID == domain.RoleSalesperson && salespersonID <= 0 {
		return "", NewAuthError(ErrInvalidClaims, apiErrors.ErrInvalidRequest, "token de vendedor exige salesperson_id")
	}
	if roleID == domain.RoleManager {
		salespersonID = 0
	}

	now := s.now()
	claims := domain.Claims{
		SubjectID:     subjectID,
		RoleID:        roleID,
		SalespersonID: salespersonID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(subjectID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", NewAuthError(err, apiErrors.ErrInternalServer, "Erro ao gerar token de autenticação")
	}

	return signed, nil
}

func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	if tokenString == "" {
		return nil, NewAuthError(ErrMissingToken, apiErrors.ErrMissingToken, "")
	}

	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, NewAuthError(ErrExpiredToken, apiErrors.ErrExpiredToken, "")
		}
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, err.Error())
	}

	claims, ok := token.Claims.(*domain.Claims)
	if !ok || !token.Valid {
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, "")
	}

	if claims.RoleID != domain.RoleManager && claims.RoleID != domain.RoleSalesperson {
		return nil, NewAuthError(ErrInvalidClaims, apiErrors.ErrInvalidToken, fmt.Sprintf("perfil desconhecido: %d", claims.RoleID))
	}

	return claims, nil
}
