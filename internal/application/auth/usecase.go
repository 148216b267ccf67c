package auth

import (
	"context"
	"strings"

	"github.com/tu-usuario/medtrack-api/internal/application/dto"
	"github.com/tu-usuario/medtrack-api/internal/domain"
	"github.com/tu-usuario/medtrack-api/internal/domain/repository"
	"github.com/tu-usuario/medtrack-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase autenticación por compañía: el par nombre + código actúa
// como credencial.
type AuthUseCase struct {
	companyRepo repository.CompanyRepository
	jwtCfg      JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(companyRepo repository.CompanyRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{companyRepo: companyRepo, jwtCfg: jwtCfg}
}

// Login verifica nombre y código de compañía, genera JWT y retorna
// token + compañía. Un par que no existe responde ErrUnauthorized sin
// distinguir cuál de los dos campos falló.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	name := strings.TrimSpace(in.Name)
	code := strings.TrimSpace(in.Code)
	if name == "" || code == "" {
		return nil, domain.ErrInvalidInput
	}

	company, err := uc.companyRepo.GetByNameAndCode(ctx, name, code)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrUnauthorized
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, company.ID, company.Name, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		Company: dto.CompanyResponse{
			ID:        company.ID,
			Name:      company.Name,
			Code:      company.Code,
			CreatedAt: company.CreatedAt,
		},
	}, nil
}
