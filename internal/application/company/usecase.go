package company

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/medtrack-api/internal/application/dto"
	"github.com/tu-usuario/medtrack-api/internal/domain"
	"github.com/tu-usuario/medtrack-api/internal/domain/entity"
	"github.com/tu-usuario/medtrack-api/internal/domain/repository"
)

// CompanyUseCase alta y consulta de compañías.
type CompanyUseCase struct {
	companyRepo repository.CompanyRepository
}

// NewCompanyUseCase construye el caso de uso.
func NewCompanyUseCase(companyRepo repository.CompanyRepository) *CompanyUseCase {
	return &CompanyUseCase{companyRepo: companyRepo}
}

// Create registra una compañía nueva. El par nombre + código es único.
func (uc *CompanyUseCase) Create(ctx context.Context, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	name := strings.TrimSpace(in.Name)
	code := strings.TrimSpace(in.Code)
	if name == "" || code == "" {
		return nil, domain.ErrInvalidInput
	}

	existing, err := uc.companyRepo.GetByNameAndCode(ctx, name, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	company := &entity.Company{
		ID:        uuid.New().String(),
		Name:      name,
		Code:      code,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.companyRepo.Create(ctx, company); err != nil {
		return nil, err
	}
	return toResponse(company), nil
}

// GetByID devuelve una compañía o ErrCompanyNotFound.
func (uc *CompanyUseCase) GetByID(ctx context.Context, id string) (*dto.CompanyResponse, error) {
	company, err := uc.companyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrCompanyNotFound
	}
	return toResponse(company), nil
}

// List devuelve todas las compañías registradas.
func (uc *CompanyUseCase) List(ctx context.Context) ([]dto.CompanyResponse, error) {
	companies, err := uc.companyRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CompanyResponse, 0, len(companies))
	for _, c := range companies {
		out = append(out, *toResponse(c))
	}
	return out, nil
}

func toResponse(c *entity.Company) *dto.CompanyResponse {
	if c == nil {
		return nil
	}
	return &dto.CompanyResponse{
		ID:        c.ID,
		Name:      c.Name,
		Code:      c.Code,
		CreatedAt: c.CreatedAt,
	}
}
