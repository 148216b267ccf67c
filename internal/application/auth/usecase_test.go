package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/medtrack-api/internal/application/dto"
	"github.com/tu-usuario/medtrack-api/internal/domain"
	"github.com/tu-usuario/medtrack-api/internal/domain/entity"
	pkgjwt "github.com/tu-usuario/medtrack-api/pkg/jwt"
)

type fakeCompanyRepo struct{ company *entity.Company }

func (f *fakeCompanyRepo) Create(context.Context, *entity.Company) error { return nil }
func (f *fakeCompanyRepo) GetByID(context.Context, string) (*entity.Company, error) {
	return nil, nil
}
func (f *fakeCompanyRepo) GetByNameAndCode(_ context.Context, name, code string) (*entity.Company, error) {
	if f.company != nil && f.company.Name == name && f.company.Code == code {
		return f.company, nil
	}
	return nil, nil
}
func (f *fakeCompanyRepo) List(context.Context) ([]*entity.Company, error) { return nil, nil }

func newAuthUC(company *entity.Company) *AuthUseCase {
	return NewAuthUseCase(&fakeCompanyRepo{company: company}, JWTConfig{
		Secret:     "secret-de-test",
		ExpMinutes: 60,
		Issuer:     "medtrack-test",
	})
}

func TestLoginGeneraTokenConClaimsDeCompania(t *testing.T) {
	uc := newAuthUC(&entity.Company{ID: "c-1", Name: "Farmacia Central", Code: "FC01"})

	out, err := uc.Login(context.Background(), dto.LoginRequest{Name: "Farmacia Central", Code: "FC01"})

	require.NoError(t, err)
	assert.Equal(t, "c-1", out.Company.ID)

	companyID, companyName, err := pkgjwt.Parse("secret-de-test", out.Token)
	require.NoError(t, err)
	assert.Equal(t, "c-1", companyID)
	assert.Equal(t, "Farmacia Central", companyName)
}

func TestLoginRecortaEspacios(t *testing.T) {
	uc := newAuthUC(&entity.Company{ID: "c-1", Name: "Farmacia Central", Code: "FC01"})

	_, err := uc.Login(context.Background(), dto.LoginRequest{Name: "  Farmacia Central ", Code: " FC01\n"})

	assert.NoError(t, err)
}

func TestLoginCredencialesInvalidas(t *testing.T) {
	uc := newAuthUC(&entity.Company{ID: "c-1", Name: "Farmacia Central", Code: "FC01"})

	_, err := uc.Login(context.Background(), dto.LoginRequest{Name: "Farmacia Central", Code: "OTRO"})

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLoginCamposVacios(t *testing.T) {
	uc := newAuthUC(nil)

	_, err := uc.Login(context.Background(), dto.LoginRequest{})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
