package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/yuxdigital/yux-crm/internal/entity"
)

// MockClientRepository
type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) Create(ctx context.Context, c *entity.Client) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockClientRepository) Update(ctx context.Context, c *entity.Client) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockClientRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockClientRepository) FindByID(ctx context.Context, id string) (*entity.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Client), args.Error(1)
}

func (m *MockClientRepository) List(ctx context.Context, in ListClientsInput) ([]entity.Client, int, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]entity.Client), args.Int(1), args.Error(2)
}

func (m *MockClientRepository) ListAll(ctx context.Context, filters entity.ClientFilters) ([]entity.Client, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Client), args.Error(1)
}

func (m *MockClientRepository) Stats(ctx context.Context) (*entity.ClientStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ClientStats), args.Error(1)
}

const importHeader = "companyName,contactName,email,phone,website,sector,size,leadSource,status,acquisitionCost,tags,notes\n"

// ============ TESTES ============

// TestImportAllRowsValid - planilha limpa importa tudo
func TestImportAllRowsValid(t *testing.T) {
	ctx := context.Background()
	repo := new(MockClientRepository)
	repo.On("Create", ctx, mock.Anything).Return(nil)

	csvData := importHeader +
		"Acme,Maria,maria@acme.com,,,Tecnologia,medium,Google Ads,,,,\n" +
		"Beta,João,joao@beta.com,,,Varejo,small,Indicação,,,,\n"

	uc := NewImportClientsUseCase(repo)
	result, err := uc.Execute(ctx, "clientes.csv", strings.NewReader(csvData))

	assert.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 0, result.Duplicates)
	assert.Empty(t, result.Errors)
	repo.AssertNumberOfCalls(t, "Create", 2)
}

// TestImportDuplicatesAreNotErrors - email já cadastrado conta como
// duplicata e não derruba o sucesso
func TestImportDuplicatesAreNotErrors(t *testing.T) {
	ctx := context.Background()
	repo := new(MockClientRepository)
	repo.On("Create", ctx, mock.MatchedBy(func(c *entity.Client) bool {
		return c.Email == "maria@acme.com"
	})).Return(entity.ErrEmailAlreadyExists)
	repo.On("Create", ctx, mock.Anything).Return(nil)

	csvData := importHeader +
		"Acme,Maria,maria@acme.com,,,Tecnologia,medium,Google Ads,,,,\n" +
		"Beta,João,joao@beta.com,,,Varejo,small,Indicação,,,,\n"

	uc := NewImportClientsUseCase(repo)
	result, err := uc.Execute(ctx, "clientes.csv", strings.NewReader(csvData))

	assert.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 1, result.Duplicates)
	assert.Empty(t, result.Errors)
}

// TestImportMixedSheet - duplicata e linha inválida na mesma planilha:
// a duplicata é pulada, a inválida vira erro e o resumo não é sucesso
func TestImportMixedSheet(t *testing.T) {
	ctx := context.Background()
	repo := new(MockClientRepository)
	repo.On("Create", ctx, mock.MatchedBy(func(c *entity.Client) bool {
		return c.Email == "maria@acme.com"
	})).Return(entity.ErrEmailAlreadyExists)
	repo.On("Create", ctx, mock.Anything).Return(nil)

	csvData := importHeader +
		"Acme,Maria,maria@acme.com,,,Tecnologia,medium,Google Ads,,,,\n" +
		"Beta,João,joao@beta.com,,,Varejo,small,Indicação,,,,\n" +
		"Gama,Ana,email-invalido,,,Saúde,large,Indicação,,,,\n"

	uc := NewImportClientsUseCase(repo)
	result, err := uc.Execute(ctx, "clientes.csv", strings.NewReader(csvData))

	assert.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 1, result.Duplicates)
	assert.Len(t, result.Errors, 1)
	assert.Equal(t, 3, result.Errors[0].Row)
	assert.Equal(t, "email", result.Errors[0].Field)
}

// TestImportRowNumbersAreOneBased - o número nos erros é 1-based sobre
// as linhas de dados, cabeçalho fora da conta
func TestImportRowNumbersAreOneBased(t *testing.T) {
	ctx := context.Background()
	repo := new(MockClientRepository)
	repo.On("Create", ctx, mock.Anything).Return(nil)

	csvData := importHeader +
		"Acme,Maria,maria@acme.com,,,Tecnologia,medium,Google Ads,,,,\n" +
		"Beta,João,email-invalido,,,Varejo,small,Indicação,,,,\n"

	uc := NewImportClientsUseCase(repo)
	result, err := uc.Execute(ctx, "clientes.csv", strings.NewReader(csvData))

	assert.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, 1, result.Imported)
	assert.Len(t, result.Errors, 1)
	assert.Equal(t, 2, result.Errors[0].Row)
	assert.Equal(t, "email", result.Errors[0].Field)
}

// TestImportInvalidRowsDoNotReachRepo
func TestImportInvalidRowsDoNotReachRepo(t *testing.T) {
	ctx := context.Background()
	repo := new(MockClientRepository)

	csvData := importHeader +
		",,sem-empresa@x.com,,,Tecnologia,medium,Google Ads,,,,\n"

	uc := NewImportClientsUseCase(repo)
	result, err := uc.Execute(ctx, "clientes.csv", strings.NewReader(csvData))

	assert.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, 0, result.Imported)
	repo.AssertNotCalled(t, "Create")
}

// TestImportBadAcquisitionCost - custo não numérico vira erro de campo
func TestImportBadAcquisitionCost(t *testing.T) {
	ctx := context.Background()
	repo := new(MockClientRepository)
	repo.On("Create", ctx, mock.Anything).Return(nil)

	csvData := importHeader +
		"Acme,Maria,maria@acme.com,,,Tecnologia,medium,Google Ads,,caro,,\n"

	uc := NewImportClientsUseCase(repo)
	result, err := uc.Execute(ctx, "clientes.csv", strings.NewReader(csvData))

	assert.NoError(t, err)
	assert.False(t, result.Success)
	assert.Len(t, result.Errors, 1)
	assert.Equal(t, "acquisitionCost", result.Errors[0].Field)
	repo.AssertNotCalled(t, "Create")
}

// TestImportSkipsEmptyRows
func TestImportSkipsEmptyRows(t *testing.T) {
	ctx := context.Background()
	repo := new(MockClientRepository)
	repo.On("Create", ctx, mock.Anything).Return(nil)

	csvData := importHeader +
		"Acme,Maria,maria@acme.com,,,Tecnologia,medium,Google Ads,,,,\n" +
		",,,,,,,,,,,\n"

	uc := NewImportClientsUseCase(repo)
	result, err := uc.Execute(ctx, "clientes.csv", strings.NewReader(csvData))

	assert.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, 1, result.Imported)
	assert.Empty(t, result.Errors)
}

// TestImportMissingEmailColumn - sem a coluna email a planilha é recusada
func TestImportMissingEmailColumn(t *testing.T) {
	ctx := context.Background()
	repo := new(MockClientRepository)

	csvData := "companyName,contactName\nAcme,Maria\n"

	uc := NewImportClientsUseCase(repo)
	result, err := uc.Execute(ctx, "clientes.csv", strings.NewReader(csvData))

	assert.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, IsDomainError(err))
}

// TestImportDatabaseFailure - falha de banco vira erro de linha, não panic
func TestImportDatabaseFailure(t *testing.T) {
	ctx := context.Background()
	repo := new(MockClientRepository)
	repo.On("Create", ctx, mock.Anything).Return(errors.New("connection reset"))

	csvData := importHeader +
		"Acme,Maria,maria@acme.com,,,Tecnologia,medium,Google Ads,,,,\n"

	uc := NewImportClientsUseCase(repo)
	result, err := uc.Execute(ctx, "clientes.csv", strings.NewReader(csvData))

	assert.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, 0, result.Imported)
	assert.Len(t, result.Errors, 1)
	assert.Equal(t, 1, result.Errors[0].Row)
}

// TestImportTagsSplitOnSemicolon
func TestImportTagsSplitOnSemicolon(t *testing.T) {
	ctx := context.Background()
	repo := new(MockClientRepository)

	var created *entity.Client
	repo.On("Create", ctx, mock.Anything).Run(func(args mock.Arguments) {
		created = args.Get(1).(*entity.Client)
	}).Return(nil)

	csvData := importHeader +
		"Acme,Maria,maria@acme.com,,,Tecnologia,medium,Google Ads,,,saas;b2b;saas,\n"

	uc := NewImportClientsUseCase(repo)
	result, err := uc.Execute(ctx, "clientes.csv", strings.NewReader(csvData))

	assert.NoError(t, err)
	assert.True(t, result.Success)
	assert.NotNil(t, created)
	assert.Equal(t, []string{"saas", "b2b"}, created.Tags)
}
