package authenticating

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/retail-manager-api/infrastructure/repository/mocks"
	"github.com/vfg2006/retail-manager-api/internal/config"
	"github.com/vfg2006/retail-manager-api/internal/domain"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuthService(t *testing.T) (Authenticator, *mocks.MockUserRepository) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockUserRepo := mocks.NewMockUserRepository(ctrl)
	service := NewService(mockUserRepo, &config.Config{
		Auth: config.Auth{Secret: "segredo-de-teste"},
	})

	return service, mockUserRepo
}

func hashPassword(t *testing.T, password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestService_CreateUser(t *testing.T) {
	tests := []struct {
		name     string
		user     *domain.User
		setup    func(mockUserRepo *mocks.MockUserRepository)
		wantErr  error
		validate func(t *testing.T, created *domain.User)
	}{
		{
			name: "Auto-cadastro - entra como cliente ativo",
			user: &domain.User{
				Name:         "Juan",
				Lastname:     "Pérez",
				Email:        "Juan.Perez@Mail.com ",
				PasswordHash: "Client123!",
			},
			setup: func(mockUserRepo *mocks.MockUserRepository) {
				mockUserRepo.EXPECT().GetUserByEmail("juan.perez@mail.com").Return(nil, nil)
				mockUserRepo.EXPECT().
					CreateUser(gomock.Any()).
					DoAndReturn(func(user *domain.User) (*domain.User, error) {
						// Email normalizado, senha com hash, role de cliente
						assert.Equal(t, "juan.perez@mail.com", user.Email)
						assert.NotEqual(t, "Client123!", user.PasswordHash)
						assert.Equal(t, 3, user.RoleID)
						assert.True(t, user.Active)

						user.ID = 15
						return user, nil
					})
			},
			validate: func(t *testing.T, created *domain.User) {
				assert.Equal(t, 15, created.ID)
			},
		},
		{
			name: "Role explícita preservada",
			user: &domain.User{
				Name:         "Super",
				Lastname:     "Visor",
				Email:        "supervisor@retail.com",
				PasswordHash: "Super123!",
				RoleID:       2,
			},
			setup: func(mockUserRepo *mocks.MockUserRepository) {
				mockUserRepo.EXPECT().GetUserByEmail("supervisor@retail.com").Return(nil, nil)
				mockUserRepo.EXPECT().
					CreateUser(gomock.Any()).
					DoAndReturn(func(user *domain.User) (*domain.User, error) {
						assert.Equal(t, 2, user.RoleID)
						return user, nil
					})
			},
			validate: func(t *testing.T, created *domain.User) {},
		},
		{
			name: "Campos obrigatórios ausentes - erro",
			user: &domain.User{
				Email: "incompleto@mail.com",
			},
			setup:   func(mockUserRepo *mocks.MockUserRepository) {},
			wantErr: ErrMissingRequiredData,
		},
		{
			name: "Email já cadastrado - erro",
			user: &domain.User{
				Name:         "Juan",
				Lastname:     "Pérez",
				Email:        "juan.perez@mail.com",
				PasswordHash: "Client123!",
			},
			setup: func(mockUserRepo *mocks.MockUserRepository) {
				mockUserRepo.EXPECT().
					GetUserByEmail("juan.perez@mail.com").
					Return(&domain.User{ID: 15}, nil)
			},
			wantErr: ErrUserAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, mockUserRepo := newTestAuthService(t)
			tt.setup(mockUserRepo)

			created, err := service.CreateUser(tt.user)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			tt.validate(t, created)
		})
	}
}

func TestService_LoginUser(t *testing.T) {
	activeUser := func(t *testing.T) *domain.User {
		return &domain.User{
			ID:           15,
			Name:         "Juan",
			Lastname:     "Pérez",
			Email:        "juan.perez@mail.com",
			PasswordHash: hashPassword(t, "Client123!"),
			Active:       true,
			RoleID:       3,
		}
	}

	t.Run("Credenciais corretas - token com as claims do usuário", func(t *testing.T) {
		service, mockUserRepo := newTestAuthService(t)

		mockUserRepo.EXPECT().GetUserByEmail("juan.perez@mail.com").Return(activeUser(t), nil)

		token, err := service.LoginUser("juan.perez@mail.com", "Client123!")

		require.NoError(t, err)
		require.NotEmpty(t, token)

		claims, err := service.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, 15, claims.UserID)
		assert.Equal(t, "juan.perez@mail.com", claims.UserEmail)
		assert.Equal(t, 3, claims.UserRoleID)
	})

	t.Run("Senha incorreta - erro de credenciais", func(t *testing.T) {
		service, mockUserRepo := newTestAuthService(t)

		mockUserRepo.EXPECT().GetUserByEmail("juan.perez@mail.com").Return(activeUser(t), nil)

		_, err := service.LoginUser("juan.perez@mail.com", "senha-errada")

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		assert.True(t, IsCredentialsError(err))
	})

	t.Run("Usuário desativado - erro", func(t *testing.T) {
		service, mockUserRepo := newTestAuthService(t)

		disabled := activeUser(t)
		disabled.Active = false
		mockUserRepo.EXPECT().GetUserByEmail("juan.perez@mail.com").Return(disabled, nil)

		_, err := service.LoginUser("juan.perez@mail.com", "Client123!")

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUserDisabled)
	})

	t.Run("Usuário inexistente - erro", func(t *testing.T) {
		service, mockUserRepo := newTestAuthService(t)

		mockUserRepo.EXPECT().GetUserByEmail("nadie@mail.com").Return(nil, nil)

		_, err := service.LoginUser("nadie@mail.com", "Client123!")

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("Campos vazios - erro", func(t *testing.T) {
		service, _ := newTestAuthService(t)

		_, err := service.LoginUser("", "")

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMissingRequiredData)
	})
}

func TestService_ValidateToken(t *testing.T) {
	service, _ := newTestAuthService(t)

	_, err := service.ValidateToken("token-que-nao-e-jwt")
	assert.Error(t, err)
}

func TestService_GenerateStrongPassword(t *testing.T) {
	t.Run("Solicitante administrador - senha redefinida", func(t *testing.T) {
		service, mockUserRepo := newTestAuthService(t)

		mockUserRepo.EXPECT().GetUserByID(1).Return(&domain.User{ID: 1, RoleID: 1}, nil)
		mockUserRepo.EXPECT().GetUserByID(15).Return(&domain.User{ID: 15, RoleID: 3}, nil)
		mockUserRepo.EXPECT().
			UpdateUser(gomock.Any()).
			DoAndReturn(func(user *domain.User) error {
				assert.NotEmpty(t, user.PasswordHash)
				return nil
			})

		password, err := service.GenerateStrongPassword(1, 15)

		require.NoError(t, err)
		assert.GreaterOrEqual(t, len(password), 12)
		require.NoError(t, service.ValidatePasswordStrength(password))
	})

	t.Run("Solicitante sem perfil de administrador - recusado", func(t *testing.T) {
		service, mockUserRepo := newTestAuthService(t)

		mockUserRepo.EXPECT().GetUserByID(2).Return(&domain.User{ID: 2, RoleID: 2}, nil)

		_, err := service.GenerateStrongPassword(2, 15)

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNoAdminPrivileges)
	})
}

func TestService_ChangePassword(t *testing.T) {
	t.Run("Senha atual correta - alterada", func(t *testing.T) {
		service, mockUserRepo := newTestAuthService(t)

		mockUserRepo.EXPECT().GetUserByID(15).Return(&domain.User{
			ID:           15,
			PasswordHash: hashPassword(t, "Client123!"),
		}, nil)
		mockUserRepo.EXPECT().UpdateUser(gomock.Any()).Return(nil)

		require.NoError(t, service.ChangePassword(15, "Client123!", "NuevaClave99!"))
	})

	t.Run("Senha atual incorreta - erro", func(t *testing.T) {
		service, mockUserRepo := newTestAuthService(t)

		mockUserRepo.EXPECT().GetUserByID(15).Return(&domain.User{
			ID:           15,
			PasswordHash: hashPassword(t, "Client123!"),
		}, nil)

		err := service.ChangePassword(15, "senha-errada", "NuevaClave99!")

		require.Error(t, err)
		assert.EqualError(t, err, "senha atual incorreta")
	})

	t.Run("Nova senha igual à atual - erro", func(t *testing.T) {
		service, mockUserRepo := newTestAuthService(t)

		mockUserRepo.EXPECT().GetUserByID(15).Return(&domain.User{
			ID:           15,
			PasswordHash: hashPassword(t, "Client123!"),
		}, nil)

		err := service.ChangePassword(15, "Client123!", "Client123!")

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrSamePassword)
	})

	t.Run("Nova senha fraca - erro", func(t *testing.T) {
		service, mockUserRepo := newTestAuthService(t)

		mockUserRepo.EXPECT().GetUserByID(15).Return(&domain.User{
			ID:           15,
			PasswordHash: hashPassword(t, "Client123!"),
		}, nil)

		err := service.ChangePassword(15, "Client123!", "curta")

		require.Error(t, err)
	})
}

func TestService_ValidatePasswordStrength(t *testing.T) {
	service, _ := newTestAuthService(t)

	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"Senha forte completa", "NuevaClave99!", false},
		{"Sem maiúsculas", "nuevaclave99!", true},
		{"Sem minúsculas", "NUEVACLAVE99!", true},
		{"Sem números", "NuevaClave!", true},
		{"Sem caracteres especiais", "NuevaClave99", true},
		{"Muito curta", "Nc9!", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := service.ValidatePasswordStrength(tt.password)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}
