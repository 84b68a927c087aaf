package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/salesledger/backend/internal/application/adapter"
	"github.com/salesledger/backend/internal/domain/entity"
)

// SeedAdminInput carries the bootstrap administrator credentials.
type SeedAdminInput struct {
	Email    string
	Name     string
	Password string
}

// SeedAdminUseCase creates the first administrator when it does not exist yet.
type SeedAdminUseCase struct {
	userRepo        adapter.UserRepository
	passwordService adapter.PasswordService
}

// NewSeedAdminUseCase creates a new SeedAdminUseCase instance.
func NewSeedAdminUseCase(userRepo adapter.UserRepository, passwordService adapter.PasswordService) *SeedAdminUseCase {
	return &SeedAdminUseCase{
		userRepo:        userRepo,
		passwordService: passwordService,
	}
}

// Execute creates the admin account. It returns false when nothing was done,
// either because no credentials are configured or the account already exists.
func (uc *SeedAdminUseCase) Execute(ctx context.Context, input SeedAdminInput) (bool, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.Password == "" {
		return false, nil
	}

	exists, err := uc.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return false, fmt.Errorf("failed to check admin account: %w", err)
	}
	if exists {
		return false, nil
	}

	hash, err := uc.passwordService.HashPassword(input.Password)
	if err != nil {
		return false, fmt.Errorf("failed to hash admin password: %w", err)
	}

	name := input.Name
	if name == "" {
		name = "Administrator"
	}
	if err := uc.userRepo.Create(ctx, entity.NewUser(email, name, hash, entity.UserRoleAdmin)); err != nil {
		return false, fmt.Errorf("failed to create admin account: %w", err)
	}

	slog.Info("Admin account created", "email", email)
	return true, nil
}
