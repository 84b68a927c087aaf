package auth

import (
	"context"
	"log/slog"

	"github.com/salesledger/backend/internal/application/adapter"
)

// LogoutUserUseCase revokes a refresh token.
type LogoutUserUseCase struct {
	tokenService adapter.TokenService
}

// NewLogoutUserUseCase creates a new LogoutUserUseCase instance.
func NewLogoutUserUseCase(tokenService adapter.TokenService) *LogoutUserUseCase {
	return &LogoutUserUseCase{
		tokenService: tokenService,
	}
}

// Execute revokes refreshToken. Logging out is idempotent, so revocation
// failures are only logged.
func (uc *LogoutUserUseCase) Execute(ctx context.Context, refreshToken string) {
	if err := uc.tokenService.InvalidateRefreshToken(ctx, refreshToken); err != nil {
		slog.Warn("Failed to revoke refresh token on logout", "error", err)
	}
}
