package adapter

// PasswordService hashes and verifies account passwords.
type PasswordService interface {
	// HashPassword returns a bcrypt hash of password.
	HashPassword(password string) (string, error)

	// VerifyPassword returns nil when password matches hashedPassword.
	VerifyPassword(hashedPassword, password string) error

	// ValidatePasswordStrength rejects passwords that are too short or too simple.
	ValidatePasswordStrength(password string) error
}
