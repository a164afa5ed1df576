package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/northstack/leadgen/internal/auth"
	"github.com/northstack/leadgen/internal/domain"
	"github.com/northstack/leadgen/internal/infra"
	"github.com/northstack/leadgen/internal/repository"
)

// seed-admin creates an admin user from the command line. The password is
// read from ADMIN_PASSWORD rather than a flag so it never lands in shell
// history or process listings.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	username := flag.String("username", "", "admin username (required)")
	email := flag.String("email", "", "admin email (required)")
	fullName := flag.String("name", "", "admin full name")
	role := flag.String("role", auth.RoleAdmin, "role: viewer, admin or superadmin")
	flag.Parse()

	if err := run(logger, *username, *email, *fullName, *role); err != nil {
		logger.Error("seed admin failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, username, email, fullName, role string) error {
	if username == "" || email == "" {
		return fmt.Errorf("both -username and -email are required")
	}
	if err := domain.ValidateEmail(email); err != nil {
		return err
	}

	valid := false
	for _, r := range auth.AllAdminRoles() {
		if r == role {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("unknown role %q", role)
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if len(password) < 12 {
		return fmt.Errorf("ADMIN_PASSWORD must be set and at least 12 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	cfg, err := infra.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx := context.Background()
	pool, err := infra.NewPostgresPool(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer pool.Close()

	user := &domain.AdminUser{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: string(hash),
		Email:        email,
		FullName:     fullName,
		Role:         role,
		IsActive:     true,
	}

	repo := repository.NewPgAdminUserRepository()
	if err := repo.Create(ctx, pool, user); err != nil {
		return fmt.Errorf("create admin user: %w", err)
	}

	logger.Info("admin user created", "id", user.ID, "username", user.Username, "role", user.Role)
	return nil
}
