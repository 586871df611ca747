package user

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// SeedDemoUsers inserts one manager and one team member when the users table
// is empty so a fresh install has working logins. Password is "password".
func SeedDemoUsers(ctx context.Context, repo Repository, logger *zap.Logger) error {
	log := logger.Named("user.seed")

	count, err := repo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	demo := []User{
		{
			ID:       uuid.New(),
			Name:     "John Manager",
			Email:    "manager@example.com",
			Password: string(hashed),
			Role:     RoleManager,
			Team:     "Engineering",
			Avatar:   "https://i.pravatar.cc/150?img=1",
		},
		{
			ID:       uuid.New(),
			Name:     "Jane Employee",
			Email:    "employee@example.com",
			Password: string(hashed),
			Role:     RoleTeamMember,
			Team:     "Engineering",
			Avatar:   "https://i.pravatar.cc/150?img=2",
		},
	}

	for i := range demo {
		if err := repo.Create(ctx, &demo[i]); err != nil {
			return err
		}
		log.Info("demo user created",
			zap.String("email", demo[i].Email),
			zap.String("role", demo[i].Role),
		)
	}

	return nil
}
