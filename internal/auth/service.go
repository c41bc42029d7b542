package auth

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/authgate-io/authgate/internal/db/models"
)

// Service provisions user accounts from verified OIDC identities.
type Service struct {
	db *gorm.DB
}

// NewService creates a new auth service.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// FindOrCreateUser resolves the verified claims to a user row. First login
// creates the account with the general role; later logins refresh the name
// and email from the provider.
func (s *Service) FindOrCreateUser(claims *IdentityClaims) (*models.User, error) {
	var user models.User

	err := s.db.Preload("Roles", func(db *gorm.DB) *gorm.DB {
		return db.Order("roles.id")
	}).Where("subject = ?", claims.Subject).First(&user).Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		var role models.Role
		if err = s.db.Where(models.Role{Name: models.RoleGeneral}).
			FirstOrCreate(&role).Error; err != nil {
			return nil, fmt.Errorf("failed to resolve default role: %w", err)
		}

		user = models.User{
			Subject:   claims.Subject,
			Email:     claims.Email,
			Name:      claims.Name,
			Roles:     []models.Role{role},
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}

		if err = s.db.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("failed to query user: %w", err)
	default:
		user.Email = claims.Email
		user.Name = claims.Name
		user.UpdatedAt = time.Now()

		if err = s.db.Save(&user).Error; err != nil {
			return nil, fmt.Errorf("failed to update user: %w", err)
		}
	}

	return &user, nil
}
