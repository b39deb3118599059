package usecase

import (
	"context"
	"errors"

	"minilms-backend/internal/domain"
	"minilms-backend/pkg/utils"
)

type authUsecase struct {
	userRepo domain.UserRepository
}

func NewAuthUsecase(ur domain.UserRepository) domain.AuthUsecase {
	return &authUsecase{userRepo: ur}
}

func (uc *authUsecase) Register(ctx context.Context, user *domain.User) error {
	existing, _ := uc.userRepo.GetByEmail(ctx, user.Email)
	if existing != nil && existing.ID != "" {
		return errors.New("email already registered")
	}

	hashed, err := utils.HashPassword(user.Password)
	if err != nil {
		return err
	}
	user.Password = hashed
	if user.Role == "" {
		user.Role = domain.RoleStudent
	}

	return uc.userRepo.Create(ctx, user)
}

func (uc *authUsecase) Login(ctx context.Context, email, password string) (string, error) {
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil || user.ID == "" {
		return "", errors.New("invalid credentials")
	}

	if !utils.CheckPasswordHash(password, user.Password) {
		return "", errors.New("invalid credentials")
	}

	return utils.GenerateJWT(user.ID, string(user.Role))
}

// UpdateUser changes name and password only. Role is immutable after
// registration.
func (uc *authUsecase) UpdateUser(ctx context.Context, user *domain.User) error {
	existingUser, err := uc.userRepo.GetByID(ctx, user.ID)
	if err != nil {
		return errors.New("user not found")
	}

	if user.Name != "" {
		existingUser.Name = user.Name
	}
	if user.Password != "" {
		hashedPassword, err := utils.HashPassword(user.Password)
		if err != nil {
			return err
		}
		existingUser.Password = hashedPassword
	}

	return uc.userRepo.Update(ctx, existingUser)
}

func (uc *authUsecase) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	return uc.userRepo.GetByID(ctx, id)
}
