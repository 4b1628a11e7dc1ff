// Package service implements the application's business rules on top of the
// repository layer.
package service

import (
	"context"

	"darkroom/internal/auth"
	"darkroom/internal/models"
	"darkroom/internal/repository"
	"darkroom/internal/validation"
)

// UserService owns account creation, login, settings and profile mutation.
type UserService struct {
	userRepo repository.UserRepository
}

type CreateAccountInput struct {
	FirstName   string
	LastName    string
	Email       string
	DateOfBirth string
	Password    string
	Username    string
}

type UpdateSettingsInput struct {
	UserID          uint
	FirstName       string
	LastName        string
	Username        string
	CurrentPassword string
	NewPassword     string
}

type UpdateBioInput struct {
	UserID       uint
	Bio          string
	ProfileImage string
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// CreateAccount validates and registers a new user. The uniqueness pre-check
// only produces a friendlier error; the storage-level unique indexes remain
// the authoritative enforcement and their violation maps to the same conflict.
func (s *UserService) CreateAccount(ctx context.Context, in CreateAccountInput) (*models.User, error) {
	if in.FirstName == "" || in.LastName == "" || in.Email == "" ||
		in.DateOfBirth == "" || in.Password == "" || in.Username == "" {
		return nil, models.NewValidationError("All fields are required")
	}
	if err := validation.ValidateUsername(in.Username); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	dob, err := validation.ParseDateOfBirth(in.DateOfBirth)
	if err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	if existing, err := s.userRepo.GetByEmail(ctx, in.Email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, models.NewConflictError("This email or username is already taken")
	}
	if existing, err := s.userRepo.GetByUsername(ctx, in.Username); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, models.NewConflictError("This email or username is already taken")
	}

	hashed, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		Email:       in.Email,
		DateOfBirth: dob,
		Password:    hashed,
		Username:    in.Username,
		Role:        models.RoleUser,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login authenticates by email and password. An unknown email and a wrong
// password return the identical error so callers cannot tell which was wrong.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, models.NewAuthError("Invalid email or password")
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || !auth.VerifyPassword(password, user.Password) {
		return nil, models.NewAuthError("Invalid email or password")
	}
	return user, nil
}

// UpdateSettings applies a partial update of names, username and password.
func (s *UserService) UpdateSettings(ctx context.Context, in UpdateSettingsInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if in.FirstName != "" {
		user.FirstName = in.FirstName
	}
	if in.LastName != "" {
		user.LastName = in.LastName
	}
	if in.Username != "" && in.Username != user.Username {
		if err := validation.ValidateUsername(in.Username); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		taken, err := s.userRepo.UsernameTaken(ctx, in.Username, user.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, models.NewConflictError("Username already taken")
		}
		user.Username = in.Username
	}

	if in.NewPassword != "" {
		if in.CurrentPassword == "" || !auth.VerifyPassword(in.CurrentPassword, user.Password) {
			return nil, models.NewAuthError("Current password is incorrect")
		}
		if err := validation.ValidatePassword(in.NewPassword); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		hashed, err := auth.HashPassword(in.NewPassword)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		user.Password = hashed
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateBio sets the profile bio (and optionally the profile image pointer).
func (s *UserService) UpdateBio(ctx context.Context, in UpdateBioInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	const maxBioLen = 500
	if len(in.Bio) > maxBioLen {
		return nil, models.NewValidationError("Bio too long (max 500 characters)")
	}

	user.Bio = in.Bio
	if in.ProfileImage != "" {
		user.ProfileImage = in.ProfileImage
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateProfileImage repoints the user's profile image without touching the bio.
func (s *UserService) UpdateProfileImage(ctx context.Context, userID uint, url string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.ProfileImage = url
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteAccount removes the user and cascades to their photos, likes and comments.
func (s *UserService) DeleteAccount(ctx context.Context, userID uint) error {
	return s.userRepo.DeleteCascade(ctx, userID)
}

// SearchUsers performs a case-insensitive substring match over username and
// names, returning at most 10 public projections.
func (s *UserService) SearchUsers(ctx context.Context, query string) ([]models.PublicUser, error) {
	if len(query) < 2 {
		return nil, models.NewValidationError("Search query must be at least 2 characters")
	}

	users, err := s.userRepo.Search(ctx, query, 10)
	if err != nil {
		return nil, err
	}

	results := make([]models.PublicUser, 0, len(users))
	for i := range users {
		results = append(results, users[i].Public())
	}
	return results, nil
}
