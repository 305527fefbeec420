package service

import (
	"context"
	"errors"

	"yamdb/internal/microservices/http-api/dto"
	"yamdb/internal/microservices/http-api/models"
	"yamdb/internal/microservices/http-api/permission"
	"yamdb/internal/microservices/http-api/repository"

	"gorm.io/gorm"
)

const (
	msgUsernameTaken = "A user with that username already exists."
	msgEmailTaken    = "user with this email already exists."
)

type UserService interface {
	List(ctx context.Context, search string, page dto.Page) ([]models.User, int64, error)
	Get(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, req dto.UserRequest) (*models.User, error)
	Update(ctx context.Context, username string, req dto.UserRequest) (*models.User, error)
	UpdateProfile(ctx context.Context, me *models.User, req dto.UserRequest) (*models.User, error)
	Delete(ctx context.Context, username string) error
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) List(ctx context.Context, search string, page dto.Page) ([]models.User, int64, error) {
	return s.userRepo.List(ctx, search, page.Limit, page.Offset)
}

func (s *userService) Get(ctx context.Context, username string) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, notFound(err)
	}
	return user, nil
}

// Create adds an account without a password; the owner signs in by email code.
func (s *userService) Create(ctx context.Context, req dto.UserRequest) (*models.User, error) {
	user := &models.User{Role: models.RoleUser}
	apply(user, req, true)

	if err := s.checkUnique(ctx, user, ""); err != nil {
		return nil, err
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, s.duplicate(ctx, user, "", err)
	}
	return user, nil
}

func (s *userService) Update(ctx context.Context, username string, req dto.UserRequest) (*models.User, error) {
	user, err := s.Get(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.save(ctx, user, req, true)
}

// UpdateProfile edits the caller's own account. Only admins may change their role here.
func (s *userService) UpdateProfile(ctx context.Context, me *models.User, req dto.UserRequest) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, me.ID)
	if err != nil {
		return nil, notFound(err)
	}
	return s.save(ctx, user, req, permission.IsAdmin(me))
}

func (s *userService) save(ctx context.Context, user *models.User, req dto.UserRequest, allowRole bool) (*models.User, error) {
	apply(user, req, allowRole)
	if err := s.checkUnique(ctx, user, user.ID); err != nil {
		return nil, err
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, s.duplicate(ctx, user, user.ID, err)
	}
	return user, nil
}

func (s *userService) Delete(ctx context.Context, username string) error {
	return notFound(s.userRepo.Delete(ctx, username))
}

func apply(user *models.User, req dto.UserRequest, allowRole bool) {
	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.Role != nil && allowRole {
		user.Role = *req.Role
	}
}

// checkUnique reports every taken username or email at once. selfID is the
// user being updated and may keep its own values.
func (s *userService) checkUnique(ctx context.Context, user *models.User, selfID string) error {
	fields := map[string]string{}
	var cause error

	if other, err := s.userRepo.FindByUsername(ctx, user.Username); err == nil && other.ID != selfID {
		fields["username"] = msgUsernameTaken
		cause = ErrUsernameTaken
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if other, err := s.userRepo.FindByEmail(ctx, user.Email); err == nil && other.ID != selfID {
		fields["email"] = msgEmailTaken
		if cause == nil {
			cause = ErrEmailTaken
		}
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields, cause: cause}
}

// duplicate explains a unique violation that slipped past checkUnique
// because another request wrote first.
func (s *userService) duplicate(ctx context.Context, user *models.User, selfID string, err error) error {
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		return err
	}
	if verr := s.checkUnique(ctx, user, selfID); verr != nil {
		return verr
	}
	return invalid(ErrUsernameTaken, "username", msgUsernameTaken)
}
