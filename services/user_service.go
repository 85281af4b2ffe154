package services

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/zahid-akhtar7979/wildlife-api/config"
	"github.com/zahid-akhtar7979/wildlife-api/models"
	"github.com/zahid-akhtar7979/wildlife-api/repositories"
)

var (
	errSelfDisable = models.ErrorBadRequest{Message: "You cannot disable your own account"}
	errSelfDelete  = models.ErrorBadRequest{Message: "You cannot delete your own account"}
)

type UserService interface {
	List(ctx context.Context, filter models.UserFilter, page models.PageRequest) (*models.UserPage, error)
	Stats(ctx context.Context) (*models.UserStats, error)
	Get(ctx context.Context, id uint) (*models.UserDetail, error)
	Create(ctx context.Context, req models.CreateUserRequest) (*models.User, error)
	Update(ctx context.Context, actor *models.AuthUser, id uint, req models.UpdateUserRequest) (*models.User, error)
	SetApproval(ctx context.Context, id uint, approved bool) (*models.User, error)
	ResetPassword(ctx context.Context, id uint, newPassword string) error
	Delete(ctx context.Context, actor *models.AuthUser, id uint) error
	EnsureAdmin(ctx context.Context, cfg config.BootstrapConfig) (bool, error)
}

type userService struct {
	userRepo    repositories.UserRepository
	articleRepo repositories.ArticleRepository
}

func NewUserService(userRepo repositories.UserRepository, articleRepo repositories.ArticleRepository) UserService {
	return &userService{
		userRepo:    userRepo,
		articleRepo: articleRepo,
	}
}

func (s *userService) List(ctx context.Context, filter models.UserFilter, page models.PageRequest) (*models.UserPage, error) {
	users, total, err := s.userRepo.List(ctx, filter, page)
	if err != nil {
		return nil, err
	}
	return &models.UserPage{
		Users:      users,
		Pagination: models.NewPagination(page, total),
	}, nil
}

// Stats runs every count concurrently; the first failure cancels the rest.
func (s *userService) Stats(ctx context.Context) (*models.UserStats, error) {
	var stats models.UserStats
	g, ctx := errgroup.WithContext(ctx)

	pending := false
	published := true
	drafts := false

	g.Go(func() (err error) {
		stats.Users.Total, err = s.userRepo.Count(ctx, models.UserFilter{})
		return err
	})
	g.Go(func() (err error) {
		stats.Users.Pending, err = s.userRepo.Count(ctx, models.UserFilter{Approved: &pending})
		return err
	})
	g.Go(func() (err error) {
		stats.Users.Admins, err = s.userRepo.Count(ctx, models.UserFilter{Role: models.RoleAdmin})
		return err
	})
	g.Go(func() (err error) {
		stats.Users.Contributors, err = s.userRepo.Count(ctx, models.UserFilter{Role: models.RoleContributor})
		return err
	})
	g.Go(func() (err error) {
		stats.Articles.Total, err = s.articleRepo.Count(ctx, nil)
		return err
	})
	g.Go(func() (err error) {
		stats.Articles.Published, err = s.articleRepo.Count(ctx, &published)
		return err
	})
	g.Go(func() (err error) {
		stats.Articles.Drafts, err = s.articleRepo.Count(ctx, &drafts)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (s *userService) Get(ctx context.Context, id uint) (*models.UserDetail, error) {
	return s.userRepo.GetDetail(ctx, id)
}

// Create adds an account on behalf of an admin. It is usable immediately.
func (s *userService) Create(ctx context.Context, req models.CreateUserRequest) (*models.User, error) {
	hashed, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hashed,
		Role:     req.Role,
		Approved: true,
		Enabled:  true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) Update(ctx context.Context, actor *models.AuthUser, id uint, req models.UpdateUserRequest) (*models.User, error) {
	existing, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if actor.ID == id && req.Enabled != nil && !*req.Enabled {
		return nil, errSelfDisable
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Role != nil {
		updates["role"] = *req.Role
	}
	if req.Approved != nil {
		updates["approved"] = *req.Approved
	}
	if req.Enabled != nil {
		updates["enabled"] = *req.Enabled
	}

	if len(updates) == 0 {
		return existing, nil
	}
	return s.userRepo.Update(ctx, id, updates)
}

// SetApproval approves or rejects an account. Repeating the same decision
// is a no-op success.
func (s *userService) SetApproval(ctx context.Context, id uint, approved bool) (*models.User, error) {
	return s.userRepo.Update(ctx, id, map[string]interface{}{"approved": approved})
}

func (s *userService) ResetPassword(ctx context.Context, id uint, newPassword string) error {
	hashed, err := hashPassword(newPassword)
	if err != nil {
		return err
	}
	_, err = s.userRepo.Update(ctx, id, map[string]interface{}{"password": hashed})
	return err
}

// Delete removes an account and everything it authored. Admins cannot
// delete themselves.
func (s *userService) Delete(ctx context.Context, actor *models.AuthUser, id uint) error {
	if actor.ID == id {
		return errSelfDelete
	}
	return s.userRepo.Delete(ctx, id)
}

// EnsureAdmin creates the configured admin account when it does not exist
// yet. It reports whether an account was created.
func (s *userService) EnsureAdmin(ctx context.Context, cfg config.BootstrapConfig) (bool, error) {
	if cfg.AdminEmail == "" {
		return false, nil
	}

	_, err := s.userRepo.GetByEmail(ctx, cfg.AdminEmail)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, models.ErrUserNotFound) {
		return false, err
	}

	_, err = s.Create(ctx, models.CreateUserRequest{
		Name:     cfg.AdminName,
		Email:    cfg.AdminEmail,
		Password: cfg.AdminPassword,
		Role:     models.RoleAdmin,
	})
	if err != nil {
		return false, err
	}
	return true, nil
}
