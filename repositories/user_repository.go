package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/zahid-akhtar7979/wildlife-api/models"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetDetail(ctx context.Context, id uint) (*models.UserDetail, error)
	List(ctx context.Context, filter models.UserFilter, page models.PageRequest) ([]models.UserListItem, int64, error)
	Update(ctx context.Context, id uint, updates map[string]interface{}) (*models.User, error)
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context, filter models.UserFilter) (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return translate(r.db.WithContext(ctx).Create(user).Error, nil, models.ErrEmailTaken)
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		return nil, translate(err, models.ErrUserNotFound, nil)
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, translate(err, models.ErrUserNotFound, nil)
	}
	return &user, nil
}

func (r *userRepository) GetDetail(ctx context.Context, id uint) (*models.UserDetail, error) {
	var item models.UserListItem
	err := r.listQuery(ctx).Where("users.id = ?", id).Take(&item).Error
	if err != nil {
		return nil, translate(err, models.ErrUserNotFound, nil)
	}

	articles := make([]models.ArticleSummary, 0)
	err = r.db.WithContext(ctx).
		Model(&models.Article{}).
		Select("id", "title", "published", "views", "created_at").
		Where("author_id = ?", id).
		Order("created_at DESC").
		Scan(&articles).Error
	if err != nil {
		return nil, err
	}

	return &models.UserDetail{UserListItem: item, Articles: articles}, nil
}

func (r *userRepository) List(ctx context.Context, filter models.UserFilter, page models.PageRequest) ([]models.UserListItem, int64, error) {
	var total int64
	if err := r.filtered(r.db.WithContext(ctx).Model(&models.User{}), filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	items := make([]models.UserListItem, 0)
	err := r.filtered(r.listQuery(ctx), filter).
		Order("users.created_at DESC").
		Offset(page.Offset()).
		Limit(page.Limit).
		Scan(&items).Error
	if err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

// listQuery selects user rows together with their article count.
func (r *userRepository) listQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Select(`users.id, users.name, users.email, users.role, users.approved, users.enabled,
			users.created_at, users.updated_at,
			(SELECT COUNT(*) FROM articles WHERE articles.author_id = users.id) AS count_articles`)
}

func (r *userRepository) filtered(query *gorm.DB, filter models.UserFilter) *gorm.DB {
	if filter.Role != "" {
		query = query.Where("users.role = ?", filter.Role)
	}
	if filter.Approved != nil {
		query = query.Where("users.approved = ?", *filter.Approved)
	}
	return query
}

func (r *userRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) (*models.User, error) {
	result := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, translate(result.Error, nil, models.ErrorConflict{Message: "Email already exists"})
	}
	if result.RowsAffected == 0 {
		return nil, models.ErrUserNotFound
	}
	return r.GetByID(ctx, id)
}

// Delete removes the account and, in the same transaction, everything it authored.
func (r *userRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("author_id = ?", id).Delete(&models.Article{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.User{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return models.ErrUserNotFound
		}
		return nil
	})
}

func (r *userRepository) Count(ctx context.Context, filter models.UserFilter) (int64, error) {
	var total int64
	err := r.filtered(r.db.WithContext(ctx).Model(&models.User{}), filter).Count(&total).Error
	return total, err
}
