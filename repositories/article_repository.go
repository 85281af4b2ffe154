package repositories

import (
	"context"
	"strings"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/zahid-akhtar7979/wildlife-api/models"
)

type ArticleRepository interface {
	Create(ctx context.Context, article *models.Article) error
	GetByID(ctx context.Context, id uint) (*models.Article, error)
	ListPublished(ctx context.Context, filter models.ArticleFilter, page models.PageRequest) ([]models.Article, int64, error)
	ListFeatured(ctx context.Context, limit int) ([]models.Article, error)
	ListByAuthor(ctx context.Context, authorID uint, page models.PageRequest) ([]models.Article, int64, error)
	PublishedTags(ctx context.Context) ([]string, error)
	PublishedCategories(ctx context.Context) ([]string, error)
	IncrementViews(ctx context.Context, id uint) (int64, error)
	Update(ctx context.Context, id uint, updates map[string]interface{}) (*models.Article, error)
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context, published *bool) (int64, error)
}

type articleRepository struct {
	db *gorm.DB
}

func NewArticleRepository(db *gorm.DB) ArticleRepository {
	return &articleRepository{db: db}
}

func (r *articleRepository) Create(ctx context.Context, article *models.Article) error {
	// Author is a read projection; never upsert it through the association.
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(article).Error
}

func (r *articleRepository) GetByID(ctx context.Context, id uint) (*models.Article, error) {
	var article models.Article
	err := r.db.WithContext(ctx).Preload("Author").First(&article, id).Error
	if err != nil {
		return nil, translate(err, models.ErrArticleNotFound, nil)
	}
	return &article, nil
}

func (r *articleRepository) ListPublished(ctx context.Context, filter models.ArticleFilter, page models.PageRequest) ([]models.Article, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Article{}).Where("published = ?", true)

	if filter.Search != "" {
		pattern := "%" + escapeLike(filter.Search) + "%"
		query = query.Where("(title ILIKE ? OR content ILIKE ? OR excerpt ILIKE ?)", pattern, pattern, pattern)
	}

	if len(filter.Tags) > 0 {
		query = query.Where("tags && ?::text[]", pq.StringArray(filter.Tags))
	}

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}

	if filter.Featured != nil {
		query = query.Where("featured = ?", *filter.Featured)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	articles := make([]models.Article, 0)
	err := query.Preload("Author").
		Order("publish_date DESC").
		Order("id DESC").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&articles).Error

	return articles, total, err
}

func (r *articleRepository) ListFeatured(ctx context.Context, limit int) ([]models.Article, error) {
	articles := make([]models.Article, 0)
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("published = ? AND featured = ?", true, true).
		Order("publish_date DESC").
		Order("id DESC").
		Limit(limit).
		Find(&articles).Error
	return articles, err
}

func (r *articleRepository) ListByAuthor(ctx context.Context, authorID uint, page models.PageRequest) ([]models.Article, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Article{}).Where("author_id = ?", authorID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	articles := make([]models.Article, 0)
	err := query.Preload("Author").
		Order("created_at DESC").
		Order("id DESC").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&articles).Error

	return articles, total, err
}

func (r *articleRepository) PublishedTags(ctx context.Context) ([]string, error) {
	tags := make([]string, 0)
	err := r.db.WithContext(ctx).
		Raw(`SELECT DISTINCT unnest(tags) AS tag FROM articles WHERE published = ?`, true).
		Scan(&tags).Error
	return tags, err
}

func (r *articleRepository) PublishedCategories(ctx context.Context) ([]string, error) {
	categories := make([]string, 0)
	err := r.db.WithContext(ctx).
		Model(&models.Article{}).
		Distinct("category").
		Where("published = ? AND category IS NOT NULL", true).
		Pluck("category", &categories).Error
	return categories, err
}

// IncrementViews bumps the counter of a published article in a single
// statement and returns the value it wrote.
func (r *articleRepository) IncrementViews(ctx context.Context, id uint) (int64, error) {
	var row models.Article
	result := r.db.WithContext(ctx).
		Model(&row).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "views"}}}).
		Where("id = ? AND published = ?", id, true).
		UpdateColumn("views", gorm.Expr("views + ?", 1))
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		return 0, models.ErrArticleNotFound
	}
	return row.Views, nil
}

func (r *articleRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) (*models.Article, error) {
	result := r.db.WithContext(ctx).Model(&models.Article{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, models.ErrArticleNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *articleRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Article{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return models.ErrArticleNotFound
	}
	return nil
}

func (r *articleRepository) Count(ctx context.Context, published *bool) (int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Article{})
	if published != nil {
		query = query.Where("published = ?", *published)
	}
	var total int64
	err := query.Count(&total).Error
	return total, err
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
