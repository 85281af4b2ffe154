package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"

	"github.com/zahid-akhtar7979/wildlife-api/media"
	"github.com/zahid-akhtar7979/wildlife-api/models"
	"github.com/zahid-akhtar7979/wildlife-api/policy"
	"github.com/zahid-akhtar7979/wildlife-api/repositories"
)

// FeaturedLimit caps the featured listing.
const FeaturedLimit = 6

type ArticleService interface {
	List(ctx context.Context, filter models.ArticleFilter, page models.PageRequest) (*models.ArticlePage, error)
	Featured(ctx context.Context) ([]models.Article, error)
	Tags(ctx context.Context) ([]string, error)
	Categories(ctx context.Context) ([]string, error)
	Get(ctx context.Context, id uint) (*models.Article, error)
	ListByAuthor(ctx context.Context, actor *models.AuthUser, authorID uint, page models.PageRequest) (*models.ArticlePage, error)
	Create(ctx context.Context, actor *models.AuthUser, req models.CreateArticleRequest) (*models.Article, error)
	Update(ctx context.Context, actor *models.AuthUser, id uint, req models.UpdateArticleRequest) (*models.Article, error)
	SetPublished(ctx context.Context, actor *models.AuthUser, id uint, published bool) (*models.Article, error)
	Delete(ctx context.Context, actor *models.AuthUser, id uint) error
}

type articleService struct {
	articleRepo repositories.ArticleRepository
	urls        *media.URLBuilder
	now         func() time.Time
}

func NewArticleService(articleRepo repositories.ArticleRepository, urls *media.URLBuilder) ArticleService {
	return &articleService{
		articleRepo: articleRepo,
		urls:        urls,
		now:         time.Now,
	}
}

func (s *articleService) List(ctx context.Context, filter models.ArticleFilter, page models.PageRequest) (*models.ArticlePage, error) {
	articles, total, err := s.articleRepo.ListPublished(ctx, filter, page)
	if err != nil {
		return nil, err
	}
	if err := s.decorateAll(articles); err != nil {
		return nil, err
	}
	return &models.ArticlePage{
		Articles:   articles,
		Pagination: models.NewPagination(page, total),
	}, nil
}

func (s *articleService) Featured(ctx context.Context) ([]models.Article, error) {
	articles, err := s.articleRepo.ListFeatured(ctx, FeaturedLimit)
	if err != nil {
		return nil, err
	}
	if err := s.decorateAll(articles); err != nil {
		return nil, err
	}
	return articles, nil
}

func (s *articleService) Tags(ctx context.Context) ([]string, error) {
	tags, err := s.articleRepo.PublishedTags(ctx)
	if err != nil {
		return nil, err
	}
	sort.Strings(tags)
	return tags, nil
}

func (s *articleService) Categories(ctx context.Context) ([]string, error) {
	categories, err := s.articleRepo.PublishedCategories(ctx)
	if err != nil {
		return nil, err
	}
	sort.Strings(categories)
	return categories, nil
}

// Get returns a published article and records the read. The returned view
// count is the value written by this read.
func (s *articleService) Get(ctx context.Context, id uint) (*models.Article, error) {
	views, err := s.articleRepo.IncrementViews(ctx, id)
	if err != nil {
		return nil, err
	}

	article, err := s.articleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	article.Views = views
	if err := s.decorate(article); err != nil {
		return nil, err
	}
	return article, nil
}

func (s *articleService) ListByAuthor(ctx context.Context, actor *models.AuthUser, authorID uint, page models.PageRequest) (*models.ArticlePage, error) {
	if err := policy.Authorize(policy.OwnsOrAdmin(actor, authorID), "You can only access your own articles"); err != nil {
		return nil, err
	}

	articles, total, err := s.articleRepo.ListByAuthor(ctx, authorID, page)
	if err != nil {
		return nil, err
	}
	if err := s.decorateAll(articles); err != nil {
		return nil, err
	}
	return &models.ArticlePage{
		Articles:   articles,
		Pagination: models.NewPagination(page, total),
	}, nil
}

func (s *articleService) Create(ctx context.Context, actor *models.AuthUser, req models.CreateArticleRequest) (*models.Article, error) {
	article := &models.Article{
		Title:    req.Title,
		Content:  req.Content,
		Excerpt:  req.Excerpt,
		Category: blankToNil(req.Category),
		Tags:     normalizeTags(req.Tags),
		Images:   storedImages(req.Images),
		Videos:   storedVideos(req.Videos),
		Featured: req.Featured,
		AuthorID: actor.ID,
	}
	article.SetPublished(req.Published, s.now())

	if err := s.articleRepo.Create(ctx, article); err != nil {
		return nil, err
	}

	created, err := s.articleRepo.GetByID(ctx, article.ID)
	if err != nil {
		return nil, err
	}
	if err := s.decorate(created); err != nil {
		return nil, err
	}
	return created, nil
}

// Update applies the fields present in req. A present published flag
// restamps the publish date even when the state does not change.
func (s *articleService) Update(ctx context.Context, actor *models.AuthUser, id uint, req models.UpdateArticleRequest) (*models.Article, error) {
	existing, err := s.loadOwned(ctx, actor, id, "You can only edit your own articles")
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Content != nil {
		updates["content"] = *req.Content
	}
	if req.Excerpt != nil {
		updates["excerpt"] = *req.Excerpt
	}
	if req.Category.Set {
		if category := blankToNil(req.Category.Value); category != nil {
			updates["category"] = *category
		} else {
			updates["category"] = nil
		}
	}
	if req.Tags != nil {
		updates["tags"] = normalizeTags(*req.Tags)
	}
	if req.Images != nil {
		updates["images"] = storedImages(*req.Images)
	}
	if req.Videos != nil {
		updates["videos"] = storedVideos(*req.Videos)
	}
	if req.Featured != nil {
		updates["featured"] = *req.Featured
	}
	if req.Published != nil {
		s.publishUpdates(updates, *req.Published)
	}

	if len(updates) == 0 {
		if err := s.decorate(existing); err != nil {
			return nil, err
		}
		return existing, nil
	}
	return s.save(ctx, id, updates)
}

func (s *articleService) SetPublished(ctx context.Context, actor *models.AuthUser, id uint, published bool) (*models.Article, error) {
	if _, err := s.loadOwned(ctx, actor, id, "You can only publish your own articles"); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	s.publishUpdates(updates, published)
	return s.save(ctx, id, updates)
}

func (s *articleService) Delete(ctx context.Context, actor *models.AuthUser, id uint) error {
	if _, err := s.loadOwned(ctx, actor, id, "You can only delete your own articles"); err != nil {
		return err
	}
	return s.articleRepo.Delete(ctx, id)
}

func (s *articleService) loadOwned(ctx context.Context, actor *models.AuthUser, id uint, denied string) (*models.Article, error) {
	article, err := s.articleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(policy.OwnsOrAdmin(actor, article.AuthorID), denied); err != nil {
		return nil, err
	}
	return article, nil
}

func (s *articleService) publishUpdates(updates map[string]interface{}, published bool) {
	var transition models.Article
	transition.SetPublished(published, s.now())

	updates["published"] = transition.Published
	if transition.PublishDate != nil {
		updates["publish_date"] = *transition.PublishDate
	} else {
		updates["publish_date"] = nil
	}
}

func (s *articleService) save(ctx context.Context, id uint, updates map[string]interface{}) (*models.Article, error) {
	article, err := s.articleRepo.Update(ctx, id, updates)
	if err != nil {
		return nil, err
	}
	if err := s.decorate(article); err != nil {
		return nil, err
	}
	return article, nil
}

// decorate renders the derived image sizes. They are never stored.
func (s *articleService) decorate(article *models.Article) error {
	if article.Tags == nil {
		article.Tags = pq.StringArray{}
	}
	if article.Images == nil {
		article.Images = datatypes.JSONSlice[models.Image]{}
	}
	if article.Videos == nil {
		article.Videos = datatypes.JSONSlice[models.Video]{}
	}
	for i := range article.Images {
		img := &article.Images[i]
		if img.ID == "" {
			img.Sizes = nil
			continue
		}
		sizes, err := s.urls.ImageSizes(img.ID, img.URL)
		if err != nil {
			return fmt.Errorf("render sizes for %q: %w", img.ID, err)
		}
		img.Sizes = sizes
	}
	return nil
}

func (s *articleService) decorateAll(articles []models.Article) error {
	for i := range articles {
		if err := s.decorate(&articles[i]); err != nil {
			return err
		}
	}
	return nil
}

// normalizeTags trims tags and drops blanks and repeats, keeping order.
func normalizeTags(tags []string) pq.StringArray {
	out := make(pq.StringArray, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

func storedImages(images []models.Image) datatypes.JSONSlice[models.Image] {
	out := make(datatypes.JSONSlice[models.Image], 0, len(images))
	for _, img := range images {
		img.Sizes = nil
		out = append(out, img)
	}
	return out
}

func storedVideos(videos []models.Video) datatypes.JSONSlice[models.Video] {
	out := make(datatypes.JSONSlice[models.Video], 0, len(videos))
	return append(out, videos...)
}

func blankToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
