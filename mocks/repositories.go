// Package mocks provides in-memory stand-ins for the repositories and the
// media gateway so handlers and services can be exercised without
// PostgreSQL or the media host.
package mocks

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"

	"github.com/zahid-akhtar7979/wildlife-api/models"
	"github.com/zahid-akhtar7979/wildlife-api/repositories"
)

var (
	_ repositories.UserRepository    = (*MockUserRepository)(nil)
	_ repositories.ArticleRepository = (*MockArticleRepository)(nil)
)

// Store holds users and articles behind one mutex so cascades and joins
// behave like the relational store.
type Store struct {
	mu       sync.Mutex
	users    map[uint]*models.User
	articles map[uint]*models.Article
	nextUser uint
	nextArt  uint
	clock    time.Time

	// Err, when set, is returned by every repository call.
	Err error
}

func NewStore() *Store {
	return &Store{
		users:    make(map[uint]*models.User),
		articles: make(map[uint]*models.Article),
		clock:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// Users returns the store as a repositories.UserRepository.
func (s *Store) Users() *MockUserRepository {
	return &MockUserRepository{store: s}
}

// Articles returns the store as a repositories.ArticleRepository.
func (s *Store) Articles() *MockArticleRepository {
	return &MockArticleRepository{store: s}
}

// tick hands out strictly increasing timestamps so ordering is stable.
func (s *Store) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

func (s *Store) findEmail(email string) *models.User {
	for _, u := range s.users {
		if u.Email == email {
			return u
		}
	}
	return nil
}

func (s *Store) articleCount(authorID uint) int64 {
	var n int64
	for _, a := range s.articles {
		if a.AuthorID == authorID {
			n++
		}
	}
	return n
}

func (s *Store) withAuthor(a *models.Article) models.Article {
	out := copyArticle(a)
	if u, ok := s.users[a.AuthorID]; ok {
		out.Author = &models.AuthorSummary{ID: u.ID, Name: u.Name, Email: u.Email}
	}
	return out
}

type MockUserRepository struct {
	store *Store
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	s := m.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if s.findEmail(user.Email) != nil {
		return models.ErrEmailTaken
	}
	if user.Role == "" {
		user.Role = models.RoleContributor
	}
	s.nextUser++
	now := s.tick()
	user.ID = s.nextUser
	user.CreatedAt = now
	user.UpdatedAt = now
	stored := *user
	s.users[user.ID] = &stored
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	s := m.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	u, ok := s.users[id]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	out := *u
	return &out, nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	s := m.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	u := s.findEmail(email)
	if u == nil {
		return nil, models.ErrUserNotFound
	}
	out := *u
	return &out, nil
}

func (m *MockUserRepository) GetDetail(ctx context.Context, id uint) (*models.UserDetail, error) {
	s := m.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	u, ok := s.users[id]
	if !ok {
		return nil, models.ErrUserNotFound
	}

	summaries := make([]models.ArticleSummary, 0)
	for _, a := range s.sortedArticles(byCreatedDesc) {
		if a.AuthorID != id {
			continue
		}
		summaries = append(summaries, models.ArticleSummary{
			ID:        a.ID,
			Title:     a.Title,
			Published: a.Published,
			Views:     a.Views,
			CreatedAt: a.CreatedAt,
		})
	}

	return &models.UserDetail{UserListItem: s.listItem(u), Articles: summaries}, nil
}

func (m *MockUserRepository) List(ctx context.Context, filter models.UserFilter, page models.PageRequest) ([]models.UserListItem, int64, error) {
	s := m.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, 0, s.Err
	}

	matched := s.filterUsers(filter)
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID > matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	items := make([]models.UserListItem, 0)
	for _, u := range paginate(matched, page) {
		items = append(items, s.listItem(u))
	}
	return items, int64(len(matched)), nil
}

func (m *MockUserRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) (*models.User, error) {
	s := m.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	u, ok := s.users[id]
	if !ok {
		return nil, models.ErrUserNotFound
	}

	next := *u
	for key, value := range updates {
		switch key {
		case "name":
			next.Name = value.(string)
		case "email":
			email := value.(string)
			if other := s.findEmail(email); other != nil && other.ID != id {
				return nil, models.ErrorConflict{Message: "Email already exists"}
			}
			next.Email = email
		case "role":
			next.Role = value.(models.UserRole)
		case "approved":
			next.Approved = value.(bool)
		case "enabled":
			next.Enabled = value.(bool)
		case "password":
			next.Password = value.(string)
		}
	}
	next.UpdatedAt = s.tick()
	s.users[id] = &next

	out := next
	return &out, nil
}

func (m *MockUserRepository) Delete(ctx context.Context, id uint) error {
	s := m.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.users[id]; !ok {
		return models.ErrUserNotFound
	}
	for articleID, a := range s.articles {
		if a.AuthorID == id {
			delete(s.articles, articleID)
		}
	}
	delete(s.users, id)
	return nil
}

func (m *MockUserRepository) Count(ctx context.Context, filter models.UserFilter) (int64, error) {
	s := m.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	return int64(len(s.filterUsers(filter))), nil
}

func (s *Store) filterUsers(filter models.UserFilter) []*models.User {
	out := make([]*models.User, 0, len(s.users))
	for _, u := range s.users {
		if filter.Role != "" && u.Role != filter.Role {
			continue
		}
		if filter.Approved != nil && u.Approved != *filter.Approved {
			continue
		}
		out = append(out, u)
	}
	return out
}

func (s *Store) listItem(u *models.User) models.UserListItem {
	return models.UserListItem{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		Approved:  u.Approved,
		Enabled:   u.Enabled,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
		Count:     models.ArticleCount{Articles: s.articleCount(u.ID)},
	}
}

type MockArticleRepository struct {
	store *Store
}

func (m *MockArticleRepository) Create(ctx context.Context, article *models.Article) error {
	s := m.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.nextArt++
	now := s.tick()
	article.ID = s.nextArt
	article.CreatedAt = now
	article.UpdatedAt = now
	stored := copyArticle(article)
	stored.Author = nil
	s.articles[article.ID] = &stored
	return nil
}

func (m *MockArticleRepository) GetByID(ctx context.Context, id uint) (*models.Article, error) {
	s := m.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	a, ok := s.articles[id]
	if !ok {
		return nil, models.ErrArticleNotFound
	}
	out := s.withAuthor(a)
	return &out, nil
}

func (m *MockArticleRepository) ListPublished(ctx context.Context, filter models.ArticleFilter, page models.PageRequest) ([]models.Article, int64, error) {
	s := m.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, 0, s.Err
	}

	search := strings.ToLower(filter.Search)
	matched := make([]*models.Article, 0)
	for _, a := range s.sortedArticles(byPublishDesc) {
		if !a.Published {
			continue
		}
		if search != "" && !containsFold(search, a.Title, a.Content, a.Excerpt) {
			continue
		}
		if len(filter.Tags) > 0 && !overlaps(a.Tags, filter.Tags) {
			continue
		}
		if filter.Category != "" && (a.Category == nil || *a.Category != filter.Category) {
			continue
		}
		if filter.Featured != nil && a.Featured != *filter.Featured {
			continue
		}
		matched = append(matched, a)
	}

	return s.project(paginate(matched, page)), int64(len(matched)), nil
}

func (m *MockArticleRepository) ListFeatured(ctx context.Context, limit int) ([]models.Article, error) {
	s := m.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	matched := make([]*models.Article, 0)
	for _, a := range s.sortedArticles(byPublishDesc) {
		if a.Published && a.Featured {
			matched = append(matched, a)
		}
	}
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return s.project(matched), nil
}

func (m *MockArticleRepository) ListByAuthor(ctx context.Context, authorID uint, page models.PageRequest) ([]models.Article, int64, error) {
	s := m.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, 0, s.Err
	}

	matched := make([]*models.Article, 0)
	for _, a := range s.sortedArticles(byCreatedDesc) {
		if a.AuthorID == authorID {
			matched = append(matched, a)
		}
	}
	return s.project(paginate(matched, page)), int64(len(matched)), nil
}

func (m *MockArticleRepository) PublishedTags(ctx context.Context) ([]string, error) {
	s := m.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	seen := map[string]struct{}{}
	tags := make([]string, 0)
	for _, a := range s.articles {
		if !a.Published {
			continue
		}
		for _, tag := range a.Tags {
			if _, ok := seen[tag]; !ok {
				seen[tag] = struct{}{}
				tags = append(tags, tag)
			}
		}
	}
	return tags, nil
}

func (m *MockArticleRepository) PublishedCategories(ctx context.Context) ([]string, error) {
	s := m.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	seen := map[string]struct{}{}
	categories := make([]string, 0)
	for _, a := range s.articles {
		if !a.Published || a.Category == nil {
			continue
		}
		if _, ok := seen[*a.Category]; !ok {
			seen[*a.Category] = struct{}{}
			categories = append(categories, *a.Category)
		}
	}
	return categories, nil
}

func (m *MockArticleRepository) IncrementViews(ctx context.Context, id uint) (int64, error) {
	s := m.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	a, ok := s.articles[id]
	if !ok || !a.Published {
		return 0, models.ErrArticleNotFound
	}
	a.Views++
	return a.Views, nil
}

func (m *MockArticleRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) (*models.Article, error) {
	s := m.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	a, ok := s.articles[id]
	if !ok {
		return nil, models.ErrArticleNotFound
	}

	next := copyArticle(a)
	for key, value := range updates {
		switch key {
		case "title":
			next.Title = value.(string)
		case "content":
			next.Content = value.(string)
		case "excerpt":
			next.Excerpt = value.(string)
		case "category":
			if value == nil {
				next.Category = nil
			} else {
				category := value.(string)
				next.Category = &category
			}
		case "tags":
			next.Tags = append(pq.StringArray{}, value.(pq.StringArray)...)
		case "images":
			next.Images = append(datatypes.JSONSlice[models.Image]{}, value.(datatypes.JSONSlice[models.Image])...)
		case "videos":
			next.Videos = append(datatypes.JSONSlice[models.Video]{}, value.(datatypes.JSONSlice[models.Video])...)
		case "published":
			next.Published = value.(bool)
		case "featured":
			next.Featured = value.(bool)
		case "publish_date":
			if value == nil {
				next.PublishDate = nil
			} else {
				date := value.(time.Time)
				next.PublishDate = &date
			}
		}
	}
	next.UpdatedAt = s.tick()
	s.articles[id] = &next

	out := s.withAuthor(&next)
	return &out, nil
}

func (m *MockArticleRepository) Delete(ctx context.Context, id uint) error {
	s := m.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.articles[id]; !ok {
		return models.ErrArticleNotFound
	}
	delete(s.articles, id)
	return nil
}

func (m *MockArticleRepository) Count(ctx context.Context, published *bool) (int64, error) {
	s := m.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	var n int64
	for _, a := range s.articles {
		if published == nil || a.Published == *published {
			n++
		}
	}
	return n, nil
}

type articleOrder func(a, b *models.Article) bool

func byCreatedDesc(a, b *models.Article) bool {
	if a.CreatedAt.Equal(b.CreatedAt) {
		return a.ID > b.ID
	}
	return a.CreatedAt.After(b.CreatedAt)
}

func byPublishDesc(a, b *models.Article) bool {
	var da, db time.Time
	if a.PublishDate != nil {
		da = *a.PublishDate
	}
	if b.PublishDate != nil {
		db = *b.PublishDate
	}
	if da.Equal(db) {
		return a.ID > b.ID
	}
	return da.After(db)
}

func (s *Store) sortedArticles(less articleOrder) []*models.Article {
	out := make([]*models.Article, 0, len(s.articles))
	for _, a := range s.articles {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

func (s *Store) project(articles []*models.Article) []models.Article {
	out := make([]models.Article, 0, len(articles))
	for _, a := range articles {
		out = append(out, s.withAuthor(a))
	}
	return out
}

func paginate[T any](items []T, page models.PageRequest) []T {
	start := page.Offset()
	if start >= len(items) {
		return nil
	}
	end := start + page.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

func containsFold(needle string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

func overlaps(have pq.StringArray, want []string) bool {
	for _, h := range have {
		for _, w := range want {
			if h == w {
				return true
			}
		}
	}
	return false
}

func copyArticle(a *models.Article) models.Article {
	out := *a
	out.Tags = append(pq.StringArray{}, a.Tags...)
	out.Images = append(datatypes.JSONSlice[models.Image]{}, a.Images...)
	out.Videos = append(datatypes.JSONSlice[models.Video]{}, a.Videos...)
	if a.Category != nil {
		category := *a.Category
		out.Category = &category
	}
	if a.PublishDate != nil {
		date := *a.PublishDate
		out.PublishDate = &date
	}
	return out
}
