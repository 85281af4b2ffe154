package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/suite"

	"github.com/zahid-akhtar7979/wildlife-api/config"
	"github.com/zahid-akhtar7979/wildlife-api/helper"
	"github.com/zahid-akhtar7979/wildlife-api/media"
	"github.com/zahid-akhtar7979/wildlife-api/mocks"
	"github.com/zahid-akhtar7979/wildlife-api/models"
	"github.com/zahid-akhtar7979/wildlife-api/services"
	"github.com/zahid-akhtar7979/wildlife-api/validation"
)

type envelope struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Data    json.RawMessage     `json:"data"`
	Errors  []models.FieldError `json:"errors"`
}

type failingHealth struct{}

func (failingHealth) HealthCheck(context.Context) error { return errors.New("down") }

type RouterTestSuite struct {
	suite.Suite
	ctx        context.Context
	store      *mocks.Store
	gateway    *mocks.MockGateway
	svc        *services.Services
	router     *gin.Engine
	adminToken string
}

func (s *RouterTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.ctx = context.Background()
	s.store = mocks.NewStore()
	s.gateway = mocks.NewMockGateway()

	cfg := &config.Config{
		JWT: config.JWTConfig{Secret: []byte("test-secret"), Expiration: time.Hour, Issuer: "wildlife-api-test"},
	}
	urls, err := media.NewURLBuilder("demo")
	s.Require().NoError(err)
	s.svc = &services.Services{
		Auth:     services.NewAuthService(s.store.Users(), cfg.JWT),
		Users:    services.NewUserService(s.store.Users(), s.store.Articles()),
		Articles: services.NewArticleService(s.store.Articles(), urls),
		Media:    services.NewMediaService(s.gateway, urls),
	}
	h := helper.NewHTTPHelper(validation.MustNew(), zerolog.Nop())
	s.router = NewRouter(s.svc, h, cfg, nil, zerolog.Nop())

	s.createAccount("admin@example.com", models.RoleAdmin)
	s.adminToken = s.login("admin@example.com")
}

func (s *RouterTestSuite) createAccount(email string, role models.UserRole) *models.User {
	user, err := s.svc.Users.Create(s.ctx, models.CreateUserRequest{
		Name: "Account " + email, Email: email, Password: "secret1", Role: role,
	})
	s.Require().NoError(err)
	return user
}

func (s *RouterTestSuite) login(email string) string {
	w := s.request(http.MethodPost, "/api/auth/login", "", map[string]string{"email": email, "password": "secret1"})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var res models.AuthResponse
	s.decodeData(w, &res)
	return res.Token
}

func (s *RouterTestSuite) request(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		payload, err := json.Marshal(b)
		s.Require().NoError(err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *RouterTestSuite) decode(w *httptest.ResponseRecorder) envelope {
	var env envelope
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func (s *RouterTestSuite) decodeData(w *httptest.ResponseRecorder, out interface{}) {
	env := s.decode(w)
	s.Require().True(env.Success, w.Body.String())
	s.Require().NoError(json.Unmarshal(env.Data, out))
}

func (s *RouterTestSuite) createArticle(token string, body map[string]interface{}) models.Article {
	if _, ok := body["title"]; !ok {
		body["title"] = "Snow leopards of Ladakh"
	}
	if _, ok := body["excerpt"]; !ok {
		body["excerpt"] = "Tracking the ghost of the mountains."
	}
	w := s.request(http.MethodPost, "/api/articles", token, body)
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var data struct {
		Article models.Article `json:"article"`
	}
	s.decodeData(w, &data)
	return data.Article
}

func (s *RouterTestSuite) TestHealth() {
	w := s.request(http.MethodGet, "/health", "", nil)
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), `"status":"OK"`)

	cfg := &config.Config{}
	h := helper.NewHTTPHelper(validation.MustNew(), zerolog.Nop())
	degraded := NewRouter(s.svc, h, cfg, failingHealth{}, zerolog.Nop())
	rec := httptest.NewRecorder()
	degraded.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	s.Equal(http.StatusServiceUnavailable, rec.Code)
}

func (s *RouterTestSuite) TestUnknownRoute() {
	w := s.request(http.MethodGet, "/api/nowhere", "", nil)
	s.Equal(http.StatusNotFound, w.Code)
	s.Equal("API endpoint not found", s.decode(w).Message)
}

func (s *RouterTestSuite) TestProtectedRoutesRequireToken() {
	before, err := s.store.Articles().Count(s.ctx, nil)
	s.Require().NoError(err)

	routes := []struct{ method, path string }{
		{http.MethodGet, "/api/auth/me"},
		{http.MethodPost, "/api/articles"},
		{http.MethodPut, "/api/articles/1"},
		{http.MethodPatch, "/api/articles/1/publish"},
		{http.MethodDelete, "/api/articles/1"},
		{http.MethodGet, "/api/articles/author/1"},
		{http.MethodGet, "/api/users"},
		{http.MethodDelete, "/api/users/1"},
		{http.MethodPost, "/api/upload/image"},
		{http.MethodDelete, "/api/upload/delete/abc"},
	}
	for _, r := range routes {
		w := s.request(r.method, r.path, "", `{"title":"Never created article","excerpt":"Never created excerpt"}`)
		s.Equal(http.StatusUnauthorized, w.Code, "%s %s", r.method, r.path)
		s.Equal("Access token required", s.decode(w).Message)
	}

	after, err := s.store.Articles().Count(s.ctx, nil)
	s.Require().NoError(err)
	s.Equal(before, after)
	s.Empty(s.gateway.Uploads)
}

func (s *RouterTestSuite) TestRegistrationIsPendingUntilApproved() {
	w := s.request(http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "  New Writer ", "email": "new@example.com", "password": "secret1",
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	s.NotContains(w.Body.String(), "password")
	s.NotContains(w.Body.String(), "token")

	var data struct {
		User models.User `json:"user"`
	}
	s.decodeData(w, &data)
	s.Equal("New Writer", data.User.Name)
	s.False(data.User.Approved)

	w = s.request(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "new@example.com", "password": "secret1"})
	s.Equal(http.StatusForbidden, w.Code)

	path := fmt.Sprintf("/api/users/%d/approve", data.User.ID)
	w = s.request(http.MethodPatch, path, s.adminToken, map[string]bool{"approved": true})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.Equal("User approved successfully", s.decode(w).Message)

	token := s.login("new@example.com")
	w = s.request(http.MethodGet, "/api/auth/me", token, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), `"email":"new@example.com"`)

	w = s.request(http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "Dup", "email": "new@example.com", "password": "secret1",
	})
	s.Equal(http.StatusConflict, w.Code)
}

func (s *RouterTestSuite) TestInactiveAccountsAreForbidden() {
	writer := s.createAccount("writer@example.com", models.RoleContributor)
	token := s.login("writer@example.com")

	w := s.request(http.MethodPut, fmt.Sprintf("/api/users/%d", writer.ID), s.adminToken, map[string]bool{"enabled": false})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	w = s.request(http.MethodGet, "/api/auth/me", token, nil)
	s.Equal(http.StatusForbidden, w.Code)

	w = s.request(http.MethodPut, fmt.Sprintf("/api/users/%d", writer.ID), s.adminToken, map[string]bool{"enabled": true, "approved": false})
	s.Require().Equal(http.StatusOK, w.Code)

	w = s.request(http.MethodPost, "/api/articles", token, map[string]string{"title": "Valid title", "excerpt": "Valid excerpt text"})
	s.Equal(http.StatusForbidden, w.Code)
}

func (s *RouterTestSuite) TestDraftsAreHiddenAndNotCounted() {
	s.createAccount("writer@example.com", models.RoleContributor)
	token := s.login("writer@example.com")
	draft := s.createArticle(token, map[string]interface{}{})

	for _, bearer := range []string{"", token} {
		w := s.request(http.MethodGet, fmt.Sprintf("/api/articles/%d", draft.ID), bearer, nil)
		s.Equal(http.StatusNotFound, w.Code)
		s.Equal("Article not found", s.decode(w).Message)
	}

	stored, err := s.store.Articles().GetByID(s.ctx, draft.ID)
	s.Require().NoError(err)
	s.Zero(stored.Views)
}

func (s *RouterTestSuite) TestConcurrentFetchesIncrementViewsExactly() {
	s.createAccount("writer@example.com", models.RoleContributor)
	token := s.login("writer@example.com")
	article := s.createArticle(token, map[string]interface{}{"published": true})

	const readers = 25
	seen := make(chan int64, readers)
	var wg sync.WaitGroup
	wg.Add(readers)
	for i := 0; i < readers; i++ {
		go func() {
			defer wg.Done()
			req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/articles/%d", article.ID), nil)
			w := httptest.NewRecorder()
			s.router.ServeHTTP(w, req)

			var env envelope
			if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
				return
			}
			var data struct {
				Article models.Article `json:"article"`
			}
			if err := json.Unmarshal(env.Data, &data); err != nil {
				return
			}
			seen <- data.Article.Views
		}()
	}
	wg.Wait()
	close(seen)

	values := map[int64]bool{}
	for v := range seen {
		values[v] = true
	}
	s.Len(values, readers)
	for i := int64(1); i <= readers; i++ {
		s.True(values[i], "missing view count %d", i)
	}

	stored, err := s.store.Articles().GetByID(s.ctx, article.ID)
	s.Require().NoError(err)
	s.Equal(int64(readers), stored.Views)
}

func (s *RouterTestSuite) TestPublishStateInvariant() {
	s.createAccount("writer@example.com", models.RoleContributor)
	token := s.login("writer@example.com")

	check := func(a models.Article) {
		s.Equal(a.Published, a.PublishDate != nil, "published=%v publishDate=%v", a.Published, a.PublishDate)
	}

	article := s.createArticle(token, map[string]interface{}{"published": true})
	check(article)

	path := fmt.Sprintf("/api/articles/%d", article.ID)
	for _, body := range []interface{}{
		map[string]bool{"published": false},
		map[string]bool{"published": true},
		map[string]bool{"published": true},
	} {
		w := s.request(http.MethodPatch, path+"/publish", token, body)
		s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
		var data struct {
			Article models.Article `json:"article"`
		}
		s.decodeData(w, &data)
		check(data.Article)
	}

	w := s.request(http.MethodPut, path, token, map[string]bool{"published": false})
	s.Require().Equal(http.StatusOK, w.Code)
	var data struct {
		Article models.Article `json:"article"`
	}
	s.decodeData(w, &data)
	check(data.Article)

	w = s.request(http.MethodPatch, path+"/publish", token, map[string]string{})
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("published", s.decode(w).Errors[0].Field)
}

func (s *RouterTestSuite) TestPartialUpdateKeepsOtherFields() {
	s.createAccount("writer@example.com", models.RoleContributor)
	token := s.login("writer@example.com")
	article := s.createArticle(token, map[string]interface{}{
		"content":   "<p>Body</p>",
		"category":  "Big Cats",
		"tags":      []string{"leopard", "himalaya"},
		"published": true,
	})

	w := s.request(http.MethodPut, fmt.Sprintf("/api/articles/%d", article.ID), token, map[string]bool{"featured": true})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var data struct {
		Article models.Article `json:"article"`
	}
	s.decodeData(w, &data)
	updated := data.Article

	s.True(updated.Featured)
	s.Equal(article.Title, updated.Title)
	s.Equal(article.Content, updated.Content)
	s.Equal(article.Excerpt, updated.Excerpt)
	s.Equal(article.Tags, updated.Tags)
	s.Equal(article.Category, updated.Category)
	s.Equal(article.Published, updated.Published)
	s.Require().NotNil(updated.PublishDate)
	s.True(article.PublishDate.Equal(*updated.PublishDate))

	w = s.request(http.MethodPut, fmt.Sprintf("/api/articles/%d", article.ID), token, `{"category":null}`)
	s.Require().Equal(http.StatusOK, w.Code)
	s.decodeData(w, &data)
	s.Nil(data.Article.Category)
}

// Scenario: an approved contributor posts an article with a four letter title.
func (s *RouterTestSuite) TestShortTitleIsRejected() {
	s.createAccount("a@example.com", models.RoleContributor)
	token := s.login("a@example.com")

	w := s.request(http.MethodPost, "/api/articles", token, map[string]string{
		"title": "Tigr", "excerpt": "A perfectly fine excerpt",
	})
	s.Require().Equal(http.StatusBadRequest, w.Code)

	env := s.decode(w)
	s.False(env.Success)
	s.Equal("Validation errors", env.Message)
	s.Require().Len(env.Errors, 1)
	s.Equal("title", env.Errors[0].Field)

	total, err := s.store.Articles().Count(s.ctx, nil)
	s.Require().NoError(err)
	s.Zero(total)
}

// Scenario: another contributor tries to edit someone else's draft.
func (s *RouterTestSuite) TestEditingAnotherContributorsArticleIsForbidden() {
	s.createAccount("a@example.com", models.RoleContributor)
	s.createAccount("b@example.com", models.RoleContributor)
	article := s.createArticle(s.login("a@example.com"), map[string]interface{}{})

	w := s.request(http.MethodPut, fmt.Sprintf("/api/articles/%d", article.ID), s.login("b@example.com"),
		map[string]string{"title": "Hijacked title"})
	s.Equal(http.StatusForbidden, w.Code)
	s.Equal("You can only edit your own articles", s.decode(w).Message)

	w = s.request(http.MethodPut, fmt.Sprintf("/api/articles/%d", article.ID), s.adminToken,
		map[string]string{"title": "Edited by admin"})
	s.Equal(http.StatusOK, w.Code)
}

// Scenario: an account created by an admin tries to delete itself.
func (s *RouterTestSuite) TestAccountCannotDeleteItself() {
	w := s.request(http.MethodPost, "/api/users", s.adminToken, map[string]string{
		"name": "Carol", "email": "c@example.com", "password": "secret1", "role": "ADMIN",
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var data struct {
		User models.User `json:"user"`
	}
	s.decodeData(w, &data)
	s.True(data.User.Approved)

	w = s.request(http.MethodDelete, fmt.Sprintf("/api/users/%d", data.User.ID), s.login("c@example.com"), nil)
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("You cannot delete your own account", s.decode(w).Message)

	s.createAccount("writer@example.com", models.RoleContributor)
	w = s.request(http.MethodDelete, fmt.Sprintf("/api/users/%d", data.User.ID), s.login("writer@example.com"), nil)
	s.Equal(http.StatusForbidden, w.Code)
}

// Scenario: anonymous featured listing over eight featured articles.
func (s *RouterTestSuite) TestFeaturedListingPagination() {
	s.createAccount("writer@example.com", models.RoleContributor)
	token := s.login("writer@example.com")
	for i := 0; i < 8; i++ {
		s.createArticle(token, map[string]interface{}{"published": true, "featured": true})
	}
	s.createArticle(token, map[string]interface{}{"published": true})

	w := s.request(http.MethodGet, "/api/articles?featured=true&page=1&limit=5", "", nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var page models.ArticlePage
	s.decodeData(w, &page)
	s.Len(page.Articles, 5)
	s.Equal(models.Pagination{Current: 1, Pages: 2, Total: 8, HasNext: true, HasPrev: false}, page.Pagination)
	for _, a := range page.Articles {
		s.Require().NotNil(a.Author)
		s.Equal("writer@example.com", a.Author.Email)
	}

	w = s.request(http.MethodGet, "/api/articles?featured=true&page=2&limit=5", "", nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var second models.ArticlePage
	s.decodeData(w, &second)
	s.Len(second.Articles, 3)
	s.Equal(models.Pagination{Current: 2, Pages: 2, Total: 8, HasNext: false, HasPrev: true}, second.Pagination)

	seen := map[uint]bool{}
	for _, a := range append(page.Articles, second.Articles...) {
		s.False(seen[a.ID], "article %d listed twice", a.ID)
		seen[a.ID] = true
	}
	s.Len(seen, 8)

	w = s.request(http.MethodGet, "/api/articles/featured", "", nil)
	var featured struct {
		Articles []models.Article `json:"articles"`
	}
	s.decodeData(w, &featured)
	s.Len(featured.Articles, 6)
}

func (s *RouterTestSuite) TestListingRejectsBadQuery() {
	for _, query := range []string{"page=0", "limit=100", "limit=abc", "featured=maybe"} {
		w := s.request(http.MethodGet, "/api/articles?"+query, "", nil)
		s.Equal(http.StatusBadRequest, w.Code, query)
	}

	w := s.request(http.MethodGet, "/api/users?role=EDITOR", s.adminToken, nil)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *RouterTestSuite) TestFacets() {
	s.createAccount("writer@example.com", models.RoleContributor)
	token := s.login("writer@example.com")
	s.createArticle(token, map[string]interface{}{"published": true, "tags": []string{"tiger", "india"}, "category": "Big Cats"})
	s.createArticle(token, map[string]interface{}{"tags": []string{"draft-only"}, "category": "Hidden"})

	w := s.request(http.MethodGet, "/api/articles/tags", "", nil)
	s.JSONEq(`{"success":true,"data":{"tags":["india","tiger"]}}`, w.Body.String())

	w = s.request(http.MethodGet, "/api/articles/categories", "", nil)
	s.JSONEq(`{"success":true,"data":{"categories":["Big Cats"]}}`, w.Body.String())
}

func (s *RouterTestSuite) TestAuthorListingIncludesDrafts() {
	writer := s.createAccount("writer@example.com", models.RoleContributor)
	s.createAccount("other@example.com", models.RoleContributor)
	token := s.login("writer@example.com")
	s.createArticle(token, map[string]interface{}{})
	s.createArticle(token, map[string]interface{}{"published": true})

	path := fmt.Sprintf("/api/articles/author/%d", writer.ID)

	w := s.request(http.MethodGet, path, token, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var page models.ArticlePage
	s.decodeData(w, &page)
	s.Equal(int64(2), page.Pagination.Total)

	w = s.request(http.MethodGet, path, s.login("other@example.com"), nil)
	s.Equal(http.StatusForbidden, w.Code)
}

func (s *RouterTestSuite) TestUserDirectory() {
	writer := s.createAccount("writer@example.com", models.RoleContributor)
	s.createArticle(s.login("writer@example.com"), map[string]interface{}{})

	w := s.request(http.MethodGet, "/api/users?role=CONTRIBUTOR", s.adminToken, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var page models.UserPage
	s.decodeData(w, &page)
	s.Require().Len(page.Users, 1)
	s.Equal(int64(1), page.Users[0].Count.Articles)
	s.Contains(w.Body.String(), `"_count":{"articles":1}`)

	w = s.request(http.MethodGet, "/api/users/stats", s.adminToken, nil)
	s.JSONEq(`{"success":true,"data":{"users":{"total":2,"pending":0,"admins":1,"contributors":1},"articles":{"total":1,"published":0,"drafts":1}}}`, w.Body.String())

	w = s.request(http.MethodGet, fmt.Sprintf("/api/users/%d", writer.ID), s.adminToken, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.NotContains(w.Body.String(), "password")

	w = s.request(http.MethodPatch, fmt.Sprintf("/api/users/%d/reset-password", writer.ID), s.adminToken, map[string]string{"newPassword": "123"})
	s.Equal(http.StatusBadRequest, w.Code)

	w = s.request(http.MethodPatch, fmt.Sprintf("/api/users/%d/reset-password", writer.ID), s.adminToken, map[string]string{"newPassword": "changed1"})
	s.Require().Equal(http.StatusOK, w.Code)

	w = s.request(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "writer@example.com", "password": "changed1"})
	s.Equal(http.StatusOK, w.Code)

	w = s.request(http.MethodDelete, fmt.Sprintf("/api/users/%d", writer.ID), s.adminToken, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	total, err := s.store.Articles().Count(s.ctx, nil)
	s.Require().NoError(err)
	s.Zero(total)

	w = s.request(http.MethodGet, "/api/users/999", s.adminToken, nil)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *RouterTestSuite) TestAdminCannotDisableSelf() {
	admin, err := s.store.Users().GetByEmail(s.ctx, "admin@example.com")
	s.Require().NoError(err)

	w := s.request(http.MethodPut, fmt.Sprintf("/api/users/%d", admin.ID), s.adminToken, map[string]bool{"enabled": false})
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("You cannot disable your own account", s.decode(w).Message)
}

func (s *RouterTestSuite) multipartRequest(path, token string, files map[string][]string, fields map[string]string) *httptest.ResponseRecorder {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for field, contentTypes := range files {
		for i, contentType := range contentTypes {
			header := make(textproto.MIMEHeader)
			header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename="file-%d"`, field, i))
			header.Set("Content-Type", contentType)
			part, err := writer.CreatePart(header)
			s.Require().NoError(err)
			_, err = part.Write([]byte("binary"))
			s.Require().NoError(err)
		}
	}
	for k, v := range fields {
		s.Require().NoError(writer.WriteField(k, v))
	}
	s.Require().NoError(writer.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *RouterTestSuite) TestUploads() {
	s.createAccount("writer@example.com", models.RoleContributor)
	token := s.login("writer@example.com")

	w := s.multipartRequest("/api/upload/image", token, map[string][]string{"image": {"image/jpeg"}}, map[string]string{"caption": "Tiger"})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var imageData struct {
		Image models.Image `json:"image"`
	}
	s.decodeData(w, &imageData)
	s.Equal("Tiger", imageData.Image.Caption)
	s.Require().NotNil(imageData.Image.Sizes)

	w = s.multipartRequest("/api/upload/image", token, map[string][]string{"image": {"text/plain"}}, nil)
	s.Equal(http.StatusBadRequest, w.Code)

	w = s.multipartRequest("/api/upload/image", token, nil, nil)
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("No image file provided", s.decode(w).Errors[0].Message)

	w = s.multipartRequest("/api/upload/video", token, map[string][]string{"video": {"video/mp4"}}, nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.Contains(w.Body.String(), `"thumbnail":"https://res.cloudinary.com/demo/video/upload/`)

	w = s.multipartRequest("/api/upload/multiple-images", token, map[string][]string{"images": {"image/png", "image/webp"}}, nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.Equal("2 images uploaded successfully", s.decode(w).Message)

	w = s.request(http.MethodDelete, "/api/upload/delete/"+imageData.Image.ID, token, nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	w = s.request(http.MethodDelete, "/api/upload/delete/"+imageData.Image.ID, token, nil)
	s.Equal(http.StatusNotFound, w.Code)

	w = s.request(http.MethodDelete, "/api/upload/delete/x?resourceType=audio", token, nil)
	s.Equal(http.StatusBadRequest, w.Code)

	w = s.request(http.MethodPost, "/api/upload/transform-image/wildlife_1_abc", token, map[string]interface{}{"width": 400, "crop": "fill"})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.Contains(w.Body.String(), "c_fill,f_auto,h_600,q_auto:good,w_400/wildlife_1_abc")

	w = s.request(http.MethodPost, "/api/upload/transform-image/wildlife_1_abc", token, nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	w = s.request(http.MethodPost, "/api/upload/transform-image/wildlife_1_abc", token, map[string]string{"quality": "auto/e_pixelate:50"})
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("quality", s.decode(w).Errors[0].Field)
}

func TestRouterTestSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}
