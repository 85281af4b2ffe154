package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/zahid-akhtar7979/wildlife-api/helper"
	"github.com/zahid-akhtar7979/wildlife-api/middleware"
	"github.com/zahid-akhtar7979/wildlife-api/models"
	"github.com/zahid-akhtar7979/wildlife-api/services"
)

type ArticleHandler struct {
	articleService services.ArticleService
	helper         *helper.HTTPHelper
}

func NewArticleHandler(articleService services.ArticleService, h *helper.HTTPHelper) *ArticleHandler {
	return &ArticleHandler{articleService: articleService, helper: h}
}

func (h *ArticleHandler) GetArticles(c *gin.Context) {
	page, err := h.helper.ParsePagination(c)
	if err != nil {
		h.helper.SendError(c, err)
		return
	}

	featured, err := h.helper.ParseBoolQuery(c, "featured")
	if err != nil {
		h.helper.SendError(c, err)
		return
	}

	filter := models.ArticleFilter{
		Search:   strings.TrimSpace(c.Query("search")),
		Tags:     splitList(c.Query("tags")),
		Category: strings.TrimSpace(c.Query("category")),
		Featured: featured,
	}

	result, err := h.articleService.List(c.Request.Context(), filter, page)
	if err != nil {
		h.helper.SendError(c, err)
		return
	}

	h.helper.SendSuccess(c, "", result)
}

func (h *ArticleHandler) GetFeatured(c *gin.Context) {
	articles, err := h.articleService.Featured(c.Request.Context())
	if err != nil {
		h.helper.SendError(c, err)
		return
	}

	h.helper.SendSuccess(c, "", gin.H{"articles": articles})
}

func (h *ArticleHandler) GetTags(c *gin.Context) {
	tags, err := h.articleService.Tags(c.Request.Context())
	if err != nil {
		h.helper.SendError(c, err)
		return
	}

	h.helper.SendSuccess(c, "", gin.H{"tags": tags})
}

func (h *ArticleHandler) GetCategories(c *gin.Context) {
	categories, err := h.articleService.Categories(c.Request.Context())
	if err != nil {
		h.helper.SendError(c, err)
		return
	}

	h.helper.SendSuccess(c, "", gin.H{"categories": categories})
}

func (h *ArticleHandler) GetArticle(c *gin.Context) {
	id, err := h.helper.ParseID(c, "id")
	if err != nil {
		h.helper.SendError(c, err)
		return
	}

	article, err := h.articleService.Get(c.Request.Context(), id)
	if err != nil {
		h.helper.SendError(c, err)
		return
	}

	h.helper.SendSuccess(c, "", gin.H{"article": article})
}

func (h *ArticleHandler) GetAuthorArticles(c *gin.Context) {
	current, _ := middleware.CurrentUser(c)

	authorID, err := h.helper.ParseID(c, "authorId")
	if err != nil {
		h.helper.SendError(c, err)
		return
	}

	page, err := h.helper.ParsePagination(c)
	if err != nil {
		h.helper.SendError(c, err)
		return
	}

	result, err := h.articleService.ListByAuthor(c.Request.Context(), current, authorID, page)
	if err != nil {
		h.helper.SendError(c, err)
		return
	}

	h.helper.SendSuccess(c, "", result)
}

func (h *ArticleHandler) CreateArticle(c *gin.Context) {
	current, _ := middleware.CurrentUser(c)

	var req models.CreateArticleRequest
	if err := h.helper.BindJSON(c, &req); err != nil {
		h.helper.SendError(c, err)
		return
	}

	article, err := h.articleService.Create(c.Request.Context(), current, req)
	if err != nil {
		h.helper.SendError(c, err)
		return
	}

	h.helper.SendCreated(c, "Article created successfully", gin.H{"article": article})
}

func (h *ArticleHandler) UpdateArticle(c *gin.Context) {
	current, _ := middleware.CurrentUser(c)

	id, err := h.helper.ParseID(c, "id")
	if err != nil {
		h.helper.SendError(c, err)
		return
	}

	var req models.UpdateArticleRequest
	if err := h.helper.BindJSON(c, &req); err != nil {
		h.helper.SendError(c, err)
		return
	}

	article, err := h.articleService.Update(c.Request.Context(), current, id, req)
	if err != nil {
		h.helper.SendError(c, err)
		return
	}

	h.helper.SendSuccess(c, "Article updated successfully", gin.H{"article": article})
}

func (h *ArticleHandler) PublishArticle(c *gin.Context) {
	current, _ := middleware.CurrentUser(c)

	id, err := h.helper.ParseID(c, "id")
	if err != nil {
		h.helper.SendError(c, err)
		return
	}

	var req models.PublishArticleRequest
	if err := h.helper.BindJSON(c, &req); err != nil {
		h.helper.SendError(c, err)
		return
	}

	article, err := h.articleService.SetPublished(c.Request.Context(), current, id, *req.Published)
	if err != nil {
		h.helper.SendError(c, err)
		return
	}

	message := "Article unpublished successfully"
	if *req.Published {
		message = "Article published successfully"
	}
	h.helper.SendSuccess(c, message, gin.H{"article": article})
}

func (h *ArticleHandler) DeleteArticle(c *gin.Context) {
	current, _ := middleware.CurrentUser(c)

	id, err := h.helper.ParseID(c, "id")
	if err != nil {
		h.helper.SendError(c, err)
		return
	}

	if err := h.articleService.Delete(c.Request.Context(), current, id); err != nil {
		h.helper.SendError(c, err)
		return
	}

	h.helper.SendSuccess(c, "Article deleted successfully", nil)
}

// splitList parses a comma separated query value, dropping blanks.
func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
