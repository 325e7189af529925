package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/goliatone/go-codeclash/internal/content"
	"github.com/goliatone/go-codeclash/internal/generator"
	"github.com/goliatone/go-codeclash/pkg/interfaces"
)

type descriptorResponse struct {
	Category interfaces.Category `json:"category"`
	Slug     string              `json:"slug"`
	Path     string              `json:"path"`
}

type listResponse struct {
	Category interfaces.Category  `json:"category"`
	Entries  []descriptorResponse `json:"entries"`
}

type entryResponse struct {
	Title    string            `json:"title"`
	Entry    *interfaces.Entry `json:"entry"`
	Hydrated string            `json:"hydrated,omitempty"`
}

func toDescriptors(descriptors []interfaces.EntryDescriptor) []descriptorResponse {
	out := make([]descriptorResponse, 0, len(descriptors))
	for _, descriptor := range descriptors {
		out = append(out, descriptorResponse{
			Category: descriptor.Category,
			Slug:     descriptor.Slug,
			Path:     generator.EntryPath(descriptor),
		})
	}
	return out
}

func (s *Server) category(c *gin.Context) (interfaces.Category, bool) {
	category, ok := interfaces.ParseCategory(c.Param("category"))
	if !ok {
		c.AbortWithStatusJSON(http.StatusNotFound, errorResponse{Error: "not_found", Message: "unknown category"})
		return "", false
	}
	return category, true
}

func (s *Server) articles(c *gin.Context) ([]interfaces.EntryDescriptor, bool) {
	entries, err := s.resolver.ListEntries(c.Request.Context(), interfaces.CategoryArticle)
	if err != nil {
		s.logger.Error("server.articles.list_failed", "error", err)
		writeError(c, err)
		return nil, false
	}
	return entries, true
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) listEntries(c *gin.Context) {
	category, ok := s.category(c)
	if !ok {
		return
	}
	entries, err := s.resolver.ListEntries(c.Request.Context(), category)
	if err != nil {
		s.logger.Error("server.list.failed", "category", category.String(), "error", err)
		writeError(c, err)
		return
	}
	sorted := append([]interfaces.EntryDescriptor(nil), entries...)
	content.SortDescriptors(sorted)
	c.JSON(http.StatusOK, listResponse{Category: category, Entries: toDescriptors(sorted)})
}

func (s *Server) resolveEntry(c *gin.Context) {
	category, ok := s.category(c)
	if !ok {
		return
	}
	entry, err := s.resolver.Resolve(c.Request.Context(), category, c.Param("slug"))
	if err != nil {
		if content.KindOf(err) != content.KindNotFound {
			s.logger.Warn("server.resolve.failed", "category", category.String(), "slug", c.Param("slug"), "error", err)
		}
		writeError(c, err)
		return
	}

	response := entryResponse{
		Title: content.DisplayTitle(entry.Descriptor(), entry.Metadata),
		Entry: entry,
	}
	if hydrate(c.Query("hydrate")) {
		articles, ok := s.articles(c)
		if !ok {
			return
		}
		html, err := s.renderer.Body(c.Request.Context(), entry, articles)
		if err != nil {
			s.logger.Warn("server.hydrate.failed", "category", category.String(), "slug", entry.Slug, "error", err)
			c.AbortWithStatusJSON(http.StatusUnprocessableEntity, errorResponse{Error: "unprocessable_entry", Message: err.Error()})
			return
		}
		response.Hydrated = string(html)
	}
	c.JSON(http.StatusOK, response)
}

func (s *Server) related(c *gin.Context) {
	category, ok := s.category(c)
	if !ok {
		return
	}
	if category != interfaces.CategoryArticle {
		c.AbortWithStatusJSON(http.StatusNotFound, errorResponse{Error: "not_found", Message: "related comparisons exist for articles only"})
		return
	}
	current, ok := content.NormalizeSlug(c.Param("slug"))
	if !ok {
		c.AbortWithStatusJSON(http.StatusNotFound, errorResponse{Error: "not_found", Message: "invalid slug"})
		return
	}
	articles, ok := s.articles(c)
	if !ok {
		return
	}
	related := content.FilterRelated(articles, current)
	c.JSON(http.StatusOK, gin.H{"slug": current, "related": toDescriptors(related)})
}

func (s *Server) technologies(c *gin.Context) {
	articles, ok := s.articles(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"technologies": content.Technologies(articles)})
}

func (s *Server) pairings(c *gin.Context) {
	first := strings.TrimSpace(c.Query("first"))
	if first == "" {
		badRequest(c, "first is required")
		return
	}
	articles, ok := s.articles(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"first": first, "pairings": content.FilterAvailablePairings(articles, first)})
}

func (s *Server) compare(c *gin.Context) {
	first := strings.TrimSpace(c.Query("first"))
	second := strings.TrimSpace(c.Query("second"))
	if first == "" || second == "" {
		badRequest(c, "first and second are required")
		return
	}
	articles, ok := s.articles(c)
	if !ok {
		return
	}
	match, err := content.FindComparison(articles, first, second)
	if err != nil {
		writeError(c, err)
		return
	}
	c.Redirect(http.StatusFound, generator.EntryPath(match))
}

func (s *Server) sitemap(c *gin.Context) {
	var all []interfaces.EntryDescriptor
	for _, category := range interfaces.Categories() {
		entries, err := s.resolver.ListEntries(c.Request.Context(), category)
		if err != nil {
			s.logger.Warn("server.sitemap.list_failed", "category", category.String(), "error", err)
			continue
		}
		all = append(all, entries...)
	}
	c.Data(http.StatusOK, "application/xml; charset=utf-8", []byte(generator.Sitemap(s.cfg.BaseURL, all)))
}

func hydrate(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes":
		return true
	}
	return false
}
