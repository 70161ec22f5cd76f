package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"stockforum/internal/config"
	"stockforum/internal/models"
)

// SEOHandler serves robots.txt and a dynamically built sitemap covering
// stocks and published articles.
type SEOHandler struct {
	db *gorm.DB
}

// NewSEOHandler creates a new SEOHandler.
func NewSEOHandler(db *gorm.DB) *SEOHandler {
	return &SEOHandler{db: db}
}

// RobotsTxt returns the crawler policy.
func (h *SEOHandler) RobotsTxt(c *gin.Context) {
	siteURL := config.Get().SiteURL
	content := fmt.Sprintf(`User-agent: *
Allow: /

Disallow: /api/

Sitemap: %s/sitemap.xml
`, siteURL)

	c.Header("Content-Type", "text/plain; charset=utf-8")
	c.String(http.StatusOK, content)
}

// SitemapXML builds the sitemap from stock listings and published articles.
func (h *SEOHandler) SitemapXML(c *gin.Context) {
	siteURL := config.Get().SiteURL
	now := time.Now().Format("2006-01-02")

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">` + "\n")

	writeURL := func(loc, lastmod, changefreq, priority string) {
		fmt.Fprintf(&b, "  <url>\n    <loc>%s</loc>\n    <lastmod>%s</lastmod>\n    <changefreq>%s</changefreq>\n    <priority>%s</priority>\n  </url>\n",
			loc, lastmod, changefreq, priority)
	}

	writeURL(siteURL+"/", now, "daily", "1.0")

	var stocks []models.Stock
	if err := h.db.Select("symbol, updated_at").Order("symbol ASC").Find(&stocks).Error; err == nil {
		for _, stock := range stocks {
			writeURL(
				siteURL+"/stocks/"+stock.Symbol,
				stock.UpdatedAt.Format("2006-01-02"),
				"daily",
				"0.8",
			)
		}
	}

	var articles []models.Article
	if err := h.db.Select("slug, updated_at").Where("published = ?", true).Find(&articles).Error; err == nil {
		for _, article := range articles {
			writeURL(
				siteURL+"/articles/"+article.Slug,
				article.UpdatedAt.Format("2006-01-02"),
				"weekly",
				"0.6",
			)
		}
	}

	b.WriteString("</urlset>\n")

	c.Header("Content-Type", "application/xml; charset=utf-8")
	c.String(http.StatusOK, b.String())
}
