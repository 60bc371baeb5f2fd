package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"folio/internal/portfolio"
)

// PortfolioHandler serves the whole site and its two singleton sections.
type PortfolioHandler struct {
	site *portfolio.Site
}

// NewPortfolioHandler 构造站点处理器。
func NewPortfolioHandler(site *portfolio.Site) *PortfolioHandler {
	return &PortfolioHandler{site: site}
}

// GetPortfolio 返回全部分区，顺序与页面展示一致。
func (h *PortfolioHandler) GetPortfolio(c *gin.Context) {
	c.JSON(http.StatusOK, h.site.Snapshot())
}

func (h *PortfolioHandler) GetHero(c *gin.Context) {
	c.JSON(http.StatusOK, h.site.Hero())
}

// PutHero replaces the hero section wholesale.
func (h *PortfolioHandler) PutHero(c *gin.Context) {
	var hero portfolio.Hero
	if err := c.ShouldBindJSON(&hero); err != nil {
		BadRequest(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, h.site.SetHero(c.Request.Context(), hero))
}

func (h *PortfolioHandler) ResetHero(c *gin.Context) {
	c.JSON(http.StatusOK, h.site.ResetHero(c.Request.Context()))
}

func (h *PortfolioHandler) GetAbout(c *gin.Context) {
	c.JSON(http.StatusOK, h.site.About())
}

// PutAbout replaces all three about paragraphs.
func (h *PortfolioHandler) PutAbout(c *gin.Context) {
	var about portfolio.About
	if err := c.ShouldBindJSON(&about); err != nil {
		BadRequest(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, h.site.SetAbout(c.Request.Context(), about))
}

func (h *PortfolioHandler) ResetAbout(c *gin.Context) {
	c.JSON(http.StatusOK, h.site.ResetAbout(c.Request.Context()))
}

// GetAchievements and GetContact expose the static sections.
func (h *PortfolioHandler) GetAchievements(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"items": portfolio.Achievements()})
}

func (h *PortfolioHandler) GetContact(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"items": portfolio.ContactLinks()})
}
