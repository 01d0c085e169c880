package controllers

import (
	"net/http"
	"strconv"

	"partner-portal-api/services"

	"github.com/gin-gonic/gin"
)

// StatisticsController exposes the reviewer-side period statistics intake.
type StatisticsController struct {
	stats *services.StatisticsService
}

func NewStatisticsController(stats *services.StatisticsService) *StatisticsController {
	return &StatisticsController{stats: stats}
}

type SiteStatsRequest struct {
	Month string                    `json:"month" binding:"required"`
	Year  int                       `json:"year" binding:"required"`
	Items []services.SiteStockInput `json:"items"`
}

// SaveSiteStats ingests one month of per-site stock counts and persists them
// with derived new-arrival flows.
func (ctl *StatisticsController) SaveSiteStats(c *gin.Context) {
	var req SiteStatsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	records, err := ctl.stats.SaveSiteStats(req.Month, req.Year, req.Items)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": records})
}

// ListSiteStats returns the persisted site records for one period.
func (ctl *StatisticsController) ListSiteStats(c *gin.Context) {
	year, _ := strconv.Atoi(c.Query("year"))
	records, err := ctl.stats.ListSiteStats(c.Query("month"), year)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": records})
}

type ProvinceStatsRequest struct {
	Month string `json:"month" binding:"required"`
	Year  int    `json:"year" binding:"required"`
	services.ProvinceStatInput
}

// SaveProvinceStats ingests the province-wide totals for one period.
func (ctl *StatisticsController) SaveProvinceStats(c *gin.Context) {
	var req ProvinceStatsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := ctl.stats.SaveProvinceStats(req.Month, req.Year, req.ProvinceStatInput)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"record": record})
}

// ListProvinceStats returns the province records for one year.
func (ctl *StatisticsController) ListProvinceStats(c *gin.Context) {
	year, _ := strconv.Atoi(c.Query("year"))
	records, err := ctl.stats.ListProvinceStats(year)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": records})
}
