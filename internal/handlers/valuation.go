package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"carvaluator/internal/cache"
	"carvaluator/internal/export"
	"carvaluator/internal/extract"
	"carvaluator/internal/llm"
	"carvaluator/internal/middleware"
	"carvaluator/internal/models"
	"carvaluator/internal/util"
	"carvaluator/internal/validation"
)

// Estimator runs valuations and remembers the last run
type Estimator interface {
	Estimate(ctx context.Context, q models.SearchQuery) (*models.Estimate, error)
	Last() *models.Estimate
	LastRecords() []models.VehicleRecord
	HasRun() bool
}

// CacheAdmin inspects and clears the markup cache
type CacheAdmin interface {
	Status() ([]cache.EntryStatus, error)
	Clear() (int, error)
}

// Handler serves the valuation API
type Handler struct {
	estimator Estimator
	cache     CacheAdmin
	throttle  *middleware.ScrapeThrottle
	timeout   time.Duration
}

// NewHandler creates a handler. A nil throttle disables the per-query cooldown and a zero
// timeout leaves requests bounded only by the client.
func NewHandler(estimator Estimator, cacheAdmin CacheAdmin, throttle *middleware.ScrapeThrottle, timeout time.Duration) *Handler {
	return &Handler{
		estimator: estimator,
		cache:     cacheAdmin,
		throttle:  throttle,
		timeout:   timeout,
	}
}

// PostEstimate godoc
// @Summary Estimate the price of a vehicle
// @Description Scrapes marketplace listings for the make and model, extracts comparable vehicles and combines a mileage regression with the average price of listings within 20,000 km. Identical queries are throttled.
// @Tags valuation
// @Accept json
// @Produce json
// @Param query body models.SearchQuery true "Vehicle and search filters"
// @Success 200 {object} models.Estimate
// @Failure 400 {object} map[string]interface{} "Invalid query"
// @Failure 422 {object} map[string]interface{} "Not enough comparable listings"
// @Failure 429 {object} map[string]interface{} "Too many requests"
// @Failure 502 {object} map[string]interface{} "Scrape failed"
// @Failure 504 {object} map[string]interface{} "Scrape timed out"
// @Router /api/estimate [post]
func (h *Handler) PostEstimate(c *gin.Context) {
	var q models.SearchQuery
	if err := c.ShouldBindJSON(&q); err != nil {
		util.SafeErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := validation.ValidateSearchQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	if h.throttle != nil {
		if ok, remaining := h.throttle.Allow(cache.Key(q)); !ok {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"message": "This search was just run, please wait " + strconv.Itoa(int(remaining.Seconds())+1) + "s",
			})
			return
		}
	}

	ctx := c.Request.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	est, err := h.estimator.Estimate(ctx, q)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, est)
	case errors.Is(err, extract.ErrNoComparableData):
		util.SafeErrorResponse(c, http.StatusUnprocessableEntity, "Not enough comparable listings to estimate a price", err)
	case errors.Is(err, context.DeadlineExceeded):
		util.SafeErrorResponse(c, http.StatusGatewayTimeout, "The marketplace took too long to respond", err)
	default:
		util.SafeErrorResponse(c, http.StatusBadGateway, "Failed to collect marketplace listings", err)
	}
}

// GetLastRecordsCSV godoc
// @Summary Download the records of the last run
// @Description Returns the filtered vehicle records of the most recent valuation as CSV (Year,Make,Model,Price,Mileage[,Location]). A run that kept no records yields the header only.
// @Tags valuation
// @Produce text/csv
// @Param location query bool false "Include the Location column (default true)"
// @Success 200 {string} string "CSV file"
// @Failure 404 {object} map[string]interface{} "No valuation has run yet"
// @Router /api/estimate/last/records.csv [get]
func (h *Handler) GetLastRecordsCSV(c *gin.Context) {
	if !h.estimator.HasRun() {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "No valuation has run yet"})
		return
	}

	withLocation := true
	if v := c.Query("location"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			withLocation = b
		}
	}

	records := h.estimator.LastRecords()
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="vehicle_data.csv"`)
	c.Status(http.StatusOK)
	if err := export.WriteCSV(c.Writer, records, withLocation); err != nil {
		c.Error(err)
	}
}

// GetPrompt godoc
// @Summary Preview a rendered prompt
// @Description Renders one of the language model prompts with the given vehicle, without sending it.
// @Tags prompts
// @Produce json
// @Param kind path string true "Prompt kind" Enums(vehicle_generation, price_analysis, market_insights)
// @Param year query int false "Model year"
// @Param make query string false "Make"
// @Param model query string false "Model"
// @Param mileage query int false "Mileage in km"
// @Param city query string false "City"
// @Param context query bool false "Use the extended context variant"
// @Success 200 {object} llm.Prompt
// @Failure 404 {object} map[string]interface{} "Unknown prompt kind"
// @Router /api/prompts/{kind} [get]
func (h *Handler) GetPrompt(c *gin.Context) {
	year, _ := strconv.Atoi(c.Query("year"))
	mileage, _ := strconv.Atoi(c.Query("mileage"))
	includeContext, _ := strconv.ParseBool(c.Query("context"))

	vars := llm.Vars{
		Year:    year,
		Make:    c.Query("make"),
		Model:   c.Query("model"),
		Mileage: mileage,
		City:    c.Query("city"),
	}

	p, err := llm.Build(llm.Kind(c.Param("kind")), vars, llm.BuildOptions{IncludeContext: includeContext})
	if err != nil {
		if errors.Is(err, llm.ErrUnknownKind) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": err.Error(), "kinds": llm.Kinds()})
			return
		}
		util.SafeErrorResponse(c, http.StatusInternalServerError, "Failed to render prompt", err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// GetCacheStatus godoc
// @Summary Get markup cache status
// @Description Lists cached search pages with their age and whether they have expired.
// @Tags admin
// @Produce json
// @Success 200 {object} map[string]interface{} "entries and count"
// @Router /api/cache-status [get]
func (h *Handler) GetCacheStatus(c *gin.Context) {
	entries, err := h.cache.Status()
	if err != nil {
		util.SafeErrorResponse(c, http.StatusInternalServerError, "Failed to read cache", err)
		return
	}

	type entryView struct {
		cache.EntryStatus
		AgeText string `json:"ageText"`
	}
	views := make([]entryView, 0, len(entries))
	for _, e := range entries {
		views = append(views, entryView{EntryStatus: e, AgeText: e.Age.Round(time.Minute).String()})
	}
	c.JSON(http.StatusOK, gin.H{"entries": views, "count": len(views)})
}

// ClearCache godoc
// @Summary Clear the markup cache (Admin Only)
// @Description Deletes every cached search page. Requires admin authentication.
// @Tags admin
// @Security AdminKey
// @Produce json
// @Success 200 {object} map[string]interface{} "removed count"
// @Failure 401 {object} map[string]interface{} "Unauthorized - Admin key required"
// @Router /api/cache/clear [post]
func (h *Handler) ClearCache(c *gin.Context) {
	removed, err := h.cache.Clear()
	if err != nil {
		util.SafeErrorResponse(c, http.StatusInternalServerError, "Failed to clear cache", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "removed": removed})
}

// Health godoc
// @Summary Health check
// @Tags system
// @Produce json
// @Success 200 {object} map[string]string "status: ok"
// @Router /api/health [get]
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// RegisterRoutes mounts the API on r. adminKey guards the cache endpoint.
func (h *Handler) RegisterRoutes(r gin.IRouter, adminKey string) {
	api := r.Group("/api")
	{
		api.POST("/estimate", h.PostEstimate)
		api.GET("/estimate/last/records.csv", h.GetLastRecordsCSV)
		api.GET("/prompts/:kind", h.GetPrompt)
		api.GET("/cache-status", h.GetCacheStatus)
		api.POST("/cache/clear", middleware.AdminKeyMiddleware(adminKey), h.ClearCache)
		api.GET("/health", h.Health)
	}
}
