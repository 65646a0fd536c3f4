package delivery

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"adrec/internal/usecase"
	"adrec/pkg/logger"
	"adrec/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// handles HTTP requests
type HTTPHandlers struct {
	service *usecase.Service
	logger  *logger.Logger
	metrics *metrics.Metrics
}

// creates new HTTP handlers
func NewHTTPHandlers(service *usecase.Service, logger *logger.Logger, metrics *metrics.Metrics) *HTTPHandlers {
	return &HTTPHandlers{
		service: service,
		logger:  logger,
		metrics: metrics,
	}
}

// GetRecommendations serves channel recommendations for a role and optional
// industry, with predicted outcomes when a budget is given.
func (h *HTTPHandlers) GetRecommendations(c *gin.Context) {
	h.metrics.IncHTTPRequestsInFlight()
	defer h.metrics.DecHTTPRequestsInFlight()

	requestID := c.GetString("request_id")
	ctx := c.Request.Context()

	role := c.Query("role")
	if role == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":      "Missing required parameter",
			"message":    "role parameter is required",
			"request_id": requestID,
		})
		return
	}
	industry := c.Query("industry")

	budget, err := parseFloatParam(c, "budget", 0)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":      "Invalid parameters",
			"message":    err.Error(),
			"request_id": requestID,
		})
		return
	}
	campaignDays, err := parseIntParam(c, "campaign_days", 30)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":      "Invalid parameters",
			"message":    err.Error(),
			"request_id": requestID,
		})
		return
	}

	engine, err := h.service.Engine()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":      "Engine not ready",
			"message":    err.Error(),
			"request_id": requestID,
		})
		return
	}

	rec, err := engine.GetRecommendations(ctx, role, industry, budget, campaignDays)
	if err != nil {
		h.logger.WithContext(ctx).WithError(err).Error("Failed to get recommendations")
		c.JSON(http.StatusBadGateway, gin.H{
			"error":      "Failed to resolve similar combinations",
			"message":    err.Error(),
			"request_id": requestID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":       rec,
		"request_id": requestID,
	})
}

// GetBudgetRecommendation serves budget tiers for a role and optional industry.
func (h *HTTPHandlers) GetBudgetRecommendation(c *gin.Context) {
	h.metrics.IncHTTPRequestsInFlight()
	defer h.metrics.DecHTTPRequestsInFlight()

	requestID := c.GetString("request_id")
	ctx := c.Request.Context()

	role := c.Query("role")
	if role == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":      "Missing required parameter",
			"message":    "role parameter is required",
			"request_id": requestID,
		})
		return
	}

	campaignDays, err := parseIntParam(c, "campaign_days", 30)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":      "Invalid parameters",
			"message":    err.Error(),
			"request_id": requestID,
		})
		return
	}

	engine, err := h.service.Engine()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":      "Engine not ready",
			"message":    err.Error(),
			"request_id": requestID,
		})
		return
	}

	rec := engine.GetBudgetRecommendation(ctx, role, c.Query("industry"), campaignDays)

	c.JSON(http.StatusOK, gin.H{
		"data":       rec,
		"request_id": requestID,
	})
}

// CompareBudgets serves budget tiers for several roles side by side.
func (h *HTTPHandlers) CompareBudgets(c *gin.Context) {
	h.metrics.IncHTTPRequestsInFlight()
	defer h.metrics.DecHTTPRequestsInFlight()

	requestID := c.GetString("request_id")

	rolesParam := c.Query("roles")
	if rolesParam == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":      "Missing required parameter",
			"message":    "roles parameter is required (comma-separated)",
			"request_id": requestID,
		})
		return
	}
	var roles []string
	for _, role := range strings.Split(rolesParam, ",") {
		if role = strings.TrimSpace(role); role != "" {
			roles = append(roles, role)
		}
	}

	campaignDays, err := parseIntParam(c, "campaign_days", 30)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":      "Invalid parameters",
			"message":    err.Error(),
			"request_id": requestID,
		})
		return
	}

	engine, err := h.service.Engine()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":      "Engine not ready",
			"message":    err.Error(),
			"request_id": requestID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":       engine.CompareBudgets(roles, campaignDays),
		"request_id": requestID,
	})
}

// ListKeys returns every matching key known to the current snapshot.
func (h *HTTPHandlers) ListKeys(c *gin.Context) {
	h.metrics.IncHTTPRequestsInFlight()
	defer h.metrics.DecHTTPRequestsInFlight()

	requestID := c.GetString("request_id")

	engine, err := h.service.Engine()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":      "Engine not ready",
			"message":    err.Error(),
			"request_id": requestID,
		})
		return
	}

	keys := engine.KnownKeys()
	c.JSON(http.StatusOK, gin.H{
		"data":       keys,
		"total":      len(keys),
		"request_id": requestID,
	})
}

// ListIndustries returns every industry with statistics.
func (h *HTTPHandlers) ListIndustries(c *gin.Context) {
	h.metrics.IncHTTPRequestsInFlight()
	defer h.metrics.DecHTTPRequestsInFlight()

	requestID := c.GetString("request_id")

	engine, err := h.service.Engine()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":      "Engine not ready",
			"message":    err.Error(),
			"request_id": requestID,
		})
		return
	}

	industries := engine.Industries()
	c.JSON(http.StatusOK, gin.H{
		"data":       industries,
		"total":      len(industries),
		"request_id": requestID,
	})
}

// ListRolesForIndustry returns the roles with statistics in one industry.
func (h *HTTPHandlers) ListRolesForIndustry(c *gin.Context) {
	h.metrics.IncHTTPRequestsInFlight()
	defer h.metrics.DecHTTPRequestsInFlight()

	requestID := c.GetString("request_id")

	industry := c.Query("industry")
	if industry == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":      "Missing required parameter",
			"message":    "industry parameter is required",
			"request_id": requestID,
		})
		return
	}

	engine, err := h.service.Engine()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":      "Engine not ready",
			"message":    err.Error(),
			"request_id": requestID,
		})
		return
	}

	roles := engine.RolesForIndustry(industry)
	c.JSON(http.StatusOK, gin.H{
		"data":       roles,
		"total":      len(roles),
		"request_id": requestID,
	})
}

// GetSummary returns per-industry aggregates over the loaded snapshot.
func (h *HTTPHandlers) GetSummary(c *gin.Context) {
	h.metrics.IncHTTPRequestsInFlight()
	defer h.metrics.DecHTTPRequestsInFlight()

	requestID := c.GetString("request_id")

	engine, err := h.service.Engine()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":      "Engine not ready",
			"message":    err.Error(),
			"request_id": requestID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":       engine.IndustrySummary(),
		"request_id": requestID,
	})
}

// Rebuild reloads campaign records and swaps in a fresh engine.
func (h *HTTPHandlers) Rebuild(c *gin.Context) {
	h.metrics.IncHTTPRequestsInFlight()
	defer h.metrics.DecHTTPRequestsInFlight()

	requestID := c.GetString("request_id")
	ctx := c.Request.Context()

	start := time.Now()
	if err := h.service.Rebuild(ctx); err != nil {
		h.logger.WithContext(ctx).WithError(err).Error("Engine rebuild failed")
		c.JSON(http.StatusBadGateway, gin.H{
			"error":      "Rebuild failed",
			"message":    err.Error(),
			"request_id": requestID,
		})
		return
	}

	engine, _ := h.service.Engine()
	response := gin.H{
		"message":    "Engine rebuilt successfully",
		"duration":   time.Since(start).String(),
		"request_id": requestID,
	}
	if engine != nil {
		response["records"] = engine.Records()
	}

	c.JSON(http.StatusOK, response)
}

// GetAPIInfo returns API v1 information and available endpoints
func (h *HTTPHandlers) GetAPIInfo(c *gin.Context) {
	h.metrics.IncHTTPRequestsInFlight()
	defer h.metrics.DecHTTPRequestsInFlight()

	c.JSON(http.StatusOK, gin.H{
		"api_version": "v1",
		"service":     "Campaign Recommendation Service",
		"version":     "1.0.0",
		"description": "Channel mix and budget recommendations for recruitment campaigns from historical performance data",
		"endpoints": gin.H{
			"recommendations": gin.H{
				"path":        "/api/v1/recommendations",
				"description": "Channel recommendations for a role and optional industry",
				"parameters": gin.H{
					"role":          "Required: job role (e.g. Butikschef)",
					"industry":      "Optional: industry (e.g. Dagligvaror)",
					"budget":        "Optional: total budget for outcome prediction",
					"campaign_days": "Optional: campaign length in days (default: 30)",
				},
				"example": "/api/v1/recommendations?role=Butikschef&industry=Dagligvaror&budget=25000",
			},
			"budget": gin.H{
				"path":        "/api/v1/budget",
				"description": "Budget tier recommendation for a role and optional industry",
				"parameters": gin.H{
					"role":          "Required: job role",
					"industry":      "Optional: industry",
					"campaign_days": "Optional: campaign length in days (default: 30)",
				},
				"example": "/api/v1/budget?role=Sjuksköterska&industry=Sjukvård",
			},
			"budget_compare": gin.H{
				"path":        "/api/v1/budget/compare",
				"description": "Budget tiers for several roles side by side",
				"parameters": gin.H{
					"roles": "Required: comma-separated roles",
				},
				"example": "/api/v1/budget/compare?roles=Säljare,Tekniker",
			},
			"catalog": gin.H{
				"keys":       "/api/v1/keys",
				"industries": "/api/v1/industries",
				"roles":      "/api/v1/industries/roles?industry=...",
				"summary":    "/api/v1/summary",
			},
			"rebuild": gin.H{
				"path":        "/api/v1/rebuild",
				"description": "Reload campaign records and rebuild the engine",
				"methods":     []string{"POST"},
			},
		},
		"request_id": c.GetString("request_id"),
	})
}

// HealthCheck returns the health status of the service
func (h *HTTPHandlers) HealthCheck(c *gin.Context) {
	h.metrics.IncHTTPRequestsInFlight()
	defer h.metrics.DecHTTPRequestsInFlight()

	health := gin.H{
		"status":     "healthy",
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"service":    "adrec",
		"version":    "1.0.0",
		"request_id": c.GetString("request_id"),
	}

	if engine, err := h.service.Engine(); err != nil {
		health["engine"] = gin.H{"ready": false}
	} else {
		health["engine"] = gin.H{
			"ready":    true,
			"records":  engine.Records(),
			"built_at": engine.BuiltAt().UTC().Format(time.RFC3339),
		}
	}

	c.JSON(http.StatusOK, health)
}

func parseIntParam(c *gin.Context, name string, defaultValue int) (int, error) {
	value := c.Query(name)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, errors.New(name + " must be an integer")
	}
	return parsed, nil
}

func parseFloatParam(c *gin.Context, name string, defaultValue float64) (float64, error) {
	value := c.Query(name)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, errors.New(name + " must be a number")
	}
	return parsed, nil
}
