// api/handlers/dashboard_handlers.go
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"edaboard/api/dashboard"
	"edaboard/api/render"
)

// requestTimeout bounds a whole dashboard run; each fetch inside it has its own deadline.
const requestTimeout = 30 * time.Second

type DashboardHandlers struct {
	Runner     *dashboard.Runner
	AssetsHost string
	Logger     *zap.Logger
}

func NewDashboardHandlers(runner *dashboard.Runner, assetsHost string, logger *zap.Logger) *DashboardHandlers {
	return &DashboardHandlers{
		Runner:     runner,
		AssetsHost: assetsHost,
		Logger:     logger,
	}
}

type dashboardResponse struct {
	Name     string            `json:"name"`
	Title    string            `json:"title"`
	Summary  []string          `json:"summary"`
	Charts   []json.RawMessage `json:"charts"`
	Failures map[string]string `json:"failures"`
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *DashboardHandlers) Index(c *gin.Context) {
	var buf bytes.Buffer
	if err := render.WriteIndex(&buf, h.Runner.Dashboards()); err != nil {
		h.Logger.Error("Error rendering index page", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render index"})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// run executes the named dashboard, or only one region of it when region is
// set, writing the error response itself when it fails.
func (h *DashboardHandlers) run(c *gin.Context, region string, renderer render.Renderer) (*dashboard.Result, bool) {
	name := c.Param("name")

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	var res *dashboard.Result
	var err error
	if region == "" {
		res, err = h.Runner.Run(ctx, name, renderer)
	} else {
		res, err = h.Runner.RunRegion(ctx, name, region, renderer)
	}
	if err != nil {
		if errors.Is(err, dashboard.ErrUnknownDashboard) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Unknown dashboard '" + name + "'"})
			return nil, false
		}
		if errors.Is(err, render.ErrUnknownRegion) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Unknown chart '" + region + "'"})
			return nil, false
		}
		h.Logger.Error("Error running dashboard", zap.String("dashboard", name), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build dashboard"})
		return nil, false
	}
	return res, true
}

// GetDashboardPage serves the interactive dashboard. Regions that failed
// stay empty on the page.
func (h *DashboardHandlers) GetDashboardPage(c *gin.Context) {
	res, ok := h.run(c, "", &render.EChartsRenderer{AssetsHost: h.AssetsHost})
	if !ok {
		return
	}

	var buf bytes.Buffer
	err := render.WritePage(&buf, render.Page{
		Title:      res.Title,
		AssetsHost: h.AssetsHost,
		Summary:    res.Summary,
		Surface:    res.Surface,
	})
	if err != nil {
		h.Logger.Error("Error rendering dashboard page", zap.String("dashboard", res.Name), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render dashboard"})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// GetDashboardData returns the shaped charts as JSON.
func (h *DashboardHandlers) GetDashboardData(c *gin.Context) {
	res, ok := h.run(c, "", render.DataRenderer{})
	if !ok {
		return
	}

	resp := dashboardResponse{
		Name:     res.Name,
		Title:    res.Title,
		Summary:  res.Summary,
		Charts:   []json.RawMessage{},
		Failures: res.Failures,
	}
	if resp.Summary == nil {
		resp.Summary = []string{}
	}
	if resp.Failures == nil {
		resp.Failures = map[string]string{}
	}
	for _, d := range res.Surface.Drawings() {
		resp.Charts = append(resp.Charts, json.RawMessage(d.Content))
	}
	c.JSON(http.StatusOK, resp)
}

// GetChartImage serves one region of a dashboard as a PNG (":file" is "<region>.png").
// Only the visualization feeding that region is fetched and rendered.
func (h *DashboardHandlers) GetChartImage(c *gin.Context) {
	region, isPNG := strings.CutSuffix(c.Param("file"), ".png")
	if !isPNG || region == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "Charts are served as <region>.png"})
		return
	}

	res, ok := h.run(c, region, &render.PNGRenderer{})
	if !ok {
		return
	}

	d, drawn := res.Surface.Get(region)
	if !drawn {
		c.JSON(http.StatusNotFound, gin.H{"error": "Chart '" + region + "' could not be drawn", "reason": res.Failures[region]})
		return
	}
	c.Data(http.StatusOK, d.ContentType, d.Content)
}
