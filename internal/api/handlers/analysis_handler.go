package handlers

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/archlens/backend/internal/catalog"
	"github.com/archlens/backend/internal/export"
	"github.com/archlens/backend/internal/metrics"
	"github.com/archlens/backend/internal/rollup"
	"github.com/archlens/backend/pkg/utils"
)

type AnalysisHandler struct {
	service *catalog.Service
	engine  *rollup.Engine
	export  export.Options
}

func NewAnalysisHandler(service *catalog.Service, engine *rollup.Engine, exportOpts export.Options) *AnalysisHandler {
	return &AnalysisHandler{service: service, engine: engine, export: exportOpts}
}

// Analyze runs the roll-up pipeline over a fresh snapshot and returns the
// classified, grouped tree. Empty lens selections yield an empty result.
func (h *AnalysisHandler) Analyze(c *fiber.Ctx) error {
	opts, err := parseOptions(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	start := time.Now()
	analysis, err := h.run(opts)
	if err != nil {
		metrics.AnalysisTotal.WithLabelValues("error").Inc()
		return respondError(c, err)
	}

	metrics.AnalysisTotal.WithLabelValues("ok").Inc()
	metrics.AnalysisDuration.WithLabelValues(opts.RollupMode).Observe(time.Since(start).Seconds())

	body, err := json.Marshal(analysis)
	if err != nil {
		return respondError(c, err)
	}

	c.Set("ETag", `W/"`+utils.HashString(string(body))+`"`)
	c.Set("Content-Type", "application/json")
	return c.Send(body)
}

// Export runs the same pipeline and serializes the measured layout as a
// self-contained SVG download.
func (h *AnalysisHandler) Export(c *fiber.Ctx) error {
	opts, err := parseOptions(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	analysis, err := h.run(opts)
	if err != nil {
		metrics.ExportTotal.WithLabelValues("error").Inc()
		return respondError(c, err)
	}

	doc := export.Plan(analysis, h.export)
	svg := export.RenderSVG(doc, h.export)

	metrics.ExportTotal.WithLabelValues("ok").Inc()

	c.Set("ETag", `W/"`+utils.HashString(string(svg))+`"`)
	c.Set("Content-Type", "image/svg+xml")
	c.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(time.Now())))
	return c.Send(svg)
}

func (h *AnalysisHandler) run(opts rollup.Options) (*rollup.Analysis, error) {
	snap, err := h.service.Snapshot()
	if err != nil {
		return nil, err
	}

	metrics.ItemsTotal.Set(float64(len(snap.Items)))
	metrics.RelationshipsTotal.Set(float64(len(snap.Relationships)))

	return h.engine.Run(snap, opts), nil
}

func parseOptions(c *fiber.Ctx) (rollup.Options, error) {
	opts := rollup.Options{
		PrimaryLens:   c.Query("primary"),
		SecondaryLens: c.Query("secondary"),
		RollupLens:    c.Query("rollup"),
		RollupMode:    c.Query("rollup_mode"),
		Display:       c.Query("display", rollup.DisplayOnlyRelated),
	}

	if opts.RollupMode == "" && opts.RollupLens != "" {
		opts.RollupMode = rollup.RollupModeLens
	}

	if raw := c.Query("item"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return opts, fmt.Errorf("invalid item filter")
		}
		opts.FilterItemID = id
	}

	return opts, nil
}
