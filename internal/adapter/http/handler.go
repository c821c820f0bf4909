package httpadapter

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/adaptor"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	limiter "github.com/ulule/limiter/v3"

	"mapapylife/internal/app/lookup"
	"mapapylife/internal/app/points"
	"mapapylife/internal/app/ports"
	"mapapylife/internal/domain/geo"
)

type Handler struct {
	LookupUC  lookup.UseCase
	ZonesUC   points.ZonesUseCase
	GeoJSONUC points.GeoJSONUseCase
	HousesUC  points.HousesUseCase
	HouseUC   points.HouseUseCase
	BlipsUC   points.BlipsUseCase
	KPI       kpiSnapshotProvider
	Metrics   http.Handler
	Limiter   *limiter.Limiter
	// AllowOrigin is the CORS origin; empty allows any.
	AllowOrigin string
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(requestIDMiddleware(), corsMiddleware(h.AllowOrigin), cacheControlMiddleware())

	s.GET("/healthcheck", h.healthcheck)

	api := s.Group("/api/v1")
	if h.Limiter != nil {
		api.Use(rateLimitMiddleware(h.Limiter))
	}
	api.GET("/lookup", h.lookup)
	api.GET("/points/zones", h.zones)
	api.GET("/points/zones/geojson", h.zonesGeoJSON)
	api.GET("/points/houses", h.houses)
	api.GET("/points/blips", h.blips)
	api.GET("/houses/:id", h.house)

	s.GET("/ops/kpi", h.kpi)
	if h.Metrics != nil {
		s.GET("/metrics", adaptor.HertzHandler(h.Metrics))
	}
}

var (
	ErrInvalidQuery = errors.New("invalid query parameter")
)

func (h Handler) healthcheck(_ context.Context, ctx *app.RequestContext) {
	ctx.JSON(consts.StatusOK, map[string]any{"success": true, "message": "healthy"})
}

func (h Handler) lookup(c context.Context, ctx *app.RequestContext) {
	x, errX := queryFloat(ctx, "x")
	y, errY := queryFloat(ctx, "y")
	raw, errRaw := queryBool(ctx, "raw")
	if err := errors.Join(errX, errY, errRaw); err != nil {
		writeError(ctx, err)
		return
	}

	resp, err := h.LookupUC.Execute(c, lookup.Request{X: x, Y: y, Raw: raw})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) zones(c context.Context, ctx *app.RequestContext) {
	raw, err := queryBool(ctx, "raw")
	if err != nil {
		writeError(ctx, err)
		return
	}
	resp, err := h.ZonesUC.Execute(c, points.ZonesRequest{Raw: raw})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) zonesGeoJSON(c context.Context, ctx *app.RequestContext) {
	resp, err := h.GeoJSONUC.Execute(c)
	if err != nil {
		writeError(ctx, err)
		return
	}
	b, err := resp.Collection.MarshalJSON()
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.Data(consts.StatusOK, "application/geo+json", b)
}

func (h Handler) houses(c context.Context, ctx *app.RequestContext) {
	raw, err := queryBool(ctx, "raw")
	if err != nil {
		writeError(ctx, err)
		return
	}
	req := points.HousesRequest{Raw: raw}
	if v := strings.TrimSpace(string(ctx.Query("last_update"))); v != "" {
		since, err := parseTime(v)
		if err != nil {
			writeError(ctx, err)
			return
		}
		req.UpdatedSince = &since
	}
	resp, err := h.HousesUC.Execute(c, req)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) house(c context.Context, ctx *app.RequestContext) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		writeError(ctx, ErrInvalidQuery)
		return
	}
	resp, err := h.HouseUC.Execute(c, points.HouseRequest{ID: id})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) blips(c context.Context, ctx *app.RequestContext) {
	raw, err := queryBool(ctx, "raw")
	if err != nil {
		writeError(ctx, err)
		return
	}
	resp, err := h.BlipsUC.Execute(c, points.BlipsRequest{Raw: raw})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

func queryFloat(ctx *app.RequestContext, key string) (float64, error) {
	v := strings.TrimSpace(string(ctx.Query(key)))
	if v == "" {
		return 0, queryError(key, "is required")
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, queryError(key, "must be a number")
	}
	return f, nil
}

func queryBool(ctx *app.RequestContext, key string) (bool, error) {
	v := strings.TrimSpace(string(ctx.Query(key)))
	if v == "" {
		return false, nil
	}
	switch strings.ToLower(v) {
	case "yes", "on":
		return true, nil
	case "no", "off":
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, queryError(key, "must be a boolean")
	}
	return b, nil
}

func parseTime(v string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	if unix, err := strconv.ParseInt(v, 10, 64); err == nil {
		return time.Unix(unix, 0).UTC(), nil
	}
	return time.Time{}, queryError("last_update", "must be a datetime")
}

func queryError(key, reason string) error {
	return &QueryError{Key: key, Reason: reason}
}

type QueryError struct {
	Key    string
	Reason string
}

func (e *QueryError) Error() string { return e.Key + " " + e.Reason }

func (e *QueryError) Unwrap() error { return ErrInvalidQuery }

func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, ErrInvalidQuery),
		errors.Is(err, lookup.ErrInvalidRequest),
		errors.Is(err, points.ErrInvalidRequest):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, geo.ErrMalformedGeometry):
		writeErrorBody(ctx, consts.StatusInternalServerError, "malformed_geometry", err.Error())
	case errors.Is(err, ports.ErrConflict):
		writeErrorBody(ctx, consts.StatusConflict, "conflict", err.Error())
	default:
		hlog.Errorf("http: %s %s: %v", ctx.Method(), ctx.Path(), err)
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
