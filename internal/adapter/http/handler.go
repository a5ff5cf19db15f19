package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"wolfden/internal/app/ports"
	"wolfden/internal/app/replay"
	"wolfden/internal/domain/predator"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/cloudwego/hertz/pkg/route"
)

type Handler struct {
	Wolf     ports.WolfService
	ReplayUC replay.UseCase
	KPI      kpiSnapshotProvider
}

func (h Handler) RegisterRoutes(r *route.Engine) {
	r.Use(corsMiddleware())
	r.OPTIONS("/*any", func(context.Context, *app.RequestContext) {})

	wolf := r.Group("/api/wolf")
	wolf.POST("/unique-id", h.issueUniqueID)
	wolf.POST("/prey", h.checkPrey)
	wolf.POST("/water", h.checkWater)

	r.GET("/ops/kpi", h.kpi)
	r.GET("/ops/journal", h.journal)
	r.GET("/ops/journal.csv", h.journalCSV)
}

type preyRequest struct {
	ID       int `json:"id"`
	Weight   int `json:"weight"`
	Distance int `json:"distance"`
}

type waterRequest struct {
	ID     int `json:"id"`
	X      int `json:"x"`
	Y      int `json:"y"`
	Volume int `json:"volume"`
}

type uniqueIDResponse struct {
	ID int `json:"id"`
}

type outcomeResponse struct {
	Outcome predator.Outcome `json:"outcome"`
}

func (h Handler) issueUniqueID(c context.Context, ctx *app.RequestContext) {
	id, err := h.Wolf.IssueUniqueID(c)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, uniqueIDResponse{ID: id})
}

func (h Handler) checkPrey(c context.Context, ctx *app.RequestContext) {
	var body preyRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}

	outcome, err := h.Wolf.CheckPrey(c, predator.PreyReport{
		ID:       body.ID,
		Weight:   body.Weight,
		Distance: body.Distance,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, outcomeResponse{Outcome: outcome})
}

func (h Handler) checkWater(c context.Context, ctx *app.RequestContext) {
	var body waterRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}

	outcome, err := h.Wolf.CheckWater(c, predator.WaterReport{
		ID:     body.ID,
		X:      body.X,
		Y:      body.Y,
		Volume: body.Volume,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, outcomeResponse{Outcome: outcome})
}

func (h Handler) journal(c context.Context, ctx *app.RequestContext) {
	resp, err := h.replay(c, ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) journalCSV(c context.Context, ctx *app.RequestContext) {
	resp, err := h.replay(c, ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	b, err := marshalEventsCSV(resp.Events)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.Response.Header.Set("Content-Disposition", `attachment; filename="feeding-journal.csv"`)
	ctx.Data(http.StatusOK, "text/csv; charset=utf-8", b)
}

func (h Handler) replay(c context.Context, ctx *app.RequestContext) (replay.Response, error) {
	limit, err := queryInt(ctx, "limit")
	if err != nil {
		return replay.Response{}, err
	}
	occurredFrom, err := queryInt(ctx, "occurred_from")
	if err != nil {
		return replay.Response{}, err
	}
	occurredTo, err := queryInt(ctx, "occurred_to")
	if err != nil {
		return replay.Response{}, err
	}
	return h.ReplayUC.Execute(c, replay.Request{
		Limit:        int(limit),
		Type:         string(ctx.Query("type")),
		Kind:         string(ctx.Query("kind")),
		OccurredFrom: occurredFrom,
		OccurredTo:   occurredTo,
	})
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

var errEmptyBody = errors.New("empty request body")

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return errEmptyBody
	}
	return json.Unmarshal(body, out)
}

func queryInt(ctx *app.RequestContext, key string) (int64, error) {
	raw := string(ctx.Query(key))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, replay.ErrInvalidRequest
	}
	return n, nil
}

func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, replay.ErrInvalidRequest):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ports.ErrUnavailable):
		writeErrorBody(ctx, consts.StatusServiceUnavailable, "wolf_unavailable", err.Error())
	default:
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
