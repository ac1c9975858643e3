package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/janhavi-28/SEO-Agent/internal/common/errors"
	"github.com/janhavi-28/SEO-Agent/internal/common/validation"
	"github.com/janhavi-28/SEO-Agent/internal/http/response"
	"github.com/janhavi-28/SEO-Agent/internal/models"
	campaignbuilder "github.com/janhavi-28/SEO-Agent/internal/workers/marketing/campaign-builder"
	contentcalendar "github.com/janhavi-28/SEO-Agent/internal/workers/marketing/content-calendar"
	keywordresearch "github.com/janhavi-28/SEO-Agent/internal/workers/marketing/keyword-research"
	performanceforecast "github.com/janhavi-28/SEO-Agent/internal/workers/marketing/performance-forecast"
	seoanalyzer "github.com/janhavi-28/SEO-Agent/internal/workers/marketing/seo-analyzer"
	structuredgenerate "github.com/janhavi-28/SEO-Agent/internal/workers/marketing/structured-generate"
)

const defaultMaxUploadBytes = 1 << 20

type MarketingDeps struct {
	CampaignBuilder     *campaignbuilder.Handler
	SEOAnalyzer         *seoanalyzer.Handler
	KeywordResearch     *keywordresearch.Handler
	PerformanceForecast *performanceforecast.Handler
	ContentCalendar     *contentcalendar.Handler
	StructuredGenerate  *structuredgenerate.Handler
	MaxUploadBytes      int64
	Recorder            GenerationRecorder
}

// GenerationRecorder counts activity outcomes.
type GenerationRecorder interface {
	RecordGeneration(ctx context.Context, activity, outcome string)
}

// MarketingHandler exposes the marketing activities over HTTP. Each route
// binds the request, runs the activity and returns its result key.
type MarketingHandler struct {
	deps MarketingDeps
}

func NewMarketingHandler(deps MarketingDeps) *MarketingHandler {
	if deps.MaxUploadBytes <= 0 {
		deps.MaxUploadBytes = defaultMaxUploadBytes
	}
	return &MarketingHandler{deps: deps}
}

func (h *MarketingHandler) GenerateCampaign(c *gin.Context) {
	var input campaignbuilder.Input
	if !bindJSON(c, &input) {
		return
	}
	output, err := h.deps.CampaignBuilder.Execute(c.Request.Context(), &input)
	h.record(c, campaignbuilder.TaskType, err)
	if err != nil {
		response.RespondStandardError(c, err)
		return
	}
	response.RespondOK(c, output)
}

func (h *MarketingHandler) AnalyzeSEO(c *gin.Context) {
	var input seoanalyzer.Input
	if !bindJSON(c, &input) {
		return
	}
	output, err := h.deps.SEOAnalyzer.Execute(c.Request.Context(), &input)
	h.record(c, seoanalyzer.TaskType, err)
	if err != nil {
		response.RespondStandardError(c, err)
		return
	}
	response.RespondOK(c, output)
}

func (h *MarketingHandler) ResearchKeywords(c *gin.Context) {
	var input keywordresearch.Input
	if !bindJSON(c, &input) {
		return
	}
	output, err := h.deps.KeywordResearch.Execute(c.Request.Context(), &input)
	h.record(c, keywordresearch.TaskType, err)
	if err != nil {
		response.RespondStandardError(c, err)
		return
	}
	response.RespondOK(c, output)
}

func (h *MarketingHandler) ForecastPerformance(c *gin.Context) {
	var input performanceforecast.Input
	if !bindJSON(c, &input) {
		return
	}
	h.forecast(c, &input)
}

// PredictPerformance forecasts from a campaign document, sent either as
// {"campaign": {...}} or as a multipart "file" upload. A document that is
// not a JSON object is rejected before any generation.
func (h *MarketingHandler) PredictPerformance(c *gin.Context) {
	campaign, err := h.readCampaign(c)
	if err != nil {
		response.RespondStandardError(c, err)
		return
	}
	h.forecast(c, &performanceforecast.Input{
		PerformanceRequest: models.PerformanceRequest{Campaign: campaign},
	})
}

func (h *MarketingHandler) forecast(c *gin.Context, input *performanceforecast.Input) {
	output, err := h.deps.PerformanceForecast.Execute(c.Request.Context(), input)
	h.record(c, performanceforecast.TaskType, err)
	if err != nil {
		response.RespondStandardError(c, err)
		return
	}
	response.RespondOK(c, output)
}

// ContentCalendar returns the calendar as JSON, or as a CSV download with
// ?format=csv. A calendar that failed to parse is always returned as JSON.
func (h *MarketingHandler) ContentCalendar(c *gin.Context) {
	var input contentcalendar.Input
	if !bindJSON(c, &input) {
		return
	}
	output, err := h.deps.ContentCalendar.Execute(c.Request.Context(), &input)
	h.record(c, contentcalendar.TaskType, err)
	if err != nil {
		response.RespondStandardError(c, err)
		return
	}

	if strings.EqualFold(c.Query("format"), "csv") {
		if data, err := contentcalendar.ToCSV(output.ContentCalendar); err == nil {
			c.Header("Content-Disposition", `attachment; filename="content_calendar.csv"`)
			c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
			return
		}
	}
	response.RespondOK(c, output)
}

func (h *MarketingHandler) GenerateStructured(c *gin.Context) {
	var input structuredgenerate.Input
	if !bindJSON(c, &input) {
		return
	}
	output, err := h.deps.StructuredGenerate.Execute(c.Request.Context(), &input)
	h.record(c, structuredgenerate.TaskType, err)
	if err != nil {
		response.RespondStandardError(c, err)
		return
	}
	response.RespondOK(c, output)
}

func (h *MarketingHandler) readCampaign(c *gin.Context) (map[string]interface{}, error) {
	limit := h.deps.MaxUploadBytes

	if strings.HasPrefix(c.ContentType(), "multipart/") {
		header, err := c.FormFile("file")
		if err != nil {
			return nil, apperrors.NewInvalidInputError("missing campaign file")
		}
		if header.Size > limit {
			return nil, apperrors.NewInvalidInputError("campaign file too large")
		}
		f, err := header.Open()
		if err != nil {
			return nil, apperrors.NewInvalidInputError(fmt.Sprintf("open campaign file: %v", err))
		}
		defer f.Close()

		data, err := io.ReadAll(io.LimitReader(f, limit))
		if err != nil {
			return nil, apperrors.NewInvalidInputError(fmt.Sprintf("read campaign file: %v", err))
		}
		return decodeCampaign(data)
	}

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, limit+1))
	if err != nil {
		return nil, apperrors.NewInvalidInputError(fmt.Sprintf("read body: %v", err))
	}
	if int64(len(body)) > limit {
		return nil, apperrors.NewInvalidInputError("request body too large")
	}
	var payload struct {
		Campaign json.RawMessage `json:"campaign"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, apperrors.NewInvalidInputError(fmt.Sprintf("malformed JSON: %v", err))
	}
	return decodeCampaign(payload.Campaign)
}

const campaignDocumentSchema = `{"type": "object", "minProperties": 1}`

func (h *MarketingHandler) record(c *gin.Context, activity string, err error) {
	if h.deps.Recorder == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = string(apperrors.Normalize(err).Code)
	}
	h.deps.Recorder.RecordGeneration(c.Request.Context(), activity, outcome)
}

// decodeCampaign accepts only a non-empty JSON object.
func decodeCampaign(data []byte) (map[string]interface{}, error) {
	result, err := validation.ValidateDocument(campaignDocumentSchema, data)
	if err != nil {
		return nil, apperrors.NewInvalidInputError(fmt.Sprintf("invalid campaign JSON: %v", err))
	}
	if err := result.Err(); err != nil {
		return nil, apperrors.NewInvalidInputError("campaign must be a non-empty JSON object")
	}
	var campaign map[string]interface{}
	if err := json.Unmarshal(data, &campaign); err != nil {
		return nil, apperrors.NewInvalidInputError(fmt.Sprintf("invalid campaign JSON: %v", err))
	}
	return campaign, nil
}

func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.RespondStandardError(c, apperrors.NewInvalidInputError(fmt.Sprintf("malformed request body: %v", err)))
		return false
	}
	return true
}
