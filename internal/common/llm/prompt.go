package llm

import (
	"strings"
)

const (
	DefaultTemperature     float32 = 0.4
	DefaultMaxOutputTokens int32   = 2048
)

// DefaultBehaviorInstruction is used when a request carries no behaviour
// instruction of its own.
const DefaultBehaviorInstruction = `You are an AI Marketing Workflow Generator.
Always respond ONLY in valid JSON.

Follow this exact 7-step workflow:

1. Business Understanding
2. Campaign Strategy
3. Ad Copywriting
4. Content Calendar
5. SEO Research
6. Performance Prediction
7. Final Recommendations

Rules:
- Do NOT add markdown.
- Do NOT add backticks.
- Do NOT add explanations.
- Only output JSON.`

var defaultWorkflowTemplate = Object(
	Prop("1_business_understanding", Object(
		Prop("business_info", String("")),
		Prop("product_or_service", String("")),
		Prop("value_proposition", String("")),
		Prop("target_audience", String("")),
	)),
	Prop("2_campaign_strategy", Object(
		Prop("goal", String("")),
		Prop("positioning_strategy", String("")),
		Prop("key_messages", String("")),
	)),
	Prop("3_ad_copywriting", Object(
		Prop("facebook_ads", Array()),
		Prop("instagram_ads", Array()),
		Prop("email_marketing", Array()),
	)),
	Prop("4_content_calendar", Object(
		Prop("weekly_plan", Array(
			weekPlan(1), weekPlan(2), weekPlan(3), weekPlan(4),
		)),
	)),
	Prop("5_seo_research", Object(
		Prop("primary_keywords", Array()),
		Prop("long_tail_keywords", Array()),
		Prop("keyword_difficulty_score", String("")),
	)),
	Prop("6_performance_prediction", Object(
		Prop("expected_reach", String("")),
		Prop("expected_clicks", String("")),
		Prop("conversion_rate_estimate", String("")),
	)),
	Prop("7_final_recommendations", Object(
		Prop("budget_split", String("")),
		Prop("platform_priority", String("")),
		Prop("risk_factors", String("")),
		Prop("next_steps", String("")),
	)),
)

func weekPlan(n int64) Template {
	return Object(Prop("week", Int(n)), Prop("posts", Array()))
}

// DefaultWorkflowTemplate is the seven-section marketing workflow shape.
func DefaultWorkflowTemplate() Template {
	return defaultWorkflowTemplate
}

// Request is one structured generation. Build it with NewRequest; it is
// not modified afterwards.
type Request struct {
	instruction     string
	behavior        string
	template        Template
	temperature     float32
	maxOutputTokens int32
}

type RequestOption func(*Request)

// WithBehavior replaces the default behaviour instruction. An empty
// string keeps the default.
func WithBehavior(behavior string) RequestOption {
	return func(r *Request) {
		if strings.TrimSpace(behavior) != "" {
			r.behavior = behavior
		}
	}
}

func WithTemplate(t Template) RequestOption {
	return func(r *Request) { r.template = t }
}

func WithTemperature(temperature float32) RequestOption {
	return func(r *Request) { r.temperature = temperature }
}

func WithMaxOutputTokens(n int32) RequestOption {
	return func(r *Request) {
		if n > 0 {
			r.maxOutputTokens = n
		}
	}
}

// WithParams applies the non-zero fields of p.
func WithParams(p Params) RequestOption {
	return func(r *Request) {
		if p.Temperature > 0 {
			r.temperature = p.Temperature
		}
		if p.MaxOutputTokens > 0 {
			r.maxOutputTokens = p.MaxOutputTokens
		}
	}
}

func NewRequest(instruction string, opts ...RequestOption) Request {
	r := Request{
		instruction:     instruction,
		behavior:        DefaultBehaviorInstruction,
		template:        DefaultWorkflowTemplate(),
		temperature:     DefaultTemperature,
		maxOutputTokens: DefaultMaxOutputTokens,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func (r Request) Instruction() string { return r.instruction }
func (r Request) Behavior() string { return r.behavior }
func (r Request) Template() Template { return r.template }
func (r Request) Temperature() float32 { return r.temperature }
func (r Request) MaxOutputTokens() int32 { return r.maxOutputTokens }
func (r Request) Params() Params { return Params{Temperature: r.temperature, MaxOutputTokens: r.maxOutputTokens} }

// BuildPrompt composes the text sent to the backend: behaviour, the JSON
// rules, the pretty-printed template and the user request, in that order.
func BuildPrompt(r Request) string {
	var parts []string

	parts = append(parts, strings.TrimSpace(r.behavior))
	parts = append(parts, "")
	parts = append(parts, "You MUST obey these rules:")
	parts = append(parts, "1. Respond ONLY with valid JSON.")
	parts = append(parts, "2. Use exactly this JSON structure:")
	parts = append(parts, "")
	parts = append(parts, r.template.Pretty())
	parts = append(parts, "")
	parts = append(parts, "USER REQUEST:")
	parts = append(parts, r.instruction)

	return strings.TrimSpace(strings.Join(parts, "\n"))
}
