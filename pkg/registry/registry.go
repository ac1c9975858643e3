package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

var genAIErrors = []string{
	"INVALID_INPUT",
	"GENAI_TIMEOUT",
	"GENAI_AUTH_FAILED",
	"GENAI_QUOTA_EXCEEDED",
	"GENAI_REQUEST_FAILED",
}

// Default returns the built-in catalogue.
func Default() *ActivityRegistry {
	reg := &ActivityRegistry{
		Version:     "1.0.0",
		LastUpdated: "2025-01-01T00:00:00Z",
		Activities: []Activity{
			{
				ID:          "campaign-builder",
				DisplayName: "AI Campaign Builder",
				Description: "Seven-step marketing workflow from a campaign brief",
				Category:    "campaign",
				TaskType:    "marketing-campaign-build",
				Route:       "/api/generate_campaign",
				ResultKey:   "campaign",
				Tags:        []string{"campaign", "strategy", "copywriting"},
			},
			{
				ID:          "seo-analyzer",
				DisplayName: "SEO Analyzer",
				Description: "On-page SEO review of a live URL",
				Category:    "seo",
				TaskType:    "marketing-seo-analyze",
				Route:       "/api/seo_analyze",
				ResultKey:   "seo_report",
				Tags:        []string{"seo", "on-page"},
			},
			{
				ID:          "keyword-research",
				DisplayName: "Keyword & Competitor Research",
				Description: "Keyword suggestions grounded on live search results",
				Category:    "seo",
				TaskType:    "marketing-keyword-research",
				Route:       "/api/keyword_research",
				ResultKey:   "keyword_research",
				ErrorCodes:  []string{"WEB_SEARCH_FAILED", "WEB_SEARCH_TIMEOUT"},
				Tags:        []string{"seo", "keywords", "serp"},
			},
			{
				ID:          "performance-forecast",
				DisplayName: "Performance Predictor",
				Description: "CTR, CPC and conversion ranges for a campaign",
				Category:    "analytics",
				TaskType:    "marketing-performance-forecast",
				Route:       "/api/performance_forecast",
				ResultKey:   "performance_forecast",
				Tags:        []string{"forecast", "ads"},
			},
			{
				ID:          "content-calendar",
				DisplayName: "Content Calendar Automation",
				Description: "Weekly posting calendar per platform, exportable as CSV",
				Category:    "content",
				TaskType:    "marketing-content-calendar",
				Route:       "/api/content_calendar",
				ResultKey:   "content_calendar",
				Tags:        []string{"content", "social", "csv"},
			},
			{
				ID:          "structured-generate",
				DisplayName: "Structured Generation",
				Description: "Caller-defined JSON template filled by the model",
				Category:    "core",
				TaskType:    "marketing-structured-generate",
				Route:       "/api/generate_structured",
				ResultKey:   "result",
				Tags:        []string{"core"},
			},
		},
	}
	return reg.withDefaults()
}

func (r *ActivityRegistry) withDefaults() *ActivityRegistry {
	for i := range r.Activities {
		a := &r.Activities[i]
		if a.Version == "" {
			a.Version = "1.0.0"
		}
		if a.ImplementationStatus == "" {
			a.ImplementationStatus = "completed"
		}
		if a.Timeout == "" {
			a.Timeout = "90s"
		}
		if a.Retries == 0 {
			a.Retries = 3
		}
		a.ErrorCodes = append(append([]string{}, genAIErrors...), a.ErrorCodes...)
	}
	return r
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// LoadRegistry reads a catalogue from a JSON or YAML file, chosen by
// extension.
func LoadRegistry(path string) (*ActivityRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var reg ActivityRegistry
	if isYAML(path) {
		err = yaml.Unmarshal(data, &reg)
	} else {
		err = json.Unmarshal(data, &reg)
	}
	if err != nil {
		return nil, fmt.Errorf("parse registry %s: %w", path, err)
	}
	if err := reg.Validate(); err != nil {
		return nil, err
	}
	return &reg, nil
}

// Load returns the file catalogue when path is set, the built-in one otherwise.
func Load(path string) (*ActivityRegistry, error) {
	if path == "" {
		return Default(), nil
	}
	return LoadRegistry(path)
}

// Save writes the catalogue as indented JSON, or YAML for a .yaml/.yml
// path, stamping LastUpdated.
func (r *ActivityRegistry) Save(path string) error {
	r.LastUpdated = time.Now().UTC().Format(time.RFC3339)
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(r)
	} else {
		data, err = json.MarshalIndent(r, "", "  ")
	}
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create registry directory: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate checks that every activity has an ID and task type, and that
// IDs, task types and routes are unique.
func (r *ActivityRegistry) Validate() error {
	ids := map[string]bool{}
	taskTypes := map[string]bool{}
	routes := map[string]bool{}

	for i, a := range r.Activities {
		if a.ID == "" {
			return fmt.Errorf("activity %d: missing id", i)
		}
		if a.TaskType == "" {
			return fmt.Errorf("activity %s: missing taskType", a.ID)
		}
		if ids[a.ID] {
			return fmt.Errorf("duplicate activity id %q", a.ID)
		}
		if taskTypes[a.TaskType] {
			return fmt.Errorf("duplicate taskType %q", a.TaskType)
		}
		if a.Route != "" && routes[a.Route] {
			return fmt.Errorf("duplicate route %q", a.Route)
		}
		if a.Timeout != "" {
			if _, err := time.ParseDuration(a.Timeout); err != nil {
				return fmt.Errorf("activity %s: invalid timeout %q", a.ID, a.Timeout)
			}
		}
		ids[a.ID] = true
		taskTypes[a.TaskType] = true
		routes[a.Route] = true
	}
	return nil
}

func (r *ActivityRegistry) Find(id string) (Activity, bool) {
	for _, a := range r.Activities {
		if a.ID == id {
			return a, true
		}
	}
	return Activity{}, false
}

func (r *ActivityRegistry) ByTaskType(taskType string) (Activity, bool) {
	for _, a := range r.Activities {
		if a.TaskType == taskType {
			return a, true
		}
	}
	return Activity{}, false
}

// TimeoutFor returns the activity's timeout, or fallback when unset or invalid.
func (a Activity) TimeoutFor(fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(a.Timeout)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
