package structuredgenerate

import (
	"time"

	"github.com/janhavi-28/SEO-Agent/internal/common/llm"
)

type Config struct {
	Timeout time.Duration
	Params  llm.Params
}

func DefaultConfig() *Config {
	return &Config{
		Timeout: 90 * time.Second,
	}
}
