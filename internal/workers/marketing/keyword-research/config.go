package keywordresearch

import (
	"time"

	"github.com/janhavi-28/SEO-Agent/internal/common/llm"
)

type Config struct {
	Timeout    time.Duration
	NumResults int
	Params     llm.Params
}

func DefaultConfig() *Config {
	return &Config{
		Timeout:    90 * time.Second,
		NumResults: 5,
	}
}
