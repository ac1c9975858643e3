// Package llmtest provides a scripted structured generator for tests.
package llmtest

import (
	"context"
	"sync"

	"github.com/janhavi-28/SEO-Agent/internal/common/llm"
)

// Generator answers every request with Reply, or fails with Err, and
// records what it was asked.
type Generator struct {
	Reply string
	Err   error

	mu       sync.Mutex
	requests []llm.Request
}

func NewGenerator(reply string) *Generator {
	return &Generator{Reply: reply}
}

func (g *Generator) GenerateStructured(ctx context.Context, req llm.Request) (*llm.Result, error) {
	g.mu.Lock()
	g.requests = append(g.requests, req)
	g.mu.Unlock()

	if g.Err != nil {
		return nil, g.Err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return llm.NewResult(g.Reply), nil
}

func (g *Generator) Calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.requests)
}

// LastRequest returns the most recent request; ok is false before any call.
func (g *Generator) LastRequest() (req llm.Request, ok bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.requests) == 0 {
		return llm.Request{}, false
	}
	return g.requests[len(g.requests)-1], true
}

// LastPrompt is the full prompt text of the most recent request.
func (g *Generator) LastPrompt() string {
	req, ok := g.LastRequest()
	if !ok {
		return ""
	}
	return llm.BuildPrompt(req)
}
