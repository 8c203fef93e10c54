// internal/embedding/resilient.go
package embedding

import (
	"context"
	"log"
)

// ResilientProvider tries the remote provider once per call and falls
// back to the local one on any failure. It never returns an error.
type ResilientProvider struct {
	remote   Provider
	fallback Provider
}

// NewResilientProvider chains a remote provider (may be nil) with a
// local fallback.
func NewResilientProvider(remote, fallback Provider) *ResilientProvider {
	return &ResilientProvider{
		remote:   remote,
		fallback: fallback,
	}
}

func (p *ResilientProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	if p.remote != nil {
		vec, err := p.remote.Embed(ctx, text)
		if err == nil && len(vec) > 0 {
			return vec, nil
		}
		if err != nil {
			log.Printf("[Embedding] WARNING: remote embedding failed, using fallback: %v", err)
		}
	}
	return p.fallback.Embed(ctx, text)
}
