package ai

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bryanwahyu/securewatch/internal/domain/ai"
	domain "github.com/bryanwahyu/securewatch/internal/domain/scans"
)

// Service narrates stored scan results through the advisor client.
type Service struct {
	client ai.Client
}

func NewService(client ai.Client) *Service {
	return &Service{client: client}
}

// Explain renders the scan as JSON and asks the advisor for guidance.
func (s *Service) Explain(ctx context.Context, scan *domain.Scan) (string, error) {
	if s == nil || s.client == nil {
		return "", ai.ErrNotConfigured
	}
	payload, err := json.Marshal(scan)
	if err != nil {
		return "", fmt.Errorf("encoding scan: %w", err)
	}
	return s.client.Explain(ctx, string(payload))
}
