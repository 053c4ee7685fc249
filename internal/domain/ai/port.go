package ai

import "context"

// Client turns a stored scan result (JSON) into plain-language guidance
// for the user. It never re-analyzes the submitted URL or media.
type Client interface {
	Explain(ctx context.Context, scanJSON string) (string, error)
}
