package mapper

import (
	"strings"

	"github.com/sarayu-labs/chat-insights/internal/flow_insights/domain"
)

// ToChains splits each cell of the flow column into a Chain. Labels are kept
// verbatim, so a whitespace-only cell is a one-step chain; an empty cell has
// no steps and is rejected.
func ToChains(values []string, delimiter string) ([]domain.Chain, error) {
	if delimiter == "" {
		delimiter = domain.DefaultDelimiter
	}

	chains := make([]domain.Chain, 0, len(values))
	for row, v := range values {
		if v == "" {
			return nil, &domain.ProcessingError{Op: "split chain", Row: row, Err: domain.ErrEmptyChain}
		}
		chains = append(chains, domain.Chain(strings.Split(v, delimiter)))
	}
	return chains, nil
}

// Sample keeps the first max chains. max <= 0 keeps everything.
func Sample(chains []domain.Chain, max int) []domain.Chain {
	if max <= 0 || len(chains) <= max {
		return chains
	}
	return chains[:max]
}
