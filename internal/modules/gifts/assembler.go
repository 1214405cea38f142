// README: Result assembly: order-preserving dedup and cap.
package gifts

import (
	"log"
	"strings"
)

// fallbackWhy is the fixed rationale on raw-search fallback proposals.
const fallbackWhy = "Popularna oferta pasująca do Twoich kryteriów."

// fallbackCount is how many raw listings the fallback wraps.
const fallbackCount = 5

// assemble preserves idea order, drops duplicate titles and caps the
// list at maxProposals.
func assemble(matched []Proposal) []Proposal {
	seen := make(map[string]bool, len(matched))
	out := make([]Proposal, 0, len(matched))
	for _, p := range matched {
		key := strings.ToLower(strings.TrimSpace(p.Title))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, p)
		if len(out) == maxProposals {
			log.Printf("[gifts] capped result list at %d proposals", maxProposals)
			break
		}
	}
	return out
}
