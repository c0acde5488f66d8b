package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/truman/pkg/domain"
)

// Overlay contains run data to visualize on the graph.
type Overlay struct {
	Visited []domain.State
	Current domain.State
	// HasCurrent marks Current as meaningful; Begin is a valid current state.
	HasCurrent bool
}

// GenerateMermaid produces a Mermaid flowchart from a transition list.
// It applies semantic styling:
// - Begin: ((Circle))
// - Done: (((Double circle)))
// - States reachable only from the opening choice: [[Subroutine]]
// - Default: [Rectangle]
// It also applies overlay styles (Visited/Current) if provided.
func GenerateMermaid(transitions []domain.Transition, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	declared := make(map[domain.State]bool)
	declare := func(s domain.State) {
		if declared[s] {
			return
		}
		declared[s] = true
		opener, closer := "[", "]"
		switch {
		case s == domain.Begin:
			opener, closer = "((", "))"
		case s.Terminal():
			opener, closer = "(((", ")))"
		case isPrelude(s):
			opener, closer = "[[", "]]"
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", nodeID(s), opener, s, closer)
	}

	for _, t := range transitions {
		declare(t.From)
		declare(t.To)
	}
	for _, t := range transitions {
		arrow := "-->"
		if t.Condition != "" {
			safeCondition := strings.ReplaceAll(t.Condition, "\"", "'")
			arrow = fmt.Sprintf("-- \"%s\" -->", safeCondition)
		}
		fmt.Fprintf(&sb, "    %s %s %s\n", nodeID(t.From), arrow, nodeID(t.To))
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		seen := make(map[domain.State]bool)
		for _, s := range overlay.Visited {
			if seen[s] || !s.Valid() {
				continue
			}
			seen[s] = true
			fmt.Fprintf(&sb, "    class %s visited;\n", nodeID(s))
		}
		if overlay.HasCurrent {
			fmt.Fprintf(&sb, "    class %s current;\n", nodeID(overlay.Current))
		}
	}

	return sb.String()
}

func isPrelude(s domain.State) bool {
	switch s {
	case domain.RampUpShootStageOne, domain.RampUpShootStageTwo, domain.ShootingBalls,
		domain.RampDownShootStageOne, domain.RampDownShootStageTwo,
		domain.DrivingTowardsBall, domain.BackingFromBall,
		domain.OrientingFurther, domain.OrientingBack:
		return true
	}
	return false
}

// nodeID is the Mermaid identifier of s. State names are already safe
// identifiers, except that "end" is reserved.
func nodeID(s domain.State) string {
	return "s_" + s.String()
}
