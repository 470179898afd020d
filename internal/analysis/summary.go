package analysis

import (
	"fmt"
	"strings"

	"github.com/mkovacevic/github-profile-analyzer/internal/types"
)

type summaryInput struct {
	User          *types.User
	Languages     []types.LanguageStat
	RepoCount     int
	TotalStars    int
	Activity      types.ActivityPattern
	Collaboration types.CollaborationMetrics
	Level         string
	FocusAreas    []string
	AccountAge    float64
}

// buildSummary assembles the recruiter-facing narrative. This is a fixed
// template, reproduced byte-for-byte for identical inputs.
func buildSummary(in summaryInput) string {
	name := in.User.Name
	if name == "" {
		name = in.User.Login
	}

	var b strings.Builder

	fmt.Fprintf(&b, "%s is a %s-level developer", name, strings.ToLower(in.Level))
	if in.AccountAge >= 1 {
		fmt.Fprintf(&b, " with %.0f+ years on GitHub", in.AccountAge)
	}

	if len(in.FocusAreas) > 0 {
		areas := in.FocusAreas
		if len(areas) > 2 {
			areas = areas[:2]
		}
		fmt.Fprintf(&b, ", focusing on %s", strings.Join(areas, ", "))
	}

	b.WriteString(". ")

	if len(in.Languages) > 0 {
		top := in.Languages
		if len(top) > 3 {
			top = top[:3]
		}
		names := make([]string, len(top))
		for i, lang := range top {
			names[i] = lang.Name
		}
		fmt.Fprintf(&b, "Primary expertise in %s. ", strings.Join(names, ", "))
	}

	if in.TotalStars > 0 {
		fmt.Fprintf(&b, "Has earned %d stars across %d public repositories. ", in.TotalStars, in.RepoCount)
	}

	if in.Collaboration.Followers >= 10 {
		fmt.Fprintf(&b, "Active community member with %d followers", in.Collaboration.Followers)
		if len(in.Collaboration.Organizations) > 0 {
			fmt.Fprintf(&b, " and contributions to %d organizations", len(in.Collaboration.Organizations))
		}
		b.WriteString(". ")
	}

	fmt.Fprintf(&b, "Most active on %ss", in.Activity.MostActiveDay)
	switch {
	case in.Activity.MostActiveHour < 12:
		b.WriteString(" (morning coder)")
	case in.Activity.MostActiveHour < 18:
		b.WriteString(" (afternoon coder)")
	default:
		b.WriteString(" (evening coder)")
	}
	b.WriteString(".")

	return b.String()
}
