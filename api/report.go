package api

import (
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"growthcast/domain/forecast"
)

// BuildReport renders a simulation result as a markdown document: the
// monthly table, the summary statistics and the fitted-curve parameters.
func BuildReport(req forecast.SimulationRequest, result *forecast.SimulationResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# DAU Forecast %s\n\n", result.ForecastID)
	fmt.Fprintf(&b, "Initiative: **%s**\n\n", req.Initiative)

	b.WriteString("| Month | Baseline | With Initiative | Incremental |\n")
	b.WriteString("|------:|---------:|----------------:|------------:|\n")
	for m := 0; m < forecast.Months; m++ {
		fmt.Fprintf(&b, "| %d | %.0f | %.0f | %.0f |\n",
			m+1, result.Baseline[m], result.WithInitiative[m], result.Incremental[m])
	}

	sum := result.Summary
	b.WriteString("\n## Summary\n\n")
	fmt.Fprintf(&b, "- Total impact: **%.0f DAU-days**\n", sum.TotalImpact)
	fmt.Fprintf(&b, "- Peak incremental: %.0f DAU in month %d (%.1f%% lift)\n",
		sum.PeakIncremental, sum.PeakMonth+1, sum.PeakLiftPercent)
	fmt.Fprintf(&b, "- Breakdown: existing users %.0f, new users %.0f, new acquisition %.0f\n",
		sum.Breakdown.ExistingUsers, sum.Breakdown.NewUsers, sum.Breakdown.NewAcquisition)

	b.WriteString("\n## Fitted curves\n\n")
	writeCurve(&b, "Base new-user", result.Curves.BaseNew)
	writeCurve(&b, "Base existing-user", result.Curves.BaseExisting)
	if req.Initiative == forecast.InitiativeRetention || req.Initiative == forecast.InitiativeCombined {
		writeCurve(&b, "Improved new-user", result.Curves.ImprovedNew)
		writeCurve(&b, "Improved existing-user", result.Curves.ImprovedExisting)
	}

	return b.String()
}

func writeCurve(b *strings.Builder, label string, p forecast.CurveParams) {
	switch p.Kind {
	case forecast.CurveExponential:
		fmt.Fprintf(b, "- %s: `r(t) = %.4f + %.4f * exp(-%.5f t)` (R² %.3f)\n",
			label, p.C, p.A, p.Lambda, p.GoodnessOfFit)
	default:
		fmt.Fprintf(b, "- %s: `r(t) = %.4f * t^-%.4f` (R² %.3f)\n",
			label, p.A, p.B, p.GoodnessOfFit)
	}
}

// RenderHTML converts the markdown report into a standalone HTML fragment.
func RenderHTML(md string) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.ToHTML([]byte(md), p, renderer)
}
