// Package report renders an analysis result as a markdown document and,
// through gomarkdown, as standalone HTML.
package report

import (
	"fmt"
	"math"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"qpcrfold/domain/qpcr"
)

// Markdown builds a markdown report: configuration echo, both variance
// tables, and the fold-change table.
func Markdown(result *qpcr.Result) string {
	var b strings.Builder

	b.WriteString("# Fold-change analysis\n\n")
	fmt.Fprintf(&b, "- Analysis ID: `%s`\n", result.ID)
	fmt.Fprintf(&b, "- Main factor: **%s** (reference: %s)\n", result.Data.MainFactor, result.Data.Reference())
	fmt.Fprintf(&b, "- Analysis type: %s\n", result.Config.AnalysisType)
	fmt.Fprintf(&b, "- Reference genes: %d\n", result.Config.NumRefGenes)
	if result.Config.Block != "" {
		fmt.Fprintf(&b, "- Block: %s\n", result.Config.Block)
	}
	fmt.Fprintf(&b, "- P-value adjustment: %s\n\n", result.Config.PAdjust)

	b.WriteString("## ANOVA table\n\n")
	writeAnova(&b, result.AnovaTable)
	b.WriteString("\n## ANCOVA table\n\n")
	writeAnova(&b, result.AncovaTable)

	b.WriteString("\n## Fold change\n\n")
	b.WriteString("| Level | FC | sd | p | |\n|---|---|---|---|---|\n")
	for _, row := range result.FoldChange.Rows {
		fmt.Fprintf(&b, "| %s | %.4f | %.4f | %.4g | %s |\n",
			row.Level, row.FoldChange, row.StdDev, row.PValue, row.Significance)
	}
	return b.String()
}

func writeAnova(b *strings.Builder, table qpcr.AnovaTable) {
	b.WriteString("| Term | df | Sum Sq | Mean Sq | F | p |\n|---|---|---|---|---|---|\n")
	for _, row := range table.Rows {
		fmt.Fprintf(b, "| %s | %d | %.4f | %s | %s | %s |\n",
			row.Term, row.DF, row.SumSq, num(row.MeanSq), num(row.F), num(row.P))
	}
}

func num(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return fmt.Sprintf("%.4g", v)
}

// HTML renders the markdown report as a standalone HTML document.
func HTML(result *qpcr.Result) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	doc := p.Parse([]byte(Markdown(result)))
	renderer := html.NewRenderer(html.RendererOptions{
		Flags: html.CommonFlags | html.CompletePage,
		Title: "Fold-change analysis",
	})
	return markdown.Render(doc, renderer)
}
