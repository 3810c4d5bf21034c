package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"qpcrfold/adapters/excel"
	"qpcrfold/adapters/stats/transform"
	"qpcrfold/app"
	"qpcrfold/domain/qpcr"
	"qpcrfold/internal/report"
	"qpcrfold/ports"
)

// openReader builds the observation source for a file path.
func openReader(path, sheet string) ports.ObservationReader {
	return excel.NewDataReader(path).WithSheet(sheet)
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "qpcrfold",
		Short: "Fold-change analysis of qPCR expression data",
	}

	rootCmd.AddCommand(
		newAnalyzeCmd(),
		newSweepCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type analyzeFlags struct {
	mainColumn  int
	levelOrder  []string
	refGenes    int
	block       string
	analysis    string
	pAdjust     string
	output      string
	sheet       string
	maxParallel int64
}

func (f *analyzeFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.mainColumn, "main-factor-column", 1, "1-based column index of the main factor")
	cmd.Flags().StringSliceVar(&f.levelOrder, "levels", nil, "ordered main factor levels, reference first (required)")
	cmd.Flags().IntVar(&f.refGenes, "ref-genes", 1, "number of reference genes (1 or 2)")
	cmd.Flags().StringVar(&f.block, "block", "", "blocking column name")
	cmd.Flags().StringVar(&f.analysis, "analysis", "ancova", "analysis type: anova or ancova")
	cmd.Flags().StringVar(&f.pAdjust, "p-adjust", "none", "p-value adjustment: none, holm, hommel, hochberg, bonferroni, BH, BY, fdr")
	cmd.Flags().StringVar(&f.output, "output", "table", "output format: table, json or markdown")
	cmd.Flags().StringVar(&f.sheet, "sheet", "Sheet1", "worksheet name for Excel files")
	_ = cmd.MarkFlagRequired("levels")
}

func (f *analyzeFlags) config() *qpcr.Config {
	return &qpcr.Config{
		NumRefGenes:      f.refGenes,
		MainFactorColumn: f.mainColumn,
		LevelOrder:       f.levelOrder,
		Block:            f.block,
		AnalysisType:     qpcr.AnalysisType(f.analysis),
		PAdjust:          qpcr.AdjustMethod(f.pAdjust),
		Style:            qpcr.DefaultStyle(),
	}
}

func newAnalyzeCmd() *cobra.Command {
	flags := &analyzeFlags{}

	cmd := &cobra.Command{
		Use:   "analyze [file]",
		Short: "Run a fold-change analysis over a CSV or XLSX observation table",
		Long: `Run the full fold-change pipeline over one observation table.

Example: qpcrfold analyze data.csv --levels Control,Drought,Salt --ref-genes 1 --analysis ancova`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := openReader(args[0], flags.sheet).Read()
			if err != nil {
				return err
			}
			service := app.NewAnalysisService(transform.NewWeighter())
			analysis, err := service.Run(context.Background(), table, flags.config())
			if err != nil {
				return err
			}
			return writeAnalysis(cmd, analysis, flags.output)
		},
	}
	flags.register(cmd)
	return cmd
}

func newSweepCmd() *cobra.Command {
	flags := &analyzeFlags{}

	cmd := &cobra.Command{
		Use:   "sweep [files...]",
		Short: "Analyze several target-gene tables with one configuration",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tables := make([]app.NamedTable, 0, len(args))
			for _, path := range args {
				table, err := openReader(path, flags.sheet).Read()
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				tables = append(tables, app.NamedTable{Name: path, Table: table})
			}

			sweep := app.NewSweepService(transform.NewWeighter(), flags.maxParallel)
			outcomes := sweep.Run(context.Background(), tables, flags.config())

			failed := 0
			for _, outcome := range outcomes {
				fmt.Fprintf(cmd.OutOrStdout(), "== %s ==\n", outcome.Name)
				if outcome.Err != nil {
					failed++
					fmt.Fprintf(cmd.OutOrStdout(), "error: %v\n\n", outcome.Err)
					continue
				}
				if err := writeAnalysis(cmd, outcome.Analysis, flags.output); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout())
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d analyses failed", failed, len(outcomes))
			}
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().Int64Var(&flags.maxParallel, "max-parallel", 4, "maximum concurrent analyses")
	return cmd
}

func writeAnalysis(cmd *cobra.Command, analysis *app.Analysis, format string) error {
	out := cmd.OutOrStdout()
	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(analysis)
	case "markdown":
		_, err := fmt.Fprintln(out, strings.TrimRight(report.Markdown(analysis.Result), "\n"))
		return err
	case "table":
		fc := analysis.Result.FoldChange
		fmt.Fprintf(out, "%-16s %10s %10s %10s  %s\n", "Level", "FC", "sd", "p", "")
		for _, row := range fc.Rows {
			fmt.Fprintf(out, "%-16s %10.4f %10.4f %10.4g  %s\n",
				row.Level, row.FoldChange, row.StdDev, row.PValue, row.Significance)
		}
		return nil
	default:
		return fmt.Errorf("unknown output format %q (want table, json or markdown)", format)
	}
}
