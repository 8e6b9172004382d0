package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/zjrosen/lexreg/internal/domain/period"
	"github.com/zjrosen/lexreg/internal/domain/types"
	"github.com/zjrosen/lexreg/internal/log"
	"github.com/zjrosen/lexreg/internal/presentation"
)

// Code spaces accepted as the first argument of the spec commands.
const (
	spaceConcept = "concept"
	spaceArticle = "article"
)

var (
	specPeriod   string
	specRevision int32
	diffFrom     string
	diffTo       string
)

var specGetCmd = &cobra.Command{
	Use:   "spec:get <concept|article> <code>",
	Short: "Resolve one specification",
	Long: `Resolve a concept or article code to its specification.

Unknown codes resolve to the NotFound specification (code 0) and are
reported with "not_found": true. Without --period the latest revision applies.

Examples:
  lexreg spec:get concept 202 --period 2021-06
  lexreg spec:get article 2001 -p 2020-01 -r 1
  lexreg spec:get concept 202 | jq '.[0].path'`,
	Args: cobra.ExactArgs(2),
	RunE: runSpecGet,
}

var specListCmd = &cobra.Command{
	Use:   "spec:list <concept|article>",
	Short: "List every registered specification",
	Long: `List one specification per registered code, sorted by code.

Examples:
  lexreg spec:list concept
  lexreg spec:list article --period 2022-07 --format table`,
	Args: cobra.ExactArgs(1),
	RunE: runSpecList,
}

var specDiffCmd = &cobra.Command{
	Use:   "spec:diff <concept|article> <code>",
	Short: "Show how a specification changed between two periods",
	Long: `Compare a specification at two effective periods.

Examples:
  lexreg spec:diff concept 202 --from 2020-01 --to 2021-06
  lexreg spec:diff article 2001 --from 2019-01 --to 2022-01 --format table`,
	Args: cobra.ExactArgs(2),
	RunE: runSpecDiff,
}

func init() {
	for _, c := range []*cobra.Command{specGetCmd, specListCmd, specDiffCmd} {
		c.Flags().Int32VarP(&specRevision, "revision", "r", 0, "revision version (0 matches any)")
	}
	specGetCmd.Flags().StringVarP(&specPeriod, "period", "p", "", "effective period YYYY-MM (default: latest)")
	specListCmd.Flags().StringVarP(&specPeriod, "period", "p", "", "effective period YYYY-MM (default: latest)")
	specDiffCmd.Flags().StringVar(&diffFrom, "from", "", "earlier period YYYY-MM (required)")
	specDiffCmd.Flags().StringVar(&diffTo, "to", "", "later period YYYY-MM (required)")
	_ = specDiffCmd.MarkFlagRequired("from")
	_ = specDiffCmd.MarkFlagRequired("to")

	rootCmd.AddCommand(specGetCmd, specListCmd, specDiffCmd)
}

// parsePeriod returns nil for an empty string, which matches every revision.
func parsePeriod(s string) (period.Period, error) {
	if s == "" {
		return nil, nil
	}
	m, err := period.Parse(s)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func parseSpace(s string) (string, error) {
	switch s {
	case spaceConcept, spaceArticle:
		return s, nil
	default:
		return "", fmt.Errorf("unknown code space %q: want %s or %s", s, spaceConcept, spaceArticle)
	}
}

func parseCode(s string) (int32, error) {
	v, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid code %q: %w", s, err)
	}
	return int32(v), nil
}

func runSpecGet(cmd *cobra.Command, args []string) error {
	space, err := parseSpace(args[0])
	if err != nil {
		return err
	}
	code, err := parseCode(args[1])
	if err != nil {
		return err
	}
	p, err := parsePeriod(specPeriod)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	svc, cleanup, err := newSpecService(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	v := types.GetVersionCode(specRevision)
	formatter := presentation.NewFormatter(cmd.OutOrStdout(), cfg.Output.Format)
	log.Debug(log.CatCLI, "spec:get", "space", space, "code", code, "period", specPeriod, "version", specRevision)

	if space == spaceConcept {
		spec := svc.ConceptSpec(ctx, types.GetConceptCode(code), p, v)
		return formatter.FormatConcepts([]presentation.ConceptSpecDTO{presentation.FromConceptSpec(spec, svc.Catalog())})
	}
	spec := svc.ArticleSpec(ctx, types.GetArticleCode(code), p, v)
	return formatter.FormatArticles([]presentation.ArticleSpecDTO{presentation.FromArticleSpec(spec, svc.Catalog())})
}

func runSpecList(cmd *cobra.Command, args []string) error {
	space, err := parseSpace(args[0])
	if err != nil {
		return err
	}
	p, err := parsePeriod(specPeriod)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	svc, cleanup, err := newSpecService(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	v := types.GetVersionCode(specRevision)
	formatter := presentation.NewFormatter(cmd.OutOrStdout(), cfg.Output.Format)

	if space == spaceConcept {
		return formatter.FormatConcepts(presentation.FromConceptSpecs(svc.ConceptSpecs(ctx, p, v), svc.Catalog()))
	}
	return formatter.FormatArticles(presentation.FromArticleSpecs(svc.ArticleSpecs(ctx, p, v), svc.Catalog()))
}

func runSpecDiff(cmd *cobra.Command, args []string) error {
	space, err := parseSpace(args[0])
	if err != nil {
		return err
	}
	code, err := parseCode(args[1])
	if err != nil {
		return err
	}
	from, err := period.Parse(diffFrom)
	if err != nil {
		return fmt.Errorf("--from: %w", err)
	}
	to, err := period.Parse(diffTo)
	if err != nil {
		return fmt.Errorf("--to: %w", err)
	}

	ctx := cmd.Context()
	svc, cleanup, err := newSpecService(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	v := types.GetVersionCode(specRevision)
	var before, after any
	if space == spaceConcept {
		c := types.GetConceptCode(code)
		before = presentation.FromConceptSpec(svc.ConceptSpec(ctx, c, from, v), svc.Catalog())
		after = presentation.FromConceptSpec(svc.ConceptSpec(ctx, c, to, v), svc.Catalog())
	} else {
		a := types.GetArticleCode(code)
		before = presentation.FromArticleSpec(svc.ArticleSpec(ctx, a, from, v), svc.Catalog())
		after = presentation.FromArticleSpec(svc.ArticleSpec(ctx, a, to, v), svc.Catalog())
	}

	diff, changed, err := presentation.DiffJSON(before, after)
	if err != nil {
		return fmt.Errorf("computing diff: %w", err)
	}

	formatter := presentation.NewFormatter(cmd.OutOrStdout(), cfg.Output.Format)
	return formatter.FormatDiff(presentation.DiffDTO{
		Space:   space,
		Code:    code,
		From:    from.String(),
		To:      to.String(),
		Changed: changed,
		Diff:    diff,
	})
}
