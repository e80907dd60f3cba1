package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	appModels "github.com/yigit/prereqplanner/internal/app/models"
	"github.com/yigit/prereqplanner/internal/pkg/apperrors"
	"github.com/yigit/prereqplanner/internal/pkg/planner"
)

// errPlanInvalid makes the process exit 1 without an error line; the report
// itself explains the failure.
var errPlanInvalid = errors.New("plan has prerequisite violations")

// planFile is the on-disk plan format. Overrides from the file and from
// --override flags are combined.
type planFile struct {
	appModels.Plan `yaml:",inline"`
	Overrides      []string `json:"overrides" yaml:"overrides"`
}

type validateOptions struct {
	catalogPath string
	planPath    string
	overrides   []string
	asJSON      bool
}

func newValidateCmd(root *rootOptions) *cobra.Command {
	opts := &validateOptions{}

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a multi-year plan against a catalog file",
		Long: `Validates every planned course against the prerequisites compiled from
the catalog. Exits with status 1 when the plan has violations.`,
		Example: `  prereqctl validate --catalog data/catalog.csv --plan plan.yaml --override "MATH 221"`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidate(cmd, root, opts)
		},
	}
	cmd.Flags().StringVar(&opts.catalogPath, "catalog", "", "catalog file (.csv or .json)")
	cmd.Flags().StringVar(&opts.planPath, "plan", "", "plan file (.yaml, .yml or .json)")
	cmd.Flags().StringSliceVar(&opts.overrides, "override", nil, "course already completed (repeatable)")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the report as JSON")
	_ = cmd.MarkFlagRequired("catalog")
	_ = cmd.MarkFlagRequired("plan")
	return cmd
}

func runValidate(cmd *cobra.Command, root *rootOptions, opts *validateOptions) error {
	lgr := root.cliLogger(cmd)

	pf, err := readPlanFile(opts.planPath)
	if err != nil {
		return err
	}
	snap, err := compileCatalogFile(cmd.Context(), opts.catalogPath)
	if err != nil {
		return err
	}
	lgr.Debug().Int("courses", snap.Len()).Int("terms", len(pf.Terms)).Msg("Catalog compiled")

	overrides := append(append([]string(nil), pf.Overrides...), opts.overrides...)
	report := planner.Validate(pf.Plan, snap, overrides)
	report.CatalogVersion = snap.Version

	if opts.asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
	} else {
		printReport(cmd.OutOrStdout(), report)
	}

	if !report.Valid {
		return errPlanInvalid
	}
	return nil
}

func readPlanFile(path string) (*planFile, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan file: %w", err)
	}

	pf := &planFile{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(b, pf)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, pf)
	default:
		return nil, fmt.Errorf("%w: plan file %s", apperrors.ErrUnsupportedInput, path)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidPlan, err)
	}

	for i, t := range pf.Terms {
		if t.Year < 1 || t.SemesterIndex < 0 || t.SemesterIndex > 1 {
			return nil, fmt.Errorf("%w: term %d has year %d, semesterIndex %d",
				apperrors.ErrInvalidPlan, i+1, t.Year, t.SemesterIndex)
		}
	}
	return pf, nil
}

func printReport(w io.Writer, r appModels.ValidationReport) {
	fmt.Fprintln(w, planner.Summary(r))
	for _, v := range r.Violations {
		term := appModels.PlanTerm{Year: v.Year, SemesterIndex: v.SemesterIndex}
		fmt.Fprintf(w, "  VIOLATION %s %s: missing %s\n", term.Label(), v.CourseID, strings.Join(v.Unmet, "; "))
	}
	for _, a := range r.Advisories {
		term := appModels.PlanTerm{Year: a.Year, SemesterIndex: a.SemesterIndex}
		fmt.Fprintf(w, "  note      %s %s: %s\n", term.Label(), a.CourseID, a.Note)
	}
}
