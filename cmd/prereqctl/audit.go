package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yigit/prereqplanner/internal/pkg/catalog"
	"github.com/yigit/prereqplanner/internal/pkg/prereq"
)

// Audit output files
const (
	parsedFile   = "parsedPrereqs.json"
	outliersFile = "parseOutliers.json"
	prereqFile   = "prereqMap.json"
)

type parsedRecord struct {
	CourseName    string           `json:"course_name"`
	Prerequisites string           `json:"prerequisites"`
	Parsed        prereq.Node      `json:"parsed"`
	Groups        []prereq.OrGroup `json:"groups"`
	Advisories    []string         `json:"advisories"`
}

type outlierRecord struct {
	Row           int         `json:"row"`
	CourseID      string      `json:"course_id"`
	CourseName    string      `json:"course_name"`
	Prerequisites string      `json:"prerequisites"`
	Parsed        prereq.Node `json:"parsed"`
}

type auditOptions struct {
	catalogPath string
	outDir      string
}

func newAuditCmd(root *rootOptions) *cobra.Command {
	opts := &auditOptions{}

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Parse every catalog record and report the ones that did not parse cleanly",
		Long: `Compiles the catalog file and writes three files to --out:

  parsedPrereqs.json  every course with its parsed requirement tree
  parseOutliers.json  records with ambiguous or unusable prerequisite text
  prereqMap.json      the compiled prerequisite map used for validation`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAudit(cmd, root, opts)
		},
	}
	cmd.Flags().StringVar(&opts.catalogPath, "catalog", "", "catalog file (.csv or .json)")
	cmd.Flags().StringVar(&opts.outDir, "out", ".", "output directory")
	_ = cmd.MarkFlagRequired("catalog")
	return cmd
}

func runAudit(cmd *cobra.Command, root *rootOptions, opts *auditOptions) error {
	lgr := root.cliLogger(cmd)

	snap, err := compileCatalogFile(cmd.Context(), opts.catalogPath)
	if err != nil {
		return err
	}

	outliers := make(map[string]struct{})
	for _, e := range snap.Outliers() {
		outliers[e.Key] = struct{}{}
	}

	parsed := make(map[string]parsedRecord, snap.Len())
	var flagged []outlierRecord
	for i, e := range snap.Entries() {
		parsed[e.Course.ID] = parsedRecord{
			CourseName:    e.Course.CourseName,
			Prerequisites: e.Course.Prerequisites,
			Parsed:        e.Tree,
			Groups:        e.Groups,
			Advisories:    e.Advisories,
		}
		if _, ok := outliers[e.Key]; !ok {
			continue
		}
		flagged = append(flagged, outlierRecord{
			Row:           i + 1,
			CourseID:      e.Course.ID,
			CourseName:    e.Course.CourseName,
			Prerequisites: e.Course.Prerequisites,
			Parsed:        e.Tree,
		})
	}
	if flagged == nil {
		flagged = []outlierRecord{}
	}

	if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	for name, v := range map[string]interface{}{
		parsedFile:   parsed,
		outliersFile: flagged,
		prereqFile:   snap.Prereqs,
	} {
		if err := writeJSON(filepath.Join(opts.outDir, name), v); err != nil {
			return err
		}
	}

	for _, d := range snap.DiagnosticsOf(catalog.DiagnosticDanglingReference) {
		lgr.Warn().Str("course", d.CourseID).Str("target", d.Text).Msg("Satisfies reference to unknown course")
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Parsed %d courses.\n", snap.Len())
	fmt.Fprintf(out, "Outlier/flagged cases: %d\n", len(flagged))
	for _, o := range flagged {
		fmt.Fprintf(out, "  row %d: [%s] %q\n", o.Row, o.CourseID, o.Prerequisites)
	}
	if len(flagged) > 0 {
		fmt.Fprintf(out, "See flagged outliers at %s\n", filepath.Join(opts.outDir, outliersFile))
	}
	return nil
}

func writeJSON(path string, v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, append(b, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
