package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/prereqplanner/internal/app/models"
	appRepos "github.com/yigit/prereqplanner/internal/app/repositories"
	"github.com/yigit/prereqplanner/internal/db"
	"github.com/yigit/prereqplanner/internal/pkg/auth"
)

const testCatalog = `id,course_name,prerequisites,satisfies,credits
MATH 221,Calculus I,None,,5
MATH 222,Calculus II,MATH 221,,4
COMP SCI 300,Programming II,MATH 222 and junior standing,,3
STAT 240,Data Science Modeling I,Satisfied Quantitative Reasoning A requirement,,4
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestParseCommand(t *testing.T) {
	out, _, err := execute(t, "parse", "(MATH 221 or MATH 275) and junior standing")
	require.NoError(t, err)
	assert.Contains(t, out, "group 1:    MATH 221 or MATH 275")
	assert.Contains(t, out, "advisory:   junior standing")

	out, _, err = execute(t, "parse", "--json", "CHICLA/SPANISH", "222")
	require.NoError(t, err)
	var preview struct {
		Groups [][]string `json:"groups"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &preview))
	assert.Equal(t, [][]string{{"CHICLA 222", "SPANISH 222"}}, preview.Groups)

	_, _, err = execute(t, "parse")
	assert.Error(t, err)
}

func TestAuditCommand(t *testing.T) {
	dir := t.TempDir()
	catalogPath := writeFile(t, dir, "catalog.csv", testCatalog)
	outDir := filepath.Join(dir, "out")

	out, _, err := execute(t, "audit", "--catalog", catalogPath, "--out", outDir)
	require.NoError(t, err)
	assert.Contains(t, out, "Parsed 4 courses.")
	assert.Contains(t, out, "Outlier/flagged cases: 1")
	assert.Contains(t, out, "row 4: [STAT 240]")

	var parsed map[string]json.RawMessage
	b, err := os.ReadFile(filepath.Join(outDir, parsedFile))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(b, &parsed))
	assert.Len(t, parsed, 4)

	var outliers []struct {
		Row      int             `json:"row"`
		CourseID string          `json:"course_id"`
		Parsed   json.RawMessage `json:"parsed"`
	}
	b, err = os.ReadFile(filepath.Join(outDir, outliersFile))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(b, &outliers))
	require.Len(t, outliers, 1)
	assert.Equal(t, "STAT 240", outliers[0].CourseID)
	assert.Equal(t, 4, outliers[0].Row)
	assert.JSONEq(t, `{"type": "ambiguous", "text": "Satisfied Quantitative Reasoning A requirement"}`, string(outliers[0].Parsed))

	var prereqs map[string][][]string
	b, err = os.ReadFile(filepath.Join(outDir, prereqFile))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(b, &prereqs))
	assert.NotEmpty(t, prereqs)

	_, _, err = execute(t, "audit")
	assert.ErrorContains(t, err, "catalog")
}

func TestValidateCommand(t *testing.T) {
	dir := t.TempDir()
	catalogPath := writeFile(t, dir, "catalog.csv", testCatalog)
	plan := writeFile(t, dir, "plan.yaml", `
terms:
  - year: 1
    semesterIndex: 0
    courses:
      - id: MATH 221
      - id: MATH 222
  - year: 2
    semesterIndex: 0
    courses:
      - id: COMP SCI 300
`)

	out, _, err := execute(t, "validate", "--catalog", catalogPath, "--plan", plan)
	assert.ErrorIs(t, err, errPlanInvalid)
	assert.Contains(t, out, "1 violations")
	assert.Contains(t, out, "VIOLATION Year 1 FALL MATH 222: missing MATH 221")
	assert.Contains(t, out, "advisory: junior standing")

	out, _, err = execute(t, "validate", "--catalog", catalogPath, "--plan", plan, "--override", "MATH 221")
	require.NoError(t, err)
	assert.Contains(t, out, "plan is valid")

	jsonPlan := writeFile(t, dir, "plan.json", `{
		"overrides": ["math221"],
		"terms": [{"year": 1, "semesterIndex": 1, "courses": [{"id": "MATH 222"}]}]
	}`)
	out, _, err = execute(t, "validate", "--catalog", catalogPath, "--plan", jsonPlan, "--json")
	require.NoError(t, err)
	var report models.ValidationReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.True(t, report.Valid)
	assert.NotEmpty(t, report.CatalogVersion)
}

func TestValidateCommandRejectsBadPlans(t *testing.T) {
	dir := t.TempDir()
	catalogPath := writeFile(t, dir, "catalog.csv", testCatalog)

	bad := writeFile(t, dir, "bad.yaml", "terms:\n  - year: 0\n    semesterIndex: 0\n")
	_, _, err := execute(t, "validate", "--catalog", catalogPath, "--plan", bad)
	assert.ErrorContains(t, err, "year 0")

	txt := writeFile(t, dir, "plan.txt", "MATH 221")
	_, _, err = execute(t, "validate", "--catalog", catalogPath, "--plan", txt)
	assert.ErrorContains(t, err, "unsupported")
}

func writeConfig(t *testing.T, dir string) string {
	t.Helper()
	return writeFile(t, dir, "config.yaml", `
database:
  sqlite_path: `+filepath.Join(dir, "catalog.db")+`
jwt:
  secret: cli-test-secret
  access_token_expiration: 30m
  issuer: prereqplanner
`)
}

func TestSeedCommandSQLite(t *testing.T) {
	dir := t.TempDir()
	catalogPath := writeFile(t, dir, "catalog.csv", testCatalog+"MATH 222,Calculus II (revised),MATH 221,,4\n")
	cfgPath := writeConfig(t, dir)

	out, _, err := execute(t, "--config", cfgPath, "seed", "--csv", catalogPath, "--target", "sqlite")
	require.NoError(t, err)
	assert.Contains(t, out, "Seeded 4 courses into sqlite.")

	sdb, err := db.NewSQLiteDB(context.Background(), filepath.Join(dir, "catalog.db"))
	require.NoError(t, err)
	defer sdb.Close()

	courses, err := appRepos.NewSQLCourseRepository(sdb.DB).LoadCourses(context.Background())
	require.NoError(t, err)
	require.Len(t, courses, 4)
	assert.Equal(t, "Calculus II (revised)", courses[1].CourseName)

	_, _, err = execute(t, "--config", cfgPath, "seed", "--csv", catalogPath, "--target", "mysql")
	assert.ErrorContains(t, err, "unknown seed target")
}

func TestTokenCommand(t *testing.T) {
	cfgPath := writeConfig(t, t.TempDir())

	out, stderr, err := execute(t, "--config", cfgPath, "token", "--subject", "registrar")
	require.NoError(t, err)
	assert.Contains(t, stderr, "expires")

	svc := auth.NewJWTService(auth.JWTConfig{SecretKey: "cli-test-secret", AccessTokenExp: time.Minute, TokenIssuer: "prereqplanner"})
	claims, err := svc.ValidateAndExtractClaims(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "registrar", claims.Subject)
	assert.Equal(t, string(models.RoleAdmin), claims.RoleType)

	_, _, err = execute(t, "--config", cfgPath, "token", "--subject", "x", "--role", "root")
	assert.ErrorContains(t, err, "unknown role")
}

func TestCLILoggerWritesToStderr(t *testing.T) {
	var stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetErr(&stderr)
	opts := &rootOptions{logLevel: "info"}
	lgr := opts.cliLogger(cmd)
	lgr.Info().Msg("visible")
	assert.Contains(t, stderr.String(), "visible")
	assert.NotEqual(t, zerolog.Disabled, lgr.GetLevel())
}
