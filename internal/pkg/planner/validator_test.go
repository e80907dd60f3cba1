package planner

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"golang.org/x/sync/errgroup"

	"github.com/yigit/prereqplanner/internal/app/models"
	"github.com/yigit/prereqplanner/internal/pkg/catalog"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func snapshot() *catalog.Snapshot {
	return catalog.Compile([]models.Course{
		{ID: "MATH 221"},
		{ID: "MATH 222", Prerequisites: "MATH 221"},
		{ID: "MATH 234", Prerequisites: "MATH 221 and MATH 222"},
		{ID: "SPANISH 311", Prerequisites: "CHICLA/SPANISH 222"},
		{ID: "SPANISH 222"},
		{ID: "CHICLA 222"},
		{ID: "COMP SCI 520", Prerequisites: "junior standing"},
		{ID: "COMP SCI 760", Prerequisites: "Graduate/professional standing or consent of instructor"},
		{ID: "HIST 101", Prerequisites: "None"},
	})
}

func term(year, idx int, ids ...string) models.PlanTerm {
	t := models.PlanTerm{Year: year, SemesterIndex: idx}
	for _, id := range ids {
		t.Courses = append(t.Courses, models.PlannedCourse{ID: id})
	}
	return t
}

func TestValidateEarlierPrerequisites(t *testing.T) {
	plan := models.Plan{Terms: []models.PlanTerm{
		term(1, 0, "MATH 221"),
		term(1, 1, "MATH 222"),
		term(2, 0, "MATH 234"),
	}}
	r := Validate(plan, snapshot(), nil)
	assert.True(t, r.Valid)
	assert.Empty(t, r.Violations)
}

func TestValidateSameSemesterIsViolation(t *testing.T) {
	plan := models.Plan{Terms: []models.PlanTerm{
		term(1, 0, "MATH 221", "MATH 222"),
	}}
	r := Validate(plan, snapshot(), nil)
	require.Len(t, r.Violations, 1)
	v := r.Violations[0]
	assert.Equal(t, "MATH 222", v.CourseID)
	assert.Equal(t, []string{"MATH 221"}, v.Unmet)
	assert.False(t, r.Valid)
}

func TestValidateTermsOutOfOrder(t *testing.T) {
	plan := models.Plan{Terms: []models.PlanTerm{
		term(2, 0, "MATH 234"),
		term(1, 1, "MATH 222"),
		term(1, 0, "MATH 221"),
	}}
	r := Validate(plan, snapshot(), nil)
	assert.Empty(t, r.Violations)
}

func TestValidateMergesDuplicateSemesters(t *testing.T) {
	plan := models.Plan{Terms: []models.PlanTerm{
		term(1, 0, "MATH 221"),
		term(1, 0, "MATH 222"),
	}}
	r := Validate(plan, snapshot(), nil)
	require.Len(t, r.Violations, 1, "entries with the same year and semester are one semester")
	assert.Equal(t, "MATH 222", r.Violations[0].CourseID)
}

func TestValidateCrossListedAliases(t *testing.T) {
	for _, alias := range []string{"CHICLA 222", "SPANISH 222", "spanish222"} {
		plan := models.Plan{Terms: []models.PlanTerm{
			term(1, 0, alias),
			term(1, 1, "SPANISH 311"),
		}}
		r := Validate(plan, snapshot(), nil)
		assert.Empty(t, r.Violations, alias)
	}

	r := Validate(models.Plan{Terms: []models.PlanTerm{term(1, 0, "SPANISH 311")}}, snapshot(), nil)
	require.Len(t, r.Violations, 1)
	assert.Equal(t, []string{"CHICLA 222 or SPANISH 222"}, r.Violations[0].Unmet)
}

func TestValidateOverrides(t *testing.T) {
	plan := models.Plan{Terms: []models.PlanTerm{term(1, 0, "MATH 222")}}

	r := Validate(plan, snapshot(), []string{"MATH 221"})
	assert.Empty(t, r.Violations)

	r = Validate(plan, snapshot(), nil)
	require.Len(t, r.Violations, 1)
	assert.Equal(t, []string{"MATH 221"}, r.Violations[0].Unmet)
}

func TestValidateNonCourseRequirementsAreAdvisory(t *testing.T) {
	plan := models.Plan{Terms: []models.PlanTerm{
		term(1, 0, "COMP SCI 520", "COMP SCI 760", "HIST 101"),
	}}
	r := Validate(plan, snapshot(), nil)
	assert.True(t, r.Valid)
	assert.Empty(t, r.Violations)

	var notes []string
	for _, a := range r.Advisories {
		notes = append(notes, a.CourseID+": "+a.Note)
	}
	assert.ElementsMatch(t, []string{
		"COMP SCI 520: advisory: junior standing",
		"COMP SCI 760: advisory: graduate/professional standing",
		"COMP SCI 760: advisory: consent of instructor",
	}, notes)
}

func TestValidateMalformedEntries(t *testing.T) {
	plan := models.Plan{Terms: []models.PlanTerm{
		term(1, 0, "", "  ", "PHYSICS 999"),
		term(1, 1, "MATH 222 (honors)"),
	}}
	r := Validate(plan, snapshot(), nil)

	require.Len(t, r.Advisories, 3)
	assert.Equal(t, NoteBlankID, r.Advisories[0].Note)
	assert.Equal(t, NoteBlankID, r.Advisories[1].Note)
	assert.Equal(t, NoteNotInCatalog, r.Advisories[2].Note)

	require.Len(t, r.Violations, 1, "suffixed ids resolve to the catalog course")
	assert.Equal(t, "MATH 222 (honors)", r.Violations[0].CourseID)
	assert.Equal(t, 1, r.Violations[0].SemesterIndex)
}

func TestValidateDoesNotMutatePlan(t *testing.T) {
	plan := models.Plan{Terms: []models.PlanTerm{
		term(2, 0, "MATH 234"),
		term(1, 0, "MATH 221"),
		term(1, 0, "MATH 222"),
	}}
	Validate(plan, snapshot(), nil)
	assert.Equal(t, 2, plan.Terms[0].Year)
	assert.Len(t, plan.Terms[1].Courses, 1)
}

func TestValidateConcurrentCallers(t *testing.T) {
	snap := snapshot()
	plan := models.Plan{Terms: []models.PlanTerm{
		term(1, 0, "MATH 221", "MATH 222"),
		term(2, 0, "MATH 234", "SPANISH 311"),
	}}
	want := Validate(plan, snap, nil)

	g, _ := errgroup.WithContext(context.Background())
	for i := 0; i < 16; i++ {
		g.Go(func() error {
			got := Validate(plan, snap, nil)
			assert.Equal(t, want, got)
			return nil
		})
	}
	require.NoError(t, g.Wait())
}

func TestSummary(t *testing.T) {
	assert.Equal(t, "plan is valid (0 advisories)", Summary(models.ValidationReport{Valid: true}))
	assert.Equal(t, "2 violations, 1 advisories", Summary(models.ValidationReport{
		Violations: make([]models.Violation, 2),
		Advisories: make([]models.AdvisoryNote, 1),
	}))
}
