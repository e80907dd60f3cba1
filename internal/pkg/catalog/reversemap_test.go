package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/prereqplanner/internal/app/models"
	"github.com/yigit/prereqplanner/internal/pkg/prereq"
)

func rec(id, prereqs, satisfies string) models.Course {
	return models.Course{ID: id, Prerequisites: prereqs, Satisfies: satisfies}
}

func TestBuildReverseMap(t *testing.T) {
	records := []models.Course{
		rec("MATH 221", "", "MATH 222; STAT 240"),
		rec("MATH 275", "", "MATH222"),
		rec("MATH 222", "", ""),
		rec("STAT 240", "", " ; "),
		rec("COMPSCI, ECE 354", "", "COMP SCI 537; PHYSICS 999"),
		rec("COMPSCI 537", "", ""),
	}

	forward, prereqs, diags := BuildReverseMap(records)

	assert.Equal(t, []string{"MATH 222", "STAT 240"}, forward["MATH221"])
	assert.Empty(t, forward["STAT240"])

	assert.Equal(t, []prereq.OrGroup{{"MATH 221"}, {"MATH 275"}}, prereqs["MATH222"])
	assert.Equal(t, []prereq.OrGroup{{"MATH 221"}}, prereqs["STAT240"])
	assert.Equal(t, []prereq.OrGroup{{"COMPSCI 354", "ECE 354"}}, prereqs["COMPSCI537"])

	for _, key := range []string{"MATH221", "MATH275", "COMPSCIECE354"} {
		groups, ok := prereqs[key]
		require.True(t, ok, "every catalog course has an entry: %s", key)
		assert.Empty(t, groups)
	}

	require.Len(t, diags, 1)
	assert.Equal(t, DiagnosticDanglingReference, diags[0].Kind)
	assert.Equal(t, "PHYSICS 999", diags[0].Text)
	assert.Equal(t, "COMPSCI, ECE 354", diags[0].CourseID)
}

func TestBuildReverseMapDedupesSatisfiers(t *testing.T) {
	records := []models.Course{
		rec("MATH 221", "", "MATH 222; MATH 222"),
		rec("MATH 222", "", "MATH 222"),
	}
	_, prereqs, diags := BuildReverseMap(records)
	assert.Equal(t, []prereq.OrGroup{{"MATH 221"}}, prereqs["MATH222"], "self references and repeats are ignored")
	assert.Empty(t, diags)
}

func TestSplitSatisfies(t *testing.T) {
	assert.Equal(t, []string{"A 1", "B 2"}, SplitSatisfies(" A 1 ;;B 2; "))
	assert.Nil(t, SplitSatisfies(""))
}
