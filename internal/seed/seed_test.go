package seed

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appModels "github.com/yigit/prereqplanner/internal/app/models"
	appRepos "github.com/yigit/prereqplanner/internal/app/repositories"
	"github.com/yigit/prereqplanner/internal/db"
)

func TestPrepare(t *testing.T) {
	out, issues := Prepare([]appModels.Course{
		{ID: "MATH 221", CourseName: "old"},
		{ID: " "},
		{ID: "MATH221", CourseName: "new"},
		{ID: "STAT 240"},
	})
	require.Len(t, out, 2)
	assert.Equal(t, "new", out[0].CourseName)
	assert.Equal(t, "STAT 240", out[1].ID)

	require.Error(t, issues)
	assert.Contains(t, issues.Error(), "missing course id")
	assert.Contains(t, issues.Error(), `"MATH221" duplicates "MATH 221"`)

	_, issues = Prepare([]appModels.Course{{ID: "A 1"}})
	assert.NoError(t, issues)
}

func TestSQLiteSeedRoundTrip(t *testing.T) {
	ctx := context.Background()
	sdb, err := db.NewSQLiteDB(ctx, filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	defer sdb.Close()

	var buf bytes.Buffer
	n, err := SQLite(ctx, sdb, []appModels.Course{
		{ID: "MATH 221", Satisfies: "MATH 222", Credits: 5},
		{ID: "MATH 222", Prerequisites: "MATH 221"},
		{ID: ""},
	}, zerolog.New(&buf))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Contains(t, buf.String(), "missing course id")

	courses, err := appRepos.NewSQLCourseRepository(sdb.DB).LoadCourses(ctx)
	require.NoError(t, err)
	require.Len(t, courses, 2)
	assert.Equal(t, "MATH 221", courses[0].ID)
	assert.Equal(t, "MATH 221", courses[1].Prerequisites)
	assert.Nil(t, courses[0].Description)
}
