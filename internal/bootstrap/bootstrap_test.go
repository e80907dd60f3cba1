package bootstrap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/prereqplanner/internal/config"
)

const catalogCSV = `id,course_name,prerequisites,satisfies,credits
MATH 221,Calculus I,None,,5
MATH 222,Calculus II,MATH 221,,4
`

func fileConfig(t *testing.T, path string) *config.Config {
	t.Helper()
	cfg := &config.Config{}
	cfg.Server.Mode = "release"
	cfg.Catalog.Source = config.SourceFile
	cfg.Catalog.Path = path
	cfg.Catalog.Debounce = 50 * time.Millisecond
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.AccessTokenExpiration = "15m"
	cfg.JWT.Issuer = "prereqplanner"
	return cfg
}

func TestBuildDependenciesFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.csv")
	require.NoError(t, os.WriteFile(path, []byte(catalogCSV), 0o644))

	deps, err := BuildDependencies(context.Background(), fileConfig(t, path), zerolog.Nop())
	require.NoError(t, err)
	defer deps.Close()

	snap, err := deps.Store.Current()
	require.NoError(t, err)
	assert.Equal(t, 2, snap.Len())
	assert.Nil(t, deps.Watcher)

	router, err := SetupRouter(fileConfig(t, path), deps)
	require.NoError(t, err)

	for _, target := range []string{"/ping", "/api/v1/health", "/api/v1/catalog/courses/MATH222"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
		assert.Equal(t, http.StatusOK, w.Code, target)
	}
}

func TestBuildDependenciesStartsWithoutCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.csv")

	deps, err := BuildDependencies(context.Background(), fileConfig(t, path), zerolog.Nop())
	require.NoError(t, err, "a failed initial load is not fatal")
	defer deps.Close()

	_, err = deps.Store.Current()
	assert.Error(t, err)
}

func TestBuildDependenciesWatchesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.csv")
	require.NoError(t, os.WriteFile(path, []byte(catalogCSV), 0o644))

	cfg := fileConfig(t, path)
	cfg.Catalog.Watch = true

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	deps, err := BuildDependencies(ctx, cfg, zerolog.Nop())
	require.NoError(t, err)
	defer deps.Close()
	require.NotNil(t, deps.Watcher)

	require.NoError(t, os.WriteFile(path, []byte(catalogCSV+"MATH 234,Calculus III,MATH 222,,4\n"), 0o644))
	assert.Eventually(t, func() bool {
		snap, err := deps.Store.Current()
		return err == nil && snap.Len() == 3
	}, 5*time.Second, 25*time.Millisecond)
}

func TestSetupSourceSQLite(t *testing.T) {
	cfg := fileConfig(t, "")
	cfg.Catalog.Source = config.SourceSQLite
	cfg.Database.SQLitePath = filepath.Join(t.TempDir(), "catalog.db")

	source, closeFn, err := SetupSource(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	defer closeFn()

	courses, err := source.LoadCourses(context.Background())
	require.NoError(t, err)
	assert.Empty(t, courses)
}

func TestSetupSourceUnknown(t *testing.T) {
	cfg := fileConfig(t, "")
	cfg.Catalog.Source = "ftp"
	_, _, err := SetupSource(context.Background(), cfg, zerolog.Nop())
	assert.ErrorContains(t, err, "unknown catalog source")
}
