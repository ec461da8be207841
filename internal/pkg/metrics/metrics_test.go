package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportMetrics(t *testing.T) {
	t.Parallel()

	m, err := New()
	require.NoError(t, err)

	m.Import.ObserveImport("csv", 2, 10*time.Millisecond, nil)
	m.Import.ObserveImport("csv", 0, time.Millisecond, errors.New("bad csv"))
	m.Import.ObserveConsolidation("shopping_list", 5)

	body := scrape(t, m)
	assert.Contains(t, body, `recipe_consolidator_imports_total{format="csv",result="success"} 1`)
	assert.Contains(t, body, `recipe_consolidator_imports_total{format="csv",result="error"} 1`)
	assert.Contains(t, body, "recipe_consolidator_import_skipped_rows_total 2")
	assert.Contains(t, body, `recipe_consolidator_consolidations_total{kind="shopping_list"} 1`)
}

func TestNilMetricsAreNoops(t *testing.T) {
	t.Parallel()

	var im *ImportMetrics
	var hm *HTTPMetrics

	assert.NotPanics(t, func() {
		im.ObserveImport("text", 0, time.Millisecond, nil)
		im.ObserveConsolidation("recipe", 3)
		hm.ObserveRequest(http.MethodGet, "/health", http.StatusOK, time.Millisecond)
	})
}

func TestHandlerExposesMetrics(t *testing.T) {
	t.Parallel()

	m, err := New()
	require.NoError(t, err)
	m.HTTP.ObserveRequest(http.MethodPost, "/api/v1/shopping-lists", http.StatusCreated, 3*time.Millisecond)

	body := scrape(t, m)
	assert.True(t, strings.Contains(body, "recipe_consolidator_http_requests_total"))
	assert.Contains(t, body, `route="/api/v1/shopping-lists"`)
	assert.Contains(t, body, "go_goroutines")
}

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}
