package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveRetrieve("FullScan", time.Millisecond, 3)
		m.ObserveBuild("word_index", time.Second)
		m.SetDictionaryWords(10)
	})
	assert.NotNil(t, m.Handler())
}

func TestCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveRetrieve("WordIndex", 2*time.Millisecond, 4)
	m.ObserveRetrieve("WordIndex", time.Millisecond, 0)
	m.ObserveRetrieve("FullScan", time.Millisecond, 1)
	m.ObserveBuild("length_matcher", 30*time.Millisecond)
	m.SetDictionaryWords(1234)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RetrievalsTotal.WithLabelValues("WordIndex")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RetrievalsTotal.WithLabelValues("FullScan")))
	assert.Equal(t, 1234.0, testutil.ToFloat64(m.DictionaryWords))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.ElementsMatch(t, []string{
		"wordmatch_retrievals_total",
		"wordmatch_retrieve_duration_seconds",
		"wordmatch_retrieve_results",
		"wordmatch_index_build_seconds",
		"wordmatch_dictionary_words",
	}, names)
}

func TestHandlerServesOwnRegistry(t *testing.T) {
	m := New(nil)
	m.SetDictionaryWords(7)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "wordmatch_dictionary_words 7"))
}
