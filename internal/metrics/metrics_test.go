package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestInstrumentHandlerUsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(InstrumentHandler)
	r.Get("/boards/{boardId}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	before := testutil.CollectAndCount(RequestDuration)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boards/42", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)

	assert.Equal(t, before+1, testutil.CollectAndCount(RequestDuration))
	_, err := RequestDuration.GetMetricWithLabelValues("GET", "/boards/{boardId}", "418")
	assert.NoError(t, err)
}
