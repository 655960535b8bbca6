package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecord(t *testing.T) {
	m := New()
	m.Record("member_registered")
	m.Record("member_registered")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.BusinessEvents.WithLabelValues("member_registered")))
}

func TestHandler_ExposesBusinessEvents(t *testing.T) {
	m := New()
	m.Record("query_rejected")

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))

	assert.Equal(t, 200, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), `club_business_events_total{event="query_rejected"} 1`))
}
