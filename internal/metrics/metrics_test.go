package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/nameparser/pkg/nameparser"
)

func TestObserveParse(t *testing.T) {
	persons := testutil.ToFloat64(ParsesTotal.WithLabelValues("person"))
	companies := testutil.ToFloat64(ParsesTotal.WithLabelValues("company"))
	lastnames := testutil.ToFloat64(PartsTotal.WithLabelValues("lastname"))

	ObserveParse(nameparser.Parse("Peter Pan"), time.Millisecond)
	ObserveParse(nameparser.Parse("Mustermann GmbH"), time.Millisecond)

	assert.Equal(t, persons+1, testutil.ToFloat64(ParsesTotal.WithLabelValues("person")))
	assert.Equal(t, companies+1, testutil.ToFloat64(ParsesTotal.WithLabelValues("company")))
	assert.Equal(t, lastnames+1, testutil.ToFloat64(PartsTotal.WithLabelValues("lastname")))
}

func TestHandlerExposesMetrics(t *testing.T) {
	ObserveParse(nameparser.Parse("Peter Pan"), time.Millisecond)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "nameparser_parser_parses_total"))
}
