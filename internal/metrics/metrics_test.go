package metrics

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordHTTPRequest(t *testing.T) {
	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/recipes/{id}", "404"))

	RecordHTTPRequest(http.MethodGet, "/recipes/{id}", http.StatusNotFound, 15*time.Millisecond)

	after := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/recipes/{id}", "404"))
	assert.Equal(t, before+1, after)
}

func TestRecordRatingSubmission(t *testing.T) {
	for _, outcome := range []string{RatingOutcomeCreated, RatingOutcomeUpdated, RatingOutcomeCooldown} {
		before := testutil.ToFloat64(RatingSubmissions.WithLabelValues(outcome))
		RecordRatingSubmission(outcome)
		assert.Equal(t, before+1, testutil.ToFloat64(RatingSubmissions.WithLabelValues(outcome)))
	}
}

func TestRecordRatingEvent(t *testing.T) {
	okBefore := testutil.ToFloat64(RatingEventsPublished.WithLabelValues("ok"))
	errBefore := testutil.ToFloat64(RatingEventsPublished.WithLabelValues("error"))

	RecordRatingEvent(nil)
	RecordRatingEvent(errors.New("broker down"))

	assert.Equal(t, okBefore+1, testutil.ToFloat64(RatingEventsPublished.WithLabelValues("ok")))
	assert.Equal(t, errBefore+1, testutil.ToFloat64(RatingEventsPublished.WithLabelValues("error")))
}
