package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordGrant(t *testing.T) {
	beforeXP := testutil.ToFloat64(xpGranted)
	beforeLevels := testutil.ToFloat64(levelUps)
	beforeOK := testutil.ToFloat64(xpGrants.WithLabelValues("ok"))

	RecordGrant(260, 2)
	RecordGrant(10, 0)

	assert.Equal(t, beforeXP+270, testutil.ToFloat64(xpGranted))
	assert.Equal(t, beforeLevels+2, testutil.ToFloat64(levelUps))
	assert.Equal(t, beforeOK+2, testutil.ToFloat64(xpGrants.WithLabelValues("ok")))
}

func TestRecordGrantFailure(t *testing.T) {
	before := testutil.ToFloat64(xpGrants.WithLabelValues("not_found"))
	RecordGrantFailure("not_found")
	assert.Equal(t, before+1, testutil.ToFloat64(xpGrants.WithLabelValues("not_found")))
}
