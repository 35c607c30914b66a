package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMeasures(t *testing.T) {
	Init(WithZapExporter(zap.NewNop()), WithReportingPeriod(time.Minute))

	counter := Counter("depot/test/counter", "a test counter")
	require.NotNil(t, counter)
	Inc(counter)
	Inc(counter, map[string]string{"op": "test"})

	timing := Timing("depot/test/timing", "a test timing")
	require.NotNil(t, timing)
	Since(time.Now(), timing)
}

func TestInitOnce(t *testing.T) {
	Init()
	first := mp
	Init(WithReportingPeriod(time.Hour))
	assert.Equal(t, first, mp)
}
