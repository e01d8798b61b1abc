package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestCountersRegistered(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := New(reg)

	m.CartAdds.Inc()
	m.CartAdds.Inc()
	m.Handoffs.WithLabelValues("whatsapp").Inc()
	m.ValidationFailures.WithLabelValues("phone").Inc()

	require.Equal(t, 2.0, testutil.ToFloat64(m.CartAdds))
	require.Equal(t, 1.0, testutil.ToFloat64(m.Handoffs.WithLabelValues("whatsapp")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.ValidationFailures.WithLabelValues("phone")))

	n, err := testutil.GatherAndCount(reg)
	require.NoError(t, err)
	require.Equal(t, 5, n)
}
