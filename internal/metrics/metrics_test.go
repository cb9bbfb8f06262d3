package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveFlow(t *testing.T) {
	beforeOK := testutil.ToFloat64(flowsTotal.WithLabelValues("test", OutcomeSuccess))
	beforeErr := testutil.ToFloat64(flowsTotal.WithLabelValues("test", OutcomeFailure))

	ObserveFlow("test", nil)
	ObserveFlow("test", errors.New("boom"))
	ObserveFlow("test", errors.New("boom"))

	if got := testutil.ToFloat64(flowsTotal.WithLabelValues("test", OutcomeSuccess)) - beforeOK; got != 1 {
		t.Errorf("success delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(flowsTotal.WithLabelValues("test", OutcomeFailure)) - beforeErr; got != 2 {
		t.Errorf("failure delta = %v, want 2", got)
	}
}

func TestRegistryGathers(t *testing.T) {
	ObserveRequestDuration("GET", 0.01)
	ObserveFlow("gather", nil)

	families, err := Registry().Gather()
	if err != nil {
		t.Fatal(err)
	}
	found := map[string]bool{}
	for _, f := range families {
		found[f.GetName()] = true
	}
	for _, name := range []string{"postboard_flows_total", "postboard_request_duration_seconds"} {
		if !found[name] {
			t.Errorf("registry missing %s", name)
		}
	}
}
