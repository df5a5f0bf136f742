package metrics

import (
	"strings"
	"testing"
)

func TestRecorderTracksPublishesAndResidual(t *testing.T) {
	r := NewRecorder("flashmap_test")

	r.OnPublish(3)
	r.OnParked()
	r.OnUnparked()

	var buf strings.Builder
	r.Set().WritePrometheus(&buf)
	out := buf.String()

	for _, want := range []string{
		"flashmap_test_publishes_total 1",
		"flashmap_test_writer_parks_total 1",
		"flashmap_test_writer_unparks_total 1",
		"flashmap_test_last_publish_residual 3",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected exposition output to contain %q, got:\n%s", want, out)
		}
	}
}
