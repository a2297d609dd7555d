package prometheus

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	goIdentity "github.com/MrEthical07/goIdentity"
)

type fakeSource struct {
	snapshot goIdentity.MetricsSnapshot
	dropped  uint64
}

func (f fakeSource) MetricsSnapshot() goIdentity.MetricsSnapshot { return f.snapshot }
func (f fakeSource) AuditDropped() uint64                        { return f.dropped }

func TestRenderEmptyWhenMetricsDisabled(t *testing.T) {
	exp := NewPrometheusExporterFromSource(fakeSource{
		snapshot: goIdentity.MetricsSnapshot{
			Counters: map[goIdentity.MetricID]uint64{},
		},
		dropped: 0,
	})

	if got := exp.Render(); got != "" {
		t.Fatalf("expected empty output for disabled metrics, got:\n%s", got)
	}
}

func TestRenderDeterministicIncludesCounters(t *testing.T) {
	exp := NewPrometheusExporterFromSource(fakeSource{
		snapshot: goIdentity.MetricsSnapshot{
			Counters: map[goIdentity.MetricID]uint64{
				goIdentity.MetricLoginSuccess:    7,
				goIdentity.MetricRegisterSuccess: 3,
			},
		},
		dropped: 2,
	})

	out := exp.Render()
	if !strings.Contains(out, "goidentity_login_success_total 7") {
		t.Fatalf("expected login_success counter in output, got:\n%s", out)
	}
	if !strings.Contains(out, "goidentity_register_success_total 3") {
		t.Fatalf("expected register_success counter in output, got:\n%s", out)
	}
	if !strings.Contains(out, "goidentity_audit_dropped_total 2") {
		t.Fatalf("expected audit dropped counter in output, got:\n%s", out)
	}
	if !strings.Contains(out, "# TYPE goidentity_login_success_total counter") {
		t.Fatalf("expected TYPE line in output, got:\n%s", out)
	}
}

func TestHandlerWritesPrometheusContentType(t *testing.T) {
	exp := NewPrometheusExporterFromSource(fakeSource{
		snapshot: goIdentity.MetricsSnapshot{
			Counters: map[goIdentity.MetricID]uint64{goIdentity.MetricLoginSuccess: 1},
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	exp.Handler().ServeHTTP(rec, req)

	if got := rec.Header().Get("Content-Type"); !strings.Contains(got, "text/plain") {
		t.Fatalf("expected prometheus content type, got %q", got)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func BenchmarkRender(b *testing.B) {
	exp := NewPrometheusExporterFromSource(fakeSource{
		snapshot: goIdentity.MetricsSnapshot{
			Counters: map[goIdentity.MetricID]uint64{
				goIdentity.MetricRegisterSuccess: 120,
				goIdentity.MetricLoginSuccess:    1000,
				goIdentity.MetricLoginFailure:    40,
				goIdentity.MetricRefreshSuccess:  800,
				goIdentity.MetricRefreshFailure:  10,
				goIdentity.MetricIdentifySuccess: 6000,
				goIdentity.MetricTokenPairIssued: 1120,
			},
		},
		dropped: 0,
	})

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = exp.Render()
	}
}
