package health

import (
	"context"
	"errors"
	"testing"
)

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

func TestCheck_AllHealthy(t *testing.T) {
	svc := New(&mockPinger{}, &mockPinger{})

	report := svc.Check(context.Background())
	if report.Status != Healthy {
		t.Errorf("expected healthy, got %s", report.Status)
	}
	if report.Checks["cache"] != CheckOK || report.Checks["source"] != CheckOK {
		t.Errorf("unexpected checks %v", report.Checks)
	}
}

func TestCheck_NilCacheSkipped(t *testing.T) {
	svc := New(nil, &mockPinger{})

	report := svc.Check(context.Background())
	if report.Status != Healthy {
		t.Errorf("expected healthy, got %s", report.Status)
	}
	if _, ok := report.Checks["cache"]; ok {
		t.Error("disabled cache must not be checked")
	}
}

func TestCheck_SourceDown(t *testing.T) {
	svc := New(&mockPinger{}, &mockPinger{err: errors.New("refused")})

	report := svc.Check(context.Background())
	if report.Status != Degraded {
		t.Errorf("expected degraded, got %s", report.Status)
	}
	if report.Checks["source"] != CheckError {
		t.Errorf("unexpected checks %v", report.Checks)
	}
}

func TestCheck_CacheDown(t *testing.T) {
	svc := New(&mockPinger{err: errors.New("refused")}, &mockPinger{})

	report := svc.Check(context.Background())
	if report.Status != Degraded {
		t.Errorf("expected degraded, got %s", report.Status)
	}
}
