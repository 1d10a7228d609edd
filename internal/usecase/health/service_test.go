package health

import (
	"context"
	"errors"
	"testing"
)

// --- Mocks ---

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

// --- Tests ---

func TestCheck_AllHealthy(t *testing.T) {
	svc := New(&mockPinger{}, &mockPinger{})
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if r.Checks["search"] != CheckOK {
		t.Errorf("expected search %q, got %q", CheckOK, r.Checks["search"])
	}
	if r.Checks["profiles"] != CheckOK {
		t.Errorf("expected profiles %q, got %q", CheckOK, r.Checks["profiles"])
	}
}

func TestCheck_SearchError(t *testing.T) {
	svc := New(&mockPinger{err: errors.New("conn refused")}, &mockPinger{})
	r := svc.Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.Checks["search"] != CheckError {
		t.Errorf("expected search %q, got %q", CheckError, r.Checks["search"])
	}
	if r.Checks["profiles"] != CheckOK {
		t.Errorf("expected profiles %q, got %q", CheckOK, r.Checks["profiles"])
	}
}

func TestCheck_ProfilesError(t *testing.T) {
	svc := New(&mockPinger{}, &mockPinger{err: errors.New("timeout")})
	r := svc.Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.Checks["profiles"] != CheckError {
		t.Errorf("expected profiles %q, got %q", CheckError, r.Checks["profiles"])
	}
}

func TestCheck_AllFailing(t *testing.T) {
	svc := New(&mockPinger{err: errors.New("down")}, &mockPinger{err: errors.New("down")})
	r := svc.Check(context.Background())

	if r.Status != Unhealthy {
		t.Errorf("expected %q, got %q", Unhealthy, r.Status)
	}
}

func TestCheck_NilProfiles(t *testing.T) {
	svc := New(&mockPinger{}, nil)
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if _, ok := r.Checks["profiles"]; ok {
		t.Error("profiles check should be absent when no store is configured")
	}
}

func TestCheck_OnlySearchFailing(t *testing.T) {
	svc := New(&mockPinger{err: errors.New("down")}, nil)
	r := svc.Check(context.Background())

	if r.Status != Unhealthy {
		t.Errorf("the sole configured check failing means %q, got %q", Unhealthy, r.Status)
	}
}
