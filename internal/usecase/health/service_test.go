package health

import (
	"context"
	"errors"
	"testing"
)

type mockStore struct {
	err error
}

func (m *mockStore) Ping(_ context.Context) error { return m.err }

type mockProvider struct {
	err error
}

func (m *mockProvider) HealthCheck(_ context.Context) error { return m.err }

func TestCheck_AllHealthy(t *testing.T) {
	svc := New(&mockStore{}, &mockProvider{})
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if r.Checks[CheckStore].Status != CheckOK {
		t.Errorf("expected store %q, got %q", CheckOK, r.Checks[CheckStore].Status)
	}
	if r.Checks[CheckProvider].Status != CheckOK {
		t.Errorf("expected provider %q, got %q", CheckOK, r.Checks[CheckProvider].Status)
	}
}

func TestCheck_StoreDownIsUnhealthy(t *testing.T) {
	svc := New(&mockStore{err: errors.New("conn refused")}, &mockProvider{})
	r := svc.Check(context.Background())

	if r.Status != Unhealthy {
		t.Errorf("expected %q, got %q", Unhealthy, r.Status)
	}
	if r.Checks[CheckStore].Status != CheckError {
		t.Errorf("expected store %q, got %q", CheckError, r.Checks[CheckStore].Status)
	}
	if r.Checks[CheckStore].Error != "conn refused" {
		t.Errorf("expected failure detail, got %q", r.Checks[CheckStore].Error)
	}
	if r.Checks[CheckProvider].Status != CheckOK {
		t.Errorf("expected provider %q, got %q", CheckOK, r.Checks[CheckProvider].Status)
	}
}

func TestCheck_ProviderDownIsDegraded(t *testing.T) {
	svc := New(&mockStore{}, &mockProvider{err: errors.New("timeout")})
	r := svc.Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.Checks[CheckStore].Status != CheckOK {
		t.Errorf("expected store %q, got %q", CheckOK, r.Checks[CheckStore].Status)
	}
	if r.Checks[CheckProvider].Status != CheckError {
		t.Errorf("expected provider %q, got %q", CheckError, r.Checks[CheckProvider].Status)
	}
	if r.Checks[CheckProvider].Error != "timeout" {
		t.Errorf("expected failure detail, got %q", r.Checks[CheckProvider].Error)
	}
}

func TestCheck_BothDownIsUnhealthy(t *testing.T) {
	svc := New(
		&mockStore{err: errors.New("store down")},
		&mockProvider{err: errors.New("provider down")},
	)
	r := svc.Check(context.Background())

	if r.Status != Unhealthy {
		t.Errorf("expected %q, got %q", Unhealthy, r.Status)
	}
	if r.Checks[CheckStore].Status != CheckError {
		t.Error("expected store error")
	}
	if r.Checks[CheckProvider].Status != CheckError {
		t.Error("expected provider error")
	}
}

func TestCheck_NoProvider(t *testing.T) {
	svc := New(&mockStore{}, nil)
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if _, ok := r.Checks[CheckProvider]; ok {
		t.Error("provider check should be absent when no provider is configured")
	}
}

func TestCheck_NoProvider_StoreDown(t *testing.T) {
	svc := New(&mockStore{err: errors.New("fail")}, nil)
	r := svc.Check(context.Background())

	if r.Status != Unhealthy {
		t.Errorf("expected %q, got %q", Unhealthy, r.Status)
	}
	if r.Checks[CheckStore].Status != CheckError {
		t.Error("expected store error")
	}
}
