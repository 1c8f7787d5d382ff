package otel_test

import (
	"context"
	"testing"

	"github.com/octofit/tracker/internal/platform/otel"
)

func TestSetupIsNoopWithoutEndpoint(t *testing.T) {
	tests := []struct {
		name     string
		endpoint string
		enabled  string
	}{
		{name: "empty endpoint", endpoint: "", enabled: ""},
		{name: "explicitly disabled", endpoint: "http://localhost:4318", enabled: "false"},
		{name: "disabled ignores case", endpoint: "http://localhost:4318", enabled: "FALSE"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(otel.EnvEndpoint, tc.endpoint)
			t.Setenv(otel.EnvEnabled, tc.enabled)
			t.Setenv(otel.EnvSampleRatio, "")

			shutdown, err := otel.Setup(context.Background(), "octofit-test")
			if err != nil {
				t.Fatalf("Setup() error = %v", err)
			}
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			if err := shutdown(ctx); err != nil {
				t.Fatalf("noop shutdown error = %v", err)
			}
		})
	}
}

func TestSetupCreatesProviderWhenEndpointSet(t *testing.T) {
	// Non-routable address; nothing is exported.
	t.Setenv(otel.EnvEndpoint, "http://192.0.2.1:4318")
	t.Setenv(otel.EnvEnabled, "")
	t.Setenv(otel.EnvSampleRatio, "0.25")

	shutdown, err := otel.Setup(context.Background(), "octofit-test")
	if err != nil {
		t.Fatalf("Setup() error = %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error = %v", err)
	}
}

func TestSetupRejectsBadSampleRatio(t *testing.T) {
	for _, ratio := range []string{"half", "-0.1", "1.5"} {
		t.Run(ratio, func(t *testing.T) {
			t.Setenv(otel.EnvEndpoint, "http://192.0.2.1:4318")
			t.Setenv(otel.EnvEnabled, "")
			t.Setenv(otel.EnvSampleRatio, ratio)

			if _, err := otel.Setup(context.Background(), "octofit-test"); err == nil {
				t.Fatal("Setup() error = nil")
			}
		})
	}
}
