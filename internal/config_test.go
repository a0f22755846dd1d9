package internal

import "testing"

func TestDefaultConfigValid(t *testing.T) {
	cfg := NewDefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should pass: %v", err)
	}
}

func TestConfigMissingStorePath(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Store.Path = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("empty store path should fail validation")
	}
}

func TestConfigInvalidPort(t *testing.T) {
	for _, port := range []int{0, -1, 70000} {
		cfg := NewDefaultConfig()
		cfg.App.HTTP.Port = port
		if err := cfg.Validate(); err == nil {
			t.Errorf("port %d should fail validation", port)
		}
	}
}

func TestHTTPAddress(t *testing.T) {
	cfg := HTTPConfig{Port: 9090}
	if got := cfg.Address(); got != ":9090" {
		t.Errorf("Address() = %q, want :9090", got)
	}
}

func TestBlobConfigOptional(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Blob.Path = ""
	if err := cfg.Validate(); err != nil {
		t.Fatalf("empty blob path should pass: %v", err)
	}
	if cfg.Blob.MediaEnabled() {
		t.Error("empty blob path should disable media")
	}
}
