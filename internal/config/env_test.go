package config

import (
	"testing"
	"time"
)

// TestGetEnvFallback verifies that unset variables return the fallback
func TestGetEnvFallback(t *testing.T) {
	t.Setenv("SWOOSH_TEST_SET", "value")

	if got := GetEnv("SWOOSH_TEST_SET", "fallback"); got != "value" {
		t.Errorf("Expected value, got %q", got)
	}
	if got := GetEnv("SWOOSH_TEST_UNSET", "fallback"); got != "fallback" {
		t.Errorf("Expected fallback, got %q", got)
	}
}

// TestGetEnvInt verifies parsing and error reporting for integers
func TestGetEnvInt(t *testing.T) {
	t.Setenv("SWOOSH_TEST_PORT", "2222")
	n, err := GetEnvInt("SWOOSH_TEST_PORT", 1)
	if err != nil || n != 2222 {
		t.Errorf("Expected 2222, got %d (err %v)", n, err)
	}

	t.Setenv("SWOOSH_TEST_PORT", "nope")
	n, err = GetEnvInt("SWOOSH_TEST_PORT", 7)
	if err == nil {
		t.Error("Expected an error for a malformed integer")
	}
	if n != 7 {
		t.Errorf("Expected fallback 7 on error, got %d", n)
	}
}

// TestGetEnvFloatAndDuration verifies the float and duration helpers
func TestGetEnvFloatAndDuration(t *testing.T) {
	t.Setenv("SWOOSH_TEST_FLOAT", "0.25")
	t.Setenv("SWOOSH_TEST_DUR", "300ms")

	f, err := GetEnvFloat("SWOOSH_TEST_FLOAT", 1)
	if err != nil || f != 0.25 {
		t.Errorf("Expected 0.25, got %v (err %v)", f, err)
	}

	d, err := GetEnvDuration("SWOOSH_TEST_DUR", time.Second)
	if err != nil || d != 300*time.Millisecond {
		t.Errorf("Expected 300ms, got %v (err %v)", d, err)
	}

	d, err = GetEnvDuration("SWOOSH_TEST_DUR_UNSET", time.Second)
	if err != nil || d != time.Second {
		t.Errorf("Expected fallback 1s, got %v (err %v)", d, err)
	}
}

// TestGetEnvBool verifies accepted spellings
func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		value    string
		fallback bool
		want     bool
	}{
		{"on", false, true},
		{"1", false, true},
		{"off", true, false},
		{"no", true, false},
		{"maybe", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("SWOOSH_TEST_BOOL", tt.value)
			if got := GetEnvBool("SWOOSH_TEST_BOOL", tt.fallback); got != tt.want {
				t.Errorf("GetEnvBool(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}
