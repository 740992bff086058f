package cli

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseAssignments(t *testing.T) {
	got, err := parseAssignments([]string{"style=icons", "networks.twitter=1", "networks.email=0", "license_key=a=b"})
	if err != nil {
		t.Fatalf("parseAssignments: %v", err)
	}
	want := map[string]any{
		"style":       "icons",
		"networks":    map[string]any{"twitter": "1", "email": "0"},
		"license_key": "a=b",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("parseAssignments mismatch (-want +got):\n%s", diff)
	}

	for _, bad := range []string{"style", "=1"} {
		if _, err := parseAssignments([]string{bad}); err == nil {
			t.Errorf("parseAssignments(%q) succeeded, want error", bad)
		}
	}
}
