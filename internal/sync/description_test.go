package sync

import "testing"

func TestBuildDescription(t *testing.T) {
	tests := []struct {
		name string
		tags []string
		want string
	}{
		{"multiple tags", []string{"pet", "orange", "indoor"}, "pet, orange, indoor"},
		{"single tag", []string{"pet"}, "pet"},
		{"empty", nil, ""},
		{"duplicates preserved", []string{"pet", "pet"}, "pet, pet"},
		{"order preserved", []string{"b", "a"}, "b, a"},
		{"separator inside tag not escaped", []string{"a, b", "c"}, "a, b, c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BuildDescription(tt.tags); got != tt.want {
				t.Errorf("BuildDescription(%v) = %q, want %q", tt.tags, got, tt.want)
			}
		})
	}
}
