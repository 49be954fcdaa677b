package ttyguard

import "testing"

func TestShouldSuppressTTYQueries(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		robot bool
		test  bool
		want  bool
	}{
		{"interactive", []string{"academy"}, false, false, false},
		{"open lesson", []string{"academy", "open", "membership-model"}, false, false, false},
		{"json flag", []string{"academy", "list", "--json"}, false, false, true},
		{"json assignment", []string{"academy", "stats", "--json=true"}, false, false, true},
		{"version", []string{"academy", "--version"}, false, false, true},
		{"help", []string{"academy", "-h"}, false, false, true},
		{"robot env", []string{"academy"}, true, false, true},
		{"test env", []string{"academy"}, false, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShouldSuppressTTYQueries(tt.args, tt.robot, tt.test); got != tt.want {
				t.Errorf("ShouldSuppressTTYQueries(%v, %v, %v) = %v, want %v", tt.args, tt.robot, tt.test, got, tt.want)
			}
		})
	}
}
