package ui

import (
	"testing"

	"pgregory.net/rapid"
)

func TestParseRoute(t *testing.T) {
	tests := []struct {
		path string
		want Route
	}{
		{"/", ListRoute()},
		{"", ListRoute()},
		{"/lesson/membership-model", LessonRoute("membership-model")},
		{"/lesson/membership-model/", LessonRoute("membership-model")},
		{"/lesson/", ListRoute()},
		{"/lesson", ListRoute()},
		{"/lesson/a/b", ListRoute()},
		{"/lessons/x", ListRoute()},
		{"/settings", ListRoute()},
		{"/lesson/with%20space", LessonRoute("with space")},
	}
	for _, tt := range tests {
		if got := ParseRoute(tt.path); got != tt.want {
			t.Errorf("ParseRoute(%q) = %+v, want %+v", tt.path, got, tt.want)
		}
	}
}

func TestRouteString(t *testing.T) {
	if got := ListRoute().String(); got != "/" {
		t.Errorf("list route = %q", got)
	}
	if got := LessonRoute("third-visit-rule").String(); got != "/lesson/third-visit-rule" {
		t.Errorf("lesson route = %q", got)
	}
}

func TestRouteRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		id := rapid.StringMatching(`[a-z0-9][a-z0-9 _.-]{0,20}`).Draw(t, "id")
		r := LessonRoute(id)
		if got := ParseRoute(r.String()); got != r {
			t.Fatalf("ParseRoute(%q) = %+v, want %+v", r.String(), got, r)
		}
	})
}
