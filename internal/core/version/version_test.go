package version

import "testing"

func TestInfo(t *testing.T) {
	got := Info("workshopdex")
	if got.Service != "workshopdex" || got.Version != "dev" || got.Commit != "none" || got.Date != "unknown" {
		t.Fatalf("Info = %+v", got)
	}
	if s := got.String(); s != "workshopdex dev (none, unknown)" {
		t.Fatalf("String = %q", s)
	}
}
