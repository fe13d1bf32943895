package taskpanel

import "testing"

func TestBaseFromScript(t *testing.T) {
	cases := []struct {
		script string
		want   string
	}{
		{"https://juf.example/klas/script.js", "https://juf.example/klas/"},
		{"https://juf.example/script.js", "https://juf.example/"},
		{"http://localhost:8080/static/js/script.js?v=2", "http://localhost:8080/static/js/"},
	}
	for _, tc := range cases {
		base, err := BaseFromScript(tc.script)
		if err != nil {
			t.Fatalf("BaseFromScript(%q): %v", tc.script, err)
		}
		if got := base.String(); got != tc.want {
			t.Fatalf("BaseFromScript(%q) = %q, want %q", tc.script, got, tc.want)
		}
	}

	base, err := BaseFromScript("")
	if err != nil || base != nil {
		t.Fatalf("empty script should give a nil base, got %v, %v", base, err)
	}
	if _, err := BaseFromScript("http://[::1"); err == nil {
		t.Fatalf("expected an error for a malformed url")
	}
}

func TestResolve(t *testing.T) {
	base, err := BaseFromScript("https://juf.example/klas/script.js")
	if err != nil {
		t.Fatalf("BaseFromScript: %v", err)
	}
	if got := Resolve(base, "extra/Kleurpotloden.png"); got != "https://juf.example/klas/extra/Kleurpotloden.png" {
		t.Fatalf("Resolve = %q", got)
	}
	if got := Resolve(nil, "extra/Kleurpotloden.png"); got != "extra/Kleurpotloden.png" {
		t.Fatalf("Resolve without base = %q", got)
	}
	if got := Resolve(base, "%zz"); got != "%zz" {
		t.Fatalf("Resolve of unparsable path = %q", got)
	}
}
