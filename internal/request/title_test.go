package request

import (
	"strings"
	"testing"
)

func TestTitleFirstLineAndPrefix(t *testing.T) {
	got := Title(Feature, "Dark mode please\nIt burns my eyes at night.")
	want := "[Feature] Dark mode please"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestTitleKeepsExistingLabel(t *testing.T) {
	got := Title(Feature, "Feature request: dark mode")
	if got != "Feature request: dark mode" {
		t.Fatalf("label should not be prefixed twice, got %q", got)
	}
}

func TestTitleTruncation(t *testing.T) {
	long := strings.Repeat("x", 200)
	got := Title(Feature, long)
	want := "[Feature] " + strings.Repeat("x", 80)
	if got != want {
		t.Fatalf("got %d runes %q", len([]rune(got)), got)
	}
}

func TestTitleBizDevNormalization(t *testing.T) {
	cases := []struct {
		line string
		want string
	}{
		{"add Acme Corp to bd", "[BD] Add Acme Corp"},
		{"Add Initech to business development please", "[BD] Add Initech"},
		{"met Acme at the conference", "[BD] met Acme at the conference"},
	}
	for _, tc := range cases {
		if got := Title(BizDev, tc.line); got != tc.want {
			t.Fatalf("Title(BizDev, %q) = %q, want %q", tc.line, got, tc.want)
		}
	}
}
