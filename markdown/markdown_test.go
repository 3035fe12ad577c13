package markdown

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestHeadingDepth(t *testing.T) {
	tests := []struct {
		line string
		want int
	}{
		{"# Foo", 1},
		{"## Bar", 2},
		{"### Baz", 3},
		{"###### Six", 6},
		{"not a heading", 0},
		{"##no space", 0},
		{"#", 0},
		{"", 0},
		{" # indented", 0},
	}
	for _, tt := range tests {
		if got := HeadingDepth(tt.line); got != tt.want {
			t.Errorf("HeadingDepth(%q) = %d, want %d", tt.line, got, tt.want)
		}
	}
}

func TestListHeadings(t *testing.T) {
	md := "# Top\n\n## Sub\n\nsome text\n\n### Deep  \n#nope\n"
	want := []Heading{
		{Depth: 1, Text: "Top"},
		{Depth: 2, Text: "Sub"},
		{Depth: 3, Text: "Deep"},
	}
	if diff := cmp.Diff(want, ListHeadings(md)); diff != "" {
		t.Errorf("ListHeadings() mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractSection(t *testing.T) {
	md := strings.Join([]string{
		"# Top",
		"",
		"## API Design",
		"",
		"endpoints",
		"### Errors",
		"error body",
		"## Beta",
		"",
		"beta content",
		"## api again",
		"later",
	}, "\n")

	tests := []struct {
		name   string
		needle string
		want   string
		ok     bool
	}{
		{
			name:   "case insensitive first match",
			needle: "api",
			want:   "## API Design\n\nendpoints\n### Errors\nerror body",
			ok:     true,
		},
		{
			name:   "deeper heading stops at shallower",
			needle: "Errors",
			want:   "### Errors\nerror body",
			ok:     true,
		},
		{
			name:   "top heading runs to end",
			needle: "top",
			want:   md,
			ok:     true,
		},
		{
			name:   "last section runs to end",
			needle: "again",
			want:   "## api again\nlater",
			ok:     true,
		},
		{
			name:   "missing",
			needle: "nothing here",
			ok:     false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractSection(md, tt.needle)
			if ok != tt.ok {
				t.Fatalf("ExtractSection() ok = %v, want %v", ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("ExtractSection() = %q, want %q", got, tt.want)
			}
		})
	}
}

// Every heading, extracted by its own text, yields a block that starts at the
// heading and stops before the next heading of equal or lower depth.
func TestExtractSection_Bounds(t *testing.T) {
	md := "# A\nx\n## B\ny\n### C\nz\n## D\nw\n# E\nv\n"
	lines := Lines(md)
	for i, line := range lines {
		depth := HeadingDepth(line)
		if depth == 0 {
			continue
		}
		end := len(lines)
		for j := i + 1; j < len(lines); j++ {
			if d := HeadingDepth(lines[j]); d > 0 && d <= depth {
				end = j
				break
			}
		}
		want := strings.Join(lines[i:end], "\n")
		got, ok := ExtractSection(md, headingText(line))
		if !ok || got != want {
			t.Errorf("ExtractSection(%q) = %q, %v; want %q", line, got, ok, want)
		}
	}
}

func TestWindow(t *testing.T) {
	text := "a\nb\nc\nd\ne"
	if got := Window(text, 2, 4); got != "b\nc\nd" {
		t.Errorf("Window(2,4) = %q", got)
	}
	if got := Window(text, 4, 99); got != "d\ne" {
		t.Errorf("Window(4,99) = %q", got)
	}
	if got := Window(text, 9, 10); got != "" {
		t.Errorf("Window(9,10) = %q", got)
	}
}

func TestEstimateTokens(t *testing.T) {
	if got := EstimateTokens("1234"); got != 1 {
		t.Errorf("EstimateTokens(4 bytes) = %d", got)
	}
	if got := EstimateTokens(""); got != 0 {
		t.Errorf("EstimateTokens(empty) = %d", got)
	}
	if got := EstimateTokens("12345"); got != 2 {
		t.Errorf("EstimateTokens(5 bytes) = %d", got)
	}
}

func TestParseLineRange(t *testing.T) {
	start, end, err := ParseLineRange("10:50")
	if err != nil || start != 10 || end != 50 {
		t.Fatalf("ParseLineRange(10:50) = %d, %d, %v", start, end, err)
	}
	for _, bad := range []string{"10", "0:5", "5:2", "a:3", "3:b"} {
		if _, _, err := ParseLineRange(bad); err == nil {
			t.Errorf("ParseLineRange(%q) succeeded, want error", bad)
		}
	}
}
