package textutil

import (
	"regexp"
	"testing"
)

func TestCleanFileName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"My Talk (final).mp4", "My_Talk_final.mp4"},
		{"/videos/__weird--name__.mkv", "weird_name.mkv"},
		{"podcast ep 12", "podcast_ep_12"},
		{"Café déjà vu.wav", "Caf_d_j_vu.wav"},
		{"", "untitled"},
		{"!!!.mp3", "untitled.mp3"},
	}
	for _, tt := range tests {
		if got := CleanFileName(tt.input, false); got != tt.want {
			t.Errorf("CleanFileName(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestCleanFileNameUnique(t *testing.T) {
	pattern := regexp.MustCompile(`^My_Talk_[0-9a-f]{6}\.mp4$`)
	first := CleanFileName("My Talk.mp4", true)
	second := CleanFileName("My Talk.mp4", true)
	if !pattern.MatchString(first) || !pattern.MatchString(second) {
		t.Fatalf("unexpected unique names: %q, %q", first, second)
	}
	if first == second {
		t.Fatalf("expected distinct suffixes, got %q twice", first)
	}
}

func TestStemOf(t *testing.T) {
	if got := StemOf("/a/b/talk.final.json"); got != "talk.final" {
		t.Fatalf("StemOf = %q", got)
	}
}
