package workflow

import "testing"

func TestIsURL(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"https://youtu.be/abc", true},
		{"http://example.com/talk.mp4", true},
		{"/home/user/talk.mp4", false},
		{"talk.mp4", false},
	}
	for _, tt := range tests {
		if got := IsURL(tt.input); got != tt.want {
			t.Errorf("IsURL(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestIsAudioFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/media/talk.wav", true},
		{"/media/talk.MP3", true},
		{"/media/talk.flac", true},
		{"/media/talk.mp4", false},
		{"/media/talk", false},
	}
	for _, tt := range tests {
		if got := IsAudioFile(tt.path); got != tt.want {
			t.Errorf("IsAudioFile(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestBaseName(t *testing.T) {
	if got := baseName("/out/Some Talk.mp4"); got != "Some Talk" {
		t.Errorf("baseName = %q", got)
	}
	if got := baseName("talk"); got != "talk" {
		t.Errorf("baseName = %q", got)
	}
}
