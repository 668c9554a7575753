package media

import (
	"context"
	"slices"
	"testing"
)

func TestExtractBuildsExpectedArgs(t *testing.T) {
	extractor := NewExtractor(ExtractSettings{
		Codec:      "pcm_s16le",
		SampleRate: 16000,
		Channels:   1,
	})

	var gotName string
	var gotArgs []string
	extractor.WithCommandRunner(func(ctx context.Context, name string, args ...string) error {
		gotName = name
		gotArgs = args
		return nil
	})

	if err := extractor.Extract(context.Background(), "/in/video.mp4", "/out/audio.wav"); err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if gotName != "ffmpeg" {
		t.Errorf("binary = %q, want ffmpeg", gotName)
	}
	for _, want := range []string{"-i", "/in/video.mp4", "-ac", "1", "-ar", "16000", "-c:a", "pcm_s16le", "/out/audio.wav"} {
		if !slices.Contains(gotArgs, want) {
			t.Errorf("missing arg %q in %v", want, gotArgs)
		}
	}
}

func TestExtractDefaults(t *testing.T) {
	extractor := NewExtractor(ExtractSettings{})
	if extractor.settings.SampleRate != 16000 || extractor.settings.Channels != 1 || extractor.settings.Codec != "pcm_s16le" {
		t.Errorf("defaults not applied: %+v", extractor.settings)
	}
}

func TestExtractRejectsEmptyPaths(t *testing.T) {
	extractor := NewExtractor(ExtractSettings{})
	if err := extractor.Extract(context.Background(), "", "/out.wav"); err == nil {
		t.Error("expected error for empty source")
	}
	if err := extractor.Extract(context.Background(), "/in.mp4", ""); err == nil {
		t.Error("expected error for empty dest")
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    float64
		wantErr bool
	}{
		{"valid", `{"format": {"duration": "123.456"}}`, 123.456, false},
		{"missing", `{"format": {}}`, 0, true},
		{"garbage", `{"format": {"duration": "abc"}}`, 0, true},
		{"not json", `nope`, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDuration([]byte(tt.payload))
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("duration = %v, want %v", got, tt.want)
			}
		})
	}
}
