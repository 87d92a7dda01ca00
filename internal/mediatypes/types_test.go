package mediatypes

import (
	"errors"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		path string
		want Kind
	}{
		{
			name: "MP4 video",
			path: "clip.mp4",
			want: KindVideo,
		},
		{
			name: "MKV video",
			path: "/input/movie.mkv",
			want: KindVideo,
		},
		{
			name: "uppercase extension",
			path: "CLIP.MOV",
			want: KindVideo,
		},
		{
			name: "JPEG image",
			path: "photo.jpg",
			want: KindImage,
		},
		{
			name: "PNG image",
			path: "shot.png",
			want: KindImage,
		},
		{
			name: "animated GIF gets its own variant",
			path: "loop.gif",
			want: KindGif,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Classify(tt.path)
			if err != nil {
				t.Fatalf("Classify(%q) returned error: %v", tt.path, err)
			}
			if got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestClassifyUnsupported(t *testing.T) {
	for _, path := range []string{"notes.txt", "archive.zip", "noext", ""} {
		_, err := Classify(path)
		if !errors.Is(err, ErrUnsupportedMediaKind) {
			t.Errorf("Classify(%q) error = %v, want ErrUnsupportedMediaKind", path, err)
		}
	}
}

func TestIsMediaFile(t *testing.T) {
	if !IsMediaFile("a.webm") {
		t.Error("IsMediaFile(a.webm) = false, want true")
	}
	if IsMediaFile("a.doc") {
		t.Error("IsMediaFile(a.doc) = true, want false")
	}
}
