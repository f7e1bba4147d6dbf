package util

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"storeit/model"
)

func TestGetFileType(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		wantType model.FileType
		wantExt  string
	}{
		{"pdf document", "report.pdf", model.TypeDocument, "pdf"},
		{"uppercase extension", "PHOTO.JPG", model.TypeImage, "jpg"},
		{"video", "clip.mp4", model.TypeVideo, "mp4"},
		{"audio", "song.flac", model.TypeAudio, "flac"},
		{"markdown", "notes.md", model.TypeDocument, "md"},
		{"unknown extension", "archive.zip", model.TypeOther, "zip"},
		{"no extension", "Makefile", model.TypeOther, ""},
		{"trailing dot", "weird.", model.TypeOther, ""},
		{"multiple dots", "backup.tar.gz", model.TypeOther, "gz"},
		{"empty name", "", model.TypeOther, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotType, gotExt := GetFileType(tt.fileName)
			assert.Equal(t, tt.wantType, gotType)
			assert.Equal(t, tt.wantExt, gotExt)
		})
	}
}

// Same name in, same pair out, every time
func TestGetFileTypeDeterministic(t *testing.T) {
	for range 10 {
		gotType, gotExt := GetFileType("holiday.jpeg")
		assert.Equal(t, model.TypeImage, gotType)
		assert.Equal(t, "jpeg", gotExt)
	}
}
