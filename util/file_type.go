// Package util contains small helpers used across the application that
// don't match any other package
package util

import (
	"path"
	"strings"

	"storeit/model"
)

var typeByExtension = map[string]model.FileType{
	// documents
	"pdf": model.TypeDocument, "doc": model.TypeDocument, "docx": model.TypeDocument,
	"txt": model.TypeDocument, "xls": model.TypeDocument, "xlsx": model.TypeDocument,
	"csv": model.TypeDocument, "rtf": model.TypeDocument, "ods": model.TypeDocument,
	"ppt": model.TypeDocument, "odp": model.TypeDocument, "md": model.TypeDocument,
	"html": model.TypeDocument, "htm": model.TypeDocument, "epub": model.TypeDocument,
	"pages": model.TypeDocument, "fig": model.TypeDocument, "psd": model.TypeDocument,
	"ai": model.TypeDocument, "indd": model.TypeDocument, "xd": model.TypeDocument,
	"sketch": model.TypeDocument, "afdesign": model.TypeDocument, "afphoto": model.TypeDocument,

	// images
	"jpg": model.TypeImage, "jpeg": model.TypeImage, "png": model.TypeImage,
	"gif": model.TypeImage, "bmp": model.TypeImage, "svg": model.TypeImage,
	"webp": model.TypeImage,

	// video
	"mp4": model.TypeVideo, "avi": model.TypeVideo, "mov": model.TypeVideo,
	"mkv": model.TypeVideo, "webm": model.TypeVideo,

	// audio
	"mp3": model.TypeAudio, "wav": model.TypeAudio, "ogg": model.TypeAudio,
	"flac": model.TypeAudio,
}

// GetFileType derives the category and extension from a file name. The
// mapping is total: anything without a known extension is "other".
func GetFileType(name string) (model.FileType, string) {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(name), "."))
	if ext == "" {
		return model.TypeOther, ""
	}

	t, ok := typeByExtension[ext]
	if !ok {
		return model.TypeOther, ext
	}

	return t, ext
}
