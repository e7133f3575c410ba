package handler

import (
	"fmt"
	"io"
	"mime/multipart"

	"github.com/gabriel-vasile/mimetype"

	"github.com/driveeasy/driveeasy-api/internal/payload"
)

// maxFileSize is the per-file upload ceiling.
const maxFileSize = 5 << 20

var allowedMimeTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"application/pdf": true,
}

// readUpload buffers an uploaded file, enforcing the size ceiling and the
// mime-type whitelist. The content type is sniffed from the bytes, not taken
// from the client-supplied header.
func readUpload(header *multipart.FileHeader) (payload.File, error) {
	if header.Size > maxFileSize {
		return payload.File{}, fmt.Errorf("file %s exceeds the 5MB limit", header.Filename)
	}

	file, err := header.Open()
	if err != nil {
		return payload.File{}, err
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxFileSize+1))
	if err != nil {
		return payload.File{}, err
	}
	if len(data) > maxFileSize {
		return payload.File{}, fmt.Errorf("file %s exceeds the 5MB limit", header.Filename)
	}

	if detected := mimetype.Detect(data); !allowedMimeTypes[detected.String()] {
		return payload.File{}, fmt.Errorf("invalid file type. Only JPEG, PNG, and PDF are allowed")
	}

	return payload.File{Name: header.Filename, Data: data}, nil
}

func readUploads(headers []*multipart.FileHeader) ([]payload.File, error) {
	files := make([]payload.File, 0, len(headers))
	for _, header := range headers {
		file, err := readUpload(header)
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}

	return files, nil
}
