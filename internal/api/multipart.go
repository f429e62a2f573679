package api

import (
	"io"
	"net/http"

	"startup-hub/backend/internal/common"
	"startup-hub/backend/internal/models/dtos"
)

// imageFormField is the multipart field name the clients upload under.
const imageFormField = "image"

// readImageFile pulls the optional image out of an already-parsed multipart
// form. Returns nil without error when no file was attached.
func readImageFile(r *http.Request) (*dtos.ImageFile, error) {
	file, header, err := r.FormFile(imageFormField)
	if err == http.ErrMissingFile {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, common.MaxImageSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > common.MaxImageSize {
		return nil, common.ErrImageTooLarge
	}

	return &dtos.ImageFile{Name: header.Filename, Data: data}, nil
}
