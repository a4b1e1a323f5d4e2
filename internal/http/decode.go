package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/fjod/agromarket/internal/domain"
)

const multipartMemory = 8 << 20

func isMultipart(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "multipart/form-data"
}

// decodeJSON decodes the body into dst, reporting malformed input as an
// invalid argument.
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			return err
		}
		return fmt.Errorf("%w: invalid JSON body", domain.ErrInvalidArgument)
	}
	return nil
}

// decodePatch reads a partial update body as a generic JSON object.
func decodePatch(r *http.Request) (map[string]any, error) {
	var patch map[string]any
	if err := decodeJSON(r, &patch); err != nil {
		return nil, err
	}
	if patch == nil {
		return nil, fmt.Errorf("%w: body must be a JSON object", domain.ErrInvalidArgument)
	}
	return patch, nil
}

func parseMultipart(r *http.Request) error {
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			return err
		}
		return fmt.Errorf("%w: invalid multipart form", domain.ErrInvalidArgument)
	}
	return nil
}

// formFile returns the content of an optional single file field.
func formFile(r *http.Request, field string) ([]byte, error) {
	if r.MultipartForm == nil || len(r.MultipartForm.File[field]) == 0 {
		return nil, nil
	}
	return readFile(r.MultipartForm.File[field][0])
}

// formFiles returns the content of every file sent under field, up to max.
func formFiles(r *http.Request, field string, max int) ([][]byte, error) {
	if r.MultipartForm == nil {
		return [][]byte{}, nil
	}
	headers := r.MultipartForm.File[field]
	if len(headers) > max {
		return nil, fmt.Errorf("%w: at most %d files in %s", domain.ErrInvalidArgument, max, field)
	}
	files := make([][]byte, 0, len(headers))
	for _, fh := range headers {
		data, err := readFile(fh)
		if err != nil {
			return nil, err
		}
		files = append(files, data)
	}
	return files, nil
}

func readFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload %s: %w", fh.Filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload %s: %w", fh.Filename, err)
	}
	return data, nil
}

func formValue(r *http.Request, field string) string {
	return strings.TrimSpace(r.FormValue(field))
}

func now() time.Time {
	return time.Now().UTC()
}
