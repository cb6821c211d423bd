package request

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/schema"

	"github.com/Pesokrava/ratingfy/internal/domain"
)

const (
	maxRequestBodySize = 1 << 20 // 1MB
	maxMemory          = 32 << 20
)

// MediaFields are the multipart field names accepted for attachments
var MediaFields = []string{"media", "media[]"}

var decoder = newDecoder()

func newDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}

// DecodeJSON decodes JSON request body into the provided struct with size limit
func DecodeJSON(r *http.Request, v interface{}) error {
	defer r.Body.Close()

	// Limit request body size to prevent DoS attacks
	limitedReader := io.LimitReader(r.Body, maxRequestBodySize)

	if err := json.NewDecoder(limitedReader).Decode(v); err != nil {
		return fmt.Errorf("failed to decode JSON: %w", err)
	}
	return nil
}

// GetInt64Param extracts a positive integer parameter from the URL
func GetInt64Param(r *http.Request, key string) (int64, error) {
	param := chi.URLParam(r, key)
	if param == "" {
		return 0, fmt.Errorf("missing parameter: %s", key)
	}

	id, err := strconv.ParseInt(param, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, param)
	}

	return id, nil
}

// ParseForm reads a multipart or urlencoded body of at most maxBytes and
// returns its text fields.
func ParseForm(w http.ResponseWriter, r *http.Request, maxBytes int64) (url.Values, error) {
	if maxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	}

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxMemory); err != nil {
			return nil, fmt.Errorf("failed to parse multipart form: %w", err)
		}
		return r.MultipartForm.Value, nil
	}

	if err := r.ParseForm(); err != nil {
		return nil, fmt.Errorf("failed to parse form: %w", err)
	}
	return r.PostForm, nil
}

// DecodeForm maps form values onto dst using `schema` tags
func DecodeForm(values url.Values, dst interface{}) error {
	if err := decoder.Decode(dst, values); err != nil {
		return fmt.Errorf("invalid form: %w", err)
	}
	return nil
}

// MediaFiles reads every uploaded attachment in field order. The declared
// content type is trusted when present, otherwise it is sniffed.
func MediaFiles(r *http.Request) ([]domain.MediaFile, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}

	var files []domain.MediaFile
	for _, field := range MediaFields {
		for _, header := range r.MultipartForm.File[field] {
			file, err := readFile(header)
			if err != nil {
				return nil, err
			}
			files = append(files, file)
		}
	}
	return files, nil
}

func readFile(header *multipart.FileHeader) (domain.MediaFile, error) {
	f, err := header.Open()
	if err != nil {
		return domain.MediaFile{}, fmt.Errorf("failed to open %s: %w", header.Filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return domain.MediaFile{}, fmt.Errorf("failed to read %s: %w", header.Filename, err)
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}

	return domain.MediaFile{
		Name:        header.Filename,
		ContentType: contentType,
		Data:        data,
	}, nil
}

// ExistingMedia reads the retained attachment list. Clients send either one
// JSON array or the field repeated once per path.
func ExistingMedia(values url.Values) ([]string, error) {
	raw := append(append([]string{}, values["existingMedia"]...), values["existingMedia[]"]...)
	if len(raw) == 0 {
		return nil, nil
	}

	if len(raw) == 1 && strings.HasPrefix(strings.TrimSpace(raw[0]), "[") {
		var paths []string
		if err := json.Unmarshal([]byte(raw[0]), &paths); err != nil {
			return nil, fmt.Errorf("existingMedia is not a JSON array of strings: %w", err)
		}
		return paths, nil
	}

	paths := make([]string, 0, len(raw))
	for _, p := range raw {
		if p = strings.TrimSpace(p); p != "" {
			paths = append(paths, p)
		}
	}
	return paths, nil
}

// DropBlank removes fields whose every value is blank
func DropBlank(values url.Values, keys ...string) {
	for _, key := range keys {
		blank := true
		for _, v := range values[key] {
			if strings.TrimSpace(v) != "" {
				blank = false
				break
			}
		}
		if blank {
			values.Del(key)
		}
	}
}
