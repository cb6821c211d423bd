package media

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"path"
	"regexp"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"

	"github.com/Pesokrava/ratingfy/internal/domain"
	"github.com/Pesokrava/ratingfy/internal/pkg/metrics"
)

var versionSegment = regexp.MustCompile(`^v\d+$`)

type uploadAPI interface {
	Upload(ctx context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error)
	Destroy(ctx context.Context, params uploader.DestroyParams) (*uploader.DestroyResult, error)
}

// CloudinaryStore keeps attachments in Cloudinary and references them by secure URL
type CloudinaryStore struct {
	api    uploadAPI
	folder string
}

// NewCloudinaryStore connects using a cloudinary:// URL
func NewCloudinaryStore(cloudinaryURL, folder string) (*CloudinaryStore, error) {
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init: %w", err)
	}
	return &CloudinaryStore{api: &cld.Upload, folder: folder}, nil
}

// Store uploads the file and returns its secure URL
func (s *CloudinaryStore) Store(ctx context.Context, file domain.MediaFile) (string, error) {
	params := uploader.UploadParams{
		PublicID:     uuid.NewString(),
		Folder:       s.folder,
		ResourceType: resourceType(file.ContentType),
	}

	result, err := s.api.Upload(ctx, bytes.NewReader(file.Data), params)
	if err == nil && result.Error.Message != "" {
		err = fmt.Errorf("%s", result.Error.Message)
	}
	if err != nil {
		metrics.MediaStoredTotal.WithLabelValues("cloudinary", "error").Inc()
		return "", fmt.Errorf("%w: cloudinary upload: %v", domain.ErrUpstreamUnavailable, err)
	}

	metrics.MediaStoredTotal.WithLabelValues("cloudinary", "success").Inc()
	return result.SecureURL, nil
}

// Remove destroys the asset behind a URL returned by Store. URLs that are not
// Cloudinary delivery URLs are ignored.
func (s *CloudinaryStore) Remove(ctx context.Context, rawURL string) error {
	publicID, kind, ok := parseDeliveryURL(rawURL)
	if !ok {
		return nil
	}

	result, err := s.api.Destroy(ctx, uploader.DestroyParams{PublicID: publicID, ResourceType: kind})
	if err != nil {
		return fmt.Errorf("cloudinary destroy: %w", err)
	}
	if result.Error.Message != "" {
		return fmt.Errorf("cloudinary destroy: %s", result.Error.Message)
	}
	return nil
}

func resourceType(contentType string) string {
	if strings.HasPrefix(strings.ToLower(contentType), "video/") {
		return "video"
	}
	return "image"
}

// parseDeliveryURL extracts the public id and resource type from
// https://res.cloudinary.com/<cloud>/<type>/upload/[v123/]<folder>/<id>.<ext>
func parseDeliveryURL(rawURL string) (publicID, kind string, ok bool) {
	u, err := url.Parse(rawURL)
	if err != nil || !strings.HasSuffix(u.Host, "cloudinary.com") {
		return "", "", false
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i := 1; i < len(segments); i++ {
		if segments[i] != "upload" {
			continue
		}
		kind = segments[i-1]
		rest := segments[i+1:]
		if len(rest) > 0 && versionSegment.MatchString(rest[0]) {
			rest = rest[1:]
		}
		if len(rest) == 0 {
			return "", "", false
		}
		id := strings.Join(rest, "/")
		id = strings.TrimSuffix(id, path.Ext(id))
		return id, kind, true
	}

	return "", "", false
}
