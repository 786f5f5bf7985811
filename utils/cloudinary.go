package utils

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

const mediaFolder = "saweria/media"

// MediaMirror re-hosts donation media on Cloudinary so links in old
// notifications keep working after Saweria expires them.
type MediaMirror struct {
	cld *cloudinary.Cloudinary
}

// NewMediaMirror returns nil when cloudinaryURL is empty; a nil mirror passes URLs through.
func NewMediaMirror(cloudinaryURL string) (*MediaMirror, error) {
	if cloudinaryURL == "" {
		return nil, nil
	}
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}
	slog.Info("✅ Cloudinary initialized")
	return &MediaMirror{cld: cld}, nil
}

// Mirror uploads the remote file and returns its secure URL. On any failure
// the original URL is returned so the notification still has something to show.
func (m *MediaMirror) Mirror(ctx context.Context, donationID, mediaURL string) string {
	if m == nil || !isHTTPURL(mediaURL) {
		return mediaURL
	}

	// Upload ke Cloudinary
	result, err := m.cld.Upload.Upload(ctx, mediaURL, uploader.UploadParams{
		PublicID:     sanitizePublicID(donationID),
		Folder:       mediaFolder,
		ResourceType: "auto",
	})
	if err != nil {
		slog.Warn("media mirror failed", "donation_id", donationID, "err", err)
		return mediaURL
	}
	if result.Error.Message != "" {
		slog.Warn("media mirror rejected", "donation_id", donationID, "err", result.Error.Message)
		return mediaURL
	}
	if result.SecureURL == "" {
		return mediaURL
	}
	return result.SecureURL
}

func isHTTPURL(s string) bool {
	return strings.HasPrefix(s, "https://") || strings.HasPrefix(s, "http://")
}

// Clean id for use as a public id
func sanitizePublicID(id string) string {
	id = strings.ToLower(strings.TrimSpace(id))
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, id)
}
