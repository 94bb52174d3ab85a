// Package assets wraps the remote image host. The storefront only needs two
// operations: store an uploaded image and delete a stored image by public id.
package assets

import (
	"context"
	"errors"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

const uploadFolder = "products"

type UploadResult struct {
	SecureURL string
	PublicID  string
	// Raw is the provider response, passed through to the admin client.
	Raw any
}

type Store interface {
	Upload(ctx context.Context, r io.Reader) (*UploadResult, error)
	Destroy(ctx context.Context, publicID string) error
}

type Cloudinary struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinary(cloudURL string) (*Cloudinary, error) {
	cld, err := cloudinary.NewFromURL(cloudURL)
	if err != nil {
		return nil, err
	}
	cld.Config.URL.Secure = true
	return &Cloudinary{cld: cld}, nil
}

func (c *Cloudinary) Upload(ctx context.Context, r io.Reader) (*UploadResult, error) {
	res, err := c.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		Folder:       uploadFolder,
		ResourceType: "image",
	})
	if err != nil {
		return nil, err
	}
	return &UploadResult{SecureURL: res.SecureURL, PublicID: res.PublicID, Raw: res}, nil
}

func (c *Cloudinary) Destroy(ctx context.Context, publicID string) error {
	_, err := c.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: "image",
		Invalidate:   api.Bool(true),
	})
	return err
}

// Disabled is used when no CLOUDINARY_URL is configured: uploads fail with a
// clear error and deletes are silently skipped.
type Disabled struct{}

func (Disabled) Upload(ctx context.Context, r io.Reader) (*UploadResult, error) {
	return nil, errors.New("image hosting is not configured")
}

func (Disabled) Destroy(ctx context.Context, publicID string) error { return nil }
