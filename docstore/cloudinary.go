package docstore

import (
	"bytes"
	"context"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Cloudinary stores reservation supporting documents and hands back the
// permanent reference recorded on the ledger. The engine never sees raw
// file bytes; only this reference travels on a request.
type Cloudinary struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func New(cloudName, apiKey, apiSecret, folder string) (*Cloudinary, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("new cloudinary client: %w", err)
	}
	return &Cloudinary{cld: cld, folder: folder}, nil
}

func (c *Cloudinary) Store(ctx context.Context, data []byte, filename string) (string, error) {
	result, err := c.cld.Upload.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{
		Folder:   c.folder,
		PublicID: filename,
	})
	if err != nil {
		return "", fmt.Errorf("upload: %w", err)
	}
	if result.SecureURL == "" {
		return "", fmt.Errorf("upload: no URL returned for %s", filename)
	}
	return result.SecureURL, nil
}
