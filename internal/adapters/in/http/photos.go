package http

import (
	"fmt"
	"net/http"
	"path"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

var photoExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/heic": ".heic",
}

// UploadPhoto handles POST /api/v1/photos (multipart field "file") and
// returns the stable URI to put in proof, evidence or completion photo lists.
func (s *Server) UploadPhoto(c echo.Context) error {
	header, err := c.FormFile("file")
	if err != nil {
		return errs.NewValueIsRequiredErrorWithCause("file", err)
	}
	if header.Size <= 0 || header.Size > s.maxPhotoBytes {
		return errs.NewValueIsOutOfRangeError("file size", header.Size, 1, s.maxPhotoBytes)
	}

	contentType := strings.ToLower(header.Header.Get(echo.HeaderContentType))
	ext, ok := photoExtensions[contentType]
	if !ok {
		return errs.NewValueIsInvalidErrorWithCause("file", fmt.Errorf("content type %q is not an accepted image type", contentType))
	}

	file, err := header.Open()
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	key := path.Join("photos", time.Now().UTC().Format("2006/01/02"), kernel.NewUUID().String()+ext)
	uri, err := s.photos.Put(c.Request().Context(), key, contentType, file, header.Size)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, Photo{URI: uri})
}
