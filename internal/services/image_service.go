package services

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	apperrors "stockforum/internal/errors"
	"stockforum/internal/logger"
)

const imgurUploadURL = "https://api.imgur.com/3/image"

// maxImageBytes caps uploads at 10 MB, the imgur limit for images.
const maxImageBytes = 10 << 20

// imageService uploads portfolio screenshots to imgur.
type imageService struct {
	client   *http.Client
	clientID string
}

// NewImageService creates a new ImageServicer backed by imgur.
func NewImageService(clientID string) ImageServicer {
	return &imageService{
		client:   &http.Client{Timeout: 30 * time.Second},
		clientID: clientID,
	}
}

type imgurResponse struct {
	Data struct {
		ID   string `json:"id"`
		Link string `json:"link"`
		Type string `json:"type"`
	} `json:"data"`
	Success bool `json:"success"`
	Status  int  `json:"status"`
}

// Upload sends the file to imgur as base64 form data and returns the hosted
// link.
func (s *imageService) Upload(file multipart.File, header *multipart.FileHeader) (*ImageUploadResult, error) {
	if s.clientID == "" {
		return nil, apperrors.WithMessage(apperrors.ErrUploadFailed, "image hosting is not configured")
	}
	if header.Size > maxImageBytes {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "image exceeds the 10MB limit")
	}

	fileBytes, err := io.ReadAll(io.LimitReader(file, maxImageBytes))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrUploadFailed, err)
	}

	var requestBody bytes.Buffer
	writer := multipart.NewWriter(&requestBody)
	if err := writer.WriteField("image", base64.StdEncoding.EncodeToString(fileBytes)); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrUploadFailed, err)
	}
	if err := writer.WriteField("type", "base64"); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrUploadFailed, err)
	}
	writer.Close()

	req, err := http.NewRequest(http.MethodPost, imgurUploadURL, &requestBody)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrUploadFailed, err)
	}
	req.Header.Set("Authorization", "Client-ID "+s.clientID)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrUploadFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrUploadFailed, err)
	}

	var imgurResp imgurResponse
	if err := json.Unmarshal(body, &imgurResp); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrUploadFailed, err)
	}
	if !imgurResp.Success {
		logger.Get().Warnw("image upload rejected", "status", imgurResp.Status)
		return nil, apperrors.ErrUploadFailed
	}

	return &ImageUploadResult{
		URL: imgurResp.Data.Link,
		ID:  imgurResp.Data.ID,
	}, nil
}
