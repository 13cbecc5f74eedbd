package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"mime"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/gleviosaa/expireTrack/config"
)

// MaxImageBytes is the upload size cap.
const MaxImageBytes = 5 * 1024 * 1024

// UploadResult reports where an image ended up and whether it was deduped
// against the shared barcode table instead of uploaded.
type UploadResult struct {
	ImageURL string `json:"imageUrl"`
	Shared   bool   `json:"shared"`
	Message  string `json:"message"`
}

// ImageService stores product photos in S3 and dedups them by barcode.
type ImageService struct {
	s3Config *config.S3Config
	images   *BarcodeImageService
}

func NewImageService(s3Config *config.S3Config, images *BarcodeImageService) *ImageService {
	return &ImageService{s3Config: s3Config, images: images}
}

// Upload stores an image and records it for the barcode. When the barcode
// already has a canonical image the existing URL is returned with the shared
// flag and no upload happens; the first image for a barcode wins.
func (s *ImageService) Upload(ctx context.Context, barcode, contentType string, data []byte) (*UploadResult, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: no image file provided", ErrValidation)
	}
	if len(data) > MaxImageBytes {
		return nil, fmt.Errorf("%w: image exceeds %d bytes", ErrValidation, MaxImageBytes)
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, fmt.Errorf("%w: only image files are allowed", ErrValidation)
	}
	if s.s3Config == nil {
		return nil, fmt.Errorf("%w: image storage is not configured", ErrStorage)
	}

	if barcode != "" {
		existing, found, err := s.images.Get(ctx, barcode)
		if err != nil {
			return nil, err
		}
		if found {
			return &UploadResult{
				ImageURL: existing,
				Shared:   true,
				Message:  "Using existing image for this barcode",
			}, nil
		}
	}

	fileName := fmt.Sprintf("product-images/%s%s", uuid.New().String(), extensionFor(contentType))
	imageURL, err := s.uploadToS3(ctx, data, fileName, contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	if barcode != "" {
		if err := s.images.Put(ctx, barcode, imageURL); err != nil {
			// The object is durable either way; sharing it is best effort.
			log.Printf("[ImageService] recording shared image for barcode %s failed: %v", barcode, err)
		}
	}

	return &UploadResult{
		ImageURL: imageURL,
		Shared:   false,
		Message:  "Image uploaded successfully",
	}, nil
}

func (s *ImageService) uploadToS3(ctx context.Context, data []byte, fileName, contentType string) (string, error) {
	_, err := s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(fileName),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	publicURL := fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3Config.BucketName, fileName)
	log.Printf("[ImageService] Successfully uploaded image to S3: %s", publicURL)
	return publicURL, nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/png":
		return ".png"
	}
	if exts, _ := mime.ExtensionsByType(contentType); len(exts) > 0 {
		return exts[0]
	}
	if parts := strings.SplitN(contentType, "/", 2); len(parts) == 2 {
		return "." + parts[1]
	}
	return ""
}
