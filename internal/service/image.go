package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/Adarsh8067/Recipe-Sharing-Platform/config"
)

// ImageStore persists uploaded recipe images. Save returns the path or
// URL to store on the recipe row.
type ImageStore interface {
	Save(ctx context.Context, data []byte, originalName, contentType string) (string, error)
	Remove(ctx context.Context, location string) error
}

// ImageFileName builds a collision-free name keeping the upload's extension.
func ImageFileName(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	if ext == "" {
		ext = ".jpg"
	}
	return uuid.New().String() + ext
}

// LocalImageStore writes images under a directory served as static files.
type LocalImageStore struct {
	dir string
}

func NewLocalImageStore(dir string) (*LocalImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalImageStore{dir: dir}, nil
}

func (s *LocalImageStore) Save(_ context.Context, data []byte, originalName, _ string) (string, error) {
	fileName := ImageFileName(originalName)
	if err := os.WriteFile(filepath.Join(s.dir, fileName), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}
	return "/uploads/recipes/" + fileName, nil
}

func (s *LocalImageStore) Remove(_ context.Context, location string) error {
	name := filepath.Base(location)
	if name == "." || name == "/" {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, name))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// S3ImageStore uploads images to the configured bucket and returns their
// public URLs.
type S3ImageStore struct {
	cfg *config.S3Config
}

func NewS3ImageStore(cfg *config.S3Config) *S3ImageStore {
	return &S3ImageStore{cfg: cfg}
}

func (s *S3ImageStore) Save(ctx context.Context, data []byte, originalName, contentType string) (string, error) {
	key := "recipe-images/" + ImageFileName(originalName)
	_, err := s.cfg.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	publicURL := fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.cfg.BucketName, key)
	log.Printf("[ImageStore] uploaded %s", publicURL)
	return publicURL, nil
}

func (s *S3ImageStore) Remove(ctx context.Context, location string) error {
	idx := strings.Index(location, "recipe-images/")
	if idx < 0 {
		return nil
	}
	_, err := s.cfg.Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.cfg.BucketName),
		Key:    aws.String(location[idx:]),
	})
	return err
}
