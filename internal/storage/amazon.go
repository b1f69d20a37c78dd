package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

// S3Archive implements Provider on Amazon S3
type S3Archive struct {
	bucket   string
	prefix   string
	s3Client *s3.S3
	uploader *s3manager.Uploader
}

// NewS3Archive creates an Amazon S3 archive provider
func NewS3Archive() *S3Archive {
	return &S3Archive{}
}

// Initialize sets up the S3 archive with configuration
func (a *S3Archive) Initialize(config map[string]string) error {
	region, ok := config["region"]
	if !ok || region == "" {
		return fmt.Errorf("region is required for S3 archive")
	}

	bucket, ok := config["bucket"]
	if !ok || bucket == "" {
		return fmt.Errorf("bucket is required for S3 archive")
	}
	a.bucket = bucket

	if prefix, ok := config["prefix"]; ok {
		a.prefix = prefix
	}

	var sess *session.Session
	var err error

	accessKey, hasAccessKey := config["accessKey"]
	secretKey, hasSecretKey := config["secretKey"]

	if hasAccessKey && hasSecretKey {
		sess, err = session.NewSession(&aws.Config{
			Region:      aws.String(region),
			Credentials: credentials.NewStaticCredentials(accessKey, secretKey, ""),
		})
	} else {
		// Fall back to environment variables or instance profile
		sess, err = session.NewSession(&aws.Config{
			Region: aws.String(region),
		})
	}

	if err != nil {
		return fmt.Errorf("failed to create AWS session: %w", err)
	}

	a.s3Client = s3.New(sess)
	a.uploader = s3manager.NewUploader(sess)

	return nil
}

// Put archives a recording under the patient's key prefix
func (a *S3Archive) Put(ctx context.Context, patientID, filename string, content io.Reader, size int64, metadata map[string]string) (string, error) {
	key := a.prefix + archiveKey(patientID, filename)

	s3Metadata := make(map[string]*string)
	for k, v := range metadata {
		s3Metadata[k] = aws.String(v)
	}

	_, err := a.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:   aws.String(a.bucket),
		Key:      aws.String(key),
		Body:     content,
		Metadata: s3Metadata,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload recording to S3: %w", err)
	}

	return key, nil
}

// Get retrieves an archived recording from S3
func (a *S3Archive) Get(ctx context.Context, id string) (io.ReadCloser, map[string]string, error) {
	output, err := a.s3Client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(id),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to retrieve recording from S3: %w", err)
	}

	metadata := make(map[string]string)
	for k, v := range output.Metadata {
		if v != nil {
			metadata[k] = *v
		}
	}

	return output.Body, metadata, nil
}

// Delete removes a recording from S3
func (a *S3Archive) Delete(ctx context.Context, id string) error {
	_, err := a.s3Client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(id),
	})
	if err != nil {
		return fmt.Errorf("failed to delete recording from S3: %w", err)
	}
	return nil
}

// List returns the recordings archived for a patient
func (a *S3Archive) List(ctx context.Context, patientID string) ([]Recording, error) {
	fullPrefix := a.prefix
	if patientID != "" {
		fullPrefix += patientPrefix(patientID)
	}

	input := &s3.ListObjectsV2Input{
		Bucket: aws.String(a.bucket),
		Prefix: aws.String(fullPrefix),
	}

	var recordings []Recording
	err := a.s3Client.ListObjectsV2PagesWithContext(ctx, input, func(output *s3.ListObjectsV2Output, lastPage bool) bool {
		for _, obj := range output.Contents {
			head, err := a.s3Client.HeadObjectWithContext(ctx, &s3.HeadObjectInput{
				Bucket: aws.String(a.bucket),
				Key:    obj.Key,
			})
			if err != nil {
				continue
			}

			metadata := make(map[string]string)
			for k, v := range head.Metadata {
				if v != nil {
					metadata[k] = *v
				}
			}

			recordings = append(recordings, Recording{
				ID:          *obj.Key,
				Filename:    filepath.Base(*obj.Key),
				PatientID:   metadata["patientId"],
				Size:        *obj.Size,
				ContentType: aws.StringValue(head.ContentType),
				ArchivedAt:  obj.LastModified.Unix(),
				Metadata:    metadata,
			})
		}
		return !lastPage
	})

	if err != nil {
		return nil, fmt.Errorf("failed to list recordings from S3: %w", err)
	}
	return recordings, nil
}

// SignedURL returns a pre-signed download URL for a recording in S3
func (a *S3Archive) SignedURL(ctx context.Context, id string, expiryMinutes int) (string, error) {
	req, _ := a.s3Client.GetObjectRequest(&s3.GetObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(id),
	})

	url, err := req.Presign(time.Duration(expiryMinutes) * time.Minute)
	if err != nil {
		return "", fmt.Errorf("failed to generate pre-signed URL: %w", err)
	}
	return url, nil
}
