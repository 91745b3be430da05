package blob

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"bitwise74/files-api/aws"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// multipartThreshold is the payload size above which uploads are split
// into parts
const multipartThreshold = 16 << 20

// S3 keeps blobs as objects in a bucket
type S3 struct {
	client   *aws.S3Client
	uploader *manager.Uploader
	prefix   string
}

// NewS3 stores objects under prefix in the client's bucket
func NewS3(client *aws.S3Client, prefix string) *S3 {
	return &S3{
		client: client,
		uploader: manager.NewUploader(client.C, func(u *manager.Uploader) {
			u.PartSize = multipartThreshold
		}),
		prefix: prefix,
	}
}

func (s *S3) Write(ctx context.Context, data []byte) (string, error) {
	key := s.prefix + uuid.NewString()

	if err := s.WriteAt(ctx, key, data); err != nil {
		return "", err
	}

	return key, nil
}

func (s *S3) WriteAt(ctx context.Context, path string, data []byte) error {
	var err error

	if len(data) > multipartThreshold {
		_, err = s.uploader.Upload(ctx, &s3.PutObjectInput{
			Bucket: s.client.Bucket,
			Key:    awssdk.String(path),
			Body:   bytes.NewReader(data),
		})
	} else {
		_, err = s.client.C.PutObject(ctx, &s3.PutObjectInput{
			Bucket:        s.client.Bucket,
			Key:           awssdk.String(path),
			Body:          bytes.NewReader(data),
			ContentLength: awssdk.Int64(int64(len(data))),
		})
	}
	if err != nil {
		return fmt.Errorf("failed to upload object, %w", err)
	}

	return nil
}

func (s *S3) Read(ctx context.Context, path string) ([]byte, error) {
	out, err := s.client.C.GetObject(ctx, &s3.GetObjectInput{
		Bucket: s.client.Bucket,
		Key:    awssdk.String(path),
	})
	if err != nil {
		if aws.IsNotFound(err) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("failed to get object, %w", err)
	}
	defer out.Body.Close()

	return io.ReadAll(out.Body)
}

func (s *S3) Exists(ctx context.Context, path string) (bool, error) {
	_, err := s.client.C.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: s.client.Bucket,
		Key:    awssdk.String(path),
	})
	if err != nil {
		if aws.IsNotFound(err) {
			return false, nil
		}

		return false, err
	}

	return true, nil
}

func (s *S3) Remove(ctx context.Context, path string) error {
	_, err := s.client.C.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: s.client.Bucket,
		Key:    awssdk.String(path),
	})

	return err
}
