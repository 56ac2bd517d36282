package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/doorhan-crimea/doorhan-backend/pkg/logger"
	"github.com/gabriel-vasile/mimetype"
)

// S3Storage keeps uploads in a bucket under the same directory layout as the
// local backend; object keys are the public path without the leading slash.
type S3Storage struct {
	client  *s3.Client
	bucket  string
	baseURL string
	dirs    []string
}

func NewS3Storage(region, bucket, accessKeyID, secretAccessKey, baseURL string, dirs ...string) *S3Storage {
	var cfg aws.Config
	var err error

	// Static credentials when provided, otherwise the default credential chain
	if accessKeyID != "" && secretAccessKey != "" {
		cfg = aws.Config{
			Region:      region,
			Credentials: credentials.NewStaticCredentialsProvider(accessKeyID, secretAccessKey, ""),
		}
	} else {
		cfg, err = config.LoadDefaultConfig(context.TODO(), config.WithRegion(region))
		if err != nil {
			cfg = aws.Config{Region: region}
		}
	}

	return &S3Storage{
		client:  s3.NewFromConfig(cfg),
		bucket:  bucket,
		baseURL: strings.TrimRight(baseURL, "/"),
		dirs:    normalizeDirs(dirs),
	}
}

// publicURL returns the address clients fetch the object from
func (s *S3Storage) publicURL(key string) string {
	if s.baseURL != "" {
		return fmt.Sprintf("%s/%s", s.baseURL, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.client.Options().Region, key)
}

// keyFor accepts either an absolute URL produced by publicURL or a root-relative path
func (s *S3Storage) keyFor(ref string) (string, error) {
	p := ref
	if i := strings.Index(p, "://"); i >= 0 {
		rest := p[i+3:]
		slash := strings.Index(rest, "/")
		if slash < 0 {
			return "", ErrInvalidPath
		}
		p = rest[slash:]
	}
	d, name, err := splitPublicPath(p, s.dirs)
	if err != nil {
		return "", err
	}
	return d + "/" + name, nil
}

func (s *S3Storage) Save(ctx context.Context, dir, name string, r io.Reader) (string, error) {
	d, err := cleanDir(dir, s.dirs)
	if err != nil || !validName(name) {
		return "", ErrInvalidPath
	}
	key := d + "/" + name

	// uploads are size-capped upstream; a byte reader keeps the body seekable
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(mimetype.Detect(data).String()),
	})
	if err != nil {
		return "", fmt.Errorf("failed to put object: %w", err)
	}

	logger.Debug("File stored in bucket", map[string]interface{}{
		"bucket": s.bucket,
		"key":    key,
	})
	return s.publicURL(key), nil
}

func (s *S3Storage) Delete(ctx context.Context, ref string) error {
	key, err := s.keyFor(ref)
	if err != nil {
		return err
	}

	// DeleteObject succeeds for missing keys
	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

func (s *S3Storage) List(ctx context.Context, dir string) ([]Object, error) {
	d, err := cleanDir(dir, s.dirs)
	if err != nil {
		return nil, err
	}

	var objects []Object
	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(d + "/"),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", err)
		}
		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			// skip nested prefixes
			if strings.Contains(strings.TrimPrefix(key, d+"/"), "/") {
				continue
			}
			objects = append(objects, Object{
				Path:    "/" + key,
				Size:    aws.ToInt64(obj.Size),
				ModTime: aws.ToTime(obj.LastModified),
			})
		}
	}
	return objects, nil
}
