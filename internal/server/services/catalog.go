package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	sc "github.com/dmitrijs2005/petzy/internal/server/config"
	"github.com/dmitrijs2005/petzy/internal/server/models"
	"github.com/dmitrijs2005/petzy/internal/server/repositories/repomanager"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// ResolvedCompanion is a catalog entry plus a time-limited download URL for
// its model. URL is empty when the model is only bundled with the client.
type ResolvedCompanion struct {
	models.Companion
	URL string
}

// CatalogService lists selectable companions and presigns their model assets.
type CatalogService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *sc.Config
}

func NewCatalogService(db *sql.DB, repomanager repomanager.RepositoryManager, config *sc.Config) *CatalogService {
	return &CatalogService{
		db:          db,
		repomanager: repomanager,
		config:      config,
	}
}

func (s *CatalogService) List(ctx context.Context) ([]*models.Companion, error) {
	return s.repomanager.Companions(s.db).List(ctx)
}

// ResolveModelURL looks the companion up and presigns its object key.
// Unknown ids yield common.ErrorNotFound.
func (s *CatalogService) ResolveModelURL(ctx context.Context, petID string) (*ResolvedCompanion, error) {
	c, err := s.repomanager.Companions(s.db).GetByID(ctx, petID)
	if err != nil {
		return nil, err
	}

	out := &ResolvedCompanion{Companion: *c}
	if c.ObjectKey == "" {
		return out, nil
	}

	url, err := s.GetPresignedGetUrl(ctx, c.ObjectKey)
	if err != nil {
		return nil, fmt.Errorf("error presigning model %q: %w", petID, err)
	}
	out.URL = url
	return out, nil
}

func (s *CatalogService) getPresignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return newS3PresignClient(client), nil
}

func (s *CatalogService) GetPresignedGetUrl(ctx context.Context, key string) (string, error) {
	presignClient, err := s.getPresignClient(ctx)
	if err != nil {
		return "", err
	}

	bucket := s.config.S3Bucket
	ttl := s.config.PresignTTL
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}

	req, err := presignGetObject(presignClient, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}
