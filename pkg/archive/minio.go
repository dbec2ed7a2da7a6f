package archive

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/tdeslauriers/palisade/internal/util"
)

// New creates a new instance of the Archive interface backed by MinIO.
func New(config Config, tls *tls.Config) (Archive, error) {

	// tlsClient
	// needed to add the ca of the object storage endpoint cert
	client := &http.Client{
		Transport: &http.Transport{
			TLSClientConfig: tls,
		},
	}

	// initialize MinIO client with the provided configuration
	minioClient, err := minio.New(config.Url, &minio.Options{
		Creds:     credentials.NewStaticV4(config.AccessKey, config.SecretKey, ""),
		Secure:    true,
		Transport: client.Transport,
	})
	if err != nil {
		return nil, err
	}

	return newMinioArchive(minioClient, config.Bucket), nil
}

// newMinioArchive wraps a configured minio client; tests supply a client
// pointed at a fake endpoint.
func newMinioArchive(client *minio.Client, bucket string) *minioArchive {
	return &minioArchive{
		ctx:    context.Background(),
		client: client,
		bucket: bucket,

		logger: slog.Default().
			With(slog.String(util.ComponentKey, util.ComponentArchive)).
			With(slog.String(util.FrameworkKey, util.FrameworkPalisade)).
			With(slog.String(util.PackageKey, util.PackageArchive)),
	}
}

var _ Archive = (*minioArchive)(nil)

// minioArchive is a concrete implementation of the Archive interface for MinIO.
type minioArchive struct {
	ctx    context.Context
	client *minio.Client
	bucket string

	logger *slog.Logger
}

// PutBundle is the concrete implementation of the Archive interface method
// which stores an issued certificate bundle in the MinIO bucket.
func (m *minioArchive) PutBundle(bundle *Bundle) error {

	if bundle == nil {
		return fmt.Errorf("bundle cannot be nil")
	}

	reader := bytes.NewReader([]byte(bundle.Pem))
	opts := minio.PutObjectOptions{ContentType: "application/x-pem-file"}

	if _, err := m.client.PutObject(m.ctx, m.bucket, bundle.Key(), reader, int64(reader.Len()), opts); err != nil {
		return fmt.Errorf("failed to archive bundle '%s' to bucket '%s': %v", bundle.Key(), m.bucket, err)
	}

	m.logger.Info(fmt.Sprintf("archived certificate bundle %s", bundle.Key()))
	return nil
}

// GetBundle is the concrete implementation of the Archive interface method
// which retrieves an issued certificate bundle from the MinIO bucket.
func (m *minioArchive) GetBundle(serialNumber string) (*Bundle, error) {

	key := (&Bundle{SerialNumber: serialNumber}).Key()

	// check the object exists in the bucket by stat'ing it
	if _, err := m.client.StatObject(m.ctx, m.bucket, key, minio.StatObjectOptions{}); err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, fmt.Errorf("no bundle archived for serial '%s' in bucket '%s'", serialNumber, m.bucket)
		}
		return nil, fmt.Errorf("failed to stat archived bundle '%s': %v", key, err)
	}

	// get the object from the bucket
	obj, err := m.client.GetObject(m.ctx, m.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get archived bundle '%s': %v", key, err)
	}
	defer obj.Close()

	pem, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to read archived bundle '%s': %v", key, err)
	}

	return &Bundle{
		SerialNumber: serialNumber,
		Pem:          string(pem),
	}, nil
}

// RemoveBundle is the concrete implementation of the Archive interface method
// which deletes an archived bundle, eg after the certificate is revoked.
func (m *minioArchive) RemoveBundle(serialNumber string) error {

	key := (&Bundle{SerialNumber: serialNumber}).Key()

	if err := m.client.RemoveObject(m.ctx, m.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove archived bundle '%s': %v", key, err)
	}

	m.logger.Info(fmt.Sprintf("removed archived bundle for serial %s", strings.ToLower(serialNumber)))
	return nil
}
