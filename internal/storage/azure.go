package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
)

type azureBlobAPI interface {
	UploadStream(ctx context.Context, containerName, blobName string, body io.Reader, o *azblob.UploadStreamOptions) (azblob.UploadStreamResponse, error)
	DeleteBlob(ctx context.Context, containerName, blobName string, o *azblob.DeleteBlobOptions) (azblob.DeleteBlobResponse, error)
}

type Azure struct {
	client        azureBlobAPI
	Container     string
	PublicBaseURL string
}

type AzureConfig struct {
	ConnectionString string
	Container        string
	// PublicBaseURL defaults to <account url>/<container>.
	PublicBaseURL string
}

func NewAzure(cfg AzureConfig) (*Azure, error) {
	client, err := azblob.NewClientFromConnectionString(cfg.ConnectionString, nil)
	if err != nil {
		return nil, err
	}
	base := cfg.PublicBaseURL
	if base == "" {
		base = strings.TrimRight(client.URL(), "/") + "/" + cfg.Container
	}
	return newAzure(client, cfg.Container, base), nil
}

func newAzure(client azureBlobAPI, container, publicBaseURL string) *Azure {
	return &Azure{
		client:        client,
		Container:     container,
		PublicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}
}

func (a *Azure) Put(ctx context.Context, r io.Reader, in PutInput) (PutResult, error) {
	opts := &azblob.UploadStreamOptions{}
	if in.ContentType != "" {
		ct := in.ContentType
		opts.HTTPHeaders = &blob.HTTPHeaders{BlobContentType: &ct}
	}

	if _, err := a.client.UploadStream(ctx, a.Container, in.Key, r, opts); err != nil {
		return PutResult{}, err
	}

	url := a.PublicBaseURL + "/" + in.Key
	// UploadStream gives no hint whether the blob was new.
	return PutResult{Key: in.Key, URL: url, Replaced: true}, nil
}

func (a *Azure) Delete(ctx context.Context, key string) error {
	_, err := a.client.DeleteBlob(ctx, a.Container, key, nil)
	return err
}

func (a *Azure) String() string { return fmt.Sprintf("azure(%s)", a.Container) }
