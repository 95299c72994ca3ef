package repository

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob" // file:// buckets
	_ "gocloud.dev/blob/memblob"  // mem:// buckets
	"gocloud.dev/gcerrors"

	apperrors "github.com/ClavisPass/ClavisPass-sub001/internal/errors"
	vaultDomain "github.com/ClavisPass/ClavisPass-sub001/internal/vault/domain"
)

const blobKeySuffix = ".vault.json"

// blobRecord is the object stored for each vault.
type blobRecord struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BlobVaultRepository implements Vault persistence on a gocloud.dev bucket.
//
// Buckets have no conditional writes, so Swap is a read-compare-write serialized by a
// mutex. It is atomic only among callers sharing this repository.
type BlobVaultRepository struct {
	bucket *blob.Bucket
	mu     sync.Mutex
}

// Get retrieves a vault by name.
func (b *BlobVaultRepository) Get(ctx context.Context, name string) (*vaultDomain.Vault, error) {
	record, err := b.read(ctx, name)
	if err != nil {
		return nil, err
	}
	return &vaultDomain.Vault{
		ID:        record.ID,
		Name:      record.Name,
		Content:   record.Content,
		CreatedAt: record.CreatedAt,
		UpdatedAt: record.UpdatedAt,
	}, nil
}

// List retrieves vaults in object key order with pagination. Skipped objects are never
// read.
func (b *BlobVaultRepository) List(ctx context.Context, offset, limit int) ([]*vaultDomain.Vault, error) {
	vaults := make([]*vaultDomain.Vault, 0)
	iter := b.bucket.List(nil)
	skipped := 0
	for len(vaults) < limit {
		obj, err := iter.Next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to list vault objects")
		}
		if obj.IsDir || !strings.HasSuffix(obj.Key, blobKeySuffix) {
			continue
		}
		if skipped < offset {
			skipped++
			continue
		}

		vault, err := b.Get(ctx, strings.TrimSuffix(obj.Key, blobKeySuffix))
		if err != nil {
			// Deleted between List and Get.
			if apperrors.Is(err, apperrors.ErrNotFound) {
				continue
			}
			return nil, err
		}
		vaults = append(vaults, vault)
	}
	return vaults, nil
}

// Save writes the vault, replacing any object stored under the same name.
func (b *BlobVaultRepository) Save(ctx context.Context, vault *vaultDomain.Vault) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.write(ctx, &blobRecord{
		ID:        vault.ID,
		Name:      vault.Name,
		Content:   vault.Content,
		CreatedAt: vault.CreatedAt,
		UpdatedAt: vault.UpdatedAt,
	})
}

// Swap replaces the content of a vault only if it still holds oldContent.
func (b *BlobVaultRepository) Swap(ctx context.Context, name, oldContent, newContent string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	record, err := b.read(ctx, name)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return vaultDomain.ErrVaultConflict
		}
		return err
	}
	if record.Content != oldContent {
		return vaultDomain.ErrVaultConflict
	}

	record.Content = newContent
	record.UpdatedAt = time.Now().UTC()
	return b.write(ctx, record)
}

// Delete removes a vault by name.
func (b *BlobVaultRepository) Delete(ctx context.Context, name string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.bucket.Delete(ctx, blobKey(name)); err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return vaultDomain.ErrVaultNotFound
		}
		return apperrors.Wrap(err, "failed to delete vault object")
	}
	return nil
}

// PingContext reports whether the bucket can be reached.
func (b *BlobVaultRepository) PingContext(ctx context.Context) error {
	ok, err := b.bucket.IsAccessible(ctx)
	if err != nil {
		return apperrors.Wrap(err, "failed to reach vault bucket")
	}
	if !ok {
		return apperrors.Wrap(apperrors.ErrUnavailable, "vault bucket is not accessible")
	}
	return nil
}

// Close releases the bucket.
func (b *BlobVaultRepository) Close() error {
	return b.bucket.Close()
}

func (b *BlobVaultRepository) read(ctx context.Context, name string) (*blobRecord, error) {
	data, err := b.bucket.ReadAll(ctx, blobKey(name))
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, vaultDomain.ErrVaultNotFound
		}
		return nil, apperrors.Wrap(err, "failed to read vault object")
	}

	var record blobRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, apperrors.Wrap(err, "failed to decode vault object")
	}
	return &record, nil
}

func (b *BlobVaultRepository) write(ctx context.Context, record *blobRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return apperrors.Wrap(err, "failed to encode vault object")
	}

	opts := &blob.WriterOptions{ContentType: "application/json"}
	if err := b.bucket.WriteAll(ctx, blobKey(record.Name), data, opts); err != nil {
		return apperrors.Wrap(err, "failed to write vault object")
	}
	return nil
}

func blobKey(name string) string {
	return name + blobKeySuffix
}

// NewBlobVaultRepository creates a repository on an open bucket. The repository takes
// ownership of the bucket.
func NewBlobVaultRepository(bucket *blob.Bucket) *BlobVaultRepository {
	return &BlobVaultRepository{bucket: bucket}
}

// OpenBlobVaultRepository opens the bucket at url (file:// or mem://) and wraps it.
func OpenBlobVaultRepository(ctx context.Context, url string) (*BlobVaultRepository, error) {
	bucket, err := blob.OpenBucket(ctx, url)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to open vault bucket")
	}
	return NewBlobVaultRepository(bucket), nil
}
