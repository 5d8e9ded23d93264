package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/dgraph-io/ristretto"
	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	ristretto_store "github.com/eko/gocache/store/ristretto/v4"
)

// Presigned read URLs stay valid for 15 minutes, cache entries expire a bit
// earlier so clients never get an already-dead link.
const imageURLCacheTTL = 12 * time.Minute

type ImageURLCacheProvider interface {
	GetReadURL(ctx context.Context, objectKey string) (string, error)
}

// ImageURLCacheService caches presigned read URLs for wardrobe item photos
// so listing a closet doesn't presign every row on every request.
type ImageURLCacheService struct {
	cache      *cache.LoadableCache[string]
	bucketName string
}

func NewImageURLCacheService(awsService AWSServiceProvider, bucketName string) (*ImageURLCacheService, error) {
	ristrettoCache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1e7,
		MaxCost:     1 << 27,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create ristretto cache: %w", err)
	}

	ristrettoStore := ristretto_store.NewRistretto(ristrettoCache)

	loadFunction := func(ctx context.Context, key any) (string, []store.Option, error) {
		objectKey, ok := key.(string)
		if !ok {
			return "", nil, fmt.Errorf("invalid key type provided to URL cache: expected string, got %T", key)
		}

		log.Printf("CACHE MISS for key: %s. Generating new presigned URL.", objectKey)
		url, err := awsService.GetPresignedFileReadURL(ctx, bucketName, objectKey)
		return url, []store.Option{store.WithExpiration(imageURLCacheTTL)}, err
	}

	loadableCache := cache.NewLoadable[string](
		loadFunction,
		cache.New[string](ristrettoStore),
	)
	return &ImageURLCacheService{
		cache:      loadableCache,
		bucketName: bucketName,
	}, nil
}

func (s *ImageURLCacheService) GetReadURL(ctx context.Context, objectKey string) (string, error) {
	if objectKey == "" {
		return "", nil
	}

	return s.cache.Get(ctx, objectKey)
}
