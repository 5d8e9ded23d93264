package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/dgraph-io/ristretto"
	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	ristretto_store "github.com/eko/gocache/store/ristretto/v4"
)

// A forecast is good for this long; recommendations within the window reuse
// the same reading per city.
const weatherCacheTTL = 10 * time.Minute

// WeatherCacheService fronts a WeatherProvider with a Loadable Ristretto
// cache keyed by lowercased city name.
type WeatherCacheService struct {
	cache *cache.LoadableCache[*WeatherReading]
}

func NewWeatherCacheService(provider WeatherProvider) (*WeatherCacheService, error) {
	ristrettoCache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1e5,
		MaxCost:     1 << 22, // 4MB, readings are tiny
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create ristretto cache: %w", err)
	}

	ristrettoStore := ristretto_store.NewRistretto(ristrettoCache)

	loadFunction := func(ctx context.Context, key any) (*WeatherReading, []store.Option, error) {
		city, ok := key.(string)
		if !ok {
			return nil, nil, fmt.Errorf("invalid key type provided to weather cache: expected string, got %T", key)
		}

		log.Printf("CACHE MISS for city: %s. Fetching forecast.", city)
		reading, err := provider.CurrentWeather(ctx, city)
		return reading, []store.Option{store.WithExpiration(weatherCacheTTL)}, err
	}

	loadableCache := cache.NewLoadable[*WeatherReading](
		loadFunction,
		cache.New[*WeatherReading](ristrettoStore),
	)
	fmt.Println("Initialized WeatherCacheService with Ristretto cache!")
	return &WeatherCacheService{cache: loadableCache}, nil
}

func (s *WeatherCacheService) CurrentWeather(ctx context.Context, city string) (*WeatherReading, error) {
	if city == "" {
		return nil, fmt.Errorf("empty city")
	}
	return s.cache.Get(ctx, strings.ToLower(strings.TrimSpace(city)))
}
