package storage

import (
	"fmt"
	"log"
	"sync"
)

// Factory creates archive providers and tracks which backends are usable
type Factory struct {
	mu                   sync.RWMutex
	unavailableProviders map[string]string
}

// NewFactory creates a new archive factory
func NewFactory() *Factory {
	return &Factory{
		unavailableProviders: make(map[string]string),
	}
}

// MarkProviderUnavailable marks a provider type as unavailable with a reason
func (f *Factory) MarkProviderUnavailable(providerType, reason string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.unavailableProviders[providerType] = reason
	log.Printf("Archive provider '%s' marked as unavailable: %s", providerType, reason)
}

// IsProviderAvailable checks if a provider type is available
func (f *Factory) IsProviderAvailable(providerType string) (bool, string) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	reason, unavailable := f.unavailableProviders[providerType]
	return !unavailable, reason
}

// CreateProvider creates and initializes an archive provider
func (f *Factory) CreateProvider(providerType string, config map[string]string) (Provider, error) {
	f.mu.RLock()
	if reason, unavailable := f.unavailableProviders[providerType]; unavailable {
		f.mu.RUnlock()
		return nil, fmt.Errorf("%s provider is currently unavailable: %s", providerType, reason)
	}
	f.mu.RUnlock()

	var provider Provider

	switch providerType {
	case "local":
		provider = NewLocalArchive()
	case "s3", "amazon", "aws":
		provider = NewS3Archive()
	case "gcs", "google":
		provider = NewGCSArchive()
	default:
		return nil, fmt.Errorf("unsupported archive provider type: %s", providerType)
	}

	if err := provider.Initialize(config); err != nil {
		f.MarkProviderUnavailable(providerType, err.Error())
		return nil, fmt.Errorf("failed to initialize %s archive provider: %w", providerType, err)
	}

	return provider, nil
}

// DefaultFactory is the default archive factory instance
var DefaultFactory = NewFactory()

// CreateProvider creates an archive provider using the default factory
func CreateProvider(providerType string, config map[string]string) (Provider, error) {
	return DefaultFactory.CreateProvider(providerType, config)
}

// IsProviderAvailable checks provider availability using the default factory
func IsProviderAvailable(providerType string) (bool, string) {
	return DefaultFactory.IsProviderAvailable(providerType)
}
