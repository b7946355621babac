package ports

import "context"

// Watcher reports file system changes below a set of paths.
//
//go:generate mockgen -source=watcher.go -destination=mocks/mock_watcher.go -package=mocks
type Watcher interface {
	// Watch blocks until ctx is done, calling onChange with batches of changed paths.
	Watch(ctx context.Context, paths []string, onChange func(paths []string)) error
}
