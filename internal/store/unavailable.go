package store

import "context"

// Unavailable is the store wired in when no database is configured. Every
// operation fails with ErrUnavailable, which handlers surface as a server
// error rather than a lookup miss.
type Unavailable struct{}

func (Unavailable) Insert(ctx context.Context, collection string, doc any) (string, error) {
	return "", ErrUnavailable
}

func (Unavailable) Find(ctx context.Context, collection string, filter Filter, limit int64, out any) error {
	return ErrUnavailable
}

func (Unavailable) FindOne(ctx context.Context, collection string, filter Filter, out any) error {
	return ErrUnavailable
}

func (Unavailable) Ping(ctx context.Context) error {
	return ErrUnavailable
}

func (Unavailable) CollectionNames(ctx context.Context) ([]string, error) {
	return nil, ErrUnavailable
}
