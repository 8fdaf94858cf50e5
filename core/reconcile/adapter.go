package reconcile

import "context"

// SizeLookup fetches crowd size records for a batch of appids.
// Appids without a record are simply absent from the result.
type SizeLookup interface {
	LookupSizes(ctx context.Context, appids []int) ([]CrowdSizeRecord, error)
}

// LookupFunc adapts a plain function to the SizeLookup interface.
type LookupFunc func(ctx context.Context, appids []int) ([]CrowdSizeRecord, error)

// LookupSizes calls f(ctx, appids).
func (f LookupFunc) LookupSizes(ctx context.Context, appids []int) ([]CrowdSizeRecord, error) {
	return f(ctx, appids)
}

// Writer executes write-back actions against the crowd size database.
type Writer interface {
	// AddSize creates a record for an appid that has none.
	AddSize(ctx context.Context, appid int, size int64, name string) error

	// UpdateSize replaces the size of an existing record.
	UpdateSize(ctx context.Context, appid int, size int64, name string) error
}
