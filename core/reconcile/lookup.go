package reconcile

import (
	"context"
	"fmt"
)

// LookupAll fetches crowd records for all appids in fixed size batches and
// merges them into a single index keyed by appid. The first failing batch
// aborts the lookup.
func LookupAll(ctx context.Context, lookup SizeLookup, appids []int, batchSize int) (map[int]CrowdSizeRecord, error) {
	if batchSize <= 0 {
		batchSize = BatchSize
	}

	index := make(map[int]CrowdSizeRecord, len(appids))
	for start := 0; start < len(appids); start += batchSize {
		end := min(start+batchSize, len(appids))

		records, err := lookup.LookupSizes(ctx, appids[start:end])
		if err != nil {
			return nil, fmt.Errorf("crowd lookup for appids %d-%d of %d failed: %w", start+1, end, len(appids), err)
		}

		for _, record := range records {
			index[record.AppID] = record
		}
	}

	return index, nil
}
