package mocks

import (
	"context"

	"github.com/JakeMartin-ICL/steam-storage-optimiser/core/reconcile"

	"github.com/stretchr/testify/mock"
)

// Database is a mock implementation of crowd.Database
type Database struct {
	mock.Mock
}

func (m *Database) LookupSizes(ctx context.Context, appids []int) ([]reconcile.CrowdSizeRecord, error) {
	args := m.Called(ctx, appids)
	if records, ok := args.Get(0).([]reconcile.CrowdSizeRecord); ok {
		return records, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Database) GetSize(ctx context.Context, appid int) (*reconcile.CrowdSizeRecord, error) {
	args := m.Called(ctx, appid)
	if record, ok := args.Get(0).(*reconcile.CrowdSizeRecord); ok {
		return record, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Database) AddSize(ctx context.Context, appid int, size int64, name string) error {
	args := m.Called(ctx, appid, size, name)
	return args.Error(0)
}

func (m *Database) UpdateSize(ctx context.Context, appid int, size int64, name string) error {
	args := m.Called(ctx, appid, size, name)
	return args.Error(0)
}
