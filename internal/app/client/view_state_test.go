package client

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"stockroom/internal/domain/resource"
)

type MockRemote struct {
	mock.Mock
}

func (m *MockRemote) ListRecords(ctx context.Context, resourceName, query, sort string) ([]resource.Record, error) {
	args := m.Called(ctx, resourceName, query, sort)
	var records []resource.Record
	if args.Get(0) != nil {
		records = args.Get(0).([]resource.Record)
	}
	return records, args.Error(1)
}

func (m *MockRemote) GetRecord(ctx context.Context, resourceName string, id int64) (resource.Record, error) {
	args := m.Called(ctx, resourceName, id)
	return args.Get(0).(resource.Record), args.Error(1)
}

func (m *MockRemote) CreateRecord(ctx context.Context, resourceName string, fields resource.Fields) (resource.Record, error) {
	args := m.Called(ctx, resourceName, fields)
	return args.Get(0).(resource.Record), args.Error(1)
}

func (m *MockRemote) UpdateRecord(ctx context.Context, resourceName string, id int64, fields resource.Fields) (resource.Record, error) {
	args := m.Called(ctx, resourceName, id, fields)
	return args.Get(0).(resource.Record), args.Error(1)
}

func (m *MockRemote) DeleteRecord(ctx context.Context, resourceName string, id int64) error {
	args := m.Called(ctx, resourceName, id)
	return args.Error(0)
}

func newTestView(refetch bool) (*ViewState, *MockRemote) {
	remote := new(MockRemote)
	return NewViewState(remote, refetch, slog.Default()), remote
}

func testRecord(id int64, name string, stock float64) resource.Record {
	return resource.Record{ID: id, Fields: resource.Fields{"name": name, "stock": stock}}
}

func recordIDs(records []resource.Record) []int64 {
	ids := make([]int64, 0, len(records))
	for _, rec := range records {
		ids = append(ids, rec.ID)
	}
	return ids
}

func TestViewState_Load(t *testing.T) {
	view, remote := newTestView(false)

	stored := []resource.Record{
		testRecord(1, "Widget", 5),
		testRecord(2, "Gadget", 2),
	}
	remote.On("ListRecords", mock.Anything, "items", "", "").Return(stored, nil).Once()

	records, err := view.Load(context.Background(), "items", "", "")
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, recordIDs(records))

	mirrored, ok := view.Records("items")
	require.True(t, ok)
	assert.Equal(t, []int64{1, 2}, recordIDs(mirrored))

	_, ok = view.Records("notes")
	assert.False(t, ok)

	remote.AssertExpectations(t)
}

func TestViewState_Load_Error(t *testing.T) {
	view, remote := newTestView(false)

	remote.On("ListRecords", mock.Anything, "items", "", "").
		Return(nil, errors.New("connection refused")).Once()

	_, err := view.Load(context.Background(), "items", "", "")
	require.Error(t, err)

	_, ok := view.Records("items")
	assert.False(t, ok)
}

func TestViewState_Load_ReplacesWholesale(t *testing.T) {
	view, remote := newTestView(false)

	remote.On("ListRecords", mock.Anything, "items", "", "").
		Return([]resource.Record{testRecord(1, "Widget", 5), testRecord(2, "Gadget", 2)}, nil).Once()
	remote.On("ListRecords", mock.Anything, "items", "", "").
		Return([]resource.Record{testRecord(2, "Gadget", 2)}, nil).Once()

	_, err := view.Load(context.Background(), "items", "", "")
	require.NoError(t, err)

	_, err = view.Load(context.Background(), "items", "", "")
	require.NoError(t, err)

	mirrored, ok := view.Records("items")
	require.True(t, ok)
	assert.Equal(t, []int64{2}, recordIDs(mirrored))

	_, found := view.Record("items", 1)
	assert.False(t, found)
}

func TestViewState_Create_MergesAcknowledgedRecord(t *testing.T) {
	view, remote := newTestView(false)

	remote.On("ListRecords", mock.Anything, "items", "", "").
		Return([]resource.Record{testRecord(1, "Widget", 5)}, nil).Once()

	fields := resource.Fields{"name": "Gadget", "stock": float64(2)}
	remote.On("CreateRecord", mock.Anything, "items", fields).
		Return(testRecord(2, "Gadget", 2), nil).Once()

	_, err := view.Load(context.Background(), "items", "", "")
	require.NoError(t, err)

	created, err := view.Create(context.Background(), "items", fields)
	require.NoError(t, err)
	assert.Equal(t, int64(2), created.ID)

	mirrored, ok := view.Records("items")
	require.True(t, ok)
	assert.Equal(t, []int64{1, 2}, recordIDs(mirrored))

	// Merge mode folds in the returned record without a second list call.
	remote.AssertNumberOfCalls(t, "ListRecords", 1)
}

func TestViewState_Create_RefetchAfterWrite(t *testing.T) {
	view, remote := newTestView(true)

	remote.On("ListRecords", mock.Anything, "items", "wid", "name").
		Return([]resource.Record{testRecord(1, "Widget", 5)}, nil).Once()

	fields := resource.Fields{"name": "Wide Gadget"}
	remote.On("CreateRecord", mock.Anything, "items", fields).
		Return(testRecord(2, "Wide Gadget", 0), nil).Once()

	// The reload repeats the query the mirror was loaded with.
	remote.On("ListRecords", mock.Anything, "items", "wid", "name").
		Return([]resource.Record{testRecord(2, "Wide Gadget", 0), testRecord(1, "Widget", 5)}, nil).Once()

	_, err := view.Load(context.Background(), "items", "wid", "name")
	require.NoError(t, err)

	_, err = view.Create(context.Background(), "items", fields)
	require.NoError(t, err)

	mirrored, ok := view.Records("items")
	require.True(t, ok)
	assert.Equal(t, []int64{2, 1}, recordIDs(mirrored))

	remote.AssertExpectations(t)
}

func TestViewState_Create_ErrorLeavesMirrorUntouched(t *testing.T) {
	view, remote := newTestView(false)

	remote.On("ListRecords", mock.Anything, "items", "", "").
		Return([]resource.Record{testRecord(1, "Widget", 5)}, nil).Once()
	remote.On("CreateRecord", mock.Anything, "items", mock.Anything).
		Return(resource.Record{}, errors.New("server error: invalid record data")).Once()

	_, err := view.Load(context.Background(), "items", "", "")
	require.NoError(t, err)

	_, err = view.Create(context.Background(), "items", resource.Fields{})
	require.Error(t, err)

	mirrored, ok := view.Records("items")
	require.True(t, ok)
	assert.Equal(t, []int64{1}, recordIDs(mirrored))
}

func TestViewState_Update_KeepsPosition(t *testing.T) {
	view, remote := newTestView(false)

	remote.On("ListRecords", mock.Anything, "items", "", "").
		Return([]resource.Record{
			testRecord(1, "Widget", 5),
			testRecord(2, "Gadget", 2),
			testRecord(3, "Sprocket", 9),
		}, nil).Once()

	patch := resource.Fields{"stock": float64(7)}
	remote.On("UpdateRecord", mock.Anything, "items", int64(2), patch).
		Return(testRecord(2, "Gadget", 7), nil).Once()

	_, err := view.Load(context.Background(), "items", "", "")
	require.NoError(t, err)

	updated, err := view.Update(context.Background(), "items", 2, patch)
	require.NoError(t, err)
	assert.Equal(t, float64(7), updated.Fields["stock"])

	mirrored, ok := view.Records("items")
	require.True(t, ok)
	assert.Equal(t, []int64{1, 2, 3}, recordIDs(mirrored))
	assert.Equal(t, float64(7), mirrored[1].Fields["stock"])
}

func TestViewState_Update_ErrorLeavesMirrorUntouched(t *testing.T) {
	view, remote := newTestView(false)

	remote.On("ListRecords", mock.Anything, "items", "", "").
		Return([]resource.Record{testRecord(1, "Widget", 5)}, nil).Once()
	remote.On("UpdateRecord", mock.Anything, "items", int64(99), mock.Anything).
		Return(resource.Record{}, errors.New("server error: record not found")).Once()

	_, err := view.Load(context.Background(), "items", "", "")
	require.NoError(t, err)

	_, err = view.Update(context.Background(), "items", 99, resource.Fields{"stock": float64(1)})
	require.Error(t, err)

	mirrored, _ := view.Records("items")
	assert.Equal(t, float64(5), mirrored[0].Fields["stock"])
}

func TestViewState_Delete_RemovesFromMirror(t *testing.T) {
	view, remote := newTestView(false)

	remote.On("ListRecords", mock.Anything, "items", "", "").
		Return([]resource.Record{
			testRecord(1, "Widget", 5),
			testRecord(2, "Gadget", 2),
			testRecord(3, "Sprocket", 9),
		}, nil).Once()
	remote.On("DeleteRecord", mock.Anything, "items", int64(2)).Return(nil).Once()

	_, err := view.Load(context.Background(), "items", "", "")
	require.NoError(t, err)

	require.NoError(t, view.Delete(context.Background(), "items", 2))

	mirrored, ok := view.Records("items")
	require.True(t, ok)
	assert.Equal(t, []int64{1, 3}, recordIDs(mirrored))

	_, found := view.Record("items", 2)
	assert.False(t, found)

	// The index keeps tracking records shifted by the removal.
	rec, found := view.Record("items", 3)
	require.True(t, found)
	assert.Equal(t, "Sprocket", rec.Fields["name"])
}

func TestViewState_Delete_ErrorLeavesMirrorUntouched(t *testing.T) {
	view, remote := newTestView(false)

	remote.On("ListRecords", mock.Anything, "items", "", "").
		Return([]resource.Record{testRecord(1, "Widget", 5)}, nil).Once()
	remote.On("DeleteRecord", mock.Anything, "items", int64(99)).
		Return(errors.New("server error: record not found")).Once()

	_, err := view.Load(context.Background(), "items", "", "")
	require.NoError(t, err)

	require.Error(t, view.Delete(context.Background(), "items", 99))

	mirrored, ok := view.Records("items")
	require.True(t, ok)
	assert.Equal(t, []int64{1}, recordIDs(mirrored))
}

func TestViewState_Refetch_FallsBackToMergeOnReloadError(t *testing.T) {
	view, remote := newTestView(true)

	remote.On("ListRecords", mock.Anything, "items", "", "").
		Return([]resource.Record{testRecord(1, "Widget", 5)}, nil).Once()
	remote.On("CreateRecord", mock.Anything, "items", mock.Anything).
		Return(testRecord(2, "Gadget", 2), nil).Once()
	remote.On("ListRecords", mock.Anything, "items", "", "").
		Return(nil, errors.New("connection reset")).Once()

	_, err := view.Load(context.Background(), "items", "", "")
	require.NoError(t, err)

	created, err := view.Create(context.Background(), "items", resource.Fields{"name": "Gadget"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), created.ID)

	// The write was acknowledged, so the record lands in the mirror even
	// though the reload failed.
	mirrored, ok := view.Records("items")
	require.True(t, ok)
	assert.Equal(t, []int64{1, 2}, recordIDs(mirrored))
}

func TestViewState_ReturnedRecordsDoNotAliasMirror(t *testing.T) {
	view, remote := newTestView(false)

	remote.On("ListRecords", mock.Anything, "items", "", "").
		Return([]resource.Record{testRecord(1, "Widget", 5)}, nil).Once()

	records, err := view.Load(context.Background(), "items", "", "")
	require.NoError(t, err)

	records[0].Fields["name"] = "Mutated"

	mirrored, _ := view.Records("items")
	assert.Equal(t, "Widget", mirrored[0].Fields["name"])
}

func TestViewState_Merge_IgnoresUnloadedCollection(t *testing.T) {
	view, _ := newTestView(false)

	view.merge("items", testRecord(1, "Widget", 5))

	_, ok := view.Records("items")
	assert.False(t, ok)
}
