package admin

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterror/nubex/internal/entity"
)

// fakeCategoryRepo scripts the remote backend for category calls.
type fakeCategoryRepo struct {
	rows    []entity.Category
	fail    bool
	deleted []string
	onFind  func()
}

var errRemote = errors.New("remote unavailable")

func (f *fakeCategoryRepo) FindAll(context.Context) ([]entity.Category, error) {
	if f.onFind != nil {
		f.onFind()
	}
	if f.fail {
		return nil, errRemote
	}
	return f.rows, nil
}

func (f *fakeCategoryRepo) Insert(_ context.Context, in entity.CategoryInput) (*entity.Category, error) {
	if f.fail {
		return nil, errRemote
	}
	c := entity.Category{ID: "server-id", Name: in.Name, Slug: in.Slug, Status: in.Status, Position: in.Position}
	return &c, nil
}

func (f *fakeCategoryRepo) Update(_ context.Context, id string, patch entity.CategoryPatch) (*entity.Category, error) {
	if f.fail {
		return nil, errRemote
	}
	c := entity.Category{ID: id, Status: entity.StatusActive}
	if patch.Name != nil {
		c.Name = *patch.Name
	}
	return &c, nil
}

func (f *fakeCategoryRepo) Delete(_ context.Context, id string) error {
	if f.fail {
		return errRemote
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func newTestStore(repo *fakeCategoryRepo) *Store {
	return NewStore(repo, nil, nil, nil)
}

func TestFetchReplacesWholesale(t *testing.T) {
	repo := &fakeCategoryRepo{rows: []entity.Category{{ID: "c1"}, {ID: "c2"}}}
	s := newTestStore(repo)

	s.FetchCategories(context.Background())
	assert.Len(t, s.Categories.Items(), 2)

	repo.rows = []entity.Category{{ID: "c3"}}
	s.FetchCategories(context.Background())

	items := s.Categories.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "c3", items[0].ID)
}

func TestFetchFailureLeavesPreviousList(t *testing.T) {
	repo := &fakeCategoryRepo{rows: []entity.Category{{ID: "c1"}}}
	s := newTestStore(repo)
	s.FetchCategories(context.Background())
	require.Len(t, s.Categories.Items(), 1)

	repo.fail = true
	s.FetchCategories(context.Background())
	assert.Len(t, s.Categories.Items(), 1, "previous list must survive a failed fetch")
	assert.False(t, s.Categories.Loading())
}

func TestLoadingFlagDuringFetch(t *testing.T) {
	repo := &fakeCategoryRepo{}
	s := newTestStore(repo)
	repo.onFind = func() {
		assert.True(t, s.Categories.Loading())
	}
	s.FetchCategories(context.Background())
	assert.False(t, s.Categories.Loading())
}

func TestCreateAppendsEchoedRow(t *testing.T) {
	s := newTestStore(&fakeCategoryRepo{})

	created := s.CreateCategory(context.Background(), entity.CategoryInput{Name: "Audio", Slug: "audio"})
	require.NotNil(t, created)
	assert.Equal(t, "server-id", created.ID, "the server-assigned row is what lands locally")

	items := s.Categories.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "server-id", items[0].ID)
}

func TestCreateFailureReturnsNilAndKeepsList(t *testing.T) {
	repo := &fakeCategoryRepo{rows: []entity.Category{{ID: "c1"}}}
	s := newTestStore(repo)
	s.FetchCategories(context.Background())
	before := s.Categories.Items()

	repo.fail = true
	created := s.CreateCategory(context.Background(), entity.CategoryInput{Name: "Audio"})
	assert.Nil(t, created)
	assert.Equal(t, before, s.Categories.Items(), "local list must be exactly as before the call")
}

func TestUpdateReplacesMatchingEntry(t *testing.T) {
	repo := &fakeCategoryRepo{rows: []entity.Category{{ID: "c1", Name: "Old"}, {ID: "c2"}}}
	s := newTestStore(repo)
	s.FetchCategories(context.Background())

	name := "New"
	updated := s.UpdateCategory(context.Background(), "c1", entity.CategoryPatch{Name: &name})
	require.NotNil(t, updated)

	items := s.Categories.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "New", items[0].Name)
	assert.Equal(t, "c2", items[1].ID)
}

func TestDeleteIsRemoteFirst(t *testing.T) {
	repo := &fakeCategoryRepo{rows: []entity.Category{{ID: "c1"}}}
	s := newTestStore(repo)
	s.FetchCategories(context.Background())

	repo.fail = true
	s.DeleteCategory(context.Background(), "c1")
	assert.Len(t, s.Categories.Items(), 1, "row must not vanish locally when the remote delete failed")

	repo.fail = false
	s.DeleteCategory(context.Background(), "c1")
	assert.Empty(t, s.Categories.Items())
	assert.Equal(t, []string{"c1"}, repo.deleted)
}

func TestCancelledContextDiscardsResult(t *testing.T) {
	repo := &fakeCategoryRepo{rows: []entity.Category{{ID: "c1"}}}
	s := newTestStore(repo)

	ctx, cancel := context.WithCancel(context.Background())
	repo.onFind = cancel // the owning scope tears down mid-flight
	s.FetchCategories(ctx)
	assert.Empty(t, s.Categories.Items(), "a result arriving after teardown must be discarded")

	created := s.CreateCategory(ctx, entity.CategoryInput{Name: "Audio"})
	assert.Nil(t, created)
	assert.Empty(t, s.Categories.Items())
}
