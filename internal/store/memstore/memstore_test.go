package memstore

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/geocoder89/tourneyhub/internal/apperr"
	"github.com/geocoder89/tourneyhub/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signup struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

func TestCreateAndGetDocuments(t *testing.T) {
	ctx := context.Background()
	s := New("arena")

	k1, err := s.CreateDocument(ctx, "registration", signup{Name: "Asha", Role: "player"})
	require.NoError(t, err)
	k2, err := s.CreateDocument(ctx, "registration", signup{Name: "Ravi", Role: "organizer"})
	require.NoError(t, err)

	assert.NotEqual(t, store.SerializeKey(k1), store.SerializeKey(k2))

	docs, err := s.GetDocuments(ctx, "registration", nil, 0)
	require.NoError(t, err)
	require.Len(t, docs, 2)

	// insertion order
	assert.Equal(t, "Asha", docs[0]["name"])
	assert.Equal(t, k1, docs[0].Key())
	assert.Contains(t, docs[0], "created_at")
	assert.Contains(t, docs[0], "updated_at")
}

func TestGetDocuments_FilterAndLimit(t *testing.T) {
	ctx := context.Background()
	s := New("")

	for _, name := range []string{"a", "b", "c"} {
		_, err := s.CreateDocument(ctx, "registration", signup{Name: name, Role: "player"})
		require.NoError(t, err)
	}
	_, err := s.CreateDocument(ctx, "registration", signup{Name: "d", Role: "organizer"})
	require.NoError(t, err)

	players, err := s.GetDocuments(ctx, "registration", map[string]interface{}{"role": "player"}, 0)
	require.NoError(t, err)
	assert.Len(t, players, 3)

	limited, err := s.GetDocuments(ctx, "registration", nil, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestGetDocuments_EmptyCollectionIsNotAnError(t *testing.T) {
	docs, err := New("").GetDocuments(context.Background(), "tournament", nil, 0)

	require.NoError(t, err)
	assert.NotNil(t, docs)
	assert.Empty(t, docs)
}

func TestGetDocuments_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := New("")

	_, err := s.CreateDocument(ctx, "registration", signup{Name: "Asha"})
	require.NoError(t, err)

	docs, err := s.GetDocuments(ctx, "registration", nil, 0)
	require.NoError(t, err)
	docs[0]["name"] = "mutated"

	again, err := s.GetDocuments(ctx, "registration", nil, 0)
	require.NoError(t, err)
	assert.Equal(t, "Asha", again[0]["name"])
}

func TestCollectionNames(t *testing.T) {
	ctx := context.Background()
	s := New("")

	_, _ = s.CreateDocument(ctx, "tournament", signup{})
	_, _ = s.CreateDocument(ctx, "registration", signup{})

	names, err := s.CollectionNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"registration", "tournament"}, names)
}

func TestConcurrentCreates(t *testing.T) {
	ctx := context.Background()
	s := New("")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.CreateDocument(ctx, "registration", signup{Name: "x"})
		}()
	}
	wg.Wait()

	docs, err := s.GetDocuments(ctx, "registration", nil, 0)
	require.NoError(t, err)
	assert.Len(t, docs, 50)
}

func TestEnsureUnique(t *testing.T) {
	ctx := context.Background()
	s := New("")

	require.NoError(t, s.EnsureUnique(ctx, "tournament", "name"))

	_, err := s.CreateDocument(ctx, "tournament", signup{Name: "CS2 Kings Arena"})
	require.NoError(t, err)

	_, err = s.CreateDocument(ctx, "tournament", signup{Name: "CS2 Kings Arena"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicate))
	assert.Equal(t, apperr.KindStorageWrite, apperr.KindOf(err))

	// other collections are unaffected
	_, err = s.CreateDocument(ctx, "registration", signup{Name: "CS2 Kings Arena"})
	require.NoError(t, err)
	_, err = s.CreateDocument(ctx, "registration", signup{Name: "CS2 Kings Arena"})
	require.NoError(t, err)
}
