package plugins

import (
	"sync"
	"testing"

	"github.com/Ramsey-B/fern/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type constant struct {
	field string
	value any
}

func (c *constant) Override(field string, _ any, _ any) (any, bool) {
	if field != c.field {
		return nil, false
	}
	return c.value, true
}

type sliceOverride []string

func (sliceOverride) Override(string, any, any) (any, bool) { return nil, false }

func TestChain_RegistrationOrder(t *testing.T) {
	first := &constant{field: "title", value: "first"}
	second := &constant{field: "title", value: "second"}
	chain := NewChain(first, second)

	got, err := Resolve(chain.Snapshot(), "title", "computed", nil)
	require.NoError(t, err)
	assert.Equal(t, "first", got)

	require.True(t, chain.Unregister(first))
	got, err = Resolve(chain.Snapshot(), "title", "computed", nil)
	require.NoError(t, err)
	assert.Equal(t, "second", got)
}

func TestChain_SkipsAbsentAnswers(t *testing.T) {
	silent := &constant{field: "title", value: nil}
	other := &constant{field: "plot", value: "ignored"}
	answer := &constant{field: "title", value: "answer"}
	chain := NewChain(silent, other, answer)

	got, err := Resolve(chain.Snapshot(), "title", "computed", nil)
	require.NoError(t, err)
	assert.Equal(t, "answer", got)

	got, err = Resolve(chain.Snapshot(), "genres", "computed", nil)
	require.NoError(t, err)
	assert.Equal(t, "computed", got)
}

func TestChain_RegisterRejects(t *testing.T) {
	chain := NewChain()
	o := &constant{field: "title", value: "x"}

	require.NoError(t, chain.Register(o))
	assert.ErrorIs(t, chain.Register(o), ErrAlreadyRegistered)
	assert.ErrorIs(t, chain.Register(sliceOverride{"a"}), ErrNotComparable)
	assert.Error(t, chain.Register(nil))
	assert.Equal(t, 1, chain.Len())

	assert.False(t, chain.Unregister(sliceOverride{"a"}))
	assert.False(t, chain.Unregister(&constant{field: "title", value: "x"}))
}

func TestChain_SnapshotIsolation(t *testing.T) {
	chain := NewChain()
	o := &constant{field: "title", value: "override"}
	require.NoError(t, chain.Register(o))

	snapshot := chain.Snapshot()
	chain.Unregister(o)

	got, err := Resolve(snapshot, "title", "computed", nil)
	require.NoError(t, err)
	assert.Equal(t, "override", got, "a taken snapshot keeps its overrides")
	assert.True(t, chain.Snapshot().Empty())
}

func TestChain_RegisterUnregisterRestoresBaseline(t *testing.T) {
	chain := NewChain()
	o := &constant{field: "rating", value: 1.0}

	require.NoError(t, chain.Register(o))
	require.True(t, chain.Unregister(o))

	rating := 8.7
	got, err := Resolve(chain.Snapshot(), "rating", &rating, nil)
	require.NoError(t, err)
	assert.Same(t, &rating, got)
}

func TestResolve_DecodesIntoFieldType(t *testing.T) {
	rating := 8.7
	chain := NewChain(&constant{field: "rating", value: 87})

	got, err := Resolve(chain.Snapshot(), "rating", &rating, nil)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 87.0, *got)

	genres := NewChain(&constant{field: "genres", value: []any{"Action"}})
	list, err := Resolve(genres.Snapshot(), "genres", []string{"Action", "Sci-Fi"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Action"}, list)
}

func TestResolve_RejectsWrongType(t *testing.T) {
	votes := 100
	tests := []struct {
		name  string
		field string
		value any
		run   func(Snapshot) error
	}{
		{
			name: "string for number", field: "rating", value: "INVALID_TYPE",
			run: func(s Snapshot) error {
				rating := 8.7
				_, err := Resolve(s, "rating", &rating, nil)
				return err
			},
		},
		{
			name: "fraction for integer", field: "votes", value: 10.5,
			run: func(s Snapshot) error {
				_, err := Resolve(s, "votes", &votes, nil)
				return err
			},
		},
		{
			name: "scalar for list", field: "genres", value: "Action",
			run: func(s Snapshot) error {
				_, err := Resolve(s, "genres", []string{"Action"}, nil)
				return err
			},
		},
		{
			name: "list for string", field: "title", value: []any{"a"},
			run: func(s Snapshot) error {
				_, err := Resolve(s, "title", "The Matrix", nil)
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chain := NewChain(&constant{field: tt.field, value: tt.value})

			err := tt.run(chain.Snapshot())
			require.Error(t, err)
			assert.True(t, errors.IsParseError(err))
			assert.Equal(t, tt.field, errors.FieldOf(err))
		})
	}
}

func TestBuiltins(t *testing.T) {
	chain := NewChain(UppercaseTitle{}, RatingRounder{Places: 1}, NewGenreFilter("Drama"))
	snapshot := chain.Snapshot()

	title, err := Resolve(snapshot, "title", "The Matrix", nil)
	require.NoError(t, err)
	assert.Equal(t, "THE MATRIX", title)

	rating := 8.6666
	rounded, err := Resolve(snapshot, "rating", &rating, nil)
	require.NoError(t, err)
	assert.InDelta(t, 8.7, *rounded, 1e-9)

	genres, err := Resolve(snapshot, "genres", []string{"Action", "Drama"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Action"}, genres)

	empty, err := Resolve(snapshot, "genres", []string{"Drama"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{}, empty)

	names := []string{}
	for _, o := range chain.List() {
		names = append(names, NameOf(o))
	}
	assert.Equal(t, []string{"uppercase_title", "rating_rounder", "genre_filter"}, names)
}

func TestFunc(t *testing.T) {
	chain := NewChain()
	o := Func("plot_prefix", func(field string, value any, _ any) (any, bool) {
		if field != "plot" {
			return nil, false
		}
		return "Plot: " + value.(string), true
	})
	require.NoError(t, chain.Register(o))

	plot, err := Resolve(chain.Snapshot(), "plot", "Neo wakes up", nil)
	require.NoError(t, err)
	assert.Equal(t, "Plot: Neo wakes up", plot)
	assert.True(t, chain.Unregister(o))
}

func TestDefaultChain(t *testing.T) {
	t.Cleanup(Default().Clear)

	o := &constant{field: "title", value: "x"}
	require.NoError(t, Register(o))
	assert.Len(t, List(), 1)
	assert.True(t, Unregister(o))
	assert.Empty(t, List())
}

func TestChain_ConcurrentUse(t *testing.T) {
	chain := NewChain()
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			o := &constant{field: "title", value: "x"}
			_ = chain.Register(o)
			chain.Unregister(o)
		}()
		go func() {
			defer wg.Done()
			_, err := Resolve(chain.Snapshot(), "title", "computed", nil)
			assert.NoError(t, err)
		}()
	}

	wg.Wait()
	assert.Equal(t, 0, chain.Len())
}
