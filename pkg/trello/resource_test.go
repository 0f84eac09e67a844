package trello

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	t.Run("known resource", func(t *testing.T) {
		d, err := Lookup("board")
		require.NoError(t, err)
		assert.Equal(t, "boards", d.PathStub)
		assert.Contains(t, d.Subresources, "lists")
		assert.Contains(t, d.Filterable, "cards")
	})

	t.Run("case insensitive", func(t *testing.T) {
		d, err := Lookup("Board")
		require.NoError(t, err)
		assert.Equal(t, "board", d.Name)
	})

	t.Run("unknown resource", func(t *testing.T) {
		_, err := Lookup("gadget")
		assert.ErrorIs(t, err, ErrInvalidResource)
	})
}

func TestValidResources(t *testing.T) {
	names := ValidResources()
	assert.Contains(t, names, "board")
	assert.Contains(t, names, "list")
	assert.Contains(t, names, "card")
	assert.Contains(t, names, "member")
	assert.Contains(t, names, "organization")
	assert.Contains(t, names, "webhook")
	assert.IsIncreasing(t, names)
}

func TestRegister_Panics(t *testing.T) {
	t.Run("duplicate name", func(t *testing.T) {
		assert.Panics(t, func() {
			Register(&Descriptor{Name: "board", PathStub: "boards"})
		})
	})

	t.Run("missing stub", func(t *testing.T) {
		assert.Panics(t, func() {
			Register(&Descriptor{Name: "gadget"})
		})
	})

	t.Run("filterable not a subresource", func(t *testing.T) {
		assert.Panics(t, func() {
			Register(&Descriptor{
				Name:       "gadget",
				PathStub:   "gadgets",
				Filterable: []string{"widgets"},
			})
		})
	})
}

func TestParentRef_PluralKey(t *testing.T) {
	tests := []struct {
		name string
		ref  ParentRef
		want string
	}{
		{name: "explicit plural", ref: ParentRef{Segment: "member", Plural: "members"}, want: "members"},
		{name: "derived from singular", ref: ParentRef{Segment: "organization"}, want: "organizations"},
		{name: "already plural", ref: ParentRef{Segment: "cards"}, want: "cards"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.ref.pluralKey())
		})
	}
}

func TestResourceClient_Get(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/boards/abc", r.URL.Path)
		assert.Equal(t, "name,desc", r.URL.Query().Get("fields"))
		w.Write([]byte(`{"id":"abc","name":"Inbox","desc":"stuff"}`))
	}))

	rc, err := client.Resource("board")
	require.NoError(t, err)

	obj, err := rc.Get(context.Background(), "abc", "name", "desc")
	require.NoError(t, err)
	assert.Equal(t, "Inbox", obj["name"])

	var board Board
	require.NoError(t, Decode(obj, &board))
	assert.Equal(t, "abc", board.ID)
	assert.Equal(t, "Inbox", board.Name)
}

func TestResourceClient_Subresources(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/boards/abc/lists":
			w.Write([]byte(`[{"id":"l1"},{"id":"l2"}]`))
		case "/boards/abc/cards":
			w.Write([]byte(`[{"id":"c1"}]`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	rc, err := client.Resource("board")
	require.NoError(t, err)

	results, err := rc.Subresources(context.Background(), "abc", "lists", "cards")
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.Equal(t, []string{
		client.InstanceURL("lists", "l1"),
		client.InstanceURL("lists", "l2"),
	}, results["lists"])
	assert.Equal(t, []string{
		client.InstanceURL("cards", "c1"),
	}, results["cards"])
}

func TestResourceClient_Subresources_InvalidName(t *testing.T) {
	var called bool
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.Write([]byte(`[]`))
	}))

	rc, err := client.Resource("board")
	require.NoError(t, err)

	_, err = rc.Subresources(context.Background(), "abc", "lists", "sprockets", "widgets")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidSubresource)
	assert.Contains(t, err.Error(), "sprockets")
	assert.Contains(t, err.Error(), "widgets")
	assert.False(t, called, "no request may be issued when validation fails")
}

func TestResourceClient_Subresources_PartialFailure(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/boards/abc/lists" {
			w.Write([]byte(`[{"id":"l1"}]`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))

	rc, err := client.Resource("board")
	require.NoError(t, err)

	results, err := rc.Subresources(context.Background(), "abc", "lists", "cards")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Len(t, results, 1, "successful subresources are still returned")
}

func TestResourceClient_ParentResources(t *testing.T) {
	t.Run("singular parent segment, single object", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/boards/abc/organization", r.URL.Path)
			w.Write([]byte(`{"id":"org1","name":"acme"}`))
		}))

		rc, err := client.Resource("board")
		require.NoError(t, err)

		results, err := rc.ParentResources(context.Background(), "abc", nil, "")
		require.NoError(t, err)

		// Result keyed by canonical plural even though the URI segment
		// is singular.
		require.Contains(t, results, "organizations")
		assert.Equal(t, []string{client.InstanceURL("organizations", "org1")},
			results["organizations"])
	})

	t.Run("explicit parent with field", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/lists/l1/board/name", r.URL.Path)
			w.Write([]byte(`{"id":"b1"}`))
		}))

		rc, err := client.Resource("list")
		require.NoError(t, err)

		results, err := rc.ParentResources(context.Background(), "l1", []string{"board"}, "name")
		require.NoError(t, err)
		require.Contains(t, results, "boards")
	})

	t.Run("unknown parent", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("no request expected")
		}))

		rc, err := client.Resource("list")
		require.NoError(t, err)

		_, err = rc.ParentResources(context.Background(), "l1", []string{"organization"}, "")
		assert.ErrorIs(t, err, ErrInvalidSubresource)
	})

	t.Run("object without id yields empty list", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"name":"acme"}`))
		}))

		rc, err := client.Resource("board")
		require.NoError(t, err)

		results, err := rc.ParentResources(context.Background(), "abc", nil, "")
		require.NoError(t, err)
		assert.Empty(t, results["organizations"])
	})
}

func TestResourceClient_FilterSubresource(t *testing.T) {
	t.Run("filters joined into query", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/boards/abc/cards", r.URL.Path)
			assert.Equal(t, "open,closed", r.URL.Query().Get("filter"))
			w.Write([]byte(`[{"id":"c1"},{"id":"c2"}]`))
		}))

		rc, err := client.Resource("board")
		require.NoError(t, err)

		results, err := rc.FilterSubresource(context.Background(), "abc", "cards", "open", "closed")
		require.NoError(t, err)
		assert.Len(t, results["cards"], 2)
	})

	t.Run("not filterable", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("no request expected")
		}))

		rc, err := client.Resource("board")
		require.NoError(t, err)

		_, err = rc.FilterSubresource(context.Background(), "abc", "actions", "open")
		assert.ErrorIs(t, err, ErrInvalidSubresource)
	})

	t.Run("unknown subresource", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("no request expected")
		}))

		rc, err := client.Resource("board")
		require.NoError(t, err)

		_, err = rc.FilterSubresource(context.Background(), "abc", "sprockets", "open")
		assert.ErrorIs(t, err, ErrInvalidSubresource)
	})
}

func TestDecode(t *testing.T) {
	t.Run("typed card with time", func(t *testing.T) {
		in := map[string]interface{}{
			"id":      "c1",
			"name":    "Write tests",
			"idBoard": "b1",
			"due":     "2026-09-01T12:00:00Z",
			"pos":     float64(16384),
		}

		var card Card
		require.NoError(t, Decode(in, &card))
		assert.Equal(t, "c1", card.ID)
		assert.Equal(t, "b1", card.IDBoard)
		require.NotNil(t, card.Due)
		assert.Equal(t, time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC), card.Due.UTC())
	})

	t.Run("unknown keys ignored", func(t *testing.T) {
		in := map[string]interface{}{
			"id":      "b1",
			"mystery": "value",
			"idShort": float64(7),
		}

		var board Board
		require.NoError(t, Decode(in, &board))
		assert.Equal(t, "b1", board.ID)
	})
}
