package trello

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageArgs_Values(t *testing.T) {
	tests := []struct {
		name string
		args PageArgs
		want map[string]string
	}{
		{
			name: "defaults",
			args: PageArgs{},
			want: map[string]string{"limit": "50"},
		},
		{
			name: "limit capped",
			args: PageArgs{Limit: 5000},
			want: map[string]string{"limit": "1000"},
		},
		{
			name: "cursors",
			args: PageArgs{Limit: 10, Before: "b1", Since: "s1"},
			want: map[string]string{"limit": "10", "before": "b1", "since": "s1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := tt.args.values()
			for k, v := range tt.want {
				assert.Equal(t, v, q.Get(k))
			}
		})
	}
}

// actionFeed serves a synthetic action feed of n actions with ids
// a<n>..a1, newest first, honoring limit and before.
func actionFeed(n int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		limit := 0
		fmt.Sscanf(r.URL.Query().Get("limit"), "%d", &limit)
		before := r.URL.Query().Get("before")

		start := n
		if before != "" {
			fmt.Sscanf(before, "a%d", &start)
			start--
		}

		var page []Action
		for id := start; id >= 1 && len(page) < limit; id-- {
			page = append(page, Action{ID: fmt.Sprintf("a%d", id), Type: "updateCard"})
		}

		json.NewEncoder(w).Encode(page)
	})
}

func TestActionPager_Next(t *testing.T) {
	client, _ := newTestClient(t, actionFeed(5))

	pager := client.Boards().Actions("abc", PageArgs{Limit: 2})
	ctx := context.Background()

	page1, done, err := pager.Next(ctx)
	require.NoError(t, err)
	assert.False(t, done)
	require.Len(t, page1, 2)
	assert.Equal(t, "a5", page1[0].ID)
	assert.Equal(t, "a4", page1[1].ID)

	page2, done, err := pager.Next(ctx)
	require.NoError(t, err)
	assert.False(t, done)
	require.Len(t, page2, 2)
	assert.Equal(t, "a3", page2[0].ID)

	// The final short page drains the feed and reports done itself, so a
	// caller looping on done never issues an extra empty fetch.
	page3, done, err := pager.Next(ctx)
	require.NoError(t, err)
	assert.True(t, done)
	require.Len(t, page3, 1)
	assert.Equal(t, "a1", page3[0].ID)

	page4, done, err := pager.Next(ctx)
	require.NoError(t, err)
	assert.True(t, done)
	assert.Empty(t, page4)
}

func TestActionPager_All(t *testing.T) {
	client, _ := newTestClient(t, actionFeed(7))

	pager := client.Cards().Actions("c1", PageArgs{Limit: 3})
	all, err := pager.All(context.Background(), 0)
	require.NoError(t, err)

	require.Len(t, all, 7)
	assert.Equal(t, "a7", all[0].ID)
	assert.Equal(t, "a1", all[6].ID)
}

func TestActionPager_All_PageCap(t *testing.T) {
	client, _ := newTestClient(t, actionFeed(100))

	pager := client.Boards().Actions("abc", PageArgs{Limit: 10})
	all, err := pager.All(context.Background(), 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "page cap")
	assert.Len(t, all, 20, "pages fetched before the cap are returned")
}
