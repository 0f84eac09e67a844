package trello

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoardService_List(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/members/me/boards", r.URL.Path)
		assert.Equal(t, "open", r.URL.Query().Get("filter"))
		w.Write([]byte(`[{"id":"b1","name":"Inbox"},{"id":"b2","name":"Work","closed":true}]`))
	}))

	boards, err := client.Boards().List(context.Background(), Me, FilterOpen)
	require.NoError(t, err)

	require.Len(t, boards, 2)
	assert.Equal(t, "Inbox", boards[0].Name)
	assert.True(t, boards[1].Closed)
}

func TestBoardService_Create(t *testing.T) {
	t.Run("posts body", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/boards", r.URL.Path)

			body, _ := io.ReadAll(r.Body)
			var req CreateBoardRequest
			require.NoError(t, json.Unmarshal(body, &req))
			assert.Equal(t, "Projects", req.Name)

			w.Write([]byte(`{"id":"b9","name":"Projects"}`))
		}))

		board, err := client.Boards().Create(context.Background(), CreateBoardRequest{Name: "Projects"})
		require.NoError(t, err)
		assert.Equal(t, "b9", board.ID)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("no request expected")
		}))

		_, err := client.Boards().Create(context.Background(), CreateBoardRequest{Name: "   "})
		require.Error(t, err)
	})
}

func TestCardService_Move(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/cards/c1", r.URL.Path)

		body, _ := io.ReadAll(r.Body)
		var req UpdateCardRequest
		require.NoError(t, json.Unmarshal(body, &req))
		require.NotNil(t, req.IDList)
		assert.Equal(t, "l2", *req.IDList)

		w.Write([]byte(`{"id":"c1","idList":"l2"}`))
	}))

	card, err := client.Cards().Move(context.Background(), "c1", "l2")
	require.NoError(t, err)
	assert.Equal(t, "l2", card.IDList)
}

func TestCardService_AddComment(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cards/c1/actions/comments", r.URL.Path)
		assert.Equal(t, "looks good", r.URL.Query().Get("text"))
		w.Write([]byte(`{"id":"act1","type":"commentCard"}`))
	}))

	action, err := client.Cards().AddComment(context.Background(), "c1", "looks good")
	require.NoError(t, err)
	assert.Equal(t, "commentCard", action.Type)
}

func TestListService_Archive(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)

		body, _ := io.ReadAll(r.Body)
		var req UpdateListRequest
		require.NoError(t, json.Unmarshal(body, &req))
		require.NotNil(t, req.Closed)
		assert.True(t, *req.Closed)

		w.Write([]byte(`{"id":"l1","closed":true}`))
	}))

	list, err := client.Lists().Archive(context.Background(), "l1")
	require.NoError(t, err)
	assert.True(t, list.Closed)
}

func TestChecklistService_SetItemState(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cards/c1/checkItem/i1", r.URL.Path)
		assert.Equal(t, CheckItemComplete, r.URL.Query().Get("state"))
		w.Write([]byte(`{"id":"i1","state":"complete"}`))
	}))

	item, err := client.Checklists().SetItemState(context.Background(), "c1", "i1", CheckItemComplete)
	require.NoError(t, err)
	assert.Equal(t, CheckItemComplete, item.State)
}

func TestSearchService_Search(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "roadmap", r.URL.Query().Get("query"))
		assert.Equal(t, "boards,cards", r.URL.Query().Get("modelTypes"))
		w.Write([]byte(`{"boards":[{"id":"b1"}],"cards":[{"id":"c1"},{"id":"c2"}]}`))
	}))

	result, err := client.Search().Search(context.Background(), "roadmap", SearchArgs{
		ModelTypes: []string{"boards", "cards"},
	})
	require.NoError(t, err)
	assert.Len(t, result.Boards, 1)
	assert.Len(t, result.Cards, 2)
}

func TestWebhookService_Create(t *testing.T) {
	t.Run("valid request", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/webhooks", r.URL.Path)
			w.Write([]byte(`{"id":"w1","idModel":"b1","active":true}`))
		}))

		webhook, err := client.Webhooks().Create(context.Background(), CreateWebhookRequest{
			CallbackURL: "https://example.com/hooks/trello",
			IDModel:     "b1",
		})
		require.NoError(t, err)
		assert.Equal(t, "w1", webhook.ID)
		assert.True(t, webhook.Active)
	})

	t.Run("invalid request", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("no request expected")
		}))

		_, err := client.Webhooks().Create(context.Background(), CreateWebhookRequest{
			CallbackURL: "https://example.com/hooks/trello",
		})
		require.Error(t, err)
	})
}

func TestWebhookService_DeleteAll(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/webhooks/w2" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(`{}`))
	}))

	err := client.Webhooks().DeleteAll(context.Background(), "w1", "w2", "w3")
	require.Error(t, err, "w2 failure must surface")
	assert.ErrorIs(t, err, ErrNotFound)
}
