package supabase

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryBuilderURL(t *testing.T) {
	var gotURL string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotURL = r.URL.String()
		w.Write([]byte(`[]`))
	})

	_, err := client.From("menu_items").
		Select("*").
		Eq("is_available", true).
		Eq("category_id", "starters").
		Order("display_order").
		Limit(6).
		Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t,
		"/rest/v1/menu_items?select=%2A&is_available=eq.true&category_id=eq.starters&order=display_order.asc&limit=6",
		gotURL)
}

func TestQueryBuilderOrderDescending(t *testing.T) {
	var gotURL string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotURL = r.URL.String()
		w.Write([]byte(`[]`))
	})

	_, err := client.From("menu_items").Order("created_at", OrderDesc).Execute(context.Background())
	require.NoError(t, err)

	assert.Contains(t, gotURL, "order=created_at.desc")
}

func TestSingleSetsObjectAccept(t *testing.T) {
	var gotAccept string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAccept = r.Header.Get("Accept")
		w.Write([]byte(`{}`))
	})

	_, err := client.From("menu_items").Eq("id", "abc").Single().Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "application/vnd.pgrst.object+json", gotAccept)
}

func TestInsertSendsBodyAndPrefer(t *testing.T) {
	var (
		gotMethod string
		gotPrefer string
		gotBody   map[string]string
	)
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPrefer = r.Header.Get("Prefer")
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotBody)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`[{"id":"1"}]`))
	})

	_, err := client.From("franchise_applications").
		Insert(map[string]string{"name": "Asha", "city": "Pune"}).
		Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "return=representation", gotPrefer)
	assert.Equal(t, "Asha", gotBody["name"])
}

func TestExecuteSurfacesAPIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotAcceptable)
		w.Write([]byte(`{"code":"PGRST116","message":"JSON object requested, multiple (or no) rows returned"}`))
	})

	_, err := client.From("menu_items").Eq("id", "missing").Single().Execute(context.Background())
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestExecuteInto(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":"starters","name":"Starters"}]`))
	})

	var rows []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	err := client.From("menu_categories").ExecuteInto(context.Background(), &rows)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Starters", rows[0].Name)
}

func TestInsertMarshalErrorShortCircuits(t *testing.T) {
	called := false
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	_, err := client.From("menu_items").Insert(func() {}).Execute(context.Background())
	require.Error(t, err)
	assert.False(t, called)
}
