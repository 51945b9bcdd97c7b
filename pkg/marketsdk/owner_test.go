package marketsdk_test

import (
	"encoding/json"
	"testing"

	"github.com/aussiebroadwan/market/pkg/marketsdk"
	"github.com/stretchr/testify/require"
)

func TestOwnerJSON(t *testing.T) {
	t.Run("id only encodes as a string", func(t *testing.T) {
		b, err := json.Marshal(marketsdk.OfferResponse{ID: "o1", Owner: &marketsdk.Owner{ID: "u1"}})
		require.NoError(t, err)
		require.Contains(t, string(b), `"owner":"u1"`)
	})

	t.Run("reference omits email", func(t *testing.T) {
		b, err := json.Marshal(marketsdk.Owner{ID: "u1", Account: &marketsdk.AccountResponse{Username: "alice"}})
		require.NoError(t, err)
		require.JSONEq(t, `{"_id":"u1","account":{"username":"alice","avatar":null}}`, string(b))
	})

	t.Run("public projection", func(t *testing.T) {
		b, err := json.Marshal(marketsdk.Owner{
			ID:      "u1",
			Email:   "a@example.com",
			Account: &marketsdk.AccountResponse{Username: "alice", Phone: "0600"},
		})
		require.NoError(t, err)
		require.JSONEq(t, `{"_id":"u1","email":"a@example.com","account":{"username":"alice","phone":"0600","avatar":null}}`, string(b))
	})

	t.Run("decodes every shape", func(t *testing.T) {
		var o marketsdk.OfferResponse
		require.NoError(t, json.Unmarshal([]byte(`{"_id":"o1","owner":"u1"}`), &o))
		require.Equal(t, &marketsdk.Owner{ID: "u1"}, o.Owner)

		o = marketsdk.OfferResponse{}
		require.NoError(t, json.Unmarshal([]byte(`{"_id":"o1","owner":{"_id":"u1","email":"a@example.com","account":{"username":"alice"}}}`), &o))
		require.Equal(t, "u1", o.Owner.ID)
		require.Equal(t, "a@example.com", o.Owner.Email)
		require.Equal(t, "alice", o.Owner.Account.Username)

		o = marketsdk.OfferResponse{}
		require.NoError(t, json.Unmarshal([]byte(`{"_id":"o1","owner":null}`), &o))
		require.Nil(t, o.Owner)
	})
}

func TestOfferResponseValue(t *testing.T) {
	o := marketsdk.OfferResponse{Details: []marketsdk.Detail{{"MARQUE": "Nike"}, {"COULEUR": "red"}}}

	v, ok := o.Value("COULEUR")
	require.True(t, ok)
	require.Equal(t, "red", v)

	_, ok = o.Value("TAILLE")
	require.False(t, ok)
}
