package core

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOAuthProviders_PreservesOrder(t *testing.T) {
	var ps OAuthProviders
	require.NoError(t, json.Unmarshal([]byte(`{"google":{"appid":"g"},"amazon":{"appid":"a","secret":"s"},"github":{"appid":""}}`), &ps))
	require.Len(t, ps, 3)
	require.Equal(t, "google", ps[0].Name)
	require.Equal(t, "amazon", ps[1].Name)
	require.Equal(t, "github", ps[2].Name)

	b, err := json.Marshal(ps)
	require.NoError(t, err)
	require.Equal(t, `{"google":{"appid":"g","secret":""},"amazon":{"appid":"a","secret":"s"},"github":{"appid":"","secret":""}}`, string(b))
}

func TestOAuthProviders_EmptyArrayAndNull(t *testing.T) {
	var ps OAuthProviders
	require.NoError(t, json.Unmarshal([]byte(`[]`), &ps))
	require.Empty(t, ps)
	require.NoError(t, json.Unmarshal([]byte(`null`), &ps))

	b, err := json.Marshal(OAuthProviders(nil))
	require.NoError(t, err)
	require.Equal(t, `{}`, string(b))
}

func TestOAuthProviders_DuplicateKeyReplacesInPlace(t *testing.T) {
	var ps OAuthProviders
	require.NoError(t, json.Unmarshal([]byte(`{"a":{"appid":"1"},"b":{"appid":"2"},"a":{"appid":"3"}}`), &ps))
	require.Len(t, ps, 2)
	require.Equal(t, "3", ps[0].AppID)
	p, ok := ps.Get("b")
	require.True(t, ok)
	require.Equal(t, "2", p.AppID)
}

func TestProviderList_ObjectIsReindexed(t *testing.T) {
	var l ProviderList[OpenIDProvider]
	require.NoError(t, json.Unmarshal([]byte(`{"7":{"title":"b","url":"u2"},"x":{"title":"a","url":"u1","extra":1}}`), &l))
	require.Equal(t, ProviderList[OpenIDProvider]{{Title: "b", URL: "u2"}, {Title: "a", URL: "u1"}}, l)

	b, err := json.Marshal(l)
	require.NoError(t, err)
	require.JSONEq(t, `[{"title":"b","url":"u2"},{"title":"a","url":"u1"}]`, string(b))
}

func TestProviderList_NullEncodesAsEmptyArray(t *testing.T) {
	var l ProviderList[CustomOIDCProvider]
	require.NoError(t, json.Unmarshal([]byte(`null`), &l))
	b, err := json.Marshal(l)
	require.NoError(t, err)
	require.Equal(t, `[]`, string(b))
}

func TestProviderList_RejectsScalar(t *testing.T) {
	var l ProviderList[OpenIDProvider]
	require.Error(t, json.Unmarshal([]byte(`"nope"`), &l))
}

func TestFlag_Decode(t *testing.T) {
	cases := map[string]bool{
		`true`:    true,
		`false`:   false,
		`1`:       true,
		`0`:       false,
		`"1"`:     true,
		`"0"`:     false,
		`""`:      false,
		`"false"`: false,
		`"OFF"`:   false,
		`"no"`:    false,
		`"on"`:    true,
		`"yes"`:   true,
		`null`:    false,
	}
	for in, want := range cases {
		var f Flag
		require.NoError(t, json.Unmarshal([]byte(in), &f), in)
		require.Equal(t, want, bool(f), in)
	}
}

func TestFlag_AbsentIsFalse(t *testing.T) {
	var in struct {
		F Flag `json:"f"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{}`), &in))
	require.False(t, bool(in.F))
	require.Equal(t, "false", in.F.String())
	require.Equal(t, Flag(true), ParseFlag("true"))
}
