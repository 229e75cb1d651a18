package core

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// OAuthProvider is one entry of the generic OAuth collection. The provider
// name is the collection key, not a field.
type OAuthProvider struct {
	Name         string `json:"-"`
	AppID        string `json:"appid"`
	Secret       string `json:"secret"`
	DefaultGroup string `json:"defaultGroup,omitempty"`
	Scope        string `json:"scope,omitempty"`
	Orgs         string `json:"orgs,omitempty"`
	Workspace    string `json:"workspace,omitempty"`
}

// OAuthProviders is the generic OAuth collection keyed by provider name
// ("google", "github", ...). It keeps document order through a JSON round trip.
type OAuthProviders []OAuthProvider

// Get returns the provider registered under name.
func (ps OAuthProviders) Get(name string) (OAuthProvider, bool) {
	for _, p := range ps {
		if p.Name == name {
			return p, true
		}
	}
	return OAuthProvider{}, false
}

func (ps OAuthProviders) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, p := range ps {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(p.Name)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(p)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON accepts an object keyed by provider name, null, or an array
// (older stores encoded an empty collection as []; array entries are keyed by
// their index). A repeated key replaces the earlier value in place.
func (ps *OAuthProviders) UnmarshalJSON(b []byte) error {
	out := OAuthProviders{}
	err := walkCollection(b, func(key string, raw json.RawMessage) error {
		var p OAuthProvider
		if err := json.Unmarshal(raw, &p); err != nil {
			return fmt.Errorf("oauth provider %q: %w", key, err)
		}
		p.Name = key
		for i := range out {
			if out[i].Name == key {
				out[i] = p
				return nil
			}
		}
		out = append(out, p)
		return nil
	})
	if err != nil {
		return err
	}
	*ps = out
	return nil
}

// OpenIDProvider is a plain OpenID provider entry.
type OpenIDProvider struct {
	Title        string `json:"title"`
	URL          string `json:"url"`
	DefaultGroup string `json:"defaultGroup,omitempty"`
}

func (p OpenIDProvider) ProviderTitle() string { return p.Title }

// CustomOIDCProvider is an administrator-defined OpenID Connect provider.
type CustomOIDCProvider struct {
	Title        string `json:"title"`
	Name         string `json:"name,omitempty"`
	AuthorizeURL string `json:"authorizeUrl"`
	TokenURL     string `json:"tokenUrl"`
	UserInfoURL  string `json:"userInfoUrl,omitempty"`
	LogoutURL    string `json:"logoutUrl,omitempty"`
	ClientID     string `json:"clientId"`
	ClientSecret string `json:"clientSecret"`
	Scope        string `json:"scope,omitempty"`
	GroupsClaim  string `json:"groupsClaim,omitempty"`
	Style        string `json:"style,omitempty"`
	DefaultGroup string `json:"defaultGroup,omitempty"`
}

func (p CustomOIDCProvider) ProviderTitle() string { return p.Title }

// ProviderList is an ordered provider list. It decodes from an array, from an
// object (keys dropped, values kept in document order) or from null, and
// always encodes as an array.
type ProviderList[T any] []T

func (l ProviderList[T]) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]T(l))
}

func (l *ProviderList[T]) UnmarshalJSON(b []byte) error {
	out := ProviderList[T]{}
	err := walkCollection(b, func(_ string, raw json.RawMessage) error {
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			return err
		}
		out = append(out, v)
		return nil
	})
	if err != nil {
		return err
	}
	*l = out
	return nil
}

// walkCollection calls fn for every member of a JSON array or object in
// document order. Array members are keyed by their index.
func walkCollection(b []byte, fn func(key string, raw json.RawMessage) error) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	delim, ok := tok.(json.Delim)
	if !ok || (delim != '[' && delim != '{') {
		return errors.New("expected array or object")
	}
	for i := 0; dec.More(); i++ {
		key := strconv.Itoa(i)
		if delim == '{' {
			kt, err := dec.Token()
			if err != nil {
				return err
			}
			key, _ = kt.(string)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		if err := fn(key, raw); err != nil {
			return err
		}
	}
	_, err = dec.Token()
	return err
}

// Flag is a bool that accepts the loose encodings admin forms send.
type Flag bool

func (f Flag) MarshalJSON() ([]byte, error) { return json.Marshal(bool(f)) }

func (f *Flag) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*f = Flag(truthy(v))
	return nil
}

// String returns the stored form, "true" or "false".
func (f Flag) String() string { return strconv.FormatBool(bool(f)) }

// ParseFlag reads a stored or submitted flag value.
func ParseFlag(s string) Flag { return Flag(truthy(s)) }

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "", "0", "false", "off", "no":
			return false
		}
		return true
	default:
		// Arrays and objects are truthy when non-empty.
		switch c := t.(type) {
		case []any:
			return len(c) > 0
		case map[string]any:
			return len(c) > 0
		}
		return true
	}
}
