package core

import (
	"net/url"
	"sort"
	"strings"
)

// Route names used by the settings pages. The app-scoped ones are prefixed
// with Config.AppName.
const (
	RouteLoginOAuth       = "login.oauth"
	RouteLoginOpenID      = "login.openid"
	RouteLoginCustomOIDC  = "login.custom_oidc"
	RouteDisconnectSocial = "settings.disconnectSocialLogin"

	RoutePersonalSettings = "settings.PersonalSettings.index"
)

// RouteTable is the default URLGenerator: route name to a path pattern with
// {param} placeholders. Params without a placeholder go to the query string
// in key order. Unknown routes resolve to "".
type RouteTable map[string]string

// DefaultRoutes returns the route table for an app mounted at basePath.
func DefaultRoutes(appName, basePath string) RouteTable {
	base := strings.TrimRight(basePath, "/")
	return RouteTable{
		appName + "." + RouteLoginOAuth:       base + "/oauth/{provider}",
		appName + "." + RouteLoginOpenID:      base + "/openid/{provider}",
		appName + "." + RouteLoginCustomOIDC:  base + "/custom_oidc/{provider}",
		appName + "." + RouteDisconnectSocial: base + "/disconnect-social/{login}",
		RoutePersonalSettings:                 "/settings/user/{section}",
	}
}

func (t RouteTable) LinkToRoute(name string, params map[string]string) string {
	pattern, ok := t[name]
	if !ok {
		return ""
	}
	path := pattern
	var rest []string
	for k := range params {
		ph := "{" + k + "}"
		if strings.Contains(path, ph) {
			path = strings.ReplaceAll(path, ph, url.PathEscape(params[k]))
			continue
		}
		rest = append(rest, k)
	}
	if len(rest) == 0 {
		return path
	}
	sort.Strings(rest)
	q := make([]string, 0, len(rest))
	for _, k := range rest {
		q = append(q, url.QueryEscape(k)+"="+url.QueryEscape(params[k]))
	}
	return path + "?" + strings.Join(q, "&")
}
