package util

import (
	"net/http"
	"net/url"
)

// NewProxyFunc builds a proxy function for outbound HTTP clients. When no
// proxy URLs are configured it falls back to the standard environment
// variables (HTTP_PROXY, HTTPS_PROXY, NO_PROXY).
func NewProxyFunc(httpProxy, httpsProxy, noProxy string) func(*http.Request) (*url.URL, error) {
	if httpProxy == "" && httpsProxy == "" {
		return http.ProxyFromEnvironment
	}

	return func(req *http.Request) (*url.URL, error) {
		if req.URL.Scheme == "https" && httpsProxy != "" {
			return url.Parse(httpsProxy)
		}
		if httpProxy != "" {
			return url.Parse(httpProxy)
		}
		return http.ProxyFromEnvironment(req)
	}
}
