package api

import (
	"net/http"
	"net/url"

	"github.com/PuerkitoBio/goquery"
)

const csrfCookieName = "csrf_token"

// TokenSource discovers the anti-forgery token for mutating requests.
// Sources are consulted in order; an empty string means "not found here".
type TokenSource interface {
	Token() string
}

// CookieTokenSource reads the csrf_token cookie from the client's jar.
type CookieTokenSource struct {
	jar    http.CookieJar
	origin *url.URL
}

func NewCookieTokenSource(jar http.CookieJar, baseURL string) *CookieTokenSource {
	origin, err := url.Parse(baseURL)
	if err != nil {
		origin = nil
	}
	return &CookieTokenSource{jar: jar, origin: origin}
}

func (s *CookieTokenSource) Token() string {
	if s.jar == nil || s.origin == nil {
		return ""
	}
	for _, cookie := range s.jar.Cookies(s.origin) {
		if cookie.Name == csrfCookieName {
			return cookie.Value
		}
	}
	return ""
}

// MetaTagTokenSource is the fallback: it fetches the portal page and reads
// the csrf-token meta tag from the markup.
type MetaTagTokenSource struct {
	httpClient *http.Client
	pageURL    string
}

func NewMetaTagTokenSource(httpClient *http.Client, baseURL string) *MetaTagTokenSource {
	return &MetaTagTokenSource{httpClient: httpClient, pageURL: baseURL + "/"}
}

func (s *MetaTagTokenSource) Token() string {
	response, err := s.httpClient.Get(s.pageURL)
	if err != nil {
		return ""
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return ""
	}

	document, err := goquery.NewDocumentFromReader(response.Body)
	if err != nil {
		return ""
	}

	token, _ := document.Find(`meta[name="csrf-token"]`).Attr("content")
	return token
}
