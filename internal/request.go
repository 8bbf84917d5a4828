package internal

import (
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrymomot/esprit/pkg/session"
)

// Server variable names filled by EnvironmentFromRequest.
const (
	ServerRemoteAddr  = "REMOTE_ADDR"
	ServerUserAgent   = "HTTP_USER_AGENT"
	ServerMethod      = "REQUEST_METHOD"
	ServerRequestURI  = "REQUEST_URI"
	ServerName        = "SERVER_NAME"
	ServerHTTPS       = "HTTPS"
	ServerQueryString = "QUERY_STRING"

	// Proxy headers, copied verbatim when present. REMOTE_ADDR never
	// comes from them.
	ServerForwardedFor = "HTTP_X_FORWARDED_FOR"
	ServerRealIP       = "HTTP_X_REAL_IP"
)

// Environment is a snapshot of everything the platform hands the
// controller for one request.
type Environment struct {
	Headers    http.Header
	Query      url.Values
	Form       url.Values
	Server     map[string]string
	Cookies    []*http.Cookie
	Method     string
	RequestURI string
	Host       string
}

// EnvironmentFromRequest snapshots r. The body is parsed as a form when
// its content type allows it.
func EnvironmentFromRequest(r *http.Request) Environment {
	_ = r.ParseForm()

	host := r.Host
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}

	server := map[string]string{
		ServerRemoteAddr:  peerAddr(r),
		ServerUserAgent:   r.UserAgent(),
		ServerMethod:      r.Method,
		ServerRequestURI:  r.URL.RequestURI(),
		ServerName:        host,
		ServerQueryString: r.URL.RawQuery,
	}
	if r.TLS != nil {
		server[ServerHTTPS] = "on"
	}
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		server[ServerForwardedFor] = fwd
	}
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		server[ServerRealIP] = ip
	}

	return Environment{
		Method:     r.Method,
		RequestURI: r.URL.RequestURI(),
		Host:       host,
		Headers:    r.Header.Clone(),
		Query:      r.URL.Query(),
		Form:       r.PostForm,
		Server:     server,
		Cookies:    r.Cookies(),
	}
}

// Cookie returns the value of the named cookie.
func (e Environment) Cookie(name string) (string, bool) {
	for _, c := range e.Cookies {
		if c.Name == name {
			return c.Value, true
		}
	}
	return "", false
}

// peerAddr is the host of the TCP peer.
func peerAddr(r *http.Request) string {
	if h, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return h
	}
	return r.RemoteAddr
}

// Request is the framework's view of one HTTP request. Apart from flags it
// does not change after Build.
type Request struct {
	site    *Site
	session *session.Session
	get     url.Values
	post    url.Values
	server  map[string]string
	headers http.Header
	flags   map[string]bool
	url     URL
	method  string
}

func (r *Request) Site() *Site               { return r.site }
func (r *Request) Session() *session.Session { return r.session }
func (r *Request) URL() URL                  { return r.url }
func (r *Request) Method() string            { return r.method }

// Language returns the identifier of the site language, or "".
func (r *Request) Language() string {
	if r.site == nil || r.site.Language == nil {
		return ""
	}
	return r.site.Language.Identifier
}

func (r *Request) Get(key string) string { return r.get.Get(key) }

func (r *Request) GetExists(key string) bool { return r.get.Has(key) }

func (r *Request) Post(key string) string { return r.post.Get(key) }

func (r *Request) PostExists(key string) bool { return r.post.Has(key) }

func (r *Request) Server(key string) string { return r.server[key] }

func (r *Request) ServerExists(key string) bool {
	_, ok := r.server[key]
	return ok
}

// Header returns the first value of the header, matched case-insensitively.
func (r *Request) Header(name string) string { return r.headers.Get(name) }

func (r *Request) HeaderExists(name string) bool {
	_, ok := r.headers[http.CanonicalHeaderKey(name)]
	return ok
}

// IsFlagDefined reports whether a flagger has set the flag either way.
func (r *Request) IsFlagDefined(name string) bool {
	_, ok := r.flags[name]
	return ok
}

// HasFlag reports whether the flag is set to true.
func (r *Request) HasFlag(name string) bool {
	return r.flags[name]
}

// SetFlag is meant for RequestFlaggers.
func (r *Request) SetFlag(name string, value bool) {
	r.flags[name] = value
}

// RequestFlagger marks requests with flags after they are built.
type RequestFlagger interface {
	ProcessRequest(r *Request)
}

// RequestFlaggerFunc adapts a function to RequestFlagger.
type RequestFlaggerFunc func(r *Request)

func (f RequestFlaggerFunc) ProcessRequest(r *Request) { f(r) }

// RequestBuilder assembles a Request.
type RequestBuilder struct {
	req Request
}

// NewRequestBuilder returns a builder for a GET request to the site root.
func NewRequestBuilder() *RequestBuilder {
	return &RequestBuilder{req: Request{method: http.MethodGet}}
}

func (b *RequestBuilder) Site(s *Site) *RequestBuilder {
	b.req.site = s
	return b
}

func (b *RequestBuilder) Session(s *session.Session) *RequestBuilder {
	b.req.session = s
	return b
}

func (b *RequestBuilder) GetData(v url.Values) *RequestBuilder {
	b.req.get = v
	return b
}

func (b *RequestBuilder) PostData(v url.Values) *RequestBuilder {
	b.req.post = v
	return b
}

func (b *RequestBuilder) ServerData(m map[string]string) *RequestBuilder {
	b.req.server = m
	return b
}

func (b *RequestBuilder) Headers(h http.Header) *RequestBuilder {
	b.req.headers = h
	return b
}

func (b *RequestBuilder) Method(m string) *RequestBuilder {
	b.req.method = strings.ToUpper(m)
	return b
}

func (b *RequestBuilder) URL(u URL) *RequestBuilder {
	b.req.url = u
	return b
}

// Build returns the Request. Header keys are canonicalized and nil maps
// replaced by empty ones. The builder can be reused.
func (b *RequestBuilder) Build() *Request {
	r := b.req
	r.get = cloneValues(r.get)
	r.post = cloneValues(r.post)

	r.server = make(map[string]string, len(b.req.server))
	for k, v := range b.req.server {
		r.server[k] = v
	}

	r.headers = make(http.Header, len(b.req.headers))
	for k, v := range b.req.headers {
		key := http.CanonicalHeaderKey(k)
		r.headers[key] = append(r.headers[key], v...)
	}

	r.flags = make(map[string]bool)
	return &r
}

func cloneValues(v url.Values) url.Values {
	if v == nil {
		return url.Values{}
	}
	return url.Values(http.Header(v).Clone())
}
