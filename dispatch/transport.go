package dispatch

import (
	"net/http"
)

var _ http.RoundTripper = (*Transport)(nil)

// Transport plugs a Dispatcher into any http.Client. Requests are cloned and
// given the session headers; responses are checked and returned untouched.
type Transport struct {
	Dispatcher *Dispatcher
	Base       http.RoundTripper
}

func NewTransport(d *Dispatcher, base http.RoundTripper) *Transport {
	return &Transport{Dispatcher: d, Base: base}
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	ctx := req.Context()
	out := req.Clone(ctx)
	for name, value := range t.Dispatcher.Headers(ctx) {
		out.Header.Set(name, value)
	}

	resp, err := base.RoundTrip(out)
	if err != nil {
		return resp, err
	}

	t.Dispatcher.Check(ctx, resp.Header)
	return resp, nil
}
