package otelhttpclient

import (
	"net/http"
)

// New instruments client in place under name. A nil client gets a fresh one on the default transport.
func New(name string, client *http.Client) *http.Client {
	if client == nil {
		client = &http.Client{}
	}
	if _, ok := client.Transport.(*HTTPTransport); ok {
		return client
	}
	client.Transport = NewHTTPTransport(client.Transport, name)
	return client
}
