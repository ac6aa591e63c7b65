package otelhttpclient

import (
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/goto/oaflow/pkg/opentelemetry/otelhttpclient"

type HTTPTransport struct {
	roundTripper http.RoundTripper
	name         string
	duration     metric.Float64Histogram
}

// NewHTTPTransport wraps baseTransport with tracing and a request duration histogram
func NewHTTPTransport(baseTransport http.RoundTripper, name string) *HTTPTransport {
	if baseTransport == nil {
		baseTransport = http.DefaultTransport
	}

	duration, err := otel.Meter(instrumentationName).Float64Histogram(
		"http.client.request.duration",
		metric.WithUnit("ms"),
		metric.WithDescription("duration of outbound http requests"),
	)
	if err != nil {
		otel.Handle(err)
	}

	return &HTTPTransport{
		roundTripper: otelhttp.NewTransport(baseTransport,
			otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
				return name + " " + r.Method
			}),
		),
		name:     name,
		duration: duration,
	}
}

func (t *HTTPTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.roundTripper.RoundTrip(req)

	if t.duration != nil {
		attrs := []attribute.KeyValue{
			attribute.String("client", t.name),
			attribute.String("http.method", req.Method),
			attribute.String("http.host", req.URL.Host),
		}
		if resp != nil {
			attrs = append(attrs, attribute.Int("http.status_code", resp.StatusCode))
		}
		t.duration.Record(req.Context(), float64(time.Since(start).Milliseconds()), metric.WithAttributes(attrs...))
	}

	return resp, err
}
