package telemetry

// Opt-in anonymous usage reporting. Disabled by default; when disabled
// every call is a no-op so command code never has to check.

import (
	"sync"
	"time"

	"github.com/posthog/posthog-go"

	"github.com/danielsotopino/simple-taskmanager/types"
)

// Properties is a type alias for event properties.
type Properties = map[string]any

// Client sends usage events. Implementations must never block command
// execution or write to stdout.
type Client interface {
	// Track enqueues an event. A no-op when telemetry is disabled.
	Track(event string, properties Properties)
	// Close flushes pending events.
	Close() error
}

// NoopClient discards every event.
type NoopClient struct{}

func (NoopClient) Track(string, Properties) {}
func (NoopClient) Close() error             { return nil }

// enqueuer is the slice of the PostHog client used here, extracted so
// tests can substitute a recorder.
type enqueuer interface {
	Enqueue(msg posthog.Message) error
	Close() error
}

// PostHogClient reports events to PostHog.
type PostHogClient struct {
	mu      sync.Mutex
	client  enqueuer
	version string
}

// NewClient builds a telemetry client from configuration. Disabled or
// unconfigured telemetry yields a NoopClient, never an error the caller
// has to handle.
func NewClient(cfg types.TelemetryConfig, version string) Client {
	if !cfg.Enabled || cfg.APIKey == "" {
		return NoopClient{}
	}

	phConfig := posthog.Config{
		BatchSize: 10,
		// The CLI exits quickly, so flush often.
		Interval: 1 * time.Second,
	}
	if cfg.Endpoint != "" {
		phConfig.Endpoint = cfg.Endpoint
	}

	client, err := posthog.NewWithConfig(cfg.APIKey, phConfig)
	if err != nil {
		return NoopClient{}
	}
	return &PostHogClient{client: client, version: version}
}

// Track enqueues one event with the common properties attached.
func (c *PostHogClient) Track(event string, properties Properties) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.client == nil {
		return
	}

	props := posthog.NewProperties().Set("version", c.version)
	for k, v := range properties {
		props.Set(k, v)
	}
	_ = c.client.Enqueue(posthog.Capture{
		DistinctId: "simple-taskmanager",
		Event:      event,
		Properties: props,
	})
}

// Close flushes pending events.
func (c *PostHogClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.client == nil {
		return nil
	}
	err := c.client.Close()
	c.client = nil
	return err
}
