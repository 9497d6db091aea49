package dispatch

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/nats-io/nats.go"

	"github.com/cmdmnt/mdm-client/pkg/mdmapi"
)

// DefaultSubjectPrefix is the NATS subject prefix for published actions.
const DefaultSubjectPrefix = "mdm.actions"

// NATSPublisher forwards every dispatched action to NATS, so other processes
// can observe operation lifecycles. The subject is derived from the action
// type: "device_groups/INDEX_SUCCESS" publishes to
// "<prefix>.device_groups.INDEX_SUCCESS".
type NATSPublisher struct {
	conn   *nats.Conn
	prefix string
	logger mdmapi.Logger
}

// NATSOption configures a NATSPublisher.
type NATSOption func(*NATSPublisher)

// WithSubjectPrefix overrides DefaultSubjectPrefix.
func WithSubjectPrefix(prefix string) NATSOption {
	return func(p *NATSPublisher) { p.prefix = prefix }
}

// WithNATSLogger sets a logger for publish failures.
func WithNATSLogger(logger mdmapi.Logger) NATSOption {
	return func(p *NATSPublisher) { p.logger = logger }
}

// NewNATSPublisher creates a publisher over an established connection.
func NewNATSPublisher(conn *nats.Conn, opts ...NATSOption) *NATSPublisher {
	publisher := &NATSPublisher{
		conn:   conn,
		prefix: DefaultSubjectPrefix,
	}

	for _, opt := range opts {
		opt(publisher)
	}

	return publisher
}

// actionEvent is the published wire form of an Action. Err flattens to its
// message; error values do not marshal.
type actionEvent struct {
	Type       string          `json:"type"`
	DispatchID string          `json:"dispatch_id"`
	StatusCode int             `json:"status_code,omitempty"`
	Error      string          `json:"error,omitempty"`
	Payload    json.RawMessage `json:"payload,omitempty"`
}

func newActionEvent(action Action) actionEvent {
	event := actionEvent{
		Type:       string(action.Type),
		DispatchID: action.DispatchID.String(),
		StatusCode: action.StatusCode,
		Payload:    action.Payload,
	}
	if action.Err != nil {
		event.Error = action.Err.Error()
	}

	return event
}

// Apply is a Handler that publishes one action. Publish failures are logged
// and otherwise dropped; the action stream must not block on the bus.
func (p *NATSPublisher) Apply(_ context.Context, action Action) {
	data, err := json.Marshal(newActionEvent(action))
	if err != nil {
		p.logError("encoding action event", action, err)

		return
	}

	err = p.conn.Publish(p.subject(action.Type), data)
	if err != nil {
		p.logError("publishing action event", action, err)
	}
}

func (p *NATSPublisher) subject(t mdmapi.ActionType) string {
	return p.prefix + "." + strings.ReplaceAll(string(t), "/", ".")
}

func (p *NATSPublisher) logError(msg string, action Action, err error) {
	if p.logger == nil {
		return
	}

	p.logger.Error(msg, map[string]interface{}{
		"action": string(action.Type),
		"error":  err.Error(),
	})
}
