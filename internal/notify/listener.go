package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/lib/pq"

	"buildxpert/internal/logger"
)

// Emitter is the transport the listener fans events out to. Implemented
// by ws.Manager.
type Emitter interface {
	Emit(userID, event string, payload any)
}

const (
	minReconnectInterval = time.Second
	maxReconnectInterval = time.Minute
	pingInterval         = 90 * time.Second
)

// Listener holds the one dedicated subscribing connection per process.
// It must not share a connection with the query pool: the protocol
// multiplexes notifications onto whichever connection issued LISTEN.
//
// Delivery is at-most-once. Events raised while the connection is down
// are lost; clients catch up through the HTTP list endpoint.
type Listener struct {
	pql     *pq.Listener
	emitter Emitter
}

// NewListener opens the subscribing connection. pq.Listener reconnects
// on its own with bounded exponential backoff and re-issues LISTEN for
// every registered channel after each reconnect.
func NewListener(dsn string, emitter Emitter) (*Listener, error) {
	pql := pq.NewListener(dsn, minReconnectInterval, maxReconnectInterval, listenerEvent)

	for _, channel := range []string{ChannelNewMessage, ChannelMessagesRead} {
		if err := pql.Listen(channel); err != nil {
			pql.Close()
			return nil, err
		}
	}

	return &Listener{pql: pql, emitter: emitter}, nil
}

func listenerEvent(ev pq.ListenerEventType, err error) {
	switch ev {
	case pq.ListenerEventConnected:
		logger.Info("notification listener connected")
	case pq.ListenerEventReconnected:
		logger.Warn("notification listener reconnected, events during the outage are lost")
	case pq.ListenerEventDisconnected:
		logger.Error("notification listener disconnected", "error", err)
	case pq.ListenerEventConnectionAttemptFailed:
		logger.Error("notification listener reconnect attempt failed", "error", err)
	}
}

// Run consumes notifications until the context is cancelled. Malformed
// payloads are logged and skipped; they never stop the loop.
func (l *Listener) Run(ctx context.Context) {
	defer l.pql.Close()

	ping := time.NewTicker(pingInterval)
	defer ping.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("notification listener stopped")
			return

		case n := <-l.pql.Notify:
			// nil is delivered after a reconnect
			if n == nil {
				continue
			}
			l.dispatch(n.Channel, n.Extra)

		case <-ping.C:
			// Surfaces dead connections that dropped without an error.
			go func() {
				if err := l.pql.Ping(); err != nil {
					logger.Error("notification listener ping failed", "error", err)
				}
			}()
		}
	}
}

// dispatch routes one notification to the transport rooms.
//
// new_message goes to both the sender's and the receiver's rooms, so a
// sender's other open sessions also see the sent message.
// messages_read goes to the sender's room only; the receiver already
// knows they read it.
func (l *Listener) dispatch(channel, payload string) {
	switch channel {
	case ChannelNewMessage:
		p, err := parseNewMessage(payload)
		if err != nil {
			logger.Error("dropping notification", "channel", channel, "error", err)
			return
		}
		data := json.RawMessage(payload)
		l.emitter.Emit(p.SenderID, EventNewMessage, data)
		if p.ReceiverID != p.SenderID {
			l.emitter.Emit(p.ReceiverID, EventNewMessage, data)
		}

	case ChannelMessagesRead:
		p, err := parseMessagesRead(payload)
		if err != nil {
			logger.Error("dropping notification", "channel", channel, "error", err)
			return
		}
		l.emitter.Emit(p.SenderID, EventMessagesRead, json.RawMessage(payload))

	default:
		logger.Warn("notification on unexpected channel", "channel", channel)
	}
}
