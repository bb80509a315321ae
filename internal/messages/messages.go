// Package messages carries change notifications from the loadout commands to
// whoever is listening (views, caches, logs).
package messages

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/lisongmechlab/lsml-sub001/internal/models"
)

// ChangeKind classifies a notification.
type ChangeKind int

const (
	ItemAdded ChangeKind = iota
	ItemRemoved
	ArmorChanged
	UpgradeChanged
)

func (k ChangeKind) String() string {
	switch k {
	case ItemAdded:
		return "item_added"
	case ItemRemoved:
		return "item_removed"
	case ArmorChanged:
		return "armor_changed"
	case UpgradeChanged:
		return "upgrade_changed"
	}
	return "unknown"
}

// Message is posted after each successful primitive mutation. Location, Item
// and Index are unset for UpgradeChanged.
type Message struct {
	Loadout  uuid.UUID
	Kind     ChangeKind
	Location models.Location
	Item     *models.Item
	Index    int
}

// Delivery accepts notifications.
type Delivery interface {
	Post(m Message)
}

// Post delivers m to d; a nil d drops the message.
func Post(d Delivery, m Message) {
	if d != nil {
		d.Post(m)
	}
}

// Recipient receives messages from a Transmitter.
type Recipient interface {
	Receive(m Message)
}

// Transmitter fans messages out to attached recipients in attach order.
type Transmitter struct {
	recipients []Recipient
}

func NewTransmitter() *Transmitter {
	return &Transmitter{}
}

func (t *Transmitter) Attach(r Recipient) {
	t.recipients = append(t.recipients, r)
}

// Detach removes r; detaching an unknown recipient is a no-op.
func (t *Transmitter) Detach(r Recipient) {
	for i, x := range t.recipients {
		if x == r {
			t.recipients = append(t.recipients[:i], t.recipients[i+1:]...)
			return
		}
	}
}

// Post delivers m to a snapshot of the recipients so that receivers may
// attach or detach while handling it.
func (t *Transmitter) Post(m Message) {
	snapshot := make([]Recipient, len(t.recipients))
	copy(snapshot, t.recipients)
	for _, r := range snapshot {
		r.Receive(m)
	}
}

// LogRecipient writes every message to a slog logger at debug level.
type LogRecipient struct {
	Logger *slog.Logger
}

func (r LogRecipient) Receive(m Message) {
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}
	attrs := []any{"loadout", m.Loadout.String(), "kind", m.Kind.String()}
	if m.Kind != UpgradeChanged {
		attrs = append(attrs, "location", m.Location.ShortName(), "index", m.Index)
	}
	if m.Item != nil {
		attrs = append(attrs, "item", m.Item.Name)
	}
	logger.Debug("loadout changed", attrs...)
}

// Recorder keeps every message it receives; handy for tests and batch tools.
type Recorder struct {
	Messages []Message
}

func (r *Recorder) Post(m Message) {
	r.Messages = append(r.Messages, m)
}

func (r *Recorder) Receive(m Message) {
	r.Post(m)
}
