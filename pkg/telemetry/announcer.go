package telemetry

import (
	"encoding/json"

	"github.com/golang/glog"

	"github.com/robotalks/pinio.go/pkg/wire"
)

// Meta describes the announced device.
type Meta struct {
	Description string `json:"description,omitempty"`
	Motors      int    `json:"motors"`
	Steppers    int    `json:"steppers"`
}

// Announcer publishes the device presence and command traces.
// It implements device.Tracer.
type Announcer struct {
	Queue *Queue
	ID    string
}

// NewAnnouncer connects a Queue and creates an Announcer.
func NewAnnouncer(brokerURL, id string) (*Announcer, error) {
	q, err := NewQueueFromURL(brokerURL)
	if err != nil {
		return nil, err
	}
	if err = q.Connect(); err != nil {
		return nil, err
	}
	return &Announcer{Queue: q, ID: id}, nil
}

// Announce publishes the retained presence topic.
func (a *Announcer) Announce(meta Meta) error {
	payload, err := json.Marshal(&meta)
	if err != nil {
		return err
	}
	token := a.Queue.PubWith(a.ID+"/meta", payload, 0, true)
	token.Wait()
	return token.Error()
}

// Trace implements device.Tracer by publishing one event per executed
// set command. Delivery is fire-and-forget: command processing never
// waits for the broker.
func (a *Announcer) Trace(cmd wire.Command) {
	a.Queue.Pub(a.ID+"/trace", []byte(cmd.String()))
}

// Close releases the queue.
func (a *Announcer) Close() error {
	if err := a.Announce(Meta{}); err != nil {
		glog.Warningf("clear presence: %v", err)
	}
	return a.Queue.Close()
}
