package mirror

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"
)

type Op string

const (
	OpCreate Op = "CREATE"
	OpUpdate Op = "UPDATE"
	OpDelete Op = "DELETE"
)

// Table names in the remote store, one per entity collection.
const (
	TableItems        = "items"
	TableMovements    = "movements"
	TableFormulas     = "formulas"
	TableOrders       = "orders"
	TableUnits        = "units"
	TableTransactions = "transactions"
	TableAccounts     = "accounts"
)

type Event struct {
	Op      Op
	Table   string
	ID      string
	Payload any // marshalled lazily by the worker; nil for deletes
}

// Queue is the fire-and-forget bridge between a committed local mutation and
// the remote mirror. Enqueue never blocks and never fails the caller: a full
// queue drops the event and logs it, a failed delivery is logged and forgotten.
// The local state stays the source of truth either way.
type Queue struct {
	gw  Gateway
	log *logrus.Logger
	ch  chan Event
	wg  sync.WaitGroup

	mu        sync.RWMutex
	closed    bool
	closeOnce sync.Once
}

func NewQueue(gw Gateway, log *logrus.Logger, buffer int) *Queue {
	if buffer <= 0 {
		buffer = 256
	}
	return &Queue{
		gw:  gw,
		log: log,
		ch:  make(chan Event, buffer),
	}
}

// Start launches the delivery worker.
func (q *Queue) Start() {
	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		for ev := range q.ch {
			q.deliver(ev)
		}
	}()
}

// Enqueue hands an event to the worker after the local commit. Nil-safe so
// services can run without a mirror wired at all; safe after Close, where the
// event is dropped and logged like any other delivery failure.
func (q *Queue) Enqueue(ev Event) {
	if q == nil {
		return
	}
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		q.log.WithFields(logrus.Fields{
			"module": "mirror",
			"table":  ev.Table,
			"id":     ev.ID,
			"op":     ev.Op,
		}).Warn("mirror queue closed, event dropped")
		return
	}
	select {
	case q.ch <- ev:
	default:
		q.log.WithFields(logrus.Fields{
			"module": "mirror",
			"table":  ev.Table,
			"id":     ev.ID,
			"op":     ev.Op,
		}).Warn("mirror queue full, event dropped")
	}
}

// Close stops accepting events and waits for the worker to drain.
func (q *Queue) Close() {
	if q == nil {
		return
	}
	q.closeOnce.Do(func() {
		q.mu.Lock()
		q.closed = true
		q.mu.Unlock()
		close(q.ch)
	})
	q.wg.Wait()
}

func (q *Queue) deliver(ev Event) {
	ctx := context.Background()

	var payload json.RawMessage
	if ev.Payload != nil {
		b, err := json.Marshal(ev.Payload)
		if err != nil {
			q.logFailure(ev, err)
			return
		}
		payload = b
	}

	ok := false
	switch ev.Op {
	case OpCreate:
		ok = q.gw.Create(ctx, ev.Table, ev.ID, payload)
	case OpUpdate:
		ok = q.gw.Update(ctx, ev.Table, ev.ID, payload)
	case OpDelete:
		ok = q.gw.Delete(ctx, ev.Table, ev.ID)
	}
	if !ok {
		q.logFailure(ev, errors.New("remote mirror rejected event"))
	}
}

func (q *Queue) logFailure(ev Event, err error) {
	q.log.WithFields(logrus.Fields{
		"module": "mirror",
		"table":  ev.Table,
		"id":     ev.ID,
		"op":     ev.Op,
	}).Error(err.Error())
}
