package mirror_test

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"production-ledger/src/mirror"
)

// recordingGateway captures delivered events; fail makes every call report
// rejection.
type recordingGateway struct {
	mu      sync.Mutex
	fail    bool
	creates []string
	updates []string
	deletes []string
}

func (g *recordingGateway) Fetch(context.Context, string) []json.RawMessage { return nil }

func (g *recordingGateway) Create(_ context.Context, table, id string, _ json.RawMessage) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.creates = append(g.creates, table+"/"+id)
	return !g.fail
}

func (g *recordingGateway) Update(_ context.Context, table, id string, _ json.RawMessage) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.updates = append(g.updates, table+"/"+id)
	return !g.fail
}

func (g *recordingGateway) Delete(_ context.Context, table, id string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.deletes = append(g.deletes, table+"/"+id)
	return !g.fail
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func TestQueueDelivery(t *testing.T) {
	t.Run("SC1: events reach the gateway in enqueue order", func(t *testing.T) {
		gw := &recordingGateway{}
		q := mirror.NewQueue(gw, quietLogger(), 16)
		q.Start()

		q.Enqueue(mirror.Event{Op: mirror.OpCreate, Table: mirror.TableItems, ID: "a", Payload: map[string]string{"name": "Brita 1"}})
		q.Enqueue(mirror.Event{Op: mirror.OpUpdate, Table: mirror.TableItems, ID: "a", Payload: map[string]string{"name": "Brita 1"}})
		q.Enqueue(mirror.Event{Op: mirror.OpDelete, Table: mirror.TableOrders, ID: "b"})
		q.Close()

		assert.Equal(t, []string{"items/a"}, gw.creates)
		assert.Equal(t, []string{"items/a"}, gw.updates)
		assert.Equal(t, []string{"orders/b"}, gw.deletes)
	})

	t.Run("SC2: a rejecting gateway never surfaces to the enqueuer", func(t *testing.T) {
		gw := &recordingGateway{fail: true}
		q := mirror.NewQueue(gw, quietLogger(), 16)
		q.Start()

		q.Enqueue(mirror.Event{Op: mirror.OpCreate, Table: mirror.TableItems, ID: "a"})
		q.Enqueue(mirror.Event{Op: mirror.OpCreate, Table: mirror.TableItems, ID: "b"})
		q.Close()

		// Both attempted, failure logged and forgotten.
		assert.Len(t, gw.creates, 2)
	})

	t.Run("SC3: an unmarshalable payload is dropped, later events still flow", func(t *testing.T) {
		gw := &recordingGateway{}
		q := mirror.NewQueue(gw, quietLogger(), 16)
		q.Start()

		q.Enqueue(mirror.Event{Op: mirror.OpCreate, Table: mirror.TableItems, ID: "bad", Payload: make(chan int)})
		q.Enqueue(mirror.Event{Op: mirror.OpCreate, Table: mirror.TableItems, ID: "good"})
		q.Close()

		assert.Equal(t, []string{"items/good"}, gw.creates)
	})

	t.Run("SC4: a full queue drops instead of blocking", func(t *testing.T) {
		gw := &recordingGateway{}
		q := mirror.NewQueue(gw, quietLogger(), 1)
		// Worker not started: the buffer fills and stays full.

		q.Enqueue(mirror.Event{Op: mirror.OpCreate, Table: mirror.TableItems, ID: "kept"})
		q.Enqueue(mirror.Event{Op: mirror.OpCreate, Table: mirror.TableItems, ID: "dropped"})

		q.Start()
		q.Close()
		assert.Equal(t, []string{"items/kept"}, gw.creates)
	})

	t.Run("SC5: enqueueing after Close drops the event instead of panicking", func(t *testing.T) {
		gw := &recordingGateway{}
		q := mirror.NewQueue(gw, quietLogger(), 16)
		q.Start()

		q.Enqueue(mirror.Event{Op: mirror.OpCreate, Table: mirror.TableItems, ID: "before"})
		q.Close()

		assert.NotPanics(t, func() {
			q.Enqueue(mirror.Event{Op: mirror.OpCreate, Table: mirror.TableItems, ID: "after"})
		})
		assert.Equal(t, []string{"items/before"}, gw.creates)
	})

	t.Run("SC6: a nil queue is safe to use", func(t *testing.T) {
		var q *mirror.Queue
		assert.NotPanics(t, func() {
			q.Enqueue(mirror.Event{Op: mirror.OpCreate, Table: mirror.TableItems, ID: "a"})
			q.Close()
		})
	})
}
