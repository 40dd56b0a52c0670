package bus

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type recordingListener struct {
	NopListener[int]
	log  *[]string
	name string
}

func (l *recordingListener) OnAdd(v int) {
	*l.log = append(*l.log, l.name)
}

func TestListenerSetAnnounceOrder(t *testing.T) {
	var (
		set ListenerSet[int]
		log []string
	)
	set.Add(&recordingListener{log: &log, name: "first"})
	set.Add(&recordingListener{log: &log, name: "second"})
	set.Add(&recordingListener{log: &log, name: "third"})

	set.AnnounceAdd(1)
	set.AnnounceAdd(2)

	assert.Equal(t, []string{"first", "second", "third", "first", "second", "third"}, log)
}

func TestListenerSetIgnoresNil(t *testing.T) {
	var set ListenerSet[int]
	set.Add(nil)
	assert.Empty(t, set.All())
	set.AnnounceAdd(1)
}

func TestNopListener(t *testing.T) {
	var l NopListener[string]
	l.OnAdd("a")
	l.OnRemove("b")
	l.OnUpdate("c")
}
