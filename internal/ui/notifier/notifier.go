// Package notifier provides a topic based broadcast mechanism for SSE updates.
package notifier

import (
	"strings"
	"sync"
)

// Topic names the table a listener follows: one section of one session.
func Topic(sessionID, section string) string {
	return sessionID + "/" + section
}

// Notifier broadcasts update signals to the listeners of a topic.
// It uses a simple ping mechanism - listeners receive an empty struct
// when their table changed and should re-read the session store.
type Notifier struct {
	mu        sync.RWMutex
	listeners map[string]map[chan struct{}]struct{}
}

// New creates a new Notifier instance.
func New() *Notifier {
	return &Notifier{
		listeners: make(map[string]map[chan struct{}]struct{}),
	}
}

// Subscribe returns a channel that receives pings for topic.
// The caller must call Unsubscribe when done to prevent goroutine leaks.
func (n *Notifier) Subscribe(topic string) chan struct{} {
	ch := make(chan struct{}, 1)
	n.mu.Lock()
	set, ok := n.listeners[topic]
	if !ok {
		set = make(map[chan struct{}]struct{})
		n.listeners[topic] = set
	}
	set[ch] = struct{}{}
	n.mu.Unlock()
	return ch
}

// Unsubscribe removes a listener channel and closes it. A channel already
// closed by CloseSession is left alone.
func (n *Notifier) Unsubscribe(topic string, ch chan struct{}) {
	n.mu.Lock()
	defer n.mu.Unlock()

	set, ok := n.listeners[topic]
	if !ok {
		return
	}
	if _, ok := set[ch]; !ok {
		return
	}
	delete(set, ch)
	if len(set) == 0 {
		delete(n.listeners, topic)
	}
	close(ch)
}

// Broadcast sends a ping to every listener of topic.
// Non-blocking: if a listener's channel is full, the ping is skipped.
func (n *Notifier) Broadcast(topic string) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	for ch := range n.listeners[topic] {
		select {
		case ch <- struct{}{}:
		default:
			// Channel full, the listener already has a pending ping
		}
	}
}

// CloseSession closes every listener of the session's topics, ending their
// streams. Topics of other sessions are untouched.
func (n *Notifier) CloseSession(sessionID string) {
	prefix := sessionID + "/"

	n.mu.Lock()
	defer n.mu.Unlock()

	for topic, set := range n.listeners {
		if !strings.HasPrefix(topic, prefix) {
			continue
		}
		for ch := range set {
			close(ch)
		}
		delete(n.listeners, topic)
	}
}

// Listeners returns the number of subscribed channels across all topics.
func (n *Notifier) Listeners() int {
	n.mu.RLock()
	defer n.mu.RUnlock()

	total := 0
	for _, set := range n.listeners {
		total += len(set)
	}
	return total
}
