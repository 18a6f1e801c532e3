// Package sse provides Server-Sent Events client management for real-time communication.
package sse

import (
	"sync"
)

const (
	// TopicContent is followed by every landing page.
	TopicContent = "content"
	adminPrefix  = "admin:"
)

// AdminTopic is the private topic of one CMS session.
func AdminTopic(session string) string {
	return adminPrefix + session
}

type Event struct {
	Name string
	Data string
}

type Client struct {
	Msg   chan Event
	Topic string
}

func NewClient(topic string) *Client {
	return &Client{Msg: make(chan Event, 4), Topic: topic}
}

type SSEClients struct {
	clients map[*Client]bool
	mu      sync.RWMutex
}

func NewSSEClients() *SSEClients {
	return &SSEClients{
		clients: make(map[*Client]bool),
	}
}

func (s *SSEClients) Add(client *Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients[client] = true
}

func (s *SSEClients) Delete(client *Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.clients[client] {
		delete(s.clients, client)
		close(client.Msg)
	}
}

// Broadcast sends ev to every client on topic. Slow clients miss events
// instead of blocking the sender. It returns how many clients got it.
func (s *SSEClients) Broadcast(topic string, ev Event) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sent := 0
	for client := range s.clients {
		if client.Topic != topic {
			continue
		}
		select {
		case client.Msg <- ev:
			sent++
		default:
		}
	}
	return sent
}

func (s *SSEClients) Count(topic string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for client := range s.clients {
		if client.Topic == topic {
			n++
		}
	}
	return n
}
