// Package inbox folds a user's messages into conversations.
package inbox

import (
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/srgjo27/shutterbook/internal/core/domain"
)

// Conversation is every message exchanged between the current user and one
// counterpart. Messages are in chronological order.
type Conversation struct {
	CounterpartID uuid.UUID        `json:"counterpart_id"`
	Messages      []domain.Message `json:"messages"`
	LastMessage   domain.Message   `json:"last_message"`
	UnreadCount   int              `json:"unread_count"`
}

// Group builds the conversation list of currentUserID, most recently active
// first. Messages the user took no part in are ignored. Among messages with
// the same timestamp the first one seen stays LastMessage, and conversations
// whose last messages tie keep the order in which they were first seen.
func Group(messages []domain.Message, currentUserID uuid.UUID) []Conversation {
	index := make(map[uuid.UUID]int)
	convs := []Conversation{}

	for _, m := range messages {
		counterpart, ok := m.Counterpart(currentUserID)
		if !ok {
			continue
		}

		i, seen := index[counterpart]
		if !seen {
			i = len(convs)
			index[counterpart] = i
			convs = append(convs, Conversation{CounterpartID: counterpart, LastMessage: m})
		}

		c := &convs[i]
		c.Messages = append(c.Messages, m)
		if m.ReceiverID == currentUserID && !m.Read {
			c.UnreadCount++
		}
		if m.CreatedAt.After(c.LastMessage.CreatedAt) {
			c.LastMessage = m
		}
	}

	for i := range convs {
		slices.SortStableFunc(convs[i].Messages, func(a, b domain.Message) int {
			return a.CreatedAt.Compare(b.CreatedAt)
		})
	}
	slices.SortStableFunc(convs, func(a, b Conversation) int {
		return b.LastMessage.CreatedAt.Compare(a.LastMessage.CreatedAt)
	})

	return convs
}

// Find returns the conversation with counterpartID.
func Find(convs []Conversation, counterpartID uuid.UUID) (Conversation, bool) {
	for _, c := range convs {
		if c.CounterpartID == counterpartID {
			return c, true
		}
	}
	return Conversation{}, false
}

// FilterByName keeps the conversations whose counterpart name contains
// query, ignoring case. Counterparts missing from names never match a
// non-empty query.
func FilterByName(convs []Conversation, names map[uuid.UUID]string, query string) []Conversation {
	if query == "" {
		return convs
	}
	q := strings.ToLower(query)
	out := []Conversation{}
	for _, c := range convs {
		name, ok := names[c.CounterpartID]
		if ok && strings.Contains(strings.ToLower(name), q) {
			out = append(out, c)
		}
	}
	return out
}

