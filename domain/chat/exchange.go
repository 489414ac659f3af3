package chat

import "time"

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one line of a conversation as the client renders it.
type Turn struct {
	Role       Role
	Text       string
	SentAt     time.Time
	TokenCount *int
}

// Exchange is the client-side conversation history.
// The server never keeps one; it lives as long as the client session.
type Exchange struct {
	turns []Turn
}

func NewExchange() *Exchange {
	return &Exchange{}
}

func (e *Exchange) Ask(text string, at time.Time) Turn {
	return e.append(Turn{Role: RoleUser, Text: text, SentAt: at})
}

func (e *Exchange) Answer(reply Reply, at time.Time) Turn {
	return e.append(Turn{Role: RoleAssistant, Text: reply.Text, SentAt: at, TokenCount: reply.TokenCount})
}

func (e *Exchange) append(turn Turn) Turn {
	e.turns = append(e.turns, turn)
	return turn
}

// Turns returns a copy so callers cannot reorder the history.
func (e *Exchange) Turns() []Turn {
	out := make([]Turn, len(e.turns))
	copy(out, e.turns)
	return out
}

func (e *Exchange) Len() int {
	return len(e.turns)
}

func (e *Exchange) Last() (Turn, bool) {
	if len(e.turns) == 0 {
		return Turn{}, false
	}
	return e.turns[len(e.turns)-1], true
}

// TotalTokens sums the token counts reported for assistant turns.
func (e *Exchange) TotalTokens() int {
	total := 0
	for _, t := range e.turns {
		if t.TokenCount != nil {
			total += *t.TokenCount
		}
	}
	return total
}
