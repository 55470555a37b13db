package dialog

import "sync"

// Canned answers requests synchronously from queued answers. An empty
// queue answers with a dismissal. Every request is recorded.
type Canned struct {
	mu        sync.Mutex
	openPaths []PathResult
	savePaths []PathResult
	choices   []Choice

	OpenRequests int
	SaveRequests int
	Confirmed    []string
}

var _ Dialogs = (*Canned)(nil)

// NewCanned creates a Canned with empty queues.
func NewCanned() *Canned {
	return &Canned{}
}

// QueueOpenPath queues answers for RequestOpenPath.
func (c *Canned) QueueOpenPath(results ...PathResult) *Canned {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.openPaths = append(c.openPaths, results...)
	return c
}

// QueueSavePath queues answers for RequestSavePath.
func (c *Canned) QueueSavePath(results ...PathResult) *Canned {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.savePaths = append(c.savePaths, results...)
	return c
}

// QueueChoice queues answers for ConfirmUnsaved.
func (c *Canned) QueueChoice(choices ...Choice) *Canned {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.choices = append(c.choices, choices...)
	return c
}

// RequestOpenPath implements Dialogs.
func (c *Canned) RequestOpenPath() *Reply[PathResult] {
	c.mu.Lock()
	c.OpenRequests++
	r := pop(&c.openPaths, NoPath())
	c.mu.Unlock()
	return Resolved(r)
}

// RequestSavePath implements Dialogs.
func (c *Canned) RequestSavePath() *Reply[PathResult] {
	c.mu.Lock()
	c.SaveRequests++
	r := pop(&c.savePaths, NoPath())
	c.mu.Unlock()
	return Resolved(r)
}

// ConfirmUnsaved implements Dialogs.
func (c *Canned) ConfirmUnsaved(name string) *Reply[Choice] {
	c.mu.Lock()
	c.Confirmed = append(c.Confirmed, name)
	ch := pop(&c.choices, Cancel)
	c.mu.Unlock()
	return Resolved(ch)
}

func pop[T any](q *[]T, def T) T {
	if len(*q) == 0 {
		return def
	}
	v := (*q)[0]
	*q = (*q)[1:]
	return v
}

// Manual hands out unresolved replies and keeps them so the caller can
// answer later.
type Manual struct {
	mu       sync.Mutex
	Opens    []*Reply[PathResult]
	Saves    []*Reply[PathResult]
	Confirms []*Reply[Choice]
	Names    []string
}

var _ Dialogs = (*Manual)(nil)

// RequestOpenPath implements Dialogs.
func (m *Manual) RequestOpenPath() *Reply[PathResult] {
	m.mu.Lock()
	defer m.mu.Unlock()
	r := NewReply[PathResult]()
	m.Opens = append(m.Opens, r)
	return r
}

// RequestSavePath implements Dialogs.
func (m *Manual) RequestSavePath() *Reply[PathResult] {
	m.mu.Lock()
	defer m.mu.Unlock()
	r := NewReply[PathResult]()
	m.Saves = append(m.Saves, r)
	return r
}

// ConfirmUnsaved implements Dialogs.
func (m *Manual) ConfirmUnsaved(name string) *Reply[Choice] {
	m.mu.Lock()
	defer m.mu.Unlock()
	r := NewReply[Choice]()
	m.Confirms = append(m.Confirms, r)
	m.Names = append(m.Names, name)
	return r
}
