package command

import "fmt"

// DefaultQueueSize is the number of slots in a queue when no size is
// configured.
const DefaultQueueSize = 20

// Queue is a fixed-size circular buffer of Commands. Commands are written at
// the head and read from the tail. One slot is always left free so that a
// full queue can be told apart from an empty one, so a Queue created with
// capacity c holds at most c-1 unread commands.
//
// The slot just behind the tail holds the most recently read command. It is
// never overwritten while it is the most recent, which is what allows it to be
// repeated in place.
//
// Queue does not check commands against a Registry and is not safe for
// concurrent use; both are the job of the Pipeline that owns it.
type Queue struct {
	slots []Command
	head  int
	tail  int
}

// NewQueue creates a Queue with the given number of slots. The capacity must
// be at least 2.
func NewQueue(capacity int) (*Queue, error) {
	if capacity < 2 {
		return nil, fmt.Errorf("queue capacity must be at least 2, got %d", capacity)
	}
	return &Queue{slots: make([]Command, capacity)}, nil
}

func (q *Queue) next(idx int) int {
	return (idx + 1) % len(q.slots)
}

func (q *Queue) prev(idx int) int {
	return (idx + len(q.slots) - 1) % len(q.slots)
}

// Cap returns the number of slots in the queue, including the one that is
// always kept free.
func (q *Queue) Cap() int {
	return len(q.slots)
}

// Len returns the number of commands waiting to be read.
func (q *Queue) Len() int {
	return (q.head - q.tail + len(q.slots)) % len(q.slots)
}

// Empty returns whether there are no commands waiting to be read.
func (q *Queue) Empty() bool {
	return q.head == q.tail
}

// Full returns whether inserting another command would fail.
func (q *Queue) Full() bool {
	return q.next(q.head) == q.tail
}

// Insert copies cmd into the queue. If cmd.ID is Repeat, the command is
// handled as by InsertRepeat instead. ErrQueueFull is returned if there is no
// free slot.
func (q *Queue) Insert(cmd Command) error {
	if cmd.ID == Repeat {
		return q.InsertRepeat()
	}
	if q.Full() {
		return ErrQueueFull
	}

	q.slots[q.head] = cmd
	q.head = q.next(q.head)
	return nil
}

// InsertRepeat queues a copy of the most recently inserted command. It fails
// with ErrNothingToRepeat if no command has been inserted yet, and with
// ErrQueueFull if there is no free slot. In both cases the queue is not
// modified.
func (q *Queue) InsertRepeat() error {
	if q.Full() {
		return ErrQueueFull
	}

	prev := q.slots[q.prev(q.head)]
	if prev.ID == Null {
		return ErrNothingToRepeat
	}

	q.slots[q.head] = prev
	q.head = q.next(q.head)
	return nil
}

// Next returns the command at the tail and advances past it. The returned
// pointer refers to the slot itself, which stays valid and unmodified by later
// inserts until another command is read. If the queue is empty, ok is false.
func (q *Queue) Next() (cmd *Command, ok bool) {
	if q.Empty() {
		return nil, false
	}

	cmd = &q.slots[q.tail]
	q.tail = q.next(q.tail)
	return cmd, true
}

// Last returns the most recently read command. Before anything has been read,
// this is a command with the Null ID.
func (q *Queue) Last() *Command {
	return &q.slots[q.prev(q.tail)]
}

// Top returns the most recently inserted command. Before anything has been
// inserted, this is a command with the Null ID.
func (q *Queue) Top() *Command {
	return &q.slots[q.prev(q.head)]
}
