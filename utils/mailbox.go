package utils

import (
	"fmt"
	"sync"
)

// Letter is a message addressed between two threads. Tag distinguishes
// messages posted by the same sender within one exchange, Seq orders
// exchanges so a fast sender cannot be confused with a slow one.
type Letter[T any] struct {
	From, Tag int
	Seq       uint64
	Body      T
}

// MailBox connects NP threads. Each thread owns one inbound channel; letters
// that arrive ahead of the one a thread is waiting for are held back until
// asked for. The held queue of a thread is only touched by that thread.
type MailBox[T any] struct {
	NP           int
	MessageChans []chan Letter[T] // One for each thread
	held         [][]Letter[T]    // One for each thread
	done         chan struct{}
	closeOnce    sync.Once
}

func NewMailBox[T any](NP, depth int) *MailBox[T] {
	mb := &MailBox[T]{
		NP:           NP,
		MessageChans: make([]chan Letter[T], NP),
		held:         make([][]Letter[T], NP),
		done:         make(chan struct{}),
	}
	for n := 0; n < NP; n++ {
		mb.MessageChans[n] = make(chan Letter[T], depth)
	}
	return mb
}

// Close releases every thread blocked in PostMessage or ReceiveMessage. It is
// safe to call more than once.
func (mb *MailBox[T]) Close() {
	mb.closeOnce.Do(func() { close(mb.done) })
}

// PostMessage is false if the mailbox was closed before the letter was queued
func (mb *MailBox[T]) PostMessage(myThread, targetThread, tag int, seq uint64, msg T) bool {
	if targetThread < 0 || targetThread > mb.NP-1 {
		panic(fmt.Sprintf("Target thread %d out of bounds", targetThread))
	}
	select {
	case mb.MessageChans[targetThread] <- Letter[T]{From: myThread, Tag: tag, Seq: seq, Body: msg}:
		return true
	case <-mb.done:
		return false
	}
}

// ReceiveMessage blocks until the letter from fromThread with the given tag
// and sequence number has arrived for myThread, or the mailbox is closed.
func (mb *MailBox[T]) ReceiveMessage(myThread, fromThread, tag int, seq uint64) (msg T, ok bool) {
	match := func(l Letter[T]) bool {
		return l.From == fromThread && l.Tag == tag && l.Seq == seq
	}
	for i, l := range mb.held[myThread] {
		if match(l) {
			mb.held[myThread] = append(mb.held[myThread][:i], mb.held[myThread][i+1:]...)
			return l.Body, true
		}
	}
	for {
		select {
		case l := <-mb.MessageChans[myThread]:
			if match(l) {
				return l.Body, true
			}
			mb.held[myThread] = append(mb.held[myThread], l)
		case <-mb.done:
			return
		}
	}
}

// Pending reports the number of letters held back for myThread.
func (mb *MailBox[T]) Pending(myThread int) int {
	return len(mb.held[myThread])
}
