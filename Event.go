/*
Copyright 2011-2026 Frederic Langlet
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
you may obtain a copy of the License at

                http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package rb3go

import (
	"fmt"
	"time"
)

// Event type constants broadcast by construct.Pipeline and align.Aligner.
const (
	EvtBatchStart  = 0 // a new input batch started streaming through the reader/SA stage
	EvtBatchEnd    = 1 // a batch's partial BWT finished computing
	EvtMergeStart  = 2 // the merge stage started inserting a batch's partial BWT into the rope
	EvtMergeEnd    = 3 // the merge stage finished inserting a batch
	EvtAlignRow    = 4 // the aligner advanced one DP row
	EvtConvertStep = 5 // a format conversion processed one block

	EvtHashNone   = 0
	EvtHash32Bits = 32
	EvtHash64Bits = 64
)

// Event reports progress from one pipeline stage to any registered Listener.
// Kept close to the teacher's Event/Listener shape (small, already generic)
// with event-type constants renamed to this module's pipeline stages.
type Event struct {
	eventType int
	id        int
	size      int64
	hash      uint64
	hashType  int
	eventTime time.Time
	msg       string
}

// NewEventFromString creates a new Event instance that wraps a message
func NewEventFromString(evtType, id int, msg string, evtTime time.Time) *Event {
	if evtTime.IsZero() {
		evtTime = time.Now()
	}

	return &Event{eventType: evtType, id: id, size: 0, msg: msg, eventTime: evtTime}
}

// NewEvent creates a new Event instance with size and hash info.
// Returns nil if hashType is not one of EvtHashNone/EvtHash32Bits/EvtHash64Bits.
func NewEvent(evtType, id int, size int64, hash uint64, hashType int, evtTime time.Time) *Event {
	if evtTime.IsZero() {
		evtTime = time.Now()
	}

	if hashType != EvtHashNone && hashType != EvtHash32Bits && hashType != EvtHash64Bits {
		return nil
	}

	return &Event{eventType: evtType, id: id, size: size, hash: hash,
		hashType: hashType, eventTime: evtTime}
}

// Type returns the event type
func (e *Event) Type() int {
	return e.eventType
}

// ID returns the batch/worker id associated with the event
func (e *Event) ID() int {
	return e.id
}

// Time returns the event's timestamp
func (e *Event) Time() time.Time {
	return e.eventTime
}

// Size returns the size info (e.g. bytes of sequence processed)
func (e *Event) Size() int64 {
	return e.size
}

// Hash returns the hash info, when set
func (e *Event) Hash() uint64 {
	return e.hash
}

// HashType returns EvtHashNone, EvtHash32Bits or EvtHash64Bits
func (e *Event) HashType() int {
	return e.hashType
}

// String returns a string representation of this event. If the event wraps
// a message, the message is returned; otherwise a string is built from the
// fields.
func (e *Event) String() string {
	if len(e.msg) > 0 {
		return e.msg
	}

	hash := ""
	t := ""
	id := ""

	if e.hashType != EvtHashNone {
		hash = fmt.Sprintf(", \"hash\": %x", e.hash)
	}

	if e.id >= 0 {
		id = fmt.Sprintf(", \"id\": %d", e.id)
	}

	switch e.eventType {
	case EvtBatchStart:
		t = "BATCH_START"
	case EvtBatchEnd:
		t = "BATCH_END"
	case EvtMergeStart:
		t = "MERGE_START"
	case EvtMergeEnd:
		t = "MERGE_END"
	case EvtAlignRow:
		t = "ALIGN_ROW"
	case EvtConvertStep:
		t = "CONVERT_STEP"
	}

	return fmt.Sprintf("{ \"type\":\"%s\"%s, \"size\":%d, \"time\":%d%s }", t, id, e.size,
		e.eventTime.UnixNano()/1000000, hash)
}

// Listener is implemented by event processors (progress bars, loggers).
type Listener interface {
	// ProcessEvent is called whenever a Listener receives an event.
	ProcessEvent(evt *Event)
}
