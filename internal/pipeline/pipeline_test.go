package pipeline

import (
	"testing"
	"time"
)

func TestTimingsAccumulate(t *testing.T) {
	var tm Timings
	tm.Add(StageLint, time.Millisecond)
	tm.Add(StageLint, 2*time.Millisecond)
	tm.Add(StageLoad, time.Millisecond)
	if !tm.Has(StageLint) || tm.Has(StageReport) {
		t.Fatalf("unexpected stages")
	}
	if got := tm.Sum(StageLoad, StageLint); got != 4*time.Millisecond {
		t.Fatalf("sum = %v", got)
	}
	var nilTimings *Timings
	nilTimings.Add(StageLint, time.Second)
}

func TestSinks(t *testing.T) {
	ch := make(chan Event, 1)
	ChannelSink{Ch: ch}.OnEvent(Event{File: "a.c", Stage: StageLint, Status: StatusDone})
	if evt := <-ch; evt.File != "a.c" {
		t.Fatalf("unexpected event %+v", evt)
	}
	ChannelSink{}.OnEvent(Event{})

	var rec Recorder
	var sink ProgressSink = SinkFunc(rec.OnEvent)
	sink.OnEvent(Event{Status: StatusQueued})
	if len(rec.Events()) != 1 {
		t.Fatalf("recorder missed event")
	}
}
