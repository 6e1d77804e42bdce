// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package engine_test

import (
	"context"
	"errors"
	"io"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transpaer/condenser/pkg/engine"
)

// sliceSource replays a fixed slice of messages, one per Next call.
type sliceSource struct {
	mu   sync.Mutex
	msgs []engine.RawMessage
	pos  int
}

func newSliceSource(msgs ...engine.RawMessage) *sliceSource {
	return &sliceSource{msgs: msgs}
}

func (s *sliceSource) Next() (engine.RawMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pos >= len(s.msgs) {
		return nil, io.EOF
	}
	m := s.msgs[s.pos]
	s.pos++
	return m, nil
}

func (s *sliceSource) Close() error { return nil }

// sumWorker interprets every message as an int and emits its running sum
// once on Finish, never on Process -- this exercises the finalisation
// emission path.
type sumWorker struct {
	total int
}

func (w *sumWorker) Process(msg engine.RawMessage) (int, bool, error) {
	w.total += msg.(int)
	return 0, false, nil
}

func (w *sumWorker) Finish() (int, bool, error) {
	if w.total == 0 {
		return 0, false, nil
	}
	return w.total, true, nil
}

// sumStash accumulates every worker's partial sum into one grand total.
type sumStash struct {
	mu    sync.Mutex
	total int
	final bool
}

func (s *sumStash) Merge(out int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.total += out
	return nil
}

func (s *sumStash) Finalise() error {
	s.final = true
	return nil
}

func TestRun_SumsAcrossWorkers(t *testing.T) {
	msgs := make([]engine.RawMessage, 0, 1000)
	want := 0
	for i := 1; i <= 1000; i++ {
		msgs = append(msgs, i)
		want += i
	}

	src := newSliceSource(msgs...)
	stash := &sumStash{}

	err := engine.Run(context.Background(), src, func() engine.Worker[int] { return &sumWorker{} }, stash, engine.WithWorkers(4))

	require.NoError(t, err)
	assert.Equal(t, want, stash.total)
	assert.True(t, stash.final)
}

// errorWorker always fails on the first message it sees.
type errorWorker struct{}

func (errorWorker) Process(engine.RawMessage) (int, bool, error) {
	return 0, false, errors.New("boom")
}

func (errorWorker) Finish() (int, bool, error) { return 0, false, nil }

func TestRun_PropagatesFirstWorkerError(t *testing.T) {
	src := newSliceSource(1, 2, 3, 4, 5)
	stash := &sumStash{}

	err := engine.Run(context.Background(), src, func() engine.Worker[int] { return errorWorker{} }, stash, engine.WithWorkers(2))

	assert.EqualError(t, err, "boom")
}

type errorStash struct{}

func (errorStash) Merge(int) error { return errors.New("merge failed") }
func (errorStash) Finalise() error { return nil }

func TestRun_PropagatesStashError(t *testing.T) {
	src := newSliceSource(1)
	err := engine.Run(context.Background(), src, func() engine.Worker[int] { return &sumWorker{} }, errorStash{})
	assert.EqualError(t, err, "merge failed")
}

// collectingWorker emits every message it sees individually; used to check
// that no message is silently dropped under concurrency.
type collectingWorker struct{}

func (collectingWorker) Process(msg engine.RawMessage) (int, bool, error) {
	return msg.(int), true, nil
}

func (collectingWorker) Finish() (int, bool, error) { return 0, false, nil }

type collectingStash struct {
	mu  sync.Mutex
	got []int
}

func (s *collectingStash) Merge(out int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.got = append(s.got, out)
	return nil
}

func (s *collectingStash) Finalise() error { return nil }

func TestRun_DeliversEveryMessageExactlyOnce(t *testing.T) {
	msgs := make([]engine.RawMessage, 0, 500)
	for i := 0; i < 500; i++ {
		msgs = append(msgs, i)
	}

	src := newSliceSource(msgs...)
	stash := &collectingStash{}

	err := engine.Run(context.Background(), src, func() engine.Worker[int] { return collectingWorker{} }, stash, engine.WithWorkers(8))
	require.NoError(t, err)

	sort.Ints(stash.got)
	want := make([]int, 500)
	for i := range want {
		want[i] = i
	}
	assert.Equal(t, want, stash.got)
}
