package system

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moodnest-cli/internal/model"
)

type stubSource struct {
	calls  atomic.Int32
	status *model.SystemStatus
	err    error
}

func (s *stubSource) System(context.Context) (*model.SystemStatus, error) {
	s.calls.Add(1)
	return s.status, s.err
}

func TestFetch(t *testing.T) {
	src := &stubSource{status: &model.SystemStatus{Status: "online"}}
	p := NewPoller(src, 0, nil)

	status := p.Fetch(context.Background())

	require.NotNil(t, status)
	assert.True(t, status.Online())
}

func TestFetchFailureReturnsNil(t *testing.T) {
	p := NewPoller(&stubSource{err: errors.New("down")}, 0, nil)

	assert.Nil(t, p.Fetch(context.Background()))
}

func TestWatchOnceWithoutInterval(t *testing.T) {
	src := &stubSource{status: &model.SystemStatus{Status: "online"}}
	p := NewPoller(src, 0, nil)

	var got []*model.SystemStatus
	p.Watch(context.Background(), func(s *model.SystemStatus) { got = append(got, s) })

	assert.Len(t, got, 1)
	assert.EqualValues(t, 1, src.calls.Load())
}

func TestWatchStopsOnCancel(t *testing.T) {
	src := &stubSource{status: &model.SystemStatus{Status: "online"}}
	p := NewPoller(src, 5*time.Millisecond, nil)
	ctx, cancel := context.WithCancel(context.Background())

	updates := make(chan struct{}, 16)
	done := make(chan struct{})
	go func() {
		defer close(done)
		p.Watch(ctx, func(*model.SystemStatus) {
			select {
			case updates <- struct{}{}:
			default:
			}
		})
	}()

	for i := 0; i < 3; i++ {
		select {
		case <-updates:
		case <-time.After(time.Second):
			t.Fatal("expected periodic updates")
		}
	}
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}
