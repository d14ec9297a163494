package procrt_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	procrt "github.com/joeycumines/go-procrt"
)

// TestPingPong is spec.md §8 scenario S1: a spawned process sends 42 on "c"
// and the host receives it, with active-count returning to 0 afterwards.
func TestPingPong(t *testing.T) {
	rt := newTestRuntime(t)
	defer rt.Close()

	require.NoError(t, rt.NewChannel("c"))

	_, err := rt.NewProc(scriptBody(func(ctx context.Context, b *procrt.Bridge, _ []procrt.Value) error {
		return b.Send(ctx, "c", []procrt.Value{procrt.IntValue(42)})
	}), nil)
	require.NoError(t, err)

	ctx := context.Background()
	vals, err := rt.Receive(ctx, "c")
	require.NoError(t, err)
	require.Equal(t, []procrt.Value{procrt.IntValue(42)}, vals)

	require.NoError(t, rt.Wait(ctx))
}

// TestFIFOMatching is spec.md §8 scenario S2: two processes send "A" then
// "B"; with a single worker the ready-queue's own FIFO ordering guarantees
// process 1 parks on the channel's send-queue before process 2 does (the
// single worker drives each process to its next suspension point before
// picking up the next ready one), so the first receive must get "A" and
// the second "B".
func TestFIFOMatching(t *testing.T) {
	rt := newTestRuntime(t, procrt.WithNumWorkers(1))
	defer rt.Close()

	require.NoError(t, rt.NewChannel("c"))

	_, err := rt.NewProc(scriptBody(func(ctx context.Context, b *procrt.Bridge, _ []procrt.Value) error {
		return b.Send(ctx, "c", []procrt.Value{procrt.StringValue("A")})
	}), nil)
	require.NoError(t, err)
	_, err = rt.NewProc(scriptBody(func(ctx context.Context, b *procrt.Bridge, _ []procrt.Value) error {
		return b.Send(ctx, "c", []procrt.Value{procrt.StringValue("B")})
	}), nil)
	require.NoError(t, err)

	ctx := context.Background()
	first, err := rt.Receive(ctx, "c")
	require.NoError(t, err)
	second, err := rt.Receive(ctx, "c")
	require.NoError(t, err)

	require.Equal(t, []procrt.Value{procrt.StringValue("A")}, first)
	require.Equal(t, []procrt.Value{procrt.StringValue("B")}, second)

	require.NoError(t, rt.Wait(ctx))
}

// TestDestroyUnblocksWaiter is spec.md §8 scenario S3: a process parked
// receiving on "c" must be woken with a *DestroyedError when the host
// deletes the channel.
func TestDestroyUnblocksWaiter(t *testing.T) {
	rt := newTestRuntime(t)
	defer rt.Close()

	require.NoError(t, rt.NewChannel("c"))
	require.NoError(t, rt.NewChannel("ready"))

	resultCh := make(chan error, 1)
	_, err := rt.NewProc(scriptBody(func(ctx context.Context, b *procrt.Bridge, _ []procrt.Value) error {
		if err := b.Send(ctx, "ready", nil); err != nil {
			return err
		}
		_, recvErr := b.Receive(ctx, "c", false)
		resultCh <- recvErr
		return nil
	}), nil)
	require.NoError(t, err)

	ctx := context.Background()
	_, err = rt.Receive(ctx, "ready")
	require.NoError(t, err)

	// Give the process a moment to actually park on "c"'s receive-queue
	// after the "ready" rendezvous re-schedules it.
	time.Sleep(50 * time.Millisecond)

	require.NoError(t, rt.DelChannel("c"))

	select {
	case recvErr := <-resultCh:
		var destroyed *procrt.DestroyedError
		require.ErrorAs(t, recvErr, &destroyed)
		require.Equal(t, "c", destroyed.Name)
		require.Equal(t, "sender", destroyed.Op)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for the destroyed notification")
	}

	require.NoError(t, rt.Wait(ctx))
}

// TestReceiveAsyncEmpty is spec.md §8 scenario S4: an async receive with no
// senders waiting returns ErrNoSendersWaiting immediately.
func TestReceiveAsyncEmpty(t *testing.T) {
	rt := newTestRuntime(t)
	defer rt.Close()

	require.NoError(t, rt.NewChannel("empty"))

	_, err := rt.ReceiveAsync(context.Background(), "empty")
	require.ErrorIs(t, err, procrt.ErrNoSendersWaiting)
}

// TestReceiveAsyncMissingChannel covers spec.md §4.2's "Locked-get channel;
// if absent -> (nil, 'does not exist')" for a channel that was never
// created - Send/Receive/Broadcast never auto-create on lookup.
func TestReceiveAsyncMissingChannel(t *testing.T) {
	rt := newTestRuntime(t)
	defer rt.Close()

	var notFound *procrt.NotFoundError
	_, err := rt.ReceiveAsync(context.Background(), "nope")
	require.ErrorAs(t, err, &notFound)
	require.Equal(t, "nope", notFound.Name)
}

// TestPeriodicSleepDriftFree is spec.md §8 scenario S5: sleeping against a
// rate handle `iterations` times advances in lockstep with `period`,
// accumulating no drift beyond ordinary scheduling slack.
func TestPeriodicSleepDriftFree(t *testing.T) {
	rt := newTestRuntime(t)
	defer rt.Close()

	ctx := context.Background()
	const period = 15 * time.Millisecond
	const iterations = 5

	r, err := rt.Period(period)
	require.NoError(t, err)
	start := time.Now()
	for i := 0; i < iterations; i++ {
		require.NoError(t, rt.RateSleep(ctx, r))
	}
	elapsed := time.Since(start)

	require.GreaterOrEqual(t, elapsed, iterations*period)
	require.Less(t, elapsed, iterations*period+300*time.Millisecond)
}

// TestPeriodRejectsNonPositive covers the InvalidArgument path for a zero
// or negative period: no rate handle with an unadvanceable deadline is
// ever handed out.
func TestPeriodRejectsNonPositive(t *testing.T) {
	rt := newTestRuntime(t)
	defer rt.Close()

	var invalid *procrt.InvalidArgumentError
	_, err := rt.Period(0)
	require.ErrorAs(t, err, &invalid)
	_, err = rt.Period(-time.Second)
	require.ErrorAs(t, err, &invalid)
}

// TestMaxMessageValuesCapsPayload exercises the StackFull path: with a cap
// of 2, a 3-value send is rejected before it ever touches the channel.
func TestMaxMessageValuesCapsPayload(t *testing.T) {
	rt := newTestRuntime(t, procrt.WithMaxMessageValues(2))
	defer rt.Close()

	require.NoError(t, rt.NewChannel("c"))

	var full *procrt.StackFullError
	err := rt.Send(context.Background(), "c",
		procrt.IntValue(1), procrt.IntValue(2), procrt.IntValue(3))
	require.ErrorAs(t, err, &full)
	require.Equal(t, 3, full.Requested)
	require.Equal(t, 2, full.Capacity)

	_, err = rt.Broadcast(context.Background(), "c",
		procrt.IntValue(1), procrt.IntValue(2), procrt.IntValue(3))
	require.ErrorAs(t, err, &full)
}

// TestBroadcastDeliversToAllWaitingReceivers is spec.md §8 testable
// property 9: every receiver parked at broadcast time gets the same
// values exactly once.
func TestBroadcastDeliversToAllWaitingReceivers(t *testing.T) {
	rt := newTestRuntime(t)
	defer rt.Close()

	ctx := context.Background()
	require.NoError(t, rt.NewChannel("bcast"))
	const n = 3
	results := make(chan procrt.Value, n)
	for i := 0; i < n; i++ {
		_, err := rt.NewProc(scriptBody(func(ctx context.Context, b *procrt.Bridge, _ []procrt.Value) error {
			vals, err := b.Receive(ctx, "bcast", false)
			if err != nil {
				return err
			}
			results <- vals[0]
			return nil
		}), nil)
		require.NoError(t, err)
	}

	// Give every process time to park on bcast's receive-queue.
	time.Sleep(50 * time.Millisecond)

	count, err := rt.Broadcast(ctx, "bcast", procrt.IntValue(7))
	require.NoError(t, err)
	require.Equal(t, n, count)

	for i := 0; i < n; i++ {
		select {
		case v := <-results:
			require.Equal(t, procrt.IntValue(7), v)
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for a broadcast result")
		}
	}
	require.NoError(t, rt.Wait(ctx))
}

// TestBroadcastNoReceiversReturnsError covers spec.md §4.2's "Returns (nil,
// 'no one receive') when no receivers were present."
func TestBroadcastNoReceiversReturnsError(t *testing.T) {
	rt := newTestRuntime(t)
	defer rt.Close()

	require.NoError(t, rt.NewChannel("nobody-home"))

	n, err := rt.Broadcast(context.Background(), "nobody-home")
	require.ErrorIs(t, err, procrt.ErrNoReceivers)
	require.Equal(t, 0, n)
}

// TestBroadcastMissingChannel covers spec.md §4.2's "does not exist" path
// for Broadcast against a channel nobody ever created.
func TestBroadcastMissingChannel(t *testing.T) {
	rt := newTestRuntime(t)
	defer rt.Close()

	var notFound *procrt.NotFoundError
	n, err := rt.Broadcast(context.Background(), "never-created")
	require.ErrorAs(t, err, &notFound)
	require.Equal(t, 0, n)
}

func TestChannelLifecycleErrors(t *testing.T) {
	rt := newTestRuntime(t)
	defer rt.Close()

	require.NoError(t, rt.NewChannel("x"))
	require.True(t, rt.IsOpen("x"))

	var alreadyExists *procrt.AlreadyExistsError
	require.ErrorAs(t, rt.NewChannel("x"), &alreadyExists)
	require.Equal(t, "x", alreadyExists.Name)

	require.NoError(t, rt.DelChannel("x"))
	require.False(t, rt.IsOpen("x"))

	var notFound *procrt.NotFoundError
	require.ErrorAs(t, rt.DelChannel("x"), &notFound)
}

func TestNewChannelRejectsEmptyName(t *testing.T) {
	rt := newTestRuntime(t)
	defer rt.Close()

	var invalid *procrt.InvalidArgumentError
	require.ErrorAs(t, rt.NewChannel(""), &invalid)
}

func TestSetAndGetNumWorkers(t *testing.T) {
	rt := newTestRuntime(t, procrt.WithNumWorkers(2))
	defer rt.Close()

	require.Equal(t, 2, rt.GetNumWorkers())
	require.NoError(t, rt.SetNumWorkers(4))
	require.Equal(t, 4, rt.GetNumWorkers())

	require.NoError(t, rt.SetNumWorkers(1))
	require.Equal(t, 1, rt.GetNumWorkers())

	var invalid *procrt.InvalidArgumentError
	require.ErrorAs(t, rt.SetNumWorkers(0), &invalid)
}

// TestWaitReachesQuiescence is spec.md §8 testable property 3: after Wait
// returns, every spawned process has finished.
func TestWaitReachesQuiescence(t *testing.T) {
	rt := newTestRuntime(t, procrt.WithNumWorkers(3))
	defer rt.Close()

	ctx := context.Background()
	const n = 10
	for i := 0; i < n; i++ {
		_, err := rt.NewProc(scriptBody(func(context.Context, *procrt.Bridge, []procrt.Value) error {
			return nil
		}), nil)
		require.NoError(t, err)
	}
	require.NoError(t, rt.Wait(ctx))
}

// TestRecyclePoolReusesProcessRecords exercises spec.md §4.3's recycle
// pool end to end: with a cap of 1, a finished process's record becomes
// available for the very next newproc call.
func TestRecyclePoolReusesProcessRecords(t *testing.T) {
	rt := newTestRuntime(t, procrt.WithRecycleLimit(1))
	defer rt.Close()

	ctx := context.Background()
	done := make(chan struct{})
	_, err := rt.NewProc(scriptBody(func(context.Context, *procrt.Bridge, []procrt.Value) error {
		close(done)
		return nil
	}), nil)
	require.NoError(t, err)
	<-done
	require.NoError(t, rt.Wait(ctx))

	require.NoError(t, rt.NewChannel("out"))
	_, err = rt.NewProc(scriptBody(func(ctx context.Context, b *procrt.Bridge, _ []procrt.Value) error {
		return b.Send(ctx, "out", []procrt.Value{procrt.IntValue(1)})
	}), nil)
	require.NoError(t, err)

	vals, err := rt.Receive(ctx, "out")
	require.NoError(t, err)
	require.Equal(t, []procrt.Value{procrt.IntValue(1)}, vals)
	require.NoError(t, rt.Wait(ctx))
}

// TestSleepAndYield exercises the remaining Bridge primitives a process
// can suspend on: a timed sleep followed by a bare cooperative yield,
// both from inside the same process body.
func TestSleepAndYield(t *testing.T) {
	rt := newTestRuntime(t)
	defer rt.Close()

	ctx := context.Background()
	start := time.Now()
	done := make(chan struct{})
	_, err := rt.NewProc(scriptBody(func(ctx context.Context, b *procrt.Bridge, _ []procrt.Value) error {
		if err := b.Sleep(ctx, 20*time.Millisecond); err != nil {
			return err
		}
		if err := b.Yield(ctx); err != nil {
			return err
		}
		close(done)
		return nil
	}), nil)
	require.NoError(t, err)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for process to sleep and yield")
	}
	require.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
	require.NoError(t, rt.Wait(ctx))
}

// TestNewProcSpawnsNestedProcess exercises newproc called from inside a
// running process, not just from the host.
func TestNewProcSpawnsNestedProcess(t *testing.T) {
	rt := newTestRuntime(t)
	defer rt.Close()

	ctx := context.Background()
	require.NoError(t, rt.NewChannel("nested"))
	_, err := rt.NewProc(scriptBody(func(ctx context.Context, b *procrt.Bridge, _ []procrt.Value) error {
		_, err := b.NewProc(scriptBody(func(ctx context.Context, b *procrt.Bridge, _ []procrt.Value) error {
			return b.Send(ctx, "nested", []procrt.Value{procrt.StringValue("hi")})
		}), nil)
		return err
	}), nil)
	require.NoError(t, err)

	vals, err := rt.Receive(ctx, "nested")
	require.NoError(t, err)
	require.Equal(t, []procrt.Value{procrt.StringValue("hi")}, vals)
	require.NoError(t, rt.Wait(ctx))
}
