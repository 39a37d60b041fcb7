package alarm

import (
	"testing"
	"time"

	"github.com/lrfbranco/eye-strain-alarm/internal/core/model"
)

var testBase = time.Date(2025, time.March, 3, 9, 0, 0, 0, time.UTC)

type stubProbe struct {
	sample Sample
}

func (probe *stubProbe) Sample() Sample { return probe.sample }

func testConfig() model.AlarmConfig {
	return model.AlarmConfig{
		Interval:      100 * time.Second,
		IdleThreshold: 60 * time.Second,
	}
}

// newTestTimer returns a timer primed for direct tick driving, bypassing
// the wall-clock ticker goroutine.
func newTestTimer(t *testing.T, config model.AlarmConfig) (*Timer, *stubProbe) {
	t.Helper()
	keeper := New(config, Config{TickInterval: time.Second})
	probe := &stubProbe{}
	keeper.SetProbe(probe)
	keeper.mu.Lock()
	keeper.running = true
	keeper.lastTick = testBase
	keeper.mu.Unlock()
	return keeper, probe
}

func runTicks(keeper *Timer, from time.Time, count int, step time.Duration) time.Time {
	now := from
	for i := 0; i < count; i++ {
		now = now.Add(step)
		keeper.tick(now)
	}
	return now
}

func countFires(events <-chan Event) int {
	fires := 0
	for {
		select {
		case event := <-events:
			if event.Type == EventFire {
				fires++
			}
		default:
			return fires
		}
	}
}

func TestContinuousActivityFiresEachInterval(t *testing.T) {
	keeper, _ := newTestTimer(t, testConfig())
	events := keeper.Subscribe(512)

	runTicks(keeper, testBase, 350, time.Second)

	if fires := countFires(events); fires != 3 {
		t.Fatalf("fires = %d, want 3", fires)
	}
	if got, want := keeper.Accumulated(), 50*time.Second; got != want {
		t.Errorf("accumulated = %v, want %v", got, want)
	}
}

func TestMuteKeepsAccumulatedProgress(t *testing.T) {
	keeper, _ := newTestTimer(t, testConfig())
	events := keeper.Subscribe(512)

	now := runTicks(keeper, testBase, 30, time.Second)

	keeper.SetMuted(true)
	if got := keeper.State(); got != StateMuted {
		t.Fatalf("state after mute = %v, want %v", got, StateMuted)
	}
	if got, want := keeper.Accumulated(), 30*time.Second; got != want {
		t.Fatalf("accumulated after mute = %v, want %v", got, want)
	}

	keeper.SetMuted(false)
	if got, want := keeper.Accumulated(), 30*time.Second; got != want {
		t.Fatalf("accumulated after unmute = %v, want %v", got, want)
	}
	if got := keeper.State(); got != StateTracking {
		t.Fatalf("state after unmute = %v, want %v", got, StateTracking)
	}

	keeper.SetMuted(true)
	now = runTicks(keeper, now, 50, time.Second)
	if got, want := keeper.Accumulated(), 30*time.Second; got != want {
		t.Fatalf("accumulated after muted ticks = %v, want %v", got, want)
	}

	keeper.SetMuted(false)
	runTicks(keeper, now, 70, time.Second)

	if fires := countFires(events); fires != 1 {
		t.Fatalf("fires = %d, want 1", fires)
	}
	if got := keeper.Accumulated(); got != 0 {
		t.Errorf("accumulated after fire = %v, want 0", got)
	}
}

func TestIdleFreezesAndResumesAccumulation(t *testing.T) {
	keeper, probe := newTestTimer(t, testConfig())
	events := keeper.Subscribe(1024)

	now := runTicks(keeper, testBase, 60, time.Second)
	if got, want := keeper.Accumulated(), 60*time.Second; got != want {
		t.Fatalf("accumulated while active = %v, want %v", got, want)
	}
	if fires := countFires(events); fires != 0 {
		t.Fatalf("fires while active = %d, want 0", fires)
	}

	probe.sample.Idle = 10 * time.Minute
	now = runTicks(keeper, now, 600, time.Second)
	if got := keeper.State(); got != StateIdle {
		t.Fatalf("state while idle = %v, want %v", got, StateIdle)
	}
	if got, want := keeper.Accumulated(), 60*time.Second; got != want {
		t.Fatalf("accumulated while idle = %v, want %v", got, want)
	}
	if fires := countFires(events); fires != 0 {
		t.Fatalf("fires while idle = %d, want 0", fires)
	}

	probe.sample.Idle = 0
	runTicks(keeper, now, 60, time.Second)

	if fires := countFires(events); fires != 1 {
		t.Fatalf("fires after resume = %d, want 1", fires)
	}
	if got, want := keeper.Accumulated(), 20*time.Second; got != want {
		t.Errorf("accumulated after fire = %v, want %v", got, want)
	}
}

func TestLongIntervalFiresOnScheduledTick(t *testing.T) {
	config := model.AlarmConfig{
		Interval:      time.Hour,
		IdleThreshold: 5 * time.Minute,
	}
	keeper, _ := newTestTimer(t, config)
	events := keeper.Subscribe(1024)

	now := runTicks(keeper, testBase, 719, 5*time.Second)
	if fires := countFires(events); fires != 0 {
		t.Fatalf("fires before the interval elapsed = %d, want 0", fires)
	}

	runTicks(keeper, now, 1, 5*time.Second)
	if fires := countFires(events); fires != 1 {
		t.Fatalf("fires on the final tick = %d, want 1", fires)
	}
	if got := keeper.Accumulated(); got != 0 {
		t.Errorf("accumulated after fire = %v, want 0", got)
	}
}

func TestIdleMidSessionKeepsAccumulatedTime(t *testing.T) {
	config := model.AlarmConfig{
		Interval:      time.Hour,
		IdleThreshold: 5 * time.Minute,
	}
	keeper, probe := newTestTimer(t, config)

	now := runTicks(keeper, testBase, 1800, time.Second)
	if got, want := keeper.Accumulated(), 1800*time.Second; got != want {
		t.Fatalf("accumulated = %v, want %v", got, want)
	}

	probe.sample.Idle = 10 * time.Minute
	now = runTicks(keeper, now, 600, time.Second)
	if got, want := keeper.Accumulated(), 1800*time.Second; got != want {
		t.Fatalf("accumulated after idle = %v, want %v", got, want)
	}

	probe.sample.Idle = 0
	runTicks(keeper, now, 1, time.Second)
	if got, want := keeper.Accumulated(), 1801*time.Second; got != want {
		t.Errorf("accumulated after resume = %v, want %v", got, want)
	}
}

func TestMutePrecedenceSuppressesDueFire(t *testing.T) {
	keeper, _ := newTestTimer(t, testConfig())
	events := keeper.Subscribe(512)

	now := runTicks(keeper, testBase, 99, time.Second)

	keeper.SetMuted(true)
	now = runTicks(keeper, now, 10, time.Second)
	if fires := countFires(events); fires != 0 {
		t.Fatalf("fires while muted = %d, want 0", fires)
	}

	keeper.SetMuted(false)
	runTicks(keeper, now, 1, time.Second)
	if fires := countFires(events); fires != 1 {
		t.Fatalf("fires after unmute = %d, want 1", fires)
	}
}

func TestIdleAtThresholdFreezes(t *testing.T) {
	keeper, probe := newTestTimer(t, testConfig())

	probe.sample.Idle = 60 * time.Second
	runTicks(keeper, testBase, 5, time.Second)

	if got := keeper.State(); got != StateIdle {
		t.Errorf("state = %v, want %v", got, StateIdle)
	}
	if got := keeper.Accumulated(); got != 0 {
		t.Errorf("accumulated = %v, want 0", got)
	}
}

func TestMutedWinsOverIdle(t *testing.T) {
	config := testConfig()
	config.Muted = true
	keeper, probe := newTestTimer(t, config)

	probe.sample.Idle = 10 * time.Minute
	runTicks(keeper, testBase, 3, time.Second)

	if got := keeper.State(); got != StateMuted {
		t.Errorf("state = %v, want %v", got, StateMuted)
	}
}

func TestFullscreenFreezesWhenSuppressed(t *testing.T) {
	config := testConfig()
	config.SuppressFullscreen = true
	keeper, probe := newTestTimer(t, config)

	probe.sample.Fullscreen = true
	now := runTicks(keeper, testBase, 10, time.Second)
	if got := keeper.State(); got != StateIdle {
		t.Fatalf("state during fullscreen = %v, want %v", got, StateIdle)
	}
	if got := keeper.Accumulated(); got != 0 {
		t.Fatalf("accumulated during fullscreen = %v, want 0", got)
	}

	config.SuppressFullscreen = false
	keeper.UpdateConfig(config)
	runTicks(keeper, now, 10, time.Second)

	if got, want := keeper.Accumulated(), 10*time.Second; got != want {
		t.Errorf("accumulated with suppression off = %v, want %v", got, want)
	}
}

func TestClockBackwardsCountsNothing(t *testing.T) {
	keeper, _ := newTestTimer(t, testConfig())

	now := runTicks(keeper, testBase, 10, time.Second)

	keeper.tick(now.Add(-5 * time.Second))
	if got, want := keeper.Accumulated(), 10*time.Second; got != want {
		t.Fatalf("accumulated after backwards tick = %v, want %v", got, want)
	}

	// lastTick rebased to the earlier clock, so counting resumes from there.
	keeper.tick(now.Add(-3 * time.Second))
	if got, want := keeper.Accumulated(), 12*time.Second; got != want {
		t.Errorf("accumulated after rebased tick = %v, want %v", got, want)
	}
}

func TestClockJumpFiresAtMostOnce(t *testing.T) {
	keeper, _ := newTestTimer(t, testConfig())
	events := keeper.Subscribe(64)

	keeper.tick(testBase.Add(350 * time.Second))

	if fires := countFires(events); fires != 1 {
		t.Fatalf("fires = %d, want 1", fires)
	}
	if got := keeper.Accumulated(); got != 0 {
		t.Errorf("accumulated after jump = %v, want 0", got)
	}
}

func TestIntervalShrinkFiresOnNextTick(t *testing.T) {
	keeper, _ := newTestTimer(t, testConfig())
	events := keeper.Subscribe(512)

	now := runTicks(keeper, testBase, 60, time.Second)

	config := testConfig()
	config.Interval = 50 * time.Second
	keeper.UpdateConfig(config)
	if got, want := keeper.Accumulated(), 60*time.Second; got != want {
		t.Fatalf("accumulated after config change = %v, want %v", got, want)
	}

	runTicks(keeper, now, 1, time.Second)

	if fires := countFires(events); fires != 1 {
		t.Fatalf("fires = %d, want 1", fires)
	}
}

func TestUpdateConfigIgnoresInvalid(t *testing.T) {
	keeper, _ := newTestTimer(t, testConfig())

	keeper.UpdateConfig(model.AlarmConfig{})

	keeper.mu.Lock()
	interval := keeper.config.Interval
	keeper.mu.Unlock()
	if want := 100 * time.Second; interval != want {
		t.Errorf("interval after invalid update = %v, want %v", interval, want)
	}
}

func TestStateChangeEventsOnIdleTransition(t *testing.T) {
	keeper, probe := newTestTimer(t, testConfig())
	events := keeper.Subscribe(64)

	keeper.tick(testBase.Add(time.Second))
	probe.sample.Idle = 2 * time.Minute
	keeper.tick(testBase.Add(2 * time.Second))
	probe.sample.Idle = 0
	keeper.tick(testBase.Add(3 * time.Second))

	var states []State
	for {
		select {
		case event := <-events:
			if event.Type == EventStateChange {
				states = append(states, event.State)
			}
			continue
		default:
		}
		break
	}

	want := []State{StateIdle, StateTracking}
	if len(states) != len(want) {
		t.Fatalf("state changes = %v, want %v", states, want)
	}
	for i := range want {
		if states[i] != want[i] {
			t.Fatalf("state changes = %v, want %v", states, want)
		}
	}
}

func TestStopClosesSubscribers(t *testing.T) {
	keeper := New(testConfig(), Config{TickInterval: time.Hour})
	events := keeper.Subscribe(8)

	keeper.Start()
	keeper.Stop()

	for range events {
	}
}

func TestRestartAfterStop(t *testing.T) {
	keeper := New(testConfig(), Config{TickInterval: time.Millisecond})
	keeper.Start()
	keeper.Stop()

	keeper.Start()
	defer keeper.Stop()
	events := keeper.Subscribe(64)

	// The restarted loop must tick again; progress events prove it is
	// alive rather than parked on the channel Stop already closed.
	select {
	case <-events:
	case <-time.After(2 * time.Second):
		t.Fatal("no events after restart")
	}
}
