package poller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"
)

// sleepRecorder captures requested delays without actually sleeping
type sleepRecorder struct {
	delays []time.Duration
}

func (r *sleepRecorder) sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.delays = append(r.delays, d)
	return nil
}

func testConfig(rec *sleepRecorder) Config {
	return Config{
		MaxAttempts:        15,
		InitialDelay:       0,
		BaseDelay:          5 * time.Second,
		MaxDelay:           60 * time.Second,
		BackoffIncrement:   5 * time.Second,
		RateLimitBase:      45 * time.Second,
		RateLimitIncrement: 10 * time.Second,
		RateLimitMax:       90 * time.Second,
		TransientPause:     5 * time.Second,
		Sleep:              rec.sleep,
	}
}

// scriptFetcher returns the queued statuses/errors in order
type scriptFetcher struct {
	steps []func() (*Status, error)
	calls int
}

func (f *scriptFetcher) fetch(ctx context.Context, handle string) (*Status, error) {
	if f.calls >= len(f.steps) {
		return nil, fmt.Errorf("unexpected fetch call %d", f.calls+1)
	}
	step := f.steps[f.calls]
	f.calls++
	return step()
}

func status(state string) func() (*Status, error) {
	return func() (*Status, error) { return &Status{State: state}, nil }
}

func statusWithResult(state, payload string) func() (*Status, error) {
	return func() (*Status, error) {
		return &Status{State: state, Result: json.RawMessage(payload)}, nil
	}
}

func fetchErr(err error) func() (*Status, error) {
	return func() (*Status, error) { return nil, err }
}

func TestPoll_SuccessAfterProcessing(t *testing.T) {
	rec := &sleepRecorder{}
	f := &scriptFetcher{steps: []func() (*Status, error){
		status("processing"),
		status("processing"),
		statusWithResult("completed", `{"x":1}`),
	}}

	res, err := Poll(context.Background(), "job-1", f.fetch, testConfig(rec))
	if err != nil {
		t.Fatalf("Poll failed: %v", err)
	}

	if res.Outcome != OutcomeSuccess {
		t.Errorf("Outcome = %q, want success", res.Outcome)
	}
	if res.Attempts != 3 {
		t.Errorf("Attempts = %d, want 3", res.Attempts)
	}
	if string(res.Payload) != `{"x":1}` {
		t.Errorf("Payload = %s, want {\"x\":1}", res.Payload)
	}
	if f.calls != 3 {
		t.Errorf("fetch calls = %d, want exactly 3", f.calls)
	}

	// Linear backoff between the non-terminal attempts, no delay after the
	// terminal one
	want := []time.Duration{5 * time.Second, 10 * time.Second}
	if len(rec.delays) != len(want) {
		t.Fatalf("delays = %v, want %v", rec.delays, want)
	}
	for i := range want {
		if rec.delays[i] != want[i] {
			t.Errorf("delay[%d] = %v, want %v", i, rec.delays[i], want[i])
		}
	}
}

func TestPoll_TimeoutOnExhaustion(t *testing.T) {
	rec := &sleepRecorder{}
	cfg := testConfig(rec)
	cfg.MaxAttempts = 5

	steps := make([]func() (*Status, error), 5)
	for i := range steps {
		steps[i] = status("processing")
	}
	f := &scriptFetcher{steps: steps}

	res, err := Poll(context.Background(), "job-2", f.fetch, cfg)
	if err != nil {
		t.Fatalf("Poll failed: %v", err)
	}

	if res.Outcome != OutcomeTimeout {
		t.Errorf("Outcome = %q, want timeout", res.Outcome)
	}
	if res.Attempts != 5 {
		t.Errorf("Attempts = %d, want 5", res.Attempts)
	}
	if !errors.Is(res.Cause, ErrTimeout) {
		t.Errorf("Cause = %v, want ErrTimeout", res.Cause)
	}
	if f.calls != 5 {
		t.Errorf("fetch calls = %d, want exactly 5", f.calls)
	}
	// No suspension after the final attempt
	if len(rec.delays) != 4 {
		t.Errorf("delays = %v, want 4 entries", rec.delays)
	}
}

func TestPoll_ImmediateFailure(t *testing.T) {
	rec := &sleepRecorder{}
	f := &scriptFetcher{steps: []func() (*Status, error){
		func() (*Status, error) {
			return &Status{State: "failed", Error: "bad url"}, nil
		},
	}}

	res, err := Poll(context.Background(), "job-3", f.fetch, testConfig(rec))
	if err != nil {
		t.Fatalf("Poll failed: %v", err)
	}

	if res.Outcome != OutcomeFailed {
		t.Errorf("Outcome = %q, want failed", res.Outcome)
	}
	if res.Err != "bad url" {
		t.Errorf("Err = %q, want %q", res.Err, "bad url")
	}
	if res.Attempts != 1 {
		t.Errorf("Attempts = %d, want 1", res.Attempts)
	}
	if len(rec.delays) != 0 {
		t.Errorf("delays = %v, want none", rec.delays)
	}
}

func TestPoll_RateLimitedCooldowns(t *testing.T) {
	rec := &sleepRecorder{}
	rlErr := &FetchError{Kind: KindRateLimited, Message: "too many requests"}
	f := &scriptFetcher{steps: []func() (*Status, error){
		fetchErr(rlErr),
		fetchErr(rlErr),
		statusWithResult("completed", `{"done":true}`),
	}}

	res, err := Poll(context.Background(), "job-4", f.fetch, testConfig(rec))
	if err != nil {
		t.Fatalf("Poll failed: %v", err)
	}

	if res.Outcome != OutcomeSuccess {
		t.Errorf("Outcome = %q, want success", res.Outcome)
	}
	if res.Attempts != 3 {
		t.Errorf("Attempts = %d, want 3", res.Attempts)
	}

	// Extended cooldowns, not the normal backoff schedule
	want := []time.Duration{45 * time.Second, 55 * time.Second}
	if len(rec.delays) != len(want) {
		t.Fatalf("delays = %v, want %v", rec.delays, want)
	}
	for i := range want {
		if rec.delays[i] != want[i] {
			t.Errorf("delay[%d] = %v, want %v", i, rec.delays[i], want[i])
		}
	}
}

func TestPoll_RateLimitDetectedByStatusCode(t *testing.T) {
	rec := &sleepRecorder{}
	f := &scriptFetcher{steps: []func() (*Status, error){
		fetchErr(httpStatusError{code: 429}),
		statusWithResult("completed", `{}`),
	}}

	res, err := Poll(context.Background(), "job-5", f.fetch, testConfig(rec))
	if err != nil {
		t.Fatalf("Poll failed: %v", err)
	}
	if res.Outcome != OutcomeSuccess {
		t.Errorf("Outcome = %q, want success", res.Outcome)
	}
	if len(rec.delays) != 1 || rec.delays[0] != 45*time.Second {
		t.Errorf("delays = %v, want [45s]", rec.delays)
	}
}

type httpStatusError struct {
	code int
}

func (e httpStatusError) Error() string      { return fmt.Sprintf("HTTP %d", e.code) }
func (e httpStatusError) GetStatusCode() int { return e.code }

func TestPoll_GenericErrorToleratedOnce(t *testing.T) {
	rec := &sleepRecorder{}
	f := &scriptFetcher{steps: []func() (*Status, error){
		fetchErr(errors.New("connection reset")),
		statusWithResult("completed", `{}`),
	}}

	res, err := Poll(context.Background(), "job-6", f.fetch, testConfig(rec))
	if err != nil {
		t.Fatalf("Poll failed: %v", err)
	}
	if res.Outcome != OutcomeSuccess {
		t.Errorf("Outcome = %q, want success", res.Outcome)
	}
	// The tolerated error pauses for the fixed transient interval
	if len(rec.delays) != 1 || rec.delays[0] != 5*time.Second {
		t.Errorf("delays = %v, want [5s]", rec.delays)
	}
}

func TestPoll_SecondConsecutiveGenericErrorFails(t *testing.T) {
	rec := &sleepRecorder{}
	underlying := errors.New("connection reset")
	f := &scriptFetcher{steps: []func() (*Status, error){
		fetchErr(underlying),
		fetchErr(underlying),
	}}

	res, err := Poll(context.Background(), "job-7", f.fetch, testConfig(rec))
	if err != nil {
		t.Fatalf("Poll failed: %v", err)
	}

	if res.Outcome != OutcomeFailed {
		t.Errorf("Outcome = %q, want failed", res.Outcome)
	}
	if res.Attempts != 2 {
		t.Errorf("Attempts = %d, want 2", res.Attempts)
	}
	if !errors.Is(res.Cause, underlying) {
		t.Errorf("Cause = %v, want underlying error attached", res.Cause)
	}
}

func TestPoll_ErrorCounterResetsOnSuccessfulFetch(t *testing.T) {
	rec := &sleepRecorder{}
	f := &scriptFetcher{steps: []func() (*Status, error){
		fetchErr(errors.New("boom")),
		status("processing"),
		fetchErr(errors.New("boom")),
		statusWithResult("completed", `{}`),
	}}

	res, err := Poll(context.Background(), "job-8", f.fetch, testConfig(rec))
	if err != nil {
		t.Fatalf("Poll failed: %v", err)
	}
	if res.Outcome != OutcomeSuccess {
		t.Errorf("Outcome = %q, want success (errors were not consecutive)", res.Outcome)
	}
	if res.Attempts != 4 {
		t.Errorf("Attempts = %d, want 4", res.Attempts)
	}
}

func TestPoll_RateLimitDoesNotCountAsGenericError(t *testing.T) {
	rec := &sleepRecorder{}
	rlErr := &FetchError{Kind: KindRateLimited, Message: "slow down"}
	steps := []func() (*Status, error){
		fetchErr(rlErr),
		fetchErr(rlErr),
		fetchErr(rlErr),
		fetchErr(errors.New("boom")),
		statusWithResult("completed", `{}`),
	}
	f := &scriptFetcher{steps: steps}

	res, err := Poll(context.Background(), "job-9", f.fetch, testConfig(rec))
	if err != nil {
		t.Fatalf("Poll failed: %v", err)
	}
	if res.Outcome != OutcomeSuccess {
		t.Errorf("Outcome = %q, want success", res.Outcome)
	}
	if res.Attempts != 5 {
		t.Errorf("Attempts = %d, want 5", res.Attempts)
	}
}

func TestPoll_GenericErrorNearExhaustionExitsEarly(t *testing.T) {
	rec := &sleepRecorder{}
	cfg := testConfig(rec)
	cfg.MaxAttempts = 2
	f := &scriptFetcher{steps: []func() (*Status, error){
		status("processing"),
		fetchErr(errors.New("boom")),
	}}

	res, err := Poll(context.Background(), "job-10", f.fetch, cfg)
	if err != nil {
		t.Fatalf("Poll failed: %v", err)
	}
	if res.Outcome != OutcomeFailed {
		t.Errorf("Outcome = %q, want failed via the error path", res.Outcome)
	}
	if res.Attempts != 2 {
		t.Errorf("Attempts = %d, want 2", res.Attempts)
	}
}

func TestPoll_InvalidHandle(t *testing.T) {
	for _, handle := range []string{"", "   "} {
		calls := 0
		_, err := Poll(context.Background(), handle, func(ctx context.Context, h string) (*Status, error) {
			calls++
			return &Status{State: "completed"}, nil
		}, Config{})
		if !errors.Is(err, ErrInvalidHandle) {
			t.Errorf("handle %q: err = %v, want ErrInvalidHandle", handle, err)
		}
		if calls != 0 {
			t.Errorf("handle %q: fetch called %d times, want 0", handle, calls)
		}
	}
}

func TestPoll_InitialDelay(t *testing.T) {
	rec := &sleepRecorder{}
	cfg := testConfig(rec)
	cfg.InitialDelay = 10 * time.Second
	f := &scriptFetcher{steps: []func() (*Status, error){
		statusWithResult("completed", `{}`),
	}}

	res, err := Poll(context.Background(), "job-11", f.fetch, cfg)
	if err != nil {
		t.Fatalf("Poll failed: %v", err)
	}
	if res.Attempts != 1 {
		t.Errorf("Attempts = %d, want 1", res.Attempts)
	}
	if len(rec.delays) != 1 || rec.delays[0] != 10*time.Second {
		t.Errorf("delays = %v, want [10s]", rec.delays)
	}
}

func TestPoll_DelayScheduleMonotonicAndCapped(t *testing.T) {
	cfg := Config{
		BaseDelay:        5 * time.Second,
		MaxDelay:         60 * time.Second,
		BackoffIncrement: 15 * time.Second,
	}

	var prev time.Duration
	for i := 0; i < 10; i++ {
		d := nextDelay(i, cfg)
		want := 5*time.Second + time.Duration(i)*15*time.Second
		if want > 60*time.Second {
			want = 60 * time.Second
		}
		if d != want {
			t.Errorf("nextDelay(%d) = %v, want %v", i, d, want)
		}
		if d < prev {
			t.Errorf("nextDelay(%d) = %v decreased from %v", i, d, prev)
		}
		prev = d
	}
}

func TestPoll_RateLimitCooldownCapped(t *testing.T) {
	cfg := DefaultConfig()
	if d := rateLimitDelay(0, cfg); d != 45*time.Second {
		t.Errorf("rateLimitDelay(0) = %v, want 45s", d)
	}
	if d := rateLimitDelay(20, cfg); d != 90*time.Second {
		t.Errorf("rateLimitDelay(20) = %v, want capped at 90s", d)
	}
}

func TestPoll_TerminalStatusSetsConfigurable(t *testing.T) {
	rec := &sleepRecorder{}
	cfg := testConfig(rec)
	cfg.SuccessStatuses = []string{"done"}
	cfg.FailureStatuses = []string{"dead"}

	f := &scriptFetcher{steps: []func() (*Status, error){
		// "completed" is not terminal under the custom set
		status("completed"),
		statusWithResult("done", `{}`),
	}}

	res, err := Poll(context.Background(), "job-12", f.fetch, cfg)
	if err != nil {
		t.Fatalf("Poll failed: %v", err)
	}
	if res.Outcome != OutcomeSuccess {
		t.Errorf("Outcome = %q, want success", res.Outcome)
	}
	if res.Attempts != 2 {
		t.Errorf("Attempts = %d, want 2", res.Attempts)
	}
}

func TestPoll_ContextCancellationStopsLoop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := DefaultConfig()
	cfg.InitialDelay = 0
	cfg.Sleep = func(ctx context.Context, d time.Duration) error {
		cancel()
		return ctx.Err()
	}

	calls := 0
	_, err := Poll(ctx, "job-13", func(ctx context.Context, h string) (*Status, error) {
		calls++
		return &Status{State: "processing"}, nil
	}, cfg)

	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if calls != 1 {
		t.Errorf("fetch calls = %d, want 1", calls)
	}
}

func TestIsRateLimited_MessageContent(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{errors.New("rate limit exceeded"), true},
		{errors.New("429 Too Many Requests"), true},
		{errors.New("connection refused"), false},
		{&FetchError{Kind: KindTransient, Message: "timeout"}, false},
		{&FetchError{Kind: KindRateLimited, Message: "slow down"}, true},
	}
	for _, tc := range cases {
		if got := IsRateLimited(tc.err); got != tc.want {
			t.Errorf("IsRateLimited(%v) = %v, want %v", tc.err, got, tc.want)
		}
	}
}

func TestPoll_OnAttemptObservesEveryFetch(t *testing.T) {
	rec := &sleepRecorder{}
	cfg := testConfig(rec)

	type observation struct {
		attempt int
		state   string
	}
	var seen []observation
	cfg.OnAttempt = func(attempt int, state string) {
		seen = append(seen, observation{attempt, state})
	}

	f := &scriptFetcher{steps: []func() (*Status, error){
		status("processing"),
		fetchErr(errors.New("connection reset")),
		statusWithResult("completed", `{}`),
	}}

	res, err := Poll(context.Background(), "job-14", f.fetch, cfg)
	if err != nil {
		t.Fatalf("Poll failed: %v", err)
	}
	if res.Outcome != OutcomeSuccess {
		t.Fatalf("Outcome = %q, want success", res.Outcome)
	}

	want := []observation{{1, "processing"}, {2, ""}, {3, "completed"}}
	if len(seen) != len(want) {
		t.Fatalf("observations = %d, want %d", len(seen), len(want))
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("observation[%d] = %+v, want %+v", i, seen[i], want[i])
		}
	}
}

func TestPoll_NoCooldownAfterFinalRateLimitedAttempt(t *testing.T) {
	rec := &sleepRecorder{}
	cfg := testConfig(rec)
	cfg.MaxAttempts = 2

	rlErr := &FetchError{Kind: KindRateLimited, Message: "slow down"}
	f := &scriptFetcher{steps: []func() (*Status, error){
		status("processing"),
		fetchErr(rlErr),
	}}

	res, err := Poll(context.Background(), "job-15", f.fetch, cfg)
	if err != nil {
		t.Fatalf("Poll failed: %v", err)
	}
	if res.Outcome != OutcomeTimeout {
		t.Errorf("Outcome = %q, want timeout", res.Outcome)
	}
	if res.Attempts != 2 {
		t.Errorf("Attempts = %d, want 2", res.Attempts)
	}

	// Only the backoff after the first attempt; the exhausted loop must
	// not suspend for a cooldown it can never use
	want := []time.Duration{5 * time.Second}
	if len(rec.delays) != len(want) || rec.delays[0] != want[0] {
		t.Errorf("delays = %v, want %v", rec.delays, want)
	}
}

func TestPoll_ZeroConfigSkipsInitialWait(t *testing.T) {
	rec := &sleepRecorder{}
	f := &scriptFetcher{steps: []func() (*Status, error){
		status("processing"),
		statusWithResult("completed", `{}`),
	}}

	res, err := Poll(context.Background(), "job-16", f.fetch, Config{Sleep: rec.sleep})
	if err != nil {
		t.Fatalf("Poll failed: %v", err)
	}
	if res.Outcome != OutcomeSuccess {
		t.Fatalf("Outcome = %q, want success", res.Outcome)
	}

	// The backoff schedule is defaulted, the initial wait is not: a
	// zero-value config fetches immediately
	want := []time.Duration{DefaultConfig().BaseDelay}
	if len(rec.delays) != len(want) || rec.delays[0] != want[0] {
		t.Errorf("delays = %v, want %v", rec.delays, want)
	}
}
