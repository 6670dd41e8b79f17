// Package scenario manages per-session dashboard state: the current
// parameters, the challenge state machine, and the A/B snapshot slots.
// The model itself lives in package climate; this layer only decides what
// to feed it and what to do with what comes back.
package scenario

import (
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/tifye/climateclock/climate"
)

type Mode string

const (
	ModeStandard Mode = "standard"
	ModeKids     Mode = "kids"
)

// KidsUrbanizationPct is forced onto the urbanization parameter whenever
// kids mode is active. The override is applied here, in state, never by
// which control the UI happens to render.
const KidsUrbanizationPct = 45

func ValidMode(m Mode) bool {
	return m == ModeStandard || m == ModeKids
}

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

const defaultDifficulty = DifficultyMedium

func ValidDifficulty(d Difficulty) bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Targets returns the end-of-horizon risk thresholds a run must stay at or
// below to win at this difficulty.
func (d Difficulty) Targets() (targetFlood, targetDrought float64) {
	switch d {
	case DifficultyEasy:
		return 55, 55
	case DifficultyHard:
		return 30, 30
	default:
		return 40, 40
	}
}

// Slot names one of the two snapshot positions.
type Slot string

const (
	SlotA Slot = "A"
	SlotB Slot = "B"
)

func ValidSlot(s Slot) bool {
	return s == SlotA || s == SlotB
}

// Snapshot is an immutable (parameters, result) pair captured at save time.
type Snapshot struct {
	Params  climate.Parameters `json:"params"`
	Result  climate.Result     `json:"result"`
	SavedAt time.Time          `json:"savedAt"`
}

// ChallengeStatus reports one evaluation of the active challenge against a
// run's final record.
type ChallengeStatus struct {
	Enabled       bool       `json:"enabled"`
	Difficulty    Difficulty `json:"difficulty"`
	TargetFlood   float64    `json:"targetFlood"`
	TargetDrought float64    `json:"targetDrought"`
	FloodOK       bool       `json:"floodOk"`
	DroughtOK     bool       `json:"droughtOk"`
	Won           bool       `json:"won"`
}

// Deltas are the componentwise differences between slot B's and slot A's
// final records.
type Deltas struct {
	TempAnomalyC float64 `json:"tempAnomalyC"`
	FloodRisk    float64 `json:"floodRisk"`
	DroughtRisk  float64 `json:"droughtRisk"`
}

// ErrIncompleteComparison is returned by Compare while either slot is empty.
// It is an expected state the UI reports, not a failure.
var ErrIncompleteComparison = errors.New("comparison incomplete: save snapshots A and B first")

// Session is one user's dashboard state. Methods are safe for concurrent
// use; logically there is one actor per session, but nothing stops a user
// from racing two browser tabs.
type Session struct {
	mu sync.Mutex

	mode   Mode
	params climate.Parameters

	challengeOn bool
	difficulty  Difficulty
	won         bool

	compareOn bool
	snapshots map[Slot]Snapshot
}

func NewSession() *Session {
	s := &Session{}
	s.reset()
	return s
}

func (s *Session) reset() {
	s.mode = ModeStandard
	s.params = climate.Defaults()
	s.challengeOn = false
	s.difficulty = defaultDifficulty
	s.won = false
	s.compareOn = false
	s.snapshots = map[Slot]Snapshot{}
}

// Reset restores every field to the documented defaults, including both
// snapshot slots and the won flag.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
}

// Parameters returns the current parameter set.
func (s *Session) Parameters() climate.Parameters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.params
}

// SetParameters replaces the current parameters and returns the effective
// set. In kids mode the urbanization field is forced to
// KidsUrbanizationPct regardless of what the caller sent. No domain
// validation happens here; the boundary clamps.
func (s *Session) SetParameters(p climate.Parameters) climate.Parameters {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mode == ModeKids {
		p.UrbanizationPct = KidsUrbanizationPct
	}
	s.params = p
	return s.params
}

func (s *Session) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// SetMode switches between standard and kids mode. Entering kids mode
// applies the urbanization override immediately.
func (s *Session) SetMode(m Mode) climate.Parameters {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = m
	if m == ModeKids {
		s.params.UrbanizationPct = KidsUrbanizationPct
	}
	return s.params
}

// ApplyPreset loads a quick-scenario bundle. Presets always run in standard
// mode and clear any previous win so the celebration can fire again.
func (s *Session) ApplyPreset(name climate.Preset) (climate.Parameters, bool) {
	p, ok := climate.PresetParameters(name)
	if !ok {
		return climate.Parameters{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = ModeStandard
	s.params = p
	s.won = false
	return p, true
}

// SetChallenge toggles the challenge and selects a difficulty.
func (s *Session) SetChallenge(enabled bool, d Difficulty) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.challengeOn = enabled
	s.difficulty = d
}

// ResetChallenge clears the won flag and restores the default difficulty,
// leaving everything else alone.
func (s *Session) ResetChallenge() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.won = false
	s.difficulty = defaultDifficulty
}

// EvaluateChallenge checks a run's final record against the active targets.
// justWon is true only on the NotWon -> Won edge; holding the targets on a
// re-evaluation stays silent, and violating either target silently drops
// back to NotWon. With the challenge disabled the won flag is untouched.
func (s *Session) EvaluateChallenge(result climate.Result) (status ChallengeStatus, justWon bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	targetFlood, targetDrought := s.difficulty.Targets()
	status = ChallengeStatus{
		Enabled:       s.challengeOn,
		Difficulty:    s.difficulty,
		TargetFlood:   targetFlood,
		TargetDrought: targetDrought,
	}
	if !s.challengeOn {
		return status, false
	}

	final := result.Final()
	status.FloodOK = final.FloodRisk <= targetFlood
	status.DroughtOK = final.DroughtRisk <= targetDrought

	if status.FloodOK && status.DroughtOK {
		justWon = !s.won
		s.won = true
	} else {
		s.won = false
	}
	status.Won = s.won
	return status, justWon
}

// Won reports whether the session currently satisfies the challenge targets.
func (s *Session) Won() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.won
}

func (s *Session) CompareEnabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.compareOn
}

func (s *Session) SetCompare(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.compareOn = enabled
}

// SaveSnapshot stores an immutable copy of (params, result) into a slot,
// overwriting any prior occupant. The result is cloned so later runs cannot
// reach back into a saved scenario.
func (s *Session) SaveSnapshot(slot Slot, params climate.Parameters, result climate.Result) Snapshot {
	snap := Snapshot{
		Params:  params,
		Result:  slices.Clone(result),
		SavedAt: time.Now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots[slot] = snap
	return snap
}

// Snapshot returns the occupant of a slot, reporting whether one is saved.
func (s *Session) Snapshot(slot Slot) (Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, ok := s.snapshots[slot]
	return snap, ok
}

// ClearSnapshots empties both slots.
func (s *Session) ClearSnapshots() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots = map[Slot]Snapshot{}
}

// Compare returns B's final record minus A's, componentwise. While either
// slot is empty it returns ErrIncompleteComparison.
func (s *Session) Compare() (Deltas, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, okA := s.snapshots[SlotA]
	b, okB := s.snapshots[SlotB]
	if !okA || !okB {
		return Deltas{}, ErrIncompleteComparison
	}

	fa, fb := a.Result.Final(), b.Result.Final()
	return Deltas{
		TempAnomalyC: fb.TempAnomalyC - fa.TempAnomalyC,
		FloodRisk:    fb.FloodRisk - fa.FloodRisk,
		DroughtRisk:  fb.DroughtRisk - fa.DroughtRisk,
	}, nil
}

// State is a point-in-time view of a session for display.
type State struct {
	Mode           Mode               `json:"mode"`
	Parameters     climate.Parameters `json:"parameters"`
	Challenge      bool               `json:"challengeEnabled"`
	Difficulty     Difficulty         `json:"difficulty"`
	Won            bool               `json:"won"`
	CompareEnabled bool               `json:"compareEnabled"`
	SavedSlots     []Slot             `json:"savedSlots"`
}

// State returns a consistent view of the whole session.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	slots := make([]Slot, 0, 2)
	for _, slot := range []Slot{SlotA, SlotB} {
		if _, ok := s.snapshots[slot]; ok {
			slots = append(slots, slot)
		}
	}

	return State{
		Mode:           s.mode,
		Parameters:     s.params,
		Challenge:      s.challengeOn,
		Difficulty:     s.difficulty,
		Won:            s.won,
		CompareEnabled: s.compareOn,
		SavedSlots:     slots,
	}
}
