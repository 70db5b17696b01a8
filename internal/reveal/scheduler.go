// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package reveal

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/fakegpt-tui/internal/model"
)

// DefaultInterval is the delay between revealed characters.
const DefaultInterval = 15 * time.Millisecond

// TickMsg advances the reveal by one character.
type TickMsg struct {
	Gen  uint64
	Time time.Time
}

// Scheduler reveals a single target text. It is driven from the Bubble Tea
// update loop and is not safe for concurrent use.
type Scheduler struct {
	interval time.Duration

	id     string
	target []rune
	shown  int

	gen     uint64
	running bool
}

// New creates a scheduler. A non-positive interval uses DefaultInterval.
func New(interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Scheduler{interval: interval}
}

// SetInterval changes the tick spacing for subsequent ticks.
func (s *Scheduler) SetInterval(d time.Duration) {
	if d > 0 {
		s.interval = d
	}
}

// Interval returns the tick spacing.
func (s *Scheduler) Interval() time.Duration { return s.interval }

// Track starts revealing text for message id. Tracking the same id and text
// again is a no-op; any change restarts from empty.
func (s *Scheduler) Track(id, text string) tea.Cmd {
	if id == s.id && text == string(s.target) && id != "" {
		return nil
	}

	s.gen++
	s.id = id
	s.target = []rune(text)
	s.shown = 0
	s.running = len(s.target) > 0
	if !s.running {
		return nil
	}
	return s.tick()
}

// Follow tracks the last message when it is a bot reply and stops otherwise.
func (s *Scheduler) Follow(msgs []*model.Message) tea.Cmd {
	last := model.Last(msgs)
	if !last.IsBot() {
		s.Stop()
		return nil
	}
	return s.Track(last.ID, last.Text)
}

// Update handles a tick. Ticks from older generations are ignored.
func (s *Scheduler) Update(msg TickMsg) tea.Cmd {
	if msg.Gen != s.gen || !s.running {
		return nil
	}
	s.shown++
	if s.shown >= len(s.target) {
		s.shown = len(s.target)
		s.running = false
		return nil
	}
	return s.tick()
}

// Stop cancels the reveal and forgets the target.
func (s *Scheduler) Stop() {
	s.gen++
	s.id = ""
	s.target = nil
	s.shown = 0
	s.running = false
}

// Skip shows the whole target immediately.
func (s *Scheduler) Skip() {
	if !s.running {
		return
	}
	s.gen++
	s.shown = len(s.target)
	s.running = false
}

// ID returns the tracked message id, or "".
func (s *Scheduler) ID() string { return s.id }

// Visible returns the revealed prefix of the target.
func (s *Scheduler) Visible() string { return string(s.target[:s.shown]) }

// Running reports whether ticks are still being issued.
func (s *Scheduler) Running() bool { return s.running }

// Done reports whether the full target is visible.
func (s *Scheduler) Done() bool { return s.shown == len(s.target) }

// Generation returns the current generation counter.
func (s *Scheduler) Generation() uint64 { return s.gen }

// VisibleFor returns what to render for msg: the revealed prefix when msg is
// the tracked target, the full text otherwise.
func (s *Scheduler) VisibleFor(msg *model.Message) string {
	if msg != nil && msg.ID != "" && msg.ID == s.id {
		return s.Visible()
	}
	if msg == nil {
		return ""
	}
	return msg.Text
}

func (s *Scheduler) tick() tea.Cmd {
	gen := s.gen
	return tea.Tick(s.interval, func(t time.Time) tea.Msg {
		return TickMsg{Gen: gen, Time: t}
	})
}
