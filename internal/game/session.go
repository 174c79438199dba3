package game

import (
	"errors"
	"math"
	"strings"
	"sync"
)

var (
	ErrUnknownCampaign  = errors.New("unknown campaign")
	ErrEmptyPool        = errors.New("campaign has no questions")
	ErrInvalidPhase     = errors.New("invalid phase for action")
	ErrAnswerPending    = errors.New("answer already locked in")
	ErrNoAnswerPending  = errors.New("no answer locked in")
	ErrStaleGeneration  = errors.New("stale answer generation")
	ErrSlotEliminated   = errors.New("display slot eliminated")
	ErrSlotOutOfRange   = errors.New("display slot out of range")
	ErrLifelineDisabled = errors.New("lifeline not enabled")
	ErrLifelineUsed     = errors.New("lifeline already used")
	ErrNoCompanions     = errors.New("no companions configured")
	ErrNothingBanked    = errors.New("no prize banked yet")
	ErrNoLaterQuestion  = errors.New("no later question to switch to")
)

// LifelineAvailability tracks which lifelines remain. Flags only ever flip
// from true to false within a session.
type LifelineAvailability struct {
	Fifty    bool `json:"fifty"`
	Phone    bool `json:"phone"`
	Audience bool `json:"audience"`
	Host     bool `json:"host"`
	Switch   bool `json:"switch"`
	Double   bool `json:"double"`
}

// Session is one campaign attempt: the selected question run, its prize
// ladder, and the progression state machine. All mutation goes through its
// methods; rendering layers only ever see snapshots.
type Session struct {
	mu  sync.Mutex
	cfg *GameConfig
	rng RandomSource

	CampaignID string

	phase                Phase
	questions            []Question
	ladder               PrizeLadder
	currentQuestionIndex int
	shuffledAnswers      []int // display slot -> original answer index
	eliminatedSlots      []int
	available            LifelineAvailability

	doubleArmed      bool
	doubleStrikeUsed bool

	pendingAnswerSlot int // -1 when no answer is locked in
	generation        uint64

	wonPrize       string
	lifelineResult *LifelineResult
}

// NewSession stages a campaign attempt: selects and shuffles the question
// run, derives the prize ladder, and leaves the session in the start phase.
// A missing campaign or an empty pool yields an error so the caller can stay
// on the selection screen.
func NewSession(cfg *GameConfig, campaignID string, rng RandomSource) (*Session, error) {
	if rng == nil {
		rng = DefaultRNG()
	}
	campaign := cfg.CampaignByID(campaignID)
	if campaign == nil {
		return nil, ErrUnknownCampaign
	}
	questions := SelectQuestionsFromPool(campaign.Questions, rng)
	if len(questions) == 0 {
		return nil, ErrEmptyPool
	}
	s := &Session{
		cfg:               cfg,
		rng:               rng,
		CampaignID:        campaignID,
		phase:             PhaseStart,
		questions:         questions,
		ladder:            CalculatePrizeLadder(len(questions), cfg.Prizes),
		shuffledAnswers:   ShuffledAnswerMap(rng),
		pendingAnswerSlot: -1,
		wonPrize:          "0",
	}
	return s, nil
}

// Start commits the staged attempt and begins play. Lifeline availability
// comes from the game config; everything else resets.
func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseStart {
		return ErrInvalidPhase
	}
	s.phase = PhasePlaying
	s.currentQuestionIndex = 0
	s.eliminatedSlots = nil
	s.pendingAnswerSlot = -1
	s.doubleArmed = false
	s.doubleStrikeUsed = false
	s.wonPrize = "0"
	s.lifelineResult = nil
	s.available = LifelineAvailability{
		Fifty:    s.cfg.Lifelines.Fifty.Enabled,
		Phone:    s.cfg.Lifelines.Phone.Enabled,
		Audience: s.cfg.Lifelines.Audience.Enabled,
		Host:     s.cfg.Lifelines.Host.Enabled,
		Switch:   s.cfg.Lifelines.Switch.Enabled,
		Double:   s.cfg.Lifelines.Double.Enabled,
	}
	return nil
}

// NewGame discards the current attempt and re-rolls a fresh one in the start
// phase. Legal from any phase.
func (s *Session) NewGame() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.phase = PhaseStart
	s.questions = SelectQuestionsFromPool(s.cfg.CampaignByID(s.CampaignID).Questions, s.rng)
	s.ladder = CalculatePrizeLadder(len(s.questions), s.cfg.Prizes)
	s.currentQuestionIndex = 0
	s.shuffledAnswers = ShuffledAnswerMap(s.rng)
	s.eliminatedSlots = nil
	s.pendingAnswerSlot = -1
	s.doubleArmed = false
	s.doubleStrikeUsed = false
	s.wonPrize = "0"
	s.lifelineResult = nil
}

// SelectAnswer locks in a display slot. The outcome stays uncommitted until
// ResolveAnswer runs after the reveal delay; the returned generation lets a
// scheduled resolution detect that it has gone stale.
func (s *Session) SelectAnswer(displaySlot int) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhasePlaying {
		return 0, ErrInvalidPhase
	}
	if s.pendingAnswerSlot != -1 {
		return 0, ErrAnswerPending
	}
	if displaySlot < 0 || displaySlot > 3 {
		return 0, ErrSlotOutOfRange
	}
	for _, slot := range s.eliminatedSlots {
		if slot == displaySlot {
			return 0, ErrSlotEliminated
		}
	}
	s.pendingAnswerSlot = displaySlot
	s.lifelineResult = nil
	s.generation++
	return s.generation, nil
}

// ResolveAnswer commits the locked-in answer. A stale generation (the session
// moved on, e.g. via NewGame) is a silent no-op reported as OutcomeIgnored.
func (s *Session) ResolveAnswer(generation uint64) (AnswerOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhasePlaying {
		return OutcomeIgnored, ErrInvalidPhase
	}
	if s.pendingAnswerSlot == -1 {
		return OutcomeIgnored, ErrNoAnswerPending
	}
	if generation != s.generation {
		return OutcomeIgnored, ErrStaleGeneration
	}

	slot := s.pendingAnswerSlot
	question := s.questions[s.currentQuestionIndex]
	originalIndex := s.shuffledAnswers[slot]

	if originalIndex != question.Correct {
		if s.doubleArmed && !s.doubleStrikeUsed {
			s.doubleStrikeUsed = true
			s.pendingAnswerSlot = -1
			if s.cfg.Lifelines.Double.RevealsStrike() {
				s.eliminatedSlots = append(s.eliminatedSlots, slot)
			}
			s.lifelineResult = &LifelineResult{Type: "double", Stage: "strike"}
			return OutcomeRetry, nil
		}
		s.phase = PhaseLost
		s.wonPrize = GuaranteedPrize(s.currentQuestionIndex, s.ladder)
		s.pendingAnswerSlot = -1
		return OutcomeLost, nil
	}

	if s.currentQuestionIndex == len(s.questions)-1 {
		s.phase = PhaseWon
		s.wonPrize = s.ladder.Values[s.currentQuestionIndex]
		s.pendingAnswerSlot = -1
		return OutcomeWon, nil
	}

	s.currentQuestionIndex++
	s.eliminatedSlots = nil
	s.shuffledAnswers = ShuffledAnswerMap(s.rng)
	s.pendingAnswerSlot = -1
	s.doubleArmed = false
	s.doubleStrikeUsed = false
	return OutcomeCorrect, nil
}

// TakeMoney banks the previous rung and ends the attempt. Only legal once at
// least one question has been cleared and no answer is pending.
func (s *Session) TakeMoney() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhasePlaying {
		return ErrInvalidPhase
	}
	if s.pendingAnswerSlot != -1 {
		return ErrAnswerPending
	}
	if s.currentQuestionIndex == 0 {
		return ErrNothingBanked
	}
	s.phase = PhaseTookMoney
	s.wonPrize = s.ladder.Values[s.currentQuestionIndex-1]
	s.doubleArmed = false
	s.doubleStrikeUsed = false
	return nil
}

// ForceWin jumps straight to the won phase with the top prize. Debug helper.
func (s *Session) ForceWin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhasePlaying {
		return
	}
	s.phase = PhaseWon
	s.wonPrize = s.ladder.Values[len(s.ladder.Values)-1]
	s.pendingAnswerSlot = -1
	s.eliminatedSlots = nil
	s.lifelineResult = nil
}

// lifelineGuard enforces the shared preconditions: playing, no answer locked,
// the lifeline enabled and still unused.
func (s *Session) lifelineGuard(available *bool) error {
	if s.phase != PhasePlaying {
		return ErrInvalidPhase
	}
	if s.pendingAnswerSlot != -1 {
		return ErrAnswerPending
	}
	if available == nil {
		return ErrLifelineDisabled
	}
	if !*available {
		return ErrLifelineUsed
	}
	return nil
}

// UseFifty eliminates two wrong display slots for the current question.
func (s *Session) UseFifty() (*LifelineResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.lifelineGuard(&s.available.Fifty); err != nil {
		return nil, err
	}
	question := s.questions[s.currentQuestionIndex]
	eliminated := FiftyFiftyEliminations(question.Correct, s.shuffledAnswers, s.rng)
	s.available.Fifty = false
	s.eliminatedSlots = eliminated
	result := &LifelineResult{Type: "fifty", Eliminated: eliminated}
	s.lifelineResult = result
	return result, nil
}

// UsePhone calls a companion. The companion and the phrase template are
// uniform picks; the template's {answer} placeholder is filled with the
// suggested answer's text.
func (s *Session) UsePhone() (*LifelineResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.lifelineGuard(&s.available.Phone); err != nil {
		return nil, err
	}
	if len(s.cfg.Companions) == 0 {
		return nil, ErrNoCompanions
	}
	question := s.questions[s.currentQuestionIndex]
	confident, suggested := PhoneSuggestion(question.Correct, s.rng)

	companion := s.cfg.Companions[int(math.Floor(s.rng.Float64()*float64(len(s.cfg.Companions))))]
	phrases := s.cfg.Strings.CompanionPhrases.Uncertain
	if confident {
		phrases = s.cfg.Strings.CompanionPhrases.Confident
	}
	text := ""
	if len(phrases) > 0 {
		phrase := phrases[int(math.Floor(s.rng.Float64()*float64(len(phrases))))]
		text = strings.ReplaceAll(phrase, "{answer}", question.Answers[suggested])
	}

	s.available.Phone = false
	result := &LifelineResult{Type: "phone", CompanionName: companion.Name, Text: text}
	s.lifelineResult = result
	return result, nil
}

// UseAudience polls the audience over the surviving display slots.
func (s *Session) UseAudience() (*LifelineResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.lifelineGuard(&s.available.Audience); err != nil {
		return nil, err
	}
	question := s.questions[s.currentQuestionIndex]
	correctSlot := s.correctDisplaySlot(question)
	percentages := AudiencePercentages(correctSlot, s.eliminatedSlots, s.rng)

	s.available.Audience = false
	result := &LifelineResult{Type: "audience", Percentages: percentages[:]}
	s.lifelineResult = result
	return result, nil
}

// UseHost asks the host for a hint, expressed in display-slot space.
func (s *Session) UseHost() (*LifelineResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.lifelineGuard(&s.available.Host); err != nil {
		return nil, err
	}
	question := s.questions[s.currentQuestionIndex]
	correctSlot := s.correctDisplaySlot(question)
	suggested, confident := HostSuggestion(correctSlot, s.eliminatedSlots, s.rng)

	confidence := "uncertain"
	if confident {
		confidence = "confident"
	}
	s.available.Host = false
	result := &LifelineResult{
		Type:                 "host",
		SuggestedDisplaySlot: suggested,
		AnswerText:           question.Answers[s.shuffledAnswers[suggested]],
		Confidence:           confidence,
	}
	s.lifelineResult = result
	return result, nil
}

// UseSwitch swaps the current question with a random later one, reshuffles
// the answers and clears per-question state.
func (s *Session) UseSwitch() (*LifelineResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.lifelineGuard(&s.available.Switch); err != nil {
		return nil, err
	}
	swapWith, ok := SwitchQuestionIndex(s.currentQuestionIndex, len(s.questions), s.rng)
	if !ok {
		return nil, ErrNoLaterQuestion
	}

	i := s.currentQuestionIndex
	s.questions[i], s.questions[swapWith] = s.questions[swapWith], s.questions[i]
	s.shuffledAnswers = ShuffledAnswerMap(s.rng)
	s.eliminatedSlots = nil
	s.doubleArmed = false
	s.doubleStrikeUsed = false

	s.available.Switch = false
	result := &LifelineResult{Type: "switch"}
	s.lifelineResult = result
	return result, nil
}

// UseDouble arms double-dip: the next wrong answer becomes a strike instead
// of a loss.
func (s *Session) UseDouble() (*LifelineResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.lifelineGuard(&s.available.Double); err != nil {
		return nil, err
	}
	s.available.Double = false
	s.doubleArmed = true
	s.doubleStrikeUsed = false
	result := &LifelineResult{Type: "double", Stage: "armed"}
	s.lifelineResult = result
	return result, nil
}

func (s *Session) correctDisplaySlot(q Question) int {
	for slot, original := range s.shuffledAnswers {
		if original == q.Correct {
			return slot
		}
	}
	return 0
}

// Phase returns the current phase.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// SessionView is the render-ready snapshot broadcast to clients. Answers are
// already in display order; the correct index never leaves the server.
type SessionView struct {
	CampaignID           string               `json:"campaignId"`
	Phase                Phase                `json:"phase"`
	CurrentQuestion      int                  `json:"currentQuestion"`
	TotalQuestions       int                  `json:"totalQuestions"`
	QuestionText         string               `json:"questionText"`
	Answers              []string             `json:"answers"`
	EliminatedSlots      []int                `json:"eliminatedSlots"`
	PendingAnswerSlot    int                  `json:"pendingAnswerSlot"`
	PrizeLadder          PrizeLadder          `json:"prizeLadder"`
	CurrentPrize         string               `json:"currentPrize"`
	Difficulty           int                  `json:"difficulty"`
	LifelineAvailability LifelineAvailability `json:"lifelines"`
	LifelineResult       *LifelineResult      `json:"lifelineResult,omitempty"`
	DoubleDipArmed       bool                 `json:"doubleDipArmed"`
	WonPrize             string               `json:"wonPrize"`
}

// Snapshot renders the session for clients.
func (s *Session) Snapshot() SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()

	view := SessionView{
		CampaignID:           s.CampaignID,
		Phase:                s.phase,
		CurrentQuestion:      s.currentQuestionIndex,
		TotalQuestions:       len(s.questions),
		EliminatedSlots:      append([]int(nil), s.eliminatedSlots...),
		PendingAnswerSlot:    s.pendingAnswerSlot,
		PrizeLadder:          s.ladder,
		Difficulty:           QuestionDifficulty(s.currentQuestionIndex, len(s.questions)),
		LifelineAvailability: s.available,
		LifelineResult:       s.lifelineResult,
		DoubleDipArmed:       s.doubleArmed && !s.doubleStrikeUsed,
		WonPrize:             s.wonPrize,
	}
	if s.currentQuestionIndex < len(s.questions) {
		q := s.questions[s.currentQuestionIndex]
		view.QuestionText = q.Text
		answers := make([]string, 4)
		for slot, original := range s.shuffledAnswers {
			answers[slot] = q.Answers[original]
		}
		view.Answers = answers
		view.CurrentPrize = s.ladder.Values[s.currentQuestionIndex]
	}
	return view
}
