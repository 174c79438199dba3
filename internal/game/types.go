package game

// Phase is the top-level session state. Terminal phases only leave via a new
// game, which discards the session.
type Phase string

const (
	PhaseStart     Phase = "start"
	PhasePlaying   Phase = "playing"
	PhaseWon       Phase = "won"
	PhaseLost      Phase = "lost"
	PhaseTookMoney Phase = "took_money"
)

// Difficulty tiers in ascending order.
const (
	TierEasy   = "easy"
	TierMedium = "medium"
	TierHard   = "hard"
)

// DifficultyTiers lists the tiers in the order questions are laid out.
var DifficultyTiers = []string{TierEasy, TierMedium, TierHard}

// MaxQuestionsPerTier caps how many questions one tier contributes to a run.
const MaxQuestionsPerTier = 5

// AnswerRevealDurationMS is the model-time delay between locking an answer and
// committing its outcome, so the UI can play the reveal animation.
const AnswerRevealDurationMS = 2000

// Question is a single four-answer quiz question. Immutable once loaded.
type Question struct {
	Text    string   `json:"question" yaml:"question"`
	Answers []string `json:"answers" yaml:"answers"`
	Correct int      `json:"correct" yaml:"correct"`
}

// QuestionPool groups a campaign's questions by difficulty tier.
type QuestionPool struct {
	Easy   []Question `json:"easy" yaml:"easy"`
	Medium []Question `json:"medium" yaml:"medium"`
	Hard   []Question `json:"hard" yaml:"hard"`
}

// Tier returns the questions for a named tier.
func (p QuestionPool) Tier(name string) []Question {
	switch name {
	case TierEasy:
		return p.Easy
	case TierMedium:
		return p.Medium
	case TierHard:
		return p.Hard
	}
	return nil
}

// PrizeLadder is the monotonically increasing prize sequence for one run.
// Guaranteed holds the 0-based safety-net indices in ascending order.
type PrizeLadder struct {
	Values     []string `json:"values"`
	Guaranteed []int    `json:"guaranteed"`
}

// PrizesConfig drives ladder computation for a game.
type PrizesConfig struct {
	MaxPrize            int       `json:"maxPrize" yaml:"maxPrize"`
	GuaranteedFractions []float64 `json:"guaranteedFractions" yaml:"guaranteedFractions"`
	Currency            string    `json:"currency,omitempty" yaml:"currency,omitempty"`
}

// Companion is a phone-a-friend contact.
type Companion struct {
	Name  string `json:"name" yaml:"name"`
	Voice string `json:"voice,omitempty" yaml:"voice,omitempty"`
}

// LifelineConfig enables a single lifeline. RevealStrike applies to double-dip
// only: whether the first wrong guess is revealed (eliminated on screen) or
// kept hidden. A nil RevealStrike means reveal.
type LifelineConfig struct {
	Enabled      bool  `json:"enabled" yaml:"enabled"`
	RevealStrike *bool `json:"revealStrike,omitempty" yaml:"revealStrike,omitempty"`
}

// RevealsStrike reports whether a double-dip strike is shown on screen.
func (l LifelineConfig) RevealsStrike() bool {
	return l.RevealStrike == nil || *l.RevealStrike
}

// LifelinesConfig lists every lifeline a game may offer. Fifty, phone and
// audience are the classic trio; host, switch and double are optional extras.
type LifelinesConfig struct {
	Fifty    LifelineConfig `json:"fifty" yaml:"fifty"`
	Phone    LifelineConfig `json:"phone" yaml:"phone"`
	Audience LifelineConfig `json:"audience" yaml:"audience"`
	Host     LifelineConfig `json:"host" yaml:"host"`
	Switch   LifelineConfig `json:"switch" yaml:"switch"`
	Double   LifelineConfig `json:"double" yaml:"double"`
}

// CompanionPhrases hold the flavor-text template pools, keyed by confidence.
// Templates substitute {answer} with the suggested answer text.
type CompanionPhrases struct {
	Confident []string `json:"confident" yaml:"confident"`
	Uncertain []string `json:"uncertain" yaml:"uncertain"`
}

// GameStrings carries all user-facing text so games localize freely.
type GameStrings struct {
	IntroText        string           `json:"introText" yaml:"introText"`
	QuestionHeader   string           `json:"questionHeader" yaml:"questionHeader"`
	PrizesHeader     string           `json:"prizesHeader" yaml:"prizesHeader"`
	VictoryText      string           `json:"victoryText" yaml:"victoryText"`
	DefeatText       string           `json:"defeatText" yaml:"defeatText"`
	RetreatText      string           `json:"retreatText" yaml:"retreatText"`
	NewGameButton    string           `json:"newGameButton" yaml:"newGameButton"`
	CompanionPhrases CompanionPhrases `json:"companionPhrases" yaml:"companionPhrases"`
}

// Campaign is a themed sub-track within a game with its own question pool.
type Campaign struct {
	ID        string       `json:"id" yaml:"id"`
	Name      string       `json:"name" yaml:"name"`
	Questions QuestionPool `json:"questions" yaml:"questions"`
}

// GameConfig is the full configuration for one registered game. The session
// engine is a pure function of this plus a random source.
type GameConfig struct {
	ID         string          `json:"id" yaml:"id"`
	Title      string          `json:"title" yaml:"title"`
	Subtitle   string          `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	Emoji      string          `json:"emoji,omitempty" yaml:"emoji,omitempty"`
	Campaigns  []Campaign      `json:"campaigns" yaml:"campaigns"`
	Companions []Companion     `json:"companions" yaml:"companions"`
	Lifelines  LifelinesConfig `json:"lifelines" yaml:"lifelines"`
	Prizes     PrizesConfig    `json:"prizes" yaml:"prizes"`
	Strings    GameStrings     `json:"strings" yaml:"strings"`
}

// CampaignByID returns the campaign with the given id, or nil.
func (c *GameConfig) CampaignByID(id string) *Campaign {
	for i := range c.Campaigns {
		if c.Campaigns[i].ID == id {
			return &c.Campaigns[i]
		}
	}
	return nil
}

// LifelineResult is what a lifeline surfaces to the UI.
type LifelineResult struct {
	Type string `json:"type"` // fifty | phone | audience | host | switch | double

	// fifty
	Eliminated []int `json:"eliminated,omitempty"`

	// phone
	CompanionName string `json:"companionName,omitempty"`
	Text          string `json:"text,omitempty"`

	// audience
	Percentages []int `json:"percentages,omitempty"`

	// host
	SuggestedDisplaySlot int    `json:"suggestedDisplaySlot,omitempty"`
	AnswerText           string `json:"answerText,omitempty"`
	Confidence           string `json:"confidence,omitempty"` // confident | uncertain

	// double
	Stage string `json:"stage,omitempty"` // armed | strike
}

// AnswerOutcome is the committed result of a locked-in answer.
type AnswerOutcome string

const (
	OutcomeCorrect AnswerOutcome = "correct" // advance to next question
	OutcomeWon     AnswerOutcome = "won"     // last question answered correctly
	OutcomeLost    AnswerOutcome = "lost"
	OutcomeRetry   AnswerOutcome = "retry" // double-dip strike, guess again
	OutcomeIgnored AnswerOutcome = "ignored"
)
