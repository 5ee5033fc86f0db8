package westworld

import (
	"log/slog"

	"github.com/enetx/stackfsm"
)

// MinerConfig holds the thresholds that drive a miner's decisions.
type MinerConfig struct {
	// ComfortLevel is the bank balance at which the miner goes home to rest.
	ComfortLevel int `yaml:"comfort_level" env:"COMFORT_LEVEL"`
	// MaxNuggets is how many nuggets fit in the miner's pockets.
	MaxNuggets int `yaml:"max_nuggets" env:"MAX_NUGGETS"`
	// ThirstLevel is the thirst above which the miner heads to the saloon.
	ThirstLevel int `yaml:"thirst_level" env:"THIRST_LEVEL"`
	// TirednessThreshold is the fatigue above which the miner keeps sleeping.
	TirednessThreshold int `yaml:"tiredness_threshold" env:"TIREDNESS_THRESHOLD"`
}

// DefaultMinerConfig returns the classic thresholds.
func DefaultMinerConfig() MinerConfig {
	return MinerConfig{
		ComfortLevel:       5,
		MaxNuggets:         3,
		ThirstLevel:        5,
		TirednessThreshold: 5,
	}
}

// Miner is the context of a miner's state machine.
type Miner struct {
	Name     string
	Location Location
	Gold     int
	Bank     int
	Thirst   int
	Fatigue  int

	cfg MinerConfig
	log *slog.Logger
}

// NewMiner returns a rested miner at home.
func NewMiner(name string, cfg MinerConfig, logger *slog.Logger) *Miner {
	return &Miner{
		Name:     name,
		Location: Shack,
		cfg:      cfg,
		log:      logger.With(slog.String("agent", name)),
	}
}

func (m *Miner) say(msg string) { m.log.Info(msg) }

func (m *Miner) moveTo(l Location, msg string) {
	if m.Location != l {
		m.say(msg)
		m.Location = l
	}
}

func (m *Miner) addGold(n int) { m.Gold = max(m.Gold+n, 0) }

// PocketsFull reports whether the miner carries as many nuggets as fit.
func (m *Miner) PocketsFull() bool { return m.Gold >= m.cfg.MaxNuggets }

// Thirsty reports whether the miner needs a drink.
func (m *Miner) Thirsty() bool { return m.Thirst > m.cfg.ThirstLevel }

// Fatigued reports whether the miner needs more sleep.
func (m *Miner) Fatigued() bool { return m.Fatigue > m.cfg.TirednessThreshold }

// Comfortable reports whether the miner has banked enough for now.
func (m *Miner) Comfortable() bool { return m.Bank >= m.cfg.ComfortLevel }

func (m *Miner) depositGold() {
	m.Bank += m.Gold
	m.Gold = 0
}

func (m *Miner) drinkWhiskey() {
	m.Bank -= 2
	m.Thirst = 0
}

// MinerState is the state value of a miner's machine.
type MinerState int

const (
	GoHomeAndSleepTilRested MinerState = iota
	EnterMineAndDigForNugget
	VisitBankAndDepositGold
	QuenchThirst
)

func (s MinerState) String() string {
	switch s {
	case GoHomeAndSleepTilRested:
		return "GoHomeAndSleepTilRested"
	case EnterMineAndDigForNugget:
		return "EnterMineAndDigForNugget"
	case VisitBankAndDepositGold:
		return "VisitBankAndDepositGold"
	case QuenchThirst:
		return "QuenchThirst"
	default:
		return "unknown"
	}
}

type minerBehavior = stackfsm.Handler[MinerState, Miner]

type (
	digForNugget struct {
		stackfsm.Base[MinerState, Miner]
	}
	depositGold struct {
		stackfsm.Base[MinerState, Miner]
	}
	sleepTilRested struct {
		stackfsm.Base[MinerState, Miner]
	}
	quenchThirst struct {
		stackfsm.Base[MinerState, Miner]
	}
)

func (digForNugget) OnStart(_ MinerState, m *Miner) {
	m.moveTo(Goldmine, "Walkin' to the goldmine")
}

func (b digForNugget) OnResume(s MinerState, m *Miner) { b.OnStart(s, m) }

func (digForNugget) Update(_ MinerState, m *Miner) stackfsm.Transition[MinerState] {
	m.Thirst++
	m.addGold(1)
	m.Fatigue++
	m.say("Pickin' up a nugget")

	switch {
	case m.PocketsFull():
		return stackfsm.SwitchState(VisitBankAndDepositGold)
	case m.Thirsty():
		return stackfsm.SwitchState(QuenchThirst)
	default:
		return stackfsm.Stay[MinerState]()
	}
}

func (digForNugget) OnStop(_ MinerState, m *Miner) {
	m.say("Ah'm leavin' the goldmine with mah pockets full o' sweet gold")
}

func (depositGold) OnStart(_ MinerState, m *Miner) {
	m.moveTo(Bank, "Goin' to the bank. Yes siree")
}

func (b depositGold) OnResume(s MinerState, m *Miner) { b.OnStart(s, m) }

func (depositGold) Update(_ MinerState, m *Miner) stackfsm.Transition[MinerState] {
	m.Thirst++
	m.depositGold()
	m.log.Info("Depositing gold", slog.Int("savings", m.Bank))

	if m.Comfortable() {
		m.say("WooHoo! Rich enough for now. Back home to mah li'lle lady")
		return stackfsm.SwitchState(GoHomeAndSleepTilRested)
	}

	return stackfsm.SwitchState(EnterMineAndDigForNugget)
}

func (depositGold) OnStop(_ MinerState, m *Miner) { m.say("Leavin' the bank") }

func (sleepTilRested) OnStart(_ MinerState, m *Miner) {
	m.moveTo(Shack, "Walkin' home")
}

func (sleepTilRested) Update(_ MinerState, m *Miner) stackfsm.Transition[MinerState] {
	m.Thirst++

	if !m.Fatigued() {
		m.say("What a God darn fantastic nap! Time to find more gold")
		return stackfsm.SwitchState(EnterMineAndDigForNugget)
	}

	m.Fatigue--
	m.say("ZZZZ...")

	return stackfsm.Stay[MinerState]()
}

func (sleepTilRested) OnStop(_ MinerState, m *Miner) { m.say("Leaving the house") }

func (quenchThirst) OnStart(_ MinerState, m *Miner) {
	m.moveTo(Saloon, "Boy, ah sure is thusty! Walking to the saloon")
}

func (quenchThirst) Update(_ MinerState, m *Miner) stackfsm.Transition[MinerState] {
	m.Thirst++

	if !m.Thirsty() {
		m.log.Error("in the saloon without a thirst", slog.Int("thirst", m.Thirst))
		return stackfsm.QuitMachine[MinerState]()
	}

	m.drinkWhiskey()
	m.say("That's mighty fine sippin liquer")

	return stackfsm.SwitchState(EnterMineAndDigForNugget)
}

func (quenchThirst) OnStop(_ MinerState, m *Miner) { m.say("Leaving the saloon, feelin' good") }

// MinerHandler drives a miner. It dispatches every callback to the behavior
// of the state value.
type MinerHandler struct{}

var _ stackfsm.Handler[MinerState, Miner] = MinerHandler{}

func (MinerHandler) behavior(s MinerState) minerBehavior {
	switch s {
	case GoHomeAndSleepTilRested:
		return sleepTilRested{}
	case EnterMineAndDigForNugget:
		return digForNugget{}
	case VisitBankAndDepositGold:
		return depositGold{}
	case QuenchThirst:
		return quenchThirst{}
	default:
		panic("westworld: unknown miner state " + s.String())
	}
}

func (h MinerHandler) OnStart(s MinerState, m *Miner) { h.behavior(s).OnStart(s, m) }
func (h MinerHandler) OnStop(s MinerState, m *Miner) { h.behavior(s).OnStop(s, m) }
func (h MinerHandler) OnPause(s MinerState, m *Miner) { h.behavior(s).OnPause(s, m) }
func (h MinerHandler) OnResume(s MinerState, m *Miner) { h.behavior(s).OnResume(s, m) }

func (h MinerHandler) Update(s MinerState, m *Miner) stackfsm.Transition[MinerState] {
	return h.behavior(s).Update(s, m)
}
