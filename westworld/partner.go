package westworld

import (
	"log/slog"
	"math/rand/v2"

	"github.com/enetx/stackfsm"
)

// PartnerConfig holds the odds that drive a partner's decisions.
type PartnerConfig struct {
	// BathroomChance is the probability, per tick of housework, of a bathroom break.
	BathroomChance float64 `yaml:"bathroom_chance" env:"BATHROOM_CHANCE"`
}

// DefaultPartnerConfig returns the classic odds.
func DefaultPartnerConfig() PartnerConfig {
	return PartnerConfig{BathroomChance: 0.1}
}

// Chore is a piece of housework.
type Chore int

const (
	Mopping Chore = iota
	Washing
	BedMaking
)

func (c Chore) String() string {
	switch c {
	case Mopping:
		return "Moppin' the floor"
	case Washing:
		return "Washin' the dishes"
	case BedMaking:
		return "Makin' the bed"
	default:
		return "Starin' at the wall"
	}
}

// Partner is the context of a partner's state machine.
type Partner struct {
	Name      string
	Chores    int
	Breaks    int
	LastChore Chore

	cfg PartnerConfig
	rng *rand.Rand
	log *slog.Logger
}

// NewPartner returns a partner whose decisions are drawn from rng.
func NewPartner(name string, cfg PartnerConfig, rng *rand.Rand, logger *slog.Logger) *Partner {
	return &Partner{
		Name: name,
		cfg:  cfg,
		rng:  rng,
		log:  logger.With(slog.String("agent", name)),
	}
}

func (p *Partner) say(msg string) { p.log.Info(msg) }

// PartnerState is the state value of a partner's machine.
type PartnerState int

const (
	DoHouseWork PartnerState = iota
	VisitBathroom
)

func (s PartnerState) String() string {
	switch s {
	case DoHouseWork:
		return "DoHouseWork"
	case VisitBathroom:
		return "VisitBathroom"
	default:
		return "unknown"
	}
}

// PartnerHandler drives a partner.
type PartnerHandler struct {
	stackfsm.Base[PartnerState, Partner]
}

var _ stackfsm.Handler[PartnerState, Partner] = PartnerHandler{}

func (PartnerHandler) OnStart(s PartnerState, p *Partner) {
	if s == VisitBathroom {
		p.Breaks++
		p.say("Walkin' to the can")
	}
}

func (h PartnerHandler) OnResume(s PartnerState, p *Partner) {
	if s == VisitBathroom {
		h.OnStart(s, p)
	}
}

func (PartnerHandler) OnStop(s PartnerState, p *Partner) {
	if s == VisitBathroom {
		p.say("Leavin' the Jon")
	}
}

func (PartnerHandler) Update(s PartnerState, p *Partner) stackfsm.Transition[PartnerState] {
	switch s {
	case DoHouseWork:
		if p.rng.Float64() < p.cfg.BathroomChance {
			return stackfsm.PushState(VisitBathroom)
		}

		p.LastChore = Chore(p.rng.IntN(3))
		p.Chores++
		p.say(p.LastChore.String())

		return stackfsm.Stay[PartnerState]()
	case VisitBathroom:
		p.say("Ahhhhhh! Sweet relief")
		return stackfsm.PopState[PartnerState]()
	default:
		panic("westworld: unknown partner state " + s.String())
	}
}
