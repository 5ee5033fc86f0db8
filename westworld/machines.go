package westworld

import "github.com/enetx/stackfsm"

type (
	// MinerMachine is the state machine of a miner.
	MinerMachine = stackfsm.Machine[MinerState, Miner]
	// PartnerMachine is the state machine of a partner.
	PartnerMachine = stackfsm.Machine[PartnerState, Partner]
)

// NewMinerMachine returns a running machine for m, seeded with
// GoHomeAndSleepTilRested. Observers see every callback of the miner handler.
func NewMinerMachine(m *Miner, observers ...stackfsm.Observer[MinerState]) *MinerMachine {
	h := stackfsm.Observe(stackfsm.Handler[MinerState, Miner](MinerHandler{}), observers...)
	return stackfsm.FromStack(h, stackfsm.NewStackWith(GoHomeAndSleepTilRested), m)
}

// NewPartnerMachine returns a running machine for p, seeded with DoHouseWork.
func NewPartnerMachine(p *Partner, observers ...stackfsm.Observer[PartnerState]) *PartnerMachine {
	h := stackfsm.Observe(stackfsm.Handler[PartnerState, Partner](PartnerHandler{}), observers...)
	return stackfsm.FromStack(h, stackfsm.NewStackWith(DoHouseWork), p)
}
