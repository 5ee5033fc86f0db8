// Package westworld contains two sample agents driven by stackfsm.
//
// Miner Bob digs for gold, banks it, drinks at the saloon and sleeps it off,
// changing modes with Switch transitions. Elsa, his partner, does housework
// and is interrupted now and then by a trip to the bathroom, a Push followed
// by a Pop back to the chores.
//
// Thresholds are plain configuration carried by each agent, so several
// agents with different settings can run side by side.
package westworld
