// Package jobs contains background jobs run alongside the local app host.
//
// # Poller
//
// Poller is the fallback consistency mechanism for collections changed
// outside the store, for example by cmd/migrate or by a medium that cannot
// announce writes from other handles. It is not the primary propagation path:
// store writes already notify subscribers directly.
//
//	p := jobs.NewPoller(s, time.Second, logger, store.FixedKeys()...)
//	p.Start()
//	defer p.Stop()
//
// Each tick reads every watched key, compares a BLAKE2b-256 fingerprint of the
// raw value with the last value seen, and notifies the hub only on divergence.
package jobs
