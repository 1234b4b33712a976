// Package remote contains typed HTTP clients for the wallet's internal
// services. Every client authenticates with the shared internal key and
// runs its calls through the resilience executor, so retry, circuit
// breaking and fallbacks apply uniformly to all cross-service traffic.
package remote
