// Package hardware provisions and tears down ephemeral test environments.
//
// A [Hardware] owns one [NetworkStack] (the shared network prerequisites,
// created in strict dependency order) and a fleet of [Node]s (compute
// instances plus their block-storage volumes, created in parallel). Teardown
// runs in reverse dependency direction: nodes first, then the network stack,
// best-effort, with a skip mode that reports leftover resources instead of
// deleting them.
package hardware
