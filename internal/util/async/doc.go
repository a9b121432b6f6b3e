// Package async provides helpers for running independent provisioning tasks
// in parallel.
//
// [RunParallel] launches every task eagerly, waits for all of them to finish,
// and reports every failure. A single slow or failing task never cancels its
// siblings; the caller only learns the outcome once the whole batch is done.
package async
