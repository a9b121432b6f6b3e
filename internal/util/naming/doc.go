// Package naming provides consistent naming functions for cloud resources.
//
// Stack resources follow the pattern {workspace}-{type} (vpc, gateway,
// routetable, subnet, sg, key), nodes follow {workspace}-{role}-{index},
// and volumes follow {node}-volume-{5char}. The random suffix keeps volume
// names unique when a node grows disks over its lifetime.
package naming
