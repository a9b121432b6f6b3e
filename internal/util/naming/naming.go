package naming

import (
	"fmt"
	"math/rand"
)

// Naming functions for workspace resources.
// Every provider-side resource carries a Name tag built here so abandoned
// environments can be identified and cleaned up by hand.

const suffixAlphabet = "abcdefghijklmnopqrstuvwxyz"

func VPC(workspace string) string {
	return fmt.Sprintf("%s-vpc", workspace)
}

func Gateway(workspace string) string {
	return fmt.Sprintf("%s-gateway", workspace)
}

func RouteTable(workspace string) string {
	return fmt.Sprintf("%s-routetable", workspace)
}

func Subnet(workspace string) string {
	return fmt.Sprintf("%s-subnet", workspace)
}

func SecurityGroup(workspace string) string {
	return fmt.Sprintf("%s-sg", workspace)
}

func KeyPair(workspace string) string {
	return fmt.Sprintf("%s-key", workspace)
}

// Node builds a fleet node name. The offset biases the index so a grown
// fleet never collides with names from an earlier boot.
func Node(workspace, role string, index int) string {
	return fmt.Sprintf("%s-%s-%d", workspace, role, index)
}

// Volume builds a volume name from its owning node plus a random suffix.
func Volume(nodeName string) string {
	return fmt.Sprintf("%s-volume-%s", nodeName, RandomSuffix(5))
}

// RandomSuffix returns n random lowercase letters.
func RandomSuffix(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = suffixAlphabet[rand.Intn(len(suffixAlphabet))]
	}
	return string(b)
}
