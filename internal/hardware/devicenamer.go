package hardware

import "fmt"

// deviceAlphabet spans the full /dev/xvd{a..z} slot range EC2 exposes.
const deviceAlphabet = "abcdefghijklmnopqrstuvwxyz"

// NextDeviceName picks the first /dev/xvd? slot not present in the used set.
// Callers must pass a freshly reloaded block-device mapping; the pick is
// deterministic (lowest free letter) so repeated attaches walk the alphabet.
func NextDeviceName(used []string) (string, error) {
	inUse := make(map[string]bool, len(used))
	for _, name := range used {
		inUse[name] = true
	}

	for _, letter := range deviceAlphabet {
		candidate := fmt.Sprintf("/dev/xvd%c", letter)
		if !inUse[candidate] {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("all %d device slots in use", len(deviceAlphabet))
}
