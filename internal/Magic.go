/*
Copyright 2011-2025 Frederic Langlet
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
you may obtain a copy of the License at

                http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package internal

import "fmt"

// File magics for the four persisted formats this module reads and writes.
// Kept as 4-byte sequences, not packed ints, because each embeds a version
// byte as \x01 (the original format's "BRE\x01" idiom).
var (
	MagicFMD = [4]byte{'F', 'M', 'D', 1}
	MagicFMR = [4]byte{'F', 'M', 'R', 1}
	MagicBRE = [4]byte{'B', 'R', 'E', 1}
	MagicSSA = [4]byte{'S', 'S', 'A', 1}
)

// CheckMagic compares the first 4 bytes of src against want and returns an
// error identifying both the expected and observed magic on mismatch. This
// is the one idiom kept from the teacher's magic-checking (originally used
// to classify arbitrary compressed-file types; here there are exactly four
// known formats, each checked once at the point it is opened).
func CheckMagic(src []byte, want [4]byte) error {
	if len(src) < 4 {
		return fmt.Errorf("truncated header: need 4 magic bytes, got %d", len(src))
	}

	var got [4]byte
	copy(got[:], src[:4])

	if got != want {
		return fmt.Errorf("bad magic: want %q, got %q", want, got)
	}

	return nil
}
