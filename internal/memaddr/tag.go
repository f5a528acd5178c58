// Copyright 2020-2026 The memarena Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package memaddr

// Tag is the 4-byte ASCII handle tag that begins every scope-capable
// record. The primary dispatch mechanism in this module is the scope.Scope
// Go interface, not this tag; the tag is kept only as a defensive,
// byte-level invariant that raw-memory consumers (and the scope-move
// protocol's sanity checks) can rely on, per the original wire format.
type Tag [4]byte

// The three handle tags this module recognizes. Treat these as a wire
// format constant: any change to these bytes is a breaking change.
var (
	TagPool  = Tag{'P', 'O', 'L', 0}
	TagArena = Tag{'A', 'R', 'N', 0}
	TagFrame = Tag{'F', 'R', 'M', 0}
)

func (t Tag) String() string {
	return string(t[:3])
}
