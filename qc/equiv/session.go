package equiv

import (
	"sync/atomic"

	"github.com/kegliz/qtranslate/qc/circuit"
	"github.com/kegliz/qtranslate/qc/gate"
)

// The session library is a process-wide default snapshot, seeded once
// from the standard rule table. Mutators never touch a published
// snapshot: they copy, extend, and publish the copy atomically, so a
// translation run reads one consistent snapshot for its whole life.

var session atomic.Pointer[Library]

// Rule is one row of a static seeding table: a gate instance carrying
// formal parameters, and the template circuit equivalent to it.
type Rule struct {
	Gate     gate.Gate
	Template *circuit.Circuit
}

// InitializeBase performs the one-shot seeding of the session library
// from a static rule table. Every seeding attempt after the first,
// concurrent or not, fails with ErrAlreadyInitialized and leaves the
// published snapshot unchanged; use Publish to replace it.
func InitializeBase(rules []Rule) error {
	lib := NewLibrary()
	for _, r := range rules {
		if err := lib.Add(r.Gate, r.Template); err != nil {
			return err
		}
	}
	if !session.CompareAndSwap(nil, lib) {
		return ErrAlreadyInitialized
	}
	return nil
}

// Session returns the current session snapshot, seeding it from the
// standard rules on first use. The returned library must be treated as
// read-only; use Publish to install an extended copy.
func Session() *Library {
	if lib := session.Load(); lib != nil {
		return lib
	}
	// Lost the seeding race at worst: either way a snapshot exists now.
	_ = InitializeBase(StandardRules())
	return session.Load()
}

// Publish atomically installs lib as the new session snapshot.
// Translators already running keep the snapshot they started with.
func Publish(lib *Library) {
	session.Store(lib)
}
