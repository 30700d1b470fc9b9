package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeScreen struct{ finalized int }

func (f *fakeScreen) Fini() { f.finalized++ }

func TestHandleCrash_FinalizesRegisteredTerminal(t *testing.T) {
	screen := &fakeScreen{}
	RegisterCrashTerminal(screen)
	defer RegisterCrashTerminal(nil)

	code := -1
	orig := exitFunc
	exitFunc = func(c int) { code = c }
	defer func() { exitFunc = orig }()

	HandleCrash("boom")

	assert.Equal(t, 1, screen.finalized)
	assert.Equal(t, 1, code)
}

func TestHandleCrash_NilIsNoop(t *testing.T) {
	screen := &fakeScreen{}
	RegisterCrashTerminal(screen)
	defer RegisterCrashTerminal(nil)

	HandleCrash(nil)
	assert.Equal(t, 0, screen.finalized)
}
