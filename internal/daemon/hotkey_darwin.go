// SPDX-License-Identifier: MPL-2.0

//go:build darwin

package daemon

/*
#cgo LDFLAGS: -framework Carbon
#include <Carbon/Carbon.h>

extern void goHotkeyPressed(int32_t hotkeyID);

static OSStatus cwmHotkeyHandler(EventHandlerCallRef nextHandler, EventRef event, void *userData) {
	EventHotKeyID hkID;
	GetEventParameter(event, kEventParamDirectObject, typeEventHotKeyID, NULL, sizeof(hkID), NULL, &hkID);
	goHotkeyPressed((int32_t)hkID.id);
	return noErr;
}

static EventHandlerUPP cwmHandlerUPP = NULL;

static void cwmInstallHandler(void) {
	if (cwmHandlerUPP != NULL) {
		return;
	}
	cwmHandlerUPP = NewEventHandlerUPP(cwmHotkeyHandler);
	EventTypeSpec spec = {kEventClassKeyboard, kEventHotKeyPressed};
	InstallApplicationEventHandler(cwmHandlerUPP, 1, &spec, NULL, NULL);
}

static EventHotKeyRef cwmRegister(uint32_t mods, uint32_t keycode, int32_t id, OSStatus *status) {
	EventHotKeyRef ref;
	EventHotKeyID hkID;
	hkID.signature = 'cwmH';
	hkID.id = (uint32_t)id;
	*status = RegisterEventHotKey(keycode, mods, hkID, GetApplicationEventTarget(), 0, &ref);
	return ref;
}
*/
import "C"

import (
	"fmt"
	"runtime"
	"sync"
)

// carbonModifier maps this package's modifier bitmask to Carbon's
// cmdKey/shiftKey/optionKey/controlKey constants, which don't share bit
// positions with modifier.
func carbonModifier(m modifier) C.uint32_t {
	var out C.uint32_t
	if m&modCmd != 0 {
		out |= C.cmdKey
	}
	if m&modShift != 0 {
		out |= C.shiftKey
	}
	if m&modOption != 0 {
		out |= C.optionKey
	}
	if m&modControl != 0 {
		out |= C.controlKey
	}
	return out
}

// carbonRegistry is the process-wide table mapping a synthetic int32
// hotkey id (Carbon only carries integers across the cgo boundary) back
// to the name the daemon registered it under. Carbon hotkey registration
// is inherently process-global, so one registry per process is correct
// regardless of how many daemon instances exist in-process (there is
// only ever one).
var carbonRegistry = struct {
	mu     sync.Mutex
	names  map[int32]string
	events chan hotkeyEvent
}{names: make(map[int32]string)}

//export goHotkeyPressed
func goHotkeyPressed(id int32) {
	carbonRegistry.mu.Lock()
	name, ok := carbonRegistry.names[id]
	ch := carbonRegistry.events
	carbonRegistry.mu.Unlock()
	if !ok || ch == nil {
		return
	}
	select {
	case ch <- hotkeyEvent{ID: name}:
	default:
	}
}

// carbonRegistrar is the darwin hotkeyRegistrar, backed by Carbon's
// RegisterEventHotKey. This is the one place cwm uses cgo: global
// system-wide hotkey capture has no AppleScript/System Events
// equivalent, unlike every other accessibility operation the darwin
// backend drives over osascript.
type carbonRegistrar struct {
	mu   sync.Mutex
	refs []C.EventHotKeyRef
	next int32
}

func newHotkeyRegistrar() hotkeyRegistrar {
	return &carbonRegistrar{}
}

func (r *carbonRegistrar) Register(id string, combo keyCombo) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.next++
	carbonRegistry.mu.Lock()
	carbonRegistry.names[r.next] = id
	carbonRegistry.mu.Unlock()

	var status C.OSStatus
	ref := C.cwmRegister(carbonModifier(combo.Mods), C.uint32_t(combo.Keycode), C.int32_t(r.next), &status)
	if status != C.noErr {
		return fmt.Errorf("hotkey: registering %q failed (already bound?): status %d", id, int(status))
	}
	r.refs = append(r.refs, ref)
	return nil
}

func (r *carbonRegistrar) Start() (<-chan hotkeyEvent, error) {
	ch := make(chan hotkeyEvent, 8)
	carbonRegistry.mu.Lock()
	carbonRegistry.events = ch
	carbonRegistry.mu.Unlock()

	C.cwmInstallHandler()

	// RunApplicationEventLoop blocks forever servicing the Carbon event
	// queue that delivers our hotkey callbacks; it must run on a
	// dedicated, never-unlocked OS thread.
	go func() {
		runtime.LockOSThread()
		C.RunApplicationEventLoop()
	}()

	return ch, nil
}

func (r *carbonRegistrar) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ref := range r.refs {
		C.UnregisterEventHotKey(ref)
	}
	r.refs = nil
	C.QuitApplicationEventLoop()
	return nil
}
