package central

import (
	"sync"

	"github.com/clogwench/wincore/uid"
)

// table is central's connection table: O(1) insert/lookup behind one
// mutex, never held across I/O (spec.md §5).
type table struct {
	mu sync.Mutex

	apps      map[uid.ID]*peer
	wm        *peer
	debuggers map[*peer]struct{}

	// windowOwner tracks which app owns each window id central has
	// assigned, so that an app disconnect can forget that app's windows.
	// Draw commands are not checked against it here; the window manager
	// rejects draws to unknown or foreign windows.
	windowOwner map[uid.ID]uid.ID
}

func newTable() *table {
	return &table{
		apps:        make(map[uid.ID]*peer),
		debuggers:   make(map[*peer]struct{}),
		windowOwner: make(map[uid.ID]uid.ID),
	}
}

func (t *table) addApp(p *peer) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.apps[p.id] = p
}

func (t *table) removeApp(id uid.ID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.apps, id)
}

func (t *table) lookupApp(id uid.ID) (*peer, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	p, ok := t.apps[id]
	return p, ok
}

// setWM registers p as the sole window-manager peer. It reports false if a
// window manager is already registered, per spec.md rule 2 ("reject
// duplicates").
func (t *table) setWM(p *peer) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.wm != nil {
		return false
	}
	t.wm = p
	return true
}

func (t *table) clearWM(p *peer) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.wm == p {
		t.wm = nil
	}
}

func (t *table) getWM() *peer {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.wm
}

func (t *table) addDebugger(p *peer) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.debuggers[p] = struct{}{}
}

func (t *table) removeDebugger(p *peer) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.debuggers, p)
}

func (t *table) registerWindow(winID, ownerAppID uid.ID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.windowOwner[winID] = ownerAppID
}

func (t *table) windowsOwnedBy(appID uid.ID) []uid.ID {
	t.mu.Lock()
	defer t.mu.Unlock()
	var out []uid.ID
	for w, owner := range t.windowOwner {
		if owner == appID {
			out = append(out, w)
		}
	}
	return out
}

func (t *table) forgetWindow(winID uid.ID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.windowOwner, winID)
}

func (t *table) allDebuggers() []*peer {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]*peer, 0, len(t.debuggers))
	for p := range t.debuggers {
		out = append(out, p)
	}
	return out
}
