package systems

// SystemInfo describes a simulation system for UI display.
type SystemInfo struct {
	ID          string // Internal identifier (used for perf tracking)
	Name        string // Display name
	Description string // What this system does
	Category    string // Grouping (e.g., "core", "visual")
}

// SystemRegistry holds metadata about all systems.
// This centralizes system naming so the UI and perf tracker stay in sync.
type SystemRegistry struct {
	systems []SystemInfo
	byID    map[string]SystemInfo
}

// NewSystemRegistry creates a registry with all known systems.
func NewSystemRegistry() *SystemRegistry {
	reg := &SystemRegistry{
		byID: make(map[string]SystemInfo),
	}
	reg.registerDefaults()
	return reg
}

// registerDefaults adds all known systems in tick order.
// Update this when adding new systems.
func (r *SystemRegistry) registerDefaults() {
	r.Register(SystemInfo{ID: "input", Name: "Input", Description: "Reads movement, look and fire", Category: "core"})
	r.Register(SystemInfo{ID: "placement", Name: "Placement", Description: "Casts portal shots onto walls", Category: "portal"})
	r.Register(SystemInfo{ID: "physics", Name: "Physics", Description: "Integrates bodies, floor and wall contact", Category: "physics"})
	r.Register(SystemInfo{ID: "triggers", Name: "Triggers", Description: "Detects portal trigger enter/exit", Category: "physics"})
	r.Register(SystemInfo{ID: "crossing", Name: "Crossing", Description: "Teleports bodies between portals", Category: "portal"})
	r.Register(SystemInfo{ID: "scheduler", Name: "Scheduler", Description: "Fires crossing cooldowns", Category: "portal"})
	r.Register(SystemInfo{ID: "viewSync", Name: "View Sync", Description: "Moves the portal cameras", Category: "portal"})
	r.Register(SystemInfo{ID: "telemetry", Name: "Telemetry", Description: "Records crossings and stats", Category: "internal"})
}

// Register adds a system to the registry.
func (r *SystemRegistry) Register(info SystemInfo) {
	r.systems = append(r.systems, info)
	r.byID[info.ID] = info
}

// Get returns system info by ID.
func (r *SystemRegistry) Get(id string) (SystemInfo, bool) {
	info, ok := r.byID[id]
	return info, ok
}

// GetName returns the display name for a system ID.
// Falls back to the ID itself if not found.
func (r *SystemRegistry) GetName(id string) string {
	if info, ok := r.byID[id]; ok {
		return info.Name
	}
	return id
}

// All returns all registered systems.
func (r *SystemRegistry) All() []SystemInfo {
	return r.systems
}

// IDs returns all system IDs in registration order.
func (r *SystemRegistry) IDs() []string {
	ids := make([]string, len(r.systems))
	for i, info := range r.systems {
		ids[i] = info.ID
	}
	return ids
}
