// Package catalog is the compiled-in reference table of campus blocks, rooms
// and their fixed equipment manifests. It is read-only after process start;
// room codes without a specific entry fall back to the standard classroom
// manifest.
package catalog

import (
	"sort"
	"strings"
)

type Block struct {
	Code        string   `json:"code"`
	Name        string   `json:"name"`
	Floors      []string `json:"floors"`
	Description string   `json:"description"`
}

type Component struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Quantity int    `json:"quantity"`
}

type Room struct {
	Code       string      `json:"code"`
	Name       string      `json:"name"`
	Type       string      `json:"type"`
	Components []Component `json:"components"`
}

// Blocks returns all blocks sorted by code.
func Blocks() []Block {
	out := make([]Block, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// BlockByCode looks up a block by its code, case-insensitively.
func BlockByCode(code string) (Block, bool) {
	b, ok := blocks[strings.ToUpper(strings.TrimSpace(code))]
	return b, ok
}

// RoomsByBlock returns the specifically catalogued rooms whose code starts
// with the block code, sorted by room code.
func RoomsByBlock(blockCode string) []Room {
	prefix := strings.ToUpper(strings.TrimSpace(blockCode))
	var out []Room
	for code, r := range rooms {
		if strings.HasPrefix(code, prefix) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// RoomByCode returns the room entry for a code. Unknown codes get the
// default classroom manifest under the requested code.
func RoomByCode(code string) Room {
	code = strings.ToUpper(strings.TrimSpace(code))
	if r, ok := rooms[code]; ok {
		return r
	}
	return Room{
		Code:       code,
		Name:       "Classroom " + code,
		Type:       "classroom",
		Components: defaultClassroomComponents,
	}
}

// ComponentsByCategory groups a room's manifest by component category,
// preserving the manifest order within each category.
func ComponentsByCategory(code string) map[string][]Component {
	r := RoomByCode(code)
	grouped := make(map[string][]Component)
	for _, c := range r.Components {
		grouped[c.Category] = append(grouped[c.Category], c)
	}
	return grouped
}
