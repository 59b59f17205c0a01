package scene

import (
	"sort"

	"github.com/pkg/errors"
)

// SceneInfo represents a built-in scene with its metadata
type SceneInfo struct {
	ID          string // Unique identifier
	DisplayName string // UI display name
	Description string // Optional description
}

type sceneEntry struct {
	info  SceneInfo
	build func() *Scene
}

var builtInScenes = map[string]sceneEntry{
	"spheres": {
		info: SceneInfo{
			DisplayName: "Spheres",
			Description: "Glass shell around a matte sphere between two metal spheres, with depth of field",
		},
		build: NewSpheresScene,
	},
	"cornell": {
		info: SceneInfo{
			DisplayName: "Cornell Box",
			Description: "Cornell box built from scaled and rotated quad instances with an area light",
		},
		build: NewCornellScene,
	},
	"triangle": {
		info: SceneInfo{
			DisplayName: "Triangle",
			Description: "A single auto-indexed triangle seen through an orthographic camera",
		},
		build: NewTriangleScene,
	},
	"boxes": {
		info: SceneInfo{
			DisplayName: "Box Grid",
			Description: "Grid of rotated, non-uniformly scaled box instances sharing one indexed mesh",
		},
		build: NewBoxGridScene,
	},
	"normals": {
		info: SceneInfo{
			DisplayName: "Normals",
			Description: "Sphere and box shaded by surface normal",
		},
		build: NewNormalsScene,
	},
}

// ListScenes returns every built-in scene sorted by ID
func ListScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(builtInScenes))
	for id, entry := range builtInScenes {
		info := entry.info
		info.ID = id
		scenes = append(scenes, info)
	}
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].ID < scenes[j].ID
	})
	return scenes
}

// New builds the built-in scene with the given ID
func New(id string) (*Scene, error) {
	entry, ok := builtInScenes[id]
	if !ok {
		return nil, errors.Errorf("unknown scene %q", id)
	}
	return entry.build(), nil
}
