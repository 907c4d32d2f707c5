package game

import (
	"math"

	"github.com/dekarrin/gamecmd/internal/direction"
)

type point [2]int

type pathCache map[[2]point][]point

// Pathfinder finds routes across a Level. It retains already-completed
// lookups so that it becomes faster with use; the cache is thrown away
// whenever the level's terrain changes.
type Pathfinder struct {
	Level *Level

	dijkstraTable pathCache
	cachedAt      int
}

// Walkable returns whether the pathfinder will route through (x, y). Known
// traps are avoided.
func (pf *Pathfinder) Walkable(x, y int) bool {
	t := pf.Level.At(x, y)
	return pf.Level.InBounds(x, y) && t.Passable() && t.Kind != Trap
}

// Dijkstra uses Dijkstra's Algorithm to find the shortest path from one grid
// to another. Every step, diagonal or not, costs the same. The returned path
// starts with the start grid and ends with the end grid.
//
// Returns nil if either grid cannot be walked on or if the path is not
// possible.
func (pf *Pathfinder) Dijkstra(start, end point) []point {
	if pf.dijkstraTable == nil || pf.cachedAt != pf.Level.changes {
		pf.dijkstraTable = pathCache{}
		pf.cachedAt = pf.Level.changes
	}
	if solution, ok := pf.dijkstraTable[[2]point{start, end}]; ok {
		return copyPath(solution)
	}

	if !pf.Level.InBounds(start[0], start[1]) || !pf.Walkable(end[0], end[1]) {
		pf.dijkstraTable[[2]point{start, end}] = nil
		return nil
	}

	dist := map[point]uint{}
	prev := map[point]point{}
	searchSetQ := map[point]bool{}

	for y := 0; y < pf.Level.Height(); y++ {
		for x := 0; x < pf.Level.Width(); x++ {
			if pf.Walkable(x, y) {
				dist[point{x, y}] = math.MaxUint
				searchSetQ[point{x, y}] = true
			}
		}
	}
	// the start is always usable; the player may be standing on a trap
	searchSetQ[start] = true
	dist[start] = 0

	for len(searchSetQ) > 0 {
		var minDist uint = math.MaxUint
		var u point
		found := false
		for p := range searchSetQ {
			if d := dist[p]; !found || d < minDist {
				u, minDist, found = p, d, true
			}
		}

		// everything left is unreachable
		if minDist == math.MaxUint || u == end {
			break
		}
		delete(searchSetQ, u)

		for _, d := range direction.Compass() {
			dx, dy := d.Offset()
			v := point{u[0] + dx, u[1] + dy}
			if !searchSetQ[v] {
				continue
			}

			const costUToV = 1

			alt := dist[u] + costUToV
			if alt < dist[v] {
				dist[v] = alt
				prev[v] = u
			}
		}
	}

	var solution []point
	if _, reachable := prev[end]; reachable || start == end {
		for u := end; ; u = prev[u] {
			solution = append(solution, u)
			if u == start {
				break
			}
		}
		// walked backwards from the end
		for i, j := 0, len(solution)-1; i < j; i, j = i+1, j-1 {
			solution[i], solution[j] = solution[j], solution[i]
		}
	}

	pf.dijkstraTable[[2]point{start, end}] = copyPath(solution)
	return solution
}

func copyPath(path []point) []point {
	if path == nil {
		return nil
	}
	cp := make([]point, len(path))
	copy(cp, path)
	return cp
}

// findPath gives the grids from (x1, y1) to (x2, y2), both included.
func (s *State) findPath(x1, y1, x2, y2 int) []point {
	if s.paths == nil || s.paths.Level != s.Level {
		s.paths = &Pathfinder{Level: s.Level}
	}
	return s.paths.Dijkstra(point{x1, y1}, point{x2, y2})
}
