package maze

import "github.com/zyedidia/generic/mapset"

// neighbors4 lists the orthogonal moves used by every flood fill.
var neighbors4 = [4]Position{{0, 1}, {1, 0}, {0, -1}, {-1, 0}}

// IsReachable reports whether end can be reached from start by walking
// over Floor cells. Either endpoint being a Wall (or outside the grid)
// yields false. The grid is never modified.
func IsReachable(g *Grid, start, end Position) bool {
	if !g.IsFloor(start) || !g.IsFloor(end) {
		return false
	}
	if start == end {
		return true
	}

	visited := mapset.New[Position]()
	visited.Put(start)
	queue := []Position{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, d := range neighbors4 {
			next := cur.Add(d.X, d.Y)
			if next == end {
				return true
			}
			if !g.IsFloor(next) || visited.Has(next) {
				continue
			}
			visited.Put(next)
			queue = append(queue, next)
		}
	}
	return false
}

// Connectivity returns the fraction of Floor cells reachable from start.
// A grid whose only Floor cell is start is fully connected.
func Connectivity(g *Grid, start Position) float64 {
	total := g.FloorCount()
	if total == 0 {
		return 0
	}
	return float64(Reachable(g, start).Size()) / float64(total)
}

// Reachable returns the set of Floor cells connected to start through
// 4-directional moves. The set is empty when start is not a Floor cell.
func Reachable(g *Grid, start Position) mapset.Set[Position] {
	visited := mapset.New[Position]()
	if !g.IsFloor(start) {
		return visited
	}

	visited.Put(start)
	queue := []Position{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, d := range neighbors4 {
			next := cur.Add(d.X, d.Y)
			if !g.IsFloor(next) || visited.Has(next) {
				continue
			}
			visited.Put(next)
			queue = append(queue, next)
		}
	}
	return visited
}

// reachesAll floods from start and stops as soon as every target has been
// seen. An empty target list is trivially reached.
func reachesAll(g *Grid, start Position, targets []Position) bool {
	left := mapset.New[Position]()
	for _, t := range targets {
		if t != start {
			left.Put(t)
		}
	}
	if left.Size() == 0 {
		return true
	}
	if !g.IsFloor(start) {
		return false
	}

	visited := mapset.New[Position]()
	visited.Put(start)
	queue := []Position{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, d := range neighbors4 {
			next := cur.Add(d.X, d.Y)
			if !g.IsFloor(next) || visited.Has(next) {
				continue
			}
			visited.Put(next)
			if left.Has(next) {
				left.Remove(next)
				if left.Size() == 0 {
					return true
				}
			}
			queue = append(queue, next)
		}
	}
	return false
}

// bfsTree returns the BFS parent of every Floor cell reachable from start.
// start itself has no entry.
func bfsTree(g *Grid, start Position) map[Position]Position {
	parent := make(map[Position]Position)
	if !g.IsFloor(start) {
		return parent
	}
	visited := mapset.New[Position]()
	visited.Put(start)
	queue := []Position{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, d := range neighbors4 {
			next := cur.Add(d.X, d.Y)
			if !g.IsFloor(next) || visited.Has(next) {
				continue
			}
			visited.Put(next)
			parent[next] = cur
			queue = append(queue, next)
		}
	}
	return parent
}
