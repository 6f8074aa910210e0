// Package importance computes deterministic importance scores over a
// quest database's prerequisite graph.
package importance

import (
	"math"
	"sort"
	"strings"

	"questgraph/internal/qerr"
	"questgraph/internal/quest"
	"questgraph/internal/questdb"
	"questgraph/internal/questid"
)

type weightedEdge struct {
	to     questid.ID
	weight float64
}

// Compute builds the prerequisite graph of db, checks it is a DAG, and
// returns one importance score per quest. alpha must be in [0, 1].
func Compute(db *questdb.Database, alpha float64, useLog, normalize bool) (map[questid.ID]float64, error) {
	if alpha < 0 || alpha > 1 {
		return nil, qerr.AlphaOutOfRange(alpha)
	}

	adjacency := map[questid.ID][]questid.ID{}
	dependents := map[questid.ID][]weightedEdge{}

	ids := sortedIDs(db.Quests)
	for _, qid := range ids {
		q := db.Quests[qid]
		if isXOR(q) {
			continue
		}

		required := q.RequiredPrerequisites
		if len(required) == 0 {
			required = q.Prerequisites
		}
		optional := q.OptionalPrerequisites

		seen := map[uint64]bool{}
		dedupedRequired := dedupe(required, seen)
		dedupedOptional := dedupe(optional, seen)

		adjList := append(append([]questid.ID{}, dedupedRequired...), dedupedOptional...)
		adjacency[qid] = adjList

		for _, p := range dedupedRequired {
			dependents[p] = append(dependents[p], weightedEdge{to: qid, weight: 1.0})
		}
		if len(dedupedOptional) > 0 {
			w := 1.0 / float64(len(dedupedOptional))
			for _, p := range dedupedOptional {
				dependents[p] = append(dependents[p], weightedEdge{to: qid, weight: w})
			}
		}
	}

	if cycle := detectCycle(ids, adjacency); cycle != nil {
		return nil, qerr.CycleDetected(cycle)
	}

	base := map[questid.ID]float64{}
	for _, qid := range ids {
		raw := 0.0
		for _, e := range dependents[qid] {
			raw += e.weight
		}
		if useLog {
			base[qid] = math.Log1p(raw)
		} else {
			base[qid] = raw
		}
	}

	score := map[questid.ID]float64{}
	for _, qid := range ids {
		prop := 0.0
		for _, e := range dependents[qid] {
			prop += e.weight * base[e.to]
		}
		score[qid] = base[qid] + alpha*prop
	}

	if normalize {
		max := math.NaN()
		for _, qid := range ids {
			v := score[qid]
			if math.IsNaN(max) || v > max {
				max = v
			}
		}
		if !math.IsNaN(max) && max != 0 {
			divisor := max * (1 + 1e-9)
			for _, qid := range ids {
				score[qid] /= divisor
			}
		}
	}

	return score, nil
}

// OrderPrerequisites sorts q's prerequisites by score descending, breaking
// ties by ascending 64-bit id.
func OrderPrerequisites(q *quest.Quest, scores map[questid.ID]float64) []questid.ID {
	out := append([]questid.ID{}, q.Prerequisites...)
	sort.SliceStable(out, func(i, j int) bool {
		si, sj := scores[out[i]], scores[out[j]]
		if si != sj {
			return si > sj
		}
		return questid.Less(out[i], out[j])
	})
	return out
}

func isXOR(q *quest.Quest) bool {
	if q.Properties == nil {
		return false
	}
	return strings.EqualFold(q.Properties.QuestLogic, "XOR")
}

func dedupe(ids []questid.ID, seen map[uint64]bool) []questid.ID {
	out := make([]questid.ID, 0, len(ids))
	for _, id := range ids {
		if seen[id.AsU64()] {
			continue
		}
		seen[id.AsU64()] = true
		out = append(out, id)
	}
	return out
}

func sortedIDs(m map[questid.ID]*quest.Quest) []questid.ID {
	ids := make([]questid.ID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return questid.Less(ids[i], ids[j]) })
	return ids
}

type color int

const (
	white color = iota
	gray
	black
)

// detectCycle runs an iterative three-color DFS over adjacency, starting
// from every white node in ids order, and returns the first cycle found as
// a witness slice in visit order, or nil if the graph is a DAG.
//
// Recursion is avoided here (unlike a direct translation of a recursive
// visitor) because deeply nested prerequisite chains should not be bounded
// by the host goroutine's stack.
func detectCycle(ids []questid.ID, adjacency map[questid.ID][]questid.ID) []questid.ID {
	colors := make(map[questid.ID]color, len(ids))
	for _, id := range ids {
		colors[id] = white
	}

	type frame struct {
		node    questid.ID
		nextIdx int
	}

	for _, start := range ids {
		if colors[start] != white {
			continue
		}

		var stack []frame
		var path []questid.ID
		posInPath := map[uint64]int{}

		colors[start] = gray
		posInPath[start.AsU64()] = 0
		path = append(path, start)
		stack = append(stack, frame{node: start, nextIdx: 0})

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			neighbors := adjacency[top.node]
			if top.nextIdx >= len(neighbors) {
				colors[top.node] = black
				delete(posInPath, top.node.AsU64())
				path = path[:len(path)-1]
				stack = stack[:len(stack)-1]
				continue
			}
			next := neighbors[top.nextIdx]
			top.nextIdx++

			switch colors[next] {
			case white:
				colors[next] = gray
				posInPath[next.AsU64()] = len(path)
				path = append(path, next)
				stack = append(stack, frame{node: next})
			case gray:
				if idx, ok := posInPath[next.AsU64()]; ok {
					cycle := make([]questid.ID, len(path)-idx)
					copy(cycle, path[idx:])
					return cycle
				}
				return []questid.ID{next, top.node}
			case black:
				// already fully explored, no cycle through here
			}
		}
	}
	return nil
}
