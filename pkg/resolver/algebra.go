// Copyright the Insign authors.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package resolver

import (
	"sort"

	"github.com/bits-and-blooms/bitset"

	"github.com/Schem-at/Insign/pkg/source"
)

// applyOp computes the box decomposition of one binary region combinator.
// Union is a plain, deduplicated concatenation: any valid decomposition of
// the union voxel set is acceptable and overlapping input boxes are already
// a valid one. Difference, intersection, and symmetric difference need an
// actual voxel-level computation, done by compressing coordinates onto an
// integer grid, evaluating the boolean per grid cell, and greedily merging
// adjacent filled cells along x, then y, then z.
func applyOp(op byte, left, right []source.Box) []source.Box {
	switch op {
	case '+':
		return source.SortBoxes(append(append([]source.Box{}, left...), right...))
	case '-':
		return voxelOp(left, right, func(a, b bool) bool { return a && !b })
	case '&':
		return voxelOp(left, right, func(a, b bool) bool { return a && b })
	case '^':
		return voxelOp(left, right, func(a, b bool) bool { return a != b })
	default:
		panic("resolver: unknown region operator")
	}
}

// voxelOp computes the set of boxes satisfying combine(inLeft, inRight) per
// unit cell, via coordinate compression.
func voxelOp(left, right []source.Box, combine func(a, b bool) bool) []source.Box {
	xs := compressAxis(left, right, func(p source.Position) int32 { return p.X })
	ys := compressAxis(left, right, func(p source.Position) int32 { return p.Y })
	zs := compressAxis(left, right, func(p source.Position) int32 { return p.Z })

	nx, ny, nz := len(xs)-1, len(ys)-1, len(zs)-1
	if nx <= 0 || ny <= 0 || nz <= 0 {
		return nil
	}

	inLeft := markCells(left, xs, ys, zs)
	inRight := markCells(right, xs, ys, zs)

	filled := bitset.New(uint(nx * ny * nz))
	for i := uint(0); i < uint(nx*ny*nz); i++ {
		if combine(inLeft.Test(i), inRight.Test(i)) {
			filled.Set(i)
		}
	}

	cuboids := mergeCells(filled, nx, ny, nz)

	return source.SortBoxes(cuboidsToBoxes(cuboids, xs, ys, zs))
}

func compressAxis(left, right []source.Box, axis func(source.Position) int32) []int32 {
	seen := map[int32]bool{}

	add := func(boxes []source.Box) {
		for _, b := range boxes {
			seen[axis(b.Min)] = true
			seen[axis(b.Max)+1] = true
		}
	}

	add(left)
	add(right)

	out := make([]int32, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}

	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}

// lowerBound returns the index i such that xs[i] == v, assuming v is present.
func lowerBound(xs []int32, v int32) int {
	return sort.Search(len(xs), func(i int) bool { return xs[i] >= v })
}

func markCells(boxes []source.Box, xs, ys, zs []int32) *bitset.BitSet {
	nx, ny, nz := len(xs)-1, len(ys)-1, len(zs)-1
	out := bitset.New(uint(nx * ny * nz))

	for _, b := range boxes {
		x0, x1 := lowerBound(xs, b.Min.X), lowerBound(xs, b.Max.X+1)
		y0, y1 := lowerBound(ys, b.Min.Y), lowerBound(ys, b.Max.Y+1)
		z0, z1 := lowerBound(zs, b.Min.Z), lowerBound(zs, b.Max.Z+1)

		for xi := x0; xi < x1; xi++ {
			for yi := y0; yi < y1; yi++ {
				base := uint((xi*ny+yi)*nz + z0)
				for zi := z0; zi < z1; zi++ {
					out.Set(base + uint(zi-z0))
				}
			}
		}
	}

	return out
}

// cuboid is a filled region expressed in compressed-cell-index coordinates,
// each bound a half-open [lo, hi) range.
type cuboid struct {
	x0, x1, y0, y1, z0, z1 int
}

// mergeCells greedily merges the filled grid cells into cuboids: first runs
// of adjacent x-cells at a fixed (y, z), then adjacent y-runs sharing an x
// range at a fixed z, then adjacent z-runs sharing an (x, y) range. This is
// a deterministic decomposition, not necessarily voxel-minimal.
func mergeCells(filled *bitset.BitSet, nx, ny, nz int) []cuboid {
	// Pass 1: merge along x for each fixed (y, z).
	type xSpan struct{ x0, x1, y, z int }

	var xSpans []xSpan

	for yi := 0; yi < ny; yi++ {
		for zi := 0; zi < nz; zi++ {
			xi := 0
			for xi < nx {
				if !filled.Test(uint((xi*ny+yi)*nz + zi)) {
					xi++
					continue
				}

				start := xi
				for xi < nx && filled.Test(uint((xi*ny+yi)*nz+zi)) {
					xi++
				}

				xSpans = append(xSpans, xSpan{x0: start, x1: xi, y: yi, z: zi})
			}
		}
	}

	// Pass 2: merge along y, for spans sharing (x0, x1, z) at consecutive y.
	type xySpan struct{ x0, x1, y0, y1, z int }

	byXZ := map[[3]int][]xSpan{}

	for _, s := range xSpans {
		key := [3]int{s.x0, s.x1, s.z}
		byXZ[key] = append(byXZ[key], s)
	}

	var xySpans []xySpan

	for key, spans := range byXZ {
		sort.Slice(spans, func(i, j int) bool { return spans[i].y < spans[j].y })

		i := 0
		for i < len(spans) {
			y0 := spans[i].y
			y1 := y0 + 1
			j := i + 1

			for j < len(spans) && spans[j].y == y1 {
				y1++
				j++
			}

			xySpans = append(xySpans, xySpan{x0: key[0], x1: key[1], y0: y0, y1: y1, z: spans[i].z})
			i = j
		}
	}

	// Pass 3: merge along z, for spans sharing (x0, x1, y0, y1) at
	// consecutive z.
	byXY := map[[4]int][]xySpan{}

	for _, s := range xySpans {
		key := [4]int{s.x0, s.x1, s.y0, s.y1}
		byXY[key] = append(byXY[key], s)
	}

	var cuboids []cuboid

	for key, spans := range byXY {
		sort.Slice(spans, func(i, j int) bool { return spans[i].z < spans[j].z })

		i := 0
		for i < len(spans) {
			z0 := spans[i].z
			z1 := z0 + 1
			j := i + 1

			for j < len(spans) && spans[j].z == z1 {
				z1++
				j++
			}

			cuboids = append(cuboids, cuboid{x0: key[0], x1: key[1], y0: key[2], y1: key[3], z0: z0, z1: z1})
			i = j
		}
	}

	return cuboids
}

func cuboidsToBoxes(cuboids []cuboid, xs, ys, zs []int32) []source.Box {
	out := make([]source.Box, 0, len(cuboids))

	for _, c := range cuboids {
		out = append(out, source.Box{
			Min: source.Position{X: xs[c.x0], Y: ys[c.y0], Z: zs[c.z0]},
			Max: source.Position{X: xs[c.x1] - 1, Y: ys[c.y1] - 1, Z: zs[c.z1] - 1},
		})
	}

	return out
}
