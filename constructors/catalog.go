package constructors

import (
	"github.com/mikenye/geogen/construction"
	"github.com/mikenye/geogen/types"
)

func single(k types.ObjectKind) construction.ParamSpec { return construction.Single(k) }

// Catalog holds the [construction.Construction] descriptor for every name in
// [Registry], so that a [construction.ConfigurationObject] can be validated
// (arg count, arg kinds, output kind) before its [Evaluator] ever runs. The
// eleven names drawn directly from spec §3 are listed first; the three
// supplemented ones (documented in SPEC_FULL.md §6) follow.
var Catalog = map[string]construction.Construction{
	"Midpoint": {
		Name:   "Midpoint",
		Params: []construction.ParamSpec{single(types.KindPoint), single(types.KindPoint)},
		Output: types.KindPoint,
	},
	"PerpendicularLineFromPoints": {
		Name:   "PerpendicularLineFromPoints",
		Params: []construction.ParamSpec{single(types.KindPoint), single(types.KindPoint), single(types.KindPoint)},
		Output: types.KindLine,
	},
	"ParallelLineFromPoints": {
		Name:   "ParallelLineFromPoints",
		Params: []construction.ParamSpec{single(types.KindPoint), single(types.KindPoint), single(types.KindPoint)},
		Output: types.KindLine,
	},
	"IntersectionOfLinesFromPoints": {
		Name: "IntersectionOfLinesFromPoints",
		Params: []construction.ParamSpec{
			single(types.KindPoint), single(types.KindPoint), single(types.KindPoint), single(types.KindPoint),
		},
		Output: types.KindPoint,
	},
	"IntersectionOfLineAndCircle": {
		Name:   "IntersectionOfLineAndCircle",
		Params: []construction.ParamSpec{single(types.KindLine), single(types.KindCircle)},
		Output: types.KindPoint,
	},
	"LineFromPoints": {
		Name:   "LineFromPoints",
		Params: []construction.ParamSpec{single(types.KindPoint), single(types.KindPoint)},
		Output: types.KindLine,
	},
	"Circumcircle": {
		Name:   "Circumcircle",
		Params: []construction.ParamSpec{single(types.KindPoint), single(types.KindPoint), single(types.KindPoint)},
		Output: types.KindCircle,
	},
	"Circumcenter": {
		Name:   "Circumcenter",
		Params: []construction.ParamSpec{single(types.KindPoint), single(types.KindPoint), single(types.KindPoint)},
		Output: types.KindPoint,
	},
	"PointReflection": {
		Name:   "PointReflection",
		Params: []construction.ParamSpec{single(types.KindPoint), single(types.KindPoint)},
		Output: types.KindPoint,
	},
	"InternalAngleBisector": {
		Name:   "InternalAngleBisector",
		Params: []construction.ParamSpec{single(types.KindPoint), single(types.KindPoint), single(types.KindPoint)},
		Output: types.KindLine,
	},
	"Orthocenter": {
		Name:   "Orthocenter",
		Params: []construction.ParamSpec{single(types.KindPoint), single(types.KindPoint), single(types.KindPoint)},
		Output: types.KindPoint,
	},

	// Supplemented (SPEC_FULL.md §6): common triangle centers and the
	// tangent-line construction, none introducing a new theorem type.
	"PerpendicularBisector": {
		Name:   "PerpendicularBisector",
		Params: []construction.ParamSpec{single(types.KindPoint), single(types.KindPoint)},
		Output: types.KindLine,
	},
	"Incenter": {
		Name:   "Incenter",
		Params: []construction.ParamSpec{single(types.KindPoint), single(types.KindPoint), single(types.KindPoint)},
		Output: types.KindPoint,
	},
	"TangentLineFromPoint": {
		Name:   "TangentLineFromPoint",
		Params: []construction.ParamSpec{single(types.KindPoint), single(types.KindCircle)},
		Output: types.KindLine,
	},
}
