package filter

import "fmt"

// MaxConditionsPerGroup is the maximum number of conditions per filter group.
const MaxConditionsPerGroup = 32

// Expression is a structured filter with must/should/must_not boolean semantics.
// Must clauses narrow the result set, should clauses only boost scoring,
// must_not clauses exclude.
type Expression struct {
	must    []Condition
	should  []Condition
	mustNot []Condition
}

// NewExpression validates and creates a filter Expression.
func NewExpression(must, should, mustNot []Condition) (Expression, error) {
	if len(must) > MaxConditionsPerGroup {
		return Expression{}, fmt.Errorf("too many must conditions (max %d)", MaxConditionsPerGroup)
	}
	if len(should) > MaxConditionsPerGroup {
		return Expression{}, fmt.Errorf("too many should conditions (max %d)", MaxConditionsPerGroup)
	}
	if len(mustNot) > MaxConditionsPerGroup {
		return Expression{}, fmt.Errorf("too many must_not conditions (max %d)", MaxConditionsPerGroup)
	}
	return Expression{must: must, should: should, mustNot: mustNot}, nil
}

// Must returns the must conditions.
func (e Expression) Must() []Condition { return e.must }

// Should returns the should conditions.
func (e Expression) Should() []Condition { return e.should }

// MustNot returns the must-not conditions.
func (e Expression) MustNot() []Condition { return e.mustNot }

// IsEmpty reports whether the expression has no conditions.
func (e Expression) IsEmpty() bool {
	return len(e.must) == 0 && len(e.should) == 0 && len(e.mustNot) == 0
}

// GeoRadius is a geo-distance constraint around a center point.
type GeoRadius struct {
	Lat      float64
	Lon      float64
	RadiusKm float64
}

// Condition is a single filter clause: a tag match (one or more values with
// OR semantics), a numeric range, or a geo radius.
type Condition struct {
	key       string
	matches   []string
	rangeExpr *Range
	geo       *GeoRadius
}

// NewMatch creates an exact tag match condition.
func NewMatch(key, match string) (Condition, error) {
	if key == "" {
		return Condition{}, fmt.Errorf("filter key is required")
	}
	if match == "" {
		return Condition{}, fmt.Errorf("match value is required for key %q", key)
	}
	return Condition{key: key, matches: []string{match}}, nil
}

// NewMatchAny creates a tag match condition that accepts any of the given values.
func NewMatchAny(key string, matches ...string) (Condition, error) {
	if key == "" {
		return Condition{}, fmt.Errorf("filter key is required")
	}
	if len(matches) == 0 {
		return Condition{}, fmt.Errorf("at least one match value is required for key %q", key)
	}
	for _, m := range matches {
		if m == "" {
			return Condition{}, fmt.Errorf("empty match value for key %q", key)
		}
	}
	return Condition{key: key, matches: matches}, nil
}

// NewRange creates a numeric range condition.
func NewRange(key string, r Range) (Condition, error) {
	if key == "" {
		return Condition{}, fmt.Errorf("filter key is required")
	}
	return Condition{key: key, rangeExpr: &r}, nil
}

// NewGeoRadius creates a geo radius condition.
func NewGeoRadius(key string, lat, lon, radiusKm float64) (Condition, error) {
	if key == "" {
		return Condition{}, fmt.Errorf("filter key is required")
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return Condition{}, fmt.Errorf("invalid coordinates for key %q", key)
	}
	if radiusKm <= 0 {
		return Condition{}, fmt.Errorf("radius must be positive for key %q", key)
	}
	return Condition{key: key, geo: &GeoRadius{Lat: lat, Lon: lon, RadiusKm: radiusKm}}, nil
}

// Key returns the field name.
func (c Condition) Key() string { return c.key }

// Matches returns the exact match values.
func (c Condition) Matches() []string { return c.matches }

// Range returns the numeric range expression.
func (c Condition) Range() *Range { return c.rangeExpr }

// Geo returns the geo radius expression.
func (c Condition) Geo() *GeoRadius { return c.geo }

// IsMatch reports whether this is a tag match condition.
func (c Condition) IsMatch() bool { return len(c.matches) > 0 }

// IsRange reports whether this is a range condition.
func (c Condition) IsRange() bool { return c.rangeExpr != nil }

// IsGeo reports whether this is a geo radius condition.
func (c Condition) IsGeo() bool { return c.geo != nil }

// Range is a numeric range with gt/gte/lt/lte boundaries.
type Range struct {
	gt  *float64
	gte *float64
	lt  *float64
	lte *float64
}

// NewRangeFilter validates and creates a Range.
// At least one boundary required. gt/gte and lt/lte are mutually exclusive.
func NewRangeFilter(gt, gte, lt, lte *float64) (Range, error) {
	if gt == nil && gte == nil && lt == nil && lte == nil {
		return Range{}, fmt.Errorf("at least one range boundary is required")
	}
	if gt != nil && gte != nil {
		return Range{}, fmt.Errorf("cannot specify both gt and gte")
	}
	if lt != nil && lte != nil {
		return Range{}, fmt.Errorf("cannot specify both lt and lte")
	}
	return Range{gt: gt, gte: gte, lt: lt, lte: lte}, nil
}

// Gte is shorthand for a [v, +inf] range.
func Gte(v float64) Range { return Range{gte: &v} }

// Lte is shorthand for a [-inf, v] range.
func Lte(v float64) Range { return Range{lte: &v} }

// Between is shorthand for a [lo, hi] inclusive range.
func Between(lo, hi float64) Range { return Range{gte: &lo, lte: &hi} }

// GT returns the lower exclusive bound.
func (r Range) GT() *float64 { return r.gt }

// GTE returns the lower inclusive bound.
func (r Range) GTE() *float64 { return r.gte }

// LT returns the upper exclusive bound.
func (r Range) LT() *float64 { return r.lt }

// LTE returns the upper inclusive bound.
func (r Range) LTE() *float64 { return r.lte }
