// Package fixture holds the observation sets the filter tests run against,
// together with a small immutable index-set type for expected results.
package fixture

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/nlstn/go-stafilter/internal/temporal"
)

// Observation is a SensorThings observation reduced to its time properties.
// A nil field is a property without a value.
type Observation struct {
	ID             int
	PhenomenonTime temporal.Operand
	ResultTime     temporal.Operand
	ValidTime      temporal.Operand
}

// Property resolves one of the three time properties by name.
func (o Observation) Property(name string) (temporal.Value, bool) {
	var v temporal.Operand
	switch name {
	case "phenomenonTime":
		v = o.PhenomenonTime
	case "resultTime":
		v = o.ResultTime
	case "validTime":
		v = o.ValidTime
	}
	if v == nil {
		return nil, false
	}
	return v, true
}

func (o Observation) String() string {
	return fmt.Sprintf("obs#%d{phenomenonTime=%v resultTime=%v validTime=%v}",
		o.ID, o.PhenomenonTime, o.ResultTime, o.ValidTime)
}

// At returns the instant h:m on 2016-01-01 UTC.
func At(h, m int) temporal.Instant {
	return temporal.NewInstant(time.Date(2016, time.January, 1, h, m, 0, 0, time.UTC))
}

// Span returns the interval between two instants; it panics when inverted.
func Span(start, end temporal.Instant) temporal.Interval {
	return temporal.MustInterval(start, end)
}

// Reference instants of the date-time fixture.
var (
	T600 = At(6, 0)
	T659 = At(6, 59)
	T700 = At(7, 0)
	T701 = At(7, 1)
	T759 = At(7, 59)
	T800 = At(8, 0)
	T801 = At(8, 1)
	T900 = At(9, 0)
)

// Reference intervals of the date-time fixture.
var (
	I600_659 = Span(T600, T659)
	I600_700 = Span(T600, T700)
	I600_701 = Span(T600, T701)
	I700_800 = Span(T700, T800)
	I701_759 = Span(T701, T759)
	I759_900 = Span(T759, T900)
	I800_900 = Span(T800, T900)
	I801_900 = Span(T801, T900)
	I659_801 = Span(T659, T801)
	I700_759 = Span(T700, T759)
	I700_801 = Span(T700, T801)
	I659_800 = Span(T659, T800)
	I701_800 = Span(T701, T800)
)

// DateTimeObservations returns the 21 observations used by the relation
// tables. Observations 0-7 carry an instant phenomenonTime and resultTime and
// no validTime. Observations 8-20 carry the same interval as phenomenonTime
// and validTime and no resultTime.
func DateTimeObservations() []Observation {
	instants := []temporal.Instant{T600, T659, T700, T701, T759, T800, T801, T900}
	intervals := []temporal.Interval{
		I600_659, I600_700, I600_701, I700_800, I701_759, I759_900, I800_900,
		I801_900, I659_801, I700_759, I700_801, I659_800, I701_800,
	}
	obs := make([]Observation, 0, len(instants)+len(intervals))
	for _, in := range instants {
		obs = append(obs, Observation{ID: len(obs), PhenomenonTime: in, ResultTime: in})
	}
	for _, iv := range intervals {
		obs = append(obs, Observation{ID: len(obs), PhenomenonTime: iv, ValidTime: iv})
	}
	return obs
}

// FilterObservations returns four observations on consecutive days starting
// 2016-01-01. Observation i has phenomenonTime day(i)T01:01:01Z and validTime
// spanning day(i)T01:01:01.000Z to day(i)T23:59:59.999Z.
func FilterObservations() []Observation {
	obs := make([]Observation, 4)
	for i := range obs {
		day := time.Date(2016, time.January, 1+i, 0, 0, 0, 0, time.UTC)
		start := temporal.NewInstant(day.Add(time.Hour + time.Minute + time.Second))
		end := temporal.NewInstant(day.Add(24*time.Hour - time.Millisecond))
		obs[i] = Observation{
			ID:             i,
			PhenomenonTime: start,
			ValidTime:      Span(start, end),
		}
	}
	return obs
}

// Set is an immutable, order-irrelevant set of fixture indices.
type Set struct {
	members map[int]struct{}
}

// Of builds a set from the given indices.
func Of(ids ...int) Set {
	s := Set{members: make(map[int]struct{}, len(ids))}
	for _, id := range ids {
		s.members[id] = struct{}{}
	}
	return s
}

// Contains reports membership.
func (s Set) Contains(id int) bool {
	_, ok := s.members[id]
	return ok
}

// Len returns the number of members.
func (s Set) Len() int { return len(s.members) }

// Sorted returns the members in ascending order.
func (s Set) Sorted() []int {
	out := make([]int, 0, len(s.members))
	for id := range s.members {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

// Equal reports whether both sets hold the same members.
func (s Set) Equal(o Set) bool {
	if s.Len() != o.Len() {
		return false
	}
	for id := range s.members {
		if !o.Contains(id) {
			return false
		}
	}
	return true
}

func (s Set) String() string {
	ids := s.Sorted()
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprint(id)
	}
	return "{" + strings.Join(parts, ",") + "}"
}

// Select returns the IDs of the observations for which match reports true.
// The first error aborts the selection.
func Select(obs []Observation, match func(Observation) (bool, error)) (Set, error) {
	var ids []int
	for _, o := range obs {
		ok, err := match(o)
		if err != nil {
			return Set{}, fmt.Errorf("observation %d: %w", o.ID, err)
		}
		if ok {
			ids = append(ids, o.ID)
		}
	}
	return Of(ids...), nil
}
