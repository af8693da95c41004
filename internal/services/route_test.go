package services

import (
	"pig-logistics-sim/internal/domain"
	"testing"
)

func farmAt(id string, lat, lon float64, weights ...float64) *domain.Farm {
	f := domain.NewFarm(id, domain.Location{Lat: lat, Lon: lon}, 2500)
	f.AddBatch(domain.NewBatchWithWeights(id+"_L1", 24, 0, weights))
	return f
}

func pigs(w float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = w
	}
	return out
}

func stopIDs(farms []*domain.Farm) []string {
	ids := make([]string, len(farms))
	for i, f := range farms {
		ids[i] = f.ID
	}
	return ids
}

func equalIDs(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func TestBuildCandidateRouteNearestNeighbor(t *testing.T) {
	a := farmAt("A", 0, 0, 110)
	d := farmAt("D", 5, 0, 110)
	b := farmAt("B", 0.5, 0, 110)
	c := farmAt("C", 0.6, 0, 110)

	got := stopIDs(BuildCandidateRoute([]*domain.Farm{a, d, b, c}, 3, 100))
	if !equalIDs(got, []string{"A", "B", "C"}) {
		t.Fatalf("route = %v, want [A B C]", got)
	}

	got = stopIDs(BuildCandidateRoute([]*domain.Farm{a, d, b, c}, 2, 100))
	if !equalIDs(got, []string{"A", "B"}) {
		t.Fatalf("route = %v, want [A B]", got)
	}
}

func TestBuildCandidateRouteRejectsLongLegs(t *testing.T) {
	d := farmAt("D", 5, 0, 110)
	a := farmAt("A", 0, 0, 110)

	got := stopIDs(BuildCandidateRoute([]*domain.Farm{d, a}, 3, 100))
	if !equalIDs(got, []string{"D"}) {
		t.Fatalf("route = %v, want [D]", got)
	}
}

func TestBuildCandidateRouteTieGoesToEarlierCandidate(t *testing.T) {
	a := farmAt("A", 0, 0, 110)
	south := farmAt("S", -0.5, 0, 110)
	north := farmAt("N", 0.5, 0, 110)

	got := stopIDs(BuildCandidateRoute([]*domain.Farm{a, south, north}, 2, 100))
	if !equalIDs(got, []string{"A", "S"}) {
		t.Fatalf("route = %v, want [A S]", got)
	}
}

func TestSelectCandidatesFiltersAndOrders(t *testing.T) {
	f1 := farmAt("F1", 0, 0, 110, 110)
	f2 := farmAt("F2", 0, 0, 120, 120)
	light := farmAt("F3", 0, 0, 90, 95)
	visited := farmAt("F4", 0, 0, 130)
	visited.VisitedThisWeek = true
	f5 := farmAt("F5", 0, 0, 110, 110)

	got := stopIDs(SelectCandidates([]*domain.Farm{f1, f2, light, visited, f5}, 100))
	if !equalIDs(got, []string{"F2", "F1", "F5"}) {
		t.Fatalf("candidates = %v, want [F2 F1 F5]", got)
	}
}

func TestRouteDistanceIsClosedTour(t *testing.T) {
	depot := domain.Location{}
	got := RouteDistanceKm(depot, []*domain.Farm{farmAt("A", 1, 0, 110)})
	if got != 222 {
		t.Fatalf("distance = %v, want 222", got)
	}
}
